package track

import (
	"encoding/json"
	"strings"

	"github.com/iov-one/royalty/errors"
)

// BasisPoints is the amount representing 100%.
const BasisPoints = 10000

// RoyaltyPool is a share of track revenue.
type RoyaltyPool struct {
	// Percentage in basis points.
	Percentage  uint64 `json:"percentage"`
	Distributed uint64 `json:"distributed"`
	Pending     uint64 `json:"pending"`
}

// Share returns the part of amount that belongs to this pool. The fraction
// below one unit is truncated.
func (p RoyaltyPool) Share(amount uint64) (uint64, error) {
	return basisPoints(amount, p.Percentage)
}

// Accrue adds amount to the pending balance.
func (p *RoyaltyPool) Accrue(amount uint64) error {
	pending, err := addU64(p.Pending, amount)
	if err != nil {
		return errors.Wrap(err, "pending")
	}
	p.Pending = pending
	return nil
}

// Reserve subtracts amount from the pending balance if it is covered.
// It returns false and leaves the pool unchanged otherwise.
func (p *RoyaltyPool) Reserve(amount uint64) bool {
	if p.Pending < amount {
		return false
	}
	p.Pending -= amount
	return true
}

// Drain moves the whole pending balance to distributed and returns the
// moved amount.
func (p *RoyaltyPool) Drain() (uint64, error) {
	distributed, err := addU64(p.Distributed, p.Pending)
	if err != nil {
		return 0, errors.Wrap(err, "distributed")
	}
	moved := p.Pending
	p.Distributed = distributed
	p.Pending = 0
	return moved, nil
}

// DefaultPools returns the artist, producer, label and platform pools with
// the fixed 60/20/15/5 split.
func DefaultPools() (artist, producer, label, platform RoyaltyPool) {
	return RoyaltyPool{Percentage: 6000},
		RoyaltyPool{Percentage: 2000},
		RoyaltyPool{Percentage: 1500},
		RoyaltyPool{Percentage: 500}
}

// RecipientType names one of the four pools.
type RecipientType int32

const (
	Artist RecipientType = iota + 1
	Producer
	Label
	Platform
)

// RecipientTypes lists all pools in the order they are processed.
var RecipientTypes = []RecipientType{Artist, Producer, Label, Platform}

var recipientNames = map[RecipientType]string{
	Artist:   "artist",
	Producer: "producer",
	Label:    "label",
	Platform: "platform",
}

func (r RecipientType) String() string {
	if name, ok := recipientNames[r]; ok {
		return name
	}
	return "unknown"
}

// Validate returns an error if this is not a known recipient type.
func (r RecipientType) Validate() error {
	if _, ok := recipientNames[r]; !ok {
		return errors.Wrapf(errors.ErrInput, "recipient type %d", r)
	}
	return nil
}

// ParseRecipientType returns the recipient type of given name. Matching is
// case insensitive.
func ParseRecipientType(name string) (RecipientType, error) {
	name = strings.ToLower(name)
	for r, n := range recipientNames {
		if n == name {
			return r, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrInput, "unknown recipient type %q", name)
}

func (r RecipientType) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *RecipientType) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	parsed, err := ParseRecipientType(name)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
