package dispute

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
	"github.com/iov-one/royalty/x/track"
)

const maxDescriptionLength = 512

// DisputeType classifies the reason of a dispute.
type DisputeType int32

const (
	IncorrectPercentage DisputeType = iota + 1
	MissingPayment
	CalculationError
	FraudulentReporting
)

var typeNames = map[DisputeType]string{
	IncorrectPercentage: "IncorrectPercentage",
	MissingPayment:      "MissingPayment",
	CalculationError:    "CalculationError",
	FraudulentReporting: "FraudulentReporting",
}

func (t DisputeType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

func (t DisputeType) Validate() error {
	if _, ok := typeNames[t]; !ok {
		return errors.Wrapf(errors.ErrInput, "dispute type %d", t)
	}
	return nil
}

// ParseDisputeType returns the type of given name. Matching is case
// insensitive.
func ParseDisputeType(name string) (DisputeType, error) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return t, nil
		}
	}
	return 0, errors.Wrapf(errors.ErrInput, "unknown dispute type %q", name)
}

func (t DisputeType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *DisputeType) UnmarshalJSON(raw []byte) error {
	var name string
	if err := json.Unmarshal(raw, &name); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	parsed, err := ParseDisputeType(name)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// DisputeStatus is the state of a dispute.
type DisputeStatus int32

const (
	Open DisputeStatus = iota + 1
	UnderReview
	Resolved
	Rejected
)

var statusNames = map[DisputeStatus]string{
	Open:        "Open",
	UnderReview: "UnderReview",
	Resolved:    "Resolved",
	Rejected:    "Rejected",
}

func (s DisputeStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s DisputeStatus) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errors.Wrapf(errors.ErrInput, "dispute status %d", s)
	}
	return nil
}

func (s DisputeStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Dispute is a complaint about the royalties of a track.
type Dispute struct {
	DisputeID   string          `json:"dispute_id"`
	TrackID     string          `json:"track_id"`
	Disputant   royalty.Address `json:"disputant"`
	Type        DisputeType     `json:"dispute_type"`
	Description string          `json:"description"`
	Status      DisputeStatus   `json:"status"`

	CreationTime royalty.UnixTime `json:"creation_time"`
	// ResolutionTime is zero until the dispute is resolved.
	ResolutionTime    royalty.UnixTime `json:"resolution_time,omitempty"`
	ResolutionDetails string           `json:"resolution_details,omitempty"`
}

var _ orm.Model = (*Dispute)(nil)

func (d *Dispute) Validate() error {
	var errs error
	if d.DisputeID == "" {
		errs = errors.Append(errs, errors.Field("DisputeID", errors.ErrEmpty, "required"))
	}
	errs = errors.AppendField(errs, "TrackID", track.ValidateTrackID(d.TrackID))
	errs = errors.AppendField(errs, "Disputant", d.Disputant.Validate())
	errs = errors.AppendField(errs, "Type", d.Type.Validate())
	errs = errors.AppendField(errs, "Status", d.Status.Validate())
	if len(d.Description) > maxDescriptionLength {
		errs = errors.Append(errs, errors.Field("Description", errors.ErrInput, "too long"))
	}
	errs = errors.AppendField(errs, "CreationTime", d.CreationTime.Validate())
	if d.Status == Resolved && d.ResolutionTime.IsZero() {
		errs = errors.Append(errs, errors.Field("ResolutionTime", errors.ErrEmpty, "required when resolved"))
	}
	return errs
}

// BaseID returns the dispute ID derived from the track and creation time.
func BaseID(trackID string, created royalty.UnixTime) string {
	return fmt.Sprintf("DISPUTE_%s_%d", trackID, created)
}

// Bucket stores disputes under their ID.
type Bucket struct {
	orm.ModelBucket
}

// NewBucket returns a bucket for disputes indexed by track.
func NewBucket() Bucket {
	return Bucket{
		ModelBucket: orm.NewModelBucket("dispute", &Dispute{},
			orm.WithIndex("track", trackIndexer, false)),
	}
}

func trackIndexer(m orm.Model) ([]byte, error) {
	d, ok := m.(*Dispute)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return []byte(d.TrackID), nil
}

// Get returns the dispute of given ID.
func (b Bucket) Get(db royalty.ReadOnlyKVStore, id string) (*Dispute, error) {
	var d Dispute
	if err := b.One(db, []byte(id), &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// Save stores the dispute under its ID.
func (b Bucket) Save(db royalty.KVStore, d *Dispute) error {
	return b.Put(db, []byte(d.DisputeID), d)
}

// NextID returns the first free dispute ID for given track and time. The
// base ID is used when free, otherwise a numeric suffix starting at 2 is
// appended.
func (b Bucket) NextID(db royalty.ReadOnlyKVStore, trackID string, created royalty.UnixTime) (string, error) {
	base := BaseID(trackID, created)
	id := base
	for n := 2; ; n++ {
		switch err := b.Has(db, []byte(id)); {
		case errors.ErrNotFound.Is(err):
			return id, nil
		case err != nil:
			return "", err
		}
		id = fmt.Sprintf("%s_%d", base, n)
	}
}

// ByTrack returns all disputes opened against given track.
func (b Bucket) ByTrack(db royalty.ReadOnlyKVStore, trackID string) ([]*Dispute, error) {
	var disputes []*Dispute
	if _, err := b.ByIndex(db, "track", []byte(trackID), &disputes); err != nil {
		return nil, err
	}
	return disputes, nil
}
