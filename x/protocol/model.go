package protocol

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/gconf"
)

const (
	// BasisPoints is the amount representing 100%.
	BasisPoints = 10000

	// DefaultPerformanceMultiplier is the global boost baseline. It is
	// stored with the protocol but not used by the boost calculation.
	DefaultPerformanceMultiplier = BasisPoints

	confKey = "protocol"
)

// Protocol is the registry record shared by all tracks.
type Protocol struct {
	Authority             royalty.Address `json:"authority"`
	FeePercentage         uint64          `json:"fee_percentage"`
	TotalDistributed      uint64          `json:"total_distributed"`
	ActiveDistributions   uint64          `json:"active_distributions"`
	PerformanceMultiplier uint64          `json:"performance_multiplier"`
}

var _ gconf.Configuration = (*Protocol)(nil)

func (p *Protocol) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Authority", p.Authority.Validate())
	if p.FeePercentage > BasisPoints {
		errs = errors.Append(errs,
			errors.Field("FeePercentage", errors.ErrInput, "must not exceed %d", BasisPoints))
	}
	return errs
}

// Fee returns the protocol fee charged for distributing amount.
func (p *Protocol) Fee(amount uint64) (uint64, error) {
	if amount == 0 || p.FeePercentage == 0 {
		return 0, nil
	}
	if amount > ^uint64(0)/p.FeePercentage {
		return 0, errors.Wrap(errors.ErrOverflow, "protocol fee")
	}
	return amount * p.FeePercentage / BasisPoints, nil
}

// RecordDistribution adds amount to the total distributed and increments
// the distribution counter by count. Counters never decrease.
func (p *Protocol) RecordDistribution(amount, count uint64) error {
	total := p.TotalDistributed + amount
	if total < p.TotalDistributed {
		return errors.Wrap(errors.ErrOverflow, "total distributed")
	}
	active := p.ActiveDistributions + count
	if active < p.ActiveDistributions {
		return errors.Wrap(errors.ErrOverflow, "active distributions")
	}
	p.TotalDistributed = total
	p.ActiveDistributions = active
	return nil
}

// Load returns the protocol registry. ErrNotInitialized is returned when
// the protocol was not created yet.
func Load(db gconf.ReadStore) (*Protocol, error) {
	var p Protocol
	if err := gconf.Load(db, confKey, &p); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrNotInitialized, "load")
		}
		return nil, err
	}
	return &p, nil
}

// Save validates and stores the protocol registry.
func Save(db gconf.Store, p *Protocol) error {
	return gconf.Save(db, confKey, p)
}

// IsInitialized returns true if the protocol registry exists.
func IsInitialized(db gconf.ReadStore) (bool, error) {
	switch _, err := Load(db); {
	case err == nil:
		return true, nil
	case ErrNotInitialized.Is(err):
		return false, nil
	default:
		return false, err
	}
}

// VaultCondition returns the condition that owns the vault of given track.
// It is never backed by a key and only the engine passes it as a transfer
// authority.
func VaultCondition(trackID string) royalty.Condition {
	return royalty.NewCondition("royalty", "vault", []byte(trackID))
}

// VaultAddress returns the address of the holding that keeps the funds of
// given track.
func VaultAddress(trackID string) royalty.Address {
	return VaultCondition(trackID).Address()
}
