package dispute

import (
	"fmt"

	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x/track"
	amino "github.com/tendermint/go-amino"
)

// Resolution is the change applied to a track when a dispute is resolved.
// It is implemented only by AdjustArtistPercentage,
// AdjustProducerPercentage and RedistributeRevenue.
type Resolution interface {
	Validate() error
	String() string
	isResolution()
}

// AdjustArtistPercentage overwrites the artist pool percentage.
type AdjustArtistPercentage struct {
	NewPercentage uint64 `json:"new_percentage"`
}

func (AdjustArtistPercentage) isResolution() {}

func (r AdjustArtistPercentage) Validate() error {
	return validatePercentage(r.NewPercentage)
}

func (r AdjustArtistPercentage) String() string {
	return fmt.Sprintf("AdjustArtistPercentage{NewPercentage: %d}", r.NewPercentage)
}

// AdjustProducerPercentage overwrites the producer pool percentage.
type AdjustProducerPercentage struct {
	NewPercentage uint64 `json:"new_percentage"`
}

func (AdjustProducerPercentage) isResolution() {}

func (r AdjustProducerPercentage) Validate() error {
	return validatePercentage(r.NewPercentage)
}

func (r AdjustProducerPercentage) String() string {
	return fmt.Sprintf("AdjustProducerPercentage{NewPercentage: %d}", r.NewPercentage)
}

// RedistributeRevenue moves pending balance between the artist and the
// producer pool.
type RedistributeRevenue struct {
	FromPool track.RecipientType `json:"from_pool"`
	ToPool   track.RecipientType `json:"to_pool"`
	Amount   uint64              `json:"amount"`
}

func (RedistributeRevenue) isResolution() {}

func (r RedistributeRevenue) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "FromPool", r.FromPool.Validate())
	errs = errors.AppendField(errs, "ToPool", r.ToPool.Validate())
	return errs
}

func (r RedistributeRevenue) String() string {
	return fmt.Sprintf("RedistributeRevenue{FromPool: %s, ToPool: %s, Amount: %d}", r.FromPool, r.ToPool, r.Amount)
}

func validatePercentage(p uint64) error {
	if p > track.BasisPoints {
		return errors.Field("NewPercentage", errors.ErrInput, "must not exceed %d", track.BasisPoints)
	}
	return nil
}

// Apply changes the pools of the track according to the resolution. It
// reports false when a redistribution was not covered by the source pool
// and nothing changed. That case is not an error.
//
// A percentage adjustment may leave the pools summing to less than
// BasisPoints, but never to more: accrued pending balances would then
// outgrow the track revenue and could not be released.
func Apply(t *track.Track, r Resolution) (bool, error) {
	switch r := r.(type) {
	case AdjustArtistPercentage:
		if err := checkPercentageSum(t, &t.ArtistPool, r.NewPercentage); err != nil {
			return false, err
		}
		t.ArtistPool.Percentage = r.NewPercentage
		return true, nil
	case AdjustProducerPercentage:
		if err := checkPercentageSum(t, &t.ProducerPool, r.NewPercentage); err != nil {
			return false, err
		}
		t.ProducerPool.Percentage = r.NewPercentage
		return true, nil
	case RedistributeRevenue:
		switch {
		case r.FromPool == track.Artist && r.ToPool == track.Producer:
		case r.FromPool == track.Producer && r.ToPool == track.Artist:
		default:
			return false, errors.Wrapf(ErrUnsupportedTransfer, "%s to %s", r.FromPool, r.ToPool)
		}
		return t.MovePending(r.FromPool, r.ToPool, r.Amount)
	case nil:
		return false, errors.Wrap(errors.ErrEmpty, "resolution")
	default:
		return false, errors.Wrapf(errors.ErrType, "unknown resolution %T", r)
	}
}

// RegisterCodec registers the resolution variants with the amino codec used
// to encode messages carrying a Resolution.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterInterface((*Resolution)(nil), nil)
	cdc.RegisterConcrete(AdjustArtistPercentage{}, "dispute/AdjustArtistPercentage", nil)
	cdc.RegisterConcrete(AdjustProducerPercentage{}, "dispute/AdjustProducerPercentage", nil)
	cdc.RegisterConcrete(RedistributeRevenue{}, "dispute/RedistributeRevenue", nil)
}

// checkPercentageSum fails when setting pool to percentage would make the
// pools of t sum to more than BasisPoints. Nothing is modified.
func checkPercentageSum(t *track.Track, pool *track.RoyaltyPool, percentage uint64) error {
	sum := t.PercentageSum() - pool.Percentage + percentage
	if sum > track.BasisPoints {
		return errors.Wrapf(ErrPercentageSum, "pools would sum to %d", sum)
	}
	return nil
}
