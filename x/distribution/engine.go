package distribution

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/track"
)

// Transfer moves funds between holdings. Implementations must either move
// the whole amount or fail without changing anything. x/cash provides the
// default implementation.
type Transfer interface {
	Transfer(db royalty.KVStore, from, to royalty.Address, authority royalty.Condition, amount uint64) error
}

// Distribute pays the pending balance of a pool to the recipient. The fee
// stays in the vault. Funds are transferred before any counter changes, so
// a failed transfer leaves the track and protocol untouched.
func Distribute(
	db royalty.KVStore,
	ctrl Transfer,
	p *protocol.Protocol,
	t *track.Track,
	rt track.RecipientType,
	recipient royalty.Address,
	now royalty.UnixTime,
) (*RoyaltiesDistributed, error) {
	pool, err := t.Pool(rt)
	if err != nil {
		return nil, err
	}
	pending := pool.Pending
	if pending == 0 {
		return nil, errors.Wrapf(track.ErrNoPending, "%s pool", rt)
	}
	fee, err := p.Fee(pending)
	if err != nil {
		return nil, err
	}
	final := pending - fee

	if final > 0 {
		vault := protocol.VaultCondition(t.TrackID)
		if err := ctrl.Transfer(db, vault.Address(), recipient, vault, final); err != nil {
			return nil, errors.Wrap(err, "transfer from vault")
		}
	}

	nextTrack, nextProtocol := *t, *p
	if err := nextTrack.Payout(rt, final, now); err != nil {
		return nil, err
	}
	if err := nextProtocol.RecordDistribution(final, 1); err != nil {
		return nil, err
	}
	*t, *p = nextTrack, nextProtocol

	return &RoyaltiesDistributed{
		TrackID:       t.TrackID,
		Recipient:     recipient,
		RecipientType: rt,
		Amount:        final,
		ProtocolFee:   fee,
		Timestamp:     now,
	}, nil
}

// Reserve subtracts the amount of every covered recipient from the pending
// balance of its pool. It returns an event for each reserved entry and
// the indexes of skipped entries.
func Reserve(t *track.Track, recipients []Recipient) ([]BatchDistributionQueued, []int, error) {
	if len(recipients) == 0 {
		return nil, nil, errors.Wrap(ErrEmptyRecipients, "reserve")
	}
	next := *t
	var (
		queued  []BatchDistributionQueued
		skipped []int
	)
	for i, r := range recipients {
		pool, err := next.Pool(r.Type)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "recipient #%d", i)
		}
		if !pool.Reserve(r.Amount) {
			skipped = append(skipped, i)
			continue
		}
		queued = append(queued, BatchDistributionQueued{
			TrackID:       t.TrackID,
			Recipient:     r.Address,
			RecipientType: r.Type,
			Amount:        r.Amount,
		})
	}
	*t = next
	return queued, skipped, nil
}

// AutoDistribute sweeps pending balances of the track once the cooldown
// elapsed. A nil event is returned when there was nothing to sweep.
func AutoDistribute(p *protocol.Protocol, t *track.Track, now royalty.UnixTime) (*AutoDistributionCompleted, error) {
	if !t.CooldownElapsed(now) {
		return nil, errors.Wrapf(ErrCooldown, "last distribution at %s", t.LastDistribution)
	}
	nextTrack, nextProtocol := *t, *p
	total, err := nextTrack.Sweep(now)
	if err != nil {
		return nil, err
	}
	if total == 0 {
		return nil, nil
	}
	if err := nextProtocol.RecordDistribution(total, 0); err != nil {
		return nil, err
	}
	*t, *p = nextTrack, nextProtocol
	return &AutoDistributionCompleted{
		TrackID:     t.TrackID,
		TotalAmount: total,
		Timestamp:   now,
	}, nil
}
