package distribution

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/track"
	"github.com/iov-one/royalty/x/utils"
)

// Ticker sweeps every track whose cooldown elapsed and that has pending
// funds. Each track is processed in its own savepoint, so a failing track
// does not prevent the others from being swept.
type Ticker struct {
	bucket track.Bucket
}

var _ royalty.Ticker = (*Ticker)(nil)

// NewTicker returns a ticker operating on the track bucket.
func NewTicker() *Ticker {
	return &Ticker{bucket: track.NewBucket()}
}

func (t *Ticker) Tick(ctx royalty.Context, db royalty.KVStore) (*royalty.TickResult, error) {
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	log := royalty.GetLogger(ctx)

	switch ok, err := protocol.IsInitialized(db); {
	case err != nil:
		return nil, err
	case !ok:
		return &royalty.TickResult{}, nil
	}

	// Collect first, the store must not be modified while iterating.
	var due []string
	err = t.bucket.Iterate(db, func(key []byte, m orm.Model) error {
		tr := m.(*track.Track)
		if tr.TotalPending() > 0 && tr.CooldownElapsed(now) {
			due = append(due, tr.TrackID)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "iterate tracks")
	}

	res := &royalty.TickResult{}
	for _, id := range due {
		var event *AutoDistributionCompleted
		err := utils.Atomic(db, func(db royalty.KVStore) error {
			p, err := protocol.Load(db)
			if err != nil {
				return err
			}
			tr, err := t.bucket.Get(db, id)
			if err != nil {
				return err
			}
			event, err = sweep(db, t.bucket, p, tr, now)
			return err
		})
		if err != nil {
			log.Error("scheduled sweep failed", "track", id, "err", err)
			continue
		}
		if event != nil {
			log.Info("scheduled sweep", "track", id, "amount", event.TotalAmount)
			res.Events = append(res.Events, *event)
		}
	}
	return res, nil
}
