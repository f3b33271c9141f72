package distribution

import (
	"testing"
	"time"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/store"
	"github.com/iov-one/royalty/weavetest"
	"github.com/iov-one/royalty/weavetest/assert"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/track"
)

func TestTicker(t *testing.T) {
	f := newFixture(t)
	bucket := track.NewBucket()

	// Recently distributed track with pending funds.
	cooling := track.NewTrack("cooling", "", "", 0, 10, f.clock.Now)
	_, _, err := cooling.RecordStreams(10, f.clock.Now)
	assert.Nil(t, err)
	cooling.LastDistribution = f.clock.Now
	assert.Nil(t, bucket.Create(f.db, cooling))

	// Nothing pending.
	assert.Nil(t, bucket.Create(f.db, track.NewTrack("idle", "", "", 0, 10, f.clock.Now)))

	res, err := NewTicker().Tick(f.clock.Ctx(), f.db)
	assert.Nil(t, err)
	assert.Equal(t, []royalty.Event{AutoDistributionCompleted{
		TrackID:     trackID,
		TotalAmount: 100000000,
		Timestamp:   f.clock.Now,
	}}, res.Events)

	got, err := bucket.Get(f.db, "cooling")
	assert.Nil(t, err)
	assert.Equal(t, cooling, got)

	f.clock.Advance(24 * time.Hour)
	res, err = NewTicker().Tick(f.clock.Ctx(), f.db)
	assert.Nil(t, err)
	assert.Equal(t, []royalty.Event{AutoDistributionCompleted{
		TrackID:     "cooling",
		TotalAmount: 100,
		Timestamp:   f.clock.Now,
	}}, res.Events)

	p, err := protocol.Load(f.db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(100000100), p.TotalDistributed)
}

func TestTickerWithoutProtocol(t *testing.T) {
	db := store.MemStore()
	now := royalty.UnixTime(1600000000)
	tr := track.NewTrack("t", "", "", 0, 1, now)
	_, _, err := tr.RecordStreams(5, now)
	assert.Nil(t, err)
	assert.Nil(t, track.NewBucket().Create(db, tr))

	res, err := NewTicker().Tick(weavetest.BlockCtx(now), db)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Events))
}
