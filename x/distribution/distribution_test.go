package distribution

import (
	"testing"
	"time"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store"
	"github.com/iov-one/royalty/weavetest"
	"github.com/iov-one/royalty/weavetest/assert"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/dispute"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/track"
)

const trackID = "track-1"

type fixture struct {
	db        royalty.CacheableKVStore
	clock     *weavetest.Clock
	authority royalty.Condition
	anyone    royalty.Condition
	cash      cash.BaseController
}

// newFixture returns a store with an initialized protocol charging a 5%
// fee and a track with 100 streams worth 100_000_000 in pending royalties.
// The track vault holds exactly that amount.
func newFixture(t *testing.T) fixture {
	t.Helper()
	f := fixture{
		db:        store.MemStore(),
		clock:     &weavetest.Clock{Now: royalty.UnixTime(1600000000)},
		authority: weavetest.NewCondition(),
		anyone:    weavetest.NewCondition(),
		cash:      cash.NewController(),
	}
	assert.Nil(t, protocol.Save(f.db, &protocol.Protocol{
		Authority:             f.authority.Address(),
		FeePercentage:         500,
		PerformanceMultiplier: protocol.DefaultPerformanceMultiplier,
	}))
	tr := track.NewTrack(trackID, "Song", "Band", 0, 1000000, f.clock.Now)
	_, _, err := tr.RecordStreams(100, f.clock.Now)
	assert.Nil(t, err)
	assert.Nil(t, track.NewBucket().Create(f.db, tr))
	assert.Nil(t, f.cash.Issue(f.db, protocol.VaultAddress(trackID), 100000000))
	return f
}

func (f fixture) router(signer royalty.Condition, ctrl Transfer) weavetest.Router {
	r := weavetest.Router{}
	RegisterRoutes(r, &weavetest.Auth{Signer: signer}, ctrl)
	return r
}

func (f fixture) track(t testing.TB) *track.Track {
	t.Helper()
	tr, err := track.NewBucket().Get(f.db, trackID)
	assert.Nil(t, err)
	return tr
}

func (f fixture) protocol(t testing.TB) *protocol.Protocol {
	t.Helper()
	p, err := protocol.Load(f.db)
	assert.Nil(t, err)
	return p
}

func (f fixture) balance(t testing.TB, addr royalty.Address) uint64 {
	t.Helper()
	b, err := f.cash.Balance(f.db, addr)
	assert.Nil(t, err)
	return b
}

func TestDistribute(t *testing.T) {
	f := newFixture(t)
	recipient := weavetest.NewCondition().Address()
	msg := &DistributeMsg{TrackID: trackID, RecipientType: track.Artist, Recipient: recipient}

	f.clock.Advance(time.Minute)
	res, err := f.router(f.authority, f.cash).Deliver(f.clock.Ctx(), f.db, &weavetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, []royalty.Event{RoyaltiesDistributed{
		TrackID:       trackID,
		Recipient:     recipient,
		RecipientType: track.Artist,
		Amount:        57000000,
		ProtocolFee:   3000000,
		Timestamp:     f.clock.Now,
	}}, res.Events)

	tr := f.track(t)
	assert.Equal(t, uint64(0), tr.ArtistPool.Pending)
	assert.Equal(t, uint64(57000000), tr.ArtistPool.Distributed)
	assert.Equal(t, uint64(57000000), tr.DistributedRevenue)
	assert.Equal(t, f.clock.Now, tr.LastDistribution)
	assert.Equal(t, uint64(20000000), tr.ProducerPool.Pending)

	p := f.protocol(t)
	assert.Equal(t, uint64(57000000), p.TotalDistributed)
	assert.Equal(t, uint64(1), p.ActiveDistributions)

	assert.Equal(t, uint64(57000000), f.balance(t, recipient))
	assert.Equal(t, uint64(43000000), f.balance(t, protocol.VaultAddress(trackID)))

	// Nothing left to distribute.
	_, err = f.router(f.authority, f.cash).Deliver(f.clock.Ctx(), f.db, &weavetest.Tx{Msg: msg})
	assert.IsErr(t, track.ErrNoPending, err)
}

func TestDistributeConservesPending(t *testing.T) {
	for _, fee := range []uint64{0, 1, 333, 500, 9999, 10000} {
		f := newFixture(t)
		p := f.protocol(t)
		p.FeePercentage = fee
		tr := f.track(t)
		pending := tr.ProducerPool.Pending

		event, err := Distribute(f.db, f.cash, p, tr, track.Producer, f.anyone.Address(), f.clock.Now)
		assert.Nil(t, err)
		assert.Equal(t, pending, event.Amount+event.ProtocolFee)
		assert.Equal(t, event.Amount, tr.ProducerPool.Distributed)
		assert.Equal(t, event.Amount, f.balance(t, f.anyone.Address()))
	}
}

func TestDistributeFailedTransfer(t *testing.T) {
	f := newFixture(t)
	recipient := weavetest.NewCondition().Address()
	msg := &DistributeMsg{TrackID: trackID, RecipientType: track.Artist, Recipient: recipient}

	// Leave the vault with less than the payout.
	assert.Nil(t, f.cash.Transfer(f.db, protocol.VaultAddress(trackID), f.anyone.Address(),
		protocol.VaultCondition(trackID), 50000000))

	trackBefore := f.track(t)
	protocolBefore := f.protocol(t)

	res, err := f.router(f.authority, f.cash).Deliver(f.clock.Ctx(), f.db, &weavetest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrAmount, err)
	assert.Nil(t, res)

	assert.Equal(t, trackBefore, f.track(t))
	assert.Equal(t, protocolBefore, f.protocol(t))
	assert.Equal(t, uint64(0), f.balance(t, recipient))
}

// failingTransfer fails every transfer after writing to the store.
type failingTransfer struct{}

func (failingTransfer) Transfer(db royalty.KVStore, from, to royalty.Address, authority royalty.Condition, amount uint64) error {
	if err := db.Set([]byte("dirty"), []byte("write")); err != nil {
		return err
	}
	return errors.Wrap(errors.ErrDatabase, "custody unavailable")
}

func TestDistributeTransferErrorIsAtomic(t *testing.T) {
	f := newFixture(t)
	msg := &DistributeMsg{TrackID: trackID, RecipientType: track.Label, Recipient: f.anyone.Address()}
	trackBefore := f.track(t)

	_, err := f.router(f.authority, failingTransfer{}).Deliver(f.clock.Ctx(), f.db, &weavetest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrDatabase, err)
	assert.Equal(t, trackBefore, f.track(t))

	ok, err := f.db.Has([]byte("dirty"))
	assert.Nil(t, err)
	assert.Equal(t, false, ok)
}

func TestDistributeUnauthorized(t *testing.T) {
	f := newFixture(t)
	msg := &DistributeMsg{TrackID: trackID, RecipientType: track.Artist, Recipient: f.anyone.Address()}
	trackBefore := f.track(t)

	_, err := f.router(f.anyone, f.cash).Deliver(f.clock.Ctx(), f.db, &weavetest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrUnauthorized, err)
	assert.Equal(t, trackBefore, f.track(t))

	invalid := &DistributeMsg{TrackID: trackID, RecipientType: track.RecipientType(7), Recipient: f.anyone.Address()}
	_, err = f.router(f.authority, f.cash).Check(f.clock.Ctx(), f.db, &weavetest.Tx{Msg: invalid})
	assert.IsErr(t, errors.ErrInput, err)
}

func TestBatchDistribute(t *testing.T) {
	f := newFixture(t)
	alice := weavetest.NewCondition().Address()
	bob := weavetest.NewCondition().Address()

	msg := &BatchDistributeMsg{
		TrackID: trackID,
		Recipients: []Recipient{
			{Address: alice, Type: track.Artist, Amount: 50000000},
			{Address: bob, Type: track.Artist, Amount: 20000000},
			{Address: bob, Type: track.Platform, Amount: 5000000},
		},
	}

	_, err := f.router(f.anyone, f.cash).Deliver(f.clock.Ctx(), f.db, &weavetest.Tx{Msg: msg})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	res, err := f.router(f.authority, f.cash).Deliver(f.clock.Ctx(), f.db, &weavetest.Tx{Msg: msg})
	assert.Nil(t, err)
	assert.Equal(t, []royalty.Event{
		BatchDistributionQueued{TrackID: trackID, Recipient: alice, RecipientType: track.Artist, Amount: 50000000},
		BatchDistributionQueued{TrackID: trackID, Recipient: bob, RecipientType: track.Platform, Amount: 5000000},
	}, res.Events)
	assert.Equal(t, "skipped recipients: 1", res.Log)

	tr := f.track(t)
	assert.Equal(t, uint64(10000000), tr.ArtistPool.Pending)
	assert.Equal(t, uint64(0), tr.PlatformPool.Pending)
	assert.Equal(t, uint64(0), tr.ArtistPool.Distributed)
	assert.Equal(t, uint64(0), tr.DistributedRevenue)

	// Reservation does not transfer any funds.
	assert.Equal(t, uint64(0), f.balance(t, alice))
	assert.Equal(t, uint64(100000000), f.balance(t, protocol.VaultAddress(trackID)))

	empty := &BatchDistributeMsg{TrackID: trackID}
	_, err = f.router(f.authority, f.cash).Deliver(f.clock.Ctx(), f.db, &weavetest.Tx{Msg: empty})
	assert.IsErr(t, ErrEmptyRecipients, err)
}

func TestReserveAllSkipped(t *testing.T) {
	tr := track.NewTrack("t", "", "", 0, 1, 0)
	queued, skipped, err := Reserve(tr, []Recipient{{Type: track.Label, Amount: 1}})
	assert.Nil(t, err)
	assert.Equal(t, 0, len(queued))
	assert.Equal(t, []int{0}, skipped)

	_, _, err = Reserve(tr, nil)
	assert.IsErr(t, ErrEmptyRecipients, err)
}

func TestAutoDistribute(t *testing.T) {
	f := newFixture(t)
	auto := &weavetest.Tx{Msg: &AutoDistributeMsg{TrackID: trackID}}

	_, err := f.router(nil, f.cash).Deliver(f.clock.Ctx(), f.db, auto)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// A track that was never distributed can be swept right away.
	res, err := f.router(f.anyone, f.cash).Deliver(f.clock.Ctx(), f.db, auto)
	assert.Nil(t, err)
	assert.Equal(t, []royalty.Event{AutoDistributionCompleted{
		TrackID:     trackID,
		TotalAmount: 100000000,
		Timestamp:   f.clock.Now,
	}}, res.Events)

	tr := f.track(t)
	assert.Equal(t, uint64(0), tr.TotalPending())
	assert.Equal(t, uint64(60000000), tr.ArtistPool.Distributed)
	assert.Equal(t, uint64(100000000), tr.DistributedRevenue)
	assert.Equal(t, f.clock.Now, tr.LastDistribution)

	p := f.protocol(t)
	assert.Equal(t, uint64(100000000), p.TotalDistributed)
	assert.Equal(t, uint64(0), p.ActiveDistributions)

	// No fee and no transfer.
	assert.Equal(t, uint64(100000000), f.balance(t, protocol.VaultAddress(trackID)))

	// Second call within 24 hours fails and changes nothing.
	f.clock.Advance(23 * time.Hour)
	before := f.track(t)
	_, err = f.router(f.anyone, f.cash).Deliver(f.clock.Ctx(), f.db, auto)
	assert.IsErr(t, ErrCooldown, err)
	assert.Equal(t, before, f.track(t))

	// After the cooldown an empty sweep succeeds without an event.
	f.clock.Advance(time.Hour)
	res, err = f.router(f.anyone, f.cash).Deliver(f.clock.Ctx(), f.db, auto)
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Events))
	assert.Equal(t, before, f.track(t))
}

// Disputed percentages never let pending outgrow revenue, so a track stays
// sweepable after any accepted resolution.
func TestAutoDistributeAfterPercentageDispute(t *testing.T) {
	f := newFixture(t)
	bucket := track.NewBucket()
	tr := f.track(t)

	_, err := dispute.Apply(tr, dispute.AdjustArtistPercentage{NewPercentage: 10000})
	assert.IsErr(t, dispute.ErrPercentageSum, err)
	assert.Equal(t, uint64(6000), tr.ArtistPool.Percentage)

	_, err = dispute.Apply(tr, dispute.AdjustArtistPercentage{NewPercentage: 5000})
	assert.Nil(t, err)
	_, _, err = tr.RecordStreams(100, f.clock.Now)
	assert.Nil(t, err)
	assert.Nil(t, bucket.Save(f.db, tr))

	// 100M accrued with the default split plus 90M with the artist at 50%.
	assert.Equal(t, uint64(200000000), tr.TotalRevenue)
	assert.Equal(t, uint64(190000000), tr.TotalPending())

	event, err := sweep(f.db, bucket, f.protocol(t), tr, f.clock.Now)
	assert.Nil(t, err)
	assert.Equal(t, uint64(190000000), event.TotalAmount)

	stored := f.track(t)
	assert.Equal(t, uint64(190000000), stored.DistributedRevenue)
	assert.Equal(t, uint64(0), stored.TotalPending())
}

func TestAutoDistributeCooldownAfterPayout(t *testing.T) {
	f := newFixture(t)
	p := f.protocol(t)
	tr := f.track(t)

	_, err := Distribute(f.db, f.cash, p, tr, track.Artist, f.anyone.Address(), f.clock.Now)
	assert.Nil(t, err)

	_, err = AutoDistribute(p, tr, f.clock.Now+track.Cooldown-1)
	assert.IsErr(t, ErrCooldown, err)

	event, err := AutoDistribute(p, tr, f.clock.Now+track.Cooldown)
	assert.Nil(t, err)
	assert.Equal(t, uint64(40000000), event.TotalAmount)
	assert.Equal(t, uint64(57000000+40000000), p.TotalDistributed)
}
