package app

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/crypto"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store/iavl"
	"github.com/iov-one/royalty/weavetest"
	"github.com/iov-one/royalty/weavetest/assert"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/dispute"
	"github.com/iov-one/royalty/x/distribution"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/track"
)

const testChainID = "royalty-test"

type appFixture struct {
	app       *Application
	now       time.Time
	authority *crypto.PrivateKey
	artist    *crypto.PrivateKey
}

func rawJSON(t testing.TB, v interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	assert.Nil(t, err)
	return raw
}

// newAppFixture returns an initialized application with a 5% protocol fee
// and a funded vault for the track "hit".
func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	a, err := NewRoyaltyApp(iavl.NewMemCommitStore(), nil)
	assert.Nil(t, err)

	f := &appFixture{
		app:       a,
		now:       time.Unix(1600000000, 0).UTC(),
		authority: crypto.GenPrivKeyEd25519(),
		artist:    crypto.GenPrivKeyEd25519(),
	}
	gen := &Genesis{
		ChainID: testChainID,
		AppState: royalty.Options{
			"conf": rawJSON(t, map[string]interface{}{
				"protocol": map[string]interface{}{
					"authority":      f.authority.PublicKey().Address(),
					"fee_percentage": 500,
				},
			}),
			"cash": rawJSON(t, []cash.GenesisAccount{
				{Address: protocol.VaultAddress("hit"), Balance: 100000000},
			}),
		},
	}
	assert.Nil(t, a.InitChain(gen))
	return f
}

func (f *appFixture) signed(t *testing.T, key *crypto.PrivateKey, msg royalty.Msg) *Tx {
	t.Helper()
	nonce, err := QueryNonce(f.app.store.DeliverStore(), key.PublicKey().Address())
	assert.Nil(t, err)
	tx := NewTx(msg)
	assert.Nil(t, tx.Sign(key, testChainID, nonce))
	return tx
}

func (f *appFixture) deliver(t *testing.T, key *crypto.PrivateKey, msg royalty.Msg) (*royalty.DeliverResult, error) {
	t.Helper()
	return f.app.Deliver(f.now, f.signed(t, key, msg))
}

func kinds(entries []*JournalEntry) []string {
	var res []string
	for _, e := range entries {
		res = append(res, e.Kind)
	}
	return res
}

func TestApplicationFlow(t *testing.T) {
	f := newAppFixture(t)
	recipient := crypto.GenPrivKeyEd25519().PublicKey().Address()

	res, err := f.deliver(t, f.artist, &track.CreateTrackMsg{
		TrackID:          "hit",
		Title:            "Hit",
		Artist:           "Band",
		RevenuePerStream: 1000000,
	})
	assert.Nil(t, err)
	assert.Equal(t, "hit", string(res.Data))

	_, err = f.deliver(t, f.authority, &track.UpdateStreamingDataMsg{
		TrackID:           "hit",
		AdditionalStreams: 100,
		Platform:          "radio",
		Country:           "PL",
	})
	assert.Nil(t, err)

	res, err = f.deliver(t, f.authority, &distribution.DistributeMsg{
		TrackID:       "hit",
		RecipientType: track.Artist,
		Recipient:     recipient,
	})
	assert.Nil(t, err)
	assert.Equal(t, 1, len(res.Events))
	ev := res.Events[0].(distribution.RoyaltiesDistributed)
	assert.Equal(t, uint64(57000000), ev.Amount)
	assert.Equal(t, uint64(3000000), ev.ProtocolFee)

	// Nothing is visible before commit.
	_, err = QueryTrack(f.app.ReadStore(), "hit")
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = f.app.Commit()
	assert.Nil(t, err)

	db := f.app.ReadStore()
	tr, err := QueryTrack(db, "hit")
	assert.Nil(t, err)
	assert.Equal(t, uint64(57000000), tr.ArtistPool.Distributed)
	assert.Equal(t, uint64(0), tr.ArtistPool.Pending)
	assert.Equal(t, uint64(57000000), tr.DistributedRevenue)

	balance, err := QueryBalance(db, recipient)
	assert.Nil(t, err)
	assert.Equal(t, uint64(57000000), balance)
	vault, vaultBalance, err := QueryVault(db, "hit")
	assert.Nil(t, err)
	assert.Equal(t, protocol.VaultAddress("hit"), vault)
	assert.Equal(t, uint64(43000000), vaultBalance)

	p, err := QueryProtocol(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(57000000), p.TotalDistributed)
	assert.Equal(t, uint64(1), p.ActiveDistributions)

	byArtist, err := QueryTracksByArtist(db, "Band")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(byArtist))

	entries, err := f.app.Journal().Since(db, 0, "")
	assert.Nil(t, err)
	assert.Equal(t, []string{"TrackCreated", "StreamingDataUpdated", "RoyaltiesDistributed"}, kinds(entries))
	assert.Equal(t, int64(3), entries[2].Seq)

	streams, err := f.app.Journal().Since(db, 1, "StreamingDataUpdated")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(streams))
	var payload track.StreamingDataUpdated
	assert.Nil(t, json.Unmarshal(streams[0].Payload, &payload))
	assert.Equal(t, uint64(100000000), payload.RevenueGenerated)
	assert.Equal(t, "PL", payload.Country)
}

func TestApplicationFailedDeliveryLeavesNoTrace(t *testing.T) {
	f := newAppFixture(t)
	addr := f.authority.PublicKey().Address()

	_, err := f.deliver(t, f.artist, &track.CreateTrackMsg{TrackID: "hit", Title: "Hit", Artist: "Band", RevenuePerStream: 1})
	assert.Nil(t, err)

	before, err := QueryNonce(f.app.store.DeliverStore(), addr)
	assert.Nil(t, err)

	// Nothing pending yet.
	_, err = f.deliver(t, f.authority, &distribution.DistributeMsg{
		TrackID:       "hit",
		RecipientType: track.Artist,
		Recipient:     addr,
	})
	assert.IsErr(t, track.ErrNoPending, err)

	after, err := QueryNonce(f.app.store.DeliverStore(), addr)
	assert.Nil(t, err)
	assert.Equal(t, before, after)

	entries, err := f.app.Journal().Since(f.app.store.DeliverStore(), 0, "")
	assert.Nil(t, err)
	assert.Equal(t, []string{"TrackCreated"}, kinds(entries))

	// Only the authority may report streams.
	_, err = f.deliver(t, f.artist, &track.UpdateStreamingDataMsg{TrackID: "hit", AdditionalStreams: 1})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// Unsigned transactions are rejected.
	_, err = f.app.Deliver(f.now, NewTx(&track.CreateTrackMsg{TrackID: "other", Title: "x", Artist: "y"}))
	assert.IsErr(t, errors.ErrUnauthorized, err)

	// A signature for another sequence is rejected.
	tx := NewTx(&track.CreateTrackMsg{TrackID: "other", Title: "x", Artist: "y"})
	assert.Nil(t, tx.Sign(f.artist, testChainID, 42))
	_, err = f.app.Deliver(f.now, tx)
	assert.Equal(t, true, err != nil)

	_, err = QueryTrack(f.app.store.DeliverStore(), "other")
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestApplicationTick(t *testing.T) {
	f := newAppFixture(t)

	_, err := f.deliver(t, f.artist, &track.CreateTrackMsg{TrackID: "hit", Title: "Hit", Artist: "Band", RevenuePerStream: 1000000})
	assert.Nil(t, err)
	_, err = f.deliver(t, f.authority, &track.UpdateStreamingDataMsg{TrackID: "hit", AdditionalStreams: 100})
	assert.Nil(t, err)
	_, err = f.deliver(t, f.authority, &distribution.DistributeMsg{
		TrackID:       "hit",
		RecipientType: track.Artist,
		Recipient:     f.artist.PublicKey().Address(),
	})
	assert.Nil(t, err)

	// Within cooldown of the last distribution.
	res, err := f.app.Tick(f.now.Add(time.Hour))
	assert.Nil(t, err)
	assert.Equal(t, 0, len(res.Events))

	later := f.now.Add(25 * time.Hour)
	res, err = f.app.Tick(later)
	assert.Nil(t, err)
	assert.Equal(t, []royalty.Event{distribution.AutoDistributionCompleted{
		TrackID:     "hit",
		TotalAmount: 40000000,
		Timestamp:   royalty.AsUnixTime(later),
	}}, res.Events)

	_, err = f.app.Commit()
	assert.Nil(t, err)
	tr, err := QueryTrack(f.app.ReadStore(), "hit")
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), tr.TotalPending())
	assert.Equal(t, uint64(97000000), tr.DistributedRevenue)

	entries, err := f.app.Journal().Since(f.app.ReadStore(), 0, "AutoDistributionCompleted")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(entries))
}

func TestApplicationDispute(t *testing.T) {
	f := newAppFixture(t)
	fan := crypto.GenPrivKeyEd25519()

	_, err := f.deliver(t, f.artist, &track.CreateTrackMsg{TrackID: "hit", Title: "Hit", Artist: "Band", RevenuePerStream: 1})
	assert.Nil(t, err)
	res, err := f.deliver(t, fan, &dispute.CreateDisputeMsg{TrackID: "hit", Type: dispute.IncorrectPercentage})
	assert.Nil(t, err)
	id := string(res.Data)

	// The resolution interface survives the binary encoding.
	tx := f.signed(t, f.authority, &dispute.ResolveDisputeMsg{
		DisputeID:  id,
		Resolution: dispute.AdjustArtistPercentage{NewPercentage: 5000},
	})
	raw, err := tx.Marshal()
	assert.Nil(t, err)
	_, err = f.app.DeliverRaw(f.now, raw)
	assert.Nil(t, err)

	d, err := QueryDispute(f.app.store.DeliverStore(), id)
	assert.Nil(t, err)
	assert.Equal(t, dispute.Resolved, d.Status)
	all, err := QueryDisputesByTrack(f.app.store.DeliverStore(), "hit")
	assert.Nil(t, err)
	assert.Equal(t, 1, len(all))

	tr, err := QueryTrack(f.app.store.DeliverStore(), "hit")
	assert.Nil(t, err)
	assert.Equal(t, uint64(5000), tr.ArtistPool.Percentage)
}

func TestApplicationInitChain(t *testing.T) {
	a, err := NewRoyaltyApp(iavl.NewMemCommitStore(), nil)
	assert.Nil(t, err)

	now := time.Unix(1600000000, 0)
	_, err = a.Deliver(now, NewTx(&protocol.UpdateFeeMsg{FeePercentage: 1}))
	assert.IsErr(t, errors.ErrState, err)

	err = a.InitChain(&Genesis{ChainID: "x"})
	assert.IsErr(t, errors.ErrInput, err)

	assert.Nil(t, a.InitChain(&Genesis{ChainID: testChainID}))
	assert.Equal(t, testChainID, a.ChainID())
	err = a.InitChain(&Genesis{ChainID: testChainID})
	assert.IsErr(t, errors.ErrDuplicate, err)

	// Protocol was not part of genesis, it can be initialized by message.
	_, err = QueryProtocol(a.ReadStore())
	assert.IsErr(t, protocol.ErrNotInitialized, err)

	key := crypto.GenPrivKeyEd25519()
	tx := NewTx(&protocol.InitializeMsg{Authority: key.PublicKey().Address(), FeePercentage: 100})
	assert.Nil(t, tx.Sign(key, testChainID, 0))
	_, err = a.Deliver(now, tx)
	assert.Nil(t, err)
	h, err := a.Height()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), h)
}

func TestApplicationReopen(t *testing.T) {
	db, cleanup := weavetest.CommitKVStore(t)
	defer cleanup()

	a, err := NewRoyaltyApp(db, nil)
	assert.Nil(t, err)
	assert.Nil(t, a.InitChain(&Genesis{ChainID: testChainID}))

	key := crypto.GenPrivKeyEd25519()
	tx := NewTx(&protocol.InitializeMsg{Authority: key.PublicKey().Address(), FeePercentage: 100})
	assert.Nil(t, tx.Sign(key, testChainID, 0))
	_, err = a.Deliver(time.Unix(1600000000, 0), tx)
	assert.Nil(t, err)
	_, err = a.Commit()
	assert.Nil(t, err)

	b, err := NewRoyaltyApp(db, nil)
	assert.Nil(t, err)
	assert.Equal(t, testChainID, b.ChainID())
	p, err := QueryProtocol(b.ReadStore())
	assert.Nil(t, err)
	assert.Equal(t, uint64(100), p.FeePercentage)
	nonce, err := QueryNonce(b.ReadStore(), key.PublicKey().Address())
	assert.Nil(t, err)
	assert.Equal(t, int64(1), nonce)
}

func newMemStore() royalty.CommitKVStore {
	return iavl.NewMemCommitStore()
}
