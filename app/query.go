package app

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x/cash"
	"github.com/iov-one/royalty/x/dispute"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/sigs"
	"github.com/iov-one/royalty/x/track"
)

// QueryProtocol returns the protocol registry record.
func QueryProtocol(db royalty.ReadOnlyKVStore) (*protocol.Protocol, error) {
	return protocol.Load(db)
}

// QueryTrack returns the track of given ID.
func QueryTrack(db royalty.ReadOnlyKVStore, trackID string) (*track.Track, error) {
	return track.NewBucket().Get(db, trackID)
}

// QueryTracksByArtist returns all tracks of given artist.
func QueryTracksByArtist(db royalty.ReadOnlyKVStore, artist string) ([]*track.Track, error) {
	return track.NewBucket().ByArtist(db, artist)
}

// QueryDispute returns the dispute of given ID.
func QueryDispute(db royalty.ReadOnlyKVStore, disputeID string) (*dispute.Dispute, error) {
	return dispute.NewBucket().Get(db, disputeID)
}

// QueryDisputesByTrack returns all disputes opened against given track.
func QueryDisputesByTrack(db royalty.ReadOnlyKVStore, trackID string) ([]*dispute.Dispute, error) {
	return dispute.NewBucket().ByTrack(db, trackID)
}

// QueryBalance returns the custody balance of given address.
func QueryBalance(db royalty.ReadOnlyKVStore, addr royalty.Address) (uint64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	return cash.NewController().Balance(db, addr)
}

// QueryVault returns the vault address of a track and the balance it holds.
func QueryVault(db royalty.ReadOnlyKVStore, trackID string) (royalty.Address, uint64, error) {
	if err := track.ValidateTrackID(trackID); err != nil {
		return nil, 0, err
	}
	addr := protocol.VaultAddress(trackID)
	balance, err := cash.NewController().Balance(db, addr)
	if err != nil {
		return nil, 0, err
	}
	return addr, balance, nil
}

// QueryNonce returns the sequence the next signature of given address must
// carry.
func QueryNonce(db royalty.ReadOnlyKVStore, addr royalty.Address) (int64, error) {
	return sigs.NextNonce(db, addr)
}
