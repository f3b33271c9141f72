package track

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const optKey = "tracks"

// GenesisTrack describes a track registered at genesis.
type GenesisTrack struct {
	TrackID          string           `json:"track_id"`
	Title            string           `json:"title"`
	Artist           string           `json:"artist"`
	TotalStreams     uint64           `json:"total_streams"`
	RevenuePerStream uint64           `json:"revenue_per_stream"`
	CreationTime     royalty.UnixTime `json:"creation_time"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ royalty.Initializer = Initializer{}

// FromGenesis registers all tracks listed under "tracks".
func (Initializer) FromGenesis(opts royalty.Options, db royalty.KVStore) error {
	var tracks []GenesisTrack
	if err := opts.ReadOptions(optKey, &tracks); err != nil {
		return errors.Wrapf(err, "read %s genesis", optKey)
	}
	bucket := NewBucket()
	for i, g := range tracks {
		t := NewTrack(g.TrackID, g.Title, g.Artist, g.TotalStreams, g.RevenuePerStream, g.CreationTime)
		if err := bucket.Create(db, t); err != nil {
			return errors.Wrapf(err, "track #%d", i)
		}
	}
	return nil
}
