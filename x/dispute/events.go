package dispute

import "github.com/iov-one/royalty"

// DisputeCreated is published when a dispute is opened.
type DisputeCreated struct {
	DisputeID   string           `json:"dispute_id"`
	TrackID     string           `json:"track_id"`
	Disputant   royalty.Address  `json:"disputant"`
	DisputeType DisputeType      `json:"dispute_type"`
	Timestamp   royalty.UnixTime `json:"timestamp"`
}

func (DisputeCreated) Kind() string { return "DisputeCreated" }

// DisputeResolved is published when the authority resolved a dispute.
type DisputeResolved struct {
	DisputeID  string           `json:"dispute_id"`
	TrackID    string           `json:"track_id"`
	Resolution string           `json:"resolution"`
	Resolver   royalty.Address  `json:"resolver"`
	Timestamp  royalty.UnixTime `json:"timestamp"`
}

func (DisputeResolved) Kind() string { return "DisputeResolved" }
