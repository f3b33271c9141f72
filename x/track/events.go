package track

import "github.com/iov-one/royalty"

// TrackCreated is published when a track is registered.
type TrackCreated struct {
	TrackID   string           `json:"track_id"`
	Title     string           `json:"title"`
	Artist    string           `json:"artist"`
	Timestamp royalty.UnixTime `json:"timestamp"`
}

func (TrackCreated) Kind() string { return "TrackCreated" }

// StreamingDataUpdated is published for every accepted streams report.
type StreamingDataUpdated struct {
	TrackID           string           `json:"track_id"`
	AdditionalStreams uint64           `json:"additional_streams"`
	Platform          string           `json:"platform"`
	Country           string           `json:"country"`
	RevenueGenerated  uint64           `json:"revenue_generated"`
	PerformanceBoost  uint64           `json:"performance_boost"`
	Timestamp         royalty.UnixTime `json:"timestamp"`
}

func (StreamingDataUpdated) Kind() string { return "StreamingDataUpdated" }

// TrackStatusChanged is published when the lifecycle state of a track
// changes.
type TrackStatusChanged struct {
	TrackID   string           `json:"track_id"`
	From      TrackStatus      `json:"from"`
	To        TrackStatus      `json:"to"`
	Timestamp royalty.UnixTime `json:"timestamp"`
}

func (TrackStatusChanged) Kind() string { return "TrackStatusChanged" }
