package track

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const (
	pathCreateTrackMsg         = "track/create"
	pathUpdateStreamingDataMsg = "track/update_streaming_data"
	pathSetStatusMsg           = "track/set_status"

	maxLabelLength = 64
)

// CreateTrackMsg registers a new track with the default pool split.
type CreateTrackMsg struct {
	TrackID          string `json:"track_id"`
	Title            string `json:"title"`
	Artist           string `json:"artist"`
	TotalStreams     uint64 `json:"total_streams"`
	RevenuePerStream uint64 `json:"revenue_per_stream"`
}

var _ royalty.Msg = (*CreateTrackMsg)(nil)

func (CreateTrackMsg) Path() string {
	return pathCreateTrackMsg
}

func (m *CreateTrackMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TrackID", ValidateTrackID(m.TrackID))
	if len(m.Title) > maxTextLength {
		errs = errors.Append(errs, errors.Field("Title", errors.ErrInput, "too long"))
	}
	if len(m.Artist) > maxTextLength {
		errs = errors.Append(errs, errors.Field("Artist", errors.ErrInput, "too long"))
	}
	return errs
}

// UpdateStreamingDataMsg reports additional streams of a track. Counts are
// expected to be verified before they are submitted.
type UpdateStreamingDataMsg struct {
	TrackID           string `json:"track_id"`
	AdditionalStreams uint64 `json:"additional_streams"`
	Platform          string `json:"platform"`
	Country           string `json:"country"`
}

var _ royalty.Msg = (*UpdateStreamingDataMsg)(nil)

func (UpdateStreamingDataMsg) Path() string {
	return pathUpdateStreamingDataMsg
}

func (m *UpdateStreamingDataMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TrackID", ValidateTrackID(m.TrackID))
	if len(m.Platform) > maxLabelLength {
		errs = errors.Append(errs, errors.Field("Platform", errors.ErrInput, "too long"))
	}
	if len(m.Country) > maxLabelLength {
		errs = errors.Append(errs, errors.Field("Country", errors.ErrInput, "too long"))
	}
	return errs
}

// SetStatusMsg changes the lifecycle state of a track.
type SetStatusMsg struct {
	TrackID string      `json:"track_id"`
	Status  TrackStatus `json:"status"`
}

var _ royalty.Msg = (*SetStatusMsg)(nil)

func (SetStatusMsg) Path() string {
	return pathSetStatusMsg
}

func (m *SetStatusMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TrackID", ValidateTrackID(m.TrackID))
	errs = errors.AppendField(errs, "Status", m.Status.Validate())
	return errs
}
