package dispute

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x/track"
)

const (
	pathCreateDisputeMsg  = "dispute/create"
	pathResolveDisputeMsg = "dispute/resolve"
)

// CreateDisputeMsg opens a dispute against a track. The first signer is
// recorded as the disputant.
type CreateDisputeMsg struct {
	TrackID     string      `json:"track_id"`
	Type        DisputeType `json:"dispute_type"`
	Description string      `json:"description"`
}

var _ royalty.Msg = (*CreateDisputeMsg)(nil)

func (CreateDisputeMsg) Path() string {
	return pathCreateDisputeMsg
}

func (m *CreateDisputeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TrackID", track.ValidateTrackID(m.TrackID))
	errs = errors.AppendField(errs, "Type", m.Type.Validate())
	if len(m.Description) > maxDescriptionLength {
		errs = errors.Append(errs, errors.Field("Description", errors.ErrInput, "too long"))
	}
	return errs
}

// ResolveDisputeMsg resolves an open dispute by applying the resolution to
// the disputed track.
type ResolveDisputeMsg struct {
	DisputeID  string     `json:"dispute_id"`
	Resolution Resolution `json:"resolution"`
}

var _ royalty.Msg = (*ResolveDisputeMsg)(nil)

func (ResolveDisputeMsg) Path() string {
	return pathResolveDisputeMsg
}

func (m *ResolveDisputeMsg) Validate() error {
	var errs error
	if m.DisputeID == "" {
		errs = errors.Append(errs, errors.Field("DisputeID", errors.ErrEmpty, "required"))
	}
	if m.Resolution == nil {
		errs = errors.Append(errs, errors.Field("Resolution", errors.ErrEmpty, "required"))
	} else {
		errs = errors.AppendField(errs, "Resolution", m.Resolution.Validate())
	}
	return errs
}
