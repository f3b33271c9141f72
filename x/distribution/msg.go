package distribution

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x/track"
)

const (
	pathDistributeMsg      = "distribution/distribute"
	pathBatchDistributeMsg = "distribution/batch_distribute"
	pathAutoDistributeMsg  = "distribution/auto_distribute"

	maxRecipients = 64
)

// DistributeMsg pays the pending balance of a single pool.
type DistributeMsg struct {
	TrackID       string              `json:"track_id"`
	RecipientType track.RecipientType `json:"recipient_type"`
	Recipient     royalty.Address     `json:"recipient"`
}

var _ royalty.Msg = (*DistributeMsg)(nil)

func (DistributeMsg) Path() string {
	return pathDistributeMsg
}

func (m *DistributeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TrackID", track.ValidateTrackID(m.TrackID))
	errs = errors.AppendField(errs, "RecipientType", m.RecipientType.Validate())
	errs = errors.AppendField(errs, "Recipient", m.Recipient.Validate())
	return errs
}

// Recipient is a single entry of a batch distribution. It is never
// persisted.
type Recipient struct {
	Address royalty.Address     `json:"address"`
	Type    track.RecipientType `json:"type"`
	Amount  uint64              `json:"amount"`
}

func (r *Recipient) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Address", r.Address.Validate())
	errs = errors.AppendField(errs, "Type", r.Type.Validate())
	return errs
}

// BatchDistributeMsg reserves pending balance for many recipients.
type BatchDistributeMsg struct {
	TrackID    string      `json:"track_id"`
	Recipients []Recipient `json:"recipients"`
}

var _ royalty.Msg = (*BatchDistributeMsg)(nil)

func (BatchDistributeMsg) Path() string {
	return pathBatchDistributeMsg
}

func (m *BatchDistributeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "TrackID", track.ValidateTrackID(m.TrackID))
	switch n := len(m.Recipients); {
	case n == 0:
		errs = errors.Append(errs, errors.Field("Recipients", ErrEmptyRecipients, "at least one required"))
	case n > maxRecipients:
		errs = errors.Append(errs, errors.Field("Recipients", errors.ErrInput, "at most %d allowed", maxRecipients))
	}
	for i, r := range m.Recipients {
		if err := r.Validate(); err != nil {
			errs = errors.Append(errs, errors.Field("Recipients", err, "recipient #%d", i))
		}
	}
	return errs
}

// AutoDistributeMsg sweeps pending balances of a track.
type AutoDistributeMsg struct {
	TrackID string `json:"track_id"`
}

var _ royalty.Msg = (*AutoDistributeMsg)(nil)

func (AutoDistributeMsg) Path() string {
	return pathAutoDistributeMsg
}

func (m *AutoDistributeMsg) Validate() error {
	return errors.AppendField(nil, "TrackID", track.ValidateTrackID(m.TrackID))
}
