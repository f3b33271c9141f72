package track

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x"
	"github.com/iov-one/royalty/x/protocol"
)

// RegisterRoutes registers handlers for track ledger messages.
func RegisterRoutes(r royalty.Registry, auth x.Authenticator) {
	bucket := NewBucket()
	r.Handle(pathCreateTrackMsg, &createTrackHandler{auth: auth, bucket: bucket})
	r.Handle(pathUpdateStreamingDataMsg, &updateStreamingHandler{auth: auth, bucket: bucket})
	r.Handle(pathSetStatusMsg, &setStatusHandler{auth: auth, bucket: bucket})
}

type createTrackHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ royalty.Handler = (*createTrackHandler)(nil)

func (h *createTrackHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *createTrackHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	t := NewTrack(msg.TrackID, msg.Title, msg.Artist, msg.TotalStreams, msg.RevenuePerStream, now)
	if err := h.bucket.Create(db, t); err != nil {
		return nil, err
	}
	return &royalty.DeliverResult{
		Data: []byte(t.TrackID),
		Events: []royalty.Event{TrackCreated{
			TrackID:   t.TrackID,
			Title:     t.Title,
			Artist:    t.Artist,
			Timestamp: now,
		}},
	}, nil
}

func (h *createTrackHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*CreateTrackMsg, error) {
	var msg CreateTrackMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.RequireSigner(ctx, h.auth); err != nil {
		return nil, err
	}
	return &msg, nil
}

type updateStreamingHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ royalty.Handler = (*updateStreamingHandler)(nil)

func (h *updateStreamingHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *updateStreamingHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	revenue, boost, err := t.RecordStreams(msg.AdditionalStreams, now)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, t); err != nil {
		return nil, errors.Wrap(err, "save track")
	}
	return &royalty.DeliverResult{
		Events: []royalty.Event{StreamingDataUpdated{
			TrackID:           t.TrackID,
			AdditionalStreams: msg.AdditionalStreams,
			Platform:          msg.Platform,
			Country:           msg.Country,
			RevenueGenerated:  revenue,
			PerformanceBoost:  boost,
			Timestamp:         now,
		}},
	}, nil
}

func (h *updateStreamingHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*UpdateStreamingDataMsg, *Track, error) {
	var msg UpdateStreamingDataMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := protocol.LoadAuthorized(ctx, db, h.auth); err != nil {
		return nil, nil, err
	}
	t, err := h.bucket.Get(db, msg.TrackID)
	if err != nil {
		return nil, nil, err
	}
	if t.Status != Active {
		return nil, nil, errors.Wrapf(ErrTrackInactive, "track is %s", t.Status)
	}
	return &msg, t, nil
}

type setStatusHandler struct {
	auth   x.Authenticator
	bucket Bucket
}

var _ royalty.Handler = (*setStatusHandler)(nil)

func (h *setStatusHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *setStatusHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	event := TrackStatusChanged{
		TrackID:   t.TrackID,
		From:      t.Status,
		To:        msg.Status,
		Timestamp: now,
	}
	if err := t.SetStatus(msg.Status); err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, t); err != nil {
		return nil, errors.Wrap(err, "save track")
	}
	return &royalty.DeliverResult{Events: []royalty.Event{event}}, nil
}

func (h *setStatusHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*SetStatusMsg, *Track, error) {
	var msg SetStatusMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := protocol.LoadAuthorized(ctx, db, h.auth); err != nil {
		return nil, nil, err
	}
	t, err := h.bucket.Get(db, msg.TrackID)
	if err != nil {
		return nil, nil, err
	}
	return &msg, t, nil
}
