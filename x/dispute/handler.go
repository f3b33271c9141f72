package dispute

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/track"
)

// RegisterRoutes registers handlers for dispute messages.
func RegisterRoutes(r royalty.Registry, auth x.Authenticator) {
	disputes := NewBucket()
	tracks := track.NewBucket()
	r.Handle(pathCreateDisputeMsg, &createDisputeHandler{auth: auth, disputes: disputes, tracks: tracks})
	r.Handle(pathResolveDisputeMsg, &resolveDisputeHandler{auth: auth, disputes: disputes, tracks: tracks})
}

type createDisputeHandler struct {
	auth     x.Authenticator
	disputes Bucket
	tracks   track.Bucket
}

var _ royalty.Handler = (*createDisputeHandler)(nil)

func (h *createDisputeHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *createDisputeHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, disputant, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	id, err := h.disputes.NextID(db, msg.TrackID, now)
	if err != nil {
		return nil, errors.Wrap(err, "dispute id")
	}
	d := &Dispute{
		DisputeID:    id,
		TrackID:      msg.TrackID,
		Disputant:    disputant,
		Type:         msg.Type,
		Description:  msg.Description,
		Status:       Open,
		CreationTime: now,
	}
	if err := h.disputes.Save(db, d); err != nil {
		return nil, errors.Wrap(err, "save dispute")
	}
	return &royalty.DeliverResult{
		Data: []byte(id),
		Events: []royalty.Event{DisputeCreated{
			DisputeID:   id,
			TrackID:     d.TrackID,
			Disputant:   disputant,
			DisputeType: d.Type,
			Timestamp:   now,
		}},
	}, nil
}

func (h *createDisputeHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*CreateDisputeMsg, royalty.Address, error) {
	var msg CreateDisputeMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	if err := h.tracks.Has(db, []byte(msg.TrackID)); err != nil {
		return nil, nil, errors.Wrap(err, "disputed track")
	}
	return &msg, signer.Address(), nil
}

type resolveDisputeHandler struct {
	auth     x.Authenticator
	disputes Bucket
	tracks   track.Bucket
}

var _ royalty.Handler = (*resolveDisputeHandler)(nil)

func (h *resolveDisputeHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *resolveDisputeHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, p, d, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	log := royalty.GetLogger(ctx).With("dispute", d.DisputeID)

	// The track is looked up by reference, pools may have changed since
	// the dispute was opened.
	t, err := h.tracks.Get(db, d.TrackID)
	if err != nil {
		return nil, errors.Wrap(err, "disputed track")
	}
	applied, err := Apply(t, msg.Resolution)
	if err != nil {
		return nil, err
	}
	if !applied {
		log.Info("redistribution not covered by pending balance, pools unchanged")
	}
	if sum := t.PercentageSum(); sum != track.BasisPoints {
		log.Info("pool percentages drifted", "track", t.TrackID, "sum", sum)
	}

	d.Status = Resolved
	d.ResolutionTime = now
	d.ResolutionDetails = msg.Resolution.String()

	if err := h.tracks.Save(db, t); err != nil {
		return nil, errors.Wrap(err, "save track")
	}
	if err := h.disputes.Save(db, d); err != nil {
		return nil, errors.Wrap(err, "save dispute")
	}
	return &royalty.DeliverResult{
		Events: []royalty.Event{DisputeResolved{
			DisputeID:  d.DisputeID,
			TrackID:    d.TrackID,
			Resolution: d.ResolutionDetails,
			Resolver:   p.Authority,
			Timestamp:  now,
		}},
	}, nil
}

func (h *resolveDisputeHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*ResolveDisputeMsg, *protocol.Protocol, *Dispute, error) {
	var msg ResolveDisputeMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	d, err := h.disputes.Get(db, msg.DisputeID)
	if err != nil {
		return nil, nil, nil, err
	}
	if d.Status != Open {
		return nil, nil, nil, errors.Wrapf(ErrDisputeNotOpen, "dispute is %s", d.Status)
	}
	p, err := protocol.LoadAuthorized(ctx, db, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, p, d, nil
}
