package distribution

import (
	"fmt"
	"strings"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x"
	"github.com/iov-one/royalty/x/protocol"
	"github.com/iov-one/royalty/x/track"
	"github.com/iov-one/royalty/x/utils"
)

// RegisterRoutes registers handlers for distribution messages.
func RegisterRoutes(r royalty.Registry, auth x.Authenticator, ctrl Transfer) {
	bucket := track.NewBucket()
	r.Handle(pathDistributeMsg, &distributeHandler{auth: auth, bucket: bucket, ctrl: ctrl})
	r.Handle(pathBatchDistributeMsg, &batchDistributeHandler{auth: auth, bucket: bucket})
	r.Handle(pathAutoDistributeMsg, &autoDistributeHandler{auth: auth, bucket: bucket})
}

type distributeHandler struct {
	auth   x.Authenticator
	bucket track.Bucket
	ctrl   Transfer
}

var _ royalty.Handler = (*distributeHandler)(nil)

func (h *distributeHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *distributeHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, p, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}

	var event *RoyaltiesDistributed
	err = utils.Atomic(db, func(db royalty.KVStore) error {
		var err error
		event, err = Distribute(db, h.ctrl, p, t, msg.RecipientType, msg.Recipient, now)
		if err != nil {
			return err
		}
		if err := h.bucket.Save(db, t); err != nil {
			return errors.Wrap(err, "save track")
		}
		if err := protocol.Save(db, p); err != nil {
			return errors.Wrap(err, "save protocol")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	royalty.GetLogger(ctx).Info("royalties distributed",
		"track", t.TrackID, "pool", msg.RecipientType.String(),
		"amount", event.Amount, "fee", event.ProtocolFee)
	return &royalty.DeliverResult{Events: []royalty.Event{*event}}, nil
}

func (h *distributeHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*DistributeMsg, *protocol.Protocol, *track.Track, error) {
	var msg DistributeMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	p, err := protocol.LoadAuthorized(ctx, db, h.auth)
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := h.bucket.Get(db, msg.TrackID)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, p, t, nil
}

type batchDistributeHandler struct {
	auth   x.Authenticator
	bucket track.Bucket
}

var _ royalty.Handler = (*batchDistributeHandler)(nil)

func (h *batchDistributeHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *batchDistributeHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	queued, skipped, err := Reserve(t, msg.Recipients)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Save(db, t); err != nil {
		return nil, errors.Wrap(err, "save track")
	}

	res := &royalty.DeliverResult{}
	for _, e := range queued {
		res.Events = append(res.Events, e)
	}
	if len(skipped) > 0 {
		idx := make([]string, len(skipped))
		for i, n := range skipped {
			idx[i] = fmt.Sprint(n)
		}
		res.Log = "skipped recipients: " + strings.Join(idx, ",")
		royalty.GetLogger(ctx).Info("batch entries not covered by pending balance",
			"track", t.TrackID, "skipped", res.Log)
	}
	return res, nil
}

func (h *batchDistributeHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*BatchDistributeMsg, *track.Track, error) {
	var msg BatchDistributeMsg
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

type autoDistributeHandler struct {
	auth   x.Authenticator
	bucket track.Bucket
}

var _ royalty.Handler = (*autoDistributeHandler)(nil)

func (h *autoDistributeHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *autoDistributeHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	_, p, t, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	event, err := sweep(db, h.bucket, p, t, now)
	if err != nil {
		return nil, err
	}
	res := &royalty.DeliverResult{}
	if event != nil {
		res.Events = append(res.Events, *event)
	}
	return res, nil
}

func (h *autoDistributeHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*AutoDistributeMsg, *protocol.Protocol, *track.Track, error) {
	var msg AutoDistributeMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, errors.Wrap(err, "load msg")
	}
	if _, err := x.RequireSigner(ctx, h.auth); err != nil {
		return nil, nil, nil, err
	}
	p, err := protocol.Load(db)
	if err != nil {
		return nil, nil, nil, err
	}
	t, err := h.bucket.Get(db, msg.TrackID)
	if err != nil {
		return nil, nil, nil, err
	}
	return &msg, p, t, nil
}

// sweep applies AutoDistribute and stores the result.
func sweep(db royalty.KVStore, bucket track.Bucket, p *protocol.Protocol, t *track.Track, now royalty.UnixTime) (*AutoDistributionCompleted, error) {
	event, err := AutoDistribute(p, t, now)
	if err != nil || event == nil {
		return nil, err
	}
	if err := bucket.Save(db, t); err != nil {
		return nil, errors.Wrap(err, "save track")
	}
	if err := protocol.Save(db, p); err != nil {
		return nil, errors.Wrap(err, "save protocol")
	}
	return event, nil
}
