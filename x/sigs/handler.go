package sigs

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x"
)

// RegisterRoutes registers the sequence management handler.
func RegisterRoutes(r royalty.Registry, auth x.Authenticator) {
	r.Handle(pathBumpSequenceMsg, &bumpSequenceHandler{auth: auth, b: NewBucket()})
}

// bumpSequenceHandler moves the sequence of the main signer forward, which
// invalidates transactions signed in advance with the skipped values.
type bumpSequenceHandler struct {
	auth x.Authenticator
	b    Bucket
}

func (h *bumpSequenceHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *bumpSequenceHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	user, next, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if next == user.Sequence {
		return &royalty.DeliverResult{}, nil
	}
	user.Sequence = next
	if err := h.b.Save(db, user); err != nil {
		return nil, errors.Wrap(err, "save user")
	}
	return &royalty.DeliverResult{}, nil
}

// validate returns the signer data and its sequence after the message is
// applied. Signature verification already incremented the sequence by one,
// which counts towards the requested increment.
func (h *bumpSequenceHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*UserData, int64, error) {
	var msg BumpSequenceMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, 0, errors.Wrap(err, "load msg")
	}
	signer, err := x.RequireSigner(ctx, h.auth)
	if err != nil {
		return nil, 0, err
	}
	var user UserData
	if err := h.b.One(db, signer.Address(), &user); err != nil {
		return nil, 0, errors.Wrap(err, "signer sequence")
	}
	next := user.Sequence + int64(msg.Increment) - 1
	if next < user.Sequence {
		return nil, 0, errors.Wrap(errors.ErrOverflow, "signer sequence")
	}
	return &user, next, nil
}
