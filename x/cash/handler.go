package cash

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r royalty.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
}

// SendHandler will handle sending funds
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ royalty.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and authorized
func (h SendHandler) Check(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

// Deliver moves the funds from source to receiver if
// all preconditions are met
func (h SendHandler) Deliver(ctx royalty.Context, store royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.Transfer(store, msg.Source, msg.Destination, signer, msg.Amount); err != nil {
		return nil, err
	}
	return &royalty.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx royalty.Context, tx royalty.Tx) (*SendMsg, royalty.Condition, error) {
	var msg SendMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	// The signer condition that owns the source acts as the transfer
	// authority.
	for _, c := range h.auth.GetConditions(ctx) {
		if c.Address().Equals(msg.Source) {
			return &msg, c, nil
		}
	}
	return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source owner signature missing")
}
