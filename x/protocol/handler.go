package protocol

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/x"
)

// RegisterRoutes registers handlers for protocol registry messages.
func RegisterRoutes(r royalty.Registry, auth x.Authenticator) {
	r.Handle(pathInitializeMsg, &initializeHandler{auth: auth})
	r.Handle(pathUpdateFeeMsg, &updateFeeHandler{auth: auth})
}

// RequireAuthority returns ErrUnauthorized unless the protocol authority
// signed the current transaction.
func RequireAuthority(ctx royalty.Context, auth x.Authenticator, p *Protocol) error {
	return x.RequireAddress(ctx, auth, p.Authority, "protocol authority")
}

// LoadAuthorized loads the protocol registry and ensures that the
// authority signed the current transaction.
func LoadAuthorized(ctx royalty.Context, db royalty.ReadOnlyKVStore, auth x.Authenticator) (*Protocol, error) {
	p, err := Load(db)
	if err != nil {
		return nil, err
	}
	if err := RequireAuthority(ctx, auth, p); err != nil {
		return nil, err
	}
	return p, nil
}

type initializeHandler struct {
	auth x.Authenticator
}

var _ royalty.Handler = (*initializeHandler)(nil)

func (h *initializeHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *initializeHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	p := &Protocol{
		Authority:             msg.Authority,
		FeePercentage:         msg.FeePercentage,
		PerformanceMultiplier: DefaultPerformanceMultiplier,
	}
	if err := Save(db, p); err != nil {
		return nil, errors.Wrap(err, "save protocol")
	}
	royalty.GetLogger(ctx).Info("protocol initialized",
		"authority", msg.Authority, "fee", msg.FeePercentage)
	return &royalty.DeliverResult{
		Events: []royalty.Event{ProtocolInitialized{
			Authority:     msg.Authority,
			FeePercentage: msg.FeePercentage,
			Timestamp:     now,
		}},
	}, nil
}

func (h *initializeHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*InitializeMsg, error) {
	var msg InitializeMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	switch ok, err := IsInitialized(db); {
	case err != nil:
		return nil, err
	case ok:
		return nil, errors.Wrap(errors.ErrDuplicate, "protocol already initialized")
	}
	if err := x.RequireAddress(ctx, h.auth, msg.Authority, "new authority"); err != nil {
		return nil, err
	}
	return &msg, nil
}

type updateFeeHandler struct {
	auth x.Authenticator
}

var _ royalty.Handler = (*updateFeeHandler)(nil)

func (h *updateFeeHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &royalty.CheckResult{}, nil
}

func (h *updateFeeHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	msg, p, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	now, err := royalty.BlockUnixTime(ctx)
	if err != nil {
		return nil, err
	}
	event := FeeUpdated{
		OldFeePercentage: p.FeePercentage,
		NewFeePercentage: msg.FeePercentage,
		Timestamp:        now,
	}
	p.FeePercentage = msg.FeePercentage
	if err := Save(db, p); err != nil {
		return nil, errors.Wrap(err, "save protocol")
	}
	return &royalty.DeliverResult{Events: []royalty.Event{event}}, nil
}

func (h *updateFeeHandler) validate(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*UpdateFeeMsg, *Protocol, error) {
	var msg UpdateFeeMsg
	if err := royalty.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	p, err := LoadAuthorized(ctx, db, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, p, nil
}
