package weavetest

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Router is a minimal royalty.Registry that dispatches transactions to the
// handler registered for the message path. It lets extension tests run
// their RegisterRoutes wiring without the application stack.
type Router map[string]royalty.Handler

var _ royalty.Registry = Router{}
var _ royalty.Handler = Router{}

func (r Router) Handle(path string, h royalty.Handler) {
	if _, ok := r[path]; ok {
		panic("path already registered: " + path)
	}
	r[path] = h
}

func (r Router) handler(tx royalty.Tx) (royalty.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	if msg == nil {
		return nil, errors.Wrap(errors.ErrState, "nil msg")
	}
	h, ok := r[msg.Path()]
	if !ok {
		return nil, errors.Wrapf(errors.ErrNotFound, "no handler for %q", msg.Path())
	}
	return h, nil
}

func (r Router) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r Router) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	h, err := r.handler(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}
