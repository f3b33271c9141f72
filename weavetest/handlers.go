package weavetest

import "github.com/iov-one/royalty"

// Handler is a mock implementation of the royalty.Handler interface that
// counts every call.
type Handler struct {
	checkCall   int
	CheckResult royalty.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult royalty.DeliverResult
	DeliverErr    error
	// Write if set, is stored under Key by every Deliver call before
	// returning. Use it to test rollback behaviour.
	Key, Write []byte
	// Panic if set, is raised by Deliver.
	Panic interface{}
}

var _ royalty.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	h.deliverCall++
	if h.Write != nil {
		if err := db.Set(h.Key, h.Write); err != nil {
			return nil, err
		}
	}
	if h.Panic != nil {
		panic(h.Panic)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}

// Decorator is a royalty.Decorator that counts the calls passing through
// it. A non nil CheckErr or DeliverErr stops the call before the wrapped
// handler is reached.
type Decorator struct {
	CheckErr   error
	DeliverErr error

	calls int
}

var _ royalty.Decorator = (*Decorator)(nil)

func (d *Decorator) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Checker) (*royalty.CheckResult, error) {
	d.calls++
	if d.CheckErr != nil {
		return nil, d.CheckErr
	}
	return next.Check(ctx, db, tx)
}

func (d *Decorator) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Deliverer) (*royalty.DeliverResult, error) {
	d.calls++
	if d.DeliverErr != nil {
		return nil, d.DeliverErr
	}
	return next.Deliver(ctx, db, tx)
}

// CallCount returns the number of Check and Deliver calls together.
func (d *Decorator) CallCount() int {
	return d.calls
}

// Decorate returns a handler that passes every call through given decorator.
func Decorate(h royalty.Handler, d royalty.Decorator) royalty.Handler {
	return &decoratedHandler{hn: h, dc: d}
}

type decoratedHandler struct {
	hn royalty.Handler
	dc royalty.Decorator
}

func (d *decoratedHandler) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	return d.dc.Check(ctx, db, tx, d.hn)
}

func (d *decoratedHandler) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	return d.dc.Deliver(ctx, db, tx, d.hn)
}
