package utils

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Recovery stops a panic raised by any handler or decorator below it. The
// panic is returned as ErrPanic and reported to the context logger, so the
// surrounding savepoint discards the partial state of the message.
type Recovery struct{}

var _ royalty.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Checker) (res *royalty.CheckResult, err error) {
	defer reportPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Deliverer) (res *royalty.DeliverResult, err error) {
	defer reportPanic(ctx, tx, &err)
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}

// reportPanic must be deferred before errors.Recover so that it observes the
// recovered error.
func reportPanic(ctx royalty.Context, tx royalty.Tx, err *error) {
	if *err == nil || !errors.ErrPanic.Is(*err) {
		return
	}
	royalty.GetLogger(ctx).Error("handler panic", "path", royalty.GetPath(tx), "err", *err)
}
