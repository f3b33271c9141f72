package utils

import (
	"time"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Logging writes one log line per processed transaction. Failures are
// logged as errors, successful checks at debug and successful delivers at
// info level.
type Logging struct{}

var _ royalty.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Checker) (*royalty.CheckResult, error) {
	started := time.Now()
	res, err := next.Check(ctx, db, tx)
	logger := txLogger(ctx, tx, started)
	switch {
	case err != nil:
		logFailure(logger, err)
	default:
		logger.Debug(res.Log)
	}
	return res, err
}

func (Logging) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Deliverer) (*royalty.DeliverResult, error) {
	started := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	logger := txLogger(ctx, tx, started)
	switch {
	case err != nil:
		logFailure(logger, err)
	default:
		logger.Info(res.Log, "events", len(res.Events))
	}
	return res, err
}

type logger interface {
	Debug(msg string, keyvals ...interface{})
	Info(msg string, keyvals ...interface{})
	Error(msg string, keyvals ...interface{})
}

func txLogger(ctx royalty.Context, tx royalty.Tx, started time.Time) logger {
	return royalty.GetLogger(ctx).With(
		"path", royalty.GetPath(tx),
		"duration", time.Since(started)/time.Microsecond,
	)
}

func logFailure(l logger, err error) {
	code, _ := errors.Info(err, false)
	l.Error("tx failed", "err", err, "code", code)
}
