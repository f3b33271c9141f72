package app

import (
	"reflect"

	"github.com/iov-one/royalty"
)

// Decorators is an ordered stack of decorators waiting for the handler they
// wrap. The first decorator is the outermost one.
type Decorators struct {
	stack []royalty.Decorator
}

// ChainDecorators starts a stack. Nil decorators, including typed nil
// pointers, are dropped so optional decorators can be passed as they are.
//
//   app.ChainDecorators(
//     utils.NewRecovery(),
//     utils.NewLogging(),
//     sigs.NewDecorator(),
//     utils.NewSavepoint().OnDeliver(),
//   ).WithHandler(router)
func ChainDecorators(ds ...royalty.Decorator) Decorators {
	return Decorators{}.Chain(ds...)
}

// Chain returns a new stack with ds placed below the existing decorators.
func (d Decorators) Chain(ds ...royalty.Decorator) Decorators {
	stack := make([]royalty.Decorator, 0, len(d.stack)+len(ds))
	stack = append(stack, d.stack...)
	for _, dec := range ds {
		if !isNilDecorator(dec) {
			stack = append(stack, dec)
		}
	}
	return Decorators{stack: stack}
}

func isNilDecorator(dec royalty.Decorator) bool {
	if dec == nil {
		return true
	}
	v := reflect.ValueOf(dec)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

// WithHandler closes the stack over h.
func (d Decorators) WithHandler(h royalty.Handler) royalty.Handler {
	for i := len(d.stack) - 1; i >= 0; i-- {
		h = decorated{dec: d.stack[i], next: h}
	}
	return h
}

type decorated struct {
	dec  royalty.Decorator
	next royalty.Handler
}

var _ royalty.Handler = decorated{}

func (d decorated) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.CheckResult, error) {
	return d.dec.Check(ctx, db, tx, d.next)
}

func (d decorated) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) (*royalty.DeliverResult, error) {
	return d.dec.Deliver(ctx, db, tx, d.next)
}
