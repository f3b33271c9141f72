package app

import (
	"context"
	"testing"

	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store"
	"github.com/iov-one/royalty/weavetest"
	"github.com/iov-one/royalty/weavetest/assert"
	"github.com/iov-one/royalty/x/cash"
)

func TestRouter(t *testing.T) {
	var (
		r    = NewRouter()
		msg  = &weavetest.Msg{RoutePath: "test/good"}
		tx   = &weavetest.Tx{Msg: msg}
		good = &weavetest.Handler{}
		ctx  = context.Background()
		db   = store.MemStore()
	)
	r.Handle(msg.Path(), good)

	_, err := r.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 1, good.CheckCallCount())
	assert.Equal(t, 1, good.DeliverCallCount())

	missing := &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/missing"}}
	_, err = r.Check(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, db, missing)
	assert.IsErr(t, errors.ErrNotFound, err)

	_, err = r.Deliver(ctx, db, &weavetest.Tx{})
	assert.IsErr(t, errors.ErrState, err)

	assert.Panics(t, func() { r.Handle(msg.Path(), good) })
	assert.Panics(t, func() { r.Handle("with space", good) })
}

func TestRoutesRegisterEveryMessage(t *testing.T) {
	r := Routes(&weavetest.Auth{}, cash.NewController())
	assert.Equal(t, []string{
		"cash/send",
		"dispute/create",
		"dispute/resolve",
		"distribution/auto_distribute",
		"distribution/batch_distribute",
		"distribution/distribute",
		"protocol/initialize",
		"protocol/update_fee",
		"sigs/bump_sequence",
		"track/create",
		"track/set_status",
		"track/update_streaming_data",
	}, r.Paths())
}

func TestChain(t *testing.T) {
	var (
		d1, d2 = &weavetest.Decorator{}, &weavetest.Decorator{}
		h      = &weavetest.Handler{}
		ctx    = context.Background()
		db     = store.MemStore()
		tx     = &weavetest.Tx{}
		nilDec *weavetest.Decorator
	)

	stack := ChainDecorators(d1, nilDec).Chain(d2).WithHandler(h)
	_, err := stack.Check(ctx, db, tx)
	assert.Nil(t, err)
	_, err = stack.Deliver(ctx, db, tx)
	assert.Nil(t, err)
	assert.Equal(t, 2, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 1, h.CheckCallCount())
	assert.Equal(t, 1, h.DeliverCallCount())

	d1.DeliverErr = errors.ErrHuman
	_, err = stack.Deliver(ctx, db, tx)
	assert.IsErr(t, errors.ErrHuman, err)
	assert.Equal(t, 3, d1.CallCount())
	assert.Equal(t, 2, d2.CallCount())
	assert.Equal(t, 1, h.DeliverCallCount())
}
