package utils

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Savepoint runs the rest of the chain in a cache and writes it back only
// when no error was returned. It is disabled for both phases until enabled
// with OnCheck or OnDeliver.
type Savepoint struct {
	check   bool
	deliver bool
}

var _ royalty.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Checker) (res *royalty.CheckResult, err error) {
	if !s.check {
		return next.Check(ctx, db, tx)
	}
	err = Atomic(db, func(cache royalty.KVStore) error {
		res, err = next.Check(ctx, cache, tx)
		return err
	})
	return res, err
}

func (s Savepoint) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Deliverer) (res *royalty.DeliverResult, err error) {
	if !s.deliver {
		return next.Deliver(ctx, db, tx)
	}
	err = Atomic(db, func(cache royalty.KVStore) error {
		res, err = next.Deliver(ctx, cache, tx)
		return err
	})
	return res, err
}

// Atomic calls fn with a cache of db and writes the cache back only if fn
// succeeds. A db that cannot be cached is handed to fn directly.
func Atomic(db royalty.KVStore, fn func(royalty.KVStore) error) error {
	cacheable, ok := db.(royalty.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	return errors.Wrap(cache.Write(), "write savepoint")
}
