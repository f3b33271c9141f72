package store

import "github.com/iov-one/royalty"

// Move references for all storage types into this package
// for shorter names everywhere

type ReadOnlyKVStore = royalty.ReadOnlyKVStore
type SetDeleter = royalty.SetDeleter
type KVStore = royalty.KVStore
type Batch = royalty.Batch
type Iterator = royalty.Iterator
type CacheableKVStore = royalty.CacheableKVStore
type KVCacheWrap = royalty.KVCacheWrap
type CommitKVStore = royalty.CommitKVStore
type CommitID = royalty.CommitID

// Model is a raw key/value pair as held by a store.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair constructs a model from a key and a value.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}
