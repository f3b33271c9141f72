package royalty

// ReadOnlyKVStore gives read access to a key value store. Keys must not be
// nil.
type ReadOnlyKVStore interface {
	// Get returns nil when the key does not exist.
	Get(key []byte) ([]byte, error)
	Has(key []byte) (bool, error)

	// Iterator walks keys in [start, end) in ascending order. A nil bound
	// is open. The domain must not be written to while the iterator is in
	// use.
	Iterator(start, end []byte) (Iterator, error)
	// ReverseIterator walks keys in [start, end) in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// SetDeleter is the write side shared by stores and batches. Keys and values
// passed in must not be modified afterwards.
type SetDeleter interface {
	Set(key, value []byte) error
	Delete(key []byte) error
}

// KVStore is the store every handler operates on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them together on Write.
type Batch interface {
	SetDeleter
	Write() error
}

// Iterator is a cursor over a key range:
//
//   it, err := db.Iterator(start, end)
//   ...
//   defer it.Close()
//   for ; it.Valid(); it.Next() {
//     key, value := it.Key(), it.Value()
//   }
//
// Key, Value and Next panic once Valid returned false.
type Iterator interface {
	Valid() bool
	Next() error
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can open a savepoint over itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a savepoint: reads see the pending writes, Write applies
// them to the parent store and Discard drops them. Savepoints nest.
type KVCacheWrap interface {
	CacheableKVStore
	Write() error
	Discard()
}

// CommitKVStore is the durable, versioned store the application state lives
// in. Writes go through a CacheWrap and become visible to Get only after
// Commit.
type CommitKVStore interface {
	// Get reads the last committed version.
	Get(key []byte) ([]byte, error)
	CacheWrap() KVCacheWrap

	// Commit persists a new version.
	Commit() (CommitID, error)
	// LoadLatestVersion reloads the last persisted version, dropping
	// anything that was not committed.
	LoadLatestVersion() error
	LatestVersion() (CommitID, error)
}

// CommitID identifies a committed version by its number and root hash.
type CommitID struct {
	Version int64
	Hash    []byte
}
