package iavl

import (
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/store"
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"
)

// DefaultCacheSize is the number of iavl nodes kept in memory.
const DefaultCacheSize = 10000

// CommitStore is a versioned merkle tree. Every Commit saves a new version
// whose root hash identifies the state of the ledger.
type CommitStore struct {
	tree *iavl.MutableTree
	db   dbm.DB
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens a leveldb database called name in the dir directory.
func NewCommitStore(dir, name string) CommitStore {
	return open(dbm.NewDB(name, dbm.GoLevelDBBackend, dir))
}

// NewMemCommitStore keeps every version in memory. Used by tests.
func NewMemCommitStore() CommitStore {
	return open(dbm.NewMemDB())
}

func open(db dbm.DB) CommitStore {
	return CommitStore{tree: iavl.NewMutableTree(db, DefaultCacheSize), db: db}
}

// Get reads the last committed value, ignoring pending writes.
func (s CommitStore) Get(key []byte) ([]byte, error) {
	_, v := s.tree.GetVersioned(key, s.tree.Version())
	return v, nil
}

func (s CommitStore) Commit() (store.CommitID, error) {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return store.CommitID{}, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return store.CommitID{Version: version, Hash: hash}, nil
}

// LoadLatestVersion restores the last saved version. An interrupted commit
// is ignored.
func (s CommitStore) LoadLatestVersion() error {
	if _, err := s.tree.Load(); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}

func (s CommitStore) LatestVersion() (store.CommitID, error) {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}, nil
}

func (s CommitStore) Close() {
	s.db.Close()
}

// CacheWrap buffers writes in memory. Writing the cache moves them into the
// working tree, which is saved on the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return s.Adapter().CacheWrap()
}

// Adapter exposes the working tree, including uncommitted writes.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return workingTree{s.tree}
}

type workingTree struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = workingTree{}

func (w workingTree) Get(key []byte) ([]byte, error) {
	_, v := w.tree.Get(key)
	return v, nil
}

func (w workingTree) Has(key []byte) (bool, error) {
	return w.tree.Has(key), nil
}

func (w workingTree) Set(key, value []byte) error {
	w.tree.Set(key, value)
	return nil
}

func (w workingTree) Delete(key []byte) error {
	w.tree.Remove(key)
	return nil
}

// NewBatch is not atomic. The working tree is only persisted by Commit, so
// a partial write never reaches disk on its own.
func (w workingTree) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(w)
}

func (w workingTree) CacheWrap() store.KVCacheWrap {
	return store.NewBTreeCacheWrap(w, w.NewBatch(), nil)
}

func (w workingTree) Iterator(start, end []byte) (store.Iterator, error) {
	return w.snapshot(start, end, true), nil
}

func (w workingTree) ReverseIterator(start, end []byte) (store.Iterator, error) {
	return w.snapshot(start, end, false), nil
}

// snapshot copies the range [start, end) so that the tree may be modified
// while iterating.
func (w workingTree) snapshot(start, end []byte, ascending bool) store.Iterator {
	var models []store.Model
	w.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		models = append(models, store.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(models)
}
