package store

import (
	"github.com/iov-one/royalty/errors"
)

// SliceIterator iterates over an in memory list of models.
type SliceIterator struct {
	data []Model
	pos  int
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

func (s *SliceIterator) Valid() bool {
	return s.pos < len(s.data)
}

func (s *SliceIterator) Next() error {
	if !s.Valid() {
		return errors.Wrap(errors.ErrDatabase, "slice iterator exhausted")
	}
	s.pos++
	return nil
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) current() Model {
	if !s.Valid() {
		panic("slice iterator exhausted")
	}
	return s.data[s.pos]
}

func (s *SliceIterator) Close() {
	s.data = nil
}

// EmptyKVStore holds nothing and drops every write. It is the bottom layer
// of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }
func (EmptyKVStore) Has(key []byte) (bool, error)   { return false, nil }
func (EmptyKVStore) Set(key, value []byte) error    { return nil }
func (EmptyKVStore) Delete(key []byte) error        { return nil }

func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return NewSliceIterator(nil), nil
}

func (e EmptyKVStore) NewBatch() Batch {
	return NewNonAtomicBatch(e)
}

// Op is a single pending write. A nil value means delete.
type Op struct {
	key    []byte
	value  []byte
	remove bool
}

// SetOp records a write of value under key.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp records a removal of key.
func DelOp(key []byte) Op {
	return Op{key: key, remove: true}
}

// Apply executes the operation against out.
func (o Op) Apply(out SetDeleter) error {
	if o.remove {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch queues operations and replays them in order on Write. A
// failure halfway leaves the earlier operations applied, so it must only
// front in memory stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *NonAtomicBatch) Write() error {
	defer b.reset()
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return errors.Wrap(err, "apply batch")
		}
	}
	return nil
}

// Len returns the number of queued operations.
func (b *NonAtomicBatch) Len() int {
	return len(b.ops)
}

func (b *NonAtomicBatch) reset() {
	b.ops = nil
}
