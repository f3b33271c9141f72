package orm

import (
	"bytes"
	"sort"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const compactIdxPrefix = "_i."

// Indexer calculates the secondary index key for a given model. Returning
// nil excludes the model from the index.
type Indexer func(Model) ([]byte, error)

// compactIndex is an index implementation that stores all indexed entities as
// a set, serialized and stored under single key. This implementation should
// be used only for small sized index collection.
type compactIndex struct {
	name   string
	id     []byte
	unique bool
	index  Indexer
}

func newCompactIndex(bucket, name string, indexer Indexer, unique bool) *compactIndex {
	return &compactIndex{
		name:   name,
		id:     []byte(compactIdxPrefix + bucket + "_" + name + ":"),
		index:  indexer,
		unique: unique,
	}
}

// indexKey is the full key we store in the db, including prefix
// We copy into a new array rather than use append, as we don't
// want consecutive calls to overwrite the same byte array.
func (i *compactIndex) indexKey(key []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(key))
	copy(out, i.id)
	copy(out[l:], key)
	return out
}

// update moves the primary key reference from the index value of prev to
// the index value of save.
//
// prev == nil means insert
// save == nil means delete
func (i *compactIndex) update(db royalty.KVStore, pk []byte, prev, save Model) error {
	var before, after []byte
	var err error
	if prev != nil {
		if before, err = i.index(prev); err != nil {
			return err
		}
	}
	if save != nil {
		if after, err = i.index(save); err != nil {
			return err
		}
	}
	if prev != nil && save != nil && bytes.Equal(before, after) {
		return nil
	}
	if before != nil {
		if err := i.remove(db, before, pk); err != nil {
			return err
		}
	}
	if after != nil {
		if err := i.insert(db, after, pk); err != nil {
			return err
		}
	}
	return nil
}

func (i *compactIndex) keys(db royalty.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.indexKey(value))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, nil
	}
	var refs multiRef
	if err := Unmarshal(raw, &refs); err != nil {
		return nil, err
	}
	return refs.Refs, nil
}

func (i *compactIndex) insert(db royalty.KVStore, value, pk []byte) error {
	refs, err := i.keys(db, value)
	if err != nil {
		return err
	}
	if i.unique && len(refs) > 0 && !bytes.Equal(refs[0], pk) {
		return errors.Wrapf(ErrUniqueConstraint, "%s index value %q", i.name, value)
	}
	pos := sort.Search(len(refs), func(n int) bool { return bytes.Compare(refs[n], pk) >= 0 })
	if pos < len(refs) && bytes.Equal(refs[pos], pk) {
		return nil
	}
	refs = append(refs, nil)
	copy(refs[pos+1:], refs[pos:])
	refs[pos] = pk
	return i.store(db, value, refs)
}

func (i *compactIndex) remove(db royalty.KVStore, value, pk []byte) error {
	refs, err := i.keys(db, value)
	if err != nil {
		return err
	}
	for n, ref := range refs {
		if bytes.Equal(ref, pk) {
			return i.store(db, value, append(refs[:n], refs[n+1:]...))
		}
	}
	return errors.Wrapf(errors.ErrNotFound, "%s index does not reference %q", i.name, pk)
}

func (i *compactIndex) store(db royalty.KVStore, value []byte, refs [][]byte) error {
	key := i.indexKey(value)
	if len(refs) == 0 {
		return db.Delete(key)
	}
	raw, err := Marshal(multiRef{Refs: refs})
	if err != nil {
		return err
	}
	return db.Set(key, raw)
}

// multiRef is the set of primary keys stored under a single index value.
type multiRef struct {
	Refs [][]byte
}
