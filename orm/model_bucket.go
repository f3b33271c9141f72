package orm

import (
	"reflect"
	"regexp"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Model is impelemented by any entity that can be stored using ModelBucket.
type Model interface {
	// Validate returns error if the model is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
}

var isBucketName = regexp.MustCompile(`^[a-z_]{3,20}$`).MatchString

// ModelBucket is implemented by buckets that operates on Models.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary index key. Result is loaded into given destination
	// model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	One(db royalty.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists and
	// ErrNotFound otherwise.
	Has(db royalty.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. All indexes are updated.
	Put(db royalty.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db royalty.KVStore, key []byte) error

	// ByIndex returns all models that are referenced by the given index
	// value. Destination must be a pointer to a slice of models.
	ByIndex(db royalty.ReadOnlyKVStore, indexName string, value []byte, dest interface{}) ([][]byte, error)

	// Iterate calls fn for every stored entity, in primary key order.
	// The model passed to fn is a freshly allocated instance of the
	// bucket model type. Returning an error stops the iteration.
	Iterate(db royalty.ReadOnlyKVStore, fn func(key []byte, m Model) error) error
}

// ModelBucketOption is implemented by any function that can configure a
// model bucket.
type ModelBucketOption func(*modelBucket)

// WithIndex configures the bucket to build an index with given name. All
// entities are indexed using the provided indexer function. A nil index
// value excludes the entity from the index.
func WithIndex(name string, indexer Indexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		if _, ok := mb.indexes[name]; ok {
			panic("index " + name + " already registered")
		}
		mb.indexes[name] = newCompactIndex(mb.name, name, indexer, unique)
	}
}

// NewModelBucket returns a ModelBucket instance that stores entities of the
// same type as proto under the given bucket name. proto must be a pointer.
func NewModelBucket(name string, proto Model, opts ...ModelBucketOption) ModelBucket {
	if !isBucketName(name) {
		panic("illegal bucket: " + name)
	}
	tp := reflect.TypeOf(proto)
	if tp.Kind() != reflect.Ptr {
		panic("model prototype must be a pointer")
	}
	mb := &modelBucket{
		name:    name,
		prefix:  []byte(name + ":"),
		model:   tp.Elem(),
		indexes: make(map[string]*compactIndex),
	}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

type modelBucket struct {
	name    string
	prefix  []byte
	model   reflect.Type
	indexes map[string]*compactIndex
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) dbKey(key []byte) []byte {
	out := make([]byte, len(mb.prefix)+len(key))
	copy(out, mb.prefix)
	copy(out[len(mb.prefix):], key)
	return out
}

func (mb *modelBucket) newModel() Model {
	return reflect.New(mb.model).Interface().(Model)
}

func (mb *modelBucket) One(db royalty.ReadOnlyKVStore, key []byte, dest Model) error {
	if reflect.TypeOf(dest) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "%T cannot be represented as %s", dest, mb.model)
	}
	raw, err := db.Get(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %q", mb.name, key)
	}
	return Unmarshal(raw, dest)
}

func (mb *modelBucket) Has(db royalty.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.dbKey(key))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %q", mb.name, key)
	}
	return nil
}

func (mb *modelBucket) Put(db royalty.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if reflect.TypeOf(m) != reflect.PtrTo(mb.model) {
		return errors.Wrapf(errors.ErrType, "cannot store %T in %s bucket", m, mb.name)
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}

	var prev Model
	if len(mb.indexes) > 0 {
		prev = mb.newModel()
		switch err := mb.One(db, key, prev); {
		case errors.ErrNotFound.Is(err):
			prev = nil
		case err != nil:
			return err
		}
	}

	raw, err := Marshal(m)
	if err != nil {
		return err
	}
	if err := db.Set(mb.dbKey(key), raw); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, m); err != nil {
			return errors.Wrapf(err, "cannot update %s index", idx.name)
		}
	}
	return nil
}

func (mb *modelBucket) Delete(db royalty.KVStore, key []byte) error {
	prev := mb.newModel()
	if err := mb.One(db, key, prev); err != nil {
		return err
	}
	if err := db.Delete(mb.dbKey(key)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	for _, idx := range mb.indexes {
		if err := idx.update(db, key, prev, nil); err != nil {
			return errors.Wrapf(err, "cannot update %s index", idx.name)
		}
	}
	return nil
}

func (mb *modelBucket) ByIndex(db royalty.ReadOnlyKVStore, indexName string, value []byte, dest interface{}) ([][]byte, error) {
	idx, ok := mb.indexes[indexName]
	if !ok {
		return nil, errors.Wrapf(ErrInvalidIndex, "no %q index in %s bucket", indexName, mb.name)
	}
	ptr := reflect.ValueOf(dest)
	if ptr.Kind() != reflect.Ptr || ptr.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "destination must be a pointer to a slice, got %T", dest)
	}
	slice := ptr.Elem()
	byPtr := slice.Type().Elem().Kind() == reflect.Ptr
	if elem := slice.Type().Elem(); elem != mb.model && elem != reflect.PtrTo(mb.model) {
		return nil, errors.Wrapf(errors.ErrType, "cannot load %s into %T", mb.model, dest)
	}

	keys, err := idx.keys(db, value)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		m := mb.newModel()
		if err := mb.One(db, key, m); err != nil {
			return nil, errors.Wrapf(err, "index %s references missing entity", indexName)
		}
		val := reflect.ValueOf(m)
		if !byPtr {
			val = val.Elem()
		}
		slice = reflect.Append(slice, val)
	}
	ptr.Elem().Set(slice)
	return keys, nil
}

func (mb *modelBucket) Iterate(db royalty.ReadOnlyKVStore, fn func(key []byte, m Model) error) error {
	it, err := db.Iterator(mb.prefix, prefixEnd(mb.prefix))
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	defer it.Close()

	for it.Valid() {
		m := mb.newModel()
		if err := Unmarshal(it.Value(), m); err != nil {
			return err
		}
		key := append([]byte(nil), it.Key()[len(mb.prefix):]...)
		if err := fn(key, m); err != nil {
			return err
		}
		if err := it.Next(); err != nil {
			return errors.Wrap(errors.ErrDatabase, err.Error())
		}
	}
	return nil
}

// prefixEnd returns the first key that is not prefixed with given prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
