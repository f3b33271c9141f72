package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/royalty/errors"
)

// collectEntries returns the cached entries within [start, end). A nil
// bound is open.
func collectEntries(tree *btree.BTree, start, end []byte, reverse bool) []entry {
	var out []entry
	visit := func(i btree.Item) bool {
		out = append(out, i.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		tree.Ascend(visit)
	case start == nil:
		tree.AscendLessThan(entry{key: end}, visit)
	case end == nil:
		tree.AscendGreaterOrEqual(entry{key: start}, visit)
	default:
		tree.AscendRange(entry{key: start}, entry{key: end}, visit)
	}
	if reverse {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// head tells which side holds the current key.
type head int

const (
	headNone head = iota
	headCache
	headParent
	headBoth
)

// cacheIterator walks cached entries and the parent iterator side by side.
// Cached entries win on equal keys and deleted entries are skipped together
// with the parent value they hide.
type cacheIterator struct {
	cached  []entry
	pos     int
	parent  Iterator
	reverse bool
}

var _ Iterator = (*cacheIterator)(nil)

func newCacheIterator(cached []entry, parent Iterator, reverse bool) (*cacheIterator, error) {
	it := &cacheIterator{cached: cached, parent: parent, reverse: reverse}
	if err := it.skipDeleted(); err != nil {
		it.Close()
		return nil, err
	}
	return it, nil
}

func (it *cacheIterator) Valid() bool {
	return it.head() != headNone
}

func (it *cacheIterator) Next() error {
	h := it.head()
	if h == headNone {
		return errors.Wrap(errors.ErrDatabase, "iterator exhausted")
	}
	if err := it.advance(h); err != nil {
		return err
	}
	return it.skipDeleted()
}

func (it *cacheIterator) Key() []byte {
	switch it.head() {
	case headCache, headBoth:
		return it.cached[it.pos].key
	case headParent:
		return it.parent.Key()
	}
	panic("iterator exhausted")
}

func (it *cacheIterator) Value() []byte {
	switch it.head() {
	case headCache, headBoth:
		return it.cached[it.pos].value
	case headParent:
		return it.parent.Value()
	}
	panic("iterator exhausted")
}

func (it *cacheIterator) Close() {
	it.cached = nil
	if it.parent != nil {
		it.parent.Close()
	}
}

func (it *cacheIterator) advance(h head) error {
	if h == headCache || h == headBoth {
		it.pos++
	}
	if h == headParent || h == headBoth {
		return it.parent.Next()
	}
	return nil
}

func (it *cacheIterator) skipDeleted() error {
	for {
		h := it.head()
		if h != headCache && h != headBoth {
			return nil
		}
		if !it.cached[it.pos].deleted {
			return nil
		}
		if err := it.advance(h); err != nil {
			return err
		}
	}
}

func (it *cacheIterator) head() head {
	haveCache := it.pos < len(it.cached)
	haveParent := it.parent != nil && it.parent.Valid()
	switch {
	case !haveCache && !haveParent:
		return headNone
	case !haveParent:
		return headCache
	case !haveCache:
		return headParent
	}
	cmp := bytes.Compare(it.cached[it.pos].key, it.parent.Key())
	if it.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return headCache
	case cmp > 0:
		return headParent
	}
	return headBoth
}
