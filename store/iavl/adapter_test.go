package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/royalty/store"
	"github.com/iov-one/royalty/weavetest/assert"
)

func assertGetHas(t testing.TB, kv store.ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	assert.Equal(t, val, got)
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func TestCacheGetSet(t *testing.T) {
	commit := NewMemCommitStore()
	base := commit.Adapter()

	k, v := []byte("track:1"), []byte("v1")
	assertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	assertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	k2, v2 := []byte("track:2"), []byte("v2")
	assert.Nil(t, cache.Set(k2, v2))
	assertGetHas(t, cache, k2, v2, true)
	assertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	assertGetHas(t, base, k2, v2, true)

	discarded := base.CacheWrap()
	assert.Nil(t, discarded.Delete(k))
	discarded.Discard()
	assertGetHas(t, base, k, v, true)
}

func TestCommitAndReload(t *testing.T) {
	dir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	commit := NewCommitStore(dir, "royalty")
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("a"), []byte("alpha")))
	assert.Nil(t, cache.Set([]byte("b"), []byte("beta")))
	assert.Nil(t, cache.Write())

	// nothing is visible in committed state before the commit
	got, err := commit.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Nil(t, got)

	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("commit hash expected")
	}
	got, err = commit.Get([]byte("a"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("alpha"), got)
	commit.Close()

	reopened := NewCommitStore(dir, "royalty")
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())
	latest, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id, latest)
	assertGetHas(t, reopened.Adapter(), []byte("b"), []byte("beta"), true)
}

func TestIterator(t *testing.T) {
	commit := NewMemCommitStore()
	base := commit.Adapter()
	for _, k := range []string{"a", "b", "c", "d"} {
		assert.Nil(t, base.Set([]byte(k), []byte(k+k)))
	}
	cache := base.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("b")))
	assert.Nil(t, cache.Set([]byte("e"), []byte("ee")))

	it, err := cache.Iterator([]byte("a"), nil)
	assert.Nil(t, err)
	var keys []string
	for ; it.Valid(); assert.Nil(t, it.Next()) {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"a", "c", "d", "e"}, keys)

	it, err = cache.ReverseIterator(nil, []byte("d"))
	assert.Nil(t, err)
	keys = nil
	for ; it.Valid(); assert.Nil(t, it.Next()) {
		keys = append(keys, string(it.Key()))
	}
	it.Close()
	assert.Equal(t, []string{"c", "a"}, keys)
}
