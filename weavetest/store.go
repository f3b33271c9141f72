package weavetest

import (
	"context"
	"io/ioutil"
	"os"
	"testing"
	"time"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem backend
// engine to store the data.
// This implementation should be used instead of MemStore when you want the
// exact same storage implementation as the production instance is using.
func CommitKVStore(t testing.TB) (db royalty.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "royalty-")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	commit := iavl.NewCommitStore(dbpath, "db")
	return commit, func() {
		commit.Close()
		os.RemoveAll(dbpath)
	}
}

// BlockCtx returns a background context with the block time set to the
// given UNIX time.
func BlockCtx(now royalty.UnixTime) royalty.Context {
	return royalty.WithBlockTime(context.Background(), now.Time())
}

// Clock returns a context factory that starts at given time and can be
// moved forward.
type Clock struct {
	Now royalty.UnixTime
}

// Ctx returns a context with the current clock time as block time.
func (c *Clock) Ctx() royalty.Context {
	return BlockCtx(c.Now)
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.Now = c.Now.Add(d)
}
