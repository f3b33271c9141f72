package app

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// CommitStore owns the persistent state of the application. Delivered
// transactions write to the deliver cache, which becomes durable on Commit.
// Checked transactions run against a separate cache that is thrown away on
// every commit.
type CommitStore struct {
	committed royalty.CommitKVStore
	deliver   royalty.KVCacheWrap
	check     royalty.KVCacheWrap
}

// NewCommitStore opens the latest committed version of db.
func NewCommitStore(db royalty.CommitKVStore) (*CommitStore, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs := &CommitStore{committed: db}
	cs.reset()
	return cs, nil
}

func (cs *CommitStore) reset() {
	cs.deliver = cs.committed.CacheWrap()
	cs.check = cs.committed.CacheWrap()
}

// CommitInfo returns the version and hash of the last commit.
func (cs *CommitStore) CommitInfo() (royalty.CommitID, error) {
	return cs.committed.LatestVersion()
}

// Commit persists everything delivered since the last commit.
func (cs *CommitStore) Commit() (royalty.CommitID, error) {
	if err := cs.deliver.Write(); err != nil {
		return royalty.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	cs.check.Discard()

	id, err := cs.committed.Commit()
	if err != nil {
		return id, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	cs.reset()
	return id, nil
}

func (cs *CommitStore) CheckStore() royalty.CacheableKVStore {
	return cs.check
}

func (cs *CommitStore) DeliverStore() royalty.CacheableKVStore {
	return cs.deliver
}

// ReadStore is a snapshot of the committed state. Writes to it are lost.
func (cs *CommitStore) ReadStore() royalty.ReadOnlyKVStore {
	return cs.committed.CacheWrap()
}

// chainIDKey lives outside of every bucket prefix.
const chainIDKey = "_rt:chainID"

func loadChainID(db royalty.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get([]byte(chainIDKey))
	if err != nil {
		return "", errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return string(raw), nil
}

// saveChainID sets the chain id once. It cannot be changed afterwards.
func saveChainID(db royalty.KVStore, chainID string) error {
	if !royalty.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %v", chainID)
	}
	switch current, err := loadChainID(db); {
	case err != nil:
		return err
	case current != "":
		return errors.Wrapf(errors.ErrDuplicate, "chain id already set to %q", current)
	}
	if err := db.Set([]byte(chainIDKey), []byte(chainID)); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	return nil
}
