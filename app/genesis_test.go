package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/weavetest/assert"
)

func TestGenesisFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	assert.Nil(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "genesis.json")
	gen := &Genesis{
		ChainID: testChainID,
		AppState: royalty.Options{
			"tracks": rawJSON(t, []map[string]interface{}{{"track_id": "a", "title": "A", "artist": "B"}}),
		},
	}
	assert.Nil(t, SaveGenesis(path, gen))

	loaded, err := LoadGenesis(path)
	assert.Nil(t, err)
	assert.Equal(t, testChainID, loaded.ChainID)
	var tracks []map[string]interface{}
	assert.Nil(t, loaded.AppState.ReadOptions("tracks", &tracks))
	assert.Equal(t, "a", tracks[0]["track_id"])

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.IsErr(t, errors.ErrInput, err)

	assert.Nil(t, ioutil.WriteFile(path, []byte(`{"chain_id": "x"}`), 0600))
	_, err = LoadGenesis(path)
	assert.IsErr(t, errors.ErrInput, err)
}

func TestGenesisTracks(t *testing.T) {
	f := newAppFixture(t)
	_, err := QueryTrack(f.app.ReadStore(), "hit")
	assert.IsErr(t, errors.ErrNotFound, err)

	a, err := NewRoyaltyApp(newMemStore(), nil)
	assert.Nil(t, err)
	err = a.InitChain(&Genesis{
		ChainID: testChainID,
		AppState: royalty.Options{
			"tracks": rawJSON(t, []map[string]interface{}{
				{"track_id": "a", "title": "A", "artist": "B", "revenue_per_stream": 10, "creation_time": 1500000000},
			}),
		},
	})
	assert.Nil(t, err)
	tr, err := QueryTrack(a.ReadStore(), "a")
	assert.Nil(t, err)
	assert.Equal(t, uint64(10), tr.RevenuePerStream)
	assert.Equal(t, royalty.UnixTime(1500000000), tr.CreationTime)

	// A failing initializer leaves the chain uninitialized.
	b, err := NewRoyaltyApp(newMemStore(), nil)
	assert.Nil(t, err)
	err = b.InitChain(&Genesis{
		ChainID:  testChainID,
		AppState: royalty.Options{"tracks": rawJSON(t, []map[string]interface{}{{"track_id": "bad id!"}})},
	})
	assert.IsErr(t, errors.ErrInput, err)
	assert.Equal(t, "", b.ChainID())
}
