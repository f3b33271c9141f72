package royalty

import (
	"encoding/json"

	"github.com/iov-one/royalty/errors"
)

// Options is the application state section of a genesis file. Every
// extension reads its own key.
type Options map[string]json.RawMessage

// ReadOptions decodes the value under key into obj. A missing key leaves obj
// untouched and is not an error.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer loads the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}

// ChainInitializers runs every initializer in order and stops at the first
// failure.
func ChainInitializers(inits ...Initializer) Initializer {
	return initializers(inits)
}

type initializers []Initializer

func (is initializers) FromGenesis(opts Options, db KVStore) error {
	for _, i := range is {
		if err := i.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
