package protocol

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/gconf"
)

// Initializer creates the protocol registry from the "conf.protocol"
// genesis section. A genesis without that section leaves the protocol
// uninitialized so that it can be created with InitializeMsg.
type Initializer struct{}

var _ royalty.Initializer = Initializer{}

// FromGenesis stores the genesis protocol configuration.
func (Initializer) FromGenesis(opts royalty.Options, db royalty.KVStore) error {
	var p Protocol
	err := gconf.InitConfig(db, opts, confKey, &p)
	switch {
	case errors.ErrNotFound.Is(err):
		return nil
	case err != nil:
		return err
	}
	if p.PerformanceMultiplier == 0 {
		p.PerformanceMultiplier = DefaultPerformanceMultiplier
		if err := Save(db, &p); err != nil {
			return errors.Wrap(err, "save protocol")
		}
	}
	return nil
}
