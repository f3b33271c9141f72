package cash

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const optKey = "cash"

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct {
	Control Controller
}

var _ royalty.Initializer = Initializer{}

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (i Initializer) FromGenesis(opts royalty.Options, kv royalty.KVStore) error {
	var accts []GenesisAccount
	if err := opts.ReadOptions(optKey, &accts); err != nil {
		return errors.Wrapf(err, "read %s genesis", optKey)
	}
	control := i.Control
	if control == nil {
		control = NewController()
	}
	for n, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
		if err := control.Issue(kv, acct.Address, acct.Balance); err != nil {
			return errors.Wrapf(err, "account %d", n)
		}
	}
	return nil
}
