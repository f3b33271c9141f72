package cash

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/orm"
)

// Holding is the balance held by a single address.
type Holding struct {
	Balance uint64
}

// Validate always succeeds. Any uint64 is a valid balance.
func (h *Holding) Validate() error {
	return nil
}

// NewBucket returns a bucket storing holdings keyed by address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("cash", &Holding{})
}

// GenesisAccount is used to parse the json from genesis file
// use royalty.Address, so address in hex, not base64
type GenesisAccount struct {
	Address royalty.Address `json:"address"`
	Balance uint64          `json:"balance"`
}
