package cash

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/orm"
)

// Controller is the functionality needed by the engine and the cash
// handlers.
type Controller interface {
	// Balance returns the amount held by given address. Unknown
	// addresses hold nothing.
	Balance(db royalty.ReadOnlyKVStore, addr royalty.Address) (uint64, error)

	// Transfer moves amount from one holding to another. The authority
	// must be the condition that the source address is derived from.
	// Either the whole amount is moved or nothing changes.
	Transfer(db royalty.KVStore, from, to royalty.Address, authority royalty.Condition, amount uint64) error

	// Issue credits given address with new funds.
	Issue(db royalty.KVStore, to royalty.Address, amount uint64) error
}

// BaseController is the default Controller implementation.
type BaseController struct {
	bucket orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller operating on the cash bucket.
func NewController() BaseController {
	return BaseController{bucket: NewBucket()}
}

func (c BaseController) Balance(db royalty.ReadOnlyKVStore, addr royalty.Address) (uint64, error) {
	if err := addr.Validate(); err != nil {
		return 0, errors.Wrap(err, "address")
	}
	var h Holding
	switch err := c.bucket.One(db, addr, &h); {
	case err == nil:
		return h.Balance, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

func (c BaseController) Transfer(db royalty.KVStore, from, to royalty.Address, authority royalty.Condition, amount uint64) error {
	if amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non positive transfer")
	}
	if err := to.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if authority == nil || !authority.Address().Equals(from) {
		return errors.Wrap(errors.ErrUnauthorized, "authority does not own the source holding")
	}
	if from.Equals(to) {
		return nil
	}

	available, err := c.Balance(db, from)
	if err != nil {
		return err
	}
	if available < amount {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds: %d < %d", available, amount)
	}
	received, err := c.Balance(db, to)
	if err != nil {
		return err
	}
	if received+amount < received {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	if err := c.bucket.Put(db, from, &Holding{Balance: available - amount}); err != nil {
		return errors.Wrap(err, "save source")
	}
	if err := c.bucket.Put(db, to, &Holding{Balance: received + amount}); err != nil {
		return errors.Wrap(err, "save destination")
	}
	return nil
}

func (c BaseController) Issue(db royalty.KVStore, to royalty.Address, amount uint64) error {
	current, err := c.Balance(db, to)
	if err != nil {
		return err
	}
	if current+amount < current {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	return c.bucket.Put(db, to, &Holding{Balance: current + amount})
}
