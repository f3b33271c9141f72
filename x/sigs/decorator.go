package sigs

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Decorator verifies transaction signatures against the chain ID of the
// context and bumps the sequence of every signer. Handlers below it read
// the signers with Authenticate.
type Decorator struct {
	optional bool
}

var _ royalty.Decorator = Decorator{}

// NewDecorator returns a decorator that rejects transactions without at
// least one valid signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs returns a copy of the decorator that lets unsigned
// transactions through with no authenticated signers.
func (d Decorator) AllowMissingSigs() Decorator {
	return Decorator{optional: true}
}

func (d Decorator) Check(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Checker) (*royalty.CheckResult, error) {
	signers, err := d.signers(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(withSigners(ctx, signers), db, tx)
}

func (d Decorator) Deliver(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx, next royalty.Deliverer) (*royalty.DeliverResult, error) {
	signers, err := d.signers(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(withSigners(ctx, signers), db, tx)
}

func (d Decorator) signers(ctx royalty.Context, db royalty.KVStore, tx royalty.Tx) ([]royalty.Condition, error) {
	var signers []royalty.Condition
	if stx, ok := tx.(SignedTx); ok {
		var err error
		signers, err = VerifyTxSignatures(db, stx, royalty.GetChainID(ctx))
		if err != nil {
			return nil, errors.Wrap(err, "verify signatures")
		}
	}
	if len(signers) == 0 && !d.optional {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no valid signature")
	}
	return signers, nil
}
