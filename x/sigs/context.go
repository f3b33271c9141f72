package sigs

import (
	"context"

	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/x"
)

type signersKey struct{}

// withSigners is unexported so that only a verified signature can grant a
// condition.
func withSigners(ctx royalty.Context, signers []royalty.Condition) royalty.Context {
	return context.WithValue(ctx, signersKey{}, signers)
}

// Authenticate exposes the conditions of the transaction signers verified
// by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the signers of the current transaction, none when
// the context did not pass the Decorator.
func (Authenticate) GetConditions(ctx royalty.Context) []royalty.Condition {
	signers, _ := ctx.Value(signersKey{}).([]royalty.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx royalty.Context, addr royalty.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
