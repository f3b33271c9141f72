package weavetest

import (
	"github.com/iov-one/royalty"
)

// Auth is an x.Authenticator that reports a fixed set of conditions as
// signers. Signers come first, Signer last.
type Auth struct {
	Signer  royalty.Condition
	Signers []royalty.Condition
}

func (a *Auth) GetConditions(royalty.Context) []royalty.Condition {
	conds := append([]royalty.Condition(nil), a.Signers...)
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return conds
}

func (a *Auth) HasAddress(ctx royalty.Context, addr royalty.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}
