package x

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

// Authenticator reveals who authorized the current transaction. Handlers
// receive one in their constructor and never depend on how signatures are
// verified.
type Authenticator interface {
	// GetConditions returns every condition fulfilled in the context, the
	// main signer first.
	GetConditions(royalty.Context) []royalty.Condition
	// HasAddress reports whether any fulfilled condition has the address.
	HasAddress(royalty.Context, royalty.Address) bool
}

// MainSigner returns the first fulfilled condition or nil.
func MainSigner(ctx royalty.Context, auth Authenticator) royalty.Condition {
	if conds := auth.GetConditions(ctx); len(conds) != 0 {
		return conds[0]
	}
	return nil
}

// RequireSigner returns the main signer, or ErrUnauthorized when the
// transaction was not signed.
func RequireSigner(ctx royalty.Context, auth Authenticator) (royalty.Condition, error) {
	signer := MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return signer, nil
}

// RequireAddress returns ErrUnauthorized unless addr authorized the
// transaction. Role names the party in the error message.
func RequireAddress(ctx royalty.Context, auth Authenticator, addr royalty.Address, role string) error {
	if !auth.HasAddress(ctx, addr) {
		return errors.Wrapf(errors.ErrUnauthorized, "%s signature required", role)
	}
	return nil
}
