package weavetest

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() royalty.Condition {
	return NewKey().PublicKey().Condition()
}
