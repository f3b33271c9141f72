package sigs

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/weavetest"
)

// signedTx is a transaction carrying a payload used as its sign bytes.
type signedTx struct {
	weavetest.Tx
	payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*signedTx)(nil)
var _ royalty.Tx = (*signedTx)(nil)

func newSignedTx(payload []byte) *signedTx {
	return &signedTx{
		Tx:      weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/payload"}},
		payload: payload,
	}
}

func (tx *signedTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *signedTx) GetSignBytes() ([]byte, error) {
	return tx.payload, nil
}
