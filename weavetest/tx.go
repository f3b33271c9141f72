package weavetest

import "github.com/iov-one/royalty"

// Tx represents a transaction with a single message.
type Tx struct {
	// Msg is the message that is to be processed by this transaction.
	Msg royalty.Msg
	// Err if set is returned by any method call.
	Err error
}

var _ royalty.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (royalty.Msg, error) {
	return tx.Msg, tx.Err
}

// Msg represents a message routed by path only.
type Msg struct {
	// Path returned by the path method, consumed by the router.
	RoutePath string
	// Err if set is returned by the Validate call.
	Err error
}

var _ royalty.Msg = (*Msg)(nil)

func (m *Msg) Path() string {
	return m.RoutePath
}

func (m *Msg) Validate() error {
	return m.Err
}
