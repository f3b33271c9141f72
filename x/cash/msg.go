package cash

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const (
	pathSendMsg = "cash/send"

	maxMemoSize = 128
)

// SendMsg moves funds between two holdings. The source must be
// authenticated by the transaction signer.
type SendMsg struct {
	Source      royalty.Address `json:"source"`
	Destination royalty.Address `json:"destination"`
	Amount      uint64          `json:"amount"`
	Memo        string          `json:"memo"`
}

var _ royalty.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message.
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Source", m.Source.Validate())
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrAmount, "must be positive"))
	}
	if len(m.Memo) > maxMemoSize {
		errs = errors.Append(errs, errors.Field("Memo", errors.ErrInput, "too long"))
	}
	return errs
}
