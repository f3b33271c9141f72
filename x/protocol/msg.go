package protocol

import (
	"github.com/iov-one/royalty"
	"github.com/iov-one/royalty/errors"
)

const (
	pathInitializeMsg = "protocol/initialize"
	pathUpdateFeeMsg  = "protocol/update_fee"
)

// InitializeMsg creates the protocol registry. The authority must sign the
// transaction.
type InitializeMsg struct {
	Authority     royalty.Address `json:"authority"`
	FeePercentage uint64          `json:"fee_percentage"`
}

var _ royalty.Msg = (*InitializeMsg)(nil)

func (InitializeMsg) Path() string {
	return pathInitializeMsg
}

func (m *InitializeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	if m.FeePercentage > BasisPoints {
		errs = errors.Append(errs,
			errors.Field("FeePercentage", errors.ErrInput, "must not exceed %d", BasisPoints))
	}
	return errs
}

// UpdateFeeMsg changes the protocol fee. Only the authority can send it.
type UpdateFeeMsg struct {
	FeePercentage uint64 `json:"fee_percentage"`
}

var _ royalty.Msg = (*UpdateFeeMsg)(nil)

func (UpdateFeeMsg) Path() string {
	return pathUpdateFeeMsg
}

func (m *UpdateFeeMsg) Validate() error {
	if m.FeePercentage > BasisPoints {
		return errors.Field("FeePercentage", errors.ErrInput, "must not exceed %d", BasisPoints)
	}
	return nil
}
