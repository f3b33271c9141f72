package dispute

import "github.com/iov-one/royalty/errors"

// x/dispute reserves 1020 ~ 1029.
var (
	ErrDisputeNotOpen      = errors.Register(1020, "dispute is not open")
	ErrUnsupportedTransfer = errors.Register(1021, "unsupported pool transfer")
	ErrPercentageSum       = errors.Register(1022, "pool percentages exceed 10000 basis points")
)
