package protocol

import "github.com/iov-one/royalty/errors"

// x/protocol reserves 1030 ~ 1039.
var (
	ErrNotInitialized = errors.Register(1030, "protocol not initialized")
)
