package distribution

import "github.com/iov-one/royalty/errors"

// x/distribution reserves 1010 ~ 1019.
var (
	ErrCooldown        = errors.Register(1010, "distribution cooldown not met")
	ErrEmptyRecipients = errors.Register(1011, "recipients list cannot be empty")
)
