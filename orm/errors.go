package orm

import (
	"github.com/iov-one/royalty/errors"
)

// Orm reserves 100~109 error codes

// ErrInvalidIndex is returned when an index specified is invalid
var ErrInvalidIndex = errors.Register(100, "invalid index")

// ErrUniqueConstraint is returned when an index value is already taken by
// another entity.
var ErrUniqueConstraint = errors.Register(101, "unique constraint violation")
