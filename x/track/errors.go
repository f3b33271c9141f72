package track

import "github.com/iov-one/royalty/errors"

// x/track reserves 1000 ~ 1009.
var (
	ErrTrackInactive = errors.Register(1000, "track is not active")
	ErrNoPending     = errors.Register(1001, "no pending royalties")
)
