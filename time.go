package royalty

import (
	"encoding/json"
	"time"

	"github.com/iov-one/royalty/errors"
)

// UnixTime is a POSIX timestamp with second precision. Every persisted
// timestamp uses it.
type UnixTime int64

// AsUnixTime truncates t to whole seconds.
func AsUnixTime(t time.Time) UnixTime {
	return UnixTime(t.Unix())
}

func (t UnixTime) Time() time.Time {
	return time.Unix(int64(t), 0).UTC()
}

func (t UnixTime) IsZero() bool {
	return t == 0
}

// Add moves the time by d, truncated to whole seconds.
func (t UnixTime) Add(d time.Duration) UnixTime {
	return t + UnixTime(d/time.Second)
}

// Sub returns t - u in seconds.
func (t UnixTime) Sub(u UnixTime) int64 {
	return int64(t - u)
}

func (t UnixTime) Validate() error {
	if t < 0 {
		return errors.Wrap(errors.ErrState, "time before epoch")
	}
	return nil
}

func (t UnixTime) String() string {
	return t.Time().String()
}

// UnmarshalJSON accepts a number of seconds or an RFC 3339 string, the
// latter being easier to write in a genesis file.
func (t *UnixTime) UnmarshalJSON(raw []byte) error {
	var parsed UnixTime
	var seconds int64
	var stamp time.Time
	switch {
	case json.Unmarshal(raw, &seconds) == nil:
		parsed = UnixTime(seconds)
	case json.Unmarshal(raw, &stamp) == nil:
		parsed = AsUnixTime(stamp)
	default:
		return errors.Wrap(errors.ErrInput, "invalid time format")
	}
	if parsed < 0 {
		return errors.Wrap(errors.ErrInput, "time before epoch")
	}
	*t = parsed
	return nil
}
