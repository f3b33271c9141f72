package royalty

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/iov-one/royalty/errors"
)

func TestUnixTimeUnmarshal(t *testing.T) {
	cases := map[string]struct {
		raw     string
		wantErr *errors.Error
		want    UnixTime
	}{
		"number": {
			raw:  "1554000000",
			want: 1554000000,
		},
		"zero": {
			raw:  "0",
			want: 0,
		},
		"negative number": {
			raw:     "-4",
			wantErr: errors.ErrInput,
		},
		"rfc3339 string": {
			raw:  `"2019-03-31T02:40:00Z"`,
			want: 1554000000,
		},
		"garbage": {
			raw:     `"not a time"`,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			var got UnixTime
			err := json.Unmarshal([]byte(tc.raw), &got)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
			if tc.wantErr == nil && got != tc.want {
				t.Fatalf("want %d, got %d", tc.want, got)
			}
		})
	}
}

func TestUnixTimeArithmetic(t *testing.T) {
	base := UnixTime(1000)
	if got := base.Add(time.Hour); got != 4600 {
		t.Fatalf("unexpected add result: %d", got)
	}
	if got := base.Add(1500 * time.Millisecond); got != 1001 {
		t.Fatalf("sub second precision must be truncated: %d", got)
	}
	if got := UnixTime(87400).Sub(base); got != 86400 {
		t.Fatalf("unexpected sub result: %d", got)
	}
	if !UnixTime(0).IsZero() || base.IsZero() {
		t.Fatal("invalid zero check")
	}
	if err := UnixTime(-1).Validate(); !errors.ErrState.Is(err) {
		t.Fatalf("negative time must be invalid: %v", err)
	}
	now := time.Now()
	if AsUnixTime(now).Time().Unix() != now.Unix() {
		t.Fatal("round trip through time.Time failed")
	}
}
