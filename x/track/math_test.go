package track

import (
	"math"
	"testing"

	"github.com/iov-one/royalty/errors"
	"github.com/iov-one/royalty/weavetest/assert"
)

func TestCheckedMath(t *testing.T) {
	cases := map[string]struct {
		fn      func() (uint64, error)
		want    uint64
		wantErr *errors.Error
	}{
		"add": {
			fn:   func() (uint64, error) { return addU64(40, 2) },
			want: 42,
		},
		"add overflow": {
			fn:      func() (uint64, error) { return addU64(math.MaxUint64, 1) },
			wantErr: errors.ErrOverflow,
		},
		"mul by zero": {
			fn:   func() (uint64, error) { return mulU64(0, math.MaxUint64) },
			want: 0,
		},
		"mul overflow": {
			fn:      func() (uint64, error) { return mulU64(math.MaxUint64/2, 3) },
			wantErr: errors.ErrOverflow,
		},
		"basis points truncate": {
			fn:   func() (uint64, error) { return basisPoints(999, 500) },
			want: 49,
		},
		"basis points overflow": {
			fn:      func() (uint64, error) { return basisPoints(math.MaxUint64, 2) },
			wantErr: errors.ErrOverflow,
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := tc.fn()
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
