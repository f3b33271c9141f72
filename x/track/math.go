package track

import "github.com/iov-one/royalty/errors"

func addU64(a, b uint64) (uint64, error) {
	c := a + b
	if c < a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return c, nil
}

func mulU64(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d * %d", a, b)
	}
	return c, nil
}

// basisPoints returns amount * bp / BasisPoints.
func basisPoints(amount, bp uint64) (uint64, error) {
	n, err := mulU64(amount, bp)
	if err != nil {
		return 0, err
	}
	return n / BasisPoints, nil
}
