package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field attaches a field name and an optional description to err. A nil err
// returns nil, which allows collecting validation results with Append
// without checking every one of them.
//
// Name the field the way the Go struct does, for example TrackID. Elements
// of a list use their index: Recipients.2.Amount.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	// Stack trace is recorded once, at the innermost wrap.
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &fieldError{field: name, desc: description, cause: err}
}

// AppendField adds a field error to errs. Nothing is added when err is nil.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	field string
	desc  string
	cause error
}

func (e *fieldError) Error() string {
	if e.desc != "" {
		return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.cause)
	}
	return fmt.Sprintf("field %q: %s", e.field, e.cause)
}

func (e *fieldError) Cause() error { return e.cause }

func (e *fieldError) Field() string { return e.field }

type fielder interface {
	Field() string
}

// FieldErrors walks err, including every member of a multi error, and
// returns the field errors created for the given name. The search does not
// descend into a matching field error.
func FieldErrors(err error, name string) []error {
	var found []error
	collectFieldErrors(err, name, &found)
	return found
}

func collectFieldErrors(err error, name string, found *[]error) {
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == name {
			*found = append(*found, err)
			return
		}
		if group, ok := err.(unpacker); ok {
			for _, member := range group.Unpack() {
				collectFieldErrors(member, name, found)
			}
			return
		}
		c, ok := err.(causer)
		if !ok {
			return
		}
		err = c.Cause()
	}
}
