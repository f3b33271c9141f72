package errors

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Root errors shared by all packages. Extensions register their own codes
// next to the code that returns them.
var (
	// ErrUnauthorized means the required signature is missing.
	ErrUnauthorized = Register(2, "unauthorized")

	// ErrNotFound means the referenced track, pool, dispute or account does
	// not exist.
	ErrNotFound = Register(3, "not found")

	// ErrMsg means the message failed validation.
	ErrMsg = Register(4, "invalid message")

	// ErrModel means a stored entity failed validation.
	ErrModel = Register(5, "invalid model")

	// ErrDuplicate means the key is already taken.
	ErrDuplicate = Register(6, "duplicate")

	// ErrHuman marks code paths that are unreachable unless there is a bug.
	ErrHuman = Register(7, "coding error")

	ErrImmutable = Register(8, "cannot be modified")
	ErrEmpty     = Register(9, "value is empty")

	// ErrState means the entity exists but the operation is not allowed in
	// its current status.
	ErrState = Register(10, "invalid state")

	ErrType = Register(11, "invalid type")

	// ErrAmount means an amount is negative, zero where it must not be, or
	// higher than the available balance.
	ErrAmount = Register(12, "invalid amount")

	ErrInput   = Register(13, "invalid input")
	ErrExpired = Register(14, "expired")

	// ErrOverflow means an arithmetic result does not fit in int64.
	ErrOverflow = Register(15, "an operation cannot be completed due to value overflow")

	ErrDatabase = Register(16, "database error")

	// ErrPanic is assigned by Recover. Its message is never shown to clients.
	ErrPanic = Register(111222, "panic")
)

// codes holds every registered root error. Code 1 is reserved for errors that
// do not wrap any of them.
var codes = map[uint32]*Error{
	internalCode: nil,
}

// Register declares a new root error. It panics when code is already in
// use, so call it only from package level variable declarations.
func Register(code uint32, description string) *Error {
	if prev, ok := codes[code]; ok {
		panic(fmt.Sprintf("error with code %d is already registered: %q", code, prev.desc))
	}
	e := &Error{code: code, desc: description}
	codes[code] = e
	return e
}

// Error is a root error. Any error returned to a client should wrap one of
// them so that it can be classified by code.
type Error struct {
	code uint32
	desc string
}

func (e Error) Error() string { return e.desc }

func (e Error) Code() uint32 { return e.code }

// New is a shortcut for Wrap(e, description).
func (e *Error) New(description string) error {
	return Wrap(e, description)
}

func (e *Error) Newf(format string, args ...interface{}) error {
	return Wrapf(e, format, args...)
}

// Is returns true if err is e, wraps e, or is a group that contains e.
// A nil *Error matches only nil errors.
func (e *Error) Is(err error) bool {
	if e == nil {
		return isNilErr(err)
	}
	for err != nil {
		if err == e {
			return true
		}
		if group, ok := err.(unpacker); ok {
			for _, member := range group.Unpack() {
				if e.Is(member) {
					return true
				}
			}
		}
		c, ok := err.(causer)
		if !ok {
			return false
		}
		err = c.Cause()
	}
	return false
}

// Wrap adds description to err. A nil err stays nil. The innermost wrap
// records the stack trace.
func Wrap(err error, description string) error {
	if err == nil {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	return &wrappedError{msg: description, parent: err}
}

func Wrapf(err error, format string, args ...interface{}) error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

type wrappedError struct {
	msg    string
	parent error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.parent.Error()
}

func (e *wrappedError) Cause() error {
	return e.parent
}

// Recover turns a panic into an ErrPanic assigned to err. It must be called
// directly by defer.
func Recover(err *error) {
	if r := recover(); r != nil {
		*err = Wrapf(ErrPanic, "%v", r)
	}
}

// Code returns the code of the root error wrapped by err, 0 for nil and 1
// for unclassified errors.
func Code(err error) uint32 {
	if isNilErr(err) {
		return 0
	}
	for {
		if c, ok := err.(coder); ok {
			return c.Code()
		}
		c, ok := err.(causer)
		if !ok {
			return internalCode
		}
		err = c.Cause()
	}
}

// Info returns what may be shown to a client. Unclassified errors and panics
// are redacted unless debug is set, which prints the stack trace as well.
func Info(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return 0, ""
	}
	code := Code(err)
	if debug {
		return code, fmt.Sprintf("%+v", err)
	}
	if code == internalCode || ErrPanic.Is(err) {
		return code, internalLog
	}
	return code, err.Error()
}

const (
	internalCode uint32 = 1
	internalLog         = "internal error"
)

type coder interface {
	Code() uint32
}

type causer interface {
	Cause() error
}

// isNilErr also catches typed nil pointers stored in an error interface.
func isNilErr(err error) bool {
	if err == nil {
		return true
	}
	v := reflect.ValueOf(err)
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
