package errors

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/pkg/errors"
)

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace returns the outermost stack trace found in the err chain, or
// nil.
func stackTrace(err error) errors.StackTrace {
	for err != nil {
		if st, ok := err.(stackTracer); ok {
			return st.StackTrace()
		}
		c, ok := err.(causer)
		if !ok {
			break
		}
		err = c.Cause()
	}
	return nil
}

func (e *wrappedError) StackTrace() errors.StackTrace {
	return stackTrace(e.parent)
}

// Format supports %s for the message, %v for the message followed by the
// [file:line] of origin and %+v for the full stack trace.
func (e *wrappedError) Format(s fmt.State, verb rune) {
	if verb != 'v' {
		io.WriteString(s, e.Error())
		return
	}
	frames := trimInternal(stackTrace(e))
	if s.Flag('+') {
		fmt.Fprintf(s, "%+v\n%s", frames, e.Error())
		return
	}
	io.WriteString(s, e.Error())
	if len(frames) > 0 {
		file, line := fileLine(frames[0])
		if i := strings.Index(file, "github.com/"); i >= 0 {
			file = file[i+len("github.com/"):]
		}
		fmt.Fprintf(s, " [%s:%d]", file, line)
	}
}

// constructors are the frames that create errors and never point at the
// failing code.
var constructors = []string{
	"github.com/iov-one/royalty/errors.Wrap",
	"github.com/iov-one/royalty/errors.Wrapf",
	"github.com/iov-one/royalty/errors.Field",
	"github.com/iov-one/royalty/errors.(*Error).New",
	"github.com/iov-one/royalty/errors.(*Error).Newf",
	"runtime.",
	"/_test/",
}

// trimInternal drops constructor frames from the top and runtime or testing
// frames from the bottom of the trace.
func trimInternal(st errors.StackTrace) errors.StackTrace {
	for len(st) > 0 && hasPrefix(funcName(st[0]), constructors) {
		st = st[1:]
	}
	for len(st) > 1 && hasPrefix(funcName(st[len(st)-1]), []string{"runtime.", "testing."}) {
		st = st[:len(st)-1]
	}
	return st
}

func hasPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// A Frame is a program counter plus one, see pkg/errors stack.go.
func funcName(f errors.Frame) string {
	if fn := runtime.FuncForPC(uintptr(f) - 1); fn != nil {
		return fn.Name()
	}
	return "unknown"
}

func fileLine(f errors.Frame) (string, int) {
	pc := uintptr(f) - 1
	if fn := runtime.FuncForPC(pc); fn != nil {
		return fn.FileLine(pc)
	}
	return "unknown", 0
}
