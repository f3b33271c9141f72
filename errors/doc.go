/*
Package errors implements the error handling used across the royalty engine.

Every error returned by the engine should wrap one of the root errors declared
with Register. A root error carries a numeric code, which allows a client to
distinguish the category of the failure without parsing messages.

Generic root errors are declared in this package. Extensions declare their
own codes in their errors.go file, reserving a code range per extension:

	x/track         1000 ~ 1009
	x/distribution  1010 ~ 1019
	x/dispute       1020 ~ 1029
	x/protocol      1030 ~ 1039

Create an error at the point of failure using ErrXyz.New, ErrXyz.Newf or
Wrap so that a stacktrace is attached. If you wrap multiple times, only the
innermost wrap records the stacktrace.

Once you have an error, use fmt to get more context
	%s is just the error message
	%+v is the full stack trace
	%v appends a compressed [filename:line] where the error was created
*/
package errors
