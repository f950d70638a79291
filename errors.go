package tclbridge

import (
	"errors"
	"fmt"
	"strings"
)

// Kind categorizes a bridge error.
type Kind string

const (
	KindNullValue           Kind = "null_value"            // no underlying value where one was required
	KindConversionFailed    Kind = "conversion_failed"     // interpreter could not coerce the value
	KindListParseFailed     Kind = "list_parse_failed"     // value is not a well-formed list
	KindIndexOutOfRange     Kind = "index_out_of_range"    // element index past either end
	KindVariableWriteFailed Kind = "variable_write_failed" // interpreter rejected an element write
)

// Error is the structured error returned by every bridge operation.
type Error struct {
	Kind   Kind
	Op     string // bridge operation, e.g. "index" or "set element"
	Arg    string // argument name, set by ConvertArg
	Detail string // interpreter diagnostic or bridge message
	Cause  error
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(string(e.Kind))

	if e.Arg != "" {
		fmt.Fprintf(&b, " (argument %q)", e.Arg)
	}

	switch {
	case e.Detail != "":
		b.WriteString(": ")
		b.WriteString(e.Detail)
	case e.Cause != nil:
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrNullValue           = &Error{Kind: KindNullValue}
	ErrConversionFailed    = &Error{Kind: KindConversionFailed}
	ErrListParseFailed     = &Error{Kind: KindListParseFailed}
	ErrIndexOutOfRange     = &Error{Kind: KindIndexOutOfRange}
	ErrVariableWriteFailed = &Error{Kind: KindVariableWriteFailed}
)

// KindOf returns the Kind of the first *Error in err's chain, or "".
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func nullValue(op string) *Error {
	return &Error{Kind: KindNullValue, Op: op, Detail: "no underlying value"}
}

// fromInterp builds an error whose detail is the interpreter's diagnostic.
func fromInterp(kind Kind, op string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Detail: cause.Error(), Cause: cause}
}
