package tclbridge

import "github.com/feather-lang/tclbridge/interp"

// Handle names a refcounted value cell owned by an interpreter.
// The zero Handle is the null handle.
type Handle = interp.Handle

// Interp is the primitive surface the bridge needs from an interpreter.
// *interp.Interp implements it; tests wrap it to observe or perturb calls.
type Interp interface {
	// Value lifecycle
	NewObj() Handle
	IncrRefCount(h Handle)
	DecrRefCount(h Handle)
	IsShared(h Handle) bool
	DuplicateObj(h Handle) Handle

	// Scalars. Reads fail with the interpreter's diagnostic.
	SetString(h Handle, s string)
	SetInt(h Handle, v int64)
	SetDouble(h Handle, v float64)
	SetBool(h Handle, v bool)
	GetString(h Handle) (string, error)
	GetInt(h Handle) (int64, error)
	GetDouble(h Handle) (float64, error)
	GetBool(h Handle) (bool, error)

	// Lists. ListIndex returns the null handle when index is out of range.
	ListLength(h Handle) (int, error)
	ListIndex(h Handle, index int) (Handle, error)
	ListElements(h Handle) ([]Handle, error)
	ListAppend(h Handle, elem Handle) error
	ListReplace(h Handle, first, count int, elems []Handle) error

	// Array variables. GetElement returns the null handle when unset.
	ArrayNames(name string) ([]string, error)
	GetElement(name, key string) Handle
	SetElement(name, key string, h Handle) error
	UnsetElement(name, key string) error

	// AddErrorInfo appends context to the interpreter's error trace.
	AddErrorInfo(msg string)
}

var _ Interp = (*interp.Interp)(nil)
