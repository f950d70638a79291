// Package interp is an in-memory TCL value store: refcounted value cells
// with lazily shimmered internal representations, TCL list primitives,
// scalar and array variables, and the interpreter result/errorInfo pair.
//
// It implements the primitive surface the tclbridge package consumes and
// nothing more; it does not parse or evaluate scripts.
//
// An Interp is not safe for concurrent use from multiple goroutines.
package interp

import (
	"fmt"

	"go.uber.org/zap"
)

// Interp represents a TCL interpreter instance
type Interp struct {
	objects   map[Handle]*Obj      // every live cell, by handle
	nextID    Handle               // next handle; handles are never reused
	vars      map[string]*variable // qualified name (no leading "::") -> variable
	result    string               // interpreter result / last diagnostic
	errorInfo string               // accumulated error trace
	logger    *zap.Logger
}

// Option configures an Interp.
type Option func(*Interp)

// WithLogger sets the logger used for cell lifecycle diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(i *Interp) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewInterp creates a new interpreter
func NewInterp(opts ...Option) *Interp {
	i := &Interp{
		objects: make(map[Handle]*Obj),
		nextID:  1,
		vars:    make(map[string]*variable),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Close releases every variable and drops all cells.
// Cells still referenced from outside the interpreter at this point are
// reported as leaked. Handles become invalid after Close.
func (i *Interp) Close() {
	for name, v := range i.vars {
		i.releaseVar(v)
		delete(i.vars, name)
	}
	if n := len(i.objects); n > 0 {
		i.logger.Warn("interpreter closed with live cells", zap.Int("cells", n))
	}
	i.objects = make(map[Handle]*Obj)
}

// -----------------------------------------------------------------------------
// Result and error information
// -----------------------------------------------------------------------------

// Result returns the current result string.
func (i *Interp) Result() string {
	return i.result
}

// SetResult sets the interpreter's result to a string value.
func (i *Interp) SetResult(s string) {
	i.result = s
}

// ResetResult clears the result and the error trace.
func (i *Interp) ResetResult() {
	i.result = ""
	i.errorInfo = ""
}

// AddErrorInfo appends msg to the error trace. The first call seeds the
// trace with the current result, the way TCL builds errorInfo.
func (i *Interp) AddErrorInfo(msg string) {
	if i.errorInfo == "" {
		i.errorInfo = i.result
	}
	i.errorInfo += msg
}

// ErrorInfo returns the accumulated error trace.
func (i *Interp) ErrorInfo() string {
	return i.errorInfo
}

// fail records a diagnostic as the interpreter result and returns it as an error.
func (i *Interp) fail(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	i.result = err.Error()
	return err
}
