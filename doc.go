// Package tclbridge lets Go code work with values owned by an embedded
// TCL interpreter as if they were native strings, numbers, booleans,
// lists and associative arrays.
//
// # Overview
//
// The interpreter owns every value cell. A *Value holds exactly one
// reference to a cell and coerces it on demand; an *Array is a named view
// of an array variable. The bridge talks to the interpreter only through
// the Interp interface, which *interp.Interp implements:
//
//	ip := interp.NewInterp()
//	defer ip.Close()
//
//	fruits := tclbridge.FromSlice(ip, []string{"apple", "banana", "cherry"})
//	defer fruits.Release()
//
//	n, _ := fruits.Len()                                   // 3
//	last, _ := tclbridge.IndexAs[string](fruits, -1)       // "cherry"
//	_ = tclbridge.SpliceAs(fruits, 1, 1, []string{"kiwi"}) // apple kiwi cherry
//
// # Ownership
//
// Every *Value returned by this package is owned by the caller and must be
// released with Release. Release is idempotent. Retain returns a second
// owner of the same cell. Iterators lend their values for the duration of
// the loop body only.
//
// # Lists
//
// Any value can be read as a list. Index fails with ErrIndexOutOfRange for
// indexes past either end, while Range clamps its bounds and never fails
// on them. Negative indexes count from the end.
//
// # Arrays
//
//	cfg := tclbridge.NewArray(ip, "config")
//	_ = tclbridge.Import(cfg, map[string]string{"host": "localhost", "port": "8080"})
//	port, _ := tclbridge.GetAs[int](cfg, "port") // 8080
//
// Bulk reads snapshot the element names first and skip elements that are
// unset before they can be read. Bulk writes are not atomic.
//
// # Errors
//
// Failures are *Error values classified by Kind. Use errors.Is with the
// Err* sentinels:
//
//	if _, err := fruits.Index(10); errors.Is(err, tclbridge.ErrIndexOutOfRange) {
//	    // ...
//	}
//
// # Supported Type Conversions
//
// Go to TCL:
//   - string → string
//   - int, int64 → integer
//   - float64 → double
//   - bool → "1" or "0"
//   - []T → list
//   - map[string]T → dict
//
// TCL to Go:
//   - string → string
//   - integer → int, int64
//   - integer, double → float64
//   - "1"/"true"/"yes"/"on" or non-zero number → true
//   - "0"/"false"/"no"/"off" or zero → false
package tclbridge
