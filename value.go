package tclbridge

import "go.uber.org/zap"

// Value owns one reference to an interpreter value cell.
//
// Construction takes exactly one reference and Release drops exactly one,
// however many scalar views are read in between. Several Values may alias
// the same cell (for example one taken from a list element); each alias
// holds its own reference. A Value has no fixed type: every read asks the
// interpreter to coerce the cell to the requested type.
//
// Writes never reach other holders of the cell. A Value whose cell is
// shared first moves to a private copy, so a list element, an array element
// or another alias keeps its contents.
//
// Every *Value returned by this package is owned by the caller and must be
// released. Values are not safe for concurrent use.
type Value struct {
	ip       Interp
	h        Handle
	released bool
}

// NewValue creates an empty value.
func NewValue(ip Interp) *Value {
	return Wrap(ip, ip.NewObj())
}

// Wrap takes a new reference to an existing cell.
// Wrapping the null handle yields a Value whose reads fail with ErrNullValue.
func Wrap(ip Interp, h Handle) *Value {
	if h != 0 {
		ip.IncrRefCount(h)
	}
	return &Value{ip: ip, h: h}
}

// FromScalar creates a value holding x.
func FromScalar[T Scalar](ip Interp, x T) *Value {
	v := NewValue(ip)
	setScalar(ip, v.h, x)
	return v
}

// Release drops the value's reference. Releasing twice is a no-op.
func (v *Value) Release() {
	if v == nil {
		return
	}
	if v.released {
		Logger().Debug("value released twice", zap.Uint64("handle", uint64(v.h)))
		return
	}
	v.released = true
	if v.h != 0 {
		v.ip.DecrRefCount(v.h)
	}
}

// Retain returns a new alias of the same cell holding its own reference.
func (v *Value) Retain() *Value {
	return Wrap(v.ip, v.handle())
}

// Handle returns the underlying cell, or the null handle once released.
func (v *Value) Handle() Handle {
	return v.handle()
}

// Interp returns the interpreter that owns the cell.
func (v *Value) Interp() Interp {
	return v.ip
}

func (v *Value) handle() Handle {
	if v == nil || v.released {
		return 0
	}
	return v.h
}

// unshare returns a cell v may modify in place. If the cell is shared, v
// moves its reference to a copy of it.
func (v *Value) unshare(op string) (Handle, error) {
	h := v.handle()
	if h == 0 {
		return 0, nullValue(op)
	}
	if !v.ip.IsShared(h) {
		return h, nil
	}
	return v.swap(v.ip.DuplicateObj(h)), nil
}

// fresh is unshare for writes that replace the whole contents: a shared
// cell is swapped for an empty one instead of a copy.
func (v *Value) fresh(op string) (Handle, error) {
	h := v.handle()
	if h == 0 {
		return 0, nullValue(op)
	}
	if !v.ip.IsShared(h) {
		return h, nil
	}
	return v.swap(v.ip.NewObj()), nil
}

func (v *Value) swap(c Handle) Handle {
	v.ip.IncrRefCount(c)
	v.ip.DecrRefCount(v.h)
	v.h = c
	return c
}

// String returns the string representation, or "" if the value is null.
// Use Get[string] to tell the two apart.
func (v *Value) String() string {
	s, err := GetString(v.ip, v.handle())
	if err != nil {
		return ""
	}
	return s
}

// Int returns the value as an integer.
func (v *Value) Int() (int64, error) {
	return GetInt(v.ip, v.handle())
}

// Float returns the value as a floating-point number.
func (v *Value) Float() (float64, error) {
	return GetDouble(v.ip, v.handle())
}

// Bool returns the value as a boolean.
func (v *Value) Bool() (bool, error) {
	return GetBool(v.ip, v.handle())
}

// Get returns v coerced to T.
func Get[T Scalar](v *Value) (T, error) {
	return Convert[T](v.ip, v.handle())
}

// Set replaces v's contents with x.
func Set[T Scalar](v *Value, x T) error {
	h, err := v.fresh("set")
	if err != nil {
		return err
	}
	setScalar(v.ip, h, x)
	return nil
}

// SetString replaces v's contents with s.
func (v *Value) SetString(s string) error { return Set(v, s) }

// SetInt replaces v's contents with n.
func (v *Value) SetInt(n int64) error { return Set(v, n) }

// SetFloat replaces v's contents with f.
func (v *Value) SetFloat(f float64) error { return Set(v, f) }

// SetBool replaces v's contents with 1 or 0.
func (v *Value) SetBool(b bool) error { return Set(v, b) }
