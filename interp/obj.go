package interp

// Handle names a refcounted cell owned by an Interp.
// The zero Handle is the null handle.
type Handle uintptr

// Obj is a value cell.
// It follows TCL semantics where values have both a string representation
// and an optional internal representation that can be lazily computed.
type Obj struct {
	bytes    string  // string representation ("" = empty string if intrep == nil)
	intrep   ObjType // internal representation (nil = pure string)
	refCount int
	handle   Handle
}

// ObjType defines the core behavior for an internal representation.
type ObjType interface {
	// Name returns the type name (e.g., "int", "list").
	Name() string

	// UpdateString regenerates string representation from this internal rep.
	UpdateString() string

	// Dup returns the representation for a copy of the cell. References a
	// representation holds are not taken; DuplicateObj does that.
	Dup() ObjType
}

// IntoInt can convert directly to int64.
type IntoInt interface {
	IntoInt() (int64, bool)
}

// IntoDouble can convert directly to float64.
type IntoDouble interface {
	IntoDouble() (float64, bool)
}

// IntoList can convert directly to a list.
type IntoList interface {
	IntoList() ([]*Obj, bool)
}

// IntoBool can convert directly to a boolean.
type IntoBool interface {
	IntoBool() (bool, bool)
}

// String returns the string representation of the object.
// If the string representation is empty and there's an internal representation,
// it regenerates the string from the internal rep.
func (o *Obj) String() string {
	if o == nil {
		return ""
	}
	if o.bytes == "" && o.intrep != nil {
		o.bytes = o.intrep.UpdateString()
	}
	return o.bytes
}

// Type returns the type name of the object.
// Returns "string" for pure string objects (no internal representation).
func (o *Obj) Type() string {
	if o == nil || o.intrep == nil {
		return "string"
	}
	return o.intrep.Name()
}

// Handle returns the handle the object is registered under.
func (o *Obj) Handle() Handle {
	if o == nil {
		return 0
	}
	return o.handle
}

// RefCount returns the number of references currently held on the object.
func (o *Obj) RefCount() int {
	if o == nil {
		return 0
	}
	return o.refCount
}

// invalidate clears the cached string representation.
// Must be called after mutating the internal representation.
func (o *Obj) invalidate() {
	o.bytes = ""
}
