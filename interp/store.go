package interp

import "go.uber.org/zap"

// -----------------------------------------------------------------------------
// Cell lifecycle
// -----------------------------------------------------------------------------

// NewObj allocates an empty cell with a reference count of zero.
// The caller takes ownership by calling IncrRefCount.
func (i *Interp) NewObj() Handle {
	return i.register(&Obj{})
}

// IncrRefCount adds one reference to the cell.
func (i *Interp) IncrRefCount(h Handle) {
	o := i.getObject(h)
	if o == nil {
		i.logger.Debug("incr on invalid handle", zap.Uint64("handle", uint64(h)))
		return
	}
	o.refCount++
}

// DecrRefCount drops one reference, freeing the cell when none remain.
func (i *Interp) DecrRefCount(h Handle) {
	o := i.getObject(h)
	if o == nil {
		i.logger.Debug("decr on invalid handle", zap.Uint64("handle", uint64(h)))
		return
	}
	i.decr(o)
}

// RefCount returns the cell's reference count, or 0 if the handle is not live.
func (i *Interp) RefCount(h Handle) int {
	return i.getObject(h).RefCount()
}

// Exists reports whether h names a live cell.
func (i *Interp) Exists(h Handle) bool {
	return i.getObject(h) != nil
}

// Live returns the number of live cells.
func (i *Interp) Live() int {
	return len(i.objects)
}

// Object returns the cell behind a handle, or nil.
func (i *Interp) Object(h Handle) *Obj {
	return i.getObject(h)
}

// IsShared reports whether more than one reference is held on the cell.
// Callers must not modify a shared cell; duplicate it first.
func (i *Interp) IsShared(h Handle) bool {
	return i.getObject(h).RefCount() > 1
}

// DuplicateObj creates an unshared copy of a cell with a reference count of
// zero, or returns the null handle if h is not live. A copied list takes its
// own reference on every element.
func (i *Interp) DuplicateObj(h Handle) Handle {
	o := i.getObject(h)
	if o == nil {
		return 0
	}
	c := &Obj{bytes: o.bytes}
	if o.intrep != nil {
		c.intrep = o.intrep.Dup()
		if own, ok := c.intrep.(owner); ok {
			for _, e := range own.owned() {
				e.refCount++
			}
		}
	}
	return i.register(c)
}

// register assigns the next handle to o and stores it.
func (i *Interp) register(o *Obj) Handle {
	id := i.nextID
	i.nextID++
	o.handle = id
	i.objects[id] = o
	return id
}

// getObject retrieves an object by handle.
func (i *Interp) getObject(h Handle) *Obj {
	if h == 0 {
		return nil
	}
	return i.objects[h]
}

func (i *Interp) decr(o *Obj) {
	o.refCount--
	if o.refCount > 0 {
		return
	}
	delete(i.objects, o.handle)
	rep := o.intrep
	o.intrep = nil
	i.releaseRep(rep)
	i.logger.Debug("cell freed", zap.Uint64("handle", uint64(o.handle)))
}

// releaseRep drops the references an internal representation holds.
func (i *Interp) releaseRep(rep ObjType) {
	if o, ok := rep.(owner); ok {
		for _, e := range o.owned() {
			i.decr(e)
		}
	}
}

// setIntrep replaces o's internal representation, releasing the old one.
func (i *Interp) setIntrep(o *Obj, rep ObjType) {
	old := o.intrep
	o.intrep = rep
	i.releaseRep(old)
}

// -----------------------------------------------------------------------------
// Scalars
// -----------------------------------------------------------------------------

// SetString sets the cell to a pure string.
func (i *Interp) SetString(h Handle, s string) {
	o := i.getObject(h)
	if o == nil {
		return
	}
	i.setIntrep(o, nil)
	o.bytes = s
}

// SetInt sets the cell to an integer.
func (i *Interp) SetInt(h Handle, v int64) {
	o := i.getObject(h)
	if o == nil {
		return
	}
	i.setIntrep(o, IntType(v))
	o.invalidate()
}

// SetDouble sets the cell to a floating-point number.
func (i *Interp) SetDouble(h Handle, v float64) {
	o := i.getObject(h)
	if o == nil {
		return
	}
	i.setIntrep(o, DoubleType(v))
	o.invalidate()
}

// SetBool sets the cell to 1 or 0.
func (i *Interp) SetBool(h Handle, v bool) {
	if v {
		i.SetInt(h, 1)
	} else {
		i.SetInt(h, 0)
	}
}

// GetString returns the string representation of a cell.
func (i *Interp) GetString(h Handle) (string, error) {
	o := i.getObject(h)
	if o == nil {
		return "", i.fail("invalid object handle %d", h)
	}
	return o.String(), nil
}

// GetInt returns the integer value of a cell, shimmering pure strings.
func (i *Interp) GetInt(h Handle) (int64, error) {
	o := i.getObject(h)
	if o == nil {
		return 0, i.fail("invalid object handle %d", h)
	}
	v, err := asInt(o)
	if err != nil {
		i.result = err.Error()
		return 0, err
	}
	if o.intrep == nil {
		o.intrep = IntType(v)
	}
	return v, nil
}

// GetDouble returns the floating-point value of a cell, shimmering pure strings.
func (i *Interp) GetDouble(h Handle) (float64, error) {
	o := i.getObject(h)
	if o == nil {
		return 0, i.fail("invalid object handle %d", h)
	}
	v, err := asDouble(o)
	if err != nil {
		i.result = err.Error()
		return 0, err
	}
	if o.intrep == nil {
		o.intrep = DoubleType(v)
	}
	return v, nil
}

// GetBool returns the boolean value of a cell using TCL boolean rules.
func (i *Interp) GetBool(h Handle) (bool, error) {
	o := i.getObject(h)
	if o == nil {
		return false, i.fail("invalid object handle %d", h)
	}
	v, err := asBool(o)
	if err != nil {
		i.result = err.Error()
		return false, err
	}
	return v, nil
}
