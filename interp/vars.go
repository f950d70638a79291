package interp

import (
	"slices"
	"strings"
)

// variable is a scalar or an array. Exactly one of value or elems is set.
type variable struct {
	value *Obj
	elems map[string]*Obj
	order []string // element names in insertion order
}

func (v *variable) isArray() bool {
	return v.elems != nil
}

// qualify strips a leading "::" so "::a" and "a" name the same variable.
func qualify(name string) string {
	return strings.TrimPrefix(name, "::")
}

// releaseVar drops the references a variable holds.
func (i *Interp) releaseVar(v *variable) {
	if v.value != nil {
		i.decr(v.value)
		v.value = nil
	}
	for _, key := range v.order {
		i.decr(v.elems[key])
	}
	v.elems = nil
	v.order = nil
}

// SetVar sets a scalar variable, taking a reference on the value.
func (i *Interp) SetVar(name string, h Handle) error {
	q := qualify(name)
	v := i.vars[q]
	if v != nil && v.isArray() {
		return i.fail("can't set %q: variable is array", name)
	}
	o := i.getObject(h)
	if o == nil {
		return i.fail("invalid object handle %d", h)
	}
	o.refCount++
	if v == nil {
		i.vars[q] = &variable{value: o}
		return nil
	}
	old := v.value
	v.value = o
	if old != nil {
		i.decr(old)
	}
	return nil
}

// GetVar returns a scalar variable's value, or 0 if it is unset or an array.
// The handle is borrowed from the variable.
func (i *Interp) GetVar(name string) Handle {
	v := i.vars[qualify(name)]
	if v == nil || v.isArray() {
		return 0
	}
	return v.value.handle
}

// UnsetVar removes a scalar or array variable.
func (i *Interp) UnsetVar(name string) error {
	q := qualify(name)
	v := i.vars[q]
	if v == nil {
		return i.fail("can't unset %q: no such variable", name)
	}
	delete(i.vars, q)
	i.releaseVar(v)
	return nil
}

// ArrayExists reports whether name is an array variable.
func (i *Interp) ArrayExists(name string) bool {
	v := i.vars[qualify(name)]
	return v != nil && v.isArray()
}

// ArrayNames returns the element names of an array in insertion order.
// A missing variable or a scalar has no names.
func (i *Interp) ArrayNames(name string) ([]string, error) {
	v := i.vars[qualify(name)]
	if v == nil || !v.isArray() {
		return nil, nil
	}
	return slices.Clone(v.order), nil
}

// GetElement returns an array element's value, or 0 if it is unset.
// The handle is borrowed from the array.
func (i *Interp) GetElement(name, key string) Handle {
	v := i.vars[qualify(name)]
	if v == nil || !v.isArray() {
		return 0
	}
	if o, ok := v.elems[key]; ok {
		return o.handle
	}
	return 0
}

// SetElement sets an array element, creating the array if needed.
// The array takes a reference on the value.
func (i *Interp) SetElement(name, key string, h Handle) error {
	q := qualify(name)
	v := i.vars[q]
	if v != nil && !v.isArray() {
		return i.fail("can't set \"%s(%s)\": variable isn't array", name, key)
	}
	o := i.getObject(h)
	if o == nil {
		return i.fail("invalid object handle %d", h)
	}
	if v == nil {
		v = &variable{elems: make(map[string]*Obj)}
		i.vars[q] = v
	}
	o.refCount++
	old, exists := v.elems[key]
	v.elems[key] = o
	if exists {
		i.decr(old)
	} else {
		v.order = append(v.order, key)
	}
	return nil
}

// UnsetElement removes one element from an array.
func (i *Interp) UnsetElement(name, key string) error {
	v := i.vars[qualify(name)]
	switch {
	case v == nil:
		return i.fail("can't unset \"%s(%s)\": no such variable", name, key)
	case !v.isArray():
		return i.fail("can't unset \"%s(%s)\": variable isn't array", name, key)
	}
	o, ok := v.elems[key]
	if !ok {
		return i.fail("can't unset \"%s(%s)\": no such element in array", name, key)
	}
	delete(v.elems, key)
	v.order = slices.DeleteFunc(v.order, func(k string) bool { return k == key })
	i.decr(o)
	return nil
}
