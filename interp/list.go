package interp

// listRep returns o's list representation, parsing the string rep into
// element cells on first use. Each element cell is owned by the list.
func (i *Interp) listRep(o *Obj) (ListType, error) {
	if list, ok := o.intrep.(ListType); ok {
		return list, nil
	}
	s := o.String()
	elems, err := parseList(s)
	if err != nil {
		i.result = err.Error()
		return nil, err
	}
	list := make(ListType, len(elems))
	for k, e := range elems {
		cell := &Obj{bytes: e, refCount: 1}
		i.register(cell)
		list[k] = cell
	}
	i.setIntrep(o, list)
	o.bytes = s
	return list, nil
}

// ListLength returns the number of elements in the list.
func (i *Interp) ListLength(h Handle) (int, error) {
	o := i.getObject(h)
	if o == nil {
		return 0, i.fail("invalid object handle %d", h)
	}
	list, err := i.listRep(o)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// ListIndex returns the element at index, or 0 if index is out of range.
// The returned handle is borrowed from the list.
func (i *Interp) ListIndex(h Handle, index int) (Handle, error) {
	o := i.getObject(h)
	if o == nil {
		return 0, i.fail("invalid object handle %d", h)
	}
	list, err := i.listRep(o)
	if err != nil {
		return 0, err
	}
	if index < 0 || index >= len(list) {
		return 0, nil
	}
	return list[index].handle, nil
}

// ListElements returns the handles of every element, borrowed from the list.
func (i *Interp) ListElements(h Handle) ([]Handle, error) {
	o := i.getObject(h)
	if o == nil {
		return nil, i.fail("invalid object handle %d", h)
	}
	list, err := i.listRep(o)
	if err != nil {
		return nil, err
	}
	out := make([]Handle, len(list))
	for k, e := range list {
		out[k] = e.handle
	}
	return out, nil
}

// ListAppend appends elem to the list, taking a reference on it.
func (i *Interp) ListAppend(h Handle, elem Handle) error {
	o := i.getObject(h)
	if o == nil {
		return i.fail("invalid object handle %d", h)
	}
	e := i.getObject(elem)
	if e == nil {
		return i.fail("invalid object handle %d", elem)
	}
	if contains(e, o) {
		return i.fail("can't append a list to itself")
	}
	list, err := i.listRep(o)
	if err != nil {
		return err
	}
	e.refCount++
	o.intrep = append(list, e)
	o.invalidate()
	return nil
}

// ListReplace removes count elements starting at first and inserts elems
// in their place. first is clamped to [0, len] and count to what remains,
// matching Tcl_ListObjReplace. New elements gain a reference before removed
// ones lose theirs, so an element may be replaced by itself.
func (i *Interp) ListReplace(h Handle, first, count int, elems []Handle) error {
	o := i.getObject(h)
	if o == nil {
		return i.fail("invalid object handle %d", h)
	}
	list, err := i.listRep(o)
	if err != nil {
		return err
	}

	added := make([]*Obj, len(elems))
	for k, eh := range elems {
		e := i.getObject(eh)
		if e == nil {
			return i.fail("invalid object handle %d", eh)
		}
		if contains(e, o) {
			return i.fail("can't insert a list into itself")
		}
		added[k] = e
	}

	if first < 0 {
		first = 0
	}
	if first > len(list) {
		first = len(list)
	}
	if count < 0 {
		count = 0
	}
	if first+count > len(list) {
		count = len(list) - first
	}

	for _, e := range added {
		e.refCount++
	}
	removed := list[first : first+count]

	next := make(ListType, 0, len(list)-count+len(added))
	next = append(next, list[:first]...)
	next = append(next, added...)
	next = append(next, list[first+count:]...)
	o.intrep = next
	o.invalidate()

	for _, e := range removed {
		i.decr(e)
	}
	return nil
}

// contains reports whether target is o or is nested anywhere inside it.
// Lists holding themselves would never be freed and could not be printed.
func contains(o, target *Obj) bool {
	if o == target {
		return true
	}
	list, ok := o.intrep.(ListType)
	if !ok {
		return false
	}
	for _, e := range list {
		if contains(e, target) {
			return true
		}
	}
	return false
}
