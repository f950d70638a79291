package tclbridge

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
)

// Len returns the number of elements when v is read as a list.
func (v *Value) Len() (int, error) {
	h := v.handle()
	if h == 0 {
		return 0, nullValue("length")
	}
	n, err := v.ip.ListLength(h)
	if err != nil {
		return 0, fromInterp(KindListParseFailed, "length", err)
	}
	return n, nil
}

// Index returns the element at i. A negative i counts from the end, so -1
// is the last element. Indexes past either end fail with ErrIndexOutOfRange.
func (v *Value) Index(i int) (*Value, error) {
	idx, err := v.checkIndex("index", i)
	if err != nil {
		return nil, err
	}
	eh, err := v.ip.ListIndex(v.h, idx)
	if err != nil {
		return nil, fromInterp(KindListParseFailed, "index", err)
	}
	if eh == 0 {
		return nil, nullValue("index")
	}
	return Wrap(v.ip, eh), nil
}

// checkIndex resolves a possibly negative index against the list length.
func (v *Value) checkIndex(op string, i int) (int, error) {
	n, err := v.Len()
	if err != nil {
		return 0, err
	}
	idx := i
	if idx < 0 {
		idx += n
	}
	if idx < 0 || idx >= n {
		return 0, &Error{
			Kind:   KindIndexOutOfRange,
			Op:     op,
			Detail: fmt.Sprintf("index %d out of range for list of length %d", i, n),
		}
	}
	return idx, nil
}

// IndexAs returns the element at i coerced to T.
func IndexAs[T Scalar](v *Value, i int) (T, error) {
	e, err := v.Index(i)
	if err != nil {
		var zero T
		return zero, err
	}
	defer e.Release()
	return Get[T](e)
}

// clampRange normalizes inclusive bounds for a non-empty list of length n.
// Negative bounds count from the end and are floored at 0, bounds past the
// end become n-1, and hi < lo collapses to lo.
func clampRange(lo, hi, n int) (int, int) {
	clamp := func(b int) int {
		if b < 0 {
			b = max(b+n, 0)
		}
		return min(b, n-1)
	}
	lo, hi = clamp(lo), clamp(hi)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Range returns the elements from lo to hi inclusive. Bounds are clamped
// rather than rejected; an empty list yields an empty result.
func (v *Value) Range(lo, hi int) ([]*Value, error) {
	n, err := v.Len()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []*Value{}, nil
	}
	lo, hi = clampRange(lo, hi, n)
	hs, err := v.ip.ListElements(v.h)
	if err != nil {
		return nil, fromInterp(KindListParseFailed, "range", err)
	}
	out := make([]*Value, 0, hi-lo+1)
	for _, eh := range hs[lo : hi+1] {
		out = append(out, Wrap(v.ip, eh))
	}
	return out, nil
}

// RangeAs returns the elements from lo to hi inclusive coerced to T.
func RangeAs[T Scalar](v *Value, lo, hi int) ([]T, error) {
	vs, err := v.Range(lo, hi)
	if err != nil {
		return nil, err
	}
	defer owned(vs).release()
	return convertAll[T](vs)
}

// Splice replaces the elements from lo to hi inclusive with elems.
// Negative bounds count from the end; anything still out of range is
// clamped to the list. hi < lo inserts at lo without removing anything.
func (v *Value) Splice(lo, hi int, elems []*Value) error {
	batch, err := retainAll(v.ip, elems)
	if err != nil {
		return err
	}
	defer batch.release()
	return v.splice("splice", lo, hi, batch)
}

// SpliceAs replaces the elements from lo to hi inclusive with xs.
func SpliceAs[T Scalar](v *Value, lo, hi int, xs []T) error {
	batch := materialize(v.ip, xs)
	defer batch.release()
	return v.splice("splice", lo, hi, batch)
}

func (v *Value) splice(op string, lo, hi int, batch owned) error {
	n, err := v.Len()
	if err != nil {
		return err
	}
	if lo < 0 {
		lo += n
	}
	if hi < 0 {
		hi += n
	}
	return v.replace(op, lo, hi-lo+1, batch)
}

// Insert inserts elems before index i. A negative i counts from the end;
// an i past the end appends.
func (v *Value) Insert(i int, elems []*Value) error {
	batch, err := retainAll(v.ip, elems)
	if err != nil {
		return err
	}
	defer batch.release()
	return v.insert(i, batch)
}

// InsertAs inserts xs before index i.
func InsertAs[T Scalar](v *Value, i int, xs []T) error {
	batch := materialize(v.ip, xs)
	defer batch.release()
	return v.insert(i, batch)
}

func (v *Value) insert(i int, batch owned) error {
	n, err := v.Len()
	if err != nil {
		return err
	}
	if i < 0 {
		i = max(i+n, 0)
	}
	return v.replace("insert", min(i, n), 0, batch)
}

// replace hands the batch to the list primitive. The batch must outlive the call.
func (v *Value) replace(op string, first, count int, batch owned) error {
	h, err := v.unshare(op)
	if err != nil {
		return err
	}
	if err := v.ip.ListReplace(h, first, count, batch.handles()); err != nil {
		return fromInterp(KindListParseFailed, op, err)
	}
	return nil
}

// Append appends x as a single element.
func Append[T Scalar](v *Value, x T) error {
	h, err := v.unshare("append")
	if err != nil {
		return err
	}
	e := FromScalar(v.ip, x)
	defer e.Release()
	if err := v.ip.ListAppend(h, e.h); err != nil {
		return fromInterp(KindListParseFailed, "append", err)
	}
	return nil
}

// AppendValue appends other as a single, possibly nested, element.
// Appending v to itself nests its previous contents.
func (v *Value) AppendValue(other *Value) error {
	if v.handle() == 0 || other.handle() == 0 {
		return nullValue("append")
	}
	batch, err := retainAll(v.ip, []*Value{other})
	if err != nil {
		return err
	}
	defer batch.release()
	h, err := v.unshare("append")
	if err != nil {
		return err
	}
	if err := v.ip.ListAppend(h, batch[0].h); err != nil {
		return fromInterp(KindListParseFailed, "append", err)
	}
	return nil
}

// AppendAll appends every item of xs as its own element. It never nests
// xs as a sub-list.
func AppendAll[T Scalar](v *Value, xs []T) error {
	batch := materialize(v.ip, xs)
	defer batch.release()
	return v.appendBatch(batch)
}

func (v *Value) appendBatch(batch owned) error {
	n, err := v.Len()
	if err != nil {
		return err
	}
	return v.replace("append", n, 0, batch)
}

// Elements returns every element of the list.
func (v *Value) Elements() ([]*Value, error) {
	h := v.handle()
	if h == 0 {
		return nil, nullValue("elements")
	}
	hs, err := v.ip.ListElements(h)
	if err != nil {
		return nil, fromInterp(KindListParseFailed, "elements", err)
	}
	out := make([]*Value, len(hs))
	for i, eh := range hs {
		out[i] = Wrap(v.ip, eh)
	}
	return out, nil
}

// ListOf returns every element of the list coerced to T.
func ListOf[T Scalar](v *Value) ([]T, error) {
	vs, err := v.Elements()
	if err != nil {
		return nil, err
	}
	defer owned(vs).release()
	return convertAll[T](vs)
}

func convertAll[T Scalar](vs []*Value) ([]T, error) {
	out := make([]T, len(vs))
	for i, e := range vs {
		x, err := Get[T](e)
		if err != nil {
			return nil, err
		}
		out[i] = x
	}
	return out, nil
}

// All returns an iterator over the list's elements. The length is re-read
// on every step, so the loop body may grow or shrink the list. Yielded
// values are released after the body returns; Retain one to keep it.
func (v *Value) All() iter.Seq2[int, *Value] {
	return func(yield func(int, *Value) bool) {
		for i := 0; ; i++ {
			n, err := v.Len()
			if err != nil {
				Logger().Debug("list iteration stopped", zap.Error(err))
				return
			}
			if i >= n {
				return
			}
			e, err := v.Index(i)
			if err != nil {
				return
			}
			ok := yield(i, e)
			e.Release()
			if !ok {
				return
			}
		}
	}
}
