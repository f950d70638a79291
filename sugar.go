package tclbridge

import "go.uber.org/zap"

// Subscript-style helpers.
//
// These trade error reporting for brevity: reads report failure only as
// ok == false, and writes that fail are dropped silently (logged at debug).
// Use Index, Range, Splice and the Array methods when failures matter.

// At returns the element at i coerced to T. ok is false if i is out of
// range or the element cannot be coerced.
func At[T Scalar](v *Value, i int) (T, bool) {
	x, err := IndexAs[T](v, i)
	return x, err == nil
}

// SetAt replaces the element at i with x. Writes to a missing index and
// other failures are dropped.
func SetAt[T Scalar](v *Value, i int, x T) {
	idx, err := v.checkIndex("set at", i)
	if err == nil {
		err = SpliceAs(v, idx, idx, []T{x})
	}
	dropped("set at", err)
}

// ClearAt removes the element at i. Failures are dropped.
func ClearAt(v *Value, i int) {
	idx, err := v.checkIndex("clear at", i)
	if err == nil {
		err = v.Splice(idx, idx, nil)
	}
	dropped("clear at", err)
}

// Slice returns the elements from lo to hi inclusive coerced to T.
// ok is false if any element cannot be coerced or v is not a list.
func Slice[T Scalar](v *Value, lo, hi int) ([]T, bool) {
	xs, err := RangeAs[T](v, lo, hi)
	return xs, err == nil
}

// SetSlice replaces the elements from lo to hi inclusive with xs.
// A nil xs removes the range. Failures are dropped.
func SetSlice[T Scalar](v *Value, lo, hi int, xs []T) {
	dropped("set slice", SpliceAs(v, lo, hi, xs))
}

// Lookup returns the array element key coerced to T. ok is false if the
// element is unset or cannot be coerced.
func Lookup[T Scalar](a *Array, key string) (T, bool) {
	x, err := GetAs[T](a, key)
	return x, err == nil
}

// Store writes x to the array element key. Failures are dropped.
func Store[T Scalar](a *Array, key string, x T) {
	dropped("store", SetElement(a, key, x))
}

func dropped(op string, err error) {
	if err != nil {
		Logger().Debug("write dropped", zap.String("op", op), zap.Error(err))
	}
}
