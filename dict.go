package tclbridge

import (
	"maps"
	"slices"

	"go.uber.org/zap"
)

// FromSlice creates a list value with one element per item, in order.
func FromSlice[T Scalar](ip Interp, xs []T) *Value {
	v := NewValue(ip)
	if err := AppendAll(v, xs); err != nil {
		Logger().Debug("building list", zap.Error(err))
	}
	return v
}

// FromSet creates a list value from the members of set. Element order
// follows map iteration and is intentionally unspecified.
func FromSet[T Scalar](ip Interp, set map[T]struct{}) *Value {
	xs := make([]T, 0, len(set))
	for x := range set {
		xs = append(xs, x)
	}
	return FromSlice(ip, xs)
}

// FromMap creates a dict value: a flat list of alternating keys and values.
// Keys are written in sorted order.
func FromMap[T Scalar](ip Interp, m map[string]T) *Value {
	v := NewValue(ip)
	batch := dictBatch(ip, m)
	defer batch.release()
	if err := v.appendBatch(batch); err != nil {
		Logger().Debug("building dict", zap.Error(err))
	}
	return v
}

// FromValueMap creates a dict value whose values are the given cells,
// shared rather than copied. Keys are written in sorted order.
func FromValueMap(ip Interp, m map[string]*Value) (*Value, error) {
	batch := make(owned, 0, 2*len(m))
	defer func() { batch.release() }()
	for _, k := range slices.Sorted(maps.Keys(m)) {
		h := m[k].handle()
		if h == 0 {
			return nil, nullValue("dict")
		}
		batch = append(batch, FromScalar(ip, k), Wrap(ip, h))
	}
	v := NewValue(ip)
	if err := v.appendBatch(batch); err != nil {
		v.Release()
		return nil, err
	}
	return v, nil
}

func dictBatch[T Scalar](ip Interp, m map[string]T) owned {
	batch := make(owned, 0, 2*len(m))
	for _, k := range slices.Sorted(maps.Keys(m)) {
		batch = append(batch, FromScalar(ip, k), FromScalar(ip, m[k]))
	}
	return batch
}

// SetList replaces v's contents with a list of xs.
func SetList[T Scalar](v *Value, xs []T) error {
	h, err := v.fresh("set list")
	if err != nil {
		return err
	}
	v.ip.SetString(h, "")
	return AppendAll(v, xs)
}

// SetMap replaces v's contents with the dict encoding of m.
func SetMap[T Scalar](v *Value, m map[string]T) error {
	h, err := v.fresh("set dict")
	if err != nil {
		return err
	}
	v.ip.SetString(h, "")
	batch := dictBatch(v.ip, m)
	defer batch.release()
	return v.appendBatch(batch)
}

// dictPairs reads v as a dict-as-list and returns key/value handle pairs.
// The value handles are borrowed from the list.
func (v *Value) dictPairs() ([]string, []Handle, error) {
	h := v.handle()
	if h == 0 {
		return nil, nil, nullValue("dict")
	}
	hs, err := v.ip.ListElements(h)
	if err != nil {
		return nil, nil, fromInterp(KindListParseFailed, "dict", err)
	}
	if len(hs)%2 != 0 {
		return nil, nil, &Error{Kind: KindListParseFailed, Op: "dict", Detail: "missing value to go with key"}
	}
	keys := make([]string, 0, len(hs)/2)
	vals := make([]Handle, 0, len(hs)/2)
	for i := 0; i < len(hs); i += 2 {
		k, err := GetString(v.ip, hs[i])
		if err != nil {
			return nil, nil, err
		}
		keys = append(keys, k)
		vals = append(vals, hs[i+1])
	}
	return keys, vals, nil
}

// Dict decodes v as a flat key/value list. When a key repeats the last
// value wins.
func (v *Value) Dict() (map[string]*Value, error) {
	keys, vals, err := v.dictPairs()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Value, len(keys))
	for i, k := range keys {
		if prev, ok := out[k]; ok {
			prev.Release()
		}
		out[k] = Wrap(v.ip, vals[i])
	}
	return out, nil
}

// DictOf decodes v as a flat key/value list with values coerced to T.
func DictOf[T Scalar](v *Value) (map[string]T, error) {
	keys, vals, err := v.dictPairs()
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(keys))
	for i, k := range keys {
		x, err := Convert[T](v.ip, vals[i])
		if err != nil {
			return nil, err
		}
		out[k] = x
	}
	return out, nil
}
