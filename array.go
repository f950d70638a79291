package tclbridge

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Array is a view of an associative array variable in the interpreter.
//
// It is only a name: creating an Array does not create the variable, and
// dropping it does not unset anything. Element order is whatever the
// interpreter reports.
type Array struct {
	ip   Interp
	name string
}

// ArrayOption configures NewArray.
type ArrayOption func(*arrayConfig)

type arrayConfig struct {
	namespace string
}

// InNamespace qualifies the array name as ns::name.
func InNamespace(ns string) ArrayOption {
	return func(c *arrayConfig) {
		c.namespace = ns
	}
}

// NewArray returns a view of the array variable name.
func NewArray(ip Interp, name string, opts ...ArrayOption) *Array {
	var cfg arrayConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.namespace != "" {
		name = strings.TrimSuffix(cfg.namespace, "::") + "::" + name
	}
	return &Array{ip: ip, name: name}
}

// NewArrayFrom returns a view of name after importing m into it.
func NewArrayFrom[T Scalar](ip Interp, name string, m map[string]T, opts ...ArrayOption) (*Array, error) {
	a := NewArray(ip, name, opts...)
	if err := Import(a, m); err != nil {
		return a, err
	}
	return a, nil
}

// Name returns the qualified variable name.
func (a *Array) Name() string {
	return a.name
}

// Names returns the keys of every element currently set.
func (a *Array) Names() ([]string, error) {
	names, err := a.ip.ArrayNames(a.name)
	if err != nil {
		return nil, fmt.Errorf("array names %q: %w", a.name, err)
	}
	return names, nil
}

// Get returns the element key, or nil if it is unset.
func (a *Array) Get(key string) *Value {
	h := a.ip.GetElement(a.name, key)
	if h == 0 {
		return nil
	}
	return Wrap(a.ip, h)
}

// GetAs returns the element key coerced to T. An unset element fails with
// ErrNullValue.
func GetAs[T Scalar](a *Array, key string) (T, error) {
	h := a.ip.GetElement(a.name, key)
	if h == 0 {
		var zero T
		return zero, &Error{
			Kind:   KindNullValue,
			Op:     "get element",
			Detail: fmt.Sprintf("no such element %q in array %q", key, a.name),
		}
	}
	return Convert[T](a.ip, h)
}

// Set writes v to the element key.
func (a *Array) Set(key string, v *Value) error {
	h := v.handle()
	if h == 0 {
		return nullValue("set element")
	}
	if err := a.ip.SetElement(a.name, key, h); err != nil {
		return fromInterp(KindVariableWriteFailed, "set element", err)
	}
	return nil
}

// SetElement writes x to the element key.
func SetElement[T Scalar](a *Array, key string, x T) error {
	e := FromScalar(a.ip, x)
	defer e.Release()
	return a.Set(key, e)
}

// Unset removes the element key.
func (a *Array) Unset(key string) error {
	if err := a.ip.UnsetElement(a.name, key); err != nil {
		return fromInterp(KindVariableWriteFailed, "unset element", err)
	}
	return nil
}

// Values returns every element. Keys are snapshotted first; an element
// unset between the snapshot and its read is left out without error.
func (a *Array) Values() (map[string]*Value, error) {
	names, err := a.Names()
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Value, len(names))
	for _, key := range names {
		if v := a.Get(key); v != nil {
			out[key] = v
			continue
		}
		Logger().Debug("element vanished", zap.String("array", a.name), zap.String("key", key))
	}
	return out, nil
}

// ArrayOf returns every element coerced to T, skipping elements that
// vanish mid-read like Values.
func ArrayOf[T Scalar](a *Array) (map[string]T, error) {
	names, err := a.Names()
	if err != nil {
		return nil, err
	}
	out := make(map[string]T, len(names))
	for _, key := range names {
		h := a.ip.GetElement(a.name, key)
		if h == 0 {
			Logger().Debug("element vanished", zap.String("array", a.name), zap.String("key", key))
			continue
		}
		x, err := Convert[T](a.ip, h)
		if err != nil {
			return nil, fmt.Errorf("element %q: %w", key, err)
		}
		out[key] = x
	}
	return out, nil
}

// Strings returns every element as a string.
func (a *Array) Strings() (map[string]string, error) {
	return ArrayOf[string](a)
}

// Import writes every entry of m in sorted key order. It stops at the
// first rejected write and returns it; entries written before the failure
// stay written.
func Import[T Scalar](a *Array, m map[string]T) error {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if err := SetElement(a, key, m[key]); err != nil {
			return fmt.Errorf("import %q: %w", key, err)
		}
	}
	return nil
}

// ImportValues writes every entry of m like Import.
func (a *Array) ImportValues(m map[string]*Value) error {
	for _, key := range slices.Sorted(maps.Keys(m)) {
		if err := a.Set(key, m[key]); err != nil {
			return fmt.Errorf("import %q: %w", key, err)
		}
	}
	return nil
}

// ImportList decodes v as a flat key/value list and imports it.
func (a *Array) ImportList(v *Value) error {
	m, err := v.Dict()
	if err != nil {
		return err
	}
	defer func() {
		for _, e := range m {
			e.Release()
		}
	}()
	return a.ImportValues(m)
}

// All returns an iterator over the array's elements. Each call takes a
// fresh snapshot of the names; elements unset mid-scan are skipped.
// Yielded values are released after the body returns.
func (a *Array) All() iter.Seq2[string, *Value] {
	return func(yield func(string, *Value) bool) {
		names, err := a.Names()
		if err != nil {
			Logger().Debug("array iteration failed", zap.String("array", a.name), zap.Error(err))
			return
		}
		for _, key := range names {
			v := a.Get(key)
			if v == nil {
				continue
			}
			ok := yield(key, v)
			v.Release()
			if !ok {
				return
			}
		}
	}
}
