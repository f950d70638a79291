package interp

import (
	"math"
	"slices"
	"strconv"
	"strings"
)

// Internal representations. An Obj's intrep is replaced wholesale, never
// mutated in place, except for ListType, which only the list primitives
// touch.

// IntType holds an integer. Booleans are stored as 1 or 0.
type IntType int64

// DoubleType holds a floating-point number.
type DoubleType float64

// ListType holds list elements. The list owns one reference on each.
type ListType []*Obj

// owner is implemented by representations that hold references on other cells.
type owner interface {
	owned() []*Obj
}

func (IntType) Name() string    { return "int" }
func (DoubleType) Name() string { return "double" }
func (ListType) Name() string   { return "list" }

func (t IntType) Dup() ObjType    { return t }
func (t DoubleType) Dup() ObjType { return t }
func (t ListType) Dup() ObjType   { return slices.Clone(t) }

func (t IntType) UpdateString() string {
	return strconv.FormatInt(int64(t), 10)
}

// UpdateString spells infinities Inf and -Inf and keeps a ".0" suffix on
// integral values so the string still reads back as a double.
func (t DoubleType) UpdateString() string {
	f := float64(t)
	switch {
	case math.IsInf(f, 1):
		return "Inf"
	case math.IsInf(f, -1):
		return "-Inf"
	case math.IsNaN(f):
		return "NaN"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (t ListType) UpdateString() string {
	var b strings.Builder
	for i, item := range t {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(listQuote(item.String()))
	}
	return b.String()
}

func (t IntType) IntoInt() (int64, bool)      { return int64(t), true }
func (t IntType) IntoDouble() (float64, bool) { return float64(t), true }
func (t IntType) IntoBool() (bool, bool)      { return t != 0, true }

func (t DoubleType) IntoDouble() (float64, bool) { return float64(t), true }
func (t DoubleType) IntoBool() (bool, bool)      { return t != 0, true }

func (t ListType) IntoList() ([]*Obj, bool) { return t, true }
func (t ListType) owned() []*Obj            { return t }
