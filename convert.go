package tclbridge

import (
	"errors"
	"fmt"
	"math"
)

// Scalar is the closed set of Go types a value can be coerced to or built from.
type Scalar interface {
	string | int | int64 | float64 | bool
}

// GetString reads h as a string.
func GetString(ip Interp, h Handle) (string, error) {
	if h == 0 {
		return "", nullValue("get string")
	}
	s, err := ip.GetString(h)
	if err != nil {
		return "", fromInterp(KindConversionFailed, "get string", err)
	}
	return s, nil
}

// GetInt reads h as an integer.
func GetInt(ip Interp, h Handle) (int64, error) {
	if h == 0 {
		return 0, nullValue("get int")
	}
	v, err := ip.GetInt(h)
	if err != nil {
		return 0, fromInterp(KindConversionFailed, "get int", err)
	}
	return v, nil
}

// GetDouble reads h as a floating-point number.
func GetDouble(ip Interp, h Handle) (float64, error) {
	if h == 0 {
		return 0, nullValue("get double")
	}
	v, err := ip.GetDouble(h)
	if err != nil {
		return 0, fromInterp(KindConversionFailed, "get double", err)
	}
	return v, nil
}

// GetBool reads h as a boolean using TCL rules: 1/0, true/false, yes/no,
// on/off (any case) and any number, non-zero being true.
func GetBool(ip Interp, h Handle) (bool, error) {
	if h == 0 {
		return false, nullValue("get bool")
	}
	v, err := ip.GetBool(h)
	if err != nil {
		return false, fromInterp(KindConversionFailed, "get bool", err)
	}
	return v, nil
}

// Convert reads h as T.
func Convert[T Scalar](ip Interp, h Handle) (T, error) {
	var zero T
	var (
		out any
		err error
	)
	switch any(zero).(type) {
	case string:
		out, err = GetString(ip, h)
	case int:
		var n int64
		n, err = GetInt(ip, h)
		if err == nil && (n < math.MinInt || n > math.MaxInt) {
			err = &Error{Kind: KindConversionFailed, Op: "get int", Detail: fmt.Sprintf("integer %d too large for int", n)}
		}
		out = int(n)
	case int64:
		out, err = GetInt(ip, h)
	case float64:
		out, err = GetDouble(ip, h)
	case bool:
		out, err = GetBool(ip, h)
	}
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}

// ConvertArg reads h as T on behalf of a named argument. On failure the
// argument name is appended to the interpreter's error trace and recorded
// in the returned *Error.
func ConvertArg[T Scalar](ip Interp, h Handle, name string) (T, error) {
	v, err := Convert[T](ip, h)
	if err != nil {
		ip.AddErrorInfo(fmt.Sprintf(" while converting %q argument", name))
		var e *Error
		if errors.As(err, &e) {
			e.Arg = name
		}
		return v, err
	}
	return v, nil
}

// setScalar writes x into h using its canonical interpreter representation.
func setScalar[T Scalar](ip Interp, h Handle, x T) {
	switch v := any(x).(type) {
	case string:
		ip.SetString(h, v)
	case int:
		ip.SetInt(h, int64(v))
	case int64:
		ip.SetInt(h, v)
	case float64:
		ip.SetDouble(h, v)
	case bool:
		ip.SetBool(h, v)
	}
}
