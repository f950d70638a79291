package interp

import (
	"fmt"
	"strconv"
	"strings"
)

// asInt converts o to int64, shimmering if needed.
func asInt(o *Obj) (int64, error) {
	if o == nil {
		return 0, fmt.Errorf("nil object")
	}
	// Try direct conversion via IntoInt interface
	if c, ok := o.intrep.(IntoInt); ok {
		if v, ok := c.IntoInt(); ok {
			return v, nil
		}
	}
	// Fallback: parse string
	v, err := parseInt(o.String())
	if err != nil {
		return 0, fmt.Errorf("expected integer but got %q", o.String())
	}
	return v, nil
}

// parseInt parses a TCL integer: optional sign, decimal or 0x/0o/0b prefix,
// surrounding whitespace allowed.
func parseInt(s string) (int64, error) {
	s = strings.TrimSpace(s)
	neg := false
	if len(s) > 0 && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	var (
		v   uint64
		err error
	)
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 64)
	case strings.HasPrefix(s, "0o"), strings.HasPrefix(s, "0O"):
		v, err = strconv.ParseUint(s[2:], 8, 64)
	case strings.HasPrefix(s, "0b"), strings.HasPrefix(s, "0B"):
		v, err = strconv.ParseUint(s[2:], 2, 64)
	default:
		v, err = strconv.ParseUint(s, 10, 64)
	}
	if err != nil {
		return 0, err
	}
	if neg {
		if v > 1<<63 {
			return 0, strconv.ErrRange
		}
		return -int64(v), nil
	}
	if v > 1<<63-1 {
		return 0, strconv.ErrRange
	}
	return int64(v), nil
}

// asDouble converts o to float64, shimmering if needed.
func asDouble(o *Obj) (float64, error) {
	if o == nil {
		return 0, fmt.Errorf("nil object")
	}
	// Try direct conversion via IntoDouble interface
	if c, ok := o.intrep.(IntoDouble); ok {
		if v, ok := c.IntoDouble(); ok {
			return v, nil
		}
	}
	s := strings.TrimSpace(o.String())
	if v, err := parseInt(s); err == nil {
		return float64(v), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("expected floating-point number but got %q", o.String())
	}
	return v, nil
}

// asBool converts o to a boolean using TCL boolean rules.
func asBool(o *Obj) (bool, error) {
	if o == nil {
		return false, fmt.Errorf("nil object")
	}
	// Try direct conversion via IntoBool interface
	if c, ok := o.intrep.(IntoBool); ok {
		if v, ok := c.IntoBool(); ok {
			return v, nil
		}
	}
	// String truthiness
	switch strings.ToLower(strings.TrimSpace(o.String())) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	// Any number: non-zero is true
	if v, err := asDouble(o); err == nil {
		return v != 0, nil
	}
	return false, fmt.Errorf("expected boolean value but got %q", o.String())
}
