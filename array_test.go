package tclbridge_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/feather-lang/tclbridge"
	"github.com/feather-lang/tclbridge/interp"
)

// vanishingInterp unsets one element right after the bridge lists names,
// simulating an external mutation between snapshot and read.
type vanishingInterp struct {
	*interp.Interp
	victim string
}

func (v *vanishingInterp) ArrayNames(name string) ([]string, error) {
	names, err := v.Interp.ArrayNames(name)
	if err == nil && v.victim != "" {
		_ = v.Interp.UnsetElement(name, v.victim)
	}
	return names, err
}

// brokenNamesInterp fails every ArrayNames call.
type brokenNamesInterp struct {
	*interp.Interp
}

func (b *brokenNamesInterp) ArrayNames(string) ([]string, error) {
	return nil, errors.New("array enumeration unavailable")
}

// rejectingInterp refuses writes to one key.
type rejectingInterp struct {
	*interp.Interp
	reject string
}

func (r *rejectingInterp) SetElement(name, key string, h tclbridge.Handle) error {
	if key == r.reject {
		return errors.New(`can't set element: read-only`)
	}
	return r.Interp.SetElement(name, key, h)
}

func TestConfigScenario(t *testing.T) {
	ip := interp.NewInterp()
	defer ip.Close()

	cfg := tclbridge.NewArray(ip, "config")
	require.NoError(t, tclbridge.Import(cfg, map[string]string{"host": "localhost", "port": "8080"}))

	names, err := cfg.Names()
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"host", "port"}, names)

	all, err := cfg.Strings()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"host": "localhost", "port": "8080"}, all)

	require.NoError(t, tclbridge.SetElement(cfg, "port", "9090"))
	port, err := tclbridge.GetAs[string](cfg, "port")
	require.NoError(t, err)
	require.Equal(t, "9090", port)
	n, err := tclbridge.GetAs[int](cfg, "port")
	require.NoError(t, err)
	require.Equal(t, 9090, n)
}

func TestArray_BestEffortEnumeration(t *testing.T) {
	ip := &vanishingInterp{Interp: interp.NewInterp()}
	defer ip.Close()

	arr := tclbridge.NewArray(ip, "arr")
	require.NoError(t, tclbridge.Import(arr, map[string]int{"a": 1, "b": 2, "c": 3}))

	t.Run("Values", func(t *testing.T) {
		ip.victim = "b"
		defer func() { ip.victim = "" }()

		got, err := arr.Values()
		require.NoError(t, err)
		require.Len(t, got, 2)
		require.Contains(t, got, "a")
		require.Contains(t, got, "c")
		for _, v := range got {
			v.Release()
		}
	})

	t.Run("ArrayOf", func(t *testing.T) {
		ip.victim = "c"
		defer func() { ip.victim = "" }()

		got, err := tclbridge.ArrayOf[int](arr)
		require.NoError(t, err)
		require.Equal(t, map[string]int{"a": 1}, got)
	})

	t.Run("All", func(t *testing.T) {
		ip.victim = "a"
		defer func() { ip.victim = "" }()

		require.NoError(t, tclbridge.SetElement(arr, "d", 4))
		got := map[string]string{}
		for k, v := range arr.All() {
			got[k] = v.String()
		}
		require.Equal(t, map[string]string{"d": "4"}, got)
	})
}

func TestArray_NamesFailure(t *testing.T) {
	ip := &brokenNamesInterp{Interp: interp.NewInterp()}
	defer ip.Close()

	arr := tclbridge.NewArray(ip, "arr")
	require.NoError(t, tclbridge.SetElement(arr, "k", "v"))

	_, err := arr.Names()
	require.Error(t, err)
	_, err = arr.Values()
	require.ErrorContains(t, err, "array enumeration unavailable")
	_, err = arr.Strings()
	require.Error(t, err)

	count := 0
	for range arr.All() {
		count++
	}
	require.Zero(t, count)
}

func TestArray_WriteRejected(t *testing.T) {
	ip := interp.NewInterp()
	defer ip.Close()

	h := ip.NewObj()
	ip.IncrRefCount(h)
	ip.SetString(h, "plain")
	require.NoError(t, ip.SetVar("scalar", h))
	ip.DecrRefCount(h)

	arr := tclbridge.NewArray(ip, "scalar")
	err := tclbridge.SetElement(arr, "k", "v")
	require.ErrorIs(t, err, tclbridge.ErrVariableWriteFailed)
	require.Contains(t, err.Error(), `can't set "scalar(k)": variable isn't array`)
}

func TestImport_StopsAtFirstFailure(t *testing.T) {
	ip := &rejectingInterp{Interp: interp.NewInterp(), reject: "b"}
	defer ip.Close()

	arr := tclbridge.NewArray(ip, "arr")
	err := tclbridge.Import(arr, map[string]string{"a": "1", "b": "2", "c": "3"})
	require.ErrorIs(t, err, tclbridge.ErrVariableWriteFailed)
	require.Contains(t, err.Error(), `import "b"`)

	// No rollback: a stays, c was never written
	got, err := arr.Strings()
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1"}, got)
}

func TestArray_Namespace(t *testing.T) {
	ip := interp.NewInterp()
	defer ip.Close()

	arr := tclbridge.NewArray(ip, "settings", tclbridge.InNamespace("app"))
	require.Equal(t, "app::settings", arr.Name())
	require.NoError(t, tclbridge.SetElement(arr, "debug", true))

	same := tclbridge.NewArray(ip, "::app::settings")
	on, err := tclbridge.GetAs[bool](same, "debug")
	require.NoError(t, err)
	require.True(t, on)

	require.Equal(t, "::x::y", tclbridge.NewArray(ip, "y", tclbridge.InNamespace("::x::")).Name())
}

func TestArray_GetUnset(t *testing.T) {
	ip := interp.NewInterp()
	defer ip.Close()

	arr := tclbridge.NewArray(ip, "arr")
	require.Nil(t, arr.Get("missing"))
	_, err := tclbridge.GetAs[string](arr, "missing")
	require.ErrorIs(t, err, tclbridge.ErrNullValue)

	require.NoError(t, tclbridge.SetElement(arr, "k", 1.5))
	v := arr.Get("k")
	require.NotNil(t, v)
	f, err := v.Float()
	require.NoError(t, err)
	require.Equal(t, 1.5, f)
	v.Release()

	require.NoError(t, arr.Unset("k"))
	require.Nil(t, arr.Get("k"))
	require.ErrorIs(t, arr.Unset("k"), tclbridge.ErrVariableWriteFailed)
	require.Equal(t, 0, ip.Live())
}

func TestArray_SetValueShares(t *testing.T) {
	ip := interp.NewInterp()
	defer ip.Close()

	list := tclbridge.FromSlice(ip, []string{"x", "y"})
	arr := tclbridge.NewArray(ip, "arr")
	require.NoError(t, arr.Set("list", list))
	list.Release()

	v := arr.Get("list")
	defer v.Release()
	got, err := tclbridge.ListOf[string](v)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y"}, got)

	released := tclbridge.FromScalar(ip, "gone")
	released.Release()
	require.ErrorIs(t, arr.Set("k", released), tclbridge.ErrNullValue)
}

func TestArray_ImportList(t *testing.T) {
	ip := interp.NewInterp()
	defer ip.Close()

	src := tclbridge.FromScalar(ip, "host example.org port 443")
	defer src.Release()

	arr := tclbridge.NewArray(ip, "conn")
	require.NoError(t, arr.ImportList(src))
	got, err := tclbridge.ArrayOf[string](arr)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"host": "example.org", "port": "443"}, got)

	odd := tclbridge.FromScalar(ip, "a b c")
	defer odd.Release()
	require.ErrorIs(t, arr.ImportList(odd), tclbridge.ErrListParseFailed)
}

func TestNewArrayFrom(t *testing.T) {
	ip := interp.NewInterp()
	defer ip.Close()

	arr, err := tclbridge.NewArrayFrom(ip, "limits", map[string]int64{"min": -5, "max": 5})
	require.NoError(t, err)
	got, err := tclbridge.ArrayOf[int64](arr)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"min": -5, "max": 5}, got)

	_, err = tclbridge.ArrayOf[bool](tclbridge.NewArray(ip, "limits"))
	require.NoError(t, err, "non-zero numbers are booleans")

	values := map[string]string{"a": "x"}
	_, err = tclbridge.NewArrayFrom(ip, "limits", values)
	require.NoError(t, err)
	_, err = tclbridge.ArrayOf[int](arr)
	require.ErrorIs(t, err, tclbridge.ErrConversionFailed)
}
