package interp_test

import (
	"slices"
	"testing"

	"github.com/feather-lang/tclbridge/interp"
)

func TestSetVar(t *testing.T) {
	i := interp.NewInterp()
	defer i.Close()

	h := newString(i, "World")
	if err := i.SetVar("name", h); err != nil {
		t.Fatalf("SetVar failed: %v", err)
	}
	i.DecrRefCount(h)

	got := i.GetVar("::name")
	if s, _ := i.GetString(got); s != "World" {
		t.Errorf("expected 'World', got %q", s)
	}

	if err := i.UnsetVar("name"); err != nil {
		t.Fatalf("UnsetVar failed: %v", err)
	}
	if i.GetVar("name") != 0 {
		t.Error("variable still set after unset")
	}
	if n := i.Live(); n != 0 {
		t.Errorf("expected no live cells, got %d", n)
	}
	if err := i.UnsetVar("name"); err == nil {
		t.Error("expected error unsetting missing variable")
	}
}

func TestArrayElements(t *testing.T) {
	i := interp.NewInterp()
	defer i.Close()

	for _, kv := range [][2]string{{"b", "2"}, {"a", "1"}, {"c", "3"}} {
		h := newString(i, kv[1])
		if err := i.SetElement("arr", kv[0], h); err != nil {
			t.Fatalf("SetElement failed: %v", err)
		}
		i.DecrRefCount(h)
	}

	names, err := i.ArrayNames("arr")
	if err != nil {
		t.Fatalf("ArrayNames failed: %v", err)
	}
	if !slices.Equal(names, []string{"b", "a", "c"}) {
		t.Errorf("expected insertion order [b a c], got %v", names)
	}
	if !i.ArrayExists("::arr") {
		t.Error("expected ::arr to name the same array")
	}

	if s, _ := i.GetString(i.GetElement("arr", "a")); s != "1" {
		t.Errorf("expected '1', got %q", s)
	}
	if i.GetElement("arr", "zzz") != 0 {
		t.Error("expected null handle for unset element")
	}

	// Overwrite keeps position
	h := newString(i, "20")
	if err := i.SetElement("arr", "b", h); err != nil {
		t.Fatal(err)
	}
	i.DecrRefCount(h)
	names, _ = i.ArrayNames("arr")
	if !slices.Equal(names, []string{"b", "a", "c"}) {
		t.Errorf("overwrite changed order: %v", names)
	}

	if err := i.UnsetElement("arr", "a"); err != nil {
		t.Fatalf("UnsetElement failed: %v", err)
	}
	names, _ = i.ArrayNames("arr")
	if !slices.Equal(names, []string{"b", "c"}) {
		t.Errorf("expected [b c], got %v", names)
	}
	if n := i.Live(); n != 2 {
		t.Errorf("expected 2 live cells, got %d", n)
	}
}

func TestArrayNames_Missing(t *testing.T) {
	i := interp.NewInterp()
	defer i.Close()

	names, err := i.ArrayNames("nope")
	if err != nil {
		t.Fatalf("ArrayNames failed: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
}

func TestVariableCollisions(t *testing.T) {
	i := interp.NewInterp()
	defer i.Close()

	h := newString(i, "x")
	defer i.DecrRefCount(h)

	if err := i.SetVar("s", h); err != nil {
		t.Fatal(err)
	}
	if err := i.SetElement("a", "k", h); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		run  func() error
		want string
	}{
		{"element on scalar", func() error { return i.SetElement("s", "k", h) }, `can't set "s(k)": variable isn't array`},
		{"scalar on array", func() error { return i.SetVar("a", h) }, `can't set "a": variable is array`},
		{"unset missing element", func() error { return i.UnsetElement("a", "zz") }, `can't unset "a(zz)": no such element in array`},
		{"unset element of scalar", func() error { return i.UnsetElement("s", "k") }, `can't unset "s(k)": variable isn't array`},
		{"unset element of missing", func() error { return i.UnsetElement("m", "k") }, `can't unset "m(k)": no such variable`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run()
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Error() != tc.want {
				t.Errorf("expected %q, got %q", tc.want, err.Error())
			}
			if i.Result() != tc.want {
				t.Errorf("expected result %q, got %q", tc.want, i.Result())
			}
		})
	}
}

func TestClose_ReleasesVariables(t *testing.T) {
	i := interp.NewInterp()

	h := newString(i, "a b c")
	if _, err := i.ListLength(h); err != nil {
		t.Fatal(err)
	}
	if err := i.SetElement("arr", "k", h); err != nil {
		t.Fatal(err)
	}
	i.DecrRefCount(h)
	if n := i.Live(); n != 4 {
		t.Errorf("expected 4 live cells, got %d", n)
	}

	i.Close()
	if n := i.Live(); n != 0 {
		t.Errorf("expected no live cells after Close, got %d", n)
	}
}
