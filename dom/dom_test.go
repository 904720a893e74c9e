package dom_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
)

var cmpOpts = cmp.AllowUnexported(dom.Array{}, dom.Object{})

func mustParse(t *testing.T, s string) dom.Value {
	t.Helper()
	v, err := dom.Parse(strings.NewReader(s))
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", s, err)
	}
	return v
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		input string
		want  dom.Value
	}{
		{"null", dom.Null{}},
		{"true", dom.Bool(true)},
		{"false", dom.Bool(false)},
		{"15", dom.Int(15)},
		{"-3.5", dom.Float(-3.5)},
		{`"a b"`, dom.String("a b")},
	}
	for _, test := range tests {
		got := mustParse(t, test.input)
		if diff := cmp.Diff(test.want, got, cmpOpts); diff != "" {
			t.Errorf("Parse(%q): (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseObject(t *testing.T) {
	got := mustParse(t, `{"a":1,"b":[true,null]}`)
	want := dom.NewObject()
	want.Set("a", dom.Int(1))
	want.Set("b", dom.NewArrayFrom(dom.Bool(true), dom.Null{}))

	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("Parse: (-want, +got)\n%s", diff)
	}
}

func TestObjectOrderPreserved(t *testing.T) {
	got := mustParse(t, `{"z":1,"a":2,"m":3}`).(*dom.Object)
	var keys []string
	for _, m := range got.Members() {
		keys = append(keys, m.Key)
	}
	want := []string{"z", "a", "m"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("Member order: (-want, +got)\n%s", diff)
	}
}

func TestHandleMutation(t *testing.T) {
	arr := dom.NewArrayFrom(dom.Int(1), dom.Int(2), dom.Int(3))
	h := arr.Handle(1)
	h.Set(dom.Int(99))
	if got, _ := arr.At(1); got != dom.Int(99) {
		t.Errorf("After Set: got %v, want 99", got)
	}

	obj := dom.NewObject()
	obj.Set("x", dom.Int(1))
	oh, ok := obj.Handle("x")
	if !ok {
		t.Fatal("Handle(x) not found")
	}
	oh.Set(dom.Int(42))
	if got, _ := obj.At("x"); got != dom.Int(42) {
		t.Errorf("After Set: got %v, want 42", got)
	}
}

func TestAccessors(t *testing.T) {
	arr := dom.NewArrayFrom(dom.Int(1), dom.Int(2))
	if !dom.IsArray(arr) {
		t.Error("IsArray = false, want true")
	}
	if dom.Size(arr) != 2 {
		t.Errorf("Size = %d, want 2", dom.Size(arr))
	}
	obj := dom.NewObject()
	obj.Set("k", dom.String("v"))
	if !dom.Contains(obj, "k") {
		t.Error("Contains(k) = false, want true")
	}
	if s, ok := dom.AsStringView(dom.String("hi")); !ok || s != "hi" {
		t.Errorf("AsStringView = %q, %v", s, ok)
	}
	if f, ok := dom.AsDouble(dom.Uint(7)); !ok || f != 7 {
		t.Errorf("AsDouble(Uint(7)) = %v, %v", f, ok)
	}
}

func TestOutOfRangeMutatorsPanic(t *testing.T) {
	arr := dom.NewArrayFrom(dom.Int(1), dom.Int(2))
	mtest.MustPanic(t, func() { arr.Set(5, dom.Int(0)) })
	mtest.MustPanic(t, func() { arr.Handle(5) })

	obj := dom.NewObject()
	obj.Set("k", dom.String("v"))
	mtest.MustPanic(t, func() { obj.HandleAt(5) })
}
