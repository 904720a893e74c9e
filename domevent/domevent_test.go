package domevent_test

import (
	"strings"
	"testing"

	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/domevent"
	"github.com/google/go-cmp/cmp"
)

var cmpOpts = cmp.AllowUnexported(dom.Array{}, dom.Object{})

func emit(t *testing.T, h domevent.Handler) {
	t.Helper()
	h.BeginDocument()
	if err := h.BeginObject(2); err != nil {
		t.Fatal(err)
	}
	if err := h.Name("a"); err != nil {
		t.Fatal(err)
	}
	if err := h.Integer(1); err != nil {
		t.Fatal(err)
	}
	if err := h.Name("b"); err != nil {
		t.Fatal(err)
	}
	if err := h.BeginArray(2); err != nil {
		t.Fatal(err)
	}
	if err := h.Bool(true); err != nil {
		t.Fatal(err)
	}
	if err := h.Null(); err != nil {
		t.Fatal(err)
	}
	if err := h.EndArray(); err != nil {
		t.Fatal(err)
	}
	if err := h.EndObject(); err != nil {
		t.Fatal(err)
	}
	h.EndDocument()
}

func TestBuilder(t *testing.T) {
	b := new(domevent.Builder)
	emit(t, b)

	want := dom.NewObject()
	want.Set("a", dom.Int(1))
	want.Set("b", dom.NewArrayFrom(dom.Bool(true), dom.Null{}))

	if diff := cmp.Diff(want, b.Value(), cmpOpts); diff != "" {
		t.Errorf("Builder.Value: (-want, +got)\n%s", diff)
	}
}

func TestJSONWriterCompact(t *testing.T) {
	var sb strings.Builder
	w := domevent.NewJSONWriter(&sb)
	emit(t, w)
	if err := w.Err(); err != nil {
		t.Fatalf("write error: %v", err)
	}
	want := `{"a":1,"b":[true,null]}`
	if got := sb.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestJSONWriterIndented(t *testing.T) {
	var sb strings.Builder
	w := domevent.NewIndentedJSONWriter(&sb, "  ")
	emit(t, w)
	if err := w.Err(); err != nil {
		t.Fatalf("write error: %v", err)
	}
	want := "{\n  \"a\": 1,\n  \"b\": [\n    true,\n    null\n  ]\n}"
	if got := sb.String(); got != want {
		t.Errorf("output =\n%s\nwant\n%s", got, want)
	}
}

func TestEmit(t *testing.T) {
	v := dom.NewObject()
	v.Set("a", dom.Int(1))
	v.Set("b", dom.NewArrayFrom(dom.Bool(true), dom.Null{}))

	var sb strings.Builder
	w := domevent.NewJSONWriter(&sb)
	if err := domevent.Emit(v, w); err != nil {
		t.Fatal(err)
	}
	if err := w.Err(); err != nil {
		t.Fatalf("write error: %v", err)
	}
	want := `{"a":1,"b":[true,null]}`
	if got := sb.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestBignum(t *testing.T) {
	b := new(domevent.Builder)
	b.BeginDocument()
	if err := b.Bignum(-1, []byte{0x01, 0x00}); err != nil {
		t.Fatal(err)
	}
	b.EndDocument()
	if got, want := b.Value(), dom.Int(-256); got != want {
		t.Errorf("Bignum: got %v, want %v", got, want)
	}
}
