package cbor_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/creachadair/jsonkit/cbor"
	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/domevent"
)

var cmpOpts = cmp.AllowUnexported(dom.Array{}, dom.Object{})

func roundTrip(t *testing.T, v dom.Value) cbor.View {
	t.Helper()
	raw, err := cbor.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal(%v) failed: %v", v, err)
	}
	view, err := cbor.FromBytes(raw)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	return view
}

func dumpToValue(t *testing.T, view cbor.View) dom.Value {
	t.Helper()
	b := new(domevent.Builder)
	if err := view.Dump(b); err != nil {
		t.Fatalf("Dump failed: %v", err)
	}
	return b.Value()
}

func TestMarshalRoundTrip(t *testing.T) {
	obj := dom.NewObject()
	obj.Set("name", dom.String("ohm"))
	obj.Set("count", dom.Int(-7))
	obj.Set("tags", dom.NewArrayFrom(dom.String("a"), dom.String("b")))
	obj.Set("active", dom.Bool(true))
	obj.Set("nothing", dom.Null{})

	view := roundTrip(t, obj)
	if !view.IsObject() {
		t.Fatalf("MajorType = %v, want object", view.MajorType())
	}
	if got, want := view.Size(), 5; got != want {
		t.Errorf("Size = %d, want %d", got, want)
	}

	got := dumpToValue(t, view)
	if diff := cmp.Diff(dom.Value(obj), got, cmpOpts); diff != "" {
		t.Errorf("round trip: (-want, +got)\n%s", diff)
	}
}

func TestObjectMemberOrderPreserved(t *testing.T) {
	obj := dom.NewObject()
	obj.Set("z", dom.Int(1))
	obj.Set("a", dom.Int(2))
	obj.Set("m", dom.Int(3))

	view := roundTrip(t, obj)
	var keys []string
	it := view.ObjectRange()
	for it.Next() {
		keys = append(keys, it.Key())
	}
	want := []string{"z", "a", "m"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Errorf("member order: (-want, +got)\n%s", diff)
	}
}

func TestArrayAtAndIter(t *testing.T) {
	arr := dom.NewArrayFrom(dom.Int(10), dom.Int(20), dom.Int(30))
	view := roundTrip(t, arr)
	if !view.IsArray() {
		t.Fatalf("MajorType = %v, want array", view.MajorType())
	}

	elem, ok := view.At(1)
	if !ok {
		t.Fatal("At(1) failed")
	}
	if n, ok := elem.AsInteger(); !ok || n != 20 {
		t.Errorf("At(1).AsInteger() = %d, %v; want 20, true", n, ok)
	}

	var vals []int64
	it := view.ArrayRange()
	for it.Next() {
		n, ok := it.Value().AsInteger()
		if !ok {
			t.Fatal("AsInteger failed")
		}
		vals = append(vals, n)
	}
	if diff := cmp.Diff([]int64{10, 20, 30}, vals); diff != "" {
		t.Errorf("iteration: (-want, +got)\n%s", diff)
	}
}

func TestByteStringHeaderForms(t *testing.T) {
	// A definite-length byte string, hand-assembled: major type 2, length 3.
	raw := []byte{0x43, 0x01, 0x02, 0x03}
	view, err := cbor.FromBytes(raw)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if !view.IsByteString() {
		t.Fatalf("MajorType = %v, want byte-string", view.MajorType())
	}
	got, ok := view.AsByteString()
	if !ok {
		t.Fatal("AsByteString failed")
	}
	if diff := cmp.Diff([]byte{1, 2, 3}, got); diff != "" {
		t.Errorf("bytes: (-want, +got)\n%s", diff)
	}
}

func TestIndefiniteLengthArray(t *testing.T) {
	// Indefinite array: [_ 1, 2, break]
	raw := []byte{0x9f, 0x01, 0x02, 0xff}
	view, err := cbor.FromBytes(raw)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if got, want := view.Size(), 2; got != want {
		t.Errorf("Size = %d, want %d", got, want)
	}
	first, ok := view.At(0)
	if !ok {
		t.Fatal("At(0) failed")
	}
	if n, ok := first.AsInteger(); !ok || n != 1 {
		t.Errorf("At(0).AsInteger() = %d, %v; want 1, true", n, ok)
	}
}

func TestBignumTag(t *testing.T) {
	// Tag 2 (positive bignum) wrapping a 2-byte string 0x0100 == 256.
	raw := []byte{0xc2, 0x42, 0x01, 0x00}
	view, err := cbor.FromBytes(raw)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	got := dumpToValue(t, view)
	if want := dom.Value(dom.Int(256)); got != want {
		t.Errorf("Bignum tag: got %v, want %v", got, want)
	}
}

func TestMajorTypeOfEmptyViewPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MajorType of empty View did not panic")
		}
	}()
	var v cbor.View
	v.MajorType()
}

func TestDeepEqualIgnoresHeaderForm(t *testing.T) {
	// The same array encoded once definite-length, once indefinite-length.
	definite := []byte{0x82, 0x01, 0x02}
	indefinite := []byte{0x9f, 0x01, 0x02, 0xff}

	v1, err := cbor.FromBytes(definite)
	if err != nil {
		t.Fatalf("FromBytes(definite) failed: %v", err)
	}
	v2, err := cbor.FromBytes(indefinite)
	if err != nil {
		t.Fatalf("FromBytes(indefinite) failed: %v", err)
	}
	if !v1.DeepEqual(v2) {
		t.Error("DeepEqual = false, want true")
	}
	if v1.Equal(v2) {
		t.Error("Equal = true, want false (different header forms)")
	}
}

func TestTaggedArrayIsOpaqueToAccessors(t *testing.T) {
	// Tag 0 (RFC 8949 date/time text string hint) wrapping a 2-element
	// array: [0(1, 2)]. Neither Is* nor At/Size/ArrayRange unwrap the tag,
	// so they agree with each other — the tagged View looks like neither
	// an array nor a composite until the caller explicitly Unwraps it.
	raw := []byte{0xc0, 0x82, 0x01, 0x02}
	view, err := cbor.FromBytes(raw)
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	if view.IsArray() {
		t.Error("IsArray() = true on a tagged View, want false")
	}
	if _, ok := view.At(0); ok {
		t.Error("At(0) succeeded on a tagged View, want failure")
	}

	under := view.Unwrap()
	if !under.IsArray() {
		t.Fatalf("Unwrap().MajorType() = %v, want array", under.MajorType())
	}
	if got, want := under.Size(), 2; got != want {
		t.Errorf("Unwrap().Size() = %d, want %d", got, want)
	}
	elem, ok := under.At(0)
	if !ok {
		t.Fatal("Unwrap().At(0) failed")
	}
	if n, ok := elem.AsInteger(); !ok || n != 1 {
		t.Errorf("Unwrap().At(0).AsInteger() = %d, %v; want 1, true", n, ok)
	}
}

func TestAsDoubleWidensIntegers(t *testing.T) {
	view := roundTrip(t, dom.Int(42))
	f, ok := view.AsDouble()
	if !ok || f != 42 {
		t.Errorf("AsDouble = %v, %v; want 42, true", f, ok)
	}
}
