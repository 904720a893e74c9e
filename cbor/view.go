package cbor

import (
	"fmt"

	"go4.org/mem"

	"github.com/creachadair/jsonkit/domevent"
)

// MajorTypeTag identifies the kind of item a View currently denotes.
type MajorTypeTag byte

const (
	UnsignedInt MajorTypeTag = iota
	NegativeInt
	ByteStringTag
	TextStringTag
	ArrayTag
	MapTag
	Tagged
	Simple
)

func (t MajorTypeTag) String() string {
	switch t {
	case UnsignedInt:
		return "unsigned-integer"
	case NegativeInt:
		return "negative-integer"
	case ByteStringTag:
		return "byte-string"
	case TextStringTag:
		return "text-string"
	case ArrayTag:
		return "array"
	case MapTag:
		return "map"
	case Tagged:
		return "tagged"
	case Simple:
		return "simple"
	default:
		return "invalid"
	}
}

// View is a non-owning, zero-copy handle on a well-formed CBOR item within
// a byte buffer. It never allocates or copies the underlying storage;
// descent methods return further Views over sub-ranges of the same buffer.
// The zero View is invalid; construct one with FromBytes or FromMem.
type View struct {
	buf mem.RO
}

// FromBytes constructs a View over the single top-level CBOR item encoded
// in b. It fails if b does not contain exactly one well-formed item.
func FromBytes(b []byte) (View, error) {
	return FromMem(mem.B(b))
}

// FromMem constructs a View over the single top-level CBOR item encoded in
// b, as FromBytes does, without requiring a copy into a []byte first.
func FromMem(b mem.RO) (View, error) {
	rest, ok := walk(b)
	if !ok {
		return View{}, &DecodeError{Offset: 0, Err: ErrUnexpectedEOF}
	}
	if rest.Len() != 0 {
		return View{}, &DecodeError{Offset: b.Len() - rest.Len(), Err: fmt.Errorf("cbor: trailing data after top-level item")}
	}
	return View{buf: b}, nil
}

// Buffer returns a copy of the raw bytes v denotes.
func (v View) Buffer() []byte { return mem.Append(nil, v.buf) }

// Len returns the number of raw bytes v denotes.
func (v View) Len() int { return v.buf.Len() }

// Empty reports whether v was never assigned an item.
func (v View) Empty() bool { return v.buf.Len() == 0 }

// MajorType reports the kind of item v denotes. It panics if v is empty,
// mirroring the source library's assertion that a View always names a
// concrete item before it is inspected.
func (v View) MajorType() MajorTypeTag {
	if v.Empty() {
		panic("cbor: MajorType of empty View")
	}
	mt, _, _, _, ok := parseHeader(v.buf)
	if !ok {
		panic("cbor: MajorType of malformed View")
	}
	switch mt {
	case mtUnsignedInt:
		return UnsignedInt
	case mtNegativeInt:
		return NegativeInt
	case mtByteString:
		return ByteStringTag
	case mtTextString:
		return TextStringTag
	case mtArray:
		return ArrayTag
	case mtMap:
		return MapTag
	case mtTag:
		return Tagged
	default:
		return Simple
	}
}

// IsArray reports whether v denotes an array.
func (v View) IsArray() bool { return !v.Empty() && v.MajorType() == ArrayTag }

// IsObject reports whether v denotes a map.
func (v View) IsObject() bool { return !v.Empty() && v.MajorType() == MapTag }

// IsString reports whether v denotes a text string.
func (v View) IsString() bool { return !v.Empty() && v.MajorType() == TextStringTag }

// IsByteString reports whether v denotes a byte string.
func (v View) IsByteString() bool { return !v.Empty() && v.MajorType() == ByteStringTag }

// IsInteger reports whether v denotes an unsigned or negative integer.
func (v View) IsInteger() bool {
	if v.Empty() {
		return false
	}
	mt := v.MajorType()
	return mt == UnsignedInt || mt == NegativeInt
}

// IsDouble reports whether v denotes an IEEE-754 float (half, single, or
// double precision).
func (v View) IsDouble() bool {
	if v.Empty() || v.MajorType() != Simple {
		return false
	}
	_, ai, _, _, ok := parseHeader(v.buf)
	return ok && (ai == 25 || ai == 26 || ai == 27)
}

// IsBool reports whether v denotes a CBOR boolean simple value.
func (v View) IsBool() bool {
	if v.Empty() || v.MajorType() != Simple {
		return false
	}
	_, ai, _, _, ok := parseHeader(v.buf)
	return ok && (ai == 20 || ai == 21)
}

// IsNull reports whether v denotes the CBOR null simple value.
func (v View) IsNull() bool {
	if v.Empty() || v.MajorType() != Simple {
		return false
	}
	_, ai, _, _, ok := parseHeader(v.buf)
	return ok && ai == 22
}

// tagAndContent unwraps a semantic tag, returning the tag number and a
// View over the tagged content item. If v is not tagged, it reports ok=false.
func (v View) tagAndContent() (tagNum uint64, content View, ok bool) {
	if v.Empty() || v.MajorType() != Tagged {
		return 0, View{}, false
	}
	_, _, arg, headerLen, hok := parseHeader(v.buf)
	if !hok {
		return 0, View{}, false
	}
	return arg, View{buf: v.buf.SliceFrom(headerLen)}, true
}

// Unwrap follows semantic tags until reaching the underlying content item.
// If v is not tagged, it returns v unchanged.
func (v View) Unwrap() View {
	for {
		_, content, ok := v.tagAndContent()
		if !ok {
			return v
		}
		v = content
	}
}

// Size reports the number of elements in an array or members in a map,
// the byte length of a byte or text string, or the value of an unsigned
// integer. It panics for any other major type. Indefinite-length items
// are sized by a linear scan.
func (v View) Size() int {
	count, payload, ok := getSize(v.buf)
	if !ok {
		panic("cbor: Size of non-composite View")
	}
	if count != IndefiniteCount {
		return int(count)
	}
	n := 0
	rest := payload
	mt, _, _, _, _ := parseHeader(v.buf)
	for rest.Len() > 0 && rest.At(0) != breakByte {
		next, ok := walk(rest)
		if !ok {
			break
		}
		if mt == mtMap {
			next, ok = walk(next)
			if !ok {
				break
			}
		}
		rest = next
		n++
	}
	return n
}

// At returns the element at index i of an array View.
func (v View) At(i int) (View, bool) {
	if !v.IsArray() {
		return View{}, false
	}
	_, payload, ok := getSize(v.buf)
	if !ok {
		return View{}, false
	}
	rest := payload
	for idx := 0; ; idx++ {
		if rest.Len() == 0 || rest.At(0) == breakByte {
			return View{}, false
		}
		itemLen := rest.Len()
		next, ok := walk(rest)
		if !ok {
			return View{}, false
		}
		if idx == i {
			return View{buf: rest.SliceTo(itemLen - next.Len())}, true
		}
		rest = next
	}
}

// AtKey returns the value of the member with the given text-string key in
// a map View.
func (v View) AtKey(key string) (View, bool) {
	if !v.IsObject() {
		return View{}, false
	}
	_, payload, ok := getSize(v.buf)
	if !ok {
		return View{}, false
	}
	rest := payload
	for {
		if rest.Len() == 0 || rest.At(0) == breakByte {
			return View{}, false
		}
		keyLen := rest.Len()
		keyRest, ok := walk(rest)
		if !ok {
			return View{}, false
		}
		keyView := View{buf: rest.SliceTo(keyLen - keyRest.Len())}
		valLen := keyRest.Len()
		valRest, ok := walk(keyRest)
		if !ok {
			return View{}, false
		}
		if s, ok := keyView.AsString(); ok && s == key {
			return View{buf: keyRest.SliceTo(valLen - valRest.Len())}, true
		}
		rest = valRest
	}
}

// HasKey reports whether a map View has a member with the given key.
func (v View) HasKey(key string) bool {
	_, ok := v.AtKey(key)
	return ok
}

// ArrayIter iterates the elements of an array View in order.
type ArrayIter struct {
	rest mem.RO
	cur  View
	done bool
}

// ArrayRange returns a forward-only iterator over v's elements. It panics
// if v does not denote an array.
func (v View) ArrayRange() *ArrayIter {
	if !v.IsArray() {
		panic("cbor: ArrayRange of non-array View")
	}
	_, payload, _ := getSize(v.buf)
	return &ArrayIter{rest: payload}
}

// Next advances the iterator, reporting whether an element remains.
func (it *ArrayIter) Next() bool {
	if it.done || it.rest.Len() == 0 || it.rest.At(0) == breakByte {
		it.done = true
		return false
	}
	itemLen := it.rest.Len()
	next, ok := walk(it.rest)
	if !ok {
		it.done = true
		return false
	}
	it.cur = View{buf: it.rest.SliceTo(itemLen - next.Len())}
	it.rest = next
	return true
}

// Value returns the element at the iterator's current position.
func (it *ArrayIter) Value() View { return it.cur }

// ObjectIter iterates the members of a map View in encoded order.
type ObjectIter struct {
	rest    mem.RO
	curKey  View
	curVal  View
	done    bool
}

// ObjectRange returns a forward-only iterator over v's members. It panics
// if v does not denote a map.
func (v View) ObjectRange() *ObjectIter {
	if !v.IsObject() {
		panic("cbor: ObjectRange of non-map View")
	}
	_, payload, _ := getSize(v.buf)
	return &ObjectIter{rest: payload}
}

// Next advances the iterator, reporting whether a member remains.
func (it *ObjectIter) Next() bool {
	if it.done || it.rest.Len() == 0 || it.rest.At(0) == breakByte {
		it.done = true
		return false
	}
	keyLen := it.rest.Len()
	keyRest, ok := walk(it.rest)
	if !ok {
		it.done = true
		return false
	}
	it.curKey = View{buf: it.rest.SliceTo(keyLen - keyRest.Len())}
	valLen := keyRest.Len()
	valRest, ok := walk(keyRest)
	if !ok {
		it.done = true
		return false
	}
	it.curVal = View{buf: keyRest.SliceTo(valLen - valRest.Len())}
	it.rest = valRest
	return true
}

// Key returns the member key at the iterator's current position.
func (it *ObjectIter) Key() string {
	s, _ := it.curKey.AsString()
	return s
}

// Value returns the member value at the iterator's current position.
func (it *ObjectIter) Value() View { return it.curVal }

// AsBool decodes v as a boolean simple value.
func (v View) AsBool() (bool, bool) {
	if !v.IsBool() {
		return false, false
	}
	_, ai, _, _, _ := parseHeader(v.buf)
	return ai == 21, true
}

// AsInteger decodes v as a signed integer.
func (v View) AsInteger() (int64, bool) {
	n, _, ok := getInteger(v.buf)
	return n, ok
}

// AsUinteger decodes v as an unsigned integer.
func (v View) AsUinteger() (uint64, bool) {
	n, _, ok := getUinteger(v.buf)
	return n, ok
}

// AsDouble decodes v as a float64, widening integers and narrower floats.
func (v View) AsDouble() (float64, bool) {
	f, _, ok := getDouble(v.buf)
	return f, ok
}

// AsString decodes v as a text string.
func (v View) AsString() (string, bool) {
	s, _, ok := getTextString(v.buf)
	return s, ok
}

// AsByteString decodes v as a byte string.
func (v View) AsByteString() ([]byte, bool) {
	b, _, ok := getByteString(v.buf)
	return b, ok
}

// Equal reports whether v and w denote byte-for-byte identical CBOR
// encodings. Two semantically equal values encoded with different header
// forms (e.g. a definite- vs indefinite-length string) compare unequal;
// use DeepEqual to ignore encoding differences.
func (v View) Equal(w View) bool { return v.buf.Equal(w.buf) }

// DeepEqual reports whether v and w denote the same value, recursing
// structurally and ignoring differences in header encoding. Member order
// within maps is not significant: each member of v is looked up by key
// in w.
func (v View) DeepEqual(w View) bool {
	vu, wu := v.Unwrap(), w.Unwrap()
	if vu.Empty() || wu.Empty() {
		return vu.Empty() == wu.Empty()
	}
	vt, wt := vu.MajorType(), wu.MajorType()
	if vt != wt {
		// Numeric cross-type comparison (uint vs negint is impossible to
		// collide with equal value, so only fall through for genuinely
		// comparable kinds).
		return false
	}
	switch vt {
	case ArrayTag:
		if vu.Size() != wu.Size() {
			return false
		}
		vi, wi := vu.ArrayRange(), wu.ArrayRange()
		for vi.Next() && wi.Next() {
			if !vi.Value().DeepEqual(wi.Value()) {
				return false
			}
		}
		return true
	case MapTag:
		if vu.Size() != wu.Size() {
			return false
		}
		vi := vu.ObjectRange()
		for vi.Next() {
			wv, ok := wu.AtKey(vi.Key())
			if !ok || !vi.Value().DeepEqual(wv) {
				return false
			}
		}
		return true
	case TextStringTag:
		vs, _ := vu.AsString()
		ws, _ := wu.AsString()
		return vs == ws
	case ByteStringTag:
		vb, _ := vu.AsByteString()
		wb, _ := wu.AsByteString()
		return string(vb) == string(wb)
	case UnsignedInt, NegativeInt:
		vn, _ := vu.AsInteger()
		wn, _ := wu.AsInteger()
		return vn == wn
	default:
		if vu.IsDouble() || wu.IsDouble() {
			vf, _ := vu.AsDouble()
			wf, _ := wu.AsDouble()
			return vf == wf
		}
		if vu.IsBool() {
			vb, _ := vu.AsBool()
			wb, _ := wu.AsBool()
			return vb == wb
		}
		return vu.IsNull() && wu.IsNull()
	}
}

// Dump emits v as a sequence of events on h, recursing depth-first into
// arrays and maps. Semantic tags 2 and 3 (RFC 8949 §3.4.3, positive and
// negative bignums) are reported as Bignum events; every other tag is
// transparent, and Dump descends directly into the tagged content.
func (v View) Dump(h domevent.Handler) error {
	h.BeginDocument()
	if err := v.dump(h); err != nil {
		return err
	}
	h.EndDocument()
	return nil
}

func (v View) dump(h domevent.Handler) error {
	if tagNum, content, ok := v.tagAndContent(); ok {
		switch tagNum {
		case 2, 3:
			b, ok := content.AsByteString()
			if !ok {
				return &DecodeError{Err: ErrInvalidArgument}
			}
			sign := 1
			if tagNum == 3 {
				sign = -1
			}
			return h.Bignum(sign, b)
		default:
			return content.dump(h)
		}
	}

	switch v.MajorType() {
	case ArrayTag:
		n := v.Size()
		if err := h.BeginArray(n); err != nil {
			return err
		}
		it := v.ArrayRange()
		for it.Next() {
			if err := it.Value().dump(h); err != nil {
				return err
			}
		}
		return h.EndArray()

	case MapTag:
		n := v.Size()
		if err := h.BeginObject(n); err != nil {
			return err
		}
		it := v.ObjectRange()
		for it.Next() {
			if err := h.Name(it.Key()); err != nil {
				return err
			}
			if err := it.Value().dump(h); err != nil {
				return err
			}
		}
		return h.EndObject()

	case TextStringTag:
		s, _ := v.AsString()
		return h.String(s)

	case ByteStringTag:
		b, _ := v.AsByteString()
		return h.ByteString(b)

	case UnsignedInt:
		n, _ := v.AsUinteger()
		return h.Uinteger(n)

	case NegativeInt:
		n, _ := v.AsInteger()
		return h.Integer(n)

	case Simple:
		switch {
		case v.IsBool():
			b, _ := v.AsBool()
			return h.Bool(b)
		case v.IsNull():
			return h.Null()
		case v.IsDouble():
			f, _ := v.AsDouble()
			return h.Double(f)
		default:
			return &DecodeError{Err: ErrInvalidArgument}
		}

	default:
		return &DecodeError{Err: ErrInvalidArgument}
	}
}
