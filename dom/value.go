package dom

import "fmt"

// Kind identifies the concrete variant of a Value.
type Kind byte

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindByteString
	KindArray
	KindObject
)

var kindStr = [...]string{
	KindNull:       "null",
	KindBool:       "bool",
	KindInt:        "int",
	KindUint:       "uint",
	KindFloat:      "float",
	KindString:     "string",
	KindByteString: "byte-string",
	KindArray:      "array",
	KindObject:     "object",
}

func (k Kind) String() string {
	if int(k) >= len(kindStr) {
		return fmt.Sprintf("Kind(%d)", byte(k))
	}
	return kindStr[k]
}

// Value is the interface implemented by every concrete DOM node type.  The
// method set is intentionally minimal; type-specific behavior is exposed by
// the free functions below and by the concrete types themselves (*Array,
// *Object). The unexported method seals Value to this package.
type Value interface {
	// Kind reports the concrete variant of the value.
	Kind() Kind

	domValue()
}

// IsNull reports whether v is the null value.
func IsNull(v Value) bool { return v.Kind() == KindNull }

// IsBool reports whether v is a boolean.
func IsBool(v Value) bool { return v.Kind() == KindBool }

// IsInteger reports whether v is a signed integer.
func IsInteger(v Value) bool { return v.Kind() == KindInt }

// IsUinteger reports whether v is an unsigned integer.
func IsUinteger(v Value) bool { return v.Kind() == KindUint }

// IsDouble reports whether v is a floating-point number.
func IsDouble(v Value) bool { return v.Kind() == KindFloat }

// IsString reports whether v is a text string.
func IsString(v Value) bool { return v.Kind() == KindString }

// IsByteString reports whether v is a byte string.
func IsByteString(v Value) bool { return v.Kind() == KindByteString }

// IsArray reports whether v is an array.
func IsArray(v Value) bool { return v.Kind() == KindArray }

// IsObject reports whether v is an object.
func IsObject(v Value) bool { return v.Kind() == KindObject }

// Size reports the number of elements in an array, the number of members in
// an object, or the length in bytes of a string or byte-string. It reports
// zero for every other kind.
func Size(v Value) int {
	switch t := v.(type) {
	case *Array:
		return t.Len()
	case *Object:
		return t.Len()
	case String:
		return len(t)
	case ByteString:
		return len(t)
	default:
		return 0
	}
}

// Contains reports whether v is an object containing key.
func Contains(v Value, key string) bool {
	o, ok := v.(*Object)
	if !ok {
		return false
	}
	_, found := o.At(key)
	return found
}

// At returns the value of the member named key in object v, or (nil, false)
// if v is not an object or has no such member.
func At(v Value, key string) (Value, bool) {
	o, ok := v.(*Object)
	if !ok {
		return nil, false
	}
	return o.At(key)
}

// AtIndex returns the i'th element of array v, or (nil, false) if v is not
// an array or i is out of range.
func AtIndex(v Value, i int) (Value, bool) {
	a, ok := v.(*Array)
	if !ok || i < 0 || i >= len(a.elems) {
		return nil, false
	}
	return a.elems[i], true
}

// AsStringView returns the text of v as a string, along with true, if v is
// a String; otherwise it returns ("", false).
func AsStringView(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// AsInteger returns v as an int64, along with true, if v is an Int;
// otherwise it returns (0, false).
func AsInteger(v Value) (int64, bool) {
	n, ok := v.(Int)
	return int64(n), ok
}

// AsUinteger returns v as a uint64, along with true, if v is a Uint;
// otherwise it returns (0, false).
func AsUinteger(v Value) (uint64, bool) {
	n, ok := v.(Uint)
	return uint64(n), ok
}

// AsDouble returns v as a float64, along with true, if v is numeric
// (Float, Int, or Uint, widening as needed); otherwise it returns (0, false).
func AsDouble(v Value) (float64, bool) {
	switch n := v.(type) {
	case Float:
		return float64(n), true
	case Int:
		return float64(n), true
	case Uint:
		return float64(n), true
	default:
		return 0, false
	}
}
