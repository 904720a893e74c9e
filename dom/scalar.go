package dom

// Null is the JSON null value. Its zero value is ready to use.
type Null struct{}

func (Null) Kind() Kind { return KindNull }
func (Null) domValue()  {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (Bool) domValue()  {}

// Int is a signed integer, used for JSON numbers that parsed without a
// fraction or exponent and fit in an int64.
type Int int64

func (Int) Kind() Kind { return KindInt }
func (Int) domValue()  {}

// Uint is an unsigned integer. Building a DOM from CBOR produces these for
// unsigned-integer items; JSON text parsing always produces Int (or Float,
// for values that overflow int64), and synthesized lengths are Int.
type Uint uint64

func (Uint) Kind() Kind { return KindUint }
func (Uint) domValue()  {}

// Float is a floating-point number.
type Float float64

func (Float) Kind() Kind { return KindFloat }
func (Float) domValue()  {}

// String is a JSON text string, stored decoded (no surrounding quotes, no
// escape sequences).
type String string

func (String) Kind() Kind { return KindString }
func (String) domValue()  {}

// ByteString is an uninterpreted byte sequence, the DOM counterpart of a
// CBOR major-type-2 item. JSON text has no byte-string literal; this
// variant exists so cbor.View.Dump has somewhere to put one.
type ByteString []byte

func (ByteString) Kind() Kind { return KindByteString }
func (ByteString) domValue()  {}

// NewString returns a new String value.
func NewString(s string) Value { return String(s) }

// NewByteString returns a new ByteString value.
func NewByteString(b []byte) Value { return ByteString(b) }

// NewInt returns a new signed-integer value.
func NewInt(n int64) Value { return Int(n) }

// NewUint returns a new unsigned-integer value.
func NewUint(n uint64) Value { return Uint(n) }

// NewFloat returns a new floating-point value.
func NewFloat(f float64) Value { return Float(f) }

// NewBool returns a new boolean value.
func NewBool(b bool) Value { return Bool(b) }

// NewNull returns the null value.
func NewNull() Value { return Null{} }
