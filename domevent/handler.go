// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package domevent defines a streaming DOM-event sink and two concrete
// implementations, styled on the jsonkit.Handler contract used to drive
// text parsing: paired Begin/End methods, one method per scalar kind, and
// error propagation that aborts the walk.
//
// Handler is the destination cbor.View.Dump writes into. It is also a
// convenient target for anything else that wants to stream a DOM-shaped
// structure without materializing an intermediate tree.
package domevent

// A Handler receives events describing the structure of a DOM-shaped value,
// in depth-first document order. If a method reports an error, the walk
// that is driving the handler stops and returns that error.
type Handler interface {
	// BeginDocument marks the start of a top-level value.
	BeginDocument()

	// EndDocument marks the end of a top-level value.
	EndDocument()

	// BeginArray marks the start of an array of n elements. n is -1 if the
	// element count is not known in advance.
	BeginArray(n int) error

	// EndArray marks the end of the most recently opened array.
	EndArray() error

	// BeginObject marks the start of an object of n members. n is -1 if the
	// member count is not known in advance.
	BeginObject(n int) error

	// EndObject marks the end of the most recently opened object.
	EndObject() error

	// Name reports the key of the next object member.
	Name(key string) error

	// String reports a text-string scalar value.
	String(s string) error

	// ByteString reports a byte-string scalar value.
	ByteString(b []byte) error

	// Integer reports a signed-integer scalar value.
	Integer(v int64) error

	// Uinteger reports an unsigned-integer scalar value.
	Uinteger(v uint64) error

	// Double reports a floating-point scalar value.
	Double(v float64) error

	// Bool reports a boolean scalar value.
	Bool(v bool) error

	// Null reports a null scalar value.
	Null() error

	// Bignum reports a CBOR semantic-tag 2 or 3 bignum: sign is +1 for tag
	// 2 (unsigned) or -1 for tag 3 (negative), and magnitude is the wrapped
	// byte-string's contents, big-endian.
	Bignum(sign int, magnitude []byte) error
}
