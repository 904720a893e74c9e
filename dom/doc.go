// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package dom implements a mutable, in-memory JSON value tree.
//
// A Value is one of nine concrete kinds: Null, Bool, Int, Uint, Float,
// String, ByteString, *Array, or *Object. Scalars are immutable value types;
// *Array and *Object support in-place mutation of their elements and
// members through a Handle, which is how the jpath package implements
// replace-in-place queries.
//
// Unlike a parsed syntax tree, a dom.Value carries no source location or
// span information: it is a pure data value, suitable for both JSON text
// (via Parse) and CBOR (via the cbor package's View.Dump into a
// domevent.Builder).
package dom
