// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package cbor implements a non-owning, zero-copy view over a byte buffer
// holding a well-formed CBOR (RFC 8949) document, plus the low-level
// primitive decoders it is built from.
//
// A View never allocates or copies the buffer it was constructed over; it
// carries only the two bounds of the byte range it currently denotes,
// exactly as the source cbor_view does with its (first, last) pointer
// pair. Descent methods (At, AtKey, the iterators) return further Views
// that borrow the same underlying storage.
//
// The decode direction here is hand-rolled against go4.org/mem's
// zero-copy byte spans rather than delegating to a third-party CBOR
// library, since a non-owning view is the whole point of this package.
// The encode direction has no such constraint; Marshal uses the real
// ecosystem encoder from github.com/fxamacker/cbor/v2.
package cbor
