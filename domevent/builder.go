package domevent

import (
	"math/big"

	"github.com/creachadair/jsonkit/dom"
)

// Builder is a Handler that materializes the events it receives into a
// dom.Value tree. This is the bridge cbor.View.Dump uses to turn a CBOR
// document into a dom.Value, and it can equally well be driven by any other
// Handler-shaped producer.
//
// The zero Builder is ready to use. After a complete BeginDocument/
// EndDocument pair, call Value to retrieve the result.
type Builder struct {
	stack []cnode
	key   string
	root  dom.Value
}

type cnode struct {
	obj *dom.Object
	arr *dom.Array
}

// Value returns the tree built by the most recently completed document.
func (b *Builder) Value() dom.Value { return b.root }

func (b *Builder) BeginDocument() {}
func (b *Builder) EndDocument()   {}

func (b *Builder) push(c cnode) { b.stack = append(b.stack, c) }

func (b *Builder) pop() cnode {
	n := len(b.stack) - 1
	c := b.stack[n]
	b.stack = b.stack[:n]
	return c
}

func (b *Builder) addValue(v dom.Value) {
	if len(b.stack) == 0 {
		b.root = v
		return
	}
	top := &b.stack[len(b.stack)-1]
	if top.obj != nil {
		top.obj.Set(b.key, v)
	} else {
		top.arr.Append(v)
	}
}

func (b *Builder) BeginArray(n int) error {
	b.push(cnode{arr: dom.NewArray()})
	return nil
}

func (b *Builder) EndArray() error {
	b.addValue(b.pop().arr)
	return nil
}

func (b *Builder) BeginObject(n int) error {
	b.push(cnode{obj: dom.NewObject()})
	return nil
}

func (b *Builder) EndObject() error {
	b.addValue(b.pop().obj)
	return nil
}

func (b *Builder) Name(key string) error {
	b.key = key
	return nil
}

func (b *Builder) String(s string) error     { b.addValue(dom.String(s)); return nil }
func (b *Builder) ByteString(v []byte) error { b.addValue(dom.ByteString(v)); return nil }
func (b *Builder) Integer(v int64) error     { b.addValue(dom.Int(v)); return nil }
func (b *Builder) Uinteger(v uint64) error   { b.addValue(dom.Uint(v)); return nil }
func (b *Builder) Double(v float64) error    { b.addValue(dom.Float(v)); return nil }
func (b *Builder) Bool(v bool) error         { b.addValue(dom.Bool(v)); return nil }
func (b *Builder) Null() error               { b.addValue(dom.Null{}); return nil }

// Bignum materializes a CBOR bignum as an Int or Uint when it fits, or
// otherwise as a decimal-text String, matching the common convention of
// representing an arbitrary-precision integer as text once it exceeds the
// native machine widths.
func (b *Builder) Bignum(sign int, magnitude []byte) error {
	n := new(big.Int).SetBytes(magnitude)
	if sign < 0 {
		n.Neg(n)
	}
	if n.IsInt64() {
		b.addValue(dom.Int(n.Int64()))
	} else if sign >= 0 && n.IsUint64() {
		b.addValue(dom.Uint(n.Uint64()))
	} else {
		b.addValue(dom.String(n.String()))
	}
	return nil
}
