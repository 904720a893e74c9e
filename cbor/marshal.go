package cbor

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/creachadair/jsonkit/dom"
)

// Marshal encodes v as a CBOR document. Scalar leaves (integers, floats,
// strings, byte strings, booleans, null) are encoded with the real
// ecosystem encoder, github.com/fxamacker/cbor/v2. Arrays and objects are
// assembled by hand, appending each already-encoded child in place, because
// fxamacker's Go-value marshaler has no notion of an insertion-ordered map
// and would otherwise canonicalize (sort) an Object's member order.
func Marshal(v dom.Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v dom.Value) error {
	switch t := v.(type) {
	case dom.Null:
		return encodeLeaf(buf, nil)
	case dom.Bool:
		return encodeLeaf(buf, bool(t))
	case dom.Int:
		return encodeLeaf(buf, int64(t))
	case dom.Uint:
		return encodeLeaf(buf, uint64(t))
	case dom.Float:
		return encodeLeaf(buf, float64(t))
	case dom.String:
		return encodeLeaf(buf, string(t))
	case dom.ByteString:
		return encodeLeaf(buf, []byte(t))
	case *dom.Array:
		appendHeader(buf, mtArray, uint64(t.Len()))
		for _, elem := range t.Elements() {
			if err := encodeValue(buf, elem); err != nil {
				return err
			}
		}
		return nil
	case *dom.Object:
		members := t.Members()
		appendHeader(buf, mtMap, uint64(len(members)))
		for _, m := range members {
			if err := encodeLeaf(buf, m.Key); err != nil {
				return err
			}
			if err := encodeValue(buf, m.Value); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("cbor: marshal: unsupported value type %T", v)
	}
}

func encodeLeaf(buf *bytes.Buffer, v any) error {
	raw, err := cbor.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

// appendHeader writes a CBOR type/length header for major type mt carrying
// argument n, choosing the shortest additional-information encoding as
// RFC 8949 §3 prescribes.
func appendHeader(buf *bytes.Buffer, mt majorType, n uint64) {
	b0 := byte(mt) << 5
	switch {
	case n < 24:
		buf.WriteByte(b0 | byte(n))
	case n <= 0xff:
		buf.WriteByte(b0 | 24)
		buf.WriteByte(byte(n))
	case n <= 0xffff:
		buf.WriteByte(b0 | 25)
		var tmp [2]byte
		binary.BigEndian.PutUint16(tmp[:], uint16(n))
		buf.Write(tmp[:])
	case n <= 0xffffffff:
		buf.WriteByte(b0 | 26)
		var tmp [4]byte
		binary.BigEndian.PutUint32(tmp[:], uint32(n))
		buf.Write(tmp[:])
	default:
		buf.WriteByte(b0 | 27)
		var tmp [8]byte
		binary.BigEndian.PutUint64(tmp[:], n)
		buf.Write(tmp[:])
	}
}
