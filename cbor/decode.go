package cbor

import (
	"math"

	"github.com/x448/float16"
	"go4.org/mem"
)

// majorType identifies the high 3 bits of a CBOR item's leading byte.
type majorType byte

const (
	mtUnsignedInt majorType = 0
	mtNegativeInt majorType = 1
	mtByteString  majorType = 2
	mtTextString  majorType = 3
	mtArray       majorType = 4
	mtMap         majorType = 5
	mtTag         majorType = 6
	mtSimple      majorType = 7
)

const (
	breakByte     byte = 0xff
	indefiniteAI  byte = 31
	reservedAILo  byte = 28
	reservedAIHi  byte = 30
)

// IndefiniteCount is the sentinel getSize returns for an item whose length
// was declared indefinite (additional-information nibble 0x1f).
const IndefiniteCount = ^uint64(0)

// parseHeader decodes the type/length header at the front of b: the major
// type, the raw additional-information nibble (31 signals an
// indefinite-length item), the numeric argument carried by that nibble
// (count, length, or literal value; 0 when indefinite), and the number of
// header bytes consumed. It fails if b is too short to hold the header or
// the additional-information nibble is one of the three reserved values.
func parseHeader(b mem.RO) (mt majorType, ai byte, arg uint64, headerLen int, ok bool) {
	if b.Len() < 1 {
		return 0, 0, 0, 0, false
	}
	first := b.At(0)
	mt = majorType(first >> 5)
	ai = first & 0x1f

	switch {
	case ai < 24:
		return mt, ai, uint64(ai), 1, true
	case ai == 24:
		if b.Len() < 2 {
			return 0, 0, 0, 0, false
		}
		return mt, ai, uint64(b.At(1)), 2, true
	case ai == 25:
		if b.Len() < 3 {
			return 0, 0, 0, 0, false
		}
		return mt, ai, readUint(b.SliceFrom(1), 2), 3, true
	case ai == 26:
		if b.Len() < 5 {
			return 0, 0, 0, 0, false
		}
		return mt, ai, readUint(b.SliceFrom(1), 4), 5, true
	case ai == 27:
		if b.Len() < 9 {
			return 0, 0, 0, 0, false
		}
		return mt, ai, readUint(b.SliceFrom(1), 8), 9, true
	case ai >= reservedAILo && ai <= reservedAIHi:
		return 0, 0, 0, 0, false
	default: // ai == indefiniteAI
		return mt, ai, 0, 1, true
	}
}

// readUint reads an n-byte big-endian unsigned integer from the front of
// b, one byte at a time (mem.RO exposes no bulk-copy accessor, only At).
func readUint(b mem.RO, n int) uint64 {
	var v uint64
	for i := 0; i < n; i++ {
		v = v<<8 | uint64(b.At(i))
	}
	return v
}

// getSize interprets a major-type-0/2/3/4/5 header, returning the
// collection count (element count for array/map, byte length for
// byte-string/text-string, or the literal value for an unsigned integer)
// and the byte range following the header. count is IndefiniteCount if the
// item's length was declared indefinite.
func getSize(b mem.RO) (count uint64, payload mem.RO, ok bool) {
	mt, ai, arg, headerLen, ok := parseHeader(b)
	if !ok {
		return 0, mem.RO{}, false
	}
	switch mt {
	case mtUnsignedInt, mtByteString, mtTextString, mtArray, mtMap:
		if ai == indefiniteAI {
			return IndefiniteCount, b.SliceFrom(headerLen), true
		}
		return arg, b.SliceFrom(headerLen), true
	default:
		return 0, mem.RO{}, false
	}
}

// walk advances past exactly one complete CBOR item at the front of b,
// recursing into composites, and returns the remaining bytes. It fails
// (returning b unchanged) if b does not begin with a well-formed item, or
// begins with a lone break byte (0xff), which is only meaningful as the
// terminator of an indefinite-length composite, not as an item itself.
func walk(b mem.RO) (rest mem.RO, ok bool) {
	mt, ai, arg, headerLen, ok := parseHeader(b)
	if !ok {
		return b, false
	}
	indef := ai == indefiniteAI

	switch mt {
	case mtUnsignedInt, mtNegativeInt:
		if indef {
			return b, false
		}
		return b.SliceFrom(headerLen), true

	case mtByteString, mtTextString:
		return walkStringLike(b, mt, ai, arg, headerLen)

	case mtArray:
		return walkArray(b)

	case mtMap:
		return walkObject(b)

	case mtTag:
		if indef {
			return b, false
		}
		return walk(b.SliceFrom(headerLen))

	case mtSimple:
		if indef {
			return b, false // a bare break is not an item
		}
		return b.SliceFrom(headerLen), true

	default:
		return b, false
	}
}

// walkStringLike advances past one byte-string or text-string item,
// including the indefinite-length form (a stream of definite-length
// chunks of the same major type, terminated by a break).
func walkStringLike(b mem.RO, mt majorType, ai byte, arg uint64, headerLen int) (mem.RO, bool) {
	if ai != indefiniteAI {
		payload := b.SliceFrom(headerLen)
		if uint64(payload.Len()) < arg {
			return b, false
		}
		return payload.SliceFrom(int(arg)), true
	}
	rest := b.SliceFrom(headerLen)
	for {
		if rest.Len() == 0 {
			return b, false
		}
		if rest.At(0) == breakByte {
			return rest.SliceFrom(1), true
		}
		cmt, cai, carg, chdr, ok := parseHeader(rest)
		if !ok || cmt != mt || cai == indefiniteAI {
			return b, false
		}
		payload := rest.SliceFrom(chdr)
		if uint64(payload.Len()) < carg {
			return b, false
		}
		rest = payload.SliceFrom(int(carg))
	}
}

// walkArray advances past exactly one array item, definite or indefinite
// length, recursively walking each element.
func walkArray(b mem.RO) (rest mem.RO, ok bool) {
	mt, ai, arg, headerLen, ok := parseHeader(b)
	if !ok || mt != mtArray {
		return b, false
	}
	rest = b.SliceFrom(headerLen)
	if ai == indefiniteAI {
		for {
			if rest.Len() == 0 {
				return b, false
			}
			if rest.At(0) == breakByte {
				return rest.SliceFrom(1), true
			}
			next, ok := walk(rest)
			if !ok || next.Len() == rest.Len() {
				return b, false
			}
			rest = next
		}
	}
	for i := uint64(0); i < arg; i++ {
		next, ok := walk(rest)
		if !ok {
			return b, false
		}
		rest = next
	}
	return rest, true
}

// walkObject advances past exactly one map item, definite or indefinite
// length, recursively walking each key and value.
func walkObject(b mem.RO) (rest mem.RO, ok bool) {
	mt, ai, arg, headerLen, ok := parseHeader(b)
	if !ok || mt != mtMap {
		return b, false
	}
	rest = b.SliceFrom(headerLen)
	if ai == indefiniteAI {
		for {
			if rest.Len() == 0 {
				return b, false
			}
			if rest.At(0) == breakByte {
				return rest.SliceFrom(1), true
			}
			next, ok := walk(rest) // key
			if !ok {
				return b, false
			}
			next, ok = walk(next) // value
			if !ok {
				return b, false
			}
			rest = next
		}
	}
	for i := uint64(0); i < arg; i++ {
		next, ok := walk(rest) // key
		if !ok {
			return b, false
		}
		next, ok = walk(next) // value
		if !ok {
			return b, false
		}
		rest = next
	}
	return rest, true
}

// getUinteger decodes the leading item as an unsigned integer.
func getUinteger(b mem.RO) (uint64, mem.RO, bool) {
	mt, ai, arg, headerLen, ok := parseHeader(b)
	if !ok || ai == indefiniteAI || mt != mtUnsignedInt {
		return 0, b, false
	}
	return arg, b.SliceFrom(headerLen), true
}

// getInteger decodes the leading item as a signed integer, accepting
// either an unsigned-integer or a negative-integer major type.
func getInteger(b mem.RO) (int64, mem.RO, bool) {
	mt, ai, arg, headerLen, ok := parseHeader(b)
	if !ok || ai == indefiniteAI {
		return 0, b, false
	}
	switch mt {
	case mtUnsignedInt:
		if arg > math.MaxInt64 {
			return 0, b, false
		}
		return int64(arg), b.SliceFrom(headerLen), true
	case mtNegativeInt:
		if arg > math.MaxInt64 {
			return 0, b, false
		}
		return -1 - int64(arg), b.SliceFrom(headerLen), true
	default:
		return 0, b, false
	}
}

// getDouble decodes the leading item as a floating-point value. It also
// accepts integer and unsigned-integer forms, widening them, matching the
// CBOR view's as_double behavior.
func getDouble(b mem.RO) (float64, mem.RO, bool) {
	mt, ai, arg, headerLen, ok := parseHeader(b)
	if !ok || ai == indefiniteAI {
		return 0, b, false
	}
	switch mt {
	case mtUnsignedInt:
		return float64(arg), b.SliceFrom(headerLen), true
	case mtNegativeInt:
		return float64(-1 - int64(arg)), b.SliceFrom(headerLen), true
	case mtSimple:
		switch ai {
		case 25:
			return float64(float16.Frombits(uint16(arg)).Float32()), b.SliceFrom(headerLen), true
		case 26:
			return float64(math.Float32frombits(uint32(arg))), b.SliceFrom(headerLen), true
		case 27:
			return math.Float64frombits(arg), b.SliceFrom(headerLen), true
		default:
			return 0, b, false
		}
	default:
		return 0, b, false
	}
}

// getTextString decodes the leading item as a text string, concatenating
// chunks if it is indefinite-length.
func getTextString(b mem.RO) (string, mem.RO, bool) {
	mt, ai, arg, headerLen, ok := parseHeader(b)
	if !ok || mt != mtTextString {
		return "", b, false
	}
	if ai != indefiniteAI {
		payload := b.SliceFrom(headerLen)
		if uint64(payload.Len()) < arg {
			return "", b, false
		}
		return string(mem.Append(nil, payload.SliceTo(int(arg)))), payload.SliceFrom(int(arg)), true
	}
	var buf []byte
	rest := b.SliceFrom(headerLen)
	for {
		if rest.Len() == 0 {
			return "", b, false
		}
		if rest.At(0) == breakByte {
			return string(buf), rest.SliceFrom(1), true
		}
		cmt, cai, carg, chdr, ok := parseHeader(rest)
		if !ok || cmt != mtTextString || cai == indefiniteAI {
			return "", b, false
		}
		chunk := rest.SliceFrom(chdr)
		if uint64(chunk.Len()) < carg {
			return "", b, false
		}
		buf = mem.Append(buf, chunk.SliceTo(int(carg)))
		rest = chunk.SliceFrom(int(carg))
	}
}

// getByteString decodes the leading item as a byte string, concatenating
// chunks if it is indefinite-length.
func getByteString(b mem.RO) ([]byte, mem.RO, bool) {
	mt, ai, arg, headerLen, ok := parseHeader(b)
	if !ok || mt != mtByteString {
		return nil, b, false
	}
	if ai != indefiniteAI {
		payload := b.SliceFrom(headerLen)
		if uint64(payload.Len()) < arg {
			return nil, b, false
		}
		return mem.Append(nil, payload.SliceTo(int(arg))), payload.SliceFrom(int(arg)), true
	}
	var buf []byte
	rest := b.SliceFrom(headerLen)
	for {
		if rest.Len() == 0 {
			return nil, b, false
		}
		if rest.At(0) == breakByte {
			return buf, rest.SliceFrom(1), true
		}
		cmt, cai, carg, chdr, ok := parseHeader(rest)
		if !ok || cmt != mtByteString || cai == indefiniteAI {
			return nil, b, false
		}
		chunk := rest.SliceFrom(chdr)
		if uint64(chunk.Len()) < carg {
			return nil, b, false
		}
		buf = mem.Append(buf, chunk.SliceTo(int(carg)))
		rest = chunk.SliceFrom(int(carg))
	}
}
