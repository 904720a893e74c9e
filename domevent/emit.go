package domevent

import "github.com/creachadair/jsonkit/dom"

// Emit walks v depth-first and reports it as a sequence of events on h,
// the dom.Value counterpart of cbor.View.Dump.
func Emit(v dom.Value, h Handler) error {
	h.BeginDocument()
	if err := emit(v, h); err != nil {
		return err
	}
	h.EndDocument()
	return nil
}

func emit(v dom.Value, h Handler) error {
	switch t := v.(type) {
	case *dom.Array:
		if err := h.BeginArray(t.Len()); err != nil {
			return err
		}
		for _, elem := range t.Elements() {
			if err := emit(elem, h); err != nil {
				return err
			}
		}
		return h.EndArray()

	case *dom.Object:
		if err := h.BeginObject(t.Len()); err != nil {
			return err
		}
		for _, m := range t.Members() {
			if err := h.Name(m.Key); err != nil {
				return err
			}
			if err := emit(m.Value, h); err != nil {
				return err
			}
		}
		return h.EndObject()

	case dom.String:
		return h.String(string(t))
	case dom.ByteString:
		return h.ByteString([]byte(t))
	case dom.Int:
		return h.Integer(int64(t))
	case dom.Uint:
		return h.Uinteger(uint64(t))
	case dom.Float:
		return h.Double(float64(t))
	case dom.Bool:
		return h.Bool(bool(t))
	case dom.Null:
		return h.Null()
	default:
		return h.Null()
	}
}
