package selector

import (
	"unicode/utf8"

	"github.com/creachadair/jsonkit/dom"

	"github.com/creachadair/jsonkit/internal/pathindex"
)

// Name selects a named object member, an indexed array element (name
// parsed as an index), the synthesized length of an array or string
// named "length", or a single code point of a string (name parsed as a
// code-point index).
type Name struct {
	Name          string
	PositiveStart bool
}

func (n Name) Apply(top *Node, cur Node, root dom.Value, cons PathConstructor, sink *[]dom.Value, out *NodeSet) {
	v := cur.Handle.Get()
	switch t := v.(type) {
	case *dom.Object:
		if h, ok := t.Handle(n.Name); ok {
			*out = append(*out, Node{Path: cons.AppendName(cur.Path, n.Name), Handle: h})
		}

	case *dom.Array:
		if n.Name == "length" && t.Len() > 0 {
			h := appendSink(sink, dom.Int(t.Len()))
			*out = append(*out, Node{Path: cons.AppendName(cur.Path, n.Name), Handle: h})
			return
		}
		if mag, positive, ok := pathindex.Parse(n.Name); ok {
			if idx, ok := pathindex.Resolve(mag, positive, t.Len()); ok {
				*out = append(*out, Node{Path: cons.AppendIndex(cur.Path, idx), Handle: t.Handle(idx)})
			}
		}

	case dom.String:
		runes := []rune(string(t))
		if n.Name == "length" && len(runes) > 0 {
			h := appendSink(sink, dom.Int(len(runes)))
			*out = append(*out, Node{Path: cons.AppendName(cur.Path, n.Name), Handle: h})
			return
		}
		if mag, positive, ok := pathindex.Parse(n.Name); ok {
			if idx, ok := pathindex.Resolve(mag, positive, len(runes)); ok {
				var buf [utf8.UTFMax]byte
				w := utf8.EncodeRune(buf[:], runes[idx])
				h := appendSink(sink, dom.String(buf[:w]))
				*out = append(*out, Node{Path: cons.AppendIndex(cur.Path, idx), Handle: h})
			}
		}
	}
}
