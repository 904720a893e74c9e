package selector

import (
	"math"

	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/filterexpr"
)

// Expression evaluates a FILTER script against the current node and
// dispatches on the shape of the result: an integer result indexes into
// an array node, a string result delegates to a Name selector.
type Expression struct {
	Expr *filterexpr.Expr
}

func (e Expression) Apply(top *Node, cur Node, root dom.Value, cons PathConstructor, sink *[]dom.Value, out *NodeSet) {
	v := cur.Handle.Get()
	result, ok := e.Expr.Eval(v, root)
	if !ok {
		return
	}
	if idx, ok := asIndex(result); ok {
		if arr, ok := v.(*dom.Array); ok && idx >= 0 && idx < arr.Len() {
			*out = append(*out, Node{Path: cons.AppendIndex(cur.Path, idx), Handle: arr.Handle(idx)})
		}
		return
	}
	if s, ok := result.(dom.String); ok {
		Name{Name: string(s), PositiveStart: true}.Apply(top, cur, root, cons, sink, out)
	}
}

// asIndex reports whether result denotes a non-negative array index,
// accepting an unsigned integer, a non-negative signed integer, or an
// integral non-negative float (arithmetic in this package always widens
// to float64, per spec.md §4.5's double-conversion capability).
func asIndex(result dom.Value) (int, bool) {
	switch t := result.(type) {
	case dom.Uint:
		return int(t), true
	case dom.Int:
		if t >= 0 {
			return int(t), true
		}
	case dom.Float:
		f := float64(t)
		if f >= 0 && f == math.Trunc(f) {
			return int(f), true
		}
	}
	return 0, false
}
