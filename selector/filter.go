package selector

import (
	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/filterexpr"
)

// Filter applies a FILTER predicate. Against an array, every element for
// which the predicate holds is emitted, and top's SkipContainedObject
// flag is set unconditionally — this is what stops a later
// recursive-descent re-application of this same filter from re-matching
// an object element on its own once it has already been matched here as
// part of the array. Against an object, the whole object is emitted when
// the predicate holds and top was not already flagged by a containing
// array's pass; either way the flag is consumed (cleared) so a sibling
// object reached independently is tested fresh.
type Filter struct {
	Expr *filterexpr.Expr
}

func (f Filter) Apply(top *Node, cur Node, root dom.Value, cons PathConstructor, sink *[]dom.Value, out *NodeSet) {
	v := cur.Handle.Get()
	switch t := v.(type) {
	case *dom.Array:
		top.SkipContainedObject = true
		for i, elem := range t.Elements() {
			if f.Expr.Exists(elem, root) {
				*out = append(*out, Node{Path: cons.AppendIndex(cur.Path, i), Handle: t.Handle(i)})
			}
		}

	case *dom.Object:
		if top.SkipContainedObject {
			top.SkipContainedObject = false
			return
		}
		if f.Expr.Exists(v, root) {
			*out = append(*out, Node{Path: cur.Path, Handle: cur.Handle})
		}
	}
}
