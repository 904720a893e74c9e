package filterexpr

import (
	"regexp"
	"strings"

	"github.com/creachadair/jsonkit/dom"
)

// Eval evaluates e against the current node cur and the query root,
// returning the resulting value. It reports ok=false if the expression
// fails to resolve (an unmatched path step, a non-numeric operand to
// arithmetic, and so on).
func (e *Expr) Eval(cur, root dom.Value) (dom.Value, bool) {
	return e.root.eval(cur, root)
}

// Exists reports whether e holds against cur and root. A bare relative
// path (`@` or `@.name...`) exists if it resolves to a value; any other
// expression exists if it evaluates to a value and, when that value is a
// boolean, the boolean is true.
func (e *Expr) Exists(cur, root dom.Value) bool {
	v, ok := e.root.eval(cur, root)
	if !ok {
		return false
	}
	if _, isPath := e.root.(*pathNode); isPath {
		return true
	}
	if b, isBool := v.(dom.Bool); isBool {
		return bool(b)
	}
	return true
}

// pathStep is one segment of a relative path following `@`.
type pathStep struct {
	name     string
	isLength bool
	hasIndex bool
	index    int
}

// pathNode evaluates a relative path rooted at the current node. A
// pathNode with no steps denotes `@` itself.
type pathNode struct {
	steps []pathStep
}

func (n *pathNode) eval(cur, root dom.Value) (dom.Value, bool) {
	v := cur
	for _, s := range n.steps {
		switch {
		case s.isLength:
			switch t := v.(type) {
			case *dom.Array:
				v = dom.Int(t.Len())
			case dom.String:
				v = dom.Int(len([]rune(string(t))))
			default:
				return nil, false
			}
		case s.hasIndex:
			a, ok := v.(*dom.Array)
			if !ok {
				return nil, false
			}
			idx := s.index
			if idx < 0 {
				idx += a.Len()
			}
			child, ok := a.At(idx)
			if !ok {
				return nil, false
			}
			v = child
		default:
			o, ok := v.(*dom.Object)
			if !ok {
				return nil, false
			}
			child, ok := o.At(s.name)
			if !ok {
				return nil, false
			}
			v = child
		}
	}
	return v, true
}

// literalNode is a constant number or string.
type literalNode struct {
	value dom.Value
}

func (n *literalNode) eval(cur, root dom.Value) (dom.Value, bool) { return n.value, true }

// negNode negates a numeric operand.
type negNode struct {
	operand node
}

func (n *negNode) eval(cur, root dom.Value) (dom.Value, bool) {
	v, ok := n.operand.eval(cur, root)
	if !ok {
		return nil, false
	}
	f, ok := dom.AsDouble(v)
	if !ok {
		return nil, false
	}
	return dom.Float(-f), true
}

// arithNode applies +, -, *, or / to two numeric operands.
type arithNode struct {
	op          byte
	left, right node
}

func (n *arithNode) eval(cur, root dom.Value) (dom.Value, bool) {
	lv, ok := n.left.eval(cur, root)
	if !ok {
		return nil, false
	}
	rv, ok := n.right.eval(cur, root)
	if !ok {
		return nil, false
	}
	l, ok := dom.AsDouble(lv)
	if !ok {
		return nil, false
	}
	r, ok := dom.AsDouble(rv)
	if !ok {
		return nil, false
	}
	switch n.op {
	case '+':
		return dom.Float(l + r), true
	case '-':
		return dom.Float(l - r), true
	case '*':
		return dom.Float(l * r), true
	case '/':
		if r == 0 {
			return nil, false
		}
		return dom.Float(l / r), true
	default:
		return nil, false
	}
}

// logicalNode implements short-circuiting && and ||.
type logicalNode struct {
	op          string
	left, right node
}

func (n *logicalNode) eval(cur, root dom.Value) (dom.Value, bool) {
	lv, ok := n.left.eval(cur, root)
	lb := ok && truthy(lv)
	if n.op == "&&" && !lb {
		return dom.Bool(false), true
	}
	if n.op == "||" && lb {
		return dom.Bool(true), true
	}
	rv, ok := n.right.eval(cur, root)
	if !ok {
		return dom.Bool(false), true
	}
	return dom.Bool(truthy(rv)), true
}

func truthy(v dom.Value) bool {
	switch t := v.(type) {
	case dom.Bool:
		return bool(t)
	default:
		return v != nil
	}
}

// compareNode applies a comparison or regex-match operator to two operands.
type compareNode struct {
	op          string
	left, right node
}

func (n *compareNode) eval(cur, root dom.Value) (dom.Value, bool) {
	lv, lok := n.left.eval(cur, root)
	rv, rok := n.right.eval(cur, root)

	switch n.op {
	case "=~", "!~":
		if !lok || !rok {
			return dom.Bool(false), true
		}
		ls, ok1 := dom.AsStringView(lv)
		rs, ok2 := dom.AsStringView(rv)
		if !ok1 || !ok2 {
			return dom.Bool(false), true
		}
		re, err := regexp.Compile(rs)
		if err != nil {
			return nil, false
		}
		m := re.MatchString(ls)
		return dom.Bool(m == (n.op == "=~")), true
	}

	if !lok || !rok {
		// A missing operand only satisfies inequality comparisons that are
		// themselves testing for absence; jsoncons treats this as no match.
		return dom.Bool(n.op == "!="), true
	}

	if lf, ok1 := dom.AsDouble(lv); ok1 {
		if rf, ok2 := dom.AsDouble(rv); ok2 {
			return dom.Bool(compareNumeric(n.op, lf, rf)), true
		}
	}
	if ls, ok1 := dom.AsStringView(lv); ok1 {
		if rs, ok2 := dom.AsStringView(rv); ok2 {
			return dom.Bool(compareString(n.op, ls, rs)), true
		}
	}
	if lb, ok1 := lv.(dom.Bool); ok1 {
		if rb, ok2 := rv.(dom.Bool); ok2 {
			switch n.op {
			case "==":
				return dom.Bool(lb == rb), true
			case "!=":
				return dom.Bool(lb != rb), true
			}
		}
	}
	return dom.Bool(false), true
}

func compareNumeric(op string, l, r float64) bool {
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	default:
		return false
	}
}

func compareString(op, l, r string) bool {
	switch op {
	case "==":
		return l == r
	case "!=":
		return l != r
	case "<":
		return strings.Compare(l, r) < 0
	case "<=":
		return strings.Compare(l, r) <= 0
	case ">":
		return strings.Compare(l, r) > 0
	case ">=":
		return strings.Compare(l, r) >= 0
	default:
		return false
	}
}
