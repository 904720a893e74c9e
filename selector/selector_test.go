package selector_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/filterexpr"
	"github.com/creachadair/jsonkit/selector"
)

func rootNode(v dom.Value) selector.Node {
	root := v
	h := dom.NewHandle(&root)
	return selector.Node{Path: "$", Handle: h}
}

func apply(t *testing.T, sel selector.Selector, node selector.Node, root dom.Value, cons selector.PathConstructor) (selector.NodeSet, []dom.Value) {
	t.Helper()
	var sink []dom.Value
	var out selector.NodeSet
	sel.Apply(&node, node, root, cons, &sink, &out)
	return out, sink
}

// applyTop is like apply but returns the top node so callers can inspect
// scratch state (SkipContainedObject) a Filter selector left on it.
func applyTop(t *testing.T, sel selector.Selector, node selector.Node, root dom.Value, cons selector.PathConstructor) (selector.Node, selector.NodeSet) {
	t.Helper()
	var sink []dom.Value
	var out selector.NodeSet
	sel.Apply(&node, node, root, cons, &sink, &out)
	return node, out
}

func TestNameOnObject(t *testing.T) {
	o := dom.NewObject()
	o.Set("price", dom.Int(10))
	out, _ := apply(t, selector.Name{Name: "price"}, rootNode(o), o, selector.BuildPath{})
	if len(out) != 1 || out[0].Handle.Get() != dom.Int(10) {
		t.Fatalf("Apply = %+v, want single price node", out)
	}
	if out[0].Path != "$['price']" {
		t.Errorf("Path = %q, want $['price']", out[0].Path)
	}
}

func TestNameArrayIndexAndLength(t *testing.T) {
	arr := dom.NewArrayFrom(dom.Int(1), dom.Int(2), dom.Int(3), dom.Int(4))

	out, _ := apply(t, selector.Name{Name: "-1"}, rootNode(arr), arr, selector.BuildPath{})
	if len(out) != 1 || out[0].Handle.Get() != dom.Int(4) {
		t.Fatalf("Apply(-1) = %+v, want [4]", out)
	}

	out, sink := apply(t, selector.Name{Name: "length"}, rootNode(arr), arr, selector.BuildPath{})
	if len(out) != 1 {
		t.Fatalf("Apply(length) = %+v", out)
	}
	if out[0].Handle.Get() != dom.Int(4) {
		t.Errorf("length = %v, want 4", out[0].Handle.Get())
	}
	if len(sink) != 1 {
		t.Errorf("sink = %v, want one synthesized value", sink)
	}
}

func TestSlice(t *testing.T) {
	arr := dom.NewArrayFrom(dom.Int(10), dom.Int(20), dom.Int(30), dom.Int(40), dom.Int(50))

	// $.a[1:4:2] -> [20, 40]
	s := selector.Slice{Start: 1, End: 4, Step: 2, PositiveStart: true, PositiveEnd: true, PositiveStep: true}
	out, _ := apply(t, s, rootNode(arr), arr, selector.DiscardPath{})
	if diff := cmp.Diff([]dom.Value{dom.Int(20), dom.Int(40)}, out.Values()); diff != "" {
		t.Errorf("[1:4:2]: (-want, +got)\n%s", diff)
	}

	// $.a[-2:] -> [40, 50]
	s = selector.Slice{Start: 2, PositiveStart: false, UndefinedEnd: true, Step: 1, PositiveStep: true}
	out, _ = apply(t, s, rootNode(arr), arr, selector.DiscardPath{})
	if diff := cmp.Diff([]dom.Value{dom.Int(40), dom.Int(50)}, out.Values()); diff != "" {
		t.Errorf("[-2:]: (-want, +got)\n%s", diff)
	}

	// $.a[::-1] -> [50, 40, 30, 20, 10]
	s = selector.Slice{Start: 0, PositiveStart: true, UndefinedEnd: true, Step: 1, PositiveStep: false}
	out, _ = apply(t, s, rootNode(arr), arr, selector.DiscardPath{})
	if diff := cmp.Diff([]dom.Value{dom.Int(50), dom.Int(40), dom.Int(30), dom.Int(20), dom.Int(10)}, out.Values()); diff != "" {
		t.Errorf("[::-1]: (-want, +got)\n%s", diff)
	}
}

func TestFilterOnArray(t *testing.T) {
	book := func(price int) dom.Value {
		o := dom.NewObject()
		o.Set("price", dom.Int(int64(price)))
		return o
	}
	arr := dom.NewArrayFrom(book(5), book(15), book(25))
	expr, err := filterexpr.Compile("@.price < 10")
	if err != nil {
		t.Fatal(err)
	}
	top, out := applyTop(t, selector.Filter{Expr: expr}, rootNode(arr), arr, selector.DiscardPath{})
	if len(out) != 1 {
		t.Fatalf("Apply = %+v, want single match", out)
	}
	if !top.SkipContainedObject {
		t.Error("top.SkipContainedObject = false, want true after filtering an array")
	}
}

func TestFilterSkipsAlreadyMatchedObject(t *testing.T) {
	o := dom.NewObject()
	o.Set("price", dom.Int(5))
	expr, err := filterexpr.Compile("@.price < 10")
	if err != nil {
		t.Fatal(err)
	}
	node := selector.Node{Path: "$[0]", Handle: rootNode(o).Handle, SkipContainedObject: true}
	out, _ := apply(t, selector.Filter{Expr: expr}, node, o, selector.DiscardPath{})
	if len(out) != 0 {
		t.Errorf("Apply = %+v, want no matches (already matched via array)", out)
	}
}

func TestExpressionIndex(t *testing.T) {
	arr := dom.NewArrayFrom(dom.Int(100), dom.Int(200), dom.Int(300))
	expr, err := filterexpr.Compile("@.length - 1")
	if err != nil {
		t.Fatal(err)
	}
	out, _ := apply(t, selector.Expression{Expr: expr}, rootNode(arr), arr, selector.DiscardPath{})
	if len(out) != 1 || out[0].Handle.Get() != dom.Int(300) {
		t.Fatalf("Apply = %+v, want last element 300", out)
	}
}
