package jpath_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/jpath"
)

var cmpOpts = cmp.AllowUnexported(dom.Array{}, dom.Object{})

func book(price int64) dom.Value {
	o := dom.NewObject()
	o.Set("price", dom.Int(price))
	return o
}

func storeRoot() dom.Value {
	o := dom.NewObject()
	o.Set("store", func() dom.Value {
		s := dom.NewObject()
		s.Set("book", dom.NewArrayFrom(book(5), book(10), book(20)))
		return s
	}())
	return o
}

func TestQueryWildcardAndPaths(t *testing.T) {
	root := storeRoot()

	values, err := jpath.Query(root, "$.store.book[*].price")
	if err != nil {
		t.Fatal(err)
	}
	want := []dom.Value{dom.Int(5), dom.Int(10), dom.Int(20)}
	if diff := cmp.Diff(want, values, cmpOpts); diff != "" {
		t.Errorf("values: (-want, +got)\n%s", diff)
	}

	paths, err := jpath.QueryPaths(root, "$.store.book[*].price")
	if err != nil {
		t.Fatal(err)
	}
	wantPaths := []string{
		"$['store']['book'][0]['price']",
		"$['store']['book'][1]['price']",
		"$['store']['book'][2]['price']",
	}
	if diff := cmp.Diff(wantPaths, paths); diff != "" {
		t.Errorf("paths: (-want, +got)\n%s", diff)
	}
}

func TestQueryRecursiveDescent(t *testing.T) {
	root := storeRoot()
	values, err := jpath.Query(root, "$..price")
	if err != nil {
		t.Fatal(err)
	}
	want := []dom.Value{dom.Int(5), dom.Int(10), dom.Int(20)}
	if diff := cmp.Diff(want, values, cmpOpts); diff != "" {
		t.Errorf("values: (-want, +got)\n%s", diff)
	}
}

func TestQuerySlices(t *testing.T) {
	root := dom.NewObject()
	root.Set("a", dom.NewArrayFrom(dom.Int(10), dom.Int(20), dom.Int(30), dom.Int(40), dom.Int(50)))

	cases := []struct {
		path string
		want []dom.Value
	}{
		{"$.a[1:4:2]", []dom.Value{dom.Int(20), dom.Int(40)}},
		{"$.a[-2:]", []dom.Value{dom.Int(40), dom.Int(50)}},
		{"$.a[::-1]", []dom.Value{dom.Int(50), dom.Int(40), dom.Int(30), dom.Int(20), dom.Int(10)}},
	}
	for _, c := range cases {
		got, err := jpath.Query(root, c.path)
		if err != nil {
			t.Fatalf("%s: %v", c.path, err)
		}
		if diff := cmp.Diff(c.want, got, cmpOpts); diff != "" {
			t.Errorf("%s: (-want, +got)\n%s", c.path, diff)
		}
	}
}

func TestQueryLengthAndNegativeIndex(t *testing.T) {
	root := dom.NewObject()
	root.Set("a", dom.NewArrayFrom(dom.Int(1), dom.Int(2), dom.Int(3), dom.Int(4)))

	got, err := jpath.Query(root, "$.a.length")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dom.Value{dom.Int(4)}, got, cmpOpts); diff != "" {
		t.Errorf("length: (-want, +got)\n%s", diff)
	}

	got, err = jpath.Query(root, "$.a[-1]")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dom.Value{dom.Int(4)}, got, cmpOpts); diff != "" {
		t.Errorf("[-1]: (-want, +got)\n%s", diff)
	}
}

func TestQueryFunctions(t *testing.T) {
	root := dom.NewObject()
	root.Set("xs", dom.NewArrayFrom(dom.Int(1), dom.Int(2), dom.Int(3), dom.Int(4), dom.Int(5)))

	got, err := jpath.Query(root, "max($.xs[*])")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dom.Value{dom.Float(5)}, got, cmpOpts); diff != "" {
		t.Errorf("max: (-want, +got)\n%s", diff)
	}

	got, err = jpath.Query(root, "avg($.xs[*])")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dom.Value{dom.Float(3)}, got, cmpOpts); diff != "" {
		t.Errorf("avg: (-want, +got)\n%s", diff)
	}

	got, err = jpath.Query(root, "count($..*)")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("count: got %d values, want 1", len(got))
	}
}

func TestQueryFilter(t *testing.T) {
	root := storeRoot()
	got, err := jpath.Query(root, "$.store.book[?(@.price > 8)].price")
	if err != nil {
		t.Fatal(err)
	}
	want := []dom.Value{dom.Int(10), dom.Int(20)}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("filter: (-want, +got)\n%s", diff)
	}
}

func TestQueryExpression(t *testing.T) {
	root := dom.NewObject()
	root.Set("a", dom.NewArrayFrom(dom.Int(100), dom.Int(200), dom.Int(300)))

	got, err := jpath.Query(root, "$.a[(@.length-1)]")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]dom.Value{dom.Int(300)}, got, cmpOpts); diff != "" {
		t.Errorf("expression: (-want, +got)\n%s", diff)
	}
}

func TestValuesAndPathsSameLength(t *testing.T) {
	root := storeRoot()
	values, err := jpath.Query(root, "$.store.book[*].price")
	if err != nil {
		t.Fatal(err)
	}
	paths, err := jpath.QueryPaths(root, "$.store.book[*].price")
	if err != nil {
		t.Fatal(err)
	}
	if len(values) != len(paths) {
		t.Fatalf("len(values)=%d, len(paths)=%d", len(values), len(paths))
	}
}

func TestPathsRoundTrip(t *testing.T) {
	root := storeRoot()
	paths, err := jpath.QueryPaths(root, "$.store.book[*].price")
	if err != nil {
		t.Fatal(err)
	}
	values, err := jpath.Query(root, "$.store.book[*].price")
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range paths {
		single, err := jpath.Query(root, p)
		if err != nil {
			t.Fatalf("re-query %q: %v", p, err)
		}
		if diff := cmp.Diff([]dom.Value{values[i]}, single, cmpOpts); diff != "" {
			t.Errorf("re-query %q: (-want, +got)\n%s", p, diff)
		}
	}
}

func TestReplaceThenRequery(t *testing.T) {
	root := storeRoot()
	h := dom.NewHandle(&root)
	if err := jpath.Replace(h, "$.store.book[*].price", dom.Int(0)); err != nil {
		t.Fatal(err)
	}
	got, err := jpath.Query(root, "$.store.book[*].price")
	if err != nil {
		t.Fatal(err)
	}
	want := []dom.Value{dom.Int(0), dom.Int(0), dom.Int(0)}
	if diff := cmp.Diff(want, got, cmpOpts); diff != "" {
		t.Errorf("after replace: (-want, +got)\n%s", diff)
	}
}

func TestExpectedRootError(t *testing.T) {
	_, err := jpath.Query(dom.Null{}, ".store")
	if err == nil {
		t.Fatal("want error for path starting with '.' instead of '$'")
	}
	se, ok := err.(*jpath.SyntaxError)
	if !ok {
		t.Fatalf("err = %T, want *jpath.SyntaxError", err)
	}
	if se.Code != jpath.ErrExpectedRoot {
		t.Errorf("Code = %v, want ErrExpectedRoot", se.Code)
	}
}

func TestUnterminatedBracketError(t *testing.T) {
	_, err := jpath.Query(dom.NewObject(), "$['a'")
	if err == nil {
		t.Fatal("want error for unterminated bracket")
	}
}
