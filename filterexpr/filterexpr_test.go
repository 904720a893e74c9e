package filterexpr_test

import (
	"testing"

	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/filterexpr"
)

func mustCompile(t *testing.T, src string) *filterexpr.Expr {
	t.Helper()
	e, err := filterexpr.Compile(src)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", src, err)
	}
	return e
}

func book(price int, category string) dom.Value {
	o := dom.NewObject()
	o.Set("price", dom.Int(int64(price)))
	o.Set("category", dom.String(category))
	return o
}

func TestExistsPredicate(t *testing.T) {
	e := mustCompile(t, "@.isbn")
	withISBN := dom.NewObject()
	withISBN.Set("isbn", dom.String("0-000"))
	if !e.Exists(withISBN, withISBN) {
		t.Error("Exists = false, want true")
	}
	if e.Exists(book(10, "fiction"), nil) {
		t.Error("Exists = true, want false")
	}
}

func TestNumericComparison(t *testing.T) {
	e := mustCompile(t, "@.price < 10")
	if !e.Exists(book(5, "fiction"), nil) {
		t.Error("price 5 < 10: Exists = false, want true")
	}
	if e.Exists(book(20, "fiction"), nil) {
		t.Error("price 20 < 10: Exists = true, want false")
	}
}

func TestStringComparison(t *testing.T) {
	e := mustCompile(t, `@.category == 'fiction'`)
	if !e.Exists(book(5, "fiction"), nil) {
		t.Error("category fiction: Exists = false, want true")
	}
	if e.Exists(book(5, "reference"), nil) {
		t.Error("category reference: Exists = true, want false")
	}
}

func TestLogicalAnd(t *testing.T) {
	e := mustCompile(t, `@.price < 10 && @.category == 'fiction'`)
	if !e.Exists(book(5, "fiction"), nil) {
		t.Error("Exists = false, want true")
	}
	if e.Exists(book(5, "reference"), nil) {
		t.Error("Exists = true, want false")
	}
}

func TestExpressionSelectorArithmetic(t *testing.T) {
	e := mustCompile(t, "@.price + 1")
	v, ok := e.Eval(book(5, "fiction"), nil)
	if !ok {
		t.Fatal("Eval failed")
	}
	if f, ok := dom.AsDouble(v); !ok || f != 6 {
		t.Errorf("Eval = %v, want 6", v)
	}
}

func TestRegexComparison(t *testing.T) {
	e := mustCompile(t, `@.category =~ '^fic'`)
	if !e.Exists(book(5, "fiction"), nil) {
		t.Error("Exists = false, want true")
	}
}

func TestLengthStep(t *testing.T) {
	e := mustCompile(t, "@.length")
	arr := dom.NewArrayFrom(dom.Int(1), dom.Int(2), dom.Int(3))
	v, ok := e.Eval(arr, nil)
	if !ok {
		t.Fatal("Eval failed")
	}
	if v != dom.Int(3) {
		t.Errorf("Eval = %v, want 3", v)
	}
}
