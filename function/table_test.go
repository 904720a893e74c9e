package function_test

import (
	"testing"

	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/function"
)

func vals(ns ...float64) []dom.Value {
	out := make([]dom.Value, len(ns))
	for i, n := range ns {
		out[i] = dom.Float(n)
	}
	return out
}

func TestMaxMin(t *testing.T) {
	tab := function.New()
	if got := tab["max"](vals(1, 5, 3)); got != dom.Float(5) {
		t.Errorf("max = %v, want 5", got)
	}
	if got := tab["min"](vals(1, 5, 3)); got != dom.Float(1) {
		t.Errorf("min = %v, want 1", got)
	}
}

func TestAvgEmpty(t *testing.T) {
	tab := function.New()
	if got := tab["avg"](nil); got != (dom.Null{}) {
		t.Errorf("avg(nil) = %v, want null", got)
	}
	if got := tab["avg"](vals(1, 2, 3, 4, 5)); got != dom.Float(3) {
		t.Errorf("avg = %v, want 3", got)
	}
}

func TestSumCount(t *testing.T) {
	tab := function.New()
	if got := tab["sum"](vals(1, 2, 3)); got != dom.Float(6) {
		t.Errorf("sum = %v, want 6", got)
	}
	if got := tab["count"](vals(1, 2, 3)); got != dom.Int(3) {
		t.Errorf("count = %v, want 3", got)
	}
}

func TestProdSeedingQuirk(t *testing.T) {
	tab := function.New()
	// No leading zero: behaves like an ordinary product.
	if got := tab["prod"](vals(2, 3, 4)); got != dom.Float(24) {
		t.Errorf("prod(2,3,4) = %v, want 24", got)
	}
	// A zero after seeding zeroes the running product, and the next
	// nonzero value then reseeds it.
	if got := tab["prod"](vals(2, 0, 4)); got != dom.Float(4) {
		t.Errorf("prod(2,0,4) = %v, want 4 (source quirk)", got)
	}
	// Leading zeros are skipped by the seeding rule, not multiplied in.
	if got := tab["prod"](vals(0, 0, 5, 2)); got != dom.Float(10) {
		t.Errorf("prod(0,0,5,2) = %v, want 10 (source quirk)", got)
	}
}
