// Package function implements the fixed dictionary of pure reductions a
// JSONPath function call (max(...), avg(...), and so on) resolves
// against, each operating over a sequence of DOM values coerced to
// float64.
package function

import (
	"math"

	"github.com/creachadair/jsonkit/dom"
)

// Reducer computes a single DOM value from a sequence of pointer-sequence
// arguments.
type Reducer func(args []dom.Value) dom.Value

// Table is an immutable name-to-reducer dictionary, safe to share across
// evaluators and goroutines once built.
type Table map[string]Reducer

// New builds the standard function table: max, min, avg, sum, count, prod.
func New() Table {
	return Table{
		"max":   maxFunc,
		"min":   minFunc,
		"avg":   avgFunc,
		"sum":   sumFunc,
		"count": countFunc,
		"prod":  prodFunc,
	}
}

func maxFunc(args []dom.Value) dom.Value {
	v := -math.MaxFloat64
	for _, a := range args {
		if x, ok := dom.AsDouble(a); ok && x > v {
			v = x
		}
	}
	return dom.Float(v)
}

func minFunc(args []dom.Value) dom.Value {
	v := math.MaxFloat64
	for _, a := range args {
		if x, ok := dom.AsDouble(a); ok && x < v {
			v = x
		}
	}
	return dom.Float(v)
}

func avgFunc(args []dom.Value) dom.Value {
	if len(args) == 0 {
		return dom.Null{}
	}
	var sum float64
	var n int
	for _, a := range args {
		if x, ok := dom.AsDouble(a); ok {
			sum += x
			n++
		}
	}
	if n == 0 {
		return dom.Null{}
	}
	return dom.Float(sum / float64(n))
}

func sumFunc(args []dom.Value) dom.Value {
	var v float64
	for _, a := range args {
		if x, ok := dom.AsDouble(a); ok {
			v += x
		}
	}
	return dom.Float(v)
}

func countFunc(args []dom.Value) dom.Value {
	return dom.Int(len(args))
}

// prodFunc computes a product, replicating the source's first-nonzero
// seeding rule literally rather than starting from the multiplicative
// identity: whenever the running product is zero (at the start, or after
// a zero element has been multiplied in), zero elements are skipped and
// the next nonzero value seeds v directly, so prod(2,0,4) is 4 and
// prod(0,0,5,2) is 10. This is possibly a bug in the source (see
// spec.md §9) but is preserved deliberately, not "fixed".
func prodFunc(args []dom.Value) dom.Value {
	v := 0.0
	for _, a := range args {
		x, ok := dom.AsDouble(a)
		if !ok {
			continue
		}
		if v == 0.0 && x != 0.0 {
			v = x
		} else {
			v *= x
		}
	}
	return dom.Float(v)
}
