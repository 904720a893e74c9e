package jpath

import (
	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/function"
	"github.com/creachadair/jsonkit/selector"
)

// Query runs path against root and returns the matched values, in
// document order. It is a convenience wrapper over Evaluator for callers
// who only want values, grounded on the source's own json_query free
// function.
func Query(root dom.Value, path string) ([]dom.Value, error) {
	ev := New(selector.DiscardPath{}, function.New())
	var sink []dom.Value
	if err := ev.Evaluate(dom.NewHandle(&root), path, &sink); err != nil {
		return nil, err
	}
	return ev.GetValues(), nil
}

// QueryPaths runs path against root and returns the normalized path of
// every match, in document order.
func QueryPaths(root dom.Value, path string) ([]string, error) {
	ev := New(selector.BuildPath{}, function.New())
	var sink []dom.Value
	if err := ev.Evaluate(dom.NewHandle(&root), path, &sink); err != nil {
		return nil, err
	}
	return ev.GetNormalizedPaths(), nil
}

// Replace runs path against the value addressed by root and assigns v
// through every match, grounded on the source's own json_replace free
// function.
func Replace(root dom.Handle, path string, v dom.Value) error {
	ev := New(selector.DiscardPath{}, function.New())
	var sink []dom.Value
	if err := ev.Evaluate(root, path, &sink); err != nil {
		return err
	}
	ev.Replace(v)
	return nil
}
