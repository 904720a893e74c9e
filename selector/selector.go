// Package selector implements the four JSONPath step kinds — name,
// slice, expression, and filter — as small value types that apply
// themselves to a node and accumulate matches into a node set, plus the
// node-set and path-constructor plumbing they share.
package selector

import "github.com/creachadair/jsonkit/dom"

// Node is one member of a node set: a value reached by a path from the
// query root, addressed by a mutable handle so replace-in-place stays
// possible after the query finishes. SkipContainedObject is scratch state
// owned by whichever stack entry this node came from: while a Filter
// selector walks that entry's value and (under recursive descent) every
// value nested inside it, it toggles this flag on the entry itself to
// remember "the array holding this object already matched it", so the
// same filter re-applied to the object on its own does not double-match.
// Nodes freshly emitted into an out set always start with the flag clear.
type Node struct {
	Path                string
	Handle              dom.Handle
	SkipContainedObject bool
}

// NodeSet is an ordered collection of nodes, in document order.
type NodeSet []Node

// Values returns the values addressed by every node in the set.
func (ns NodeSet) Values() []dom.Value {
	out := make([]dom.Value, len(ns))
	for i, n := range ns {
		out[i] = n.Handle.Get()
	}
	return out
}

// Paths returns the normalized path string of every node in the set.
func (ns NodeSet) Paths() []string {
	out := make([]string, len(ns))
	for i, n := range ns {
		out[i] = n.Path
	}
	return out
}

// NodeStack is a stack of node sets, one per layer of path evaluation.
type NodeStack []NodeSet

// Push appends ns as the new top of the stack.
func (s *NodeStack) Push(ns NodeSet) { *s = append(*s, ns) }

// Pop removes and returns the top of the stack. It panics if the stack is
// empty.
func (s *NodeStack) Pop() NodeSet {
	old := *s
	top := old[len(old)-1]
	*s = old[:len(old)-1]
	return top
}

// Top returns the current top of the stack without removing it. It
// panics if the stack is empty.
func (s NodeStack) Top() NodeSet { return s[len(s)-1] }

// PathConstructor renders the path extension produced by descending into
// a named object member or an indexed array element. DiscardPath and
// BuildPath are the two policies a query needs: one for values-only
// evaluation, one for get_normalized_paths.
type PathConstructor interface {
	AppendName(path, name string) string
	AppendIndex(path string, index int) string
}

// DiscardPath is the identity policy: every path is the empty string.
// Use it when only the matched values are wanted.
type DiscardPath struct{}

func (DiscardPath) AppendName(path, name string) string  { return "" }
func (DiscardPath) AppendIndex(path string, index int) string { return "" }

// BuildPath renders normalized paths using bracketed quoted names and
// bracketed indices, e.g. $['store']['book'][0].
type BuildPath struct{}

func (BuildPath) AppendName(path, name string) string {
	return path + "['" + name + "']"
}

func (BuildPath) AppendIndex(path string, index int) string {
	return path + "[" + itoa(index) + "]"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Selector is one step of a compiled JSONPath query. top identifies the
// stack entry a selector application walk started from — it owns the
// SkipContainedObject scratch flag and is passed unchanged through an
// entire recursive-descent walk of one entry's value tree. cur is the
// particular (path, value) being tested right now, which under recursive
// descent is a value nested inside top, not top itself. Applying a
// selector may consult root (for FILTER expressions that reference the
// query root) and may synthesize new temporary DOM values (a Name
// selector's array lengths and single code points of strings), appending them
// to sink and taking stable handles into it — sink must not be
// truncated or reallocated out from under those handles while the
// selector's node set is still in use.
type Selector interface {
	Apply(top *Node, cur Node, root dom.Value, cons PathConstructor, sink *[]dom.Value, out *NodeSet)
}

// appendSink appends v to *sink and returns a handle to its stored slot.
func appendSink(sink *[]dom.Value, v dom.Value) dom.Handle {
	*sink = append(*sink, v)
	return dom.NewHandle(&(*sink)[len(*sink)-1])
}
