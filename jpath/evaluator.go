package jpath

import (
	"fmt"
	"strings"

	"github.com/creachadair/jsonkit/dom"
	"github.com/creachadair/jsonkit/filterexpr"
	"github.com/creachadair/jsonkit/function"
	"github.com/creachadair/jsonkit/internal/pathindex"
	"github.com/creachadair/jsonkit/selector"
)

// Evaluator runs one JSONPath expression against a root value, tracking
// its progress as a stack of node sets: each completed step pushes a new
// node set derived from the previous top of stack, so GetValues and
// friends always report the outcome of the last step evaluated.
type Evaluator struct {
	cons  selector.PathConstructor
	funcs function.Table

	root dom.Handle

	state             pathState
	preLineBreakState pathState
	line, column      int

	buf strings.Builder

	start, end, step                        int64
	positiveStart, positiveEnd, positiveStep bool
	undefinedEnd                             bool

	funcName string

	recursive bool
	selectors []selector.Selector
	nodes     selector.NodeSet
	stack     selector.NodeStack

	sink *[]dom.Value
}

// New returns an Evaluator that builds paths with cons and resolves
// function calls against funcs.
func New(cons selector.PathConstructor, funcs function.Table) *Evaluator {
	return &Evaluator{cons: cons, funcs: funcs}
}

// Evaluate runs path against root, accumulating any values the query
// synthesizes (lengths, code points, function results) into sink. On
// success, GetValues, GetNormalizedPaths, GetPointers, and Replace
// report the outcome; on error the evaluator's state is undefined.
func (e *Evaluator) Evaluate(root dom.Handle, path string, sink *[]dom.Value) error {
	e.root = root
	e.sink = sink
	e.state = stateStart
	e.line, e.column = 1, 0
	e.buf.Reset()
	e.recursive = false
	e.selectors = nil
	e.nodes = nil
	e.stack = nil

	i, n := 0, len(path)
	for i < n {
		c := path[i]

		switch e.state {
		case stateCR:
			e.line++
			e.column = 0
			if c == '\n' {
				e.state = e.preLineBreakState
				i++
				continue
			}
			e.state = e.preLineBreakState
			continue
		case stateLF:
			e.line++
			e.column = 0
			e.state = e.preLineBreakState
			continue
		}
		switch c {
		case '\r':
			e.preLineBreakState = e.state
			e.state = stateCR
			i++
			continue
		case '\n':
			e.preLineBreakState = e.state
			e.state = stateLF
			i++
			continue
		}

		e.column++
		redo := false

		switch e.state {
		case stateStart:
			switch {
			case c == ' ' || c == '\t':
			case c == '$':
				e.stack.Push(selector.NodeSet{{Path: "$", Handle: e.root}})
				e.state = stateExpectDotOrLeftBracket
			case c == '.' || c == '[':
				return e.syntaxError(ErrExpectedRoot, nil)
			default:
				e.buf.Reset()
				e.buf.WriteByte(c)
				e.state = stateFunctionName
			}

		case stateFunctionName:
			if c == '(' {
				e.funcName = e.buf.String()
				e.buf.Reset()
				e.state = stateFunctionArgument
			} else {
				e.buf.WriteByte(c)
			}

		case stateFunctionArgument:
			if c == ')' {
				argPath := e.buf.String()
				e.buf.Reset()
				if err := e.evalFunctionCall(argPath); err != nil {
					return err
				}
				e.state = stateExpectDotOrLeftBracket
			} else {
				e.buf.WriteByte(c)
			}

		case stateExpectDotOrLeftBracket:
			switch {
			case c == ' ' || c == '\t':
			case c == '.':
				e.state = stateDot
			case c == '[':
				e.state = stateLeftBracket
			default:
				return e.syntaxError(ErrExpectedSeparator, nil)
			}

		case stateDot:
			if c == '.' {
				e.recursive = true
				e.state = stateExpectUnquotedNameOrLeftBracket
			} else {
				e.state = stateExpectUnquotedNameOrLeftBracket
				redo = true
			}

		case stateExpectUnquotedNameOrLeftBracket:
			switch c {
			case '.':
				return e.syntaxError(ErrExpectedName, nil)
			case '*':
				e.endAll()
				e.transferNodes()
				e.state = stateExpectDotOrLeftBracket
			case '[':
				e.state = stateLeftBracket
			default:
				e.buf.Reset()
				e.buf.WriteByte(c)
				e.state = stateUnquotedName
			}

		case stateUnquotedName:
			switch c {
			case '[':
				e.applyUnquotedString(e.buf.String())
				e.transferNodes()
				e.buf.Reset()
				e.start = 0
				e.state = stateLeftBracket
			case '.':
				e.applyUnquotedString(e.buf.String())
				e.transferNodes()
				e.buf.Reset()
				e.state = stateDot
			case ' ', '\t':
				e.applyUnquotedString(e.buf.String())
				e.transferNodes()
				e.buf.Reset()
				e.state = stateExpectDotOrLeftBracket
			default:
				e.buf.WriteByte(c)
			}

		case stateLeftBracket:
			switch {
			case c == ' ' || c == '\t':
			case c == '(':
				content, next, ok := scanBalancedParen(path, i+1)
				if !ok {
					return e.syntaxError(ErrExpectedRightBracket, nil)
				}
				expr, err := filterexpr.Compile(content)
				if err != nil {
					return err
				}
				e.selectors = append(e.selectors, selector.Expression{Expr: expr})
				i = next
				e.state = stateExpectCommaOrRightBracket
				redo = true
			case c == '?':
				if i+1 >= n || path[i+1] != '(' {
					return e.syntaxError(ErrExpectedRightBracket, nil)
				}
				content, next, ok := scanBalancedParen(path, i+2)
				if !ok {
					return e.syntaxError(ErrExpectedRightBracket, nil)
				}
				expr, err := filterexpr.Compile(content)
				if err != nil {
					return err
				}
				e.selectors = append(e.selectors, selector.Filter{Expr: expr})
				i = next
				e.state = stateExpectCommaOrRightBracket
				redo = true
			case c == ':':
				e.clearIndex()
				e.state = stateLeftBracketEnd
			case c == '*':
				e.endAll()
				e.state = stateExpectCommaOrRightBracket
			case c == '\'':
				e.buf.Reset()
				e.state = stateLeftBracketSingleQuotedString
			case c == '"':
				e.buf.Reset()
				e.state = stateLeftBracketDoubleQuotedString
			default:
				e.clearIndex()
				e.buf.WriteByte(c)
				e.state = stateLeftBracketStart
			}

		case stateLeftBracketStart:
			switch c {
			case ':':
				if err := e.parseIndexField(&e.start, &e.positiveStart); err != nil {
					return err
				}
				e.buf.Reset()
				e.state = stateLeftBracketEnd
			case ',':
				e.selectors = append(e.selectors, selector.Name{Name: e.buf.String()})
				e.buf.Reset()
				e.state = stateLeftBracket
			case ']':
				e.selectors = append(e.selectors, selector.Name{Name: e.buf.String()})
				e.buf.Reset()
				e.applySelectors()
				e.state = stateExpectDotOrLeftBracket
			default:
				e.buf.WriteByte(c)
			}

		case stateLeftBracketEnd, stateLeftBracketEnd2:
			switch c {
			case '-':
				if e.state == stateLeftBracketEnd {
					e.buf.WriteByte(c)
					e.state = stateLeftBracketEnd2
				} else {
					e.buf.WriteByte(c)
				}
			case ':':
				if err := e.commitEnd(); err != nil {
					return err
				}
				e.buf.Reset()
				e.step = 0
				e.state = stateLeftBracketStep
			case ',':
				if err := e.commitEnd(); err != nil {
					return err
				}
				e.buf.Reset()
				e.selectors = append(e.selectors, e.buildSlice())
				e.state = stateLeftBracket
			case ']':
				if err := e.commitEnd(); err != nil {
					return err
				}
				e.buf.Reset()
				e.selectors = append(e.selectors, e.buildSlice())
				e.applySelectors()
				e.state = stateExpectDotOrLeftBracket
			default:
				e.buf.WriteByte(c)
			}

		case stateLeftBracketStep, stateLeftBracketStep2:
			switch c {
			case '-':
				if e.state == stateLeftBracketStep {
					e.buf.WriteByte(c)
					e.state = stateLeftBracketStep2
				} else {
					e.buf.WriteByte(c)
				}
			case ',':
				if err := e.commitStep(); err != nil {
					return err
				}
				e.buf.Reset()
				e.selectors = append(e.selectors, e.buildSlice())
				e.state = stateLeftBracket
			case ']':
				if err := e.commitStep(); err != nil {
					return err
				}
				e.buf.Reset()
				e.selectors = append(e.selectors, e.buildSlice())
				e.applySelectors()
				e.state = stateExpectDotOrLeftBracket
			default:
				e.buf.WriteByte(c)
			}

		case stateLeftBracketSingleQuotedString:
			switch c {
			case '\\':
				e.buf.WriteByte(c)
				if i+1 >= n {
					return e.syntaxError(ErrExpectedRightBracket, nil)
				}
				e.buf.WriteByte(path[i+1])
				i++
			case '\'':
				e.selectors = append(e.selectors, selector.Name{Name: e.buf.String()})
				e.buf.Reset()
				e.state = stateExpectCommaOrRightBracket
			default:
				e.buf.WriteByte(c)
			}

		case stateLeftBracketDoubleQuotedString:
			switch c {
			case '\\':
				e.buf.WriteByte(c)
				if i+1 >= n {
					return e.syntaxError(ErrExpectedRightBracket, nil)
				}
				e.buf.WriteByte(path[i+1])
				i++
			case '"':
				e.selectors = append(e.selectors, selector.Name{Name: e.buf.String()})
				e.buf.Reset()
				e.state = stateExpectCommaOrRightBracket
			default:
				e.buf.WriteByte(c)
			}

		case stateExpectCommaOrRightBracket:
			switch {
			case c == ' ' || c == '\t':
			case c == ',':
				e.state = stateLeftBracket
			case c == ']':
				e.applySelectors()
				e.state = stateExpectDotOrLeftBracket
			default:
				return e.syntaxError(ErrExpectedRightBracket, nil)
			}

		default:
			return e.syntaxError(ErrExpectedSeparator, nil)
		}

		if !redo {
			i++
		}
	}

	switch e.state {
	case stateUnquotedName:
		e.applyUnquotedString(e.buf.String())
		e.transferNodes()
	case stateLeftBracket, stateLeftBracketStart, stateLeftBracketEnd, stateLeftBracketEnd2,
		stateLeftBracketStep, stateLeftBracketStep2, stateLeftBracketSingleQuotedString,
		stateLeftBracketDoubleQuotedString, stateExpectCommaOrRightBracket:
		return e.syntaxError(ErrExpectedRightBracket, nil)
	}
	return nil
}

// GetValues returns the values of the current top-of-stack node set.
func (e *Evaluator) GetValues() []dom.Value { return e.stack.Top().Values() }

// GetNormalizedPaths returns the path strings of the current top-of-stack
// node set, as built by the Evaluator's PathConstructor.
func (e *Evaluator) GetNormalizedPaths() []string { return e.stack.Top().Paths() }

// GetPointers returns the handles of the current top-of-stack node set.
func (e *Evaluator) GetPointers() []dom.Handle {
	top := e.stack.Top()
	out := make([]dom.Handle, len(top))
	for i, node := range top {
		out[i] = node.Handle
	}
	return out
}

// Replace assigns v through every handle in the current top-of-stack node
// set.
func (e *Evaluator) Replace(v dom.Value) {
	for _, node := range e.stack.Top() {
		node.Handle.Set(v)
	}
}

func (e *Evaluator) clearIndex() {
	e.buf.Reset()
	e.start = 0
	e.positiveStart = true
	e.end = 0
	e.positiveEnd = true
	e.undefinedEnd = true
	e.step = 1
	e.positiveStep = true
}

func (e *Evaluator) parseIndexField(magnitude *int64, positive *bool) error {
	if e.buf.Len() == 0 {
		return nil
	}
	mag, pos, ok := pathindex.Parse(e.buf.String())
	if !ok {
		return e.syntaxError(ErrExpectedIndex, nil)
	}
	*magnitude = int64(mag)
	*positive = pos
	return nil
}

func (e *Evaluator) commitEnd() error {
	if e.buf.Len() == 0 {
		return nil
	}
	if err := e.parseIndexField(&e.end, &e.positiveEnd); err != nil {
		return err
	}
	e.undefinedEnd = false
	return nil
}

func (e *Evaluator) commitStep() error {
	if e.buf.Len() == 0 {
		return nil
	}
	return e.parseIndexField(&e.step, &e.positiveStep)
}

func (e *Evaluator) buildSlice() selector.Slice {
	return selector.Slice{
		Start: e.start, End: e.end, Step: e.step,
		PositiveStart: e.positiveStart, PositiveEnd: e.positiveEnd, PositiveStep: e.positiveStep,
		UndefinedEnd: e.undefinedEnd,
	}
}

// endAll spreads every element of an array, or every member of an
// object, in the current top of stack into the temp accumulator. Unlike
// applySelectors and applyUnquotedString it never consults the
// recursive-descent flag, so "$..*" only reaches one level deep — a
// literal, deliberately un-"fixed" quirk of the source this evaluator
// transcribes.
func (e *Evaluator) endAll() {
	for _, node := range e.stack.Top() {
		switch t := node.Handle.Get().(type) {
		case *dom.Array:
			for i := 0; i < t.Len(); i++ {
				e.nodes = append(e.nodes, selector.Node{Path: e.cons.AppendIndex(node.Path, i), Handle: t.Handle(i)})
			}
		case *dom.Object:
			for i, m := range t.Members() {
				e.nodes = append(e.nodes, selector.Node{Path: e.cons.AppendName(node.Path, m.Key), Handle: t.HandleAt(i)})
			}
		}
	}
}

// applyUnquotedString resolves a bare .name step against every node in
// the current top of stack, delegating the actual name/index/length
// resolution to selector.Name so this and Name's Apply cannot drift
// apart. Recursive descent, when set, additionally re-applies name to
// every value nested inside each node's value tree.
func (e *Evaluator) applyUnquotedString(name string) {
	sel := selector.Name{Name: name}
	for _, node := range e.stack.Top() {
		e.applyUnquotedStringNode(sel, node.Path, node.Handle)
	}
}

func (e *Evaluator) applyUnquotedStringNode(sel selector.Name, path string, h dom.Handle) {
	cur := selector.Node{Path: path, Handle: h}
	var top selector.Node
	var out selector.NodeSet
	sel.Apply(&top, cur, e.root.Get(), e.cons, e.sink, &out)
	e.nodes = append(e.nodes, out...)

	if !e.recursive {
		return
	}
	switch t := h.Get().(type) {
	case *dom.Object:
		for i, m := range t.Members() {
			e.applyUnquotedStringNode(sel, e.cons.AppendName(path, m.Key), t.HandleAt(i))
		}
	case *dom.Array:
		for i := 0; i < t.Len(); i++ {
			e.applyUnquotedStringNode(sel, e.cons.AppendIndex(path, i), t.Handle(i))
		}
	}
}

// applySelectors runs every selector accumulated for the current bracket
// group against every node in the current top of stack, then transfers
// the result to become the new top of stack. Under recursive descent,
// each node's selectors are also re-applied to every value nested inside
// it, with the SkipContainedObject scratch flag on that one node shared
// across the whole nested walk so a Filter selector does not double-
// match an object once as an array element and again as itself.
func (e *Evaluator) applySelectors() {
	if len(e.selectors) > 0 {
		top := e.stack.Top()
		for i := range top {
			e.applySelectorsNode(&top[i], selector.Node{Path: top[i].Path, Handle: top[i].Handle})
		}
	}
	e.selectors = nil
	e.transferNodes()
}

func (e *Evaluator) applySelectorsNode(top *selector.Node, cur selector.Node) {
	for _, sel := range e.selectors {
		sel.Apply(top, cur, e.root.Get(), e.cons, e.sink, &e.nodes)
	}
	if !e.recursive {
		return
	}
	switch t := cur.Handle.Get().(type) {
	case *dom.Object:
		for i, m := range t.Members() {
			e.applySelectorsNode(top, selector.Node{Path: e.cons.AppendName(cur.Path, m.Key), Handle: t.HandleAt(i)})
		}
	case *dom.Array:
		for i := 0; i < t.Len(); i++ {
			e.applySelectorsNode(top, selector.Node{Path: e.cons.AppendIndex(cur.Path, i), Handle: t.Handle(i)})
		}
	}
}

func (e *Evaluator) transferNodes() {
	e.stack.Push(e.nodes)
	e.nodes = nil
	e.recursive = false
}

func (e *Evaluator) evalFunctionCall(argPath string) error {
	fn, ok := e.funcs[e.funcName]
	if !ok {
		return e.syntaxError(ErrUnsupportedFunction, fmt.Errorf("%q", e.funcName))
	}
	// The nested evaluator shares this evaluator's temp-value sink rather
	// than a sink of its own, so any values it synthesizes (lengths, code
	// points) stay alive as long as the outer evaluator's result does.
	sub := New(selector.DiscardPath{}, e.funcs)
	if err := sub.Evaluate(e.root, argPath, e.sink); err != nil {
		return err
	}
	result := fn(sub.GetValues())
	*e.sink = append(*e.sink, result)
	h := dom.NewHandle(&(*e.sink)[len(*e.sink)-1])
	e.stack.Push(selector.NodeSet{{Path: "$", Handle: h}})
	return nil
}

func (e *Evaluator) syntaxError(code ErrorCode, cause error) error {
	return &SyntaxError{Code: code, Line: e.line, Column: e.column, Err: cause}
}

// scanBalancedParen scans s starting at i (the character immediately
// after an opening '(' already consumed by the caller) for its matching
// close paren, honoring quoted substrings so a filter expression's
// string literals may contain '(' or ')' freely. It returns the text
// between the parens and the index of the character following the close
// paren. Grounded on the teacher's own jpath.parseScript, extended with
// quote-awareness for filter/expression text.
func scanBalancedParen(s string, i int) (content string, next int, ok bool) {
	start := i
	depth := 1
	for i < len(s) {
		switch s[i] {
		case '\'', '"':
			q := s[i]
			i++
			for i < len(s) && s[i] != q {
				if s[i] == '\\' && i+1 < len(s) {
					i++
				}
				i++
			}
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[start:i], i + 1, true
			}
		}
		i++
	}
	return "", i, false
}
