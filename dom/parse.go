package dom

import (
	"fmt"
	"io"
	"strconv"

	"github.com/creachadair/jsonkit"
)

// Parse reads a single JSON text value from r and returns the corresponding
// DOM tree. Parse drives jsonkit.Stream directly (the same tokenizer and
// event-driven parser the root package uses for its own tests), rather than
// materializing an intermediate syntax tree.
func Parse(r io.Reader) (Value, error) {
	b := new(builder)
	st := jsonkit.NewStream(r)
	if err := st.Parse(b); err != nil {
		return nil, err
	}
	if b.root == nil {
		return nil, fmt.Errorf("dom: empty input")
	}
	return b.root, nil
}

// cnode is an in-progress array or object awaiting completion.
type cnode struct {
	obj *Object
	arr *Array
}

// builder implements jsonkit.Handler, assembling a dom.Value tree from the
// stream's parse events.
type builder struct {
	stack []cnode
	key   string
	root  Value
}

func (b *builder) push(c cnode)  { b.stack = append(b.stack, c) }
func (b *builder) pop() cnode {
	n := len(b.stack) - 1
	c := b.stack[n]
	b.stack = b.stack[:n]
	return c
}

// addValue attaches v to the innermost open container, or sets it as the
// document root if there is none.
func (b *builder) addValue(v Value) {
	if len(b.stack) == 0 {
		b.root = v
		return
	}
	top := &b.stack[len(b.stack)-1]
	if top.obj != nil {
		top.obj.Set(b.key, v)
	} else {
		top.arr.Append(v)
	}
}

func (b *builder) BeginObject(loc jsonkit.Anchor) error {
	b.push(cnode{obj: NewObject()})
	return nil
}

func (b *builder) EndObject(loc jsonkit.Anchor) error {
	b.addValue(b.pop().obj)
	return nil
}

func (b *builder) BeginArray(loc jsonkit.Anchor) error {
	b.push(cnode{arr: NewArray()})
	return nil
}

func (b *builder) EndArray(loc jsonkit.Anchor) error {
	b.addValue(b.pop().arr)
	return nil
}

func (b *builder) BeginMember(loc jsonkit.Anchor) error {
	key, err := jsonkit.Unquote(string(loc.Text()))
	if err != nil {
		return fmt.Errorf("dom: invalid member key: %w", err)
	}
	b.key = string(key)
	return nil
}

func (b *builder) EndMember(loc jsonkit.Anchor) error { return nil }

func (b *builder) EndOfInput(loc jsonkit.Anchor) {}

func (b *builder) Value(loc jsonkit.Anchor) error {
	v, err := scalarValue(loc)
	if err != nil {
		return err
	}
	b.addValue(v)
	return nil
}

// scalarValue decodes the scalar token at loc into a DOM value.
func scalarValue(loc jsonkit.Anchor) (Value, error) {
	text := string(loc.Text())
	switch loc.Token() {
	case jsonkit.Integer:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			return Int(n), nil
		}
		// Overflows int64 (e.g. a huge literal); widen to float, matching
		// the DOM's double-conversion capability rather than failing.
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("dom: invalid integer %q: %w", text, err)
		}
		return Float(f), nil
	case jsonkit.Number:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("dom: invalid number %q: %w", text, err)
		}
		return Float(f), nil
	case jsonkit.String:
		s, err := jsonkit.Unquote(text)
		if err != nil {
			return nil, fmt.Errorf("dom: invalid string %q: %w", text, err)
		}
		return String(s), nil
	case jsonkit.True:
		return Bool(true), nil
	case jsonkit.False:
		return Bool(false), nil
	case jsonkit.Null:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("dom: unexpected token %v", loc.Token())
	}
}
