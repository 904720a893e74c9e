package jsonkit

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location in
// source text. The *SyntaxError reported by Stream.Parse carries a
// LineCol rather than a Span: a JSON syntax error names a single point in
// the source text, not a range. (jpath.SyntaxError reports a line and
// column too, as two separate int fields.)
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

// String renders lc as "line:column".
func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

// String renders loc as "line:col-col" when it begins and ends on the same
// line, and as "line:col-line:col" otherwise.
func (loc Location) String() string {
	if loc.First.Line == loc.Last.Line {
		return fmt.Sprintf("%d:%d-%d", loc.First.Line, loc.First.Column, loc.Last.Column)
	}
	return fmt.Sprintf("%s-%s", loc.First, loc.Last)
}
