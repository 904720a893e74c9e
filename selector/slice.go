package selector

import "github.com/creachadair/jsonkit/dom"

// Slice selects a subrange of an array. Start, End, and Step are the
// magnitudes parsed from the path text; the Positive* flags record their
// signs (a negative sign means "from the end", size - n). UndefinedEnd
// means no end field was written, so End defaults to the array's size.
// Slice is a no-op against anything but an array.
type Slice struct {
	Start, End, Step                        int64
	PositiveStart, PositiveEnd, PositiveStep bool
	UndefinedEnd                             bool
}

func (s Slice) Apply(top *Node, cur Node, root dom.Value, cons PathConstructor, sink *[]dom.Value, out *NodeSet) {
	arr, ok := cur.Handle.Get().(*dom.Array)
	if !ok {
		return
	}
	size := int64(arr.Len())

	absStart := s.Start
	if !s.PositiveStart {
		absStart = size - s.Start
	}
	var absEnd int64
	switch {
	case s.UndefinedEnd:
		absEnd = size
	case s.PositiveEnd:
		absEnd = s.End
	default:
		absEnd = size - s.End
	}

	step := s.Step
	if step == 0 {
		step = 1
	}

	emit := func(j int64) {
		if j < 0 || j >= size {
			return
		}
		idx := int(j)
		*out = append(*out, Node{Path: cons.AppendIndex(cur.Path, idx), Handle: arr.Handle(idx)})
	}

	if s.PositiveStep {
		for j := absStart; j < absEnd && j < size; j += step {
			emit(j)
		}
		return
	}
	j := absEnd + step - 1
	threshold := absStart + step - 1
	for j > threshold {
		j -= step
		emit(j)
	}
}
