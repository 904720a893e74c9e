package dom

// A Handle is a mutable reference into a slot of the DOM: an *Array
// element, an *Object member's value, or a free-standing value cell (as
// used for the root of a query, or a synthesized temp value). Handles are
// the mechanism the jpath package's Replace mutates through: assigning
// through a Handle changes the value in place, wherever it lives in the
// tree.
//
// The zero Handle is not valid; construct one with NewHandle or the Handle
// method of *Array or *Object.
type Handle struct {
	slot *Value
}

// NewHandle returns a Handle referring to the value cell pointed to by v.
// This is the constructor for handles over free-standing values, such as a
// root document held in a single variable, or an entry in a temp-value
// sink.
func NewHandle(v *Value) Handle { return Handle{slot: v} }

// Get returns the current value referenced by h.
func (h Handle) Get() Value { return *h.slot }

// Set assigns v into the slot referenced by h, mutating the DOM in place.
func (h Handle) Set(v Value) { *h.slot = v }

// Valid reports whether h refers to a live slot.
func (h Handle) Valid() bool { return h.slot != nil }
