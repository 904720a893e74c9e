package dom

// Member is a single key-value pair of an Object.
type Member struct {
	Key   string
	Value Value
}

// Object is a mutable, insertion-ordered mapping from string keys to DOM
// values. Unlike a Go map, iteration order matches insertion order, and
// duplicate keys are permitted during construction (only the first match
// is visible to At and Contains, matching how a JSON object with a
// duplicate key is conventionally resolved).
type Object struct {
	members []Member
}

func (*Object) Kind() Kind { return KindObject }
func (*Object) domValue()  {}

// NewObject returns a new, empty object.
func NewObject() *Object { return new(Object) }

// Len reports the number of members in o.
func (o *Object) Len() int { return len(o.members) }

// Members returns the members of o, in insertion order. The caller must not
// retain or mutate the returned slice past the next mutation of o.
func (o *Object) Members() []Member { return o.members }

// At returns the value of the first member of o named key, or (nil, false)
// if there is none.
func (o *Object) At(key string) (Value, bool) {
	for _, m := range o.members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// indexOf returns the index of the first member named key, or -1.
func (o *Object) indexOf(key string) int {
	for i, m := range o.members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Set assigns v to the member named key, replacing an existing member of
// that name if one exists, or appending a new member otherwise.
func (o *Object) Set(key string, v Value) {
	if i := o.indexOf(key); i >= 0 {
		o.members[i].Value = v
		return
	}
	o.members = append(o.members, Member{Key: key, Value: v})
}

// Handle returns a mutable reference to the value slot of the first member
// of o named key, and true, or the zero Handle and false if there is no
// such member.
func (o *Object) Handle(key string) (Handle, bool) {
	if i := o.indexOf(key); i >= 0 {
		return Handle{slot: &o.members[i].Value}, true
	}
	return Handle{}, false
}

// HandleAt returns a mutable reference to the value slot of the i'th
// member of o. It panics if i is out of range.
func (o *Object) HandleAt(i int) Handle { return Handle{slot: &o.members[i].Value} }
