package value

import "strings"

// List is Koto's growable, shared, interior-mutable sequence.
//
// Like starlark.List (starlark/value.go), sharing is achieved by handing
// out pointers to the same backing struct rather than by an explicit
// refcount: two variables holding the same *List observe the same
// mutations.
type List struct {
	elems []Value
}

// NewList wraps a slice of elements as a Koto List. Callers should not
// subsequently modify elems directly.
func NewList(elems []Value) *List { return &List{elems: elems} }

func (l *List) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range l.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

func (*List) Type() string      { return "List" }
func (*List) IsImmutable() bool { return false }

// Len returns the number of elements.
func (l *List) Len() int { return len(l.elems) }

// Data returns the list's backing slice. Callers must not mutate the
// returned slice's length; use Append/SetIndex for that.
func (l *List) Data() []Value { return l.elems }

// At returns the element at index i.
func (l *List) At(i int) Value { return l.elems[i] }

// SetIndex assigns v to index i.
func (l *List) SetIndex(i int, v Value) { l.elems[i] = v }

// Append adds v to the end of the list.
func (l *List) Append(v Value) { l.elems = append(l.elems, v) }

// Clear empties the list in place; existing holders of the same *List
// observe the change.
func (l *List) Clear() { l.elems = l.elems[:0] }
