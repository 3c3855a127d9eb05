package value

import "strings"

// Tuple is Koto's fixed-size, immutable-after-build sequence.
//
// Following starlark.Tuple (starlark/value.go), Tuple is a named slice
// type rather than a pointer: once built its contents never change, so
// value semantics (each copy shares the same backing array but no one
// mutates it) are safe.
type Tuple []Value

func (t Tuple) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, v := range t {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	if len(t) == 1 {
		sb.WriteByte(',')
	}
	sb.WriteByte(')')
	return sb.String()
}

func (Tuple) Type() string      { return "Tuple" }
func (Tuple) IsImmutable() bool { return false }

// Len returns the number of elements.
func (t Tuple) Len() int { return len(t) }

// Pair builds the 2-tuple (a, b), used wherever a ValuePair(k, v) output
// needs to be flattened to a single value.
func Pair(a, b Value) Tuple { return Tuple{a, b} }
