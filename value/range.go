package value

import "fmt"

// Range is Koto's ascending-or-descending integer range.
type Range struct {
	Start int
	End   int
}

func (r Range) String() string { return fmt.Sprintf("%d..%d", r.Start, r.End) }
func (Range) Type() string     { return "Range" }
func (Range) IsImmutable() bool { return true }

// IsAscending reports whether the range's start is <= its end.
func (r Range) IsAscending() bool { return r.Start <= r.End }

// Len returns |end - start|, regardless of direction.
func (r Range) Len() int {
	if r.IsAscending() {
		return r.End - r.Start
	}
	return r.Start - r.End
}

// IsEmpty reports whether the range contains no elements.
func (r Range) IsEmpty() bool { return r.Start == r.End }

// IndexRange is used internally by index expressions (x[10..]); it is not
// constructible from Koto scripts directly.
type IndexRange struct {
	Start int
	End   *int // nil means "to the end"
}

func (IndexRange) String() string     { return "IndexRange" }
func (IndexRange) Type() string       { return "IndexRange" }
func (IndexRange) IsImmutable() bool  { return true }
