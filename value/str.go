package value

import (
	"fmt"

	"github.com/rivo/uniseg"
)

// Str is Koto's string value.
//
// Unlike the Rust original's explicit Rc<str> + byte-bounds pair
// (value_string.rs), a Go string already is an immutable, shared,
// reference-counted-by-the-GC byte buffer, and slicing it (s[a:b]) is a
// zero-copy view over the same backing array. That makes Go's native
// string the natural carrier for "shared immutable UTF-8 buffer + bounds"
// without needing a separate bounds field.
type Str struct {
	s string
}

// NewStr wraps a Go string as a Koto Str.
func NewStr(s string) Str { return Str{s: s} }

// Empty is the canonical empty string.
var Empty = Str{}

func (s Str) String() string     { return s.s }
func (Str) Type() string         { return "String" }
func (Str) IsImmutable() bool    { return true }

// Go returns the underlying Go string.
func (s Str) Go() string { return s.s }

// Len returns the number of UTF-8 bytes in the string.
func (s Str) Len() int { return len(s.s) }

// IsEmpty reports whether the string is empty.
func (s Str) IsEmpty() bool { return s.s == "" }

// Slice returns the substring s[start:end], requiring both bounds to land
// on UTF-8 code-point boundaries. The second return value is false if the
// bounds are invalid.
func (s Str) Slice(start, end int) (Str, bool) {
	if start < 0 || end < start || end > len(s.s) {
		return Str{}, false
	}
	if !validBoundary(s.s, start) || !validBoundary(s.s, end) {
		return Str{}, false
	}
	return Str{s: s.s[start:end]}, true
}

func validBoundary(s string, i int) bool {
	if i == 0 || i == len(s) {
		return true
	}
	// A byte is a UTF-8 boundary iff it is not a continuation byte
	// (10xxxxxx).
	return s[i]&0xC0 != 0x80
}

// GraphemeCount returns the number of extended grapheme clusters in the
// string.
func (s Str) GraphemeCount() int {
	return uniseg.GraphemeClusterCount(s.s)
}

// WithGraphemeIndices returns the substring spanning graphemes
// [start, end) (end == nil means "to the end"), matching
// ValueString::with_grapheme_indices in the Rust original. Indexing one
// past the last grapheme yields the empty string at the end of the data,
// which lets scripts consume a string one grapheme at a time.
func (s Str) WithGraphemeIndices(start int, end *int) (Str, bool) {
	if end != nil && start > *end {
		return Str{}, false
	}

	var resultStart = -1
	if start == 0 {
		resultStart = 0
	}
	resultEnd := -1

	endUnwrapped := s.GraphemeCount()
	if end != nil {
		endUnwrapped = *end
	}

	g := uniseg.NewGraphemes(s.s)
	i := 0
	pos := 0
	for g.Next() {
		graphemeStart := pos
		clusterLen := len(g.Str())
		pos += clusterLen

		if resultStart == -1 && i == start-1 {
			resultStart = graphemeStart + clusterLen
			if end == nil {
				break
			}
		}
		if i == endUnwrapped-1 {
			if start == endUnwrapped {
				return Empty, true
			}
			resultEnd = graphemeStart + clusterLen
			break
		}
		i++
	}

	switch {
	case resultStart != -1 && resultEnd != -1:
		return s.Slice(resultStart, resultEnd)
	case resultStart != -1 && end == nil:
		return s.Slice(resultStart, len(s.s))
	default:
		return Str{}, false
	}
}

// Graphemes returns the string's extended grapheme clusters in order.
func (s Str) Graphemes() []string {
	result := make([]string, 0, s.GraphemeCount())
	g := uniseg.NewGraphemes(s.s)
	for g.Next() {
		result = append(result, g.Str())
	}
	return result
}

func (s Str) GoString() string { return fmt.Sprintf("Str(%q)", s.s) }
