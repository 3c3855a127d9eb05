package iterator

import (
	"fmt"
	"strings"

	"github.com/koto-lang/koto/value"
)

// splitIterator backs string.split(s, pattern): it yields the substrings
// between occurrences of a literal separator, the same way strings.Split
// does but lazily. The separator is matched byte-for-byte against valid
// UTF-8, so a split never falls inside a code point; it can fall inside a
// grapheme cluster (between a base letter and a following combining mark).
type splitIterator struct {
	rest    string
	sep     string
	done    bool
	sepSize int
}

// NewSplit returns an Iterator over the substrings of s separated by sep.
// An empty sep splits into individual graphemes.
func NewSplit(s value.Str, sep string) Iterator {
	if sep == "" {
		return NewString(s)
	}
	return &splitIterator{rest: s.Go(), sep: sep, sepSize: len(sep)}
}

func (it *splitIterator) Next() (Output, bool) {
	if it.done {
		return Output{}, false
	}
	if idx := strings.Index(it.rest, it.sep); idx >= 0 {
		head := it.rest[:idx]
		it.rest = it.rest[idx+it.sepSize:]
		return ValueOutput(value.NewStr(head)), true
	}
	it.done = true
	return ValueOutput(value.NewStr(it.rest)), true
}

func (it *splitIterator) SizeHint() int {
	if it.done {
		return 0
	}
	return 1
}

func (it *splitIterator) MakeCopy() Iterator {
	cp := *it
	return &cp
}

// splitWithIterator backs string.split(s, predicate): each grapheme is
// passed to the predicate, and a new substring begins whenever it returns
// true.
type splitWithIterator struct {
	graphemes []string
	i         int
	pred      value.Value
	vm        VM
	done      bool
}

// NewSplitWith returns an Iterator over the substrings of s, split wherever
// pred(grapheme) returns true.
func NewSplitWith(s value.Str, pred value.Value, vm VM) Iterator {
	return &splitWithIterator{graphemes: s.Graphemes(), pred: pred, vm: vm}
}

func (it *splitWithIterator) Next() (Output, bool) {
	if it.done {
		return Output{}, false
	}
	var sb strings.Builder
	for it.i < len(it.graphemes) {
		g := it.graphemes[it.i]
		result, err := it.vm.RunFunction(it.pred, CallSingle(value.NewStr(g)))
		if err != nil {
			it.done = true
			return ErrorOutput(err), true
		}
		b, isBool := result.(value.Bool)
		if !isBool {
			it.done = true
			return ErrorOutput(errExpectedBool(result)), true
		}
		it.i++
		if bool(b) {
			return ValueOutput(value.NewStr(sb.String())), true
		}
		sb.WriteString(g)
	}
	it.done = true
	return ValueOutput(value.NewStr(sb.String())), true
}

func (it *splitWithIterator) SizeHint() int {
	if it.done {
		return 0
	}
	return 1
}

func (it *splitWithIterator) MakeCopy() Iterator {
	cp := *it
	return &cp
}

func errExpectedBool(v value.Value) error {
	return fmt.Errorf("expected a Bool to be returned from the predicate, found '%s'", v.Type())
}

// linesIterator backs string.lines(s): it yields the string split on line
// boundaries, with any trailing \r stripped (matching str::lines in the
// Rust original).
type linesIterator struct {
	rest string
	done bool
}

// NewLines returns an Iterator over the lines of s.
func NewLines(s value.Str) Iterator {
	if s.IsEmpty() {
		return &linesIterator{done: true}
	}
	return &linesIterator{rest: s.Go()}
}

func (it *linesIterator) Next() (Output, bool) {
	if it.done {
		return Output{}, false
	}
	if idx := strings.IndexByte(it.rest, '\n'); idx >= 0 {
		line := it.rest[:idx]
		line = strings.TrimSuffix(line, "\r")
		it.rest = it.rest[idx+1:]
		if it.rest == "" {
			it.done = true
		}
		return ValueOutput(value.NewStr(line)), true
	}
	it.done = true
	return ValueOutput(value.NewStr(strings.TrimSuffix(it.rest, "\r"))), true
}

func (it *linesIterator) SizeHint() int {
	if it.done {
		return 0
	}
	return 1
}

func (it *linesIterator) MakeCopy() Iterator {
	cp := *it
	return &cp
}

// bytesIterator backs string.bytes(s): it yields each byte of the string's
// UTF-8 encoding as an Int.
type bytesIterator struct {
	s string
	i int
}

// NewBytes returns an Iterator over the raw UTF-8 bytes of s.
func NewBytes(s value.Str) Iterator { return &bytesIterator{s: s.Go()} }

func (it *bytesIterator) Next() (Output, bool) {
	if it.i >= len(it.s) {
		return Output{}, false
	}
	b := it.s[it.i]
	it.i++
	return ValueOutput(value.Int(int64(b))), true
}

func (it *bytesIterator) SizeHint() int {
	remaining := len(it.s) - it.i
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (it *bytesIterator) MakeCopy() Iterator { return &bytesIterator{s: it.s, i: it.i} }
