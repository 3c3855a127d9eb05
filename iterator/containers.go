package iterator

import "github.com/koto-lang/koto/value"

// listIterator walks a *value.List by index, so that mutations made to
// the list via another handle during iteration are (as in the Rust
// original) visible to the iterator.
type listIterator struct {
	l *value.List
	i int
}

// NewList returns an Iterator over a List's elements, in order.
func NewList(l *value.List) Iterator { return &listIterator{l: l} }

func (it *listIterator) Next() (Output, bool) {
	if it.i >= it.l.Len() {
		return Output{}, false
	}
	v := it.l.At(it.i)
	it.i++
	return ValueOutput(v), true
}

func (it *listIterator) SizeHint() int {
	remaining := it.l.Len() - it.i
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (it *listIterator) MakeCopy() Iterator {
	return &listIterator{l: it.l, i: it.i}
}

// tupleIterator walks a value.Tuple by index.
type tupleIterator struct {
	t value.Tuple
	i int
}

// NewTuple returns an Iterator over a Tuple's elements, in order.
func NewTuple(t value.Tuple) Iterator { return &tupleIterator{t: t} }

func (it *tupleIterator) Next() (Output, bool) {
	if it.i >= len(it.t) {
		return Output{}, false
	}
	v := it.t[it.i]
	it.i++
	return ValueOutput(v), true
}

func (it *tupleIterator) SizeHint() int {
	remaining := len(it.t) - it.i
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (it *tupleIterator) MakeCopy() Iterator { return &tupleIterator{t: it.t, i: it.i} }

// stringIterator walks a Str one extended grapheme cluster at a time.
type stringIterator struct {
	graphemes []string
	i         int
}

// NewString returns an Iterator over a Str's grapheme clusters.
func NewString(s value.Str) Iterator {
	return &stringIterator{graphemes: s.Graphemes()}
}

func (it *stringIterator) Next() (Output, bool) {
	if it.i >= len(it.graphemes) {
		return Output{}, false
	}
	g := it.graphemes[it.i]
	it.i++
	return ValueOutput(value.NewStr(g)), true
}

func (it *stringIterator) SizeHint() int {
	remaining := len(it.graphemes) - it.i
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (it *stringIterator) MakeCopy() Iterator {
	return &stringIterator{graphemes: it.graphemes, i: it.i}
}

// rangeIterator walks a value.Range one unit step at a time, ascending or
// descending.
type rangeIterator struct {
	current int
	end     int
	step    int
	done    bool
}

// NewRange returns an Iterator over a Range's integers.
func NewRange(r value.Range) Iterator {
	step := 1
	if !r.IsAscending() {
		step = -1
	}
	return &rangeIterator{current: r.Start, end: r.End, step: step, done: r.IsEmpty()}
}

func (it *rangeIterator) Next() (Output, bool) {
	if it.done {
		return Output{}, false
	}
	if it.current == it.end {
		it.done = true
		return Output{}, false
	}
	v := it.current
	it.current += it.step
	return ValueOutput(value.Int(int64(v))), true
}

func (it *rangeIterator) SizeHint() int {
	if it.done {
		return 0
	}
	if it.step > 0 {
		return it.end - it.current
	}
	return it.current - it.end
}

func (it *rangeIterator) MakeCopy() Iterator {
	cp := *it
	return &cp
}

// mapIterator yields ValuePair(key, value) in a Map's insertion order.
type mapIterator struct {
	keys   []value.Value
	m      *value.Map
	i      int
}

// NewMap returns an Iterator over a Map's entries, as key/value pairs.
func NewMap(m *value.Map) Iterator {
	return &mapIterator{keys: m.Keys(), m: m}
}

func (it *mapIterator) Next() (Output, bool) {
	for it.i < len(it.keys) {
		k := it.keys[it.i]
		it.i++
		if v, ok := it.m.Get(k); ok {
			return PairOutput(k, v), true
		}
		// The key was deleted from the map since the snapshot was taken;
		// skip it and keep looking, matching "insertion order of what's
		// still present".
	}
	return Output{}, false
}

func (it *mapIterator) SizeHint() int {
	remaining := 0
	for _, k := range it.keys[it.i:] {
		if _, ok := it.m.Get(k); ok {
			remaining++
		}
	}
	return remaining
}

func (it *mapIterator) MakeCopy() Iterator {
	return &mapIterator{keys: it.keys, m: it.m, i: it.i}
}

// num2Iterator yields a Num2's two components.
type num2Iterator struct {
	n value.Num2
	i int
}

// NewNum2 returns an Iterator over a Num2's two numbers.
func NewNum2(n value.Num2) Iterator { return &num2Iterator{n: n} }

func (it *num2Iterator) Next() (Output, bool) {
	if it.i >= 2 {
		return Output{}, false
	}
	v := it.n[it.i]
	it.i++
	return ValueOutput(value.Float(v)), true
}

func (it *num2Iterator) SizeHint() int {
	remaining := 2 - it.i
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (it *num2Iterator) MakeCopy() Iterator { return &num2Iterator{n: it.n, i: it.i} }

// num4Iterator yields a Num4's four components.
type num4Iterator struct {
	n value.Num4
	i int
}

// NewNum4 returns an Iterator over a Num4's four numbers.
func NewNum4(n value.Num4) Iterator { return &num4Iterator{n: n} }

func (it *num4Iterator) Next() (Output, bool) {
	if it.i >= 4 {
		return Output{}, false
	}
	v := it.n[it.i]
	it.i++
	return ValueOutput(value.Float(float64(v))), true
}

func (it *num4Iterator) SizeHint() int {
	remaining := 4 - it.i
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (it *num4Iterator) MakeCopy() Iterator { return &num4Iterator{n: it.n, i: it.i} }
