package iterator

import (
	"fmt"

	"github.com/koto-lang/koto/value"
)

// Reversible is implemented by iterators whose remaining elements can be
// walked backward. Reversed (below) requires it: reversing an unbounded
// or one-shot source fails at construction rather than at first pull.
type Reversible interface {
	Iterator
	Reverse() Iterator
}

// valuesIterator is a simple materialized-slice iterator, used as the
// concrete result of reversing a container iterator and as scratch
// storage by a few adaptors below.
type valuesIterator struct {
	vals []value.Value
	i    int
}

func newValuesIterator(vals []value.Value) *valuesIterator {
	return &valuesIterator{vals: vals}
}

func (it *valuesIterator) Next() (Output, bool) {
	if it.i >= len(it.vals) {
		return Output{}, false
	}
	v := it.vals[it.i]
	it.i++
	return ValueOutput(v), true
}

func (it *valuesIterator) SizeHint() int {
	remaining := len(it.vals) - it.i
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (it *valuesIterator) MakeCopy() Iterator {
	return &valuesIterator{vals: it.vals, i: it.i}
}

func (it *valuesIterator) Reverse() Iterator {
	remaining := it.vals[it.i:]
	reversed := make([]value.Value, len(remaining))
	for i, v := range remaining {
		reversed[len(remaining)-1-i] = v
	}
	return newValuesIterator(reversed)
}

func remainingValues(it Iterator) []value.Value {
	result := make([]value.Value, 0, it.SizeHint())
	for out, ok := it.Next(); ok; out, ok = it.Next() {
		o := CollectPair(out)
		if o.Kind == KindValue {
			result = append(result, o.Value)
		}
	}
	return result
}

func (it *listIterator) Reverse() Iterator  { return newValuesIterator(remainingValues(it)).Reverse() }
func (it *tupleIterator) Reverse() Iterator { return newValuesIterator(remainingValues(it)).Reverse() }
func (it *stringIterator) Reverse() Iterator {
	return newValuesIterator(remainingValues(it)).Reverse()
}
func (it *rangeIterator) Reverse() Iterator { return newValuesIterator(remainingValues(it)).Reverse() }

// NewReversed builds the Reversed adaptor. It errors at construction if
// src isn't Reversible.
func NewReversed(src Iterator) (Iterator, error) {
	if rv, ok := src.(Reversible); ok {
		return rv.Reverse(), nil
	}
	return nil, fmt.Errorf("the iterator's source does not support reversal")
}

// Chain concatenates two iterators.
type Chain struct {
	a, b     Iterator
	onSecond bool
}

func NewChain(a, b Iterator) *Chain { return &Chain{a: a, b: b} }

func (c *Chain) Next() (Output, bool) {
	if !c.onSecond {
		if out, ok := c.a.Next(); ok {
			return out, true
		}
		c.onSecond = true
	}
	return c.b.Next()
}

func (c *Chain) SizeHint() int { return c.a.SizeHint() + c.b.SizeHint() }

func (c *Chain) MakeCopy() Iterator {
	return &Chain{a: c.a.MakeCopy(), b: c.b.MakeCopy(), onSecond: c.onSecond}
}

// Chunks groups the source into tuples of up to n items; the final chunk
// may be shorter.
type Chunks struct {
	src Iterator
	n   int
}

// NewChunks builds the Chunks adaptor; n must be > 0.
func NewChunks(src Iterator, n int) (*Chunks, error) {
	if n <= 0 {
		return nil, fmt.Errorf("chunk size must be greater than zero")
	}
	return &Chunks{src: src, n: n}, nil
}

func (c *Chunks) Next() (Output, bool) {
	chunk := make(value.Tuple, 0, c.n)
	for len(chunk) < c.n {
		out, ok := c.src.Next()
		if !ok {
			break
		}
		if out.Kind == KindError {
			return out, true
		}
		chunk = append(chunk, CollectPair(out).Value)
	}
	if len(chunk) == 0 {
		return Output{}, false
	}
	return ValueOutput(chunk), true
}

func (c *Chunks) SizeHint() int {
	hint := c.src.SizeHint()
	return (hint + c.n - 1) / c.n
}

func (c *Chunks) MakeCopy() Iterator { return &Chunks{src: c.src.MakeCopy(), n: c.n} }

// Windows yields overlapping tuples of exactly n items.
type Windows struct {
	src    Iterator
	n      int
	buf    []value.Value
	primed bool
}

// NewWindows builds the Windows adaptor; n must be > 0.
func NewWindows(src Iterator, n int) (*Windows, error) {
	if n <= 0 {
		return nil, fmt.Errorf("window size must be greater than zero")
	}
	return &Windows{src: src, n: n}, nil
}

func (w *Windows) Next() (Output, bool) {
	if !w.primed {
		w.primed = true
		w.buf = make([]value.Value, 0, w.n)
		for len(w.buf) < w.n {
			out, ok := w.src.Next()
			if !ok {
				return Output{}, false
			}
			if out.Kind == KindError {
				return out, true
			}
			w.buf = append(w.buf, CollectPair(out).Value)
		}
		return ValueOutput(append(value.Tuple{}, w.buf...)), true
	}

	out, ok := w.src.Next()
	if !ok {
		return Output{}, false
	}
	if out.Kind == KindError {
		return out, true
	}
	w.buf = append(w.buf[1:], CollectPair(out).Value)
	return ValueOutput(append(value.Tuple{}, w.buf...)), true
}

func (w *Windows) SizeHint() int {
	hint := w.src.SizeHint()
	if !w.primed {
		hint -= w.n - 1
	}
	if hint < 0 {
		return 0
	}
	return hint
}

func (w *Windows) MakeCopy() Iterator {
	bufCopy := append([]value.Value{}, w.buf...)
	return &Windows{src: w.src.MakeCopy(), n: w.n, buf: bufCopy, primed: w.primed}
}

// Cycle replays its source indefinitely. The source is consumed lazily
// and buffered the first time through, then replayed from the buffer so
// a side-effecting source only runs once.
type Cycle struct {
	src        Iterator
	buf        []value.Value
	srcDone    bool
	replayIdx  int
}

// NewCycle builds the Cycle adaptor.
func NewCycle(src Iterator) *Cycle { return &Cycle{src: src} }

func (c *Cycle) Next() (Output, bool) {
	if !c.srcDone {
		out, ok := c.src.Next()
		if ok {
			if out.Kind == KindError {
				return out, true
			}
			v := CollectPair(out).Value
			c.buf = append(c.buf, v)
			return ValueOutput(v), true
		}
		c.srcDone = true
	}
	if len(c.buf) == 0 {
		return Output{}, false
	}
	v := c.buf[c.replayIdx]
	c.replayIdx = (c.replayIdx + 1) % len(c.buf)
	return ValueOutput(v), true
}

func (c *Cycle) SizeHint() int {
	if len(c.buf) > 0 {
		return int(^uint(0) >> 1) // "infinite"
	}
	return c.src.SizeHint()
}

func (c *Cycle) MakeCopy() Iterator {
	bufCopy := append([]value.Value{}, c.buf...)
	return &Cycle{src: c.src.MakeCopy(), buf: bufCopy, srcDone: c.srcDone, replayIdx: c.replayIdx}
}

// Each lazily calls f on every source item.
type Each struct {
	src Iterator
	f   value.Value
	vm  VM
}

// NewEach builds the Each adaptor; vm is a sibling VM handle.
func NewEach(src Iterator, f value.Value, vm VM) *Each { return &Each{src: src, f: f, vm: vm} }

func (e *Each) Next() (Output, bool) {
	out, ok := e.src.Next()
	if !ok {
		return Output{}, false
	}
	if out.Kind == KindError {
		return out, true
	}
	result, err := e.vm.RunFunction(e.f, callArgsFor(out))
	if err != nil {
		return ErrorOutput(err), true
	}
	return ValueOutput(result), true
}

func (e *Each) SizeHint() int { return e.src.SizeHint() }

func (e *Each) MakeCopy() Iterator { return &Each{src: e.src.MakeCopy(), f: e.f, vm: e.vm} }

func callArgsFor(out Output) CallArgs {
	if out.Kind == KindPair {
		return CallAsTuple(out.Key, out.Value)
	}
	return CallSingle(out.Value)
}

// Enumerate yields PairOutput(index, item).
type Enumerate struct {
	src Iterator
	i   int
}

func NewEnumerate(src Iterator) *Enumerate { return &Enumerate{src: src} }

func (e *Enumerate) Next() (Output, bool) {
	out, ok := e.src.Next()
	if !ok {
		return Output{}, false
	}
	if out.Kind == KindError {
		return out, true
	}
	v := CollectPair(out).Value
	i := e.i
	e.i++
	return PairOutput(value.Int(int64(i)), v), true
}

func (e *Enumerate) SizeHint() int { return e.src.SizeHint() }

func (e *Enumerate) MakeCopy() Iterator { return &Enumerate{src: e.src.MakeCopy(), i: e.i} }

// Flatten removes one level of nesting: each source item must itself be
// iterable, and its elements are yielded in turn.
type Flatten struct {
	src Iterator
	vm  VM
	cur Iterator
}

func NewFlatten(src Iterator, vm VM) *Flatten { return &Flatten{src: src, vm: vm} }

func (f *Flatten) Next() (Output, bool) {
	for {
		if f.cur != nil {
			if out, ok := f.cur.Next(); ok {
				return out, true
			}
			f.cur = nil
		}
		out, ok := f.src.Next()
		if !ok {
			return Output{}, false
		}
		if out.Kind == KindError {
			return out, true
		}
		v := CollectPair(out).Value
		if !value.IsIterable(v) {
			return ErrorOutput(fmt.Errorf("flatten: expected an iterable value, found '%s'", v.Type())), true
		}
		sub, err := f.vm.MakeIterator(v)
		if err != nil {
			return ErrorOutput(err), true
		}
		f.cur = sub
	}
}

func (f *Flatten) SizeHint() int {
	if f.cur != nil {
		return f.cur.SizeHint()
	}
	return 0
}

func (f *Flatten) MakeCopy() Iterator {
	var curCopy Iterator
	if f.cur != nil {
		curCopy = f.cur.MakeCopy()
	}
	return &Flatten{src: f.src.MakeCopy(), vm: f.vm, cur: curCopy}
}

// Intersperse emits a separator value between every two source items; no
// trailing separator is emitted.
type Intersperse struct {
	src       Iterator
	sep       value.Value
	pending   Output
	havePend  bool
	emitSep   bool
	exhausted bool
}

func NewIntersperse(src Iterator, sep value.Value) *Intersperse {
	return &Intersperse{src: src, sep: sep}
}

func (a *Intersperse) Next() (Output, bool) {
	if a.exhausted {
		return Output{}, false
	}
	if a.emitSep {
		a.emitSep = false
		return ValueOutput(a.sep), true
	}
	if a.havePend {
		out := a.pending
		a.havePend = false
		next, ok := a.src.Next()
		if ok {
			a.pending = next
			a.havePend = true
			a.emitSep = out.Kind != KindError
		} else {
			a.exhausted = true
		}
		return out, true
	}
	out, ok := a.src.Next()
	if !ok {
		a.exhausted = true
		return Output{}, false
	}
	a.pending = out
	a.havePend = true
	return a.Next()
}

func (a *Intersperse) SizeHint() int {
	n := a.src.SizeHint()
	if n == 0 {
		return 0
	}
	return 2*n - 1
}

func (a *Intersperse) MakeCopy() Iterator {
	cp := *a
	cp.src = a.src.MakeCopy()
	return &cp
}

// IntersperseWith is Intersperse, but the separator is produced by calling
// a separator function before each interleave.
type IntersperseWith struct {
	src      Iterator
	sepFn    value.Value
	vm       VM
	pending  Output
	havePend bool
	emitSep  bool
}

func NewIntersperseWith(src Iterator, sepFn value.Value, vm VM) *IntersperseWith {
	return &IntersperseWith{src: src, sepFn: sepFn, vm: vm}
}

func (a *IntersperseWith) Next() (Output, bool) {
	if a.emitSep {
		a.emitSep = false
		sep, err := a.vm.RunFunction(a.sepFn, CallArgs{})
		if err != nil {
			return ErrorOutput(err), true
		}
		return ValueOutput(sep), true
	}
	if a.havePend {
		out := a.pending
		a.havePend = false
		next, ok := a.src.Next()
		if ok {
			a.pending = next
			a.havePend = true
			a.emitSep = out.Kind != KindError
		}
		return out, true
	}
	out, ok := a.src.Next()
	if !ok {
		return Output{}, false
	}
	a.pending = out
	a.havePend = true
	return a.Next()
}

func (a *IntersperseWith) SizeHint() int {
	n := a.src.SizeHint()
	if n == 0 {
		return 0
	}
	return 2*n - 1
}

func (a *IntersperseWith) MakeCopy() Iterator {
	return &IntersperseWith{src: a.src.MakeCopy(), sepFn: a.sepFn, vm: a.vm, pending: a.pending, havePend: a.havePend, emitSep: a.emitSep}
}

// Keep lazily filters the source by a predicate function.
type Keep struct {
	src  Iterator
	pred value.Value
	vm   VM
}

func NewKeep(src Iterator, pred value.Value, vm VM) *Keep { return &Keep{src: src, pred: pred, vm: vm} }

func (k *Keep) Next() (Output, bool) {
	for {
		out, ok := k.src.Next()
		if !ok {
			return Output{}, false
		}
		if out.Kind == KindError {
			return out, true
		}
		result, err := k.vm.RunFunction(k.pred, callArgsFor(out))
		if err != nil {
			return ErrorOutput(err), true
		}
		b, isBool := result.(value.Bool)
		if !isBool {
			return ErrorOutput(fmt.Errorf("expected a Bool to be returned from the predicate, found '%s'", result.Type())), true
		}
		if bool(b) {
			return out, true
		}
	}
}

func (k *Keep) SizeHint() int { return 0 }

func (k *Keep) MakeCopy() Iterator { return &Keep{src: k.src.MakeCopy(), pred: k.pred, vm: k.vm} }

// Take yields the first n items of the source.
type Take struct {
	src     Iterator
	remain  int
}

func NewTake(src Iterator, n int) *Take { return &Take{src: src, remain: n} }

func (t *Take) Next() (Output, bool) {
	if t.remain <= 0 {
		return Output{}, false
	}
	out, ok := t.src.Next()
	if !ok {
		t.remain = 0
		return Output{}, false
	}
	t.remain--
	return out, true
}

func (t *Take) SizeHint() int {
	hint := t.src.SizeHint()
	if hint < t.remain {
		return hint
	}
	return t.remain
}

func (t *Take) MakeCopy() Iterator { return &Take{src: t.src.MakeCopy(), remain: t.remain} }

// Zip pulls from the left source before the right within each step, and
// stops at the shorter of the two.
type Zip struct {
	a, b Iterator
}

func NewZip(a, b Iterator) *Zip { return &Zip{a: a, b: b} }

func (z *Zip) Next() (Output, bool) {
	outA, ok := z.a.Next()
	if !ok {
		return Output{}, false
	}
	if outA.Kind == KindError {
		return outA, true
	}
	outB, ok := z.b.Next()
	if !ok {
		return Output{}, false
	}
	if outB.Kind == KindError {
		return outB, true
	}
	return PairOutput(CollectPair(outA).Value, CollectPair(outB).Value), true
}

func (z *Zip) SizeHint() int {
	ha, hb := z.a.SizeHint(), z.b.SizeHint()
	if ha < hb {
		return ha
	}
	return hb
}

func (z *Zip) MakeCopy() Iterator { return &Zip{a: z.a.MakeCopy(), b: z.b.MakeCopy()} }
