// Package iterator implements ValueIterator: Koto's polymorphic pull-based
// iterator and the family of adaptors and generators layered on top of it.
//
// The design follows starlark.Iterator (starlark/value.go): a small
// interface with a pull method, used by adaptors that wrap an inner
// iterator the way starlark's listIterator/rangeIterator/etc. do. Koto
// generalizes the pulled item to a three-way Output sum type (Value,
// ValuePair, Error) rather than starlark's single Value, to support maps'
// key/value iteration and mid-iteration error propagation.
package iterator

import "github.com/koto-lang/koto/value"

// OutputKind discriminates an Output's active field.
type OutputKind int

const (
	// KindValue carries a single value.
	KindValue OutputKind = iota
	// KindPair carries a key/value pair (map iteration, enumerate, zip).
	KindPair
	// KindError carries a propagated error.
	KindError
)

// Output is the sum type yielded by Iterator.Next.
type Output struct {
	Kind  OutputKind
	Value value.Value
	Key   value.Value // valid when Kind == KindPair
	Err   error       // valid when Kind == KindError
}

// ValueOutput builds a KindValue Output.
func ValueOutput(v value.Value) Output { return Output{Kind: KindValue, Value: v} }

// PairOutput builds a KindPair Output.
func PairOutput(k, v value.Value) Output { return Output{Kind: KindPair, Key: k, Value: v} }

// ErrorOutput builds a KindError Output.
func ErrorOutput(err error) Output { return Output{Kind: KindError, Err: err} }

// CollectPair folds a ValuePair(k, v) into Value(Tuple(k, v)); it is
// applied wherever downstream code only handles single-value semantics.
func CollectPair(o Output) Output {
	if o.Kind == KindPair {
		return ValueOutput(value.Pair(o.Key, o.Value))
	}
	return o
}

// Iterator is a handle over one of several polymorphic pull-based
// implementations.
type Iterator interface {
	// Next returns the next Output, or ok == false at exhaustion.
	Next() (Output, bool)
	// SizeHint returns a conservative lower-bound element count; it must
	// never exceed the actual remaining count.
	SizeHint() int
	// MakeCopy returns an independent cursor at the same logical position.
	MakeCopy() Iterator
}

// Value wraps an Iterator so that it satisfies value.Value (the Value
// kind "Iterator"). Defined in this package, rather than in value, to
// avoid an import cycle: value doesn't know about Iterator, but Iterator
// needs value.Value for Output's payload.
type Value struct {
	it Iterator
}

// NewValue wraps it as a Koto Value.
func NewValue(it Iterator) *Value { return &Value{it: it} }

// Unwrap returns the underlying Iterator.
func (v *Value) Unwrap() Iterator { return v.it }

func (v *Value) String() string          { return "Iterator" }
func (*Value) Type() string              { return "Iterator" }
func (*Value) IsImmutable() bool         { return false }
func (*Value) IsIteratorValue()          {}
func (v *Value) DeepCopy() value.Value   { return NewValue(v.it.MakeCopy()) }

var _ value.IteratorValue = (*Value)(nil)
var _ value.DeepCopier = (*Value)(nil)

// Next pulls the next output directly from the wrapped Iterator, folding
// exhaustion into an (Output{}, false) pair for range-style use from Go:
//
//	for out, ok := it.Next(); ok; out, ok = it.Next() { ... }
func (v *Value) Next() (Output, bool) { return v.it.Next() }

// Drain exhausts the iterator by repeatedly calling Next, invoking f for
// each Output until f returns an error, f returns false, or the iterator
// is exhausted. Drain returns the first error encountered, either from f
// or propagated from the iterator itself.
func Drain(it Iterator, f func(Output) (bool, error)) error {
	for {
		out, ok := it.Next()
		if !ok {
			return nil
		}
		if out.Kind == KindError {
			return out.Err
		}
		cont, err := f(out)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
}
