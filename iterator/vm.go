package iterator

import "github.com/koto-lang/koto/value"

// BinaryOp names a VM binary operator: min/max/min_max use '<',
// sum/product use '+'/'*'.
type BinaryOp int

const (
	Add BinaryOp = iota
	Multiply
	Less
)

// CallArgs describes how an iterator adaptor hands arguments to a
// user-supplied callable, mirroring CallArgs in the Rust original's
// core/iterator.rs:
//
//   - Single:   f(x)            -- one positional argument
//   - AsTuple:  f(a, b)         -- a ValuePair split into two positional args
//   - Separate: f(acc, x)       -- two independent positional arguments (fold)
type CallArgs struct {
	kind   callArgsKind
	single value.Value
	multi  []value.Value
}

type callArgsKind int

const (
	callNone callArgsKind = iota
	callSingle
	callAsTuple
	callSeparate
)

// CallSingle builds CallArgs for a single positional argument.
func CallSingle(v value.Value) CallArgs { return CallArgs{kind: callSingle, single: v} }

// CallAsTuple builds CallArgs for a ValuePair split into two positional
// arguments.
func CallAsTuple(a, b value.Value) CallArgs {
	return CallArgs{kind: callAsTuple, multi: []value.Value{a, b}}
}

// CallSeparate builds CallArgs for independently-supplied positional
// arguments, e.g. fold's (accumulator, item).
func CallSeparate(args ...value.Value) CallArgs {
	return CallArgs{kind: callSeparate, multi: args}
}

// Args returns the positional argument slice that a VM should pass to the
// callee.
func (c CallArgs) Args() []value.Value {
	switch c.kind {
	case callNone:
		return nil
	case callSingle:
		return []value.Value{c.single}
	default:
		return c.multi
	}
}

// VM is the subset of the VM façade that iterator adaptors and generators
// need: running a user callable, running a binary operator, building an
// iterator from any iterable value, and spawning a sibling VM handle for
// re-entrant evaluation. It's declared here, as a consumer-side
// interface, so that this package never needs to import the vm package;
// *vm.Vm satisfies it structurally.
type VM interface {
	// RunFunction calls a callable value with the given arguments.
	RunFunction(f value.Value, args CallArgs) (value.Value, error)
	// RunBinaryOp evaluates op on (a, b).
	RunBinaryOp(op BinaryOp, a, b value.Value) (value.Value, error)
	// MakeIterator builds an Iterator from any iterable value.
	MakeIterator(v value.Value) (Iterator, error)
	// Spawn returns a sibling VM handle sharing globals but with an
	// independent call stack.
	Spawn() VM
}
