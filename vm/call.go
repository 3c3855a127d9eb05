package vm

import (
	"github.com/koto-lang/koto/iterator"
	"github.com/koto-lang/koto/value"
)

// callable is satisfied by every function Value kind except Generator,
// which is driven through the iterator package's coroutine machinery
// instead of returning a single value per call.
type callable interface {
	Call(args []value.Value) (value.Value, error)
}

// call invokes a callable, tracking call depth and recovering a panicking
// host ExternalFunction into a RuntimeError rather than letting it
// propagate across the Vm boundary.
func (vm *Vm) call(f value.Value, args []value.Value) (result value.Value, err error) {
	c, ok := f.(callable)
	if !ok {
		return nil, NewTypeError("a callable value", value.TypeName(f))
	}

	vm.callDepth++
	defer func() { vm.callDepth-- }()
	if vm.callDepth > maxCallDepth {
		return nil, NewRuntimeError("call stack depth exceeded")
	}

	defer func() {
		if r := recover(); r != nil {
			err = wrapHostError(r)
		}
	}()
	return c.Call(args)
}

// RunFunction implements iterator.VM: it dispatches a user or host
// callable with the arguments described by args.
func (vm *Vm) RunFunction(f value.Value, args iterator.CallArgs) (value.Value, error) {
	return vm.call(f, args.Args())
}

// CallGenerator calls a Generator function, returning the Iterator Value
// that drives its body. Unlike RunFunction, this doesn't run
// the body synchronously to completion: it wraps it with
// iterator.NewUserGenerator, which starts the body on its own goroutine
// the first time the iterator is advanced.
func (vm *Vm) CallGenerator(g *value.Generator, args []value.Value) *iterator.Value {
	vm.logger.Debugw("starting generator", "vm", vm.id, "generator", g.Name)
	return iterator.NewValue(iterator.NewUserGenerator(g, args))
}

// RunBinaryOp implements iterator.VM for the handful of operators the
// iterator module's sum/product/min/max need.
func (vm *Vm) RunBinaryOp(op iterator.BinaryOp, a, b value.Value) (value.Value, error) {
	switch op {
	case iterator.Add:
		if na, ok := a.(value.Number); ok {
			if nb, ok := b.(value.Number); ok {
				return na.Add(nb), nil
			}
		}
		if sa, ok := a.(value.Str); ok {
			if sb, ok := b.(value.Str); ok {
				return value.NewStr(sa.Go() + sb.Go()), nil
			}
		}
		return nil, NewRuntimeError("unable to add '%s' and '%s'", value.TypeName(a), value.TypeName(b))
	case iterator.Multiply:
		na, ok := a.(value.Number)
		if !ok {
			return nil, NewTypeError("Number", value.TypeName(a))
		}
		nb, ok := b.(value.Number)
		if !ok {
			return nil, NewTypeError("Number", value.TypeName(b))
		}
		return na.Mul(nb), nil
	case iterator.Less:
		if na, ok := a.(value.Number); ok {
			if nb, ok := b.(value.Number); ok {
				return value.Bool(na.Less(nb)), nil
			}
		}
		if sa, ok := a.(value.Str); ok {
			if sb, ok := b.(value.Str); ok {
				return value.Bool(sa.Go() < sb.Go()), nil
			}
		}
		return nil, NewRuntimeError("unable to compare '%s' and '%s'", value.TypeName(a), value.TypeName(b))
	default:
		return nil, NewRuntimeError("unsupported binary operator")
	}
}

// MakeIterator implements iterator.VM, building an Iterator from any
// iterable Value kind.
func (vm *Vm) MakeIterator(v value.Value) (iterator.Iterator, error) {
	switch t := v.(type) {
	case *iterator.Value:
		return t.Unwrap(), nil
	case *value.List:
		return iterator.NewList(t), nil
	case value.Tuple:
		return iterator.NewTuple(t), nil
	case value.Str:
		return iterator.NewString(t), nil
	case value.Range:
		return iterator.NewRange(t), nil
	case *value.Map:
		return iterator.NewMap(t), nil
	case value.Num2:
		return iterator.NewNum2(t), nil
	case value.Num4:
		return iterator.NewNum4(t), nil
	default:
		return nil, NewTypeError("an iterable value", value.TypeName(v))
	}
}

// Spawn implements iterator.VM by returning a sibling Vm widened to the
// interface type.
func (vm *Vm) Spawn() iterator.VM { return vm.SpawnVm() }

var _ iterator.VM = (*Vm)(nil)
