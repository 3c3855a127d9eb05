// Package corelib implements Koto's core library modules — iterator,
// string, num4, koto — as host-registered ExternalFunction values,
// following starlark.NewBuiltin's pattern of wrapping a Go closure as a
// callable runtime value (_examples/canonical-starlark/starlark/value.go).
package corelib

import (
	"github.com/koto-lang/koto/iterator"
	"github.com/koto-lang/koto/value"
	"github.com/koto-lang/koto/vm"
)

// host is the Vm a corelib function was registered against; its sibling
// (host.SpawnVm()) is handed to adaptors that invoke user callbacks, so
// that those callbacks run with their own call-depth counter.
// scriptArgs/scriptDir/scriptPath back the koto.args/script_dir/script_path
// entries (plain values, not functions) and are set once by Register.
type host struct {
	v          *vm.Vm
	scriptArgs []string
	scriptDir  string
	scriptPath string
}

func fn(name string, body func(args []value.Value) (value.Value, error)) *value.ExternalFunction {
	return &value.ExternalFunction{Name: name, Body: body}
}

func argErr(want string, args []value.Value, i int) error {
	if i >= len(args) {
		return vm.NewRuntimeError("missing argument %d (expected %s)", i, want)
	}
	return vm.NewTypeError(want, value.TypeName(args[i]))
}

func (h *host) iterOf(args []value.Value, i int) (iterator.Iterator, error) {
	if i >= len(args) {
		return nil, argErr("an iterable value", args, i)
	}
	return h.v.MakeIterator(args[i])
}

func number(args []value.Value, i int) (value.Number, error) {
	if i >= len(args) {
		return value.Number{}, argErr("Number", args, i)
	}
	n, ok := args[i].(value.Number)
	if !ok {
		return value.Number{}, argErr("Number", args, i)
	}
	return n, nil
}

// registerIterator builds the "iterator" namespace map.
func registerIterator(h *host) *value.Map {
	m := value.NewMap()
	put := func(name string, body func(args []value.Value) (value.Value, error)) {
		m.Insert(value.NewStr(name), fn(name, body))
	}

	put("iter", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(it), nil
	})

	put("next", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		out, ok := it.Next()
		if !ok {
			return value.NullValue, nil
		}
		if out.Kind == iterator.KindError {
			return nil, out.Err
		}
		return iterator.CollectPair(out).Value, nil
	})

	put("all", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, argErr("a predicate function", args, 1)
		}
		pred := args[1]
		sib := h.v.SpawnVm()
		result := true
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			v, err := sib.RunFunction(pred, callArgsFor(out))
			if err != nil {
				return false, err
			}
			b, ok := v.(value.Bool)
			if !ok {
				return false, vm.NewTypeError("Bool", value.TypeName(v))
			}
			if !bool(b) {
				result = false
				return false, nil
			}
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return value.Bool(result), nil
	})

	put("any", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, argErr("a predicate function", args, 1)
		}
		pred := args[1]
		sib := h.v.SpawnVm()
		result := false
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			v, err := sib.RunFunction(pred, callArgsFor(out))
			if err != nil {
				return false, err
			}
			b, ok := v.(value.Bool)
			if !ok {
				return false, vm.NewTypeError("Bool", value.TypeName(v))
			}
			if bool(b) {
				result = true
				return false, nil
			}
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return value.Bool(result), nil
	})

	put("chain", func(args []value.Value) (value.Value, error) {
		a, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := h.iterOf(args, 1)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(iterator.NewChain(a, b)), nil
	})

	put("chunks", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		n, err := number(args, 1)
		if err != nil {
			return nil, err
		}
		c, err := iterator.NewChunks(it, int(n.AsI64()))
		if err != nil {
			return nil, vm.NewRuntimeError("%s", err.Error())
		}
		return iterator.NewValue(c), nil
	})

	put("windows", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		n, err := number(args, 1)
		if err != nil {
			return nil, err
		}
		w, err := iterator.NewWindows(it, int(n.AsI64()))
		if err != nil {
			return nil, vm.NewRuntimeError("%s", err.Error())
		}
		return iterator.NewValue(w), nil
	})

	put("consume", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) >= 2 {
			sib := h.v.SpawnVm()
			f := args[1]
			err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
				_, err := sib.RunFunction(f, callArgsFor(out))
				return err == nil, err
			})
		} else {
			err = iterator.Drain(it, func(iterator.Output) (bool, error) { return true, nil })
		}
		if err != nil {
			return nil, err
		}
		return value.NullValue, nil
	})

	put("copy", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(it.MakeCopy()), nil
	})

	put("count", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		n := 0
		err = iterator.Drain(it, func(iterator.Output) (bool, error) { n++; return true, nil })
		if err != nil {
			return nil, err
		}
		return value.Int(int64(n)), nil
	})

	put("cycle", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(iterator.NewCycle(it)), nil
	})

	put("each", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, argErr("a function", args, 1)
		}
		return iterator.NewValue(iterator.NewEach(it, args[1], h.v.SpawnVm())), nil
	})

	put("enumerate", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(iterator.NewEnumerate(it)), nil
	})

	put("find", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, argErr("a predicate function", args, 1)
		}
		sib := h.v.SpawnVm()
		var found value.Value = value.NullValue
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			v, err := sib.RunFunction(args[1], callArgsFor(out))
			if err != nil {
				return false, err
			}
			b, ok := v.(value.Bool)
			if !ok {
				return false, vm.NewTypeError("Bool", value.TypeName(v))
			}
			if bool(b) {
				found = iterator.CollectPair(out).Value
				return false, nil
			}
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return found, nil
	})

	put("flatten", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(iterator.NewFlatten(it, h.v.SpawnVm())), nil
	})

	put("fold", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 3 {
			return nil, argErr("an accumulator function", args, 2)
		}
		acc := args[1]
		f := args[2]
		sib := h.v.SpawnVm()
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			v, err := sib.RunFunction(f, iterator.CallSeparate(acc, iterator.CollectPair(out).Value))
			if err != nil {
				return false, err
			}
			acc = v
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return acc, nil
	})

	put("generate", func(args []value.Value) (value.Value, error) {
		if len(args) < 1 {
			return nil, argErr("a function", args, 0)
		}
		if len(args) >= 2 {
			n, err := number(args, 0)
			if err != nil {
				return nil, err
			}
			return iterator.NewValue(iterator.NewGenerateN(args[1], int(n.AsI64()), h.v.SpawnVm())), nil
		}
		return iterator.NewValue(iterator.NewGenerate(args[0], h.v.SpawnVm())), nil
	})

	put("intersperse", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, argErr("a separator", args, 1)
		}
		if value.IsCallable(args[1]) {
			return iterator.NewValue(iterator.NewIntersperseWith(it, args[1], h.v.SpawnVm())), nil
		}
		return iterator.NewValue(iterator.NewIntersperse(it, args[1])), nil
	})

	put("keep", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, argErr("a predicate function", args, 1)
		}
		return iterator.NewValue(iterator.NewKeep(it, args[1], h.v.SpawnVm())), nil
	})

	put("last", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		var last value.Value = value.NullValue
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			last = iterator.CollectPair(out).Value
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return last, nil
	})

	put("max", func(args []value.Value) (value.Value, error) {
		return reduceByLess(h, args, false)
	})
	put("min", func(args []value.Value) (value.Value, error) {
		return reduceByLess(h, args, true)
	})
	put("min_max", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		var keyFn value.Value
		if len(args) >= 2 {
			keyFn = args[1]
		}
		sib := h.v.SpawnVm()

		var min, max, minKey, maxKey value.Value
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			v := iterator.CollectPair(out).Value
			k, err := keyOf(sib, keyFn, v)
			if err != nil {
				return false, err
			}
			if min == nil {
				min, max, minKey, maxKey = v, v, k, k
				return true, nil
			}
			less, err := h.v.RunBinaryOp(iterator.Less, k, minKey)
			if err != nil {
				return false, err
			}
			if bool(less.(value.Bool)) {
				min, minKey = v, k
			}
			greater, err := h.v.RunBinaryOp(iterator.Less, maxKey, k)
			if err != nil {
				return false, err
			}
			if bool(greater.(value.Bool)) {
				max, maxKey = v, k
			}
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		if min == nil {
			return value.NullValue, nil
		}
		return value.Pair(min, max), nil
	})

	put("position", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, argErr("a predicate function", args, 1)
		}
		sib := h.v.SpawnVm()
		i := 0
		found := -1
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			v, err := sib.RunFunction(args[1], callArgsFor(out))
			if err != nil {
				return false, err
			}
			b, ok := v.(value.Bool)
			if !ok {
				return false, vm.NewTypeError("Bool", value.TypeName(v))
			}
			if bool(b) {
				found = i
				return false, nil
			}
			i++
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		if found < 0 {
			return value.NullValue, nil
		}
		return value.Int(int64(found)), nil
	})

	put("product", func(args []value.Value) (value.Value, error) {
		return foldNumeric(h, args, iterator.Multiply, value.Int(1))
	})
	put("sum", func(args []value.Value) (value.Value, error) {
		return foldNumeric(h, args, iterator.Add, value.Int(0))
	})

	put("repeat", func(args []value.Value) (value.Value, error) {
		if len(args) < 1 {
			return nil, argErr("a value", args, 0)
		}
		if len(args) >= 2 {
			n, err := number(args, 1)
			if err != nil {
				return nil, err
			}
			return iterator.NewValue(iterator.NewRepeatN(args[0], int(n.AsI64()))), nil
		}
		return iterator.NewValue(iterator.NewRepeat(args[0])), nil
	})

	put("reversed", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		r, err := iterator.NewReversed(it)
		if err != nil {
			return nil, vm.NewRuntimeError("%s", err.Error())
		}
		return iterator.NewValue(r), nil
	})

	put("skip", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		n, err := number(args, 1)
		if err != nil {
			return nil, err
		}
		if n.AsI64() < 0 {
			return nil, vm.NewRuntimeError("skip expects n >= 0, found %s", n.String())
		}
		for i := int64(0); i < n.AsI64(); i++ {
			out, ok := it.Next()
			if !ok {
				break
			}
			if out.Kind == iterator.KindError {
				return nil, out.Err
			}
		}
		return iterator.NewValue(it), nil
	})

	put("take", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		n, err := number(args, 1)
		if err != nil {
			return nil, err
		}
		if n.AsI64() < 0 {
			return nil, vm.NewRuntimeError("take expects n >= 0, found %s", n.String())
		}
		return iterator.NewValue(iterator.NewTake(it, int(n.AsI64()))), nil
	})

	put("zip", func(args []value.Value) (value.Value, error) {
		a, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := h.iterOf(args, 1)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(iterator.NewZip(a, b)), nil
	})

	put("to_list", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		var elems []value.Value
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			elems = append(elems, iterator.CollectPair(out).Value)
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return value.NewList(elems), nil
	})

	put("to_tuple", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		var elems value.Tuple
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			elems = append(elems, iterator.CollectPair(out).Value)
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return elems, nil
	})

	put("to_string", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		var sb []byte
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			sb = append(sb, iterator.CollectPair(out).Value.String()...)
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return value.NewStr(string(sb)), nil
	})

	put("to_map", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		result := value.NewMap()
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			if out.Kind == iterator.KindPair {
				result.Insert(out.Key, out.Value)
				return true, nil
			}
			if t, ok := out.Value.(value.Tuple); ok && len(t) == 2 {
				result.Insert(t[0], t[1])
				return true, nil
			}
			result.Insert(out.Value, value.NullValue)
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		return result, nil
	})

	put("to_num2", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		var n value.Num2
		for i := 0; i < 2; i++ {
			out, ok := it.Next()
			if !ok {
				break
			}
			if out.Kind == iterator.KindError {
				return nil, out.Err
			}
			num, ok := iterator.CollectPair(out).Value.(value.Number)
			if !ok {
				return nil, vm.NewTypeError("Number", value.TypeName(iterator.CollectPair(out).Value))
			}
			n[i] = num.AsF64()
		}
		return n, nil
	})

	put("to_num4", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		var n value.Num4
		for i := 0; i < 4; i++ {
			out, ok := it.Next()
			if !ok {
				break
			}
			if out.Kind == iterator.KindError {
				return nil, out.Err
			}
			num, ok := iterator.CollectPair(out).Value.(value.Number)
			if !ok {
				return nil, vm.NewTypeError("Number", value.TypeName(iterator.CollectPair(out).Value))
			}
			n[i] = float32(num.AsF64())
		}
		return n, nil
	})

	return m
}

func callArgsFor(out iterator.Output) iterator.CallArgs {
	if out.Kind == iterator.KindPair {
		return iterator.CallAsTuple(out.Key, out.Value)
	}
	return iterator.CallSingle(out.Value)
}

// keyOf computes the comparison key for v, applying the optional key_fn
// via a sibling VM, or falling back to v itself when no key_fn was
// supplied. Callers keep the returned key alongside its value, so key_fn
// runs once per item.
func keyOf(sib *vm.Vm, keyFn value.Value, v value.Value) (value.Value, error) {
	if keyFn == nil {
		return v, nil
	}
	return sib.RunFunction(keyFn, iterator.CallSingle(v))
}

func reduceByLess(h *host, args []value.Value, wantMin bool) (value.Value, error) {
	it, err := h.iterOf(args, 0)
	if err != nil {
		return nil, err
	}
	var keyFn value.Value
	if len(args) >= 2 {
		keyFn = args[1]
	}
	sib := h.v.SpawnVm()

	var best, bestKey value.Value
	err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
		v := iterator.CollectPair(out).Value
		k, err := keyOf(sib, keyFn, v)
		if err != nil {
			return false, err
		}
		if best == nil {
			best, bestKey = v, k
			return true, nil
		}
		var a, b value.Value
		if wantMin {
			a, b = k, bestKey
		} else {
			a, b = bestKey, k
		}
		less, err := h.v.RunBinaryOp(iterator.Less, a, b)
		if err != nil {
			return false, err
		}
		if bool(less.(value.Bool)) {
			best, bestKey = v, k
		}
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	if best == nil {
		return value.NullValue, nil
	}
	return best, nil
}

func foldNumeric(h *host, args []value.Value, op iterator.BinaryOp, start value.Value) (value.Value, error) {
	it, err := h.iterOf(args, 0)
	if err != nil {
		return nil, err
	}
	acc := start
	err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
		v, err := h.v.RunBinaryOp(op, acc, iterator.CollectPair(out).Value)
		if err != nil {
			return false, err
		}
		acc = v
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return acc, nil
}
