package corelib

import (
	"github.com/koto-lang/koto/iterator"
	"github.com/koto-lang/koto/value"
	"github.com/koto-lang/koto/vm"
)

func num4Arg(args []value.Value, i int) (value.Num4, error) {
	if i >= len(args) {
		return value.Num4{}, argErr("Num4", args, i)
	}
	n, ok := args[i].(value.Num4)
	if !ok {
		return value.Num4{}, argErr("Num4", args, i)
	}
	return n, nil
}

// registerNum4 builds the "num4" namespace map.
func registerNum4(h *host) *value.Map {
	m := value.NewMap()
	put := func(name string, body func(args []value.Value) (value.Value, error)) {
		m.Insert(value.NewStr(name), fn(name, body))
	}

	// make_num4 accepts 1-4 numbers (missing default to 0), a Num2
	// (promoted with zeros), another Num4, or any iterable (taking up to
	// the first four numbers).
	put("make_num4", func(args []value.Value) (value.Value, error) {
		if len(args) == 1 {
			switch v := args[0].(type) {
			case value.Num4:
				return v, nil
			case value.Num2:
				return value.Num4{float32(v[0]), float32(v[1]), 0, 0}, nil
			case value.Number:
				f := float32(v.AsF64())
				return value.Num4{f, f, f, f}, nil
			}
			if value.IsIterable(args[0]) {
				it, err := h.v.MakeIterator(args[0])
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
			}
			return nil, argErr("a Number, Num2, Num4, or iterable", args, 0)
		}

		var n value.Num4
		for i := 0; i < 4 && i < len(args); i++ {
			num, ok := args[i].(value.Number)
			if !ok {
				return nil, argErr("Number", args, i)
			}
			n[i] = float32(num.AsF64())
		}
		return n, nil
	})

	put("length", func(args []value.Value) (value.Value, error) {
		n, err := num4Arg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Float(n.Length()), nil
	})

	put("normalize", func(args []value.Value) (value.Value, error) {
		n, err := num4Arg(args, 0)
		if err != nil {
			return nil, err
		}
		return n.Normalize(), nil
	})

	put("min", func(args []value.Value) (value.Value, error) {
		n, err := num4Arg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Float(float64(n.Min())), nil
	})

	put("max", func(args []value.Value) (value.Value, error) {
		n, err := num4Arg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Float(float64(n.Max())), nil
	})

	put("sum", func(args []value.Value) (value.Value, error) {
		n, err := num4Arg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Float(n.Sum()), nil
	})

	put("product", func(args []value.Value) (value.Value, error) {
		n, err := num4Arg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Float(n.Product()), nil
	})

	put("with", func(args []value.Value) (value.Value, error) {
		n, err := num4Arg(args, 0)
		if err != nil {
			return nil, err
		}
		idx, err := number(args, 1)
		if err != nil {
			return nil, err
		}
		val, err := number(args, 2)
		if err != nil {
			return nil, err
		}
		result, ok := n.With(int(idx.AsI64()), float32(val.AsF64()))
		if !ok {
			return nil, vm.NewRuntimeError("invalid num4 index %d", idx.AsI64())
		}
		return result, nil
	})

	put("lerp", func(args []value.Value) (value.Value, error) {
		a, err := num4Arg(args, 0)
		if err != nil {
			return nil, err
		}
		b, err := num4Arg(args, 1)
		if err != nil {
			return nil, err
		}
		t, err := number(args, 2)
		if err != nil {
			return nil, err
		}
		return value.Num4Lerp(a, b, t.AsF64()), nil
	})

	component := func(name string, i int) {
		put(name, func(args []value.Value) (value.Value, error) {
			n, err := num4Arg(args, 0)
			if err != nil {
				return nil, err
			}
			return value.Float(float64(n[i])), nil
		})
	}
	component("x", 0)
	component("y", 1)
	component("z", 2)
	component("w", 3)
	component("r", 0)
	component("g", 1)
	component("b", 2)
	component("a", 3)

	return m
}
