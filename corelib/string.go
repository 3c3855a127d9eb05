package corelib

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/koto-lang/koto/iterator"
	"github.com/koto-lang/koto/value"
	"github.com/koto-lang/koto/vm"
)

func strArg(args []value.Value, i int) (value.Str, error) {
	if i >= len(args) {
		return value.Str{}, argErr("String", args, i)
	}
	s, ok := args[i].(value.Str)
	if !ok {
		return value.Str{}, argErr("String", args, i)
	}
	return s, nil
}

// registerString builds the "string" namespace map.
func registerString(h *host) *value.Map {
	m := value.NewMap()
	put := func(name string, body func(args []value.Value) (value.Value, error)) {
		m.Insert(value.NewStr(name), fn(name, body))
	}

	put("bytes", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(iterator.NewBytes(s)), nil
	})

	put("chars", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(iterator.NewString(s)), nil
	})

	put("lines", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(iterator.NewLines(s)), nil
	})

	put("size", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Int(int64(s.GraphemeCount())), nil
	})

	put("is_empty", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.Bool(s.IsEmpty()), nil
	})

	put("contains", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		pat, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.Contains(s.Go(), pat.Go())), nil
	})

	put("starts_with", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		pat, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.HasPrefix(s.Go(), pat.Go())), nil
	})

	put("ends_with", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		pat, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		return value.Bool(strings.HasSuffix(s.Go(), pat.Go())), nil
	})

	put("to_lowercase", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.NewStr(strings.ToLower(s.Go())), nil
	})

	put("to_uppercase", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.NewStr(strings.ToUpper(s.Go())), nil
	})

	put("replace", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		from, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		to, err := strArg(args, 2)
		if err != nil {
			return nil, err
		}
		return value.NewStr(strings.ReplaceAll(s.Go(), from.Go(), to.Go())), nil
	})

	put("escape", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.NewStr(strconv.Quote(s.Go())), nil
	})

	// trim strips leading/trailing whitespace (unicode.IsSpace) by scanning
	// from both ends; the result is a substring of the original, or the
	// empty string if the input is all whitespace.
	put("trim", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		return value.NewStr(strings.TrimFunc(s.Go(), unicode.IsSpace)), nil
	})

	put("split", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		if len(args) < 2 {
			return nil, argErr("a separator string or predicate", args, 1)
		}
		if value.IsCallable(args[1]) {
			return iterator.NewValue(iterator.NewSplitWith(s, args[1], h.v.SpawnVm())), nil
		}
		sep, err := strArg(args, 1)
		if err != nil {
			return nil, err
		}
		return iterator.NewValue(iterator.NewSplit(s, sep.Go())), nil
	})

	put("to_number", func(args []value.Value) (value.Value, error) {
		s, err := strArg(args, 0)
		if err != nil {
			return nil, err
		}
		if i, err := strconv.ParseInt(s.Go(), 10, 64); err == nil {
			return value.Int(i), nil
		}
		if f, err := strconv.ParseFloat(s.Go(), 64); err == nil {
			return value.Float(f), nil
		}
		return nil, vm.NewRuntimeError("'%s' is not a valid number", s.Go())
	})

	put("from_bytes", func(args []value.Value) (value.Value, error) {
		it, err := h.iterOf(args, 0)
		if err != nil {
			return nil, err
		}
		var buf []byte
		err = iterator.Drain(it, func(out iterator.Output) (bool, error) {
			n, ok := iterator.CollectPair(out).Value.(value.Number)
			if !ok {
				return false, vm.NewTypeError("Number", value.TypeName(iterator.CollectPair(out).Value))
			}
			b := n.AsI64()
			if b < 0 || b > 255 {
				return false, vm.NewRuntimeError("byte value %d is out of range", b)
			}
			buf = append(buf, byte(b))
			return true, nil
		})
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(buf) {
			return nil, vm.NewRuntimeError("invalid UTF-8 data")
		}
		return value.NewStr(string(buf)), nil
	})

	return m
}
