package corelib

import "github.com/koto-lang/koto/value"

// registerKoto builds the "koto" namespace map: introspection and
// host-environment access that doesn't belong to a specific data kind.
func registerKoto(h *host) *value.Map {
	m := value.NewMap()
	put := func(name string, body func(args []value.Value) (value.Value, error)) {
		m.Insert(value.NewStr(name), fn(name, body))
	}

	elems := make(value.Tuple, len(h.scriptArgs))
	for i, a := range h.scriptArgs {
		elems[i] = value.NewStr(a)
	}
	m.Insert(value.NewStr("args"), elems)

	scriptDir := value.Value(value.NullValue)
	if h.scriptDir != "" {
		scriptDir = value.NewStr(h.scriptDir)
	}
	m.Insert(value.NewStr("script_dir"), scriptDir)

	scriptPath := value.Value(value.NullValue)
	if h.scriptPath != "" {
		scriptPath = value.NewStr(h.scriptPath)
	}
	m.Insert(value.NewStr("script_path"), scriptPath)

	put("exports", func(args []value.Value) (value.Value, error) {
		return h.v.Exports(), nil
	})

	put("type", func(args []value.Value) (value.Value, error) {
		if len(args) < 1 {
			return nil, argErr("a value", args, 0)
		}
		return value.NewStr(value.TypeName(args[0])), nil
	})

	return m
}
