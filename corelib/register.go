package corelib

import (
	"github.com/koto-lang/koto/value"
	"github.com/koto-lang/koto/vm"
)

// Settings configures the koto module's host-environment values (args,
// script_dir, script_path); ScriptArgs mirrors the Rust
// original's CLI argument passthrough.
type Settings struct {
	ScriptArgs []string
	ScriptDir  string
	ScriptPath string
}

// Register builds the full prelude map — the "iterator", "string",
// "num4", and "koto" namespace maps keyed by module name — and installs it
// into v's globals, so that a script can call e.g. `iterator.chunks` or
// `x.chunks(3)` (the latter via vm.methodCallExpr's namespace lookup).
func Register(v *vm.Vm, settings Settings) {
	h := &host{
		v:          v,
		scriptArgs: settings.ScriptArgs,
		scriptDir:  settings.ScriptDir,
		scriptPath: settings.ScriptPath,
	}

	globals := v.Globals()
	globals.Insert(value.NewStr("iterator"), registerIterator(h))
	globals.Insert(value.NewStr("string"), registerString(h))
	globals.Insert(value.NewStr("num4"), registerNum4(h))
	globals.Insert(value.NewStr("koto"), registerKoto(h))
}
