// Package vm implements the Koto virtual machine façade: the object a
// host embeds to register library functions, compile and run scripts, and
// drive the sibling-VM/generator-coroutine machinery that the iterator
// package depends on.
package vm

import (
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/koto-lang/koto/value"
)

// Settings holds the host-supplied IO streams a Vm uses for script
// output. Following starlark's Thread.Print hook, these are plain writers
// rather than a fixed stdout dependency, so an embedding host can capture
// script output.
type Settings struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
}

// defaultSettings routes to the process's standard streams.
func defaultSettings() Settings {
	return Settings{Stdout: os.Stdout, Stderr: os.Stderr, Stdin: os.Stdin}
}

// Vm is Koto's script execution handle: one Vm owns a single-threaded,
// non-preemptive call stack, a set of global bindings, and the
// module's exported values. A Vm spawns sibling Vm handles (Spawn) to give
// iterator adaptors and generator coroutines a VM they can run user
// callables on re-entrantly without sharing a call stack with the Vm that
// constructed the iterator.
type Vm struct {
	id       uuid.UUID
	logger   *zap.SugaredLogger
	settings Settings

	globals *value.Map
	exports *value.Map

	callDepth int
	parent    *Vm
}

// Option configures a new Vm.
type Option func(*Vm)

// WithLogger attaches a structured logger; Vm logs sibling-VM spawns and
// generator starts at Debug level (generator suspend/resume is not
// logged). Without this option, or with a nil logger, the Vm uses a no-op
// logger, so logging stays off unless a host supplies one.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(vm *Vm) {
		if logger != nil {
			vm.logger = logger
		}
	}
}

// WithSettings overrides the Vm's IO streams.
func WithSettings(s Settings) Option {
	return func(vm *Vm) { vm.settings = s }
}

// WithGlobals seeds the Vm's global bindings, e.g. with a prelude built by
// corelib.Register.
func WithGlobals(globals *value.Map) Option {
	return func(vm *Vm) { vm.globals = globals }
}

// New builds a Vm ready to run scripts.
func New(opts ...Option) *Vm {
	vm := &Vm{
		id:       uuid.New(),
		logger:   zap.NewNop().Sugar(),
		settings: defaultSettings(),
		globals:  value.NewMap(),
		exports:  value.NewMap(),
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// ID returns the Vm's identity, used to correlate sibling-VM log entries.
func (vm *Vm) ID() uuid.UUID { return vm.id }

// Globals returns the Vm's global binding map.
func (vm *Vm) Globals() *value.Map { return vm.globals }

// Exports returns the Vm's export map, backing the `koto.exports()` core
// function. The stub compiler has no `export` statement, so only the host
// adds entries to it.
func (vm *Vm) Exports() *value.Map { return vm.exports }

// Stdout returns the Vm's output writer.
func (vm *Vm) Stdout() io.Writer { return vm.settings.Stdout }

// Stderr returns the Vm's error writer.
func (vm *Vm) Stderr() io.Writer { return vm.settings.Stderr }

// Stdin returns the Vm's input reader.
func (vm *Vm) Stdin() io.Reader { return vm.settings.Stdin }

// maxCallDepth bounds recursive script calls, matching every embeddable
// interpreter's need for a stack-overflow guard in the absence of a real
// bytecode stack; chosen generously since no specific figure is required.
const maxCallDepth = 1000

// SpawnVm returns a sibling Vm: it shares this Vm's globals and exports
// but owns an independent call-depth counter, so that e.g.
// iterator.each's callback invocations don't count
// against the call stack of the code that built the iterator chain.
func (vm *Vm) SpawnVm() *Vm {
	vm.logger.Debugw("spawning sibling vm", "parent", vm.id)
	return &Vm{
		id:       uuid.New(),
		logger:   vm.logger,
		settings: vm.settings,
		globals:  vm.globals,
		exports:  vm.exports,
		parent:   vm,
	}
}
