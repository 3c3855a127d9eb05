package iterator

import "github.com/koto-lang/koto/value"

// Repeat yields the same value forever.
type Repeat struct {
	v value.Value
}

// NewRepeat returns an Iterator that yields v indefinitely.
func NewRepeat(v value.Value) *Repeat { return &Repeat{v: v} }

func (r *Repeat) Next() (Output, bool) { return ValueOutput(r.v), true }
func (r *Repeat) SizeHint() int        { return int(^uint(0) >> 1) }
func (r *Repeat) MakeCopy() Iterator   { return &Repeat{v: r.v} }

// RepeatN yields the same value n times.
type RepeatN struct {
	v      value.Value
	remain int
}

// NewRepeatN returns an Iterator that yields v exactly n times.
func NewRepeatN(v value.Value, n int) *RepeatN { return &RepeatN{v: v, remain: n} }

func (r *RepeatN) Next() (Output, bool) {
	if r.remain <= 0 {
		return Output{}, false
	}
	r.remain--
	return ValueOutput(r.v), true
}

func (r *RepeatN) SizeHint() int {
	if r.remain < 0 {
		return 0
	}
	return r.remain
}

func (r *RepeatN) MakeCopy() Iterator { return &RepeatN{v: r.v, remain: r.remain} }

// Generate calls a no-argument function forever, yielding its results.
type Generate struct {
	f  value.Value
	vm VM
}

// NewGenerate returns an Iterator that calls f() forever.
func NewGenerate(f value.Value, vm VM) *Generate { return &Generate{f: f, vm: vm} }

func (g *Generate) Next() (Output, bool) {
	v, err := g.vm.RunFunction(g.f, CallArgs{})
	if err != nil {
		return ErrorOutput(err), true
	}
	return ValueOutput(v), true
}

func (g *Generate) SizeHint() int      { return int(^uint(0) >> 1) }
func (g *Generate) MakeCopy() Iterator { return &Generate{f: g.f, vm: g.vm} }

// GenerateN calls a no-argument function n times, yielding its results.
type GenerateN struct {
	f      value.Value
	vm     VM
	remain int
}

// NewGenerateN returns an Iterator that calls f() exactly n times.
func NewGenerateN(f value.Value, n int, vm VM) *GenerateN {
	return &GenerateN{f: f, vm: vm, remain: n}
}

func (g *GenerateN) Next() (Output, bool) {
	if g.remain <= 0 {
		return Output{}, false
	}
	g.remain--
	v, err := g.vm.RunFunction(g.f, CallArgs{})
	if err != nil {
		return ErrorOutput(err), true
	}
	return ValueOutput(v), true
}

func (g *GenerateN) SizeHint() int {
	if g.remain < 0 {
		return 0
	}
	return g.remain
}

func (g *GenerateN) MakeCopy() Iterator { return &GenerateN{f: g.f, vm: g.vm, remain: g.remain} }
