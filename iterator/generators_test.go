package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koto-lang/koto/value"
)

func TestRepeatNYieldsExactCount(t *testing.T) {
	r := NewRepeatN(value.NewStr("x"), 3)
	got := 0
	err := Drain(r, func(Output) (bool, error) { got++; return true, nil })
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestRepeatIsUnbounded(t *testing.T) {
	r := NewRepeat(value.Int(7))
	for i := 0; i < 100; i++ {
		out, ok := r.Next()
		require.True(t, ok)
		assert.Equal(t, value.Int(7), out.Value)
	}
}

// stubVM is a minimal iterator.VM for tests that only exercise
// RunFunction against a plain closure-backed SimpleFunction.
type stubVM struct{}

func (stubVM) RunFunction(f value.Value, args CallArgs) (value.Value, error) {
	return f.(*value.SimpleFunction).Call(args.Args())
}
func (stubVM) RunBinaryOp(op BinaryOp, a, b value.Value) (value.Value, error) { return nil, nil }
func (stubVM) MakeIterator(v value.Value) (Iterator, error)                  { return nil, nil }
func (stubVM) Spawn() VM                                                     { return stubVM{} }

func TestGenerateNCallsFunctionNTimes(t *testing.T) {
	calls := 0
	f := &value.SimpleFunction{Body: func(args []value.Value) (value.Value, error) {
		calls++
		return value.Int(int64(calls)), nil
	}}
	g := NewGenerateN(f, 3, stubVM{})
	var got []int64
	err := Drain(g, func(out Output) (bool, error) {
		got = append(got, out.Value.(value.Number).AsI64())
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got)
}
