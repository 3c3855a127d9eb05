package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koto-lang/koto/iterator"
	"github.com/koto-lang/koto/value"
)

func TestCompileAndRunArithmetic(t *testing.T) {
	v := New()
	result, err := CompileAndRun(v, "1 + 2 * 3")
	require.NoError(t, err)
	assert.Equal(t, value.Int(7), result)
}

func TestCompileAndRunStringConcat(t *testing.T) {
	v := New()
	result, err := CompileAndRun(v, `"foo" + "bar"`)
	require.NoError(t, err)
	assert.Equal(t, value.NewStr("foobar"), result)
}

func TestCompileAndRunCallsGlobalFunction(t *testing.T) {
	v := New()
	v.Globals().Insert(value.NewStr("double"), &value.SimpleFunction{
		Body: func(args []value.Value) (value.Value, error) {
			n := args[0].(value.Number)
			return value.Int(n.AsI64() * 2), nil
		},
	})

	result, err := CompileAndRun(v, "double(21)")
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), result)
}

func TestCompileAndRunUndefinedNameErrors(t *testing.T) {
	v := New()
	_, err := CompileAndRun(v, "missing")
	assert.Error(t, err)
}

func TestCompileAndRunUnclosedParenIsCompileError(t *testing.T) {
	v := New()
	_, err := CompileAndRun(v, "(1 + 2")
	require.Error(t, err)
	var compileErr *CompileError
	require.ErrorAs(t, err, &compileErr)
}

func TestRunFunctionRecoversHostPanic(t *testing.T) {
	v := New()
	f := &value.ExternalFunction{Body: func(args []value.Value) (value.Value, error) {
		panic("boom")
	}}
	_, err := v.RunFunction(f, iterator.CallSingle(value.NullValue))
	require.Error(t, err)
}

func TestSpawnSharesGlobals(t *testing.T) {
	v := New()
	v.Globals().Insert(value.NewStr("x"), value.Int(1))
	sibling := v.SpawnVm()
	got, ok := sibling.Globals().Get(value.NewStr("x"))
	require.True(t, ok)
	assert.Equal(t, value.Int(1), got)
	assert.NotEqual(t, v.ID(), sibling.ID())
}

func TestMakeIteratorRejectsNonIterable(t *testing.T) {
	v := New()
	_, err := v.MakeIterator(value.NullValue)
	assert.Error(t, err)
}
