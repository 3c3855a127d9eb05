package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koto-lang/koto/value"
	"github.com/koto-lang/koto/vm"
)

func newTestVm() *vm.Vm {
	v := vm.New()
	Register(v, Settings{})
	return v
}

func namespaceFunc(t *testing.T, v *vm.Vm, ns, name string) *value.ExternalFunction {
	t.Helper()
	return namespaceValue(t, v, ns, name).(*value.ExternalFunction)
}

func namespaceValue(t *testing.T, v *vm.Vm, ns, name string) value.Value {
	t.Helper()
	nsVal, ok := v.Globals().Get(value.NewStr(ns))
	require.True(t, ok)
	val, ok := nsVal.(*value.Map).Get(value.NewStr(name))
	require.True(t, ok)
	return val
}

func listOf(vals ...value.Value) *value.List { return value.NewList(vals) }

func TestIteratorSumAndProduct(t *testing.T) {
	v := newTestVm()
	sum := namespaceFunc(t, v, "iterator", "sum")
	product := namespaceFunc(t, v, "iterator", "product")

	l := listOf(value.Int(1), value.Int(2), value.Int(3))
	result, err := sum.Call([]value.Value{l})
	require.NoError(t, err)
	assert.Equal(t, value.Int(6), result)

	result, err = product.Call([]value.Value{l})
	require.NoError(t, err)
	assert.Equal(t, value.Int(6), result)
}

func TestIteratorToList(t *testing.T) {
	v := newTestVm()
	toList := namespaceFunc(t, v, "iterator", "to_list")

	r := value.Range{Start: 0, End: 3}
	result, err := toList.Call([]value.Value{r})
	require.NoError(t, err)
	list := result.(*value.List)
	assert.Equal(t, 3, list.Len())
	assert.Equal(t, value.Int(0), list.At(0))
	assert.Equal(t, value.Int(2), list.At(2))
}

func TestIteratorEachAppliesFunction(t *testing.T) {
	v := newTestVm()
	each := namespaceFunc(t, v, "iterator", "each")
	toList := namespaceFunc(t, v, "iterator", "to_list")

	double := &value.SimpleFunction{Body: func(args []value.Value) (value.Value, error) {
		return value.Int(args[0].(value.Number).AsI64() * 2), nil
	}}

	l := listOf(value.Int(1), value.Int(2), value.Int(3))
	mapped, err := each.Call([]value.Value{l, double})
	require.NoError(t, err)

	result, err := toList.Call([]value.Value{mapped})
	require.NoError(t, err)
	list := result.(*value.List)
	assert.Equal(t, value.Int(2), list.At(0))
	assert.Equal(t, value.Int(4), list.At(1))
	assert.Equal(t, value.Int(6), list.At(2))
}

func TestIteratorKeepFiltersByPredicate(t *testing.T) {
	v := newTestVm()
	keep := namespaceFunc(t, v, "iterator", "keep")
	toList := namespaceFunc(t, v, "iterator", "to_list")

	isEven := &value.SimpleFunction{Body: func(args []value.Value) (value.Value, error) {
		return value.Bool(args[0].(value.Number).AsI64()%2 == 0), nil
	}}

	l := listOf(value.Int(1), value.Int(2), value.Int(3), value.Int(4))
	kept, err := keep.Call([]value.Value{l, isEven})
	require.NoError(t, err)

	result, err := toList.Call([]value.Value{kept})
	require.NoError(t, err)
	list := result.(*value.List)
	assert.Equal(t, 2, list.Len())
	assert.Equal(t, value.Int(2), list.At(0))
	assert.Equal(t, value.Int(4), list.At(1))
}

func TestIteratorMinMax(t *testing.T) {
	v := newTestVm()
	min := namespaceFunc(t, v, "iterator", "min")
	max := namespaceFunc(t, v, "iterator", "max")

	l := listOf(value.Int(3), value.Int(1), value.Int(2))
	minResult, err := min.Call([]value.Value{l})
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), minResult)

	maxResult, err := max.Call([]value.Value{l})
	require.NoError(t, err)
	assert.Equal(t, value.Int(3), maxResult)
}

func TestIteratorMinMaxWithKeyFn(t *testing.T) {
	v := newTestVm()
	minMax := namespaceFunc(t, v, "iterator", "min_max")

	negate := &value.SimpleFunction{Body: func(args []value.Value) (value.Value, error) {
		return value.Int(-args[0].(value.Number).AsI64()), nil
	}}

	l := listOf(value.Int(3), value.Int(1), value.Int(4), value.Int(1), value.Int(5), value.Int(9), value.Int(2), value.Int(6))
	result, err := minMax.Call([]value.Value{l, negate})
	require.NoError(t, err)
	pair := result.(value.Tuple)
	assert.Equal(t, value.Int(9), pair[0])
	assert.Equal(t, value.Int(1), pair[1])
}

func TestIteratorConsumeCallsFunctionPerItem(t *testing.T) {
	v := newTestVm()
	consume := namespaceFunc(t, v, "iterator", "consume")

	var seen []int64
	record := &value.SimpleFunction{Body: func(args []value.Value) (value.Value, error) {
		seen = append(seen, args[0].(value.Number).AsI64())
		return value.NullValue, nil
	}}

	l := listOf(value.Int(1), value.Int(2), value.Int(3))
	result, err := consume.Call([]value.Value{l, record})
	require.NoError(t, err)
	assert.Equal(t, value.NullValue, result)
	assert.Equal(t, []int64{1, 2, 3}, seen)
}

func TestIteratorTakeRejectsNegative(t *testing.T) {
	v := newTestVm()
	take := namespaceFunc(t, v, "iterator", "take")

	l := listOf(value.Int(1), value.Int(2), value.Int(3))
	_, err := take.Call([]value.Value{l, value.Int(-1)})
	assert.Error(t, err)
}

func TestIteratorSkipRejectsNegative(t *testing.T) {
	v := newTestVm()
	skip := namespaceFunc(t, v, "iterator", "skip")

	l := listOf(value.Int(1), value.Int(2), value.Int(3))
	_, err := skip.Call([]value.Value{l, value.Int(-1)})
	assert.Error(t, err)
}

func TestIteratorFold(t *testing.T) {
	v := newTestVm()
	fold := namespaceFunc(t, v, "iterator", "fold")

	concat := &value.SimpleFunction{Body: func(args []value.Value) (value.Value, error) {
		acc := args[0].(value.Str).Go()
		next := args[1].(value.Str).Go()
		return value.NewStr(acc + next), nil
	}}

	l := listOf(value.NewStr("a"), value.NewStr("b"), value.NewStr("c"))
	result, err := fold.Call([]value.Value{l, value.NewStr(""), concat})
	require.NoError(t, err)
	assert.Equal(t, value.NewStr("abc"), result)
}
