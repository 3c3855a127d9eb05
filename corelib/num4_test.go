package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koto-lang/koto/value"
)

func TestMakeNum4FromSingleNumber(t *testing.T) {
	v := newTestVm()
	makeNum4 := namespaceFunc(t, v, "num4", "make_num4")

	result, err := makeNum4.Call([]value.Value{value.Int(5)})
	require.NoError(t, err)
	assert.Equal(t, value.Num4{5, 5, 5, 5}, result)
}

func TestMakeNum4FromComponents(t *testing.T) {
	v := newTestVm()
	makeNum4 := namespaceFunc(t, v, "num4", "make_num4")

	result, err := makeNum4.Call([]value.Value{value.Int(1), value.Int(2)})
	require.NoError(t, err)
	assert.Equal(t, value.Num4{1, 2, 0, 0}, result)
}

func TestNum4WithInvalidIndexErrors(t *testing.T) {
	v := newTestVm()
	makeNum4 := namespaceFunc(t, v, "num4", "make_num4")
	with := namespaceFunc(t, v, "num4", "with")

	n, err := makeNum4.Call([]value.Value{value.Int(0)})
	require.NoError(t, err)

	_, err = with.Call([]value.Value{n, value.Int(4), value.Int(1)})
	assert.Error(t, err)
}

func TestNum4Components(t *testing.T) {
	v := newTestVm()
	x := namespaceFunc(t, v, "num4", "x")
	a := namespaceFunc(t, v, "num4", "a")

	n := value.Num4{1, 2, 3, 4}
	xv, err := x.Call([]value.Value{n})
	require.NoError(t, err)
	assert.Equal(t, value.Float(1), xv)

	av, err := a.Call([]value.Value{n})
	require.NoError(t, err)
	assert.Equal(t, value.Float(4), av)
}
