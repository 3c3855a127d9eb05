package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koto-lang/koto/value"
)

func TestListIteratorObservesLiveMutation(t *testing.T) {
	l := value.NewList([]value.Value{value.Int(1)})
	it := NewList(l)

	out, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, value.Int(1), out.Value)

	l.Append(value.Int(2))
	out, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, value.Int(2), out.Value)

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestRangeIteratorDescending(t *testing.T) {
	r := value.Range{Start: 3, End: 0}
	it := NewRange(r)
	var got []int64
	err := Drain(it, func(out Output) (bool, error) {
		got = append(got, out.Value.(value.Number).AsI64())
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 2, 1}, got)
}

func TestRangeIteratorEmpty(t *testing.T) {
	r := value.Range{Start: 2, End: 2}
	it := NewRange(r)
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestMapIteratorSkipsDeletedKey(t *testing.T) {
	m := value.NewMap()
	require.NoError(t, m.Insert(value.NewStr("a"), value.Int(1)))
	require.NoError(t, m.Insert(value.NewStr("b"), value.Int(2)))

	it := NewMap(m)
	m.Delete(value.NewStr("a"))

	out, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, KindPair, out.Kind)
	assert.Equal(t, "b", out.Key.(value.Str).Go())

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestNum4IteratorYieldsFourFloats(t *testing.T) {
	n := value.Num4{1, 2, 3, 4}
	it := NewNum4(n)
	var got []float64
	err := Drain(it, func(out Output) (bool, error) {
		got = append(got, out.Value.(value.Number).AsF64())
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, got)
}
