package iterator

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koto-lang/koto/value"
)

func drainToInts(t *testing.T, it Iterator) []int64 {
	t.Helper()
	var result []int64
	err := Drain(it, func(out Output) (bool, error) {
		n, ok := CollectPair(out).Value.(value.Number)
		require.True(t, ok)
		result = append(result, n.AsI64())
		return true, nil
	})
	require.NoError(t, err)
	return result
}

func ints(vals ...int64) *value.List {
	elems := make([]value.Value, len(vals))
	for i, v := range vals {
		elems[i] = value.Int(v)
	}
	return value.NewList(elems)
}

func TestChainConcatenates(t *testing.T) {
	a := NewList(ints(1, 2))
	b := NewList(ints(3, 4))
	got := drainToInts(t, NewChain(a, b))
	assert.Equal(t, []int64{1, 2, 3, 4}, got)
}

func TestChunksSplitsIntoGroups(t *testing.T) {
	src := NewList(ints(1, 2, 3, 4, 5))
	chunks, err := NewChunks(src, 2)
	require.NoError(t, err)

	var sizes []int
	err = Drain(chunks, func(out Output) (bool, error) {
		sizes = append(sizes, len(out.Value.(value.Tuple)))
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2, 1}, sizes)
}

func TestChunksRejectsZero(t *testing.T) {
	_, err := NewChunks(NewList(ints(1)), 0)
	require.Error(t, err)
}

func TestWindowsOverlapsByOne(t *testing.T) {
	src := NewList(ints(1, 2, 3, 4))
	w, err := NewWindows(src, 2)
	require.NoError(t, err)

	var windows [][]int64
	err = Drain(w, func(out Output) (bool, error) {
		tup := out.Value.(value.Tuple)
		var ns []int64
		for _, v := range tup {
			ns = append(ns, v.(value.Number).AsI64())
		}
		windows = append(windows, ns)
		return true, nil
	})
	require.NoError(t, err)
	if diff := cmp.Diff([][]int64{{1, 2}, {2, 3}, {3, 4}}, windows); diff != "" {
		t.Errorf("windows mismatch (-want +got):\n%s", diff)
	}
}

func TestWindowsShorterThanNYieldsNothing(t *testing.T) {
	src := NewList(ints(1))
	w, err := NewWindows(src, 3)
	require.NoError(t, err)
	_, ok := w.Next()
	assert.False(t, ok)
}

func TestTakeLimitsCount(t *testing.T) {
	src := NewList(ints(1, 2, 3, 4, 5))
	got := drainToInts(t, NewTake(src, 3))
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestEnumerateYieldsIndexValuePairs(t *testing.T) {
	src := NewList(ints(10, 20))
	it := NewEnumerate(src)

	out, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, KindPair, out.Kind)
	assert.Equal(t, int64(0), out.Key.(value.Number).AsI64())
	assert.Equal(t, int64(10), out.Value.(value.Number).AsI64())
}

func TestZipStopsAtShorterSource(t *testing.T) {
	a := NewList(ints(1, 2, 3))
	b := NewList(ints(10, 20))
	z := NewZip(a, b)

	count := 0
	err := Drain(z, func(Output) (bool, error) { count++; return true, nil })
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIntersperseNoTrailingSeparator(t *testing.T) {
	src := NewList(ints(1, 2, 3))
	it := NewIntersperse(src, value.Int(0))
	got := drainToInts(t, it)
	assert.Equal(t, []int64{1, 0, 2, 0, 3}, got)
}

func TestCycleReplaysIndefinitely(t *testing.T) {
	src := NewList(ints(1, 2))
	c := NewCycle(src)
	var got []int64
	for i := 0; i < 5; i++ {
		out, ok := c.Next()
		require.True(t, ok)
		got = append(got, out.Value.(value.Number).AsI64())
	}
	assert.Equal(t, []int64{1, 2, 1, 2, 1}, got)
}

func TestReversedOnListRoundTrips(t *testing.T) {
	src := NewList(ints(1, 2, 3))
	reversed, err := NewReversed(src)
	require.NoError(t, err)

	// Reverse walks only the remaining elements, so reverse again before
	// reversed is drained.
	doubleReversed, err := NewReversed(reversed)
	require.NoError(t, err)

	assert.Equal(t, []int64{3, 2, 1}, drainToInts(t, reversed))
	assert.Equal(t, []int64{1, 2, 3}, drainToInts(t, doubleReversed))
}

func TestReversedRejectsUnboundedSource(t *testing.T) {
	_, err := NewReversed(NewRepeat(value.Int(1)))
	assert.Error(t, err)
}

func TestMakeCopyIsIndependentCursor(t *testing.T) {
	src := NewList(ints(1, 2, 3))
	_, _ = src.Next()
	cp := src.MakeCopy()

	_, _ = src.Next()
	out, ok := cp.Next()
	require.True(t, ok)
	assert.Equal(t, int64(2), out.Value.(value.Number).AsI64())
}
