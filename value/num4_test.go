package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNum4Normalize(t *testing.T) {
	n := Num4{3, 0, 0, 4}
	normalized := n.Normalize()
	assert.InDelta(t, 1.0, normalized.Length(), 1e-6)
}

func TestNum4NormalizeZeroIsIdentity(t *testing.T) {
	n := Num4{0, 0, 0, 0}
	assert.Equal(t, n, n.Normalize())
}

func TestNum4With(t *testing.T) {
	n := Num4{1, 2, 3, 4}
	updated, ok := n.With(2, 99)
	assert.True(t, ok)
	assert.Equal(t, Num4{1, 2, 99, 4}, updated)
	// original is untouched
	assert.Equal(t, Num4{1, 2, 3, 4}, n)
}

func TestNum4WithInvalidIndex(t *testing.T) {
	n := Num4{1, 2, 3, 4}
	_, ok := n.With(4, 0)
	assert.False(t, ok)
}

func TestNum4Lerp(t *testing.T) {
	a := Num4{0, 0, 0, 0}
	b := Num4{10, 10, 10, 10}
	mid := Num4Lerp(a, b, 0.5)
	assert.Equal(t, Num4{5, 5, 5, 5}, mid)
}
