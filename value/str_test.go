package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrSlice(t *testing.T) {
	s := NewStr("hello")
	sliced, ok := s.Slice(1, 4)
	require.True(t, ok)
	assert.Equal(t, "ell", sliced.Go())
}

func TestStrSliceRejectsNonBoundary(t *testing.T) {
	s := NewStr("héllo") // 'é' is 2 bytes
	_, ok := s.Slice(0, 2)
	assert.False(t, ok)
}

func TestGraphemeCountCombining(t *testing.T) {
	// "e" + combining acute accent is one extended grapheme cluster.
	s := NewStr("é")
	assert.Equal(t, 1, s.GraphemeCount())
}

func TestWithGraphemeIndices(t *testing.T) {
	s := NewStr("abcde")
	end := 3
	sliced, ok := s.WithGraphemeIndices(1, &end)
	require.True(t, ok)
	assert.Equal(t, "bc", sliced.Go())
}

func TestWithGraphemeIndicesToEnd(t *testing.T) {
	s := NewStr("abcde")
	sliced, ok := s.WithGraphemeIndices(2, nil)
	require.True(t, ok)
	assert.Equal(t, "cde", sliced.Go())
}

func TestGraphemesRoundTrip(t *testing.T) {
	s := NewStr("ábc")
	graphemes := s.Graphemes()
	assert.Equal(t, len(graphemes), s.GraphemeCount())
}
