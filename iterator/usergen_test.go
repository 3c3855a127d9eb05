package iterator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koto-lang/koto/value"
)

func TestUserGeneratorYieldsInOrder(t *testing.T) {
	gen := &value.Generator{
		Name: "count_up",
		Body: func(args []value.Value, yield func(value.Value) error) error {
			for i := int64(1); i <= 3; i++ {
				if err := yield(value.Int(i)); err != nil {
					return err
				}
			}
			return nil
		},
	}

	it := NewUserGenerator(gen, nil)
	var got []int64
	err := Drain(it, func(out Output) (bool, error) {
		got = append(got, out.Value.(value.Number).AsI64())
		return true, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, got)
}

func TestUserGeneratorPropagatesError(t *testing.T) {
	boom := assert.AnError
	gen := &value.Generator{
		Body: func(args []value.Value, yield func(value.Value) error) error {
			if err := yield(value.Int(1)); err != nil {
				return err
			}
			return boom
		},
	}

	it := NewUserGenerator(gen, nil)
	out, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, int64(1), out.Value.(value.Number).AsI64())

	out, ok = it.Next()
	require.True(t, ok)
	assert.Equal(t, KindError, out.Kind)
	assert.Equal(t, boom, out.Err)

	_, ok = it.Next()
	assert.False(t, ok)
}

func TestUserGeneratorMakeCopyRestartsIndependently(t *testing.T) {
	gen := &value.Generator{
		Body: func(args []value.Value, yield func(value.Value) error) error {
			return yield(value.Int(42))
		},
	}
	it := NewUserGenerator(gen, nil)
	_, _ = it.Next()

	cp := it.MakeCopy()
	out, ok := cp.Next()
	require.True(t, ok)
	assert.Equal(t, int64(42), out.Value.(value.Number).AsI64())
}
