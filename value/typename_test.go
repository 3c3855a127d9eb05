package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeepCopyListIsIndependent(t *testing.T) {
	inner := NewList([]Value{Int(1), Int(2)})
	outer := NewList([]Value{inner})

	copied := DeepCopy(outer).(*List)
	copiedInner := copied.At(0).(*List)
	copiedInner.Append(Int(3))

	assert.Equal(t, 2, inner.Len(), "deep copy must not alias the original nested list")
	assert.Equal(t, 3, copiedInner.Len())
}

func TestDeepCopyFunctionIsShared(t *testing.T) {
	f := &SimpleFunction{Name: "f", Body: func(args []Value) (Value, error) { return NullValue, nil }}
	assert.Same(t, f, DeepCopy(f))
}

func TestTypeNameNumberSplit(t *testing.T) {
	assert.Equal(t, "Int", TypeName(Int(1)))
	assert.Equal(t, "Float", TypeName(Float(1.0)))
}
