package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapInsertionOrderPreservedOnUpdate(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Insert(NewStr("a"), Int(1)))
	require.NoError(t, m.Insert(NewStr("b"), Int(2)))
	require.NoError(t, m.Insert(NewStr("a"), Int(99)))

	keys := m.Keys()
	require.Len(t, keys, 2)
	assert.Equal(t, "a", keys[0].(Str).Go())
	assert.Equal(t, "b", keys[1].(Str).Go())

	v, ok := m.Get(NewStr("a"))
	require.True(t, ok)
	assert.Equal(t, Int(99), v)
}

func TestMapDeleteSkipsEntry(t *testing.T) {
	m := NewMap()
	require.NoError(t, m.Insert(NewStr("a"), Int(1)))
	require.NoError(t, m.Insert(NewStr("b"), Int(2)))
	m.Delete(NewStr("a"))

	_, ok := m.Get(NewStr("a"))
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestMapRejectsMutableKey(t *testing.T) {
	m := NewMap()
	err := m.Insert(NewList(nil), Int(1))
	require.Error(t, err)
	var keyErr *KeyError
	require.ErrorAs(t, err, &keyErr)
	assert.Equal(t, "List", keyErr.Kind)
}

func TestMapMetaTypeOverride(t *testing.T) {
	m := NewMap()
	meta := NewMap()
	require.NoError(t, meta.Insert(NewStr(string(MetaType)), NewStr("Custom")))
	m.SetMetaMap(meta)

	assert.Equal(t, "Custom", TypeName(m))
}
