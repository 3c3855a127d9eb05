package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koto-lang/koto/value"
	"github.com/koto-lang/koto/vm"
)

func TestKotoArgsAndScriptPath(t *testing.T) {
	v := vm.New()
	Register(v, Settings{
		ScriptArgs: []string{"a", "b"},
		ScriptDir:  "/tmp",
		ScriptPath: "/tmp/script.koto",
	})

	args := namespaceValue(t, v, "koto", "args")
	tuple := args.(value.Tuple)
	assert.Equal(t, 2, len(tuple))
	assert.Equal(t, value.NewStr("a"), tuple[0])

	scriptPath := namespaceValue(t, v, "koto", "script_path")
	assert.Equal(t, value.NewStr("/tmp/script.koto"), scriptPath)
}

func TestKotoScriptDirNullWhenUnset(t *testing.T) {
	v := newTestVm()
	scriptDir := namespaceValue(t, v, "koto", "script_dir")
	assert.Equal(t, value.NullValue, scriptDir)
}

func TestKotoType(t *testing.T) {
	v := newTestVm()
	typeFn := namespaceFunc(t, v, "koto", "type")

	result, err := typeFn.Call([]value.Value{value.Int(1)})
	require.NoError(t, err)
	assert.Equal(t, value.NewStr("Int"), result)
}
