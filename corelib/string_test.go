package corelib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/koto-lang/koto/value"
)

func TestStringSplitPreservesEmptySegments(t *testing.T) {
	v := newTestVm()
	split := namespaceFunc(t, v, "string", "split")
	toList := namespaceFunc(t, v, "iterator", "to_list")

	result, err := split.Call([]value.Value{value.NewStr("a,,b,c"), value.NewStr(",")})
	require.NoError(t, err)
	listVal, err := toList.Call([]value.Value{result})
	require.NoError(t, err)
	list := listVal.(*value.List)

	var got []string
	for _, v := range list.Data() {
		got = append(got, v.(value.Str).Go())
	}
	assert.Equal(t, []string{"a", "", "b", "c"}, got)
}

func TestStringTrim(t *testing.T) {
	v := newTestVm()
	trim := namespaceFunc(t, v, "string", "trim")
	result, err := trim.Call([]value.Value{value.NewStr("  hi  ")})
	require.NoError(t, err)
	assert.Equal(t, value.NewStr("hi"), result)
}

func TestStringSizeCountsGraphemes(t *testing.T) {
	v := newTestVm()
	size := namespaceFunc(t, v, "string", "size")
	// "e" + combining acute accent: one grapheme.
	result, err := size.Call([]value.Value{value.NewStr("é")})
	require.NoError(t, err)
	assert.Equal(t, value.Int(1), result)
}

func TestStringFromBytesRoundTrip(t *testing.T) {
	v := newTestVm()
	bytesFn := namespaceFunc(t, v, "string", "bytes")
	fromBytes := namespaceFunc(t, v, "string", "from_bytes")

	original := value.NewStr("hello")
	bytesIter, err := bytesFn.Call([]value.Value{original})
	require.NoError(t, err)

	result, err := fromBytes.Call([]value.Value{bytesIter})
	require.NoError(t, err)
	assert.Equal(t, original, result)
}

func TestStringFromBytesRejectsOutOfRange(t *testing.T) {
	v := newTestVm()
	fromBytes := namespaceFunc(t, v, "string", "from_bytes")

	l := value.NewList([]value.Value{value.Int(300)})
	_, err := fromBytes.Call([]value.Value{l})
	assert.Error(t, err)
}

func TestStringToNumber(t *testing.T) {
	v := newTestVm()
	toNumber := namespaceFunc(t, v, "string", "to_number")

	result, err := toNumber.Call([]value.Value{value.NewStr("42")})
	require.NoError(t, err)
	assert.Equal(t, value.Int(42), result)

	result, err = toNumber.Call([]value.Value{value.NewStr("4.5")})
	require.NoError(t, err)
	assert.Equal(t, value.Float(4.5), result)

	_, err = toNumber.Call([]value.Value{value.NewStr("not a number")})
	assert.Error(t, err)
}
