package jsonarray

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/value"
)

func TestDtype_Registered(t *testing.T) {
	d, err := extension.ParseDtype("json")
	require.NoError(t, err)
	assert.Same(t, DefaultDtype(), d)
	assert.Contains(t, extension.DtypeNames(), DtypeName)
}

func TestDtype_Describe(t *testing.T) {
	d := DefaultDtype()
	assert.Equal(t, "json", d.Name())
	assert.Equal(t, "mapping", d.Kind())
	assert.Equal(t, "json", d.String())
	assert.Nil(t, d.Schema())
	assert.Equal(t, value.Object{}, d.NAValue())
}

func TestDtype_ConstructFromString(t *testing.T) {
	d := NewDtype()
	got, err := d.ConstructFromString("json")
	require.NoError(t, err)
	assert.Same(t, d, got)

	for _, name := range []string{"", "JSON", "json[]", "int64"} {
		_, err := d.ConstructFromString(name)
		require.Error(t, err, name)
		assert.True(t, extension.IsDtypeParse(err))
	}
}

func TestDtype_FromFactorized(t *testing.T) {
	d := DefaultDtype()
	got, err := d.FromFactorized([]string{`{"a":1}`, "{}", `{"b":[1,2]}`}, nil)
	require.NoError(t, err)
	keys, err := extension.Keys[value.Object](got)
	require.NoError(t, err)
	assert.Equal(t, []string{`{"a":1}`, `{"b":[1,2]}`}, keys)

	_, err = d.FromFactorized([]string{`[1]`}, nil)
	require.Error(t, err)
	assert.True(t, extension.IsTypeMismatch(err))

	_, err = d.FromFactorized([]string{`{not json`}, nil)
	require.Error(t, err)
	assert.True(t, extension.IsTypeMismatch(err))
}

func TestDtype_ConcatSameType(t *testing.T) {
	d := DefaultDtype()
	a := MustNew(obj("a", 1))
	b := MustNew(obj("b", 2), obj("c", 3))

	got, err := d.ConcatSameType([]extension.Array[value.Object]{a, b})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())

	_, err = d.ConcatSameType([]extension.Array[value.Object]{a, nil})
	require.Error(t, err)
	assert.True(t, extension.IsTypeMismatch(err))
}
