package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeNFC(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	in := Object{decomposed: Array{String(decomposed), Int(1)}, "n": Null{}}
	got, err := NormalizeNFC(in)
	require.NoError(t, err)

	want := Object{composed: Array{String(composed), Int(1)}, "n": Null{}}
	assert.True(t, Equal(want, got), "got %v", got)

	// The input is not modified
	_, ok := in[decomposed]
	assert.True(t, ok)
}

func TestNormalizeNFC_KeyCollision(t *testing.T) {
	in := Object{"\u00e9": Int(1), "e\u0301": Int(2)}
	_, err := NormalizeNFC(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collide")
}
