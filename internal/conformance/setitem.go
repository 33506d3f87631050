package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/extarray/internal/extension"
)

// RunSetitemSuite checks assignment through every indexer shape.
func RunSetitemSuite[E extension.Element](t *testing.T, fx Fixtures[E]) {
	t.Run("setitem_scalar", func(t *testing.T) {
		data := fx.data(t)
		v := mustAt(t, data, 1)
		require.NoError(t, data.Set(extension.Position(0), v))
		assert.Equal(t, mustKey(t, v), mustKey(t, mustAt(t, data, 0)))

		require.NoError(t, data.Set(extension.Position(-1), v))
		assert.Equal(t, mustKey(t, v), mustKey(t, mustAt(t, data, -1)))
	})

	t.Run("setitem_scalar_out_of_range", func(t *testing.T) {
		data := fx.data(t)
		err := data.Set(extension.Position(data.Len()), mustAt(t, data, 0))
		require.Error(t, err)
		assert.True(t, extension.IsIndexOutOfRange(err))
	})

	t.Run("setitem_mask_broadcast", func(t *testing.T) {
		data := fx.data(t)
		v := mustAt(t, data, 0)
		mask := make(extension.Mask, data.Len())
		mask[1], mask[2] = true, true

		require.NoError(t, data.Set(mask, v))
		assertElementsEqual(t, []E{v, v, v}, mustGet(t, data, extension.SliceTo(3)))
	})

	t.Run("setitem_mask_sequence", func(t *testing.T) {
		data := fx.data(t)
		a, b := mustAt(t, data, 0), mustAt(t, data, 1)
		mask := make(extension.Mask, data.Len())
		mask[2], mask[3] = true, true

		// One value per selected position, consumed in mask order
		require.NoError(t, data.Set(mask, b, a))
		assertElementsEqual(t, []E{b, a}, mustGet(t, data, extension.SliceRange(2, 4)))
	})

	t.Run("setitem_mask_aligned", func(t *testing.T) {
		data := fx.data(t)
		n := data.Len()
		values := head(t, data, n)
		// Shift by one so every assigned position changes
		shifted := append(values[1:], values[0])
		mask := make(extension.Mask, n)
		mask[0], mask[5] = true, true

		// One value per mask entry; only true entries are written
		require.NoError(t, data.Set(mask, shifted...))
		assert.Equal(t, mustKey(t, values[1]), mustKey(t, mustAt(t, data, 0)))
		assert.Equal(t, mustKey(t, values[6%n]), mustKey(t, mustAt(t, data, 5)))
		assert.Equal(t, mustKey(t, values[1]), mustKey(t, mustAt(t, data, 1)), "unmasked positions stay")
	})

	t.Run("setitem_positions", func(t *testing.T) {
		data := fx.data(t)
		a, b := mustAt(t, data, 0), mustAt(t, data, 1)

		require.NoError(t, data.Set(extension.Positions{3, 2}, a, b))
		assertElementsEqual(t, []E{b, a}, mustGet(t, data, extension.SliceRange(2, 4)))

		require.NoError(t, data.Set(extension.Positions{4, 5}, b))
		assertElementsEqual(t, []E{b, b}, mustGet(t, data, extension.SliceRange(4, 6)))
	})

	t.Run("setitem_slice", func(t *testing.T) {
		data := fx.data(t)
		a := mustAt(t, data, 0)

		require.NoError(t, data.Set(extension.SliceRange(6, 8), a))
		assertElementsEqual(t, []E{a, a}, mustGet(t, data, extension.SliceRange(6, 8)))
	})

	t.Run("setitem_length_mismatch", func(t *testing.T) {
		data := fx.data(t)
		a := mustAt(t, data, 0)
		err := data.Set(extension.Positions{0, 1, 2}, a, a)
		require.Error(t, err)
		assert.True(t, extension.IsInvalidIndexer(err))
	})

	t.Run("setitem_type_mismatch_keeps_prior_writes", func(t *testing.T) {
		if fx.Invalid == nil {
			t.Skip("fixture has no invalid element")
		}
		data := fx.data(t)
		a := mustAt(t, data, 0)
		before := mustKey(t, mustAt(t, data, 2))

		err := data.Set(extension.Positions{1, 2}, a, fx.Invalid())
		require.Error(t, err)
		assert.True(t, extension.IsTypeMismatch(err))

		assert.Equal(t, mustKey(t, a), mustKey(t, mustAt(t, data, 1)), "write before the failure stays")
		assert.Equal(t, before, mustKey(t, mustAt(t, data, 2)), "failing position is untouched")
	})

	t.Run("setitem_scalar_type_mismatch", func(t *testing.T) {
		if fx.Invalid == nil {
			t.Skip("fixture has no invalid element")
		}
		data := fx.data(t)
		err := data.Set(extension.Position(0), fx.Invalid())
		require.Error(t, err)
		assert.True(t, extension.IsTypeMismatch(err))
	})
}

func mustGet[E extension.Element](t *testing.T, a extension.Array[E], idx extension.Indexer) extension.Array[E] {
	t.Helper()
	out, err := a.Get(idx)
	require.NoError(t, err)
	return out
}
