package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/extarray/internal/extension"
)

// RunGetitemSuite checks element, slice, mask and fancy selection plus
// take and reindex.
func RunGetitemSuite[E extension.Element](t *testing.T, fx Fixtures[E]) {
	t.Run("positional_head", func(t *testing.T) {
		data := fx.data(t)
		expected, err := data.Constructor().FromSequence(head(t, data, 4))
		require.NoError(t, err)

		bySlice, err := data.Get(extension.SliceTo(4))
		require.NoError(t, err)
		assertArraysEqual(t, expected, bySlice)

		byPositions, err := data.Get(extension.Positions{0, 1, 2, 3})
		require.NoError(t, err)
		assertArraysEqual(t, expected, byPositions)
	})

	t.Run("label_head", func(t *testing.T) {
		data := fx.data(t)
		expected, err := data.Constructor().FromSequence(head(t, data, 4))
		require.NoError(t, err)

		// Label slices are inclusive: labels 0..3
		byLabelRange, err := data.Get(extension.SliceTo(3 + 1))
		require.NoError(t, err)
		assertArraysEqual(t, expected, byLabelRange)

		byLabels, err := extension.Reindex(data, []int{0, 1, 2, 3})
		require.NoError(t, err)
		assertArraysEqual(t, expected, byLabels)
	})

	t.Run("getitem_scalar", func(t *testing.T) {
		data := fx.data(t)

		first, err := data.At(0)
		require.NoError(t, err)
		_, err = first.CanonicalKey()
		require.NoError(t, err, "scalar must be a valid element")

		last, err := data.At(-1)
		require.NoError(t, err)
		assert.Equal(t, mustKey(t, mustAt(t, data, data.Len()-1)), mustKey(t, last))
	})

	t.Run("getitem_scalar_na", func(t *testing.T) {
		missing := fx.DataMissing(t)
		got := mustAt(t, missing, 0)
		assert.True(t, fx.naCmp(got, missing.NAValue()), "DataMissing[0] must be the missing sentinel")
	})

	t.Run("getitem_scalar_out_of_range", func(t *testing.T) {
		data := fx.data(t)
		n := data.Len()
		for _, i := range []int{n, n + 1, -n - 1} {
			_, err := data.At(i)
			require.Error(t, err, "At(%d)", i)
			assert.True(t, extension.IsIndexOutOfRange(err))
			assert.Contains(t, err.Error(), "out of bounds")
		}
	})

	t.Run("getitem_mask", func(t *testing.T) {
		data := fx.data(t)
		mask := make(extension.Mask, data.Len())

		empty, err := data.Get(mask)
		require.NoError(t, err)
		assert.Equal(t, 0, empty.Len())
		assertSameType(t, data, empty)
		assert.Equal(t, data.Dtype().Name(), empty.Dtype().Name())

		mask[0] = true
		one, err := data.Get(mask)
		require.NoError(t, err)
		assert.Equal(t, 1, one.Len())
		assertSameType(t, data, one)
		assertElementsEqual(t, head(t, data, 1), one)
	})

	t.Run("getitem_mask_wrong_length", func(t *testing.T) {
		data := fx.data(t)
		_, err := data.Get(make(extension.Mask, data.Len()-1))
		require.Error(t, err)
		assert.True(t, extension.IsInvalidIndexer(err))
	})

	t.Run("getitem_slice", func(t *testing.T) {
		data := fx.data(t)

		empty, err := data.Get(extension.SliceTo(0))
		require.NoError(t, err)
		assert.Equal(t, 0, empty.Len())
		assertSameType(t, data, empty)

		one, err := data.Get(extension.SliceTo(1))
		require.NoError(t, err)
		assert.Equal(t, 1, one.Len())
		assertSameType(t, data, one)

		reversed, err := data.Get(extension.Slice{Step: -1})
		require.NoError(t, err)
		require.Equal(t, data.Len(), reversed.Len())
		assert.Equal(t, mustKey(t, mustAt(t, data, -1)), mustKey(t, mustAt(t, reversed, 0)))

		past, err := data.Get(extension.SliceRange(data.Len()+5, data.Len()+10))
		require.NoError(t, err)
		assert.Equal(t, 0, past.Len(), "slice bounds are clamped")
	})

	t.Run("getitem_slice_roundtrip", func(t *testing.T) {
		data := fx.data(t)
		values := head(t, data, data.Len())

		rebuilt, err := data.Constructor().FromSequence(values)
		require.NoError(t, err)
		all, err := rebuilt.Get(extension.SliceAll())
		require.NoError(t, err)
		assertElementsEqual(t, values, all)
	})

	t.Run("take_sequence", func(t *testing.T) {
		data := fx.data(t)
		result, err := data.Get(extension.Positions{0, 1, 3})
		require.NoError(t, err)
		require.Equal(t, 3, result.Len())
		assert.Equal(t, mustKey(t, mustAt(t, data, 0)), mustKey(t, mustAt(t, result, 0)))
		assert.Equal(t, mustKey(t, mustAt(t, data, 1)), mustKey(t, mustAt(t, result, 1)))
		assert.Equal(t, mustKey(t, mustAt(t, data, 3)), mustKey(t, mustAt(t, result, 2)))
	})

	t.Run("take_sequence_out_of_range", func(t *testing.T) {
		data := fx.data(t)
		_, err := data.Get(extension.Positions{0, data.Len()})
		require.Error(t, err)
		assert.True(t, extension.IsIndexOutOfRange(err))
	})

	t.Run("take", func(t *testing.T) {
		data := fx.data(t)
		result, err := data.Take([]int{0, -1}, true, nil)
		require.NoError(t, err)
		assert.Equal(t, data.Dtype().Name(), result.Dtype().Name())
		assert.Equal(t, mustKey(t, mustAt(t, data, 0)), mustKey(t, mustAt(t, result, 0)))
		assert.True(t, fx.naCmp(mustAt(t, result, 1), data.NAValue()))

		_, err = data.Take([]int{data.Len() + 1}, true, nil)
		require.Error(t, err)
		assert.True(t, extension.IsIndexOutOfRange(err))
		assert.Contains(t, err.Error(), "out of bounds")
	})

	t.Run("take_fill_value", func(t *testing.T) {
		data := fx.data(t)
		fill := mustAt(t, data, 1)
		result, err := data.Take([]int{-1, 0}, true, &fill)
		require.NoError(t, err)
		assertElementsEqual(t, []E{fill, mustAt(t, data, 0)}, result)
	})

	t.Run("take_without_fill", func(t *testing.T) {
		data := fx.data(t)
		result, err := data.Take([]int{0, -1}, false, nil)
		require.NoError(t, err)
		assertElementsEqual(t, []E{mustAt(t, data, 0), mustAt(t, data, data.Len()-1)}, result)

		_, err = data.Take([]int{-data.Len() - 1}, false, nil)
		require.Error(t, err)
		assert.True(t, extension.IsIndexOutOfRange(err))
	})

	t.Run("take_empty", func(t *testing.T) {
		data := fx.data(t)
		empty, err := data.Get(extension.SliceTo(0))
		require.NoError(t, err)

		result, err := empty.Take([]int{-1}, true, nil)
		require.NoError(t, err)
		require.Equal(t, 1, result.Len())
		assert.True(t, fx.naCmp(mustAt(t, result, 0), data.NAValue()))

		_, err = empty.Take([]int{0, 1}, true, nil)
		require.Error(t, err)
		assert.True(t, extension.IsEmptyTake(err))
		assert.Contains(t, err.Error(), "cannot do a non-empty take")

		none, err := empty.Take(nil, true, nil)
		require.NoError(t, err)
		assert.Equal(t, 0, none.Len())
	})

	t.Run("reindex", func(t *testing.T) {
		data := fx.data(t)
		n := data.Len()

		result, err := extension.Reindex(data, []int{0, 1, 3})
		require.NoError(t, err)
		expected, err := data.Take([]int{0, 1, 3}, true, nil)
		require.NoError(t, err)
		assertArraysEqual(t, expected, result)

		na := data.NAValue()
		result, err = extension.Reindex(data, []int{-1, 0, n})
		require.NoError(t, err)
		assertElementsEqual(t, []E{na, mustAt(t, data, 0), na}, result)

		result, err = extension.Reindex(data, []int{n, n + 1})
		require.NoError(t, err)
		assertElementsEqual(t, []E{na, na}, result)
	})
}
