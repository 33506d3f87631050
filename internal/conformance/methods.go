package conformance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/extarray/internal/extension"
)

// RunMethodsSuite checks the non-indexing parts of the contract: copies,
// concatenation, uniqueness, factorization, sorting and the dtype.
func RunMethodsSuite[E extension.Element](t *testing.T, fx Fixtures[E]) {
	t.Run("copy_is_independent", func(t *testing.T) {
		for _, deep := range []bool{false, true} {
			data := fx.data(t)
			before := keysOf(t, data)

			cp := data.Copy(deep)
			assertSameType(t, data, cp)
			assertArraysEqual(t, data, cp)

			require.NoError(t, cp.Set(extension.Position(0), mustAt(t, data, 1)))
			assert.Equal(t, before, keysOf(t, data), "deep=%v: writing the copy must not touch the source", deep)
		}
	})

	t.Run("concat_same_type", func(t *testing.T) {
		data := fx.data(t)
		a := mustGet(t, data, extension.SliceTo(3))
		b := mustGet(t, data, extension.SliceRange(3, 5))
		empty := mustGet(t, data, extension.SliceTo(0))

		got, err := data.Constructor().ConcatSameType([]extension.Array[E]{a, empty, b})
		require.NoError(t, err)
		assertSameType(t, data, got)
		assertElementsEqual(t, head(t, data, 5), got)

		none, err := data.Constructor().ConcatSameType(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, none.Len())
	})

	t.Run("unique", func(t *testing.T) {
		data := fx.data(t)
		a, b := mustAt(t, data, 0), mustAt(t, data, 1)
		dup, err := data.Constructor().FromSequence([]E{b, a, b, b, a})
		require.NoError(t, err)

		got, err := dup.Unique()
		require.NoError(t, err)
		assertSameType(t, data, got)
		assertElementsEqual(t, []E{b, a}, got)
	})

	t.Run("factorize", func(t *testing.T) {
		data := fx.data(t)
		a, b := mustAt(t, data, 0), mustAt(t, data, 1)
		na := data.NAValue()
		arr, err := data.Constructor().FromSequence([]E{b, na, a, b})
		require.NoError(t, err)

		codes, uniques, err := extension.Factorize(arr)
		require.NoError(t, err)
		assert.Equal(t, []int{0, -1, 1, 0}, codes)
		assertElementsEqual(t, []E{b, a}, uniques)

		rebuilt, err := uniques.Take(codes, true, nil)
		require.NoError(t, err)
		assertArraysEqual(t, arr, rebuilt)
	})

	t.Run("factorize_roundtrip", func(t *testing.T) {
		data := fx.data(t)
		codes, uniques, err := extension.Factorize(data)
		require.NoError(t, err)
		require.Len(t, codes, data.Len())

		rebuilt, err := uniques.Take(codes, true, nil)
		require.NoError(t, err)
		assertArraysEqual(t, data, rebuilt)
	})

	t.Run("argsort", func(t *testing.T) {
		missing := fx.DataMissing(t)
		order, err := extension.Argsort(missing)
		require.NoError(t, err)
		assert.Equal(t, []int{1, 0}, order, "missing sorts last")

		data := fx.data(t)
		order, err = extension.Argsort(data)
		require.NoError(t, err)
		keys := keysOf(t, data)
		for i := 1; i < len(order); i++ {
			assert.LessOrEqual(t, keys[order[i-1]], keys[order[i]])
		}
	})

	t.Run("isna", func(t *testing.T) {
		assert.Equal(t, []bool{true, false}, fx.DataMissing(t).IsNA())

		data := fx.data(t)
		for i, na := range data.IsNA() {
			assert.False(t, na, "Data[%d] must not be missing", i)
		}
	})

	t.Run("nbytes", func(t *testing.T) {
		data := fx.data(t)
		assert.Positive(t, data.NBytes())
	})

	t.Run("dtype_roundtrip", func(t *testing.T) {
		dt := fx.data(t).Dtype()
		assert.NotEmpty(t, dt.Name())
		assert.NotEmpty(t, dt.Kind())

		parsed, err := dt.ConstructFromString(dt.Name())
		require.NoError(t, err)
		assert.Equal(t, dt.Name(), parsed.Name())

		_, err = dt.ConstructFromString("not-" + dt.Name())
		require.Error(t, err)
		assert.True(t, extension.IsDtypeParse(err))

		found, err := extension.ParseDtype(dt.Name())
		require.NoError(t, err)
		assert.Equal(t, dt.Name(), found.Name())
	})
}
