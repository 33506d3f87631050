// Package conformance is a reusable test suite for extension.Array
// implementations.
//
// An implementation package calls the Run* functions from its own tests
// with a Fixtures value describing how to build sample arrays:
//
//	func TestConformance(t *testing.T) {
//		fx := conformance.Fixtures[value.Object]{Data: ..., DataMissing: ...}
//		conformance.RunGetitemSuite(t, fx)
//		conformance.RunSetitemSuite(t, fx)
//		conformance.RunMethodsSuite(t, fx)
//	}
//
// Each sub-test builds fresh arrays, so suites may mutate what they get.
package conformance

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/roach88/extarray/internal/extension"
)

// Fixtures supplies sample arrays to the suites.
type Fixtures[E extension.Element] struct {
	// Data returns a fresh array of at least 10 elements, none missing,
	// with Data[0] != Data[1].
	Data func(t *testing.T) extension.Array[E]

	// DataMissing returns a fresh two-element array: [missing, valid].
	DataMissing func(t *testing.T) extension.Array[E]

	// NACmp reports whether got is the missing sentinel na. Defaults to
	// comparing canonical keys.
	NACmp func(got, na E) bool

	// Invalid optionally returns an element the array must reject. When
	// nil, type-mismatch cases are skipped.
	Invalid func() E
}

func (fx Fixtures[E]) data(t *testing.T) extension.Array[E] {
	t.Helper()
	a := fx.Data(t)
	require.GreaterOrEqual(t, a.Len(), 10, "Data fixture must have at least 10 elements")
	first, second := mustAt(t, a, 0), mustAt(t, a, 1)
	require.NotEqual(t, mustKey(t, first), mustKey(t, second), "Data[0] and Data[1] must differ")
	return a
}

func (fx Fixtures[E]) naCmp(got, na E) bool {
	if fx.NACmp != nil {
		return fx.NACmp(got, na)
	}
	gk, err := got.CanonicalKey()
	if err != nil {
		return false
	}
	nk, err := na.CanonicalKey()
	if err != nil {
		return false
	}
	return gk == nk
}

func mustAt[E extension.Element](t *testing.T, a extension.Array[E], i int) E {
	t.Helper()
	e, err := a.At(i)
	require.NoError(t, err, "At(%d)", i)
	return e
}

func mustKey[E extension.Element](t *testing.T, e E) string {
	t.Helper()
	k, err := e.CanonicalKey()
	require.NoError(t, err)
	return k
}

func keysOf[E extension.Element](t *testing.T, a extension.Array[E]) []string {
	t.Helper()
	keys, err := extension.Keys(a)
	require.NoError(t, err)
	return keys
}

// assertElementsEqual compares element-wise by canonical key.
func assertElementsEqual[E extension.Element](t *testing.T, want []E, got extension.Array[E]) {
	t.Helper()
	wantKeys := make([]string, len(want))
	for i, e := range want {
		wantKeys[i] = mustKey(t, e)
	}
	if diff := cmp.Diff(wantKeys, keysOf(t, got)); diff != "" {
		t.Errorf("elements mismatch (-want +got):\n%s", diff)
	}
}

// assertArraysEqual compares two arrays by dtype, length and elements.
func assertArraysEqual[E extension.Element](t *testing.T, want, got extension.Array[E]) {
	t.Helper()
	require.Equal(t, want.Dtype().Name(), got.Dtype().Name(), "dtype")
	if diff := cmp.Diff(keysOf(t, want), keysOf(t, got)); diff != "" {
		t.Errorf("arrays differ (-want +got):\n%s", diff)
	}
}

// assertSameType checks that got has the concrete type of want.
func assertSameType[E extension.Element](t *testing.T, want, got extension.Array[E]) {
	t.Helper()
	require.Equal(t, reflect.TypeOf(want), reflect.TypeOf(got), "concrete array type")
}

func head[E extension.Element](t *testing.T, a extension.Array[E], n int) []E {
	t.Helper()
	out := make([]E, n)
	for i := range out {
		out[i] = mustAt(t, a, i)
	}
	return out
}
