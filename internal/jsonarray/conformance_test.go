package jsonarray

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/extarray/internal/conformance"
	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/value"
)

func fixtures() conformance.Fixtures[value.Object] {
	return conformance.Fixtures[value.Object]{
		Data: func(t *testing.T) extension.Array[value.Object] {
			rng := rand.New(rand.NewPCG(42, 1))
			data := MakeNonEmptyData(rng, 100)
			// Data[0] and Data[1] must differ
			data[0] = value.Object{"first": value.Int(0)}
			data[1] = value.Object{"second": value.Int(1)}
			a, err := New(data)
			require.NoError(t, err)
			return a
		},
		DataMissing: func(t *testing.T) extension.Array[value.Object] {
			a, err := New(MakeDataMissing())
			require.NoError(t, err)
			return a
		},
		Invalid: func() value.Object {
			return value.Object{"x": nil}
		},
	}
}

func TestConformance_Getitem(t *testing.T) {
	conformance.RunGetitemSuite(t, fixtures())
}

func TestConformance_Setitem(t *testing.T) {
	conformance.RunSetitemSuite(t, fixtures())
}

func TestConformance_Methods(t *testing.T) {
	conformance.RunMethodsSuite(t, fixtures())
}

func TestConformance_Scenarios(t *testing.T) {
	scenarios, err := conformance.LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	build := func(docs []any) (extension.Array[value.Object], error) {
		return FromAny(nil, docs)
	}
	conformance.RunScenarios(t, build, scenarios)
}
