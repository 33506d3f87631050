package jsonarray

import (
	"math/rand/v2"

	"github.com/roach88/extarray/internal/value"
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// MakeData generates n random elements: each has up to 10 keys drawn from
// the ASCII letters, mapped to ints in [0, 100]. Repeated keys collapse, so
// elements may be empty. Pass a seeded rng for reproducible data.
func MakeData(rng *rand.Rand, n int) []value.Object {
	out := make([]value.Object, n)
	for i := range out {
		size := rng.IntN(11)
		obj := make(value.Object, size)
		for j := 0; j < size; j++ {
			key := string(letters[rng.IntN(len(letters))])
			obj[key] = value.Int(rng.IntN(101))
		}
		out[i] = obj
	}
	return out
}

// MakeNonEmptyData is MakeData with every element guaranteed to have at
// least one key, i.e. no element equals the missing sentinel.
func MakeNonEmptyData(rng *rand.Rand, n int) []value.Object {
	out := MakeData(rng, n)
	for i, obj := range out {
		if len(obj) == 0 {
			out[i] = value.Object{string(letters[rng.IntN(len(letters))]): value.Int(rng.IntN(101))}
		}
	}
	return out
}

// MakeDataMissing returns a two-element column: the missing sentinel
// followed by a valid element.
func MakeDataMissing() []value.Object {
	return []value.Object{{}, {"a": value.Int(10)}}
}
