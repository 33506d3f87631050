package extension

import (
	"fmt"
	"slices"
	"strings"
)

// Factorize maps each element of a to a code and returns the codes together
// with the uniques array. Codes are assigned in first-occurrence order;
// missing elements get code -1. uniques.Take(codes, true, nil) reproduces a.
func Factorize[E Element](a Array[E]) ([]int, Array[E], error) {
	keys, naKey, err := a.ValuesForFactorize()
	if err != nil {
		return nil, nil, fmt.Errorf("factorize: %w", err)
	}

	codes := make([]int, len(keys))
	seen := make(map[string]int, len(keys))
	var uniqueKeys []string
	for i, k := range keys {
		if k == naKey {
			codes[i] = -1
			continue
		}
		code, ok := seen[k]
		if !ok {
			code = len(uniqueKeys)
			seen[k] = code
			uniqueKeys = append(uniqueKeys, k)
		}
		codes[i] = code
	}

	uniques, err := a.Constructor().FromFactorized(uniqueKeys, a)
	if err != nil {
		return nil, nil, fmt.Errorf("factorize: %w", err)
	}
	return codes, uniques, nil
}

// Reindex aligns a, labelled by its default range index 0..Len-1, to
// labels. Labels with no matching position become the missing sentinel.
func Reindex[E Element](a Array[E], labels []int) (Array[E], error) {
	n := a.Len()
	positions := make([]int, len(labels))
	for i, label := range labels {
		if label >= 0 && label < n {
			positions[i] = label
		} else {
			positions[i] = -1
		}
	}
	return a.Take(positions, true, nil)
}

// Argsort returns the positions that order a by sort key. The sort is
// stable and missing elements go last.
func Argsort[E Element](a Array[E]) ([]int, error) {
	keys, err := a.ValuesForArgsort()
	if err != nil {
		return nil, fmt.Errorf("argsort: %w", err)
	}
	na := a.IsNA()

	order := make([]int, len(keys))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(x, y int) int {
		switch {
		case na[x] && na[y]:
			return 0
		case na[x]:
			return 1
		case na[y]:
			return -1
		}
		return strings.Compare(keys[x], keys[y])
	})
	return order, nil
}

// FirstOccurrences returns, for a list of keys, the position of the first
// occurrence of each distinct key in order of appearance.
func FirstOccurrences(keys []string) []int {
	seen := make(map[string]struct{}, len(keys))
	out := []int{}
	for i, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, i)
	}
	return out
}

// Keys returns the canonical key of every element of a.
func Keys[E Element](a Array[E]) ([]string, error) {
	keys := make([]string, a.Len())
	for i := range keys {
		e, err := a.At(i)
		if err != nil {
			return nil, err
		}
		k, err := e.CanonicalKey()
		if err != nil {
			return nil, NewTypeMismatch(i, err)
		}
		keys[i] = k
	}
	return keys, nil
}

// Equal reports whether a and b have the same dtype and element-wise equal
// canonical keys.
func Equal[E Element](a, b Array[E]) (bool, error) {
	if a.Dtype().Name() != b.Dtype().Name() || a.Len() != b.Len() {
		return false, nil
	}
	ka, err := Keys(a)
	if err != nil {
		return false, err
	}
	kb, err := Keys(b)
	if err != nil {
		return false, err
	}
	return slices.Equal(ka, kb), nil
}
