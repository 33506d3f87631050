package extension

// Indexer is a sealed interface over the selection shapes the contract
// accepts. Only Position, Positions, Mask and Slice implement it.
type Indexer interface {
	indexer() // Sealed
}

// Position selects a single element. Negative values count from the end.
type Position int

func (Position) indexer() {}

// Positions selects elements in the given order (fancy indexing).
// Each entry is validated independently; negatives count from the end.
type Positions []int

func (Positions) indexer() {}

// Mask selects the elements where the mask is true. Its length must equal
// the array length.
type Mask []bool

func (Mask) indexer() {}

// Slice selects a range with Python slice semantics. A nil bound is open;
// a zero Step means 1. Bounds are clamped, never out of range.
type Slice struct {
	Start *int
	Stop  *int
	Step  int
}

func (Slice) indexer() {}

// Bound returns a pointer to i for use as a Slice bound.
func Bound(i int) *int {
	return &i
}

// SliceAll selects every element.
func SliceAll() Slice {
	return Slice{}
}

// SliceTo selects [0, stop).
func SliceTo(stop int) Slice {
	return Slice{Stop: Bound(stop)}
}

// SliceRange selects [start, stop).
func SliceRange(start, stop int) Slice {
	return Slice{Start: Bound(start), Stop: Bound(stop)}
}

// Indices resolves s against an array of length n into concrete start,
// stop and step values, as Python's slice.indices does.
func (s Slice) Indices(n int) (start, stop, step int) {
	step = s.Step
	if step == 0 {
		step = 1
	}

	lower, upper := 0, n
	if step < 0 {
		lower, upper = -1, n-1
	}

	clamp := func(b *int, def int) int {
		if b == nil {
			return def
		}
		v := *b
		if v < 0 {
			v += n
			if v < lower {
				v = lower
			}
		} else if v > upper {
			v = upper
		}
		return v
	}

	if step > 0 {
		start = clamp(s.Start, lower)
		stop = clamp(s.Stop, upper)
	} else {
		start = clamp(s.Start, upper)
		stop = clamp(s.Stop, lower)
	}
	return start, stop, step
}

// Positions returns the concrete positions selected by s on length n.
func (s Slice) Positions(n int) []int {
	start, stop, step := s.Indices(n)
	out := []int{}
	if step > 0 {
		for i := start; i < stop; i += step {
			out = append(out, i)
		}
	} else {
		for i := start; i > stop; i += step {
			out = append(out, i)
		}
	}
	return out
}

// NormalizeIndex maps i into [0, n), counting negatives from the end.
func NormalizeIndex(i, n int) (int, error) {
	if i < -n || i >= n {
		return 0, NewIndexOutOfRange(i, n)
	}
	if i < 0 {
		i += n
	}
	return i, nil
}

// Resolve returns the positions selected by idx on an array of length n,
// in selection order. Every returned position is in [0, n).
func Resolve(idx Indexer, n int) ([]int, error) {
	switch ix := idx.(type) {
	case Position:
		p, err := NormalizeIndex(int(ix), n)
		if err != nil {
			return nil, err
		}
		return []int{p}, nil
	case Positions:
		out := make([]int, len(ix))
		for i, raw := range ix {
			p, err := NormalizeIndex(raw, n)
			if err != nil {
				return nil, err
			}
			out[i] = p
		}
		return out, nil
	case Mask:
		if len(ix) != n {
			return nil, NewInvalidIndexer("boolean mask length %d does not match array length %d", len(ix), n)
		}
		out := []int{}
		for i, m := range ix {
			if m {
				out = append(out, i)
			}
		}
		return out, nil
	case Slice:
		return ix.Positions(n), nil
	case nil:
		return nil, NewInvalidIndexer("nil indexer")
	default:
		return nil, NewInvalidIndexer("unsupported indexer %T", idx)
	}
}
