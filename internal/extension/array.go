package extension

import "fmt"

// Element is the capability every element type provides: a comparable
// surrogate key. Equal elements must yield equal keys regardless of identity,
// which is what factorization and uniqueness rely on.
type Element interface {
	CanonicalKey() (string, error)
}

// Array is the extension array contract.
//
// Implementations own their element storage exclusively. Results of Get,
// Take, Copy, Unique and the constructor methods are new arrays; only
// Copy(false) shares element references with the source.
type Array[E Element] interface {
	// Dtype returns the descriptor of the element type.
	Dtype() Dtype

	// Len returns the number of elements.
	Len() int

	// At returns the element at i. Negative i counts from the end;
	// anything outside [-Len, Len) is IndexOutOfRange.
	At(i int) (E, error)

	// Get returns a new array with the selected elements in selection order.
	// A Position selects a one-element array; use At for the scalar.
	Get(idx Indexer) (Array[E], error)

	// Set assigns values to the selected positions. A single value is
	// broadcast; otherwise the count must match the selection (or, for a
	// Mask, the mask length). The first invalid value aborts with
	// TypeMismatch; earlier writes stay.
	Set(idx Indexer, values ...E) error

	// Take gathers indices. With allowFill, -1 yields fill (the missing
	// sentinel when fill is nil).
	Take(indices []int, allowFill bool, fill *E) (Array[E], error)

	// NAValue returns the missing sentinel.
	NAValue() E

	// IsNA reports, per position, whether the element is the missing sentinel.
	IsNA() []bool

	// Copy returns a new array. deep also clones every element.
	Copy(deep bool) Array[E]

	// Unique returns one representative per distinct element.
	Unique() (Array[E], error)

	// NBytes returns the size of the backing container in bytes.
	NBytes() int

	// ValuesForFactorize returns one surrogate key per element and the key
	// that stands for the missing sentinel.
	ValuesForFactorize() (keys []string, naKey string, err error)

	// ValuesForArgsort returns the sort keys of the elements.
	ValuesForArgsort() ([]string, error)

	// Constructor returns the constructors for this array's concrete type.
	Constructor() Constructor[E]
}

// Constructor builds arrays of one concrete type.
type Constructor[E Element] interface {
	// FromSequence builds an array from typed elements, validating each.
	FromSequence(elems []E) (Array[E], error)

	// FromFactorized rebuilds an array from unique surrogate keys, skipping
	// the key of the missing sentinel. original supplies the dtype.
	FromFactorized(keys []string, original Array[E]) (Array[E], error)

	// ConcatSameType concatenates parts in argument order.
	ConcatSameType(parts []Array[E]) (Array[E], error)
}

// Gather returns data at the positions selected by idx.
func Gather[E any](data []E, idx Indexer) ([]E, error) {
	positions, err := Resolve(idx, len(data))
	if err != nil {
		return nil, err
	}
	out := make([]E, len(positions))
	for i, p := range positions {
		out[i] = data[p]
	}
	return out, nil
}

// TakeElements implements take-with-fill over a plain slice.
//
// With allowFill, -1 yields fill, other negatives count from the end and
// must stay within [-n, -2]. Without allowFill every index must be in
// [-n, n). Any non-fill index against an empty slice is EmptyTake.
func TakeElements[E any](data []E, indices []int, allowFill bool, fill E) ([]E, error) {
	n := len(data)
	out := make([]E, len(indices))
	for i, raw := range indices {
		if allowFill && raw == -1 {
			out[i] = fill
			continue
		}
		if n == 0 {
			return nil, NewEmptyTake()
		}
		p, err := NormalizeIndex(raw, n)
		if err != nil {
			return nil, err
		}
		out[i] = data[p]
	}
	return out, nil
}

// Assign writes values into data at the positions selected by idx.
// check is called with the target position before each value is written.
//
// Value counts:
//   - one value is broadcast to every selected position
//   - len(selected) values are consumed in selection order
//   - for a Mask, len(mask) values are aligned with the mask itself
func Assign[E any](data []E, idx Indexer, values []E, check func(p int, v E) error) error {
	return AssignFunc(len(data), idx, values, func(p int, v E) error {
		if err := check(p, v); err != nil {
			return err
		}
		data[p] = v
		return nil
	})
}

// AssignFunc is Assign for values that need converting before they can be
// stored. write performs both the check and the store for position p.
func AssignFunc[V any](n int, idx Indexer, values []V, write func(p int, v V) error) error {
	positions, err := Resolve(idx, n)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		if len(positions) == 0 {
			return nil
		}
		return NewInvalidIndexer("no values to assign to %d positions", len(positions))
	}

	pick, err := valueSelector(idx, positions, len(values))
	if err != nil {
		return err
	}

	for i, p := range positions {
		if err := write(p, values[pick(i, p)]); err != nil {
			return err
		}
	}
	return nil
}

// valueSelector maps the i-th selected position p to an index into values.
func valueSelector(idx Indexer, positions []int, count int) (func(i, p int) int, error) {
	switch {
	case count == 1:
		return func(int, int) int { return 0 }, nil
	case count == len(positions):
		return func(i, _ int) int { return i }, nil
	}
	if m, ok := idx.(Mask); ok && count == len(m) {
		return func(_, p int) int { return p }, nil
	}
	return nil, NewInvalidIndexer("cannot assign %d values to %d positions", count, len(positions))
}

// CheckSameDtype verifies that every part shares want's dtype name.
func CheckSameDtype[E Element](want Dtype, parts []Array[E]) error {
	for i, p := range parts {
		if p == nil {
			return NewTypeMismatch(i, fmt.Errorf("nil array"))
		}
		if got := p.Dtype().Name(); got != want.Name() {
			return NewTypeMismatch(i, fmt.Errorf("dtype %q, want %q", got, want.Name()))
		}
	}
	return nil
}
