package jsonarray

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unsafe"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/value"
)

// Array is an extension array of JSON objects.
type Array struct {
	dtype *Dtype
	data  []value.Object
}

var _ extension.Array[value.Object] = (*Array)(nil)

// New creates an array with the default dtype. elems is copied; the array
// never aliases the caller's slice.
func New(elems []value.Object) (*Array, error) {
	return NewWithDtype(defaultDtype, elems)
}

// NewWithDtype creates an array of dtype d, validating every element.
// Fails with TypeMismatch at the first invalid element.
func NewWithDtype(d *Dtype, elems []value.Object) (*Array, error) {
	if d == nil {
		d = defaultDtype
	}
	data := make([]value.Object, len(elems))
	for i, e := range elems {
		if err := d.Validate(e); err != nil {
			return nil, extension.NewTypeMismatch(i, err)
		}
		data[i] = e
	}
	return &Array{dtype: d, data: data}, nil
}

// MustNew is like New but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustNew(elems ...value.Object) *Array {
	a, err := New(elems)
	if err != nil {
		panic(err)
	}
	return a
}

// FromValues creates an array from dynamic values. Anything that is not an
// object is a TypeMismatch.
func FromValues(d *Dtype, vals []value.Value) (*Array, error) {
	if d == nil {
		d = defaultDtype
	}
	data := make([]value.Object, len(vals))
	for i, v := range vals {
		obj, err := d.coerce(v)
		if err != nil {
			return nil, extension.NewTypeMismatch(i, err)
		}
		data[i] = obj
	}
	return &Array{dtype: d, data: data}, nil
}

// FromAny creates an array from decoded JSON or YAML documents.
func FromAny(d *Dtype, docs []any) (*Array, error) {
	vals := make([]value.Value, len(docs))
	for i, doc := range docs {
		v, err := value.FromAny(doc)
		if err != nil {
			return nil, extension.NewTypeMismatch(i, err)
		}
		vals[i] = v
	}
	return FromValues(d, vals)
}

// dt returns a's dtype; a zero Array has the default dtype.
func (a *Array) dt() *Dtype {
	if a.dtype == nil {
		return defaultDtype
	}
	return a.dtype
}

func (a *Array) derive(data []value.Object) *Array {
	return &Array{dtype: a.dt(), data: data}
}

// Dtype implements extension.Array.
func (a *Array) Dtype() extension.Dtype { return a.dt() }

// JSONDtype returns the concrete dtype.
func (a *Array) JSONDtype() *Dtype { return a.dt() }

// Len implements extension.Array.
func (a *Array) Len() int { return len(a.data) }

// At implements extension.Array.
func (a *Array) At(i int) (value.Object, error) {
	p, err := extension.NormalizeIndex(i, len(a.data))
	if err != nil {
		return nil, err
	}
	return a.data[p], nil
}

// Get implements extension.Array.
func (a *Array) Get(idx extension.Indexer) (extension.Array[value.Object], error) {
	out, err := extension.Gather(a.data, idx)
	if err != nil {
		return nil, err
	}
	return a.derive(out), nil
}

// Set implements extension.Array.
func (a *Array) Set(idx extension.Indexer, values ...value.Object) error {
	return extension.Assign(a.data, idx, values, func(p int, v value.Object) error {
		if err := a.dt().Validate(v); err != nil {
			return extension.NewTypeMismatch(p, err)
		}
		return nil
	})
}

// SetValues is Set for dynamic values. A value that is not an object aborts
// the assignment with TypeMismatch; earlier writes stay.
func (a *Array) SetValues(idx extension.Indexer, values ...value.Value) error {
	return extension.AssignFunc(len(a.data), idx, values, func(p int, v value.Value) error {
		obj, err := a.dt().coerce(v)
		if err != nil {
			return extension.NewTypeMismatch(p, err)
		}
		a.data[p] = obj
		return nil
	})
}

// Take implements extension.Array.
func (a *Array) Take(indices []int, allowFill bool, fill *value.Object) (extension.Array[value.Object], error) {
	fillValue := a.NAValue()
	if fill != nil {
		if err := a.dt().Validate(*fill); err != nil {
			return nil, extension.NewTypeMismatch(-1, fmt.Errorf("fill value: %w", err))
		}
		fillValue = *fill
	}

	out, err := extension.TakeElements(a.data, indices, allowFill, fillValue)
	if err != nil {
		return nil, err
	}
	return a.derive(out), nil
}

// NAValue implements extension.Array.
func (a *Array) NAValue() value.Object { return a.dt().NAValue() }

// IsNA implements extension.Array.
func (a *Array) IsNA() []bool {
	out := make([]bool, len(a.data))
	for i, obj := range a.data {
		out[i] = len(obj) == 0
	}
	return out
}

// Copy implements extension.Array.
func (a *Array) Copy(deep bool) extension.Array[value.Object] {
	out := make([]value.Object, len(a.data))
	if !deep {
		copy(out, a.data)
		return a.derive(out)
	}
	for i, obj := range a.data {
		out[i] = value.CloneObject(obj)
	}
	return a.derive(out)
}

// Unique implements extension.Array. Representatives are returned in
// first-occurrence order.
func (a *Array) Unique() (extension.Array[value.Object], error) {
	keys, err := a.keys()
	if err != nil {
		return nil, err
	}
	first := extension.FirstOccurrences(keys)
	out := make([]value.Object, len(first))
	for i, p := range first {
		out[i] = a.data[p]
	}
	return a.derive(out), nil
}

// NBytes implements extension.Array.
func (a *Array) NBytes() int {
	return int(unsafe.Sizeof(a.data)) + cap(a.data)*int(unsafe.Sizeof(value.Object(nil)))
}

// ValuesForFactorize implements extension.Array.
func (a *Array) ValuesForFactorize() ([]string, string, error) {
	keys, err := a.keys()
	if err != nil {
		return nil, "", err
	}
	return keys, naKey, nil
}

// ValuesForArgsort implements extension.Array.
func (a *Array) ValuesForArgsort() ([]string, error) {
	return a.keys()
}

// Constructor implements extension.Array.
func (a *Array) Constructor() extension.Constructor[value.Object] { return a.dt() }

// Values returns a shallow copy of the elements.
func (a *Array) Values() []value.Object {
	out := make([]value.Object, len(a.data))
	copy(out, a.data)
	return out
}

func (a *Array) keys() ([]string, error) {
	keys := make([]string, len(a.data))
	for i, obj := range a.data {
		k, err := obj.CanonicalKey()
		if err != nil {
			return nil, extension.NewTypeMismatch(i, err)
		}
		keys[i] = k
	}
	return keys, nil
}

// MarshalJSON encodes the array as a JSON list of canonical objects.
func (a *Array) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, obj := range a.data {
		if i > 0 {
			buf.WriteByte(',')
		}
		if obj == nil {
			obj = value.Object{}
		}
		b, err := value.MarshalCanonical(obj)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON list of objects, keeping a's dtype (the
// default dtype for a zero Array).
func (a *Array) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	vals := make([]value.Value, len(raw))
	for i, r := range raw {
		v, err := value.Unmarshal(r)
		if err != nil {
			return extension.NewTypeMismatch(i, err)
		}
		vals[i] = v
	}
	parsed, err := FromValues(a.dtype, vals)
	if err != nil {
		return err
	}
	*a = *parsed
	return nil
}

// String renders the array like JSONArray([{"a":1},{}]).
func (a *Array) String() string {
	b, err := a.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("JSONArray(<invalid: %v>)", err)
	}
	return fmt.Sprintf("JSONArray(%s)", b)
}
