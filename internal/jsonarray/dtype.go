package jsonarray

import (
	"fmt"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/value"
)

const (
	// DtypeName is the registered name of the json dtype.
	DtypeName = "json"

	// Kind is the element-type tag of the json dtype.
	Kind = "mapping"

	// naKey is the canonical key of the missing sentinel.
	naKey = "{}"
)

// Dtype is the json dtype. The zero value is usable and has no schema.
type Dtype struct {
	schema *Schema
}

var (
	_ extension.Dtype                     = (*Dtype)(nil)
	_ extension.Constructor[value.Object] = (*Dtype)(nil)
)

var defaultDtype = &Dtype{}

func init() {
	extension.RegisterDtype(defaultDtype)
}

// DtypeOption configures a Dtype.
type DtypeOption func(*Dtype)

// WithSchema constrains elements to those accepted by s.
func WithSchema(s *Schema) DtypeOption {
	return func(d *Dtype) {
		d.schema = s
	}
}

// NewDtype creates a json dtype.
func NewDtype(opts ...DtypeOption) *Dtype {
	d := &Dtype{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DefaultDtype returns the registered, schema-less json dtype.
func DefaultDtype() *Dtype {
	return defaultDtype
}

// Name implements extension.Dtype.
func (d *Dtype) Name() string { return DtypeName }

// Kind implements extension.Dtype.
func (d *Dtype) Kind() string { return Kind }

// String returns the dtype name.
func (d *Dtype) String() string { return DtypeName }

// Schema returns the element schema, or nil.
func (d *Dtype) Schema() *Schema { return d.schema }

// ConstructFromString implements extension.Dtype. Only "json" is accepted;
// the result is d itself so a schema survives the round trip.
func (d *Dtype) ConstructFromString(name string) (extension.Dtype, error) {
	if name != DtypeName {
		return nil, extension.NewDtypeParse(name)
	}
	return d, nil
}

// NAValue returns a fresh missing sentinel.
func (d *Dtype) NAValue() value.Object {
	return value.Object{}
}

// Validate checks obj against the value rules and the schema, if any.
// The missing sentinel is always valid.
func (d *Dtype) Validate(obj value.Object) error {
	if len(obj) == 0 {
		return nil
	}
	if err := value.Validate(obj); err != nil {
		return err
	}
	if d.schema != nil {
		if err := d.schema.Check(obj); err != nil {
			return err
		}
	}
	return nil
}

// coerce turns a dynamic value into an element, or explains why it cannot.
func (d *Dtype) coerce(v value.Value) (value.Object, error) {
	obj, ok := v.(value.Object)
	if !ok {
		return nil, fmt.Errorf("expected object, got %s", value.Kind(v))
	}
	if err := d.Validate(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

// FromSequence implements extension.Constructor.
func (d *Dtype) FromSequence(elems []value.Object) (extension.Array[value.Object], error) {
	return NewWithDtype(d, elems)
}

// FromFactorized implements extension.Constructor. Keys are canonical JSON;
// the missing sentinel's key is skipped.
func (d *Dtype) FromFactorized(keys []string, original extension.Array[value.Object]) (extension.Array[value.Object], error) {
	dt := d
	if o, ok := original.(*Array); ok && o != nil {
		dt = o.dt()
	}
	out := make([]value.Object, 0, len(keys))
	for i, k := range keys {
		if k == naKey {
			continue
		}
		v, err := value.Unmarshal([]byte(k))
		if err != nil {
			return nil, extension.NewTypeMismatch(i, err)
		}
		obj, err := dt.coerce(v)
		if err != nil {
			return nil, extension.NewTypeMismatch(i, err)
		}
		out = append(out, obj)
	}
	return &Array{dtype: dt, data: out}, nil
}

// ConcatSameType implements extension.Constructor.
func (d *Dtype) ConcatSameType(parts []extension.Array[value.Object]) (extension.Array[value.Object], error) {
	if err := extension.CheckSameDtype(extension.Dtype(d), parts); err != nil {
		return nil, err
	}
	total := 0
	for _, p := range parts {
		total += p.Len()
	}
	out := make([]value.Object, 0, total)
	for _, p := range parts {
		// Parts already checked by d's schema need no second pass
		if arr, ok := p.(*Array); ok && (d.schema == nil || arr.dt().schema == d.schema) {
			out = append(out, arr.data...)
			continue
		}
		for i := 0; i < p.Len(); i++ {
			e, err := p.At(i)
			if err != nil {
				return nil, err
			}
			if err := d.Validate(e); err != nil {
				return nil, extension.NewTypeMismatch(len(out), err)
			}
			out = append(out, e)
		}
	}
	return &Array{dtype: d, data: out}, nil
}
