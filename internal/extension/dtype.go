package extension

import (
	"slices"
	"sync"
)

// Dtype describes the logical element type of an array, independent of how
// it is stored. Dtypes are compared by Name.
type Dtype interface {
	// Name is the stable string name; ConstructFromString(Name()) round-trips.
	Name() string

	// Kind is the element-type tag (e.g. "mapping").
	Kind() string

	// ConstructFromString returns the dtype named name, or a DtypeParse error.
	ConstructFromString(name string) (Dtype, error)
}

// Registry resolves dtype names to descriptors.
// Thread-safety: all methods are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	dtypes []Dtype
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds d. Registering a second dtype with the same name replaces
// the first.
func (r *Registry) Register(d Dtype) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.dtypes {
		if existing.Name() == d.Name() {
			r.dtypes[i] = d
			return
		}
	}
	r.dtypes = append(r.dtypes, d)
}

// Find asks each registered dtype, in registration order, to construct
// itself from name. Returns a DtypeParse error when none accepts it.
func (r *Registry) Find(name string) (Dtype, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.dtypes {
		if got, err := d.ConstructFromString(name); err == nil {
			return got, nil
		}
	}
	return nil, NewDtypeParse(name)
}

// Names returns the registered dtype names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.dtypes))
	for i, d := range r.dtypes {
		names[i] = d.Name()
	}
	slices.Sort(names)
	return names
}

var defaultRegistry = NewRegistry()

// RegisterDtype adds d to the process-wide registry.
func RegisterDtype(d Dtype) {
	defaultRegistry.Register(d)
}

// ParseDtype resolves name against the process-wide registry.
func ParseDtype(name string) (Dtype, error) {
	return defaultRegistry.Find(name)
}

// DtypeNames lists the names in the process-wide registry.
func DtypeNames() []string {
	return defaultRegistry.Names()
}
