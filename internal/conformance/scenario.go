package conformance

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/extarray/internal/extension"
)

// Scenario is a data-driven conformance case: an input column and a list of
// operations with their expected outcome.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Data is the input column, one document per element.
	Data []any `yaml:"data"`

	// Steps run in order against a fresh copy of Data.
	Steps []Step `yaml:"steps"`
}

// Step is one operation and its expectation. A step names Error, or at
// least one of Expect, Codes (factorize) and Order (argsort); a step with
// none of them is rejected at load.
type Step struct {
	// Op is the operation name, one of the Op* constants.
	Op string `yaml:"op"`

	// Indices are the take positions.
	Indices []int `yaml:"indices,omitempty"`

	// AllowFill enables -1 as the fill marker for take.
	AllowFill bool `yaml:"allow_fill,omitempty"`

	// Fill is an optional fill element for take.
	Fill any `yaml:"fill,omitempty"`

	// Labels are the reindex targets.
	Labels []int `yaml:"labels,omitempty"`

	// Mask selects elements for get_mask.
	Mask []bool `yaml:"mask,omitempty"`

	// Positions select elements for get_positions.
	Positions []int `yaml:"positions,omitempty"`

	// Start, Stop and Step bound get_slice. Nil bounds are open.
	Start *int `yaml:"start,omitempty"`
	Stop  *int `yaml:"stop,omitempty"`
	Step  int  `yaml:"step,omitempty"`

	// Expect is the expected resulting column (uniques for factorize).
	Expect []any `yaml:"expect,omitempty"`

	// Codes are the expected factorize codes.
	Codes []int `yaml:"codes,omitempty"`

	// Order is the expected argsort permutation.
	Order []int `yaml:"order,omitempty"`

	// Error is the expected error code, e.g. INDEX_OUT_OF_RANGE.
	Error string `yaml:"error,omitempty"`
}

// Supported step operations.
const (
	OpTake         = "take"
	OpReindex      = "reindex"
	OpGetMask      = "get_mask"
	OpGetSlice     = "get_slice"
	OpGetPositions = "get_positions"
	OpUnique       = "unique"
	OpFactorize    = "factorize"
	OpArgsort      = "argsort"
)

var knownOps = map[string]bool{
	OpTake: true, OpReindex: true, OpGetMask: true, OpGetSlice: true,
	OpGetPositions: true, OpUnique: true, OpFactorize: true, OpArgsort: true,
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so typos surface as errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var s Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

// LoadScenarios loads every *.yaml file in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)

	out := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		out = append(out, s)
	}
	return out, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	for i, step := range s.Steps {
		if !knownOps[step.Op] {
			return fmt.Errorf("steps[%d]: unknown op %q", i, step.Op)
		}
		if step.Error != "" && (step.Expect != nil || step.Codes != nil || step.Order != nil) {
			return fmt.Errorf("steps[%d]: error cannot be combined with an expected result", i)
		}
		if step.Op == OpGetMask && step.Mask == nil {
			return fmt.Errorf("steps[%d]: mask is required for get_mask", i)
		}
		if step.Error == "" && step.Expect == nil && step.Codes == nil && step.Order == nil {
			return fmt.Errorf("steps[%d]: an expectation (expect, codes, order or error) is required", i)
		}
	}
	return nil
}

// Builder turns decoded documents into an array of the implementation
// under test.
type Builder[E extension.Element] func(docs []any) (extension.Array[E], error)

// RunScenarios runs every scenario as a sub-test.
func RunScenarios[E extension.Element](t *testing.T, build Builder[E], scenarios []*Scenario) {
	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			for i, step := range s.Steps {
				t.Run(fmt.Sprintf("%02d_%s", i, step.Op), func(t *testing.T) {
					data, err := build(s.Data)
					require.NoError(t, err, "build data")
					runStep(t, build, data, step)
				})
			}
		})
	}
}

func runStep[E extension.Element](t *testing.T, build Builder[E], data extension.Array[E], step Step) {
	t.Helper()

	var (
		got   extension.Array[E]
		codes []int
		order []int
		err   error
	)
	switch step.Op {
	case OpTake:
		var fill *E
		if step.Fill != nil {
			fa, ferr := build([]any{step.Fill})
			require.NoError(t, ferr, "build fill")
			f := mustAt(t, fa, 0)
			fill = &f
		}
		got, err = data.Take(step.Indices, step.AllowFill, fill)
	case OpReindex:
		got, err = extension.Reindex(data, step.Labels)
	case OpGetMask:
		got, err = data.Get(extension.Mask(step.Mask))
	case OpGetSlice:
		got, err = data.Get(extension.Slice{Start: step.Start, Stop: step.Stop, Step: step.Step})
	case OpGetPositions:
		got, err = data.Get(extension.Positions(step.Positions))
	case OpUnique:
		got, err = data.Unique()
	case OpFactorize:
		codes, got, err = extension.Factorize(data)
	case OpArgsort:
		order, err = extension.Argsort(data)
	}

	if step.Error != "" {
		require.Error(t, err)
		assert.Equal(t, extension.ErrorCode(step.Error), extension.CodeOf(err), "error: %v", err)
		return
	}
	require.NoError(t, err)

	if step.Codes != nil {
		assert.Equal(t, step.Codes, codes)
	}
	if step.Order != nil {
		assert.Equal(t, step.Order, order)
	}
	if step.Expect != nil {
		want, err := build(step.Expect)
		require.NoError(t, err, "build expect")
		assertArraysEqual(t, want, got)
	}
}
