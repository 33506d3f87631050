package jsonarray

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/extarray/internal/value"
)

// ElementDefinition is the CUE definition used as the element schema when a
// schema source declares it. Otherwise the whole source value is the schema.
const ElementDefinition = "#Element"

// Schema constrains the shape of json elements with a CUE value.
//
// Example schema source:
//
//	#Element: {
//		name:  string
//		count: int & >=0
//		...
//	}
//
// Not safe for concurrent use; the underlying cue.Context is shared.
type Schema struct {
	ctx    *cue.Context
	value  cue.Value
	source string
	text   string
}

// CompileSchema compiles CUE source into a Schema. filename is used in
// error positions only.
func CompileSchema(src []byte, filename string) (*Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(filename))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile schema: %w", formatCUEError(err))
	}

	if def := v.LookupPath(cue.ParsePath(ElementDefinition)); def.Exists() {
		v = def
	}

	return &Schema{ctx: ctx, value: v, source: filename, text: string(src)}, nil
}

// LoadSchema reads and compiles a CUE schema file.
func LoadSchema(path string) (*Schema, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return CompileSchema(src, path)
}

// Source returns the filename the schema was compiled from.
func (s *Schema) Source() string {
	return s.source
}

// Text returns the CUE source the schema was compiled from.
func (s *Schema) Text() string {
	return s.text
}

// Check unifies obj with the schema and requires a concrete, error-free
// result.
func (s *Schema) Check(obj value.Object) error {
	data, err := value.MarshalCanonical(obj)
	if err != nil {
		return err
	}

	// JSON is valid CUE
	elem := s.ctx.CompileBytes(data)
	if err := elem.Err(); err != nil {
		return fmt.Errorf("element is not valid CUE: %w", err)
	}

	unified := s.value.Unify(elem)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// SchemaError is a CUE failure with its source position, when known.
type SchemaError struct {
	Message string
	Pos     token.Pos
}

func (e *SchemaError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return e.Message
}

// formatCUEError keeps the first of possibly many CUE errors, with position
// info when it has any.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	se := &SchemaError{Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		se.Pos = positions[0]
	}
	return se
}
