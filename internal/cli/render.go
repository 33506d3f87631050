package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/store"
)

// arrayResult is the output of every command that produces a column.
type arrayResult struct {
	Source   string            `json:"source"`
	Length   int               `json:"length"`
	Elements *jsonarray.Array  `json:"elements"`
	Saved    *store.ColumnInfo `json:"saved,omitempty"`
}

func newArrayResult(source string, arr *jsonarray.Array, saved *store.ColumnInfo) arrayResult {
	return arrayResult{Source: source, Length: arr.Len(), Elements: arr, Saved: saved}
}

func (r arrayResult) renderText(w io.Writer) error {
	if err := writeElements(w, r.Elements); err != nil {
		return err
	}
	if r.Saved != nil {
		successStyle.Fprint(w, "✓")
		fmt.Fprintf(w, " saved %d element(s) as %s\n", r.Saved.Length, r.Saved.Name)
	}
	return nil
}

// writeElements prints one "position<TAB>canonical JSON" line per element.
func writeElements(w io.Writer, arr *jsonarray.Array) error {
	for i, obj := range arr.Values() {
		key, err := obj.CanonicalKey()
		if err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
		faintStyle.Fprintf(w, "%d", i)
		fmt.Fprintf(w, "\t%s\n", key)
	}
	return nil
}

type importResult struct {
	File   string           `json:"file"`
	Format string           `json:"format"`
	Column store.ColumnInfo `json:"column"`
}

func (r importResult) renderText(w io.Writer) error {
	successStyle.Fprint(w, "✓")
	fmt.Fprintf(w, " imported %d element(s) from %s into %s\n", r.Column.Length, r.File, r.Column.Name)
	return nil
}

type showResult struct {
	Column   store.ColumnInfo `json:"column"`
	Elements *jsonarray.Array `json:"elements"`
}

func (r showResult) renderText(w io.Writer) error {
	fmt.Fprintf(w, "%s: %s, %d element(s)", r.Column.Name, r.Column.Dtype, r.Column.Length)
	if r.Column.SchemaName != "" {
		fmt.Fprintf(w, ", schema %s", r.Column.SchemaName)
	}
	fmt.Fprintln(w)
	return writeElements(w, r.Elements)
}

type factorizeResult struct {
	Source  string           `json:"source"`
	Codes   []int            `json:"codes"`
	Uniques *jsonarray.Array `json:"uniques"`
}

func (r factorizeResult) renderText(w io.Writer) error {
	fmt.Fprintf(w, "codes: %s\n", joinInts(r.Codes))
	fmt.Fprintf(w, "uniques: %d\n", r.Uniques.Len())
	return writeElements(w, r.Uniques)
}

type argsortResult struct {
	Source string `json:"source"`
	Order  []int  `json:"order"`
}

func (r argsortResult) renderText(w io.Writer) error {
	fmt.Fprintf(w, "order: %s\n", joinInts(r.Order))
	return nil
}

type listResult struct {
	Columns []store.ColumnInfo `json:"columns"`
}

func (r listResult) renderText(w io.Writer) error {
	if len(r.Columns) == 0 {
		fmt.Fprintln(w, "no columns")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tDTYPE\tLENGTH\tSCHEMA")
	for _, c := range r.Columns {
		schema := c.SchemaName
		if schema == "" {
			schema = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.Name, c.Dtype, c.Length, schema)
	}
	return tw.Flush()
}

type dropResult struct {
	Name string `json:"name"`
}

func (r dropResult) renderText(w io.Writer) error {
	successStyle.Fprint(w, "✓")
	fmt.Fprintf(w, " dropped %s\n", r.Name)
	return nil
}

type validationFailure struct {
	Position int    `json:"position"`
	Message  string `json:"message"`
}

type validateResult struct {
	Name     string              `json:"name"`
	Schema   string              `json:"schema"`
	Valid    bool                `json:"valid"`
	Checked  int                 `json:"checked"`
	Failures []validationFailure `json:"failures,omitempty"`
}

func (r validateResult) renderText(w io.Writer) error {
	if r.Valid {
		successStyle.Fprint(w, "✓")
		fmt.Fprintf(w, " %s: %d element(s) valid against %s\n", r.Name, r.Checked, r.Schema)
		return nil
	}
	errorStyle.Fprint(w, "✗")
	fmt.Fprintf(w, " %s: %d of %d element(s) invalid against %s\n", r.Name, len(r.Failures), r.Checked, r.Schema)
	for _, f := range r.Failures {
		fmt.Fprintf(w, "  %d: %s\n", f.Position, f.Message)
	}
	return nil
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
