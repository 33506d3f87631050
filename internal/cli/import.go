package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/store"
	"github.com/roach88/extarray/internal/value"
)

// ImportOptions holds flags for the import command.
type ImportOptions struct {
	InputFormat string
	SchemaPath  string
	NFC         bool
}

// NewImportCommand creates the import command.
func NewImportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ImportOptions{}

	cmd := &cobra.Command{
		Use:   "import <name> <file>",
		Short: "Import a column from JSON, JSON Lines or YAML",
		Long: `Import a file of JSON objects as a column, replacing any column of the
same name.

The input format is inferred from the file extension (.json, .jsonl, .ndjson,
.yaml, .yml) unless --input-format is given. With --schema, every element is
checked against the CUE schema (its #Element definition when present) and the
schema stays attached to the stored column.

Strings and keys are stored exactly as written, so composed and decomposed
spellings of the same text are distinct elements. --nfc rewrites them to
Unicode Normalization Form C first.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(rootOpts, opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.InputFormat, "input-format", "", "input format (json|jsonl|yaml)")
	cmd.Flags().StringVar(&opts.SchemaPath, "schema", "", "CUE schema file constraining the elements")
	cmd.Flags().BoolVar(&opts.NFC, "nfc", false, "normalize strings and keys to Unicode NFC")

	return cmd
}

func runImport(rootOpts *RootOptions, opts *ImportOptions, name, path string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	format := opts.InputFormat
	if format == "" {
		detected, err := detectInputFormat(path)
		if err != nil {
			return fail(f, ErrCodeBadArgs, err)
		}
		format = detected
	} else if !slices.Contains(ValidInputFormats, format) {
		return fail(f, ErrCodeBadArgs, errors.New("invalid input format "+format))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		code := ErrCodeReadFailed
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return fail(f, code, err)
	}

	docs, err := parseDocuments(data, format)
	if err != nil {
		return fail(f, ErrCodeParseFailed, err)
	}
	f.VerboseLog("Parsed %d element(s) from %s as %s", len(docs), path, format)

	if opts.NFC {
		for i, doc := range docs {
			n, err := value.NormalizeNFC(doc)
			if err != nil {
				return fail(f, ErrCodeParseFailed, fmt.Errorf("element %d: %w", i, err))
			}
			docs[i] = n
		}
	}

	dtype := jsonarray.DefaultDtype()
	if opts.SchemaPath != "" {
		schema, err := jsonarray.LoadSchema(opts.SchemaPath)
		if err != nil {
			return fail(f, ErrCodeSchema, err)
		}
		dtype = jsonarray.NewDtype(jsonarray.WithSchema(schema))
		f.VerboseLog("Using schema %s", opts.SchemaPath)
	}

	arr, err := jsonarray.FromValues(dtype, docs)
	if err != nil {
		return fail(f, "", err)
	}

	return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
		info, err := s.SaveColumn(ctx, name, arr)
		if err != nil {
			return failStore(f, err)
		}
		return f.Success(importResult{File: path, Format: format, Column: info})
	})
}
