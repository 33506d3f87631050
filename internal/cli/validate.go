package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/store"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate <name> [--schema file.cue]",
		Short: "Check a column against a CUE schema",
		Long: `Check every element of a stored column against a CUE schema.

Without --schema, the schema stored with the column is used. Missing
elements ({}) always pass. Reports every failing position; exits 1 when any
element fails.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
				return runValidate(ctx, s, f, args[0], schemaPath)
			})
		},
	}

	cmd.Flags().StringVar(&schemaPath, "schema", "", "CUE schema file (default: the column's stored schema)")

	return cmd
}

func runValidate(ctx context.Context, s *store.Store, f *OutputFormatter, name, schemaPath string) error {
	arr, err := loadColumn(ctx, s, f, name)
	if err != nil {
		return err
	}

	schema := arr.JSONDtype().Schema()
	if schemaPath != "" {
		schema, err = jsonarray.LoadSchema(schemaPath)
		if err != nil {
			return fail(f, ErrCodeSchema, err)
		}
	}
	if schema == nil {
		return fail(f, ErrCodeBadArgs, fmt.Errorf("column %s has no stored schema: use --schema", name))
	}
	f.VerboseLog("Validating %s against %s", name, schema.Source())

	dtype := jsonarray.NewDtype(jsonarray.WithSchema(schema))
	result := validateResult{Name: name, Schema: schema.Source(), Checked: arr.Len()}
	for i, obj := range arr.Values() {
		if err := dtype.Validate(obj); err != nil {
			result.Failures = append(result.Failures, validationFailure{Position: i, Message: err.Error()})
		}
	}
	result.Valid = len(result.Failures) == 0

	if err := f.Success(result); err != nil {
		return err
	}
	if !result.Valid {
		return NewExitError(ExitFailure, fmt.Sprintf("%s: validation failed with %d error(s)", ErrCodeValidation, len(result.Failures)))
	}
	return nil
}
