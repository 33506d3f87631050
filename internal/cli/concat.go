package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/store"
	"github.com/roach88/extarray/internal/value"
)

// NewConcatCommand creates the concat command.
func NewConcatCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "concat <output> <name>...",
		Short: "Concatenate columns into a new column",
		Long: `Concatenate stored columns in argument order and save the result as
<output>. Duplicates are kept.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
				return runConcat(ctx, s, f, args[0], args[1:])
			})
		},
	}

	return cmd
}

func runConcat(ctx context.Context, s *store.Store, f *OutputFormatter, output string, names []string) error {
	parts := make([]extension.Array[value.Object], len(names))
	for i, name := range names {
		arr, err := loadColumn(ctx, s, f, name)
		if err != nil {
			return err
		}
		parts[i] = arr
	}

	// The first part's constructor keeps its schema
	result, err := parts[0].Constructor().ConcatSameType(parts)
	if err != nil {
		return fail(f, "", err)
	}
	return finishArray(ctx, s, f, names[0], output, result)
}
