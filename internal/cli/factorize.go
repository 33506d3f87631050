package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/store"
	"github.com/roach88/extarray/internal/value"
)

// NewFactorizeCommand creates the factorize command.
func NewFactorizeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "factorize <name>",
		Short: "Encode a column as integer codes plus uniques",
		Long: `Encode a column as integer codes into its distinct elements.

Codes are assigned in first-occurrence order; missing elements get -1 and do
not appear among the uniques.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
				arr, err := loadColumn(ctx, s, f, args[0])
				if err != nil {
					return err
				}
				codes, uniques, err := extension.Factorize[value.Object](arr)
				if err != nil {
					return fail(f, "", err)
				}
				return f.Success(factorizeResult{
					Source:  args[0],
					Codes:   codes,
					Uniques: uniques.(*jsonarray.Array),
				})
			})
		},
	}

	return cmd
}
