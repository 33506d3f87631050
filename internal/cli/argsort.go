package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/store"
	"github.com/roach88/extarray/internal/value"
)

// NewArgsortCommand creates the argsort command.
func NewArgsortCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "argsort <name>",
		Short: "Positions that sort a column",
		Long: `Print the positions that order a column by canonical JSON. The sort is
stable and missing elements go last.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
				arr, err := loadColumn(ctx, s, f, args[0])
				if err != nil {
					return err
				}
				order, err := extension.Argsort[value.Object](arr)
				if err != nil {
					return fail(f, "", err)
				}
				return f.Success(argsortResult{Source: args[0], Order: order})
			})
		},
	}

	return cmd
}
