package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/store"
)

// NewUniqueCommand creates the unique command.
func NewUniqueCommand(rootOpts *RootOptions) *cobra.Command {
	var save string

	cmd := &cobra.Command{
		Use:           "unique <name>",
		Short:         "Distinct elements in first-occurrence order",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
				arr, err := loadColumn(ctx, s, f, args[0])
				if err != nil {
					return err
				}
				result, err := arr.Unique()
				if err != nil {
					return fail(f, "", err)
				}
				return finishArray(ctx, s, f, args[0], save, result)
			})
		},
	}

	addSaveFlag(cmd, &save)

	return cmd
}
