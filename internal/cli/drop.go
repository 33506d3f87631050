package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/store"
)

// NewDropCommand creates the drop command.
func NewDropCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "drop <name>",
		Short:         "Delete a stored column",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
				if err := s.DeleteColumn(ctx, args[0]); err != nil {
					return failStore(f, err)
				}
				return f.Success(dropResult{Name: args[0]})
			})
		},
	}

	return cmd
}
