package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/store"
	"github.com/roach88/extarray/internal/value"
)

// ReindexOptions holds flags for the reindex command.
type ReindexOptions struct {
	Labels []int
	Save   string
}

// NewReindexCommand creates the reindex command.
func NewReindexCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReindexOptions{}

	cmd := &cobra.Command{
		Use:   "reindex <name> --labels l,m,...",
		Short: "Align a column to new labels",
		Long: `Align a column, labelled 0..N-1, to the given labels. Labels with no
matching element become the missing sentinel {}.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
				arr, err := loadColumn(ctx, s, f, args[0])
				if err != nil {
					return err
				}
				result, err := extension.Reindex[value.Object](arr, opts.Labels)
				if err != nil {
					return fail(f, "", err)
				}
				return finishArray(ctx, s, f, args[0], opts.Save, result)
			})
		},
	}

	cmd.Flags().IntSliceVar(&opts.Labels, "labels", nil, "target labels")
	addSaveFlag(cmd, &opts.Save)

	return cmd
}
