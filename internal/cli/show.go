package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/store"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	Head int
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{}

	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a stored column",
		Long: `Print a stored column, one element per line as canonical JSON prefixed
with its position. --head limits the output to the first N elements.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
				return runShow(ctx, s, f, opts, args[0])
			})
		},
	}

	cmd.Flags().IntVar(&opts.Head, "head", 0, "show only the first N elements (0 = all)")

	return cmd
}

func runShow(ctx context.Context, s *store.Store, f *OutputFormatter, opts *ShowOptions, name string) error {
	info, err := s.StatColumn(ctx, name)
	if err != nil {
		return fail(f, "", err)
	}
	arr, err := loadColumn(ctx, s, f, name)
	if err != nil {
		return err
	}

	if opts.Head > 0 && opts.Head < arr.Len() {
		head, err := arr.Get(extension.SliceTo(opts.Head))
		if err != nil {
			return fail(f, "", err)
		}
		arr = head.(*jsonarray.Array)
	}

	return f.Success(showResult{Column: info, Elements: arr})
}
