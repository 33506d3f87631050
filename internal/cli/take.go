package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/store"
	"github.com/roach88/extarray/internal/value"
)

// TakeOptions holds flags for the take command.
type TakeOptions struct {
	Indices   []int
	AllowFill bool
	Fill      string
	Save      string
}

// NewTakeCommand creates the take command.
func NewTakeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TakeOptions{}

	cmd := &cobra.Command{
		Use:   "take <name> --indices i,j,...",
		Short: "Gather elements by position",
		Long: `Gather elements of a column by position.

Without --allow-fill, negative indices count from the end. With --allow-fill,
-1 produces the fill value (the missing sentinel {} unless --fill is given)
and other negative indices still count from the end.`,
		Example: `  extarray take parts --indices 0,2
  extarray take parts --indices 0,-1 --allow-fill --fill '{"name":"none"}'`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return columnCommand(rootOpts, cmd, func(ctx context.Context, s *store.Store, f *OutputFormatter) error {
				return runTake(ctx, s, f, opts, args[0])
			})
		},
	}

	cmd.Flags().IntSliceVar(&opts.Indices, "indices", nil, "positions to take")
	cmd.Flags().BoolVar(&opts.AllowFill, "allow-fill", false, "treat -1 as a request for the fill value")
	cmd.Flags().StringVar(&opts.Fill, "fill", "", "fill value as a JSON object (requires --allow-fill)")
	addSaveFlag(cmd, &opts.Save)

	return cmd
}

func runTake(ctx context.Context, s *store.Store, f *OutputFormatter, opts *TakeOptions, name string) error {
	var fill *value.Object
	if opts.Fill != "" {
		if !opts.AllowFill {
			return fail(f, ErrCodeBadArgs, fmt.Errorf("--fill requires --allow-fill"))
		}
		obj, err := parseObject(opts.Fill)
		if err != nil {
			return fail(f, ErrCodeBadArgs, fmt.Errorf("--fill: %w", err))
		}
		fill = &obj
	}

	arr, err := loadColumn(ctx, s, f, name)
	if err != nil {
		return err
	}

	result, err := arr.Take(opts.Indices, opts.AllowFill, fill)
	if err != nil {
		return fail(f, "", err)
	}
	return finishArray(ctx, s, f, name, opts.Save, result)
}

// parseObject decodes a JSON object given on the command line.
func parseObject(text string) (value.Object, error) {
	v, err := value.Unmarshal([]byte(text))
	if err != nil {
		return nil, err
	}
	obj, ok := v.(value.Object)
	if !ok {
		return nil, fmt.Errorf("expected a JSON object, got %s", value.Kind(v))
	}
	return obj, nil
}
