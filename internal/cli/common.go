package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/extension"
	"github.com/roach88/extarray/internal/jsonarray"
	"github.com/roach88/extarray/internal/store"
	"github.com/roach88/extarray/internal/value"
)

// columnCommand runs fn with an open store, closing it afterwards.
func columnCommand(opts *RootOptions, cmd *cobra.Command, fn func(ctx context.Context, s *store.Store, f *OutputFormatter) error) error {
	f := newFormatter(opts, cmd)
	s, err := openStore(opts, cmd, f)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(cmd.Context(), s, f)
}

// loadColumn loads name and reports failures through f.
func loadColumn(ctx context.Context, s *store.Store, f *OutputFormatter, name string) (*jsonarray.Array, error) {
	arr, err := s.LoadColumn(ctx, name)
	if err != nil {
		return nil, fail(f, "", err)
	}
	f.VerboseLog("Loaded %s (%d elements)", name, arr.Len())
	return arr, nil
}

// finishArray saves result under saveAs when set and prints it.
func finishArray(ctx context.Context, s *store.Store, f *OutputFormatter, source, saveAs string, result extension.Array[value.Object]) error {
	arr, ok := result.(*jsonarray.Array)
	if !ok {
		// Every operation on a json column yields a json column
		elems, err := valuesOf(result)
		if err != nil {
			return fail(f, "", err)
		}
		arr, err = jsonarray.NewWithDtype(nil, elems)
		if err != nil {
			return fail(f, "", err)
		}
	}

	var saved *store.ColumnInfo
	if saveAs != "" {
		info, err := s.SaveColumn(ctx, saveAs, arr)
		if err != nil {
			return failStore(f, err)
		}
		saved = &info
	}
	return f.Success(newArrayResult(source, arr, saved))
}

// valuesOf reads every element of a, stopping at the first failed read.
func valuesOf(a extension.Array[value.Object]) ([]value.Object, error) {
	out := make([]value.Object, a.Len())
	for i := range out {
		e, err := a.At(i)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

// addSaveFlag registers --save on commands that produce a column.
func addSaveFlag(cmd *cobra.Command, target *string) {
	cmd.Flags().StringVar(target, "save", "", "store the result as a new column with this name")
}

// failStore is fail for store writes: unclassified errors are store errors.
func failStore(f *OutputFormatter, err error) error {
	code := MapErrorToCode(err)
	if code == ErrCodeGeneric {
		code = ErrCodeStore
	}
	return fail(f, code, err)
}
