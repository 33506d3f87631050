package cli

import (
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/extarray/internal/store"
)

// RootOptions holds global flags for all commands.
// DBPath and Format are final only after PersistentPreRunE has merged the
// config file and environment.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	DBPath     string
	ConfigFile string
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the extarray CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "extarray",
		Short: "extarray - JSON extension array columns",
		Long: `Store and manipulate columns of JSON objects.

Columns live in a SQLite database. Every element is a JSON object; the empty
object {} marks a missing value. Selection, take-with-fill, reindexing,
factorization and uniqueness follow the extension array contract.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(cmd, opts.ConfigFile)
			if err != nil {
				return fail(newFormatter(opts, cmd), ErrCodeBadArgs, err)
			}
			opts.DBPath = v.GetString(cfgKeyDB)
			opts.Format = v.GetString(cfgKeyFormat)

			if !isValidFormat(opts.Format) {
				bad := opts.Format
				opts.Format = defaultFormat
				return fail(newFormatter(opts, cmd), ErrCodeBadArgs,
					fmt.Errorf("invalid format %q: must be one of %v", bad, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", defaultFormat, "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", defaultDBPath, "path to the SQLite column store")
	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "config file (default ./extarray.yaml)")

	cmd.AddCommand(NewImportCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewTakeCommand(opts))
	cmd.AddCommand(NewReindexCommand(opts))
	cmd.AddCommand(NewUniqueCommand(opts))
	cmd.AddCommand(NewFactorizeCommand(opts))
	cmd.AddCommand(NewArgsortCommand(opts))
	cmd.AddCommand(NewConcatCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewDropCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// newFormatter builds the formatter for a command run.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}
}

// newLogger logs warnings and above to w, or everything with --verbose.
func newLogger(opts *RootOptions, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// openStore opens the configured store and reports failures through f.
func openStore(opts *RootOptions, cmd *cobra.Command, f *OutputFormatter) (*store.Store, error) {
	s, err := store.Open(opts.DBPath, store.WithLogger(newLogger(opts, cmd.ErrOrStderr())))
	if err != nil {
		return nil, fail(f, ErrCodeStore, err)
	}
	f.VerboseLog("Opened store %s", opts.DBPath)
	return s, nil
}
