package cli

import (
	"fmt"
	"slices"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"goTableDB/internal/config"
	"goTableDB/internal/logging"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"

	Config config.Config
	Logger zerolog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the godb command tree. cfg supplies defaults that
// flags override.
func NewRootCommand(cfg config.Config) *cobra.Command {
	opts := &RootOptions{Config: cfg, Logger: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:   "godb",
		Short: "In-memory table engine playground",
		Long:  "Load tables and declarative queries from a YAML fixture and run them against the in-memory engine.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return WrapExitError(ExitCommandError, "bad flags",
					fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}

			level := opts.Config.LogLevel
			if opts.Verbose {
				level = zerolog.DebugLevel.String()
			}
			opts.Logger = logging.New(logging.Options{
				Level:  level,
				Pretty: opts.Config.LogPretty,
				Out:    cmd.ErrOrStderr(),
			})
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log engine events at debug level")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", cfg.Format, "output format (json|text)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewSchemaCommand(opts))

	return cmd
}
