package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"goTableDB/internal/fixture"
)

// RunResult is the JSON payload of the run command.
type RunResult struct {
	Database string       `json:"database"`
	Results  []resultJSON `json:"results"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <fixture.yaml>",
		Short: "Build the fixture tables and run its queries",
		Long: `Load a YAML fixture, insert its rows, apply its upserts and print the
result of every named query in file order.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFixture(rootOpts, args[0], cmd)
		},
	}
}

func runFixture(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	f, env, err := loadFixture(opts, path, formatter)
	if err != nil {
		return err
	}

	results, err := env.Run(f.Queries)
	if err != nil {
		return formatter.Fail(ExitFailure, ErrCodeQuery, "query failed", err)
	}
	opts.Logger.Debug().Str("fixture", path).Int("queries", len(results)).Msg("fixture run")

	if formatter.isJSON() {
		return formatter.Success(RunResult{Database: env.DB.Name(), Results: toJSON(results)})
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(formatter.Writer)
		}
		if err := writeTable(formatter.Writer, r); err != nil {
			return err
		}
	}
	return nil
}

// loadFixture parses, validates and builds the fixture at path. Failures are
// reported through formatter and returned as command errors.
func loadFixture(opts *RootOptions, path string, formatter *OutputFormatter) (*fixture.Fixture, *fixture.Env, error) {
	f, err := fixture.Load(path)
	if err != nil {
		code := ErrCodeInvalid
		if errors.Is(err, fs.ErrNotExist) {
			code = ErrCodeNotFound
		}
		return nil, nil, formatter.Fail(ExitCommandError, code, "cannot load fixture", err)
	}

	env, err := f.Build(opts.Logger, opts.Config.Language())
	if err != nil {
		return nil, nil, formatter.Fail(ExitCommandError, ErrCodeInvalid, "cannot build tables", err)
	}
	return f, env, nil
}
