package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/bestiary/internal/fixture"
	"github.com/roach88/bestiary/internal/store"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Sample bool
}

// SeedResult summarizes a seed run.
type SeedResult struct {
	Database string `json:"database"`
	Sources  int    `json:"sources"`
	Monsters int    `json:"monsters"`
}

func (r SeedResult) String() string {
	return fmt.Sprintf("Seeded %s: %d source(s), %d monster(s)", r.Database, r.Sources, r.Monsters)
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed [fixture.yaml]",
		Short: "Load a dataset into the database",
		Long: `Load sources and monsters from a YAML dataset into the database,
creating it if needed. Source hashes are derived from source names.

Example:
  bestiary seed --db ./bestiary.db ./monsters.yaml
  bestiary seed --db ./bestiary.db --sample`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Sample, "sample", false, "seed the built-in sample dataset")

	return cmd
}

func runSeed(opts *SeedOptions, args []string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	var ds *fixture.Dataset
	switch {
	case opts.Sample && len(args) == 0:
		ds = fixture.Sample()
	case !opts.Sample && len(args) == 1:
		loaded, err := fixture.Load(args[0])
		if err != nil {
			_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
			return WrapExitError(ExitCommandError, "failed to load fixture", err)
		}
		ds = loaded
	default:
		err := fmt.Errorf("give either a fixture file or --sample")
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "nothing to seed", err)
	}

	slog.Info("opening database", "path", opts.Settings.Database)
	st, err := store.Open(opts.Settings.Database)
	if err != nil {
		return reportFilterError(formatter, err)
	}
	defer st.Close()

	if err := st.Seed(cmd.Context(), ds.Sources, ds.Monsters); err != nil {
		_ = formatter.Error(ErrCodeWriteFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to seed database", err)
	}

	result := SeedResult{
		Database: opts.Settings.Database,
		Sources:  len(ds.Sources),
		Monsters: len(ds.Monsters),
	}
	slog.Info("database seeded", "sources", result.Sources, "monsters", result.Monsters)
	return formatter.Success(result)
}
