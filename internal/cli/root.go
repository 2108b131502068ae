package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roach88/bestiary/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	Database   string // overrides the config file when set
	ConfigPath string

	// Settings is the resolved configuration, filled before any command runs.
	Settings config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the bestiary CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "bestiary",
		Short: "Bestiary - monster filter queries",
		Long:  "Filter a tabletop monster database by environment, size, type, alignment, source and challenge rating.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Validate format flag
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			if err := opts.resolveSettings(); err != nil {
				formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
				_ = formatter.Error(ErrCodeInvalidConfig, err.Error(), nil)
				return WrapExitError(ExitCommandError, "failed to load config", err)
			}
			configureLogging(cmd.ErrOrStderr(), opts)
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (overrides config)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to CUE config file")

	// Add subcommands
	cmd.AddCommand(NewMonstersCommand(opts))
	cmd.AddCommand(NewExplainCommand(opts))
	cmd.AddCommand(NewFacetsCommand(opts))
	cmd.AddCommand(NewSeedCommand(opts))

	return cmd
}

// resolveSettings loads the config file and applies flag overrides.
func (o *RootOptions) resolveSettings() error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if o.Database != "" {
		cfg.Database = o.Database
	}
	o.Settings = cfg
	return nil
}

// configureLogging installs the default slog handler. --verbose forces
// debug level; otherwise the configured level applies.
func configureLogging(w io.Writer, opts *RootOptions) {
	logLevel := opts.Settings.Level()
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
