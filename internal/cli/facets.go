package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/bestiary/internal/bestiary"
)

// NewFacetsCommand creates the facets command.
func NewFacetsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facets <kind>",
		Short: "List the distinct values of a filter dimension",
		Long: `List the values a filter dimension can take in the current database.

Kinds: environments, sizes, types, crs, alignments, sources, unofficial-sources.

Example:
  bestiary facets environments
  bestiary facets crs --format json`,
		Args:          cobra.ExactArgs(1),
		ValidArgs:     facetKindNames(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFacets(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runFacets(opts *RootOptions, name string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	kind, err := bestiary.ParseFacetKind(name)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidFacet, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid facet", err)
	}

	svc := bestiary.New(bestiary.Config{DBPath: opts.Settings.Database})
	values, err := svc.Facets(cmd.Context(), kind)
	if err != nil {
		return reportFilterError(formatter, err)
	}

	return formatter.Render("", values, func(w io.Writer) error {
		for _, v := range values {
			fmt.Fprintln(w, v)
		}
		return nil
	})
}

func facetKindNames() []string {
	kinds := bestiary.FacetKinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
