package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RequestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Show the SQL a filter request compiles to",
		Long: `Compile a filter request and print the statement and its parameters
without running it. Source names are still resolved against the database.

Example:
  bestiary explain -p '{"environments": ["environments_Swamp"]}'`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(opts, cmd)
		},
	}
	opts.addFlags(cmd)

	return cmd
}

func runExplain(opts *RequestOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	params, err := opts.readParams(cmd.InOrStdin())
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidParams, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid request", err)
	}

	exp, err := opts.service().Explain(cmd.Context(), params)
	if err != nil {
		return reportFilterError(formatter, err)
	}

	return formatter.Render(exp.RequestID, exp, func(w io.Writer) error {
		fmt.Fprintln(w, exp.SQL)
		for i, p := range exp.Params {
			fmt.Fprintf(w, "$%d = %q\n", i+1, p)
		}
		return nil
	})
}
