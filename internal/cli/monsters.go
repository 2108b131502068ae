package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/bestiary/internal/bestiary"
	"github.com/roach88/bestiary/internal/constraint"
	"github.com/roach88/bestiary/internal/ir"
)

// RequestOptions holds the request flags shared by monsters and explain.
type RequestOptions struct {
	*RootOptions
	Params     string
	ParamsFile string
}

func (o *RequestOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.Params, "params", "p", "", "filter request as a JSON object")
	cmd.Flags().StringVar(&o.ParamsFile, "params-file", "", "read the JSON request from a file (- for stdin)")
	cmd.MarkFlagsMutuallyExclusive("params", "params-file")
}

// readParams decodes the request from --params, --params-file or nothing.
func (o *RequestOptions) readParams(stdin io.Reader) (map[string]any, error) {
	data := []byte(o.Params)
	switch o.ParamsFile {
	case "":
	case "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read params from stdin: %w", err)
		}
		data = b
	default:
		b, err := os.ReadFile(o.ParamsFile)
		if err != nil {
			return nil, fmt.Errorf("read params file: %w", err)
		}
		data = b
	}
	return constraint.ParseParams(data)
}

func (o *RequestOptions) service() *bestiary.Service {
	return bestiary.New(bestiary.Config{
		DBPath:     o.Settings.Database,
		MaxResults: o.Settings.MaxResults,
	})
}

// NewMonstersCommand creates the monsters command.
func NewMonstersCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RequestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "monsters",
		Short: "Run a filter request",
		Long: `Run a monster filter request against the database.

The request is a JSON object. List dimensions carry prefixed tokens; an
empty request returns every monster from an official source.

Example:
  bestiary monsters --db ./bestiary.db
  bestiary monsters -p '{"sizes": ["sizes_Large", "sizes_Huge"], "allowLegendary": false}'
  bestiary monsters -p '{"minimumChallengeRating": "1/4", "maximumChallengeRating": "1"}' --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMonsters(opts, cmd)
		},
	}
	opts.addFlags(cmd)

	return cmd
}

func runMonsters(opts *RequestOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd.OutOrStdout(), cmd.ErrOrStderr())

	params, err := opts.readParams(cmd.InOrStdin())
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidParams, err.Error(), nil)
		return WrapExitError(ExitFailure, "invalid request", err)
	}

	formatter.VerboseLog("Querying %s", opts.Settings.Database)
	resp, err := opts.service().Monsters(cmd.Context(), params)
	if err != nil {
		return reportFilterError(formatter, err)
	}

	return formatter.Render(resp.RequestID, resp.Data, func(w io.Writer) error {
		return writeMonsterTable(w, resp.Data)
	})
}

// writeMonsterTable prints rows under an upper-cased column header.
func writeMonsterTable(w io.Writer, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := make([]string, len(ir.MonsterColumns))
	for i, col := range ir.MonsterColumns {
		header[i] = strings.ToUpper(col)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%d monster(s)\n", len(rows))
	return nil
}
