package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/dsnroute/internal/config"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/problem"
)

var extraFile string

var convertCmd = &cobra.Command{
	Use:   "convert <dsn_file>",
	Short: "Build the routing problem for a DSN file",
	Long: `Runs the full conversion and prints the routing problem: board extents,
and for every net its color, source pad and numbered sink connections.

Trace width, clearance and source pad overrides can be supplied as YAML:

  trace_width:     { "U1-1": 300 }
  trace_clearance: { "U1-1": 150 }
  source_pad:      { "VCC": "J1-2" }`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
	convertCmd.Flags().StringVarP(&extraFile, "extra", "e", "", "YAML file with trace and source pad overrides")
}

func runConvert(cmd *cobra.Command, args []string) error {
	var extra problem.ExtraInfo
	if extraFile != "" {
		var err error
		extra, err = config.LoadExtraInfo(extraFile)
		if err != nil {
			return fmt.Errorf("error loading overrides: %w", err)
		}
	}

	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	res, err := specctra.Convert(f, extra, pipelineOptions()...)
	if err != nil {
		return fmt.Errorf("error converting design: %w", err)
	}

	printProblem(cmd, res.Problem)
	return nil
}

func printProblem(cmd *cobra.Command, p *problem.RoutingProblem) {
	out := cmd.OutOrStdout()

	nets := p.Nets()
	fmt.Fprintf(out, "Routing problem: %g x %g centered at (%g, %g)\n", p.Width, p.Height, p.Center.X, p.Center.Y)
	fmt.Fprintf(out, "  Nets: %d, connections: %d\n\n", len(nets), p.ConnectionCount())

	for _, net := range nets {
		fmt.Fprintf(out, "Net %s %s\n", net.Name, net.Color.Hex())
		fmt.Fprintf(out, "  Source: %s (width %g, clearance %g)\n",
			net.Source.Name(), net.SourceTraceWidth, net.SourceTraceClearance)
		for _, c := range net.SortedConnections() {
			fmt.Fprintf(out, "  #%-4d -> %-8s (width %g, clearance %g)\n",
				c.ID, c.Sink.Name(), c.TraceWidth, c.TraceClearance)
		}
	}
}
