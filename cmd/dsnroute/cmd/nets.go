package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/resolve"
)

var netsCmd = &cobra.Command{
	Use:   "nets <dsn_file> [net_name]",
	Short: "Show resolved net information",
	Long: `Display the nets of a DSN file after pad placement and netclass lookup.

Without net_name: Lists all nets with pad counts and netclass defaults
With net_name: Shows the placed pads of that specific net`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runNets,
}

func init() {
	rootCmd.AddCommand(netsCmd)
}

func runNets(cmd *cobra.Command, args []string) error {
	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	_, board, err := specctra.ResolveBoard(f, pipelineOptions()...)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	if len(args) >= 2 {
		return showNetDetails(cmd, board, args[1])
	}

	listAllNets(cmd, board)
	return nil
}

func listAllNets(cmd *cobra.Command, board *resolve.Board) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Board: %d nets\n\n", len(board.Nets))
	fmt.Fprintf(out, "%-24s %-16s %5s %8s %9s %8s\n", "Net Name", "Class", "Pads", "Width", "Clearance", "Via")
	fmt.Fprintln(out, "─────────────────────────────────────────────────────────────────────────")

	// Declaration order, which is also the order nets are routed in
	for _, net := range board.Nets {
		fmt.Fprintf(out, "%-24s %-16s %5d %8g %9g %8g\n",
			net.Name,
			net.ClassName,
			len(net.Pads),
			net.DefaultTraceWidth,
			net.DefaultTraceClearance,
			net.ViaDiameter)
	}
}

func showNetDetails(cmd *cobra.Command, board *resolve.Board, netName string) error {
	var record *resolve.NetRecord
	for i := range board.Nets {
		if board.Nets[i].Name == netName {
			record = &board.Nets[i]
			break
		}
	}
	if record == nil {
		return fmt.Errorf("net '%s' not found", netName)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Net: %s (class %s)\n", record.Name, record.ClassName)
	fmt.Fprintf(out, "  Trace width: %g, clearance: %g, via diameter: %g\n\n",
		record.DefaultTraceWidth, record.DefaultTraceClearance, record.ViaDiameter)

	fmt.Fprintf(out, "Pads (%d):\n", len(record.Pads))
	for _, pad := range record.Pads {
		fmt.Fprintf(out, "  %-8s %-24s at (%g, %g) rot %g\n",
			pad.Name(), pad.Shape,
			pad.Position.X, pad.Position.Y,
			pad.Rotation)
	}

	return nil
}
