package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/dsnroute/pkg/specctra"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/dsn"
)

var infoCmd = &cobra.Command{
	Use:   "info <dsn_file>",
	Short: "Summarize a DSN design",
	Long:  `Parses a DSN file and prints a summary of its layers, outline, placement, library and network.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	f, err := openInput(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	design, err := specctra.ParseDesign(f, pipelineOptions()...)
	if err != nil {
		return fmt.Errorf("error parsing design: %w", err)
	}

	printDesignInfo(cmd, design)
	return nil
}

func printDesignInfo(cmd *cobra.Command, design *dsn.Design) {
	out := cmd.OutOrStdout()

	layers := make([]string, len(design.Structure.Layers))
	for i, l := range design.Structure.Layers {
		layers[i] = l.Name
	}

	instances := 0
	for _, c := range design.Placement.Components {
		instances += len(c.Instances)
	}

	bounds := dsn.BoundsOf(design.Structure.Boundary)

	fmt.Fprintf(out, "Board: %s\n", design.Name)
	fmt.Fprintf(out, "  Resolution: %g %s\n", design.Resolution.Value, design.Resolution.Unit)
	fmt.Fprintf(out, "  Layers: %d (%s)\n", len(layers), strings.Join(layers, ", "))
	if !bounds.IsEmpty() {
		fmt.Fprintf(out, "  Boundary: %d points, %g x %g\n", len(design.Structure.Boundary), bounds.Width(), bounds.Height())
	}
	fmt.Fprintf(out, "  Components: %d (%d placed)\n", len(design.Placement.Components), instances)
	fmt.Fprintf(out, "  Images: %d\n", len(design.Library.Images))
	fmt.Fprintf(out, "  Padstacks: %d\n", len(design.Library.PadStacks))
	fmt.Fprintf(out, "  Nets: %d\n", len(design.Network.Nets))
	fmt.Fprintf(out, "  Netclasses: %d (%s)\n", len(design.Network.ClassOrder), strings.Join(design.Network.ClassOrder, ", "))
}
