package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/dsnroute/internal/logger"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra"
	"github.com/OpenTraceLab/dsnroute/pkg/specctra/sexp"
)

var (
	// Global flags
	verbose  bool
	logJSON  bool
	maxDepth int
)

var rootCmd = &cobra.Command{
	Use:   "dsnroute",
	Short: "Specctra DSN to routing problem converter",
	Long: `dsnroute reads a Specctra DSN board file (as exported by KiCad) and
turns it into a routing problem: placed pads, per-net source pads and the
sink connections a router has to make.

Examples:
  dsnroute info board.dsn                       # Summarize the design
  dsnroute nets board.dsn                       # List nets with their netclass defaults
  dsnroute nets board.dsn GND                   # Show the pads of one net
  dsnroute convert board.dsn --extra over.yaml  # Build the routing problem`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Setup(logger.Config{
			Output:  cmd.ErrOrStderr(),
			Verbose: verbose,
			JSON:    logJSON,
		})
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "write log records as JSON")
	rootCmd.PersistentFlags().IntVar(&maxDepth, "max-depth", sexp.DefaultMaxDepth, "maximum list nesting depth accepted in the input")
}

// pipelineOptions builds conversion options from the global flags
func pipelineOptions() []specctra.Option {
	return []specctra.Option{
		specctra.WithLogger(logger.L()),
		specctra.WithMaxDepth(maxDepth),
	}
}

// openInput opens a plain or gzipped DSN file for one of the subcommands
func openInput(filename string) (io.ReadCloser, error) {
	return specctra.Open(filename)
}
