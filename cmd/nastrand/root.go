package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "nastrand",
	Short: "Continuous-time kinetic Monte Carlo simulator for nucleic-acid secondary-structure folding",
	Long: `nastrand simulates the stochastic folding kinetics of nucleic-acid
complexes: hairpin open/close/shift moves, strand association and
dissociation, and stop-condition-gated trajectories, in the style of
the Multistrand simulator.`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
