// Package cmd implements the nslc command-line driver: a thin cobra
// front end over the semantic analysis and IR generation pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version is set at build time via -ldflags, following the
	// teacher's version-injection convention.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nslc",
	Short: "nslc runs the nested-scope language's semantic and IR pipeline",
	Long: `nslc drives the Bind, Escape-Analyze, Type-Check, and IR-Generate
passes over a small set of built-in example programs, since this module
does not include a lexer or parser.`,
}

// Execute runs the root command, printing any error and exiting
// non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		exitWithError(err)
	}
}

func init() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("nslc %s (commit %s, built %s)\n", Version, GitCommit, BuildDate))
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print extra diagnostic detail")
}

func exitWithError(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
