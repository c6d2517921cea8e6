package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/cwbudde/nslc/internal/compiler"
	"github.com/cwbudde/nslc/internal/examples"
	"github.com/cwbudde/nslc/internal/ir"
)

var compileCmd = &cobra.Command{
	Use:   "compile <example>",
	Short: "run the full pipeline and print the lowered IR",
	Long: `compile runs Bind, Escape-Analyze, Type-Check, and IR-Generate over
one of the built-in example programs and prints the resulting
control-flow-graph IR as pseudo-assembly text.

Examples:
  nslc compile factorial
  nslc compile closure --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		program, err := examples.Build(args[0])
		if err != nil {
			return err
		}
		result, err := compiler.Compile(program)
		if err != nil {
			return err
		}
		ir.Print(c.OutOrStdout(), result.IR, verbose)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list the built-in example programs",
	RunE: func(c *cobra.Command, args []string) error {
		c.Println(strings.Join(examples.Names, "\n"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compileCmd, listCmd)
}
