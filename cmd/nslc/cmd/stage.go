package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/compiler"
	"github.com/cwbudde/nslc/internal/examples"
	"github.com/cwbudde/nslc/internal/semantic"
)

func init() {
	rootCmd.AddCommand(
		newStageCmd("bind", "run only the name binder", semantic.NewBinder()),
		newStageCmd("escape", "run the binder and escape analyzer", semantic.NewBinder(), semantic.NewEscaper()),
		newStageCmd("typecheck", "run the full analysis pipeline", semantic.NewBinder(), semantic.NewEscaper(), semantic.NewTypeChecker()),
	)
}

func newStageCmd(use, short string, passes ...semantic.Pass) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <example>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			program, err := examples.Build(args[0])
			if err != nil {
				return err
			}
			if err := compiler.Analyze(program, passes...); err != nil {
				return err
			}
			printProgram(c, program)
			return nil
		},
	}
}

func printProgram(c *cobra.Command, program *ast.Program) {
	fmt.Fprintln(c.OutOrStdout(), program.Body.String())
	if verbose {
		fmt.Fprintf(c.OutOrStdout(), "; %d function(s) bound\n", len(program.Functions))
	}
}
