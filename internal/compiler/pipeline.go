// Package compiler wires the semantic passes and the IR generator into
// a single entry point, the way a real driver runs the whole pipeline
// over one translation unit.
package compiler

import (
	"fmt"

	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/ir"
	"github.com/cwbudde/nslc/internal/semantic"
)

// Result holds everything a caller might want after a successful
// compilation: the annotated program and its lowered IR.
type Result struct {
	Program *ast.Program
	IR      *ir.Program
}

// Compile runs Bind, Escape, and TypeCheck over program, then lowers it
// to IR. It stops and returns the first pass's error, matching the
// pipeline's fixed ordering guarantee.
func Compile(program *ast.Program) (*Result, error) {
	ctx := semantic.NewContext()
	pm := semantic.NewPassManager(
		semantic.NewBinder(),
		semantic.NewEscaper(),
		semantic.NewTypeChecker(),
	)

	if err := pm.RunAll(program, ctx); err != nil {
		return nil, fmt.Errorf("semantic analysis failed: %w", err)
	}

	lowered, err := ir.NewGenerator().Generate(program)
	if err != nil {
		return nil, fmt.Errorf("ir generation failed: %w", err)
	}

	return &Result{Program: program, IR: lowered}, nil
}

// Analyze runs the given semantic passes in order, stopping short of IR
// generation, for callers (such as the "bind"/"escape"/"typecheck" CLI
// subcommands) that want to inspect one stage's annotations in
// isolation.
func Analyze(program *ast.Program, passes ...semantic.Pass) error {
	ctx := semantic.NewContext()
	pm := semantic.NewPassManager(passes...)
	return pm.RunAll(program, ctx)
}
