// Package semantic implements the Bind, Escape-Analyze, and Type-Check
// passes over an ast.Program, and the shared scope/context/error
// machinery they use.
package semantic

import "github.com/cwbudde/nslc/internal/ast"

// Pass is one stage of the analysis pipeline. Each pass annotates the
// tree in place and reports fatal errors through its return value;
// non-fatal errors accumulate on the Context and are surfaced by
// Context.Flush at a pass's defined safe point.
type Pass interface {
	Name() string
	Run(program *ast.Program, ctx *Context) error
}

// PassManager runs a fixed sequence of passes over a program, stopping
// at the first pass that returns an error.
type PassManager struct {
	passes []Pass
}

// NewPassManager returns a PassManager that will run passes in order.
func NewPassManager(passes ...Pass) *PassManager {
	return &PassManager{passes: passes}
}

// AddPass appends a pass to the end of the pipeline.
func (m *PassManager) AddPass(p Pass) {
	m.passes = append(m.passes, p)
}

// Passes returns the configured passes in run order.
func (m *PassManager) Passes() []Pass {
	return m.passes
}

// RunAll runs every configured pass over program using ctx, stopping
// and returning the first error encountered.
func (m *PassManager) RunAll(program *ast.Program, ctx *Context) error {
	for _, p := range m.passes {
		if err := p.Run(program, ctx); err != nil {
			return err
		}
	}
	return nil
}
