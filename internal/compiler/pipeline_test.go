package compiler_test

import (
	"testing"

	"github.com/cwbudde/nslc/internal/astbuild"
	"github.com/cwbudde/nslc/internal/compiler"
	"github.com/cwbudde/nslc/internal/examples"
)

func TestCompileBuiltinExamples(t *testing.T) {
	for _, name := range examples.Names {
		name := name
		t.Run(name, func(t *testing.T) {
			program, err := examples.Build(name)
			if err != nil {
				t.Fatalf("build %s: %v", name, err)
			}
			result, err := compiler.Compile(program)
			if err != nil {
				t.Fatalf("compile %s: %v", name, err)
			}
			if len(result.IR.Functions) == 0 {
				t.Fatalf("expected at least one lowered function for %s", name)
			}
		})
	}
}

func TestCompileRejectsUnboundProgram(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.Ident("neverDeclared"))

	if _, err := compiler.Compile(program); err == nil {
		t.Fatal("expected compile to fail on an unbound identifier")
	}
}
