package ir_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/astbuild"
	"github.com/cwbudde/nslc/internal/compiler"
	"github.com/cwbudde/nslc/internal/ir"
)

func mustCompile(t *testing.T, program *ast.Program) *ir.Program {
	t.Helper()
	result, err := compiler.Compile(program)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	return result.IR
}

func printed(prog *ir.Program) string {
	var buf bytes.Buffer
	ir.Print(&buf, prog, true)
	return buf.String()
}

func TestGenerateFactorialEmitsSelfCall(t *testing.T) {
	b := astbuild.New()
	fact := b.Fun("fact", []*ast.Param{b.Param("n", "int")}, "int",
		b.If(
			b.Bin(ast.OpLe, b.Ident("n"), b.Int(1)),
			b.Int(1),
			b.Bin(ast.OpMul, b.Ident("n"), b.Call("fact", b.Bin(ast.OpSub, b.Ident("n"), b.Int(1)))),
		),
	)
	program := b.Program(b.Let([]ast.Decl{fact}, b.Call("fact", b.Int(5))))

	lowered := mustCompile(t, program)
	text := printed(lowered)

	if !strings.Contains(text, "call "+fact.ExternalName) {
		t.Fatalf("expected a recursive call to %s in output:\n%s", fact.ExternalName, text)
	}
	if !strings.Contains(text, "branch") {
		t.Fatalf("expected a conditional branch for the if-expression in output:\n%s", text)
	}
}

func TestGenerateClosureAllocatesFrameForEscapingVariable(t *testing.T) {
	b := astbuild.New()
	counter := b.Var("counter", "int", b.Int(0))
	bump := b.Fun("bump", nil, "int",
		b.Seq(
			b.Assign("counter", b.Bin(ast.OpAdd, b.Ident("counter"), b.Int(1))),
			b.Ident("counter"),
		),
	)
	program := b.Program(b.Let([]ast.Decl{counter, bump}, b.Call("bump")))

	lowered := mustCompile(t, program)

	var mainFn *ir.Function
	for _, fn := range lowered.Functions {
		if fn.Name == "_main" {
			mainFn = fn
		}
	}
	if mainFn == nil {
		t.Fatal("expected a _main function in the lowered program")
	}
	if len(mainFn.Frame) != 2 { // static link + counter
		t.Fatalf("expected main's frame to hold the link field plus counter, got %d fields", len(mainFn.Frame))
	}

	text := printed(lowered)
	if !strings.Contains(text, "frame.get") || !strings.Contains(text, "frame.set") {
		t.Fatalf("expected frame.get/frame.set instructions for the captured counter in output:\n%s", text)
	}
}

func TestGenerateStringComparisonRewritesToStrcmp(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.If(b.Bin(ast.OpEq, b.Str("a"), b.Str("b")), b.Int(1), b.Int(0)))

	lowered := mustCompile(t, program)
	text := printed(lowered)

	if !strings.Contains(text, "call __strcmp") {
		t.Fatalf("expected string equality to lower through __strcmp, got:\n%s", text)
	}
}

func TestGenerateDeclaresPrimitivesAsExternal(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.Call("print", b.Str("hi")))

	lowered := mustCompile(t, program)

	var found bool
	for _, fn := range lowered.Functions {
		if fn.ExternName == "__print" {
			found = true
			if !fn.IsExternal {
				t.Fatal("expected __print to be marked external")
			}
		}
	}
	if !found {
		t.Fatal("expected __print to appear in the lowered program")
	}
}
