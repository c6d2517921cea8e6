package semantic

import (
	"testing"

	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/astbuild"
)

func runBindAndEscape(t *testing.T, program *ast.Program) {
	t.Helper()
	ctx := NewContext()
	if err := NewBinder().Run(program, ctx); err != nil {
		t.Fatalf("bind failed: %v", err)
	}
	if err := NewEscaper().Run(program, ctx); err != nil {
		t.Fatalf("escape analysis failed: %v", err)
	}
}

func TestEscaperMarksCapturedVariable(t *testing.T) {
	b := astbuild.New()
	counter := b.Var("counter", "int", b.Int(0))
	bump := b.Fun("bump", nil, "int", b.Ident("counter"))
	program := b.Program(b.Let([]ast.Decl{counter, bump}, b.Call("bump")))

	runBindAndEscape(t, program)

	if !counter.Escapes {
		t.Fatal("expected counter to be marked as escaping")
	}
	if len(bump.Escaping) != 0 {
		t.Fatalf("expected bump itself to have no escaping locals, got %d", len(bump.Escaping))
	}
}

func TestEscaperLeavesUncapturedVariableAlone(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.Let(
		[]ast.Decl{b.Var("x", "int", b.Int(1))},
		b.Ident("x"),
	))

	runBindAndEscape(t, program)

	vd := program.Body.(*ast.Let).Decls[0].(*ast.VarDecl)
	if vd.Escapes {
		t.Fatal("expected x, never referenced from a nested function, to not escape")
	}
}

func TestEscaperOrdersFrameFieldsByDeclaration(t *testing.T) {
	b := astbuild.New()
	a := b.Var("a", "int", b.Int(1))
	c := b.Var("c", "int", b.Int(2))
	useBoth := b.Fun("useBoth", nil, "int", b.Bin(ast.OpAdd, b.Ident("a"), b.Ident("c")))
	program := b.Program(b.Let([]ast.Decl{a, c, useBoth}, b.Call("useBoth")))

	runBindAndEscape(t, program)

	if len(program.Main.Escaping) != 2 {
		t.Fatalf("expected main to have 2 escaping locals, got %d", len(program.Main.Escaping))
	}
	if program.Main.Escaping[0] != a || program.Main.Escaping[1] != c {
		t.Fatal("expected escaping locals in declaration order a, c")
	}
}

func TestEscaperMarksEscapingParameter(t *testing.T) {
	b := astbuild.New()
	var inner *ast.FunDecl
	outer := b.Fun("outer", []*ast.Param{b.Param("p", "int")}, "int", nil)
	inner = b.Fun("inner", nil, "int", b.Ident("p"))
	outer.Body = b.Let([]ast.Decl{inner}, b.Call("inner"))
	program := b.Program(b.Let([]ast.Decl{outer}, b.Call("outer", b.Int(1))))

	runBindAndEscape(t, program)

	if !outer.ParamDecls[0].Escapes {
		t.Fatal("expected outer's parameter p to escape since inner captures it")
	}
}
