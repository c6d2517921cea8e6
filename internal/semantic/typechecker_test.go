package semantic

import (
	"testing"

	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/astbuild"
	"github.com/cwbudde/nslc/internal/types"
)

func analyze(t *testing.T, program *ast.Program) error {
	t.Helper()
	ctx := NewContext()
	pm := NewPassManager(NewBinder(), NewEscaper(), NewTypeChecker())
	return pm.RunAll(program, ctx)
}

func TestTypeCheckerInfersVarDeclType(t *testing.T) {
	b := astbuild.New()
	vd := b.Var("x", "", b.Int(1))
	program := b.Program(b.Let([]ast.Decl{vd}, b.Ident("x")))

	if err := analyze(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if vd.Type != types.Int {
		t.Fatalf("expected inferred type int, got %s", vd.Type)
	}
}

func TestTypeCheckerRejectsMismatchedInitializer(t *testing.T) {
	b := astbuild.New()
	vd := b.Var("x", "int", b.Str("oops"))
	program := b.Program(b.Let([]ast.Decl{vd}, b.Int(0)))

	if err := analyze(t, program); err == nil {
		t.Fatal("expected a type mismatch error")
	}
}

func TestTypeCheckerRejectsVoidInitializer(t *testing.T) {
	b := astbuild.New()
	proc := b.Fun("proc", nil, "", b.Int(0))
	vd := b.Var("x", "", b.Call("proc"))
	program := b.Program(b.Let([]ast.Decl{proc, vd}, b.Int(0)))

	if err := analyze(t, program); err == nil {
		t.Fatal("expected a void-initializer error")
	}
}

func TestTypeCheckerRejectsArityMismatch(t *testing.T) {
	b := astbuild.New()
	fn := b.Fun("f", []*ast.Param{b.Param("n", "int")}, "int", b.Ident("n"))
	program := b.Program(b.Let([]ast.Decl{fn}, b.Call("f", b.Int(1), b.Int(2))))

	if err := analyze(t, program); err == nil {
		t.Fatal("expected an arity mismatch error")
	}
}

func TestTypeCheckerRejectsArgumentTypeMismatch(t *testing.T) {
	b := astbuild.New()
	fn := b.Fun("f", []*ast.Param{b.Param("n", "int")}, "int", b.Ident("n"))
	program := b.Program(b.Let([]ast.Decl{fn}, b.Call("f", b.Str("nope"))))

	if err := analyze(t, program); err == nil {
		t.Fatal("expected an argument type mismatch error")
	}
}

func TestTypeCheckerRejectsReadOnlyAssignment(t *testing.T) {
	b := astbuild.New()
	loop := b.For("i", b.Int(1), b.Int(10), b.Assign("i", b.Int(0)))
	program := b.Program(loop)

	if err := analyze(t, program); err == nil {
		t.Fatal("expected a read-only violation error")
	}
}

func TestTypeCheckerAllowsMatchingIfBranches(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.If(b.Int(1), b.Int(2), b.Int(3)))

	if err := analyze(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if program.Body.GetType() != types.Int {
		t.Fatalf("expected if-expression type int, got %s", program.Body.GetType())
	}
}

func TestTypeCheckerRejectsMismatchedIfBranches(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.If(b.Int(1), b.Int(2), b.Str("three")))

	if err := analyze(t, program); err == nil {
		t.Fatal("expected a type mismatch between if branches")
	}
}

func TestTypeCheckerResolvesMutuallyRecursiveSignaturesFirst(t *testing.T) {
	b := astbuild.New()
	isEven := b.Fun("isEven", []*ast.Param{b.Param("n", "int")}, "int",
		b.If(b.Bin(ast.OpEq, b.Ident("n"), b.Int(0)), b.Int(1),
			b.Call("isOdd", b.Bin(ast.OpSub, b.Ident("n"), b.Int(1)))))
	isOdd := b.Fun("isOdd", []*ast.Param{b.Param("n", "int")}, "int",
		b.If(b.Bin(ast.OpEq, b.Ident("n"), b.Int(0)), b.Int(0),
			b.Call("isEven", b.Bin(ast.OpSub, b.Ident("n"), b.Int(1)))))
	program := b.Program(b.Let([]ast.Decl{isEven, isOdd}, b.Call("isEven", b.Int(4))))

	if err := analyze(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTypeCheckerRejectsUnknownTypeName(t *testing.T) {
	b := astbuild.New()
	vd := b.Var("x", "widget", b.Int(1))
	program := b.Program(b.Let([]ast.Decl{vd}, b.Int(0)))

	if err := analyze(t, program); err == nil {
		t.Fatal("expected an unknown-declared-type error")
	}
}
