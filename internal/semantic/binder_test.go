package semantic

import (
	"testing"

	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/astbuild"
)

func bindProgram(t *testing.T, program *ast.Program) (*Context, error) {
	t.Helper()
	ctx := NewContext()
	err := NewBinder().Run(program, ctx)
	return ctx, err
}

func TestBinderResolvesLetBoundVariable(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.Let(
		[]ast.Decl{b.Var("x", "int", b.Int(1))},
		b.Ident("x"),
	))

	if _, err := bindProgram(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body := program.Body.(*ast.Let).Body.(*ast.Identifier)
	if body.Decl == nil {
		t.Fatal("expected x to resolve to a declaration")
	}
}

func TestBinderReportsUnboundReference(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.Ident("nope"))

	_, err := bindProgram(t, program)
	if err == nil {
		t.Fatal("expected an unbound reference error")
	}
}

func TestBinderReportsRedeclaration(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.Let(
		[]ast.Decl{
			b.Var("x", "int", b.Int(1)),
			b.Var("x", "int", b.Int(2)),
		},
		b.Int(0),
	))

	_, err := bindProgram(t, program)
	if err == nil {
		t.Fatal("expected a redeclaration error")
	}
}

func TestBinderGroupsMutuallyRecursiveFunctions(t *testing.T) {
	b := astbuild.New()
	isEven := b.Fun("isEven", []*ast.Param{b.Param("n", "int")}, "int",
		b.Call("isOdd", b.Ident("n")))
	isOdd := b.Fun("isOdd", []*ast.Param{b.Param("n", "int")}, "int",
		b.Call("isEven", b.Ident("n")))
	program := b.Program(b.Let([]ast.Decl{isEven, isOdd}, b.Int(0)))

	if _, err := bindProgram(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(isEven.Group) != 2 || len(isOdd.Group) != 2 {
		t.Fatalf("expected both functions grouped together, got isEven=%d isOdd=%d",
			len(isEven.Group), len(isOdd.Group))
	}

	call := isEven.Body.(*ast.FunCall)
	if call.Name.Decl != ast.Decl(isOdd) {
		t.Fatal("expected isEven's call to isOdd to resolve to isOdd's declaration")
	}
}

func TestBinderSeparatesConsecutiveRunsAcrossAVarDecl(t *testing.T) {
	b := astbuild.New()
	f := b.Fun("f", nil, "int", b.Int(1))
	v := b.Var("x", "int", b.Int(0))
	g := b.Fun("g", nil, "int", b.Int(2))
	program := b.Program(b.Let([]ast.Decl{f, v, g}, b.Int(0)))

	if _, err := bindProgram(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Group) != 1 || len(g.Group) != 1 {
		t.Fatalf("expected f and g in separate singleton groups, got %d and %d",
			len(f.Group), len(g.Group))
	}
}

func TestBinderRejectsBreakOutsideLoop(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.Break())

	_, err := bindProgram(t, program)
	if err == nil {
		t.Fatal("expected a break-outside-loop error")
	}
}

func TestBinderBindsBreakInsideWhile(t *testing.T) {
	b := astbuild.New()
	loop := b.While(b.Int(1), b.Break())
	program := b.Program(loop)

	if _, err := bindProgram(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	brk := loop.Body.(*ast.Break)
	if brk.Target != ast.Node(loop) {
		t.Fatal("expected break to target the enclosing while loop")
	}
}

func TestBinderRejectsParameterShadowingFunction(t *testing.T) {
	b := astbuild.New()
	fn := b.Fun("f", []*ast.Param{b.Param("f", "int")}, "int", b.Int(0))
	program := b.Program(b.Let([]ast.Decl{fn}, b.Int(0)))

	_, err := bindProgram(t, program)
	if err == nil {
		t.Fatal("expected a parameter-shadows-function error")
	}
}

func TestBinderManglesTopLevelFunctionsWithSourceName(t *testing.T) {
	b := astbuild.New()
	fn := b.Fun("f", nil, "int", b.Int(0))
	program := b.Program(b.Let([]ast.Decl{fn}, b.Int(0)))

	if _, err := bindProgram(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fn.ExternalName != "f" {
		t.Fatalf("expected top-level function to keep its source name, got %q", fn.ExternalName)
	}
}

func TestBinderManglesNestedFunctionsByDotJoiningParent(t *testing.T) {
	b := astbuild.New()
	inner := b.Fun("g", nil, "int", b.Int(0))
	outer := b.Fun("f", nil, "int", b.Let([]ast.Decl{inner}, b.Call("g")))
	program := b.Program(b.Let([]ast.Decl{outer}, b.Int(0)))

	if _, err := bindProgram(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outer.ExternalName != "f" {
		t.Fatalf("expected outer to keep its source name, got %q", outer.ExternalName)
	}
	if inner.ExternalName != "f.g" {
		t.Fatalf("expected inner to be dot-joined to its parent, got %q", inner.ExternalName)
	}
}

func TestBinderUniquifiesCollidingExternalNamesWithTrailingUnderscore(t *testing.T) {
	// Two distinct top-level functions both named "f", declared in
	// separate lets so their source names never collide in any scope;
	// only their external names do, since both are direct children of
	// the implicit main and so both mangle to the bare name "f".
	b := astbuild.New()
	fnA := b.Fun("f", nil, "int", b.Int(1))
	fnB := b.Fun("f", nil, "int", b.Int(2))
	letA := b.Let([]ast.Decl{fnA}, b.Call("f"))
	letB := b.Let([]ast.Decl{fnB}, b.Call("f"))
	program := b.Program(b.Seq(letA, letB))

	if _, err := bindProgram(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fnA.ExternalName == fnB.ExternalName {
		t.Fatalf("expected colliding external names to be uniquified, both got %q", fnA.ExternalName)
	}
	if fnA.ExternalName != "f" || fnB.ExternalName != "f_" {
		t.Fatalf("expected %q and %q, got %q and %q", "f", "f_", fnA.ExternalName, fnB.ExternalName)
	}
}

func TestBinderSeedsPrimitives(t *testing.T) {
	b := astbuild.New()
	program := b.Program(b.Call("print", b.Str("hi")))

	if _, err := bindProgram(t, program); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	call := program.Body.(*ast.FunCall)
	fn, ok := call.Name.Decl.(*ast.FunDecl)
	if !ok || !fn.IsPrimitive {
		t.Fatal("expected print to resolve to a seeded primitive")
	}
}
