// Package examples assembles a small set of canned programs used by
// the CLI driver and the end-to-end tests, built through astbuild
// since the module has no lexer or parser of its own.
package examples

import (
	"fmt"

	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/astbuild"
)

// Names lists the built-in example programs Build accepts.
var Names = []string{"factorial", "closure", "mutual-recursion", "string-ops"}

// Build returns the ast.Program registered under name.
func Build(name string) (*ast.Program, error) {
	b := astbuild.New()
	switch name {
	case "factorial":
		return b.Program(factorial(b)), nil
	case "closure":
		return b.Program(closure(b)), nil
	case "mutual-recursion":
		return b.Program(mutualRecursion(b)), nil
	case "string-ops":
		return b.Program(stringOps(b)), nil
	default:
		return nil, fmt.Errorf("unknown example %q", name)
	}
}

// factorial: let function fact(n: int): int = if n <= 1 then 1 else
// n * fact(n - 1) in print_int(fact(5))
func factorial(b *astbuild.Builder) ast.Expr {
	fact := b.Fun("fact",
		[]*ast.Param{b.Param("n", "int")},
		"int",
		b.If(
			b.Bin(ast.OpLe, b.Ident("n"), b.Int(1)),
			b.Int(1),
			b.Bin(ast.OpMul, b.Ident("n"), b.Call("fact", b.Bin(ast.OpSub, b.Ident("n"), b.Int(1)))),
		),
	)
	return b.Let(
		[]ast.Decl{fact},
		b.Call("print_int", b.Call("fact", b.Int(5))),
	)
}

// closure follows §8 scenario 3: outer declares a let-bound v, inner
// mutates it through a static link, forcing v to escape on outer.
//
//	let function outer() = let var v:int := 0
//	                            function inner() = (v := v+1)
//	                        in inner(); inner(); print_int(v) end
//	in outer() end
func closure(b *astbuild.Builder) ast.Expr {
	var inner *ast.FunDecl
	outer := b.Fun("outer", nil, "", nil)
	v := b.Var("v", "int", b.Int(0))
	inner = b.Fun("inner", nil, "",
		b.Assign("v", b.Bin(ast.OpAdd, b.Ident("v"), b.Int(1))),
	)
	outer.Body = b.Let(
		[]ast.Decl{v, inner},
		b.Seq(b.Call("inner"), b.Call("inner"), b.Call("print_int", b.Ident("v"))),
	)
	return b.Let([]ast.Decl{outer}, b.Call("outer"))
}

// mutualRecursion: isEven/isOdd calling each other, exercising the
// binder's mutually-recursive function grouping.
func mutualRecursion(b *astbuild.Builder) ast.Expr {
	isEven := b.Fun("isEven", []*ast.Param{b.Param("n", "int")}, "int",
		b.If(b.Bin(ast.OpEq, b.Ident("n"), b.Int(0)), b.Int(1),
			b.Call("isOdd", b.Bin(ast.OpSub, b.Ident("n"), b.Int(1)))),
	)
	isOdd := b.Fun("isOdd", []*ast.Param{b.Param("n", "int")}, "int",
		b.If(b.Bin(ast.OpEq, b.Ident("n"), b.Int(0)), b.Int(0),
			b.Call("isEven", b.Bin(ast.OpSub, b.Ident("n"), b.Int(1)))),
	)
	return b.Let(
		[]ast.Decl{isEven, isOdd},
		b.Call("print_int", b.Call("isEven", b.Int(10))),
	)
}

// stringOps exercises every primitive §4.2 mandates that factorial,
// closure, and mutual-recursion don't already reach: print, print_err,
// flush, getchar, ord, chr, substring, concat, streq, strcmp, not, size,
// and exit.
func stringOps(b *astbuild.Builder) ast.Expr {
	greeting := b.Var("greeting", "string", b.Str("hello"))
	line := b.Var("line", "string", b.Call("getchar"))
	code := b.Var("code", "int", b.Call("ord", b.Ident("greeting")))
	letter := b.Var("letter", "string", b.Call("chr", b.Int(72)))
	piece := b.Var("piece", "string", b.Call("substring", b.Ident("greeting"), b.Int(0), b.Int(3)))
	joined := b.Var("joined", "string", b.Call("concat", b.Ident("piece"), b.Ident("line")))
	same := b.Var("same", "int", b.Call("streq", b.Ident("greeting"), b.Ident("joined")))
	cmp := b.Var("cmp", "int", b.Call("strcmp", b.Ident("greeting"), b.Ident("joined")))
	different := b.Var("different", "int", b.Call("not", b.Ident("same")))

	return b.Let(
		[]ast.Decl{greeting, line, code, letter, piece, joined, same, cmp, different},
		b.Seq(
			b.Call("print", b.Ident("joined")),
			b.Call("print", b.Ident("letter")),
			b.Call("print_int", b.Ident("code")),
			b.Call("print_int", b.Call("size", b.Ident("joined"))),
			b.Call("print_int", b.Ident("same")),
			b.Call("print_int", b.Ident("cmp")),
			b.Call("print_int", b.Ident("different")),
			b.Call("flush"),
			b.Call("print_err", b.Str("done")),
			b.Call("exit", b.Int(0)),
		),
	)
}
