package semantic

import "github.com/cwbudde/nslc/internal/ast"

// Escaper determines which local variables and parameters of each
// function are captured by some nested function, and so must live in a
// heap-allocated frame record rather than a machine register or stack
// slot. It runs after Binder (which supplies Decl/Depth on every
// identifier and Program.Functions) and before TypeChecker.
type Escaper struct{}

func NewEscaper() *Escaper { return &Escaper{} }

func (e *Escaper) Name() string { return "escape" }

func (e *Escaper) Run(program *ast.Program, ctx *Context) error {
	e.walkExpr(program.Body, program.Main)
	for _, fn := range program.Functions {
		if fn == program.Main || fn.Body == nil {
			continue
		}
		e.walkExpr(fn.Body, fn)
	}
	for _, fn := range program.Functions {
		fn.Escaping = collectEscaping(fn)
	}
	return nil
}

// walkExpr visits every identifier use, marking a declaration as
// escaping whenever it is referenced from a function other than the
// one it was declared in.
func (e *Escaper) walkExpr(expr ast.Expr, current *ast.FunDecl) {
	switch n := expr.(type) {
	case *ast.IntegerLiteral, *ast.StringLiteral:

	case *ast.Identifier:
		markIfEscaping(n.Decl, current)

	case *ast.BinaryOp:
		e.walkExpr(n.Left, current)
		e.walkExpr(n.Right, current)

	case *ast.Sequence:
		for _, sub := range n.Exprs {
			e.walkExpr(sub, current)
		}

	case *ast.Let:
		for _, d := range n.Decls {
			if vd, ok := d.(*ast.VarDecl); ok && vd.Value != nil {
				e.walkExpr(vd.Value, current)
			}
		}
		e.walkExpr(n.Body, current)

	case *ast.IfThenElse:
		e.walkExpr(n.Cond, current)
		e.walkExpr(n.Then, current)
		if n.Else != nil {
			e.walkExpr(n.Else, current)
		}

	case *ast.WhileLoop:
		e.walkExpr(n.Cond, current)
		e.walkExpr(n.Body, current)

	case *ast.ForLoop:
		e.walkExpr(n.Low, current)
		e.walkExpr(n.High, current)
		e.walkExpr(n.Body, current)

	case *ast.Break:

	case *ast.Assign:
		markIfEscaping(n.Name.Decl, current)
		e.walkExpr(n.Value, current)

	case *ast.FunCall:
		markIfEscaping(n.Name.Decl, current)
		for _, arg := range n.Args {
			e.walkExpr(arg, current)
		}

	default:
		panic("semantic: unhandled expression node in Escaper")
	}
}

// markIfEscaping flags decl as escaping when it is a variable or
// parameter used from a function at a greater depth than its own
// declaration depth. Function declarations are never marked: functions
// are reached through the static link chain, not captured by value.
func markIfEscaping(decl ast.Decl, current *ast.FunDecl) {
	vd, ok := decl.(*ast.VarDecl)
	if !ok {
		return
	}
	if vd.Depth != current.Depth {
		vd.Escapes = true
	}
}

// collectEscaping builds fn's ordered frame layout: every parameter and
// local of fn whose Escapes bit ended up set, in declaration order
// (parameters first, then locals), exactly the order the IR generator
// assigns frame field indices in.
func collectEscaping(fn *ast.FunDecl) []*ast.VarDecl {
	var out []*ast.VarDecl
	for _, p := range fn.ParamDecls {
		if p.Escapes {
			out = append(out, p)
		}
	}
	for _, l := range fn.Locals {
		if l.Escapes {
			out = append(out, l)
		}
	}
	return out
}
