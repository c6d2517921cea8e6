package semantic

import (
	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/types"
)

// TypeChecker assigns and verifies types over the tree already
// annotated by Binder and Escaper. It runs last among the analysis
// passes, immediately before IR generation, and is the only pass that
// reports the spec's Type mismatch, Wrong kind of name, Arity mismatch,
// Read-only violation, Unknown declared type, and Void initializer
// errors.
type TypeChecker struct{}

func NewTypeChecker() *TypeChecker { return &TypeChecker{} }

func (tc *TypeChecker) Name() string { return "typecheck" }

func (tc *TypeChecker) Run(program *ast.Program, ctx *Context) error {
	program.Main.ResultType = types.Void
	for _, fn := range program.Functions {
		if fn.IsPrimitive || fn == program.Main {
			continue
		}
		tc.checkFunctionSignature(fn, ctx)
	}
	tc.checkExpr(program.Body, ctx)
	for _, fn := range program.Functions {
		if fn == program.Main || fn.Body == nil {
			continue
		}
		tc.checkFunctionBody(fn, ctx)
	}
	return ctx.Flush()
}

// checkFunctionSignature resolves a function's declared parameter and
// result type names. It is run over every function before any body is
// checked (phase one of the two-phase mutual-recursion design), so
// that a call from one group member to another sees fully resolved
// types regardless of declaration order within the group.
func (tc *TypeChecker) checkFunctionSignature(fn *ast.FunDecl, ctx *Context) {
	for i, pd := range fn.ParamDecls {
		if types.IsDefined(pd.Type) {
			continue // primitives arrive with Type pre-set
		}
		t, ok := types.FromName(pd.TypeName)
		if !ok {
			ctx.AddError(NewUnknownDeclaredType(pd.Position, pd.TypeName))
			t = types.Undefined
		}
		fn.ParamDecls[i].Type = t
	}
	if fn.ResultName == "" {
		fn.ResultType = types.Void
		return
	}
	t, ok := types.FromName(fn.ResultName)
	if !ok {
		ctx.AddError(NewUnknownDeclaredType(fn.Position, fn.ResultName))
		t = types.Undefined
	}
	fn.ResultType = t
}

func (tc *TypeChecker) checkFunctionBody(fn *ast.FunDecl, ctx *Context) {
	got := tc.checkExpr(fn.Body, ctx)
	if fn.ResultType == types.Void {
		return
	}
	if types.IsDefined(got) && !got.Equals(fn.ResultType) {
		ctx.AddError(NewTypeMismatch(fn.Body.Pos(), "function result", fn.ResultType, got))
	}
}

// checkExpr assigns and returns the type of e, recording it on the
// node via SetType as it goes.
func (tc *TypeChecker) checkExpr(e ast.Expr, ctx *Context) types.Type {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		n.SetType(types.Int)
		return types.Int

	case *ast.StringLiteral:
		n.SetType(types.String)
		return types.String

	case *ast.Identifier:
		t := tc.identifierType(n, ctx)
		n.SetType(t)
		return t

	case *ast.BinaryOp:
		return tc.checkBinaryOp(n, ctx)

	case *ast.Sequence:
		var last types.Type = types.Void
		for _, sub := range n.Exprs {
			last = tc.checkExpr(sub, ctx)
		}
		n.SetType(last)
		return last

	case *ast.Let:
		return tc.checkLet(n, ctx)

	case *ast.IfThenElse:
		return tc.checkIf(n, ctx)

	case *ast.WhileLoop:
		tc.checkExpr(n.Cond, ctx)
		tc.checkExpr(n.Body, ctx)
		n.SetType(types.Void)
		return types.Void

	case *ast.ForLoop:
		lo := tc.checkExpr(n.Low, ctx)
		hi := tc.checkExpr(n.High, ctx)
		if types.IsDefined(lo) && !lo.Equals(types.Int) {
			ctx.AddError(NewTypeMismatch(n.Low.Pos(), "for-loop lower bound", types.Int, lo))
		}
		if types.IsDefined(hi) && !hi.Equals(types.Int) {
			ctx.AddError(NewTypeMismatch(n.High.Pos(), "for-loop upper bound", types.Int, hi))
		}
		n.Variable.Type = types.Int
		tc.checkExpr(n.Body, ctx)
		n.SetType(types.Void)
		return types.Void

	case *ast.Break:
		n.SetType(types.Void)
		return types.Void

	case *ast.Assign:
		return tc.checkAssign(n, ctx)

	case *ast.FunCall:
		return tc.checkCall(n, ctx)

	default:
		panic("semantic: unhandled expression node in TypeChecker")
	}
}

func (tc *TypeChecker) identifierType(id *ast.Identifier, ctx *Context) types.Type {
	switch d := id.Decl.(type) {
	case *ast.VarDecl:
		return d.Type
	case *ast.FunDecl:
		ctx.AddError(NewWrongKindOfName(id.Position, id.Name.String(), "variable", "function"))
		return types.Undefined
	default:
		return types.Undefined
	}
}

func (tc *TypeChecker) checkBinaryOp(n *ast.BinaryOp, ctx *Context) types.Type {
	lt := tc.checkExpr(n.Left, ctx)
	rt := tc.checkExpr(n.Right, ctx)

	if n.Op.IsComparison() {
		if types.IsDefined(lt) && types.IsDefined(rt) && !lt.Equals(rt) {
			ctx.AddError(NewTypeMismatch(n.Position, "comparison operands", lt, rt))
		}
		n.SetType(types.Int)
		return types.Int
	}

	// Arithmetic and logical operators require both operands to be int.
	if types.IsDefined(lt) && !lt.Equals(types.Int) {
		ctx.AddError(NewTypeMismatch(n.Left.Pos(), "left operand", types.Int, lt))
	}
	if types.IsDefined(rt) && !rt.Equals(types.Int) {
		ctx.AddError(NewTypeMismatch(n.Right.Pos(), "right operand", types.Int, rt))
	}
	n.SetType(types.Int)
	return types.Int
}

func (tc *TypeChecker) checkLet(n *ast.Let, ctx *Context) types.Type {
	for _, d := range n.Decls {
		vd, ok := d.(*ast.VarDecl)
		if !ok {
			continue
		}
		tc.checkVarDecl(vd, ctx)
	}
	bodyType := tc.checkExpr(n.Body, ctx)
	n.SetType(bodyType)
	return bodyType
}

func (tc *TypeChecker) checkVarDecl(vd *ast.VarDecl, ctx *Context) {
	var declared types.Type
	if vd.TypeName != "" {
		t, ok := types.FromName(vd.TypeName)
		if !ok {
			ctx.AddError(NewUnknownDeclaredType(vd.Position, vd.TypeName))
			t = types.Undefined
		}
		declared = t
	}

	var valueType types.Type = types.Undefined
	if vd.Value != nil {
		valueType = tc.checkExpr(vd.Value, ctx)
		if valueType.Equals(types.Void) {
			ctx.AddError(NewVoidInitializer(vd.Position, vd.Name.String()))
		}
	}

	switch {
	case declared != nil && types.IsDefined(declared):
		if vd.Value != nil && types.IsDefined(valueType) && !valueType.Equals(declared) {
			ctx.AddError(NewTypeMismatch(vd.Position, "variable initializer", declared, valueType))
		}
		vd.Type = declared
	case vd.Value != nil:
		vd.Type = valueType
	default:
		vd.Type = types.Undefined
	}
}

func (tc *TypeChecker) checkIf(n *ast.IfThenElse, ctx *Context) types.Type {
	condType := tc.checkExpr(n.Cond, ctx)
	if types.IsDefined(condType) && !condType.Equals(types.Int) {
		ctx.AddError(NewTypeMismatch(n.Cond.Pos(), "if condition", types.Int, condType))
	}
	thenType := tc.checkExpr(n.Then, ctx)
	if n.Else == nil {
		n.SetType(types.Void)
		return types.Void
	}
	elseType := tc.checkExpr(n.Else, ctx)
	if types.IsDefined(thenType) && types.IsDefined(elseType) && !thenType.Equals(elseType) {
		ctx.AddError(NewTypeMismatch(n.Else.Pos(), "else branch", thenType, elseType))
	}
	n.SetType(thenType)
	return thenType
}

func (tc *TypeChecker) checkAssign(n *ast.Assign, ctx *Context) types.Type {
	valueType := tc.checkExpr(n.Value, ctx)
	targetType := tc.identifierType(n.Name, ctx)
	n.Name.SetType(targetType)

	if vd, ok := n.Name.Decl.(*ast.VarDecl); ok && vd.ReadOnly {
		ctx.AddError(NewReadOnlyViolation(n.Position, vd.Name.String()))
	}
	if types.IsDefined(targetType) && types.IsDefined(valueType) && !targetType.Equals(valueType) {
		ctx.AddError(NewTypeMismatch(n.Position, "assignment", targetType, valueType))
	}
	n.SetType(types.Void)
	return types.Void
}

func (tc *TypeChecker) checkCall(n *ast.FunCall, ctx *Context) types.Type {
	argTypes := make([]types.Type, len(n.Args))
	for i, arg := range n.Args {
		argTypes[i] = tc.checkExpr(arg, ctx)
	}

	fn, ok := n.Name.Decl.(*ast.FunDecl)
	if !ok {
		if n.Name.Decl != nil {
			ctx.AddError(NewWrongKindOfName(n.Position, n.Name.Name.String(), "function", "variable"))
		}
		n.SetType(types.Undefined)
		return types.Undefined
	}
	n.Name.SetType(fn.ResultType)

	if len(n.Args) != len(fn.ParamDecls) {
		ctx.AddError(NewArityMismatch(n.Position, fn.Name.String(), len(fn.ParamDecls), len(n.Args)))
	} else {
		for i, pd := range fn.ParamDecls {
			if types.IsDefined(argTypes[i]) && types.IsDefined(pd.Type) && !argTypes[i].Equals(pd.Type) {
				ctx.AddError(NewTypeMismatch(n.Args[i].Pos(), "argument", pd.Type, argTypes[i]))
			}
		}
	}

	n.SetType(fn.ResultType)
	return fn.ResultType
}
