package semantic

import (
	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/symbol"
)

// Binder resolves every Identifier and FunCall to the declaration it
// names, assigns lexical depths, batches mutually recursive function
// runs, and binds every Break to its enclosing loop. It is the first
// pass in the pipeline; the Escaper, TypeChecker, and IR generator all
// depend on the Decl/Depth/Target annotations it leaves behind.
type Binder struct {
	Symbols *symbol.Table

	// usedExternalNames tracks every external name emitted so far
	// (including primitives), so mangle can enforce global uniqueness.
	usedExternalNames map[string]bool

	// main is the implicit top-level function synthesized by Run. A
	// function whose Parent is main is itself top-level (it is written
	// directly in the program's own let, not nested in another named
	// function), so mangle does not dot-join against it.
	main *ast.FunDecl
}

// NewBinder returns a Binder using its own fresh symbol table.
func NewBinder() *Binder {
	return &Binder{
		Symbols:           symbol.NewTable(),
		usedExternalNames: make(map[string]bool),
	}
}

func (b *Binder) Name() string { return "bind" }

func (b *Binder) Run(program *ast.Program, ctx *Context) error {
	for _, fn := range seedPrimitives(ctx, b.Symbols) {
		b.usedExternalNames[fn.ExternalName] = true
		ctx.AllFunctions = append(ctx.AllFunctions, fn)
	}

	main := &ast.FunDecl{
		Name:  b.Symbols.Intern("_main"),
		Depth: 0,
		Group: nil,
	}
	main.ExternalName = b.claimExternalName(main.Name.String())
	main.Group = []*ast.FunDecl{main}
	main.Body = program.Body
	b.main = main
	program.Main = main
	ctx.AllFunctions = append(ctx.AllFunctions, main)

	ctx.PushFunction(main)
	b.bindExpr(program.Body, ctx)
	ctx.PopFunction()

	program.Functions = ctx.AllFunctions
	return ctx.Flush()
}

func (b *Binder) bindExpr(e ast.Expr, ctx *Context) {
	switch n := e.(type) {
	case *ast.IntegerLiteral, *ast.StringLiteral:
		// no names to resolve

	case *ast.Identifier:
		b.bindIdentifier(n, ctx)

	case *ast.BinaryOp:
		b.bindExpr(n.Left, ctx)
		b.bindExpr(n.Right, ctx)

	case *ast.Sequence:
		for _, sub := range n.Exprs {
			b.bindExpr(sub, ctx)
		}

	case *ast.Let:
		b.bindLet(n, ctx)

	case *ast.IfThenElse:
		b.bindExpr(n.Cond, ctx)
		b.bindExpr(n.Then, ctx)
		if n.Else != nil {
			b.bindExpr(n.Else, ctx)
		}

	case *ast.WhileLoop:
		b.bindExpr(n.Cond, ctx)
		ctx.PushLoop(n)
		b.bindExpr(n.Body, ctx)
		ctx.PopLoop()

	case *ast.ForLoop:
		b.bindExpr(n.Low, ctx)
		b.bindExpr(n.High, ctx)
		ctx.PushScope()
		n.Variable.Kind = ast.VarKindLoop
		n.Variable.ReadOnly = true
		n.Variable.Depth = ctx.Depth()
		if !ctx.CurrentScope().Define(n.Variable.Name.String(), n.Variable) {
			ctx.AddError(NewRedeclaration(n.Variable.Position, n.Variable.Name.String()))
		}
		if fn := ctx.CurrentFunction(); fn != nil {
			fn.Locals = append(fn.Locals, n.Variable)
		}
		ctx.PushLoop(n)
		b.bindExpr(n.Body, ctx)
		ctx.PopLoop()
		ctx.PopScope()

	case *ast.Break:
		if loop := ctx.CurrentLoop(); loop != nil {
			n.Target = loop
		} else {
			ctx.AddError(NewBreakOutsideLoop(n.Position))
		}

	case *ast.Assign:
		b.bindIdentifier(n.Name, ctx)
		b.bindExpr(n.Value, ctx)

	case *ast.FunCall:
		b.bindIdentifier(n.Name, ctx)
		for _, arg := range n.Args {
			b.bindExpr(arg, ctx)
		}

	default:
		panic("semantic: unhandled expression node in Binder")
	}
}

func (b *Binder) bindIdentifier(id *ast.Identifier, ctx *Context) {
	decl, ok := ctx.CurrentScope().Lookup(id.Name.String())
	if !ok {
		ctx.AddError(NewUnboundReference(id.Position, id.Name.String()))
		return
	}
	id.Decl = decl
	id.Depth = ctx.Depth()
}

func (b *Binder) bindLet(n *ast.Let, ctx *Context) {
	ctx.PushScope()
	scope := ctx.CurrentScope()

	groups := FunctionGroups(n.Decls)
	groupIndex := 0

	i := 0
	for i < len(n.Decls) {
		if _, ok := n.Decls[i].(*ast.FunDecl); ok {
			group := groups[groupIndex]
			groupIndex++
			b.bindFunctionGroup(group, ctx, scope)
			i += len(group)
			continue
		}

		vd := n.Decls[i].(*ast.VarDecl)
		b.bindVarDecl(vd, ctx, scope)
		i++
	}

	b.bindExpr(n.Body, ctx)
	ctx.PopScope()
}

func (b *Binder) bindVarDecl(vd *ast.VarDecl, ctx *Context, scope *Scope) {
	if vd.Value != nil {
		b.bindExpr(vd.Value, ctx)
	}
	vd.Depth = ctx.Depth()
	if !scope.Define(vd.Name.String(), vd) {
		ctx.AddError(NewRedeclaration(vd.Position, vd.Name.String()))
	}
	if fn := ctx.CurrentFunction(); fn != nil {
		fn.Locals = append(fn.Locals, vd)
	}
}

// bindFunctionGroup forward-declares every function in group in scope
// (so they can call each other), then binds each body in turn with its
// own parameter scope pushed.
func (b *Binder) bindFunctionGroup(group []*ast.FunDecl, ctx *Context, scope *Scope) {
	for _, fn := range group {
		fn.Depth = ctx.Depth() + 1
		fn.Parent = ctx.CurrentFunction()
		fn.ExternalName = b.mangle(fn)
		for _, p := range fn.Params {
			pd := &ast.VarDecl{
				Position: p.Position,
				Name:     p.Name,
				TypeName: p.TypeName,
				Kind:     ast.VarKindParameter,
				Depth:    fn.Depth,
			}
			fn.ParamDecls = append(fn.ParamDecls, pd)
		}
		if !scope.Define(fn.Name.String(), fn) {
			ctx.AddError(NewRedeclaration(fn.Position, fn.Name.String()))
		}
		ctx.AllFunctions = append(ctx.AllFunctions, fn)
	}

	for _, fn := range group {
		ctx.PushScope()
		paramScope := ctx.CurrentScope()
		for _, pd := range fn.ParamDecls {
			if pd.Name.String() == fn.Name.String() {
				ctx.AddError(NewParameterShadowsFunction(pd.Position, pd.Name.String()))
			}
			if !paramScope.Define(pd.Name.String(), pd) {
				ctx.AddError(NewRedeclaration(pd.Position, pd.Name.String()))
			}
		}
		ctx.PushFunction(fn)
		if fn.Body != nil {
			b.bindExpr(fn.Body, ctx)
		}
		ctx.PopFunction()
		ctx.PopScope()
	}
}

// mangle assigns the external (link-time) name of a user function.
// A function declared directly in the program's own let (Parent is the
// implicit top-level function) keeps its own source name; a function
// nested inside another named function is named
// parent_external.child_name, dot-joining the chain of enclosing
// external names. Either way, claimExternalName appends a trailing
// underscore repeatedly until the result is globally unique.
func (b *Binder) mangle(fn *ast.FunDecl) string {
	name := fn.Name.String()
	if fn.Parent != nil && fn.Parent != b.main {
		name = fn.Parent.ExternalName + "." + name
	}
	return b.claimExternalName(name)
}

// claimExternalName reserves name as an external name, appending a
// trailing underscore repeatedly until it has not already been used.
func (b *Binder) claimExternalName(name string) string {
	for b.usedExternalNames[name] {
		name += "_"
	}
	b.usedExternalNames[name] = true
	return name
}
