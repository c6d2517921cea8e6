package semantic

import (
	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/symbol"
	"github.com/cwbudde/nslc/internal/types"
)

// primitiveSignature describes one runtime-library function seeded
// into the global scope before a program is bound, so that calls to it
// resolve exactly like calls to a user-declared function.
type primitiveSignature struct {
	name   string
	params []types.Type
	result types.Type
}

// primitiveSignatures lists every primitive the runtime library
// exports. Each primitive's external (link-time) name is its own name
// prefixed by "__".
var primitiveSignatures = []primitiveSignature{
	{name: "print_err", params: []types.Type{types.String}, result: types.Void},
	{name: "print", params: []types.Type{types.String}, result: types.Void},
	{name: "print_int", params: []types.Type{types.Int}, result: types.Void},
	{name: "flush", params: nil, result: types.Void},
	{name: "getchar", params: nil, result: types.String},
	{name: "ord", params: []types.Type{types.String}, result: types.Int},
	{name: "chr", params: []types.Type{types.Int}, result: types.String},
	{name: "size", params: []types.Type{types.String}, result: types.Int},
	{name: "substring", params: []types.Type{types.String, types.Int, types.Int}, result: types.String},
	{name: "concat", params: []types.Type{types.String, types.String}, result: types.String},
	{name: "strcmp", params: []types.Type{types.String, types.String}, result: types.Int},
	{name: "streq", params: []types.Type{types.String, types.String}, result: types.Int},
	{name: "not", params: []types.Type{types.Int}, result: types.Int},
	{name: "exit", params: []types.Type{types.Int}, result: types.Void},
}

// seedPrimitives defines every primitive function in the global scope
// of ctx, returning the synthesized FunDecls so later lookups (and IR
// generation's runtime linkage) can use them directly.
func seedPrimitives(ctx *Context, symbols *symbol.Table) []*ast.FunDecl {
	var decls []*ast.FunDecl
	for _, sig := range primitiveSignatures {
		fn := &ast.FunDecl{
			Name:         symbols.Intern(sig.name),
			ExternalName: "__" + sig.name,
			ResultType:   sig.result,
			IsPrimitive:  true,
			Depth:        0,
		}
		for i, pt := range sig.params {
			p := &ast.VarDecl{
				Name: symbols.Intern(paramPlaceholderName(i)),
				Kind: ast.VarKindParameter,
				Type: pt,
			}
			fn.ParamDecls = append(fn.ParamDecls, p)
		}
		fn.Group = []*ast.FunDecl{fn}
		ctx.GlobalScope().Define(sig.name, fn)
		ctx.Primitives[fn.ExternalName] = fn
		decls = append(decls, fn)
	}
	return decls
}

func paramPlaceholderName(i int) string {
	const letters = "abcdefghijklmnopqrstuvwxyz"
	if i < len(letters) {
		return string(letters[i])
	}
	return "arg"
}
