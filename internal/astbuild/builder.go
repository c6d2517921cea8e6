// Package astbuild constructs ast.Program values directly, without a
// lexer or parser. Surface syntax is out of scope for this module; a
// Builder is the only way its tests and its CLI driver assemble a
// program to run through the analysis pipeline.
package astbuild

import (
	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/symbol"
	"github.com/cwbudde/nslc/internal/token"
)

// Builder assembles AST nodes, interning every name through its own
// symbol table.
type Builder struct {
	symbols *symbol.Table
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{symbols: symbol.NewTable()}
}

// Program wraps body as a full ast.Program, ready to hand to the
// analysis pipeline.
func (b *Builder) Program(body ast.Expr) *ast.Program {
	return &ast.Program{Body: body}
}

func (b *Builder) Int(v int64) *ast.IntegerLiteral {
	return &ast.IntegerLiteral{Value: v}
}

func (b *Builder) Str(v string) *ast.StringLiteral {
	return &ast.StringLiteral{Value: v}
}

func (b *Builder) Ident(name string) *ast.Identifier {
	return &ast.Identifier{Name: b.symbols.Intern(name)}
}

func (b *Builder) Bin(op ast.BinaryOpKind, left, right ast.Expr) *ast.BinaryOp {
	return &ast.BinaryOp{Op: op, Left: left, Right: right}
}

func (b *Builder) Seq(exprs ...ast.Expr) *ast.Sequence {
	return &ast.Sequence{Exprs: exprs}
}

func (b *Builder) Var(name, typeName string, value ast.Expr) *ast.VarDecl {
	return &ast.VarDecl{Name: b.symbols.Intern(name), TypeName: typeName, Value: value, Kind: ast.VarKindLet}
}

func (b *Builder) Param(name, typeName string) *ast.Param {
	return &ast.Param{Name: b.symbols.Intern(name), TypeName: typeName}
}

func (b *Builder) Fun(name string, params []*ast.Param, resultName string, body ast.Expr) *ast.FunDecl {
	return &ast.FunDecl{Name: b.symbols.Intern(name), Params: params, ResultName: resultName, Body: body}
}

func (b *Builder) Let(decls []ast.Decl, body ast.Expr) *ast.Let {
	return &ast.Let{Decls: decls, Body: body}
}

func (b *Builder) If(cond, then, els ast.Expr) *ast.IfThenElse {
	return &ast.IfThenElse{Cond: cond, Then: then, Else: els}
}

func (b *Builder) While(cond, body ast.Expr) *ast.WhileLoop {
	return &ast.WhileLoop{Cond: cond, Body: body}
}

func (b *Builder) For(varName string, low, high, body ast.Expr) *ast.ForLoop {
	v := &ast.VarDecl{Name: b.symbols.Intern(varName), Kind: ast.VarKindLoop, ReadOnly: true}
	return &ast.ForLoop{Variable: v, Low: low, High: high, Body: body}
}

func (b *Builder) Break() *ast.Break {
	return &ast.Break{}
}

func (b *Builder) Assign(name string, value ast.Expr) *ast.Assign {
	return &ast.Assign{Name: b.Ident(name), Value: value}
}

func (b *Builder) Call(name string, args ...ast.Expr) *ast.FunCall {
	return &ast.FunCall{Name: b.Ident(name), Args: args}
}

// Pos returns a source position for assigning to the Position field of
// any node built above; the zero Position is fine when positions aren't
// under test.
func Pos(line, col int) token.Position {
	return token.Position{Line: line, Column: col}
}
