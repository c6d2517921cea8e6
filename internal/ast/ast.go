// Package ast defines the node set for the nested-scope expression
// language analyzed by the internal/semantic passes and lowered by
// internal/ir. The same tree is annotated in place by each pass: no
// node is ever rewritten or cloned between Bind, Escape, TypeCheck, and
// IR generation.
package ast

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/nslc/internal/symbol"
	"github.com/cwbudde/nslc/internal/token"
	"github.com/cwbudde/nslc/internal/types"
)

// Node is implemented by every AST element.
type Node interface {
	Pos() token.Position
	String() string
}

// Expr is implemented by every node that produces a value (possibly
// void). Every Expr carries its own type annotation slot, filled in by
// the type checker.
type Expr interface {
	Node
	exprNode()
	GetType() types.Type
	SetType(types.Type)
}

// Decl is implemented by the two declaration forms that may appear in a
// Let's declaration list.
type Decl interface {
	Node
	declNode()
}

type baseExpr struct {
	typ types.Type
}

func (e *baseExpr) GetType() types.Type { return e.typ }
func (e *baseExpr) SetType(t types.Type) { e.typ = t }

// Program is the root of an analyzed unit: a single top-level
// expression, evaluated for its side effects (matching the language's
// "a program is an expression" model).
type Program struct {
	Body Expr

	// Main is an implicit FunDecl wrapping Body, synthesized by the
	// Binder so the top-level expression has the same frame/parent
	// machinery as any other function during escape analysis and IR
	// generation.
	Main *FunDecl

	// Functions lists every FunDecl in the program, including the
	// seeded primitives and Main, in the order the Binder bound them. Escaper and the IR generator
	// both iterate this list instead of re-walking the tree.
	Functions []*FunDecl
}

func (p *Program) Pos() token.Position { return p.Body.Pos() }
func (p *Program) String() string      { return p.Body.String() }

// IntegerLiteral is a constant integer value.
type IntegerLiteral struct {
	baseExpr
	Position token.Position
	Value    int64
}

func (n *IntegerLiteral) exprNode()          {}
func (n *IntegerLiteral) Pos() token.Position { return n.Position }
func (n *IntegerLiteral) String() string      { return fmt.Sprintf("%d", n.Value) }

// StringLiteral is a constant string value.
type StringLiteral struct {
	baseExpr
	Position token.Position
	Value    string
}

func (n *StringLiteral) exprNode()          {}
func (n *StringLiteral) Pos() token.Position { return n.Position }
func (n *StringLiteral) String() string      { return fmt.Sprintf("%q", n.Value) }

// Identifier is a reference to a variable, parameter, or function.
// Name is interned when the node is built; the Binder fills in Decl and
// Depth. Escaper and IR generation read Decl and take depths from the
// declarations and enclosing functions, not from Depth.
type Identifier struct {
	baseExpr
	Position token.Position
	Name     symbol.Symbol

	// Decl is the declaration this identifier resolves to. Set by the
	// Binder; nil until then.
	Decl Decl
	// Depth is the lexical nesting depth of the *use*, counted in
	// enclosing functions. Set by the Binder.
	Depth int
}

func (n *Identifier) exprNode()          {}
func (n *Identifier) Pos() token.Position { return n.Position }
func (n *Identifier) String() string      { return n.Name.String() }

// BinaryOpKind enumerates the arithmetic, comparison, and logical
// operators.
type BinaryOpKind int

const (
	OpAdd BinaryOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpEq
	OpNeq
	OpLt
	OpLe
	OpGt
	OpGe
	OpAnd
	OpOr
)

func (k BinaryOpKind) String() string {
	switch k {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpEq:
		return "="
	case OpNeq:
		return "<>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "&"
	case OpOr:
		return "|"
	default:
		return "?"
	}
}

// IsComparison reports whether k compares two operands rather than
// combining them arithmetically or logically. String operands are only
// ever legal under a comparison operator.
func (k BinaryOpKind) IsComparison() bool {
	switch k {
	case OpEq, OpNeq, OpLt, OpLe, OpGt, OpGe:
		return true
	default:
		return false
	}
}

// BinaryOp applies Op to Left and Right.
type BinaryOp struct {
	baseExpr
	Position token.Position
	Op       BinaryOpKind
	Left     Expr
	Right    Expr
}

func (n *BinaryOp) exprNode()          {}
func (n *BinaryOp) Pos() token.Position { return n.Position }
func (n *BinaryOp) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.Op, n.Right)
}

// Sequence evaluates Exprs in order, yielding the value (and type) of
// the last one, or void if empty.
type Sequence struct {
	baseExpr
	Position token.Position
	Exprs    []Expr
}

func (n *Sequence) exprNode()          {}
func (n *Sequence) Pos() token.Position { return n.Position }
func (n *Sequence) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	for i, e := range n.Exprs {
		if i > 0 {
			buf.WriteString("; ")
		}
		buf.WriteString(e.String())
	}
	buf.WriteString(")")
	return buf.String()
}
