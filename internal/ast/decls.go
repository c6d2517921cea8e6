package ast

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/nslc/internal/symbol"
	"github.com/cwbudde/nslc/internal/token"
	"github.com/cwbudde/nslc/internal/types"
)

// VarDecl declares a variable inside a Let's declaration list, or a
// function parameter, or a for-loop induction variable. Which role a
// VarDecl plays is recorded in Kind.
type VarDecl struct {
	Position     token.Position
	Name         symbol.Symbol
	TypeName     string // as written; empty when the type is inferred from Value
	Value        Expr   // nil for parameters
	Kind         VarDeclKind
	Escapes      bool // set by the Escape Analyzer
	Depth        int  // lexical depth of the *declaration*, set by the Binder
	ExternalName string
	Type         types.Type // resolved type, set by the Type Checker
	ReadOnly     bool       // true for loop induction variables (spec §7 read-only violation)
}

// VarDeclKind distinguishes the three syntactic positions a VarDecl
// can appear in; each has slightly different typing and escape rules.
type VarDeclKind int

const (
	VarKindLet       VarDeclKind = iota // declared in a let's declaration list
	VarKindParameter                    // a function parameter
	VarKindLoop                         // a for-loop induction variable
)

func (d *VarDecl) declNode() {}
func (d *VarDecl) Pos() token.Position { return d.Position }
func (d *VarDecl) String() string {
	if d.Value != nil {
		return fmt.Sprintf("var %s := %s", d.Name, d.Value)
	}
	return fmt.Sprintf("var %s: %s", d.Name, d.TypeName)
}

// Param is a function parameter declared in a FunDecl's signature. It
// is distinct from VarDecl only in its position in the grammar; once
// bound it is represented by a VarDecl of Kind VarKindParameter so the
// rest of the pipeline needs only one declaration shape.
type Param struct {
	Position token.Position
	Name     symbol.Symbol
	TypeName string
}

// FunDecl declares a function. Mutually recursive functions are
// grouped by the Binder into consecutive runs that share a forward
// visibility scope; Group records all FunDecls bound together with
// this one (including itself), for use by the Type Checker's two-phase
// verification.
type FunDecl struct {
	Position     token.Position
	Name         symbol.Symbol
	Params       []*Param
	ResultName   string // as written; empty for a void function
	Body         Expr
	ExternalName string
	ResultType   types.Type // resolved by the Type Checker

	// ParamDecls mirrors Params as VarDecls, built by the Binder, so
	// that Escaper and IR generation have a single declaration kind to
	// operate on.
	ParamDecls []*VarDecl

	// Locals lists every VarDecl (let-bound and loop induction
	// variables) declared directly in this function's body, in
	// declaration order, excluding parameters and excluding anything
	// declared inside a nested function. Built by the Binder.
	Locals []*VarDecl

	// Escaping lists, in declaration order, every local variable and
	// parameter of this function that is captured by a nested
	// function. Set by the Escape Analyzer; this is the frame layout
	// the IR generator allocates.
	Escaping []*VarDecl

	// Depth is the lexical nesting depth of the function itself
	// (0 for the top-level implicit main function).
	Depth int

	// Parent is the statically enclosing function, nil for the
	// top-level function.
	Parent *FunDecl

	// Group lists every FunDecl bound together with this one in the
	// same maximal run of consecutive function declarations, including
	// this FunDecl. A singleton (non-mutually-recursive) function has
	// Group == []*FunDecl{self}.
	Group []*FunDecl

	// IsPrimitive marks a function seeded by the Binder rather than
	// declared by the program (print, strcmp, and friends); such
	// functions have no Body and are never queued for IR generation of
	// a body, only declared at the call boundary.
	IsPrimitive bool
}

func (d *FunDecl) declNode() {}
func (d *FunDecl) Pos() token.Position { return d.Position }
func (d *FunDecl) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "function %s(", d.Name)
	for i, p := range d.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "%s: %s", p.Name, p.TypeName)
	}
	buf.WriteString(")")
	if d.ResultName != "" {
		fmt.Fprintf(&buf, ": %s", d.ResultName)
	}
	if d.Body != nil {
		fmt.Fprintf(&buf, " = %s", d.Body)
	}
	return buf.String()
}

// Let introduces a batch of declarations (variables and/or mutually
// recursive functions) that are in scope for Body.
type Let struct {
	baseExpr
	Position token.Position
	Decls    []Decl
	Body     Expr
}

func (n *Let) exprNode()          {}
func (n *Let) Pos() token.Position { return n.Position }
func (n *Let) String() string {
	var buf bytes.Buffer
	buf.WriteString("let ")
	for i, d := range n.Decls {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(d.String())
	}
	fmt.Fprintf(&buf, " in %s", n.Body)
	return buf.String()
}
