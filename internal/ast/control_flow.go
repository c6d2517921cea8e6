package ast

import (
	"bytes"
	"fmt"

	"github.com/cwbudde/nslc/internal/token"
)

// IfThenElse evaluates Cond and branches to Then or Else. Else is nil
// for an if-then with no else clause, in which case the expression's
// type is void.
type IfThenElse struct {
	baseExpr
	Position token.Position
	Cond     Expr
	Then     Expr
	Else     Expr
}

func (n *IfThenElse) exprNode()          {}
func (n *IfThenElse) Pos() token.Position { return n.Position }
func (n *IfThenElse) String() string {
	if n.Else != nil {
		return fmt.Sprintf("if %s then %s else %s", n.Cond, n.Then, n.Else)
	}
	return fmt.Sprintf("if %s then %s", n.Cond, n.Then)
}

// WhileLoop repeats Body while Cond is non-zero. Its type is always
// void.
type WhileLoop struct {
	baseExpr
	Position token.Position
	Cond     Expr
	Body     Expr
}

func (n *WhileLoop) exprNode()          {}
func (n *WhileLoop) Pos() token.Position { return n.Position }
func (n *WhileLoop) String() string {
	return fmt.Sprintf("while %s do %s", n.Cond, n.Body)
}

// ForLoop binds Variable to successive integers from Low to High
// (inclusive) and evaluates Body for each. Variable is read-only inside
// Body (spec §7 read-only violation).
type ForLoop struct {
	baseExpr
	Position token.Position
	Variable *VarDecl
	Low      Expr
	High     Expr
	Body     Expr
}

func (n *ForLoop) exprNode()          {}
func (n *ForLoop) Pos() token.Position { return n.Position }
func (n *ForLoop) String() string {
	return fmt.Sprintf("for %s := %s to %s do %s", n.Variable.Name, n.Low, n.High, n.Body)
}

// Break exits the innermost enclosing while/for loop. Its static type
// is void; binding it outside a loop is a spec §7 error.
type Break struct {
	baseExpr
	Position token.Position

	// Target is the loop this break exits, filled in by the Binder.
	Target Node
}

func (n *Break) exprNode()          {}
func (n *Break) Pos() token.Position { return n.Position }
func (n *Break) String() string      { return "break" }

// Assign stores the value of Value into the variable named by Name.
type Assign struct {
	baseExpr
	Position token.Position
	Name     *Identifier
	Value    Expr
}

func (n *Assign) exprNode()          {}
func (n *Assign) Pos() token.Position { return n.Position }
func (n *Assign) String() string {
	return fmt.Sprintf("%s := %s", n.Name, n.Value)
}

// FunCall invokes the function named by Name with Args.
type FunCall struct {
	baseExpr
	Position token.Position
	Name     *Identifier
	Args     []Expr
}

func (n *FunCall) exprNode()          {}
func (n *FunCall) Pos() token.Position { return n.Position }
func (n *FunCall) String() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s(", n.Name)
	for i, a := range n.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(a.String())
	}
	buf.WriteString(")")
	return buf.String()
}
