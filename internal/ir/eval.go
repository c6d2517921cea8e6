package ir

import (
	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/types"
)

// evalExpr lowers e into the current block, returning the Operand
// holding its value and whether it produced one (false for a void
// expression, in which case the Operand is meaningless).
func (fg *funcGen) evalExpr(e ast.Expr) (Operand, bool) {
	switch n := e.(type) {
	case *ast.IntegerLiteral:
		return fg.emit(Insn{Dest: fg.newTemp(), Type: types.Int, Op: OpConstInt, Args: []Operand{ConstInt(n.Value)}}), true

	case *ast.StringLiteral:
		return fg.emit(Insn{Dest: fg.newTemp(), Type: types.String, Op: OpConstStr, Args: []Operand{ConstStr(n.Value)}}), true

	case *ast.Identifier:
		return fg.loadIdentifier(n)

	case *ast.BinaryOp:
		return fg.evalBinaryOp(n)

	case *ast.Sequence:
		return fg.evalSequence(n)

	case *ast.Let:
		return fg.evalLet(n)

	case *ast.IfThenElse:
		return fg.evalIf(n)

	case *ast.WhileLoop:
		fg.evalWhile(n)
		return Operand{}, false

	case *ast.ForLoop:
		fg.evalFor(n)
		return Operand{}, false

	case *ast.Break:
		target := fg.loopEnd[n.Target]
		fg.jumpTo(target)
		fg.cur = fg.newBlock("after_break")
		return Operand{}, false

	case *ast.Assign:
		return fg.evalAssign(n)

	case *ast.FunCall:
		return fg.evalCall(n)

	default:
		panic("ir: unhandled expression node in Generator")
	}
}

// address describes where a variable's storage lives.
type address struct {
	escaping bool
	slot     string
	frame    Operand
	field    int
}

// addressOf computes where vd's storage lives, walking the static
// link from the current function's own frame when vd was declared in
// an enclosing function. depthDiff is the number of static-link hops:
// 0 when vd belongs to the function currently being generated.
func (fg *funcGen) addressOf(vd *ast.VarDecl) address {
	depthDiff := fg.fn.Depth - vd.Depth

	if !vd.Escapes {
		return address{escaping: false, slot: fg.localSlot[vd]}
	}

	frame := fg.selfFrame
	for i := 0; i < depthDiff; i++ {
		frame = fg.emit(Insn{Dest: fg.newTemp(), Op: OpFrameUp, Args: []Operand{frame}})
	}

	idx, ok := fg.frameIndexLocal[vd]
	if !ok {
		// vd belongs to an ancestor function's own frame layout, which
		// the depthDiff hops above have already reached; its field
		// index comes from that function's Escaping list.
		idx = fg.ancestorFieldIndex(vd)
	}
	return address{escaping: true, frame: frame, field: idx}
}

// ancestorFieldIndex finds vd's frame field index within its own
// declaring function's Escaping list (field 0 is always the static
// link, so declaration order starts at 1).
func (fg *funcGen) ancestorFieldIndex(vd *ast.VarDecl) int {
	owner := fg.declaringFunction(vd)
	for i, e := range owner.Escaping {
		if e == vd {
			return i + 1
		}
	}
	return 0
}

// declaringFunction recovers the FunDecl a VarDecl belongs to. Binder
// does not store this pointer directly on VarDecl (it is only needed
// here, for cross-frame field lookups): a parameter's owner is the
// function it was appended to, and the declaring function of a
// Let-bound local is likewise the one whose Locals slice contains it.
// fg.allFunctions is Program.Functions, so this is a linear scan over
// the program's functions, run only for an escaping variable accessed
// across a closure boundary.
func (fg *funcGen) declaringFunction(vd *ast.VarDecl) *ast.FunDecl {
	for _, fn := range fg.allFunctions {
		for _, p := range fn.ParamDecls {
			if p == vd {
				return fn
			}
		}
		for _, l := range fn.Locals {
			if l == vd {
				return fn
			}
		}
	}
	return nil
}

func (fg *funcGen) loadIdentifier(id *ast.Identifier) (Operand, bool) {
	vd, ok := id.Decl.(*ast.VarDecl)
	if !ok {
		return Operand{}, false
	}
	addr := fg.addressOf(vd)
	if addr.escaping {
		return fg.emit(Insn{Dest: fg.newTemp(), Type: vd.Type, Op: OpFrameGet, Args: []Operand{addr.frame, Field(addr.field)}}), true
	}
	return fg.emit(Insn{Dest: fg.newTemp(), Type: vd.Type, Op: OpLoad, Args: []Operand{Slot(addr.slot)}}), true
}

func (fg *funcGen) storeIdentifier(id *ast.Identifier, value Operand) {
	vd := id.Decl.(*ast.VarDecl)
	addr := fg.addressOf(vd)
	if addr.escaping {
		fg.emit(Insn{Dest: -1, Op: OpFrameSet, Args: []Operand{addr.frame, Field(addr.field), value}})
		return
	}
	fg.emit(Insn{Dest: -1, Op: OpStore, Args: []Operand{Slot(addr.slot), value}})
}

func (fg *funcGen) evalBinaryOp(n *ast.BinaryOp) (Operand, bool) {
	lv, _ := fg.evalExpr(n.Left)
	rv, _ := fg.evalExpr(n.Right)

	if n.Op.IsComparison() && n.Left.GetType() != nil && n.Left.GetType().Equals(types.String) {
		cmp := fg.emitCall(fg.primitives["strcmp"], []Operand{lv, rv}, types.Int)
		rv = ConstInt(0)
		lv = cmp
	}

	return fg.emit(Insn{Dest: fg.newTemp(), Type: types.Int, Op: opcodeFor(n), SubOp: n.Op.String(), Args: []Operand{lv, rv}}), true
}

func opcodeFor(n *ast.BinaryOp) Opcode {
	if n.Op.IsComparison() {
		return OpICmp
	}
	return OpBinOp
}

func (fg *funcGen) evalSequence(n *ast.Sequence) (Operand, bool) {
	var last Operand
	hasVal := false
	for _, sub := range n.Exprs {
		last, hasVal = fg.evalExpr(sub)
	}
	return last, hasVal
}

func (fg *funcGen) evalLet(n *ast.Let) (Operand, bool) {
	for _, d := range n.Decls {
		vd, ok := d.(*ast.VarDecl)
		if !ok {
			continue // FunDecls are generated as separate top-level functions
		}
		fg.declareLocal(vd)
	}
	return fg.evalExpr(n.Body)
}

func (fg *funcGen) declareLocal(vd *ast.VarDecl) {
	var value Operand
	hasValue := false
	if vd.Value != nil {
		value, hasValue = fg.evalExpr(vd.Value)
	}

	if vd.Escapes {
		idx := fg.frameIndexLocal[vd]
		if hasValue {
			fg.emit(Insn{Dest: -1, Op: OpFrameSet, Args: []Operand{fg.selfFrame, Field(idx), value}})
		}
		return
	}

	slot := fg.newSlot("local." + vd.Name.String())
	fg.localSlot[vd] = slot
	fg.emit(Insn{Dest: -1, Op: OpAlloca, Type: vd.Type, Args: []Operand{Slot(slot)}})
	if hasValue {
		fg.emit(Insn{Dest: -1, Op: OpStore, Args: []Operand{Slot(slot), value}})
	}
}

func (fg *funcGen) evalIf(n *ast.IfThenElse) (Operand, bool) {
	cond, _ := fg.evalExpr(n.Cond)

	resultType := n.GetType()
	var resultSlot string
	wantsResult := resultType != nil && !resultType.Equals(types.Void)
	if wantsResult {
		resultSlot = fg.newSlot("if.result")
		fg.emit(Insn{Dest: -1, Op: OpAlloca, Type: resultType, Args: []Operand{Slot(resultSlot)}})
	}

	thenBlock := fg.newBlock("if.then")
	endBlock := fg.newBlock("if.end")
	var elseBlock *Block
	if n.Else != nil {
		elseBlock = fg.newBlock("if.else")
		fg.branch(cond, thenBlock, elseBlock)
	} else {
		fg.branch(cond, thenBlock, endBlock)
	}

	fg.cur = thenBlock
	thenVal, thenHas := fg.evalExpr(n.Then)
	if wantsResult && thenHas {
		fg.emit(Insn{Dest: -1, Op: OpStore, Args: []Operand{Slot(resultSlot), thenVal}})
	}
	fg.jumpTo(endBlock)

	if n.Else != nil {
		fg.cur = elseBlock
		elseVal, elseHas := fg.evalExpr(n.Else)
		if wantsResult && elseHas {
			fg.emit(Insn{Dest: -1, Op: OpStore, Args: []Operand{Slot(resultSlot), elseVal}})
		}
		fg.jumpTo(endBlock)
	}

	fg.cur = endBlock
	if wantsResult {
		return fg.emit(Insn{Dest: fg.newTemp(), Type: resultType, Op: OpLoad, Args: []Operand{Slot(resultSlot)}}), true
	}
	return Operand{}, false
}

func (fg *funcGen) evalWhile(n *ast.WhileLoop) {
	testBlock := fg.newBlock("while.test")
	bodyBlock := fg.newBlock("while.body")
	endBlock := fg.newBlock("while.end")

	fg.jumpTo(testBlock)

	fg.cur = testBlock
	cond, _ := fg.evalExpr(n.Cond)
	fg.branch(cond, bodyBlock, endBlock)

	fg.cur = bodyBlock
	fg.loopEnd[n] = endBlock
	fg.evalExpr(n.Body)
	fg.jumpTo(testBlock)

	fg.cur = endBlock
}

func (fg *funcGen) evalFor(n *ast.ForLoop) {
	low, _ := fg.evalExpr(n.Low)
	high, _ := fg.evalExpr(n.High)

	slot := fg.newSlot("local." + n.Variable.Name.String())
	fg.localSlot[n.Variable] = slot
	fg.emit(Insn{Dest: -1, Op: OpAlloca, Type: types.Int, Args: []Operand{Slot(slot)}})
	fg.emit(Insn{Dest: -1, Op: OpStore, Args: []Operand{Slot(slot), low}})

	testBlock := fg.newBlock("for.test")
	bodyBlock := fg.newBlock("for.body")
	endBlock := fg.newBlock("for.end")

	fg.jumpTo(testBlock)

	fg.cur = testBlock
	cur := fg.emit(Insn{Dest: fg.newTemp(), Type: types.Int, Op: OpLoad, Args: []Operand{Slot(slot)}})
	cond := fg.emit(Insn{Dest: fg.newTemp(), Type: types.Int, Op: OpICmp, SubOp: "<=", Args: []Operand{cur, high}})
	fg.branch(cond, bodyBlock, endBlock)

	fg.cur = bodyBlock
	fg.loopEnd[n] = endBlock
	fg.evalExpr(n.Body)
	cur2 := fg.emit(Insn{Dest: fg.newTemp(), Type: types.Int, Op: OpLoad, Args: []Operand{Slot(slot)}})
	next := fg.emit(Insn{Dest: fg.newTemp(), Type: types.Int, Op: OpBinOp, SubOp: "+", Args: []Operand{cur2, ConstInt(1)}})
	fg.emit(Insn{Dest: -1, Op: OpStore, Args: []Operand{Slot(slot), next}})
	fg.jumpTo(testBlock)

	fg.cur = endBlock
}

func (fg *funcGen) evalAssign(n *ast.Assign) (Operand, bool) {
	value, _ := fg.evalExpr(n.Value)
	fg.storeIdentifier(n.Name, value)
	return Operand{}, false
}

func (fg *funcGen) evalCall(n *ast.FunCall) (Operand, bool) {
	callee, ok := n.Name.Decl.(*ast.FunDecl)
	if !ok {
		return Operand{}, false
	}

	var args []Operand
	if !callee.IsPrimitive && callee.Parent != nil {
		args = append(args, fg.staticLinkFor(callee))
	}
	for _, a := range n.Args {
		v, _ := fg.evalExpr(a)
		args = append(args, v)
	}

	resultType := callee.ResultType
	if resultType.Equals(types.Void) {
		fg.emitCallVoid(callee, args)
		return Operand{}, false
	}
	return fg.emitCall(callee, args, resultType), true
}

// staticLinkFor computes the frame pointer to pass as callee's hidden
// static-link argument: the activation record of the function that
// lexically encloses callee, reached by walking up from the current
// function's own frame.
func (fg *funcGen) staticLinkFor(callee *ast.FunDecl) Operand {
	depthDiff := fg.fn.Depth - callee.Parent.Depth
	frame := fg.selfFrame
	for i := 0; i < depthDiff; i++ {
		frame = fg.emit(Insn{Dest: fg.newTemp(), Op: OpFrameUp, Args: []Operand{frame}})
	}
	return frame
}

func (fg *funcGen) emitCall(callee *ast.FunDecl, args []Operand, resultType types.Type) Operand {
	return fg.emit(Insn{Dest: fg.newTemp(), Type: resultType, Op: OpCall, Callee: callee.ExternalName, Args: args})
}

func (fg *funcGen) emitCallVoid(callee *ast.FunDecl, args []Operand) {
	fg.emit(Insn{Dest: -1, Op: OpCall, Callee: callee.ExternalName, Args: args})
}
