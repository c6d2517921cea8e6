// Package ir defines the control-flow-graph intermediate representation
// produced by Generator, and a textual printer for it. The IR is
// block-structured and typed: every value-producing instruction names
// the temporary it defines and the source type of that temporary
// (int, string, or void); frame-pointer values used for closure
// static links are untyped at this level, since no source expression
// ever observes one directly.
package ir

import (
	"fmt"

	"github.com/cwbudde/nslc/internal/types"
)

// Opcode identifies one IR instruction form.
type Opcode int

const (
	OpConstInt Opcode = iota
	OpConstStr
	OpBinOp
	OpICmp
	OpParam      // bind the next incoming parameter (including the hidden static link) to a temp
	OpAlloca     // reserve a named local slot, in the block where the declaration is lowered (not hoisted to the entry block)
	OpLoad       // load the current value of a local slot
	OpStore      // store into a local slot
	OpFrameNew   // allocate this function's frame record
	OpFrameSet   // store into a field of a frame-pointer value
	OpFrameGet   // load a field of a frame-pointer value
	OpFrameUp    // follow one static-link hop: field 0 of a frame pointer
	OpCall       // call a user or primitive function
	OpJump       // unconditional successor
	OpBranch     // conditional successor on a zero/non-zero int value
	OpRet        // return a value
	OpRetVoid    // return with no value
)

func (op Opcode) String() string {
	switch op {
	case OpConstInt:
		return "const.int"
	case OpConstStr:
		return "const.str"
	case OpBinOp:
		return "binop"
	case OpICmp:
		return "icmp"
	case OpParam:
		return "param"
	case OpAlloca:
		return "alloca"
	case OpLoad:
		return "load"
	case OpStore:
		return "store"
	case OpFrameNew:
		return "frame.new"
	case OpFrameSet:
		return "frame.set"
	case OpFrameGet:
		return "frame.get"
	case OpFrameUp:
		return "frame.up"
	case OpCall:
		return "call"
	case OpJump:
		return "jump"
	case OpBranch:
		return "branch"
	case OpRet:
		return "ret"
	case OpRetVoid:
		return "ret.void"
	default:
		return "?"
	}
}

// OperandKind distinguishes the forms an instruction argument can take.
type OperandKind int

const (
	OperandTemp OperandKind = iota
	OperandConstInt
	OperandConstStr
	OperandSlot  // a named local-slot reference (Alloca/Load/Store target)
	OperandField // a frame field index (FrameSet/FrameGet target)
	OperandLabel // a function's external name, for Call
)

// Operand is a single instruction argument.
type Operand struct {
	Kind  OperandKind
	Temp  int
	Int   int64
	Str   string
	Slot  string
	Field int
	Label string
}

func Temp(id int) Operand           { return Operand{Kind: OperandTemp, Temp: id} }
func ConstInt(v int64) Operand      { return Operand{Kind: OperandConstInt, Int: v} }
func ConstStr(v string) Operand     { return Operand{Kind: OperandConstStr, Str: v} }
func Slot(name string) Operand      { return Operand{Kind: OperandSlot, Slot: name} }
func Field(i int) Operand           { return Operand{Kind: OperandField, Field: i} }
func Label(name string) Operand     { return Operand{Kind: OperandLabel, Label: name} }

func (o Operand) String() string {
	switch o.Kind {
	case OperandTemp:
		return fmt.Sprintf("%%t%d", o.Temp)
	case OperandConstInt:
		return fmt.Sprintf("%d", o.Int)
	case OperandConstStr:
		return fmt.Sprintf("%q", o.Str)
	case OperandSlot:
		return "@" + o.Slot
	case OperandField:
		return fmt.Sprintf("#%d", o.Field)
	case OperandLabel:
		return o.Label
	default:
		return "?"
	}
}

// Insn is a single IR instruction. Dest is the temporary it defines;
// Dest < 0 means the instruction has no result (Store, Ret, jumps).
type Insn struct {
	Dest   int
	Type   types.Type // result type when Dest >= 0; for Alloca the slot's type, for Ret the returned value's type
	Op     Opcode
	SubOp  string // for OpBinOp/OpICmp: the source operator, e.g. "+", "<="
	Args   []Operand
	Callee string // for OpCall: the external name of the function called
}

func (i Insn) String() string {
	var dest string
	if i.Dest >= 0 {
		dest = fmt.Sprintf("%%t%d = ", i.Dest)
	}
	var op string
	if i.SubOp != "" {
		op = i.Op.String() + "." + i.SubOp
	} else if i.Op == OpCall {
		op = i.Op.String() + " " + i.Callee
	} else {
		op = i.Op.String()
	}
	args := ""
	for j, a := range i.Args {
		if j > 0 {
			args += ", "
		}
		args += a.String()
	}
	return fmt.Sprintf("%s%s %s", dest, op, args)
}

// Block is one basic block: a straight-line instruction sequence ended
// by exactly one jump. A block with Cond != nil ends in a conditional
// branch (Succs[0] taken when Cond is non-zero, Succs[1] otherwise); a
// block with exactly one successor and Cond == nil ends in an
// unconditional jump; a block with no successors ends in a return.
type Block struct {
	Label string
	Insns []Insn
	Cond  *Operand
	Succs []*Block
}

// FrameField is one slot of a function's frame record: an escaping
// local variable or parameter, plus the reserved static-link field.
type FrameField struct {
	Name  string
	Type  types.Type // zero value for the static-link field (index 0)
	IsLink bool
}

// Function is one lowered function: its frame layout and its body as a
// sequence of blocks rooted at Entry.
type Function struct {
	Name       string
	ExternName string
	Params     []types.Type
	ResultType types.Type
	HasParentFrame bool
	Frame      []FrameField
	Blocks     []*Block
	Entry      *Block
	IsExternal bool // true for primitives: declared, never given a body
}

// Program is the fully lowered unit: every function, primitives
// included, in ast.Program.Functions order, which is also the order
// Generator lowers the non-primitive bodies in.
type Program struct {
	Functions []*Function
}
