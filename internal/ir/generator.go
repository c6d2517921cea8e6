package ir

import (
	"fmt"

	"github.com/cwbudde/nslc/internal/ast"
	"github.com/cwbudde/nslc/internal/types"
)

// Generator lowers a fully bound, escape-analyzed, type-checked
// ast.Program into a Program of control-flow-graph functions. It is
// run once, after every semantic pass has completed without fatal
// errors.
//
// Functions are emitted in the order their bodies are discovered
// (Program.Functions, which the Binder built in declaration order),
// mirroring the pending-function-body queue discipline of a one-pass
// lowering: every function's frame layout must be known before any
// call site or nested function body can be generated against it, so
// Generator builds every Function's frame layout first and only then
// lowers bodies.
type Generator struct{}

func NewGenerator() *Generator { return &Generator{} }

// Generate lowers program into a Program of IR functions.
func (g *Generator) Generate(program *ast.Program) (*Program, error) {
	out := &Program{}

	byDecl := make(map[*ast.FunDecl]*Function, len(program.Functions))
	for _, fn := range program.Functions {
		irfn := &Function{
			Name:           fn.Name.String(),
			ExternName:     fn.ExternalName,
			ResultType:     fn.ResultType,
			HasParentFrame: fn.Parent != nil,
			IsExternal:     fn.IsPrimitive,
		}
		if fn.IsPrimitive {
			irfn.ExternName = fn.ExternalName
		}
		for _, p := range fn.ParamDecls {
			irfn.Params = append(irfn.Params, p.Type)
		}
		irfn.Frame = buildFrame(fn)
		byDecl[fn] = irfn
		out.Functions = append(out.Functions, irfn)
	}

	primitivesByName := make(map[string]*ast.FunDecl)
	for _, fn := range program.Functions {
		if fn.IsPrimitive {
			primitivesByName[fn.Name.String()] = fn
		}
	}

	for _, fn := range program.Functions {
		if fn.IsPrimitive {
			continue
		}
		fg := newFuncGen(fn, byDecl[fn], byDecl, primitivesByName, program.Functions)
		if err := fg.generate(); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// buildFrame lays out a function's frame record: field 0 is always the
// static-link pointer to the parent's frame, followed by every
// escaping parameter and local in declaration order. Primitives never
// carry a frame.
func buildFrame(fn *ast.FunDecl) []FrameField {
	if fn.IsPrimitive {
		return nil
	}
	frame := []FrameField{{Name: "$link", IsLink: true}}
	for _, vd := range fn.Escaping {
		frame = append(frame, FrameField{Name: vd.Name.String(), Type: vd.Type})
	}
	return frame
}

type funcGen struct {
	fn           *ast.FunDecl
	out          *Function
	byDecl       map[*ast.FunDecl]*Function
	primitives   map[string]*ast.FunDecl
	allFunctions []*ast.FunDecl

	blocks []*Block
	cur    *Block
	tempN  int
	slotN  int

	localSlot       map[*ast.VarDecl]string
	frameIndexLocal map[*ast.VarDecl]int
	selfFrame       Operand
	loopEnd         map[ast.Node]*Block
}

func newFuncGen(fn *ast.FunDecl, out *Function, byDecl map[*ast.FunDecl]*Function, primitives map[string]*ast.FunDecl, allFunctions []*ast.FunDecl) *funcGen {
	frameIndex := make(map[*ast.VarDecl]int, len(fn.Escaping))
	for i, vd := range fn.Escaping {
		frameIndex[vd] = i + 1 // field 0 is the static link
	}
	return &funcGen{
		fn:              fn,
		out:             out,
		byDecl:          byDecl,
		primitives:      primitives,
		allFunctions:    allFunctions,
		localSlot:       make(map[*ast.VarDecl]string),
		frameIndexLocal: frameIndex,
		loopEnd:         make(map[ast.Node]*Block),
	}
}

func (fg *funcGen) newTemp() int {
	id := fg.tempN
	fg.tempN++
	return id
}

func (fg *funcGen) newSlot(base string) string {
	fg.slotN++
	return fmt.Sprintf("%s.%d", base, fg.slotN)
}

func (fg *funcGen) newBlock(label string) *Block {
	name := fg.fn.ExternalName
	if name == "" {
		name = fg.fn.Name.String()
	}
	b := &Block{Label: fmt.Sprintf("%s.%s", label, name)}
	fg.blocks = append(fg.blocks, b)
	return b
}

func (fg *funcGen) emit(i Insn) Operand {
	fg.cur.Insns = append(fg.cur.Insns, i)
	if i.Dest >= 0 {
		return Temp(i.Dest)
	}
	return Operand{}
}

func (fg *funcGen) jumpTo(target *Block) {
	fg.cur.Succs = []*Block{target}
	fg.cur.Cond = nil
}

func (fg *funcGen) branch(cond Operand, then, els *Block) {
	c := cond
	fg.cur.Cond = &c
	fg.cur.Succs = []*Block{then, els}
}

// generate lowers fn's body into blocks and finalizes fg.out.
func (fg *funcGen) generate() error {
	entry := fg.newBlock("entry")
	fg.cur = entry
	fg.out.Entry = entry

	frameDest := fg.newTemp()
	fg.emit(Insn{Dest: frameDest, Op: OpFrameNew})
	fg.selfFrame = Temp(frameDest)

	if fg.fn.Parent != nil {
		// the hidden leading parameter is the parent's frame pointer;
		// store it into this frame's static-link field.
		link := fg.emit(Insn{Dest: fg.newTemp(), Op: OpParam})
		fg.emit(Insn{Dest: -1, Op: OpFrameSet, Args: []Operand{fg.selfFrame, Field(0), link}})
	}

	for _, pd := range fg.fn.ParamDecls {
		arg := fg.emit(Insn{Dest: fg.newTemp(), Type: pd.Type, Op: OpParam})
		if pd.Escapes {
			idx := fg.frameIndexLocal[pd]
			fg.emit(Insn{Dest: -1, Op: OpFrameSet, Args: []Operand{fg.selfFrame, Field(idx), arg}})
		} else {
			slot := fg.newSlot("local." + pd.Name.String())
			fg.localSlot[pd] = slot
			fg.emit(Insn{Dest: -1, Op: OpAlloca, Type: pd.Type, Args: []Operand{Slot(slot)}})
			fg.emit(Insn{Dest: -1, Op: OpStore, Args: []Operand{Slot(slot), arg}})
		}
	}

	val, hasVal := fg.evalExpr(fg.fn.Body)
	if fg.fn.ResultType == types.Void || !hasVal {
		fg.emit(Insn{Dest: -1, Op: OpRetVoid})
	} else {
		fg.emit(Insn{Dest: -1, Op: OpRet, Type: fg.fn.ResultType, Args: []Operand{val}})
	}
	fg.cur.Succs = nil

	fg.out.Blocks = fg.blocks
	return nil
}

