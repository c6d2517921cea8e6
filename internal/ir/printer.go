package ir

import (
	"fmt"
	"io"
	"strings"
)

// Print writes prog as a readable pseudo-assembly text, one function
// per paragraph and one instruction per line. When verbose is true,
// each function's frame layout is printed as a header comment.
func Print(w io.Writer, prog *Program, verbose bool) {
	for i, fn := range prog.Functions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printFunction(w, fn, verbose)
	}
}

func printFunction(w io.Writer, fn *Function, verbose bool) {
	kind := "function"
	if fn.IsExternal {
		kind = "extern"
	}
	var params []string
	for _, p := range fn.Params {
		params = append(params, p.String())
	}
	fmt.Fprintf(w, "%s %s(%s) -> %s\n", kind, fn.ExternName, strings.Join(params, ", "), fn.ResultType)

	if verbose && len(fn.Frame) > 0 {
		fmt.Fprintf(w, "  ; frame:")
		for i, f := range fn.Frame {
			if f.IsLink {
				fmt.Fprintf(w, " [%d]=$link", i)
			} else {
				fmt.Fprintf(w, " [%d]=%s:%s", i, f.Name, f.Type)
			}
		}
		fmt.Fprintln(w)
	}

	if fn.IsExternal {
		return
	}

	for _, b := range fn.Blocks {
		fmt.Fprintf(w, "%s:\n", b.Label)
		for _, insn := range b.Insns {
			fmt.Fprintf(w, "  %s\n", insn)
		}
		printTerminator(w, b)
	}
}

func printTerminator(w io.Writer, b *Block) {
	switch {
	case b.Cond != nil && len(b.Succs) == 2:
		fmt.Fprintf(w, "  branch %s, %s, %s\n", b.Cond, b.Succs[0].Label, b.Succs[1].Label)
	case len(b.Succs) == 1:
		fmt.Fprintf(w, "  jump %s\n", b.Succs[0].Label)
	}
}
