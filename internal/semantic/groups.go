package semantic

import "github.com/cwbudde/nslc/internal/ast"

// FunctionGroups partitions decls into maximal runs of consecutive
// FunDecls. Two function declarations are mutually visible to each
// other (and so may call each other recursively) exactly when they
// fall in the same run; a VarDecl breaks a run. The Binder uses it to
// open forward-visible scopes. The Type Checker does not use it: it
// resolves the signatures of every function in the program before
// checking any body, which covers every group at once.
func FunctionGroups(decls []ast.Decl) [][]*ast.FunDecl {
	var groups [][]*ast.FunDecl
	var current []*ast.FunDecl
	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}
	for _, d := range decls {
		if fn, ok := d.(*ast.FunDecl); ok {
			current = append(current, fn)
			continue
		}
		flush()
	}
	flush()
	for _, g := range groups {
		for _, fn := range g {
			fn.Group = g
		}
	}
	return groups
}
