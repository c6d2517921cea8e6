package semantic

import "github.com/cwbudde/nslc/internal/ast"

// Scope binds names visible at one lexical level to their declarations.
// Scopes chain to their Parent for lookups that miss locally, following
// the same parent-pointer design the rest of this corpus's analysis
// contexts use.
type Scope struct {
	Decls  map[string]ast.Decl
	Parent *Scope
}

// NewScope returns an empty scope nested inside parent (nil for the
// outermost scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{Decls: make(map[string]ast.Decl), Parent: parent}
}

// Define binds name to decl in this scope, returning false if name was
// already bound *in this same scope* (shadowing an outer scope is
// always legal; redeclaring within one scope is not, per the spec's
// Redeclaration error).
func (s *Scope) Define(name string, decl ast.Decl) bool {
	if _, exists := s.Decls[name]; exists {
		return false
	}
	s.Decls[name] = decl
	return true
}

// Lookup searches this scope and its ancestors for name, returning the
// declaration and whether it was found. It does not count function
// boundaries; depth bookkeeping lives in Context.
func (s *Scope) Lookup(name string) (ast.Decl, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if d, ok := sc.Decls[name]; ok {
			return d, true
		}
	}
	return nil, false
}
