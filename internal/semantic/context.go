package semantic

import "github.com/cwbudde/nslc/internal/ast"

// Context carries the mutable state shared between a pass's visit
// methods: the scope stack, the enclosing-function stack (for depth and
// static-link bookkeeping), the loop stack (for Break binding), and the
// accumulated non-fatal errors.
type Context struct {
	scopes []*Scope
	funcs  []*ast.FunDecl
	loops  []ast.Node

	Errors []*Error

	// Primitives, once seeded by the Binder, maps every primitive
	// function's external name to its FunDecl, for the IR generator's
	// runtime-library linkage step.
	Primitives map[string]*ast.FunDecl

	// AllFunctions accumulates every FunDecl bound so far, including
	// the implicit top-level main and the seeded primitives, in
	// binding order. The Binder copies this onto Program.Functions
	// once binding completes.
	AllFunctions []*ast.FunDecl
}

// NewContext returns a Context with a single empty global scope.
func NewContext() *Context {
	return &Context{
		scopes:     []*Scope{NewScope(nil)},
		Primitives: make(map[string]*ast.FunDecl),
	}
}

// PushScope opens a new scope nested inside the current one.
func (c *Context) PushScope() {
	c.scopes = append(c.scopes, NewScope(c.CurrentScope()))
}

// PopScope closes the innermost scope.
func (c *Context) PopScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// CurrentScope returns the innermost open scope.
func (c *Context) CurrentScope() *Scope {
	return c.scopes[len(c.scopes)-1]
}

// GlobalScope returns the outermost scope, which holds the seeded
// primitive functions.
func (c *Context) GlobalScope() *Scope {
	return c.scopes[0]
}

// PushFunction records fn as the innermost enclosing function.
func (c *Context) PushFunction(fn *ast.FunDecl) {
	c.funcs = append(c.funcs, fn)
}

// PopFunction removes the innermost enclosing function.
func (c *Context) PopFunction() {
	c.funcs = c.funcs[:len(c.funcs)-1]
}

// CurrentFunction returns the innermost enclosing function, or nil at
// the top level.
func (c *Context) CurrentFunction() *ast.FunDecl {
	if len(c.funcs) == 0 {
		return nil
	}
	return c.funcs[len(c.funcs)-1]
}

// Depth returns the lexical nesting depth of the innermost enclosing
// function, i.e. the depth a declaration or use made right now would be
// assigned. It is always CurrentFunction().Depth, so a local declared
// directly inside a function always carries the same Depth as the
// function itself and as that function's own parameters.
func (c *Context) Depth() int {
	if fn := c.CurrentFunction(); fn != nil {
		return fn.Depth
	}
	return 0
}

// PushLoop records loop as the innermost enclosing while/for loop.
func (c *Context) PushLoop(loop ast.Node) {
	c.loops = append(c.loops, loop)
}

// PopLoop removes the innermost enclosing loop.
func (c *Context) PopLoop() {
	c.loops = c.loops[:len(c.loops)-1]
}

// CurrentLoop returns the innermost enclosing loop, or nil if not
// inside one.
func (c *Context) CurrentLoop() ast.Node {
	if len(c.loops) == 0 {
		return nil
	}
	return c.loops[len(c.loops)-1]
}

// AddError accumulates a non-fatal error.
func (c *Context) AddError(err *Error) {
	c.Errors = append(c.Errors, err)
}

// HasErrors reports whether any non-fatal error has been accumulated.
func (c *Context) HasErrors() bool {
	return len(c.Errors) > 0
}

// Flush returns the accumulated errors joined into a single error (nil
// if none) and resets the accumulator, matching each pass's defined
// safe point for reporting.
func (c *Context) Flush() error {
	err := ErrorList(c.Errors).Join()
	c.Errors = nil
	return err
}
