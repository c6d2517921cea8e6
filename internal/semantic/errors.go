package semantic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cwbudde/nslc/internal/token"
	"github.com/cwbudde/nslc/internal/types"
)

// ErrorKind identifies one of the error taxonomy members a pass can
// report.
type ErrorKind string

const (
	ErrRedeclaration         ErrorKind = "redeclaration"
	ErrUnboundReference      ErrorKind = "unbound_reference"
	ErrWrongKindOfName       ErrorKind = "wrong_kind_of_name"
	ErrArityMismatch         ErrorKind = "arity_mismatch"
	ErrTypeMismatch          ErrorKind = "type_mismatch"
	ErrReadOnlyViolation     ErrorKind = "read_only_violation"
	ErrBreakOutsideLoop      ErrorKind = "break_outside_loop"
	ErrParameterShadowsFunc  ErrorKind = "parameter_shadows_function"
	ErrUnknownDeclaredType   ErrorKind = "unknown_declared_type"
	ErrVoidInitializer       ErrorKind = "void_initializer"
)

// Error is a single structured diagnostic produced by a pass. It
// mirrors the taxonomy in the analysis design: a stable Kind plus a
// human-readable Message built by the matching constructor.
type Error struct {
	Kind    ErrorKind
	Message string
	Pos     token.Position
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func NewRedeclaration(pos token.Position, name string) *Error {
	return &Error{Kind: ErrRedeclaration, Pos: pos,
		Message: fmt.Sprintf("%q is already declared in this scope", name)}
}

func NewUnboundReference(pos token.Position, name string) *Error {
	return &Error{Kind: ErrUnboundReference, Pos: pos,
		Message: fmt.Sprintf("unbound identifier %q", name)}
}

func NewWrongKindOfName(pos token.Position, name, wanted, got string) *Error {
	return &Error{Kind: ErrWrongKindOfName, Pos: pos,
		Message: fmt.Sprintf("%q is a %s, expected a %s", name, got, wanted)}
}

func NewArityMismatch(pos token.Position, name string, want, got int) *Error {
	return &Error{Kind: ErrArityMismatch, Pos: pos,
		Message: fmt.Sprintf("%q expects %d argument(s), got %d", name, want, got)}
}

func NewTypeMismatch(pos token.Position, context string, want, got types.Type) *Error {
	return &Error{Kind: ErrTypeMismatch, Pos: pos,
		Message: fmt.Sprintf("%s: expected %s, got %s", context, want, got)}
}

func NewReadOnlyViolation(pos token.Position, name string) *Error {
	return &Error{Kind: ErrReadOnlyViolation, Pos: pos,
		Message: fmt.Sprintf("cannot assign to read-only variable %q", name)}
}

func NewBreakOutsideLoop(pos token.Position) *Error {
	return &Error{Kind: ErrBreakOutsideLoop, Pos: pos,
		Message: "break outside of a loop"}
}

func NewParameterShadowsFunction(pos token.Position, name string) *Error {
	return &Error{Kind: ErrParameterShadowsFunc, Pos: pos,
		Message: fmt.Sprintf("parameter %q shadows the enclosing function of the same name", name)}
}

func NewUnknownDeclaredType(pos token.Position, name string) *Error {
	return &Error{Kind: ErrUnknownDeclaredType, Pos: pos,
		Message: fmt.Sprintf("unknown type name %q", name)}
}

func NewVoidInitializer(pos token.Position, name string) *Error {
	return &Error{Kind: ErrVoidInitializer, Pos: pos,
		Message: fmt.Sprintf("variable %q cannot be initialized with a void expression", name)}
}

// ErrorList joins the non-fatal errors accumulated by a pass into a
// single error value, matching the accumulate-then-report idiom used
// across this pipeline's passes.
type ErrorList []*Error

func (l ErrorList) Error() string {
	parts := make([]string, len(l))
	for i, e := range l {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "\n")
}

// Join folds l into a single error via errors.Join, or returns nil if
// l is empty.
func (l ErrorList) Join() error {
	if len(l) == 0 {
		return nil
	}
	errs := make([]error, len(l))
	for i, e := range l {
		errs[i] = e
	}
	return errors.Join(errs...)
}
