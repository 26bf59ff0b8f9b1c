package semantic

import (
	"fmt"

	"github.com/ferrite-lang/ferritec/internal/types"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// ErrorKind classifies a semantic error for programmatic handling.
type ErrorKind string

const (
	ErrTypeMismatch        ErrorKind = "type_mismatch"
	ErrUndefinedVariable   ErrorKind = "undefined_variable"
	ErrUndefinedFunction   ErrorKind = "undefined_function"
	ErrUndefinedType       ErrorKind = "undefined_type"
	ErrRedeclaration       ErrorKind = "redeclaration"
	ErrInvalidOperation    ErrorKind = "invalid_operation"
	ErrMutability          ErrorKind = "mutability_violation"
	ErrInvalidAssignment   ErrorKind = "invalid_assignment"
	ErrInvalidReturn       ErrorKind = "invalid_return"
	ErrInvalidBreak        ErrorKind = "invalid_break"
	ErrMissingReturn       ErrorKind = "missing_return"
	ErrArgumentCount       ErrorKind = "argument_count"
	ErrNoOverload          ErrorKind = "no_matching_overload"
	ErrAmbiguousOverload   ErrorKind = "ambiguous_overload"
	ErrInterface           ErrorKind = "interface_conformance"
	ErrGenericConstraint   ErrorKind = "generic_constraint"
	ErrInvalidArgumentName ErrorKind = "invalid_argument_name"
)

// Error is a structured semantic-analysis error. Warning distinguishes a
// recoverable warning (statement-terminator inconsistency, etc.) from a
// hard error; warnings never abort the enclosing declaration's check.
type Error struct {
	Kind     ErrorKind
	Message  string
	Pos      token.Position
	Expected types.Type
	Got      types.Type
	Warning  bool
}

func (e *Error) Error() string { return fmt.Sprintf("%s at %s", e.Message, e.Pos.String()) }

func newTypeMismatch(pos token.Position, expected, got types.Type) *Error {
	return &Error{
		Kind:     ErrTypeMismatch,
		Message:  fmt.Sprintf("cannot use value of type %s where %s is expected", got.String(), expected.String()),
		Pos:      pos,
		Expected: expected,
		Got:      got,
	}
}

func newUndefinedVariable(pos token.Position, name string) *Error {
	return &Error{Kind: ErrUndefinedVariable, Message: fmt.Sprintf("undefined name %q", name), Pos: pos}
}

func newUndefinedType(pos token.Position, name string) *Error {
	return &Error{Kind: ErrUndefinedType, Message: fmt.Sprintf("undefined type %q", name), Pos: pos}
}

func newRedeclaration(pos token.Position, name string) *Error {
	return &Error{Kind: ErrRedeclaration, Message: fmt.Sprintf("%q is already declared in this scope", name), Pos: pos}
}

func newInvalidOperation(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInvalidOperation, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func newMutabilityError(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrMutability, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func newArgumentCountError(pos token.Position, name string, expected, got int) *Error {
	return &Error{
		Kind:    ErrArgumentCount,
		Message: fmt.Sprintf("%q expects %d argument(s), got %d", name, expected, got),
		Pos:     pos,
	}
}

func newInvalidArgumentName(pos token.Position, got, expected string) *Error {
	return &Error{
		Kind:    ErrInvalidArgumentName,
		Message: fmt.Sprintf("invalid argument name %q, expected %q", got, expected),
		Pos:     pos,
	}
}

func newNoOverload(pos token.Position, name string) *Error {
	return &Error{Kind: ErrNoOverload, Message: fmt.Sprintf("no overload of %q matches these arguments", name), Pos: pos}
}

func newAmbiguousOverload(pos token.Position, name string) *Error {
	return &Error{Kind: ErrAmbiguousOverload, Message: fmt.Sprintf("call to %q is ambiguous between multiple overloads", name), Pos: pos}
}

func newMissingReturn(pos token.Position, name string) *Error {
	return &Error{Kind: ErrMissingReturn, Message: fmt.Sprintf("function %q must return a value on every path", name), Pos: pos}
}

func newInvalidBreak(pos token.Position) *Error {
	return &Error{Kind: ErrInvalidBreak, Message: "break outside of a loop or switch", Pos: pos}
}

func newInterfaceError(pos token.Position, typeName, ifaceName string) *Error {
	return &Error{
		Kind:    ErrInterface,
		Message: fmt.Sprintf("%q does not implement interface %q", typeName, ifaceName),
		Pos:     pos,
	}
}

func newGenericConstraintError(pos token.Position, argName, constraintName string) *Error {
	return &Error{
		Kind:    ErrGenericConstraint,
		Message: fmt.Sprintf("type argument %q does not satisfy constraint %q", argName, constraintName),
		Pos:     pos,
	}
}

func newUndefinedFunction(pos token.Position, name string) *Error {
	return &Error{Kind: ErrUndefinedFunction, Message: fmt.Sprintf("undefined function %q", name), Pos: pos}
}

func newInvalidAssignment(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInvalidAssignment, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func newInvalidReturn(pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInvalidReturn, Message: fmt.Sprintf(format, args...), Pos: pos}
}

func newWarning(kind ErrorKind, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Pos: pos, Warning: true}
}
