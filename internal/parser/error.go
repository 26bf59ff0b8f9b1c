package parser

import (
	"fmt"

	"github.com/ferrite-lang/ferritec/pkg/token"
)

// ParserError is a structured parse error with position information.
type ParserError struct {
	Message string
	Code    string
	Pos     token.Position
	Warning bool
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Message, e.Pos.String())
}

// NewParserError creates a new ParserError.
func NewParserError(pos token.Position, message, code string) *ParserError {
	return &ParserError{Message: message, Pos: pos, Code: code}
}

// Error code constants for programmatic error handling.
const (
	ErrUnexpectedToken    = "E_UNEXPECTED_TOKEN"
	ErrMissingTerminator  = "E_MISSING_TERMINATOR"
	ErrMissingRParen      = "E_MISSING_RPAREN"
	ErrMissingRBracket    = "E_MISSING_RBRACKET"
	ErrMissingRBrace      = "E_MISSING_RBRACE"
	ErrMissingLBrace      = "E_MISSING_LBRACE"
	ErrInvalidExpression  = "E_INVALID_EXPRESSION"
	ErrNoPrefixParse      = "E_NO_PREFIX_PARSE"
	ErrExpectedIdent      = "E_EXPECTED_IDENT"
	ErrExpectedType       = "E_EXPECTED_TYPE"
	ErrInvalidSyntax      = "E_INVALID_SYNTAX"
	ErrMissingColon       = "E_MISSING_COLON"
	ErrMissingAssign      = "E_MISSING_ASSIGN"
	ErrDuplicateDefault   = "E_DUPLICATE_DEFAULT"
	ErrMixedTerminatorStyle = "W_MIXED_TERMINATOR_STYLE"
)
