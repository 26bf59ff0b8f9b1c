// Package ast defines the Abstract Syntax Tree node types produced by
// the parser and consumed by the type checker.
//
// Prefix, binary and subscript expressions are not distinct node kinds:
// they are built as a Call with a synthesized identifier callee (see
// NewPrefixExpr, NewBinaryExpr, NewSubscriptExpr), so overload
// resolution has exactly one expression kind to resolve against.
package ast
