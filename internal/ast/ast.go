package ast

import (
	"bytes"
	"strings"

	"github.com/ferrite-lang/ferritec/internal/types"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// Node is the base interface every AST node implements.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() token.Position
}

// Expr is any node that produces a value.
type Expr interface {
	Node
	exprNode()
	GetType() types.Type
	SetType(t types.Type)
}

// Stmt is any node that performs an action, including declarations.
type Stmt interface {
	Node
	stmtNode()
}

// Program is the root node: one parsed source file.
type Program struct {
	Imports []*ImportDecl
	Decls   []Stmt
}

func (p *Program) TokenLiteral() string {
	if len(p.Decls) > 0 {
		return p.Decls[0].TokenLiteral()
	}
	return ""
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, imp := range p.Imports {
		out.WriteString(imp.String())
		out.WriteString("\n")
	}
	for _, d := range p.Decls {
		out.WriteString(d.String())
		out.WriteString("\n")
	}
	return out.String()
}

func (p *Program) Pos() token.Position {
	if len(p.Imports) > 0 {
		return p.Imports[0].Pos()
	}
	if len(p.Decls) > 0 {
		return p.Decls[0].Pos()
	}
	return token.Position{Line: 1, Column: 1}
}

// exprBase factors out the type-annotation bookkeeping shared by every
// expression node, mirroring the teacher's per-node GetType/SetType pair.
type exprBase struct {
	typ types.Type
}

func (e *exprBase) GetType() types.Type   { return e.typ }
func (e *exprBase) SetType(t types.Type)  { e.typ = t }

// Ident is a bare name: a variable, function, type, or the synthesized
// callee of an operator-as-call expression.
type Ident struct {
	exprBase
	Token token.Token
	Name  string

	// Resolved is filled in by the type checker: the *semantic.Symbol (or
	// *semantic.LocalVar) this identifier names. Declared as interface{}
	// to avoid an import cycle between ast and semantic.
	Resolved interface{}
}

func (i *Ident) exprNode()             {}
func (i *Ident) TokenLiteral() string  { return i.Token.Literal }
func (i *Ident) String() string        { return i.Name }
func (i *Ident) Pos() token.Position   { return i.Token.Pos }

// IntLit is an integer literal.
type IntLit struct {
	exprBase
	Token token.Token
	Value int64

	// Overflow is set by the parser when the literal's text doesn't fit
	// in a 64-bit signed integer. spec.md §4.1/§7 classify this as a
	// type error ("overflow during parsing is a later type-check
	// concern, not a lex error"), so the parser defers the diagnostic
	// rather than aborting the file; checkIntLit reports it.
	Overflow bool
}

func (l *IntLit) exprNode()            {}
func (l *IntLit) TokenLiteral() string { return l.Token.Literal }
func (l *IntLit) String() string       { return l.Token.Literal }
func (l *IntLit) Pos() token.Position  { return l.Token.Pos }

// FloatLit is a floating-point literal.
type FloatLit struct {
	exprBase
	Token token.Token
	Value float64
}

func (l *FloatLit) exprNode()            {}
func (l *FloatLit) TokenLiteral() string { return l.Token.Literal }
func (l *FloatLit) String() string       { return l.Token.Literal }
func (l *FloatLit) Pos() token.Position  { return l.Token.Pos }

// StringLit is a double-quoted string literal.
type StringLit struct {
	exprBase
	Token token.Token
	Value string
}

func (l *StringLit) exprNode()            {}
func (l *StringLit) TokenLiteral() string { return l.Token.Literal }
func (l *StringLit) String() string       { return "\"" + l.Value + "\"" }
func (l *StringLit) Pos() token.Position  { return l.Token.Pos }

// CharLit is a single-quoted character literal.
type CharLit struct {
	exprBase
	Token token.Token
	Value rune
}

func (l *CharLit) exprNode()            {}
func (l *CharLit) TokenLiteral() string { return l.Token.Literal }
func (l *CharLit) String() string       { return "'" + string(l.Value) + "'" }
func (l *CharLit) Pos() token.Position  { return l.Token.Pos }

// BoolLit is `true` or `false`.
type BoolLit struct {
	exprBase
	Token token.Token
	Value bool
}

func (l *BoolLit) exprNode()            {}
func (l *BoolLit) TokenLiteral() string { return l.Token.Literal }
func (l *BoolLit) String() string       { return l.Token.Literal }
func (l *BoolLit) Pos() token.Position  { return l.Token.Pos }

// NullLit is the `null` literal.
type NullLit struct {
	exprBase
	Token token.Token
}

func (l *NullLit) exprNode()            {}
func (l *NullLit) TokenLiteral() string { return l.Token.Literal }
func (l *NullLit) String() string       { return "null" }
func (l *NullLit) Pos() token.Position  { return l.Token.Pos }

// ThisExpr is the `this` keyword inside a method body.
type ThisExpr struct {
	exprBase
	Token token.Token
}

func (t *ThisExpr) exprNode()            {}
func (t *ThisExpr) TokenLiteral() string { return t.Token.Literal }
func (t *ThisExpr) String() string       { return "this" }
func (t *ThisExpr) Pos() token.Position  { return t.Token.Pos }

// GroupedExpr is a parenthesized expression, kept so re-serialization
// can round-trip the original parenthesization.
type GroupedExpr struct {
	exprBase
	Token token.Token
	Inner Expr
}

func (g *GroupedExpr) exprNode()            {}
func (g *GroupedExpr) TokenLiteral() string { return g.Token.Literal }
func (g *GroupedExpr) String() string       { return "(" + g.Inner.String() + ")" }
func (g *GroupedExpr) Pos() token.Position  { return g.Token.Pos }

// Arg is one actual argument of a call: `(ident ':')? expr`, per
// spec.md §4.3 step 5's "every named argument's name matches the
// corresponding parameter name". Name is empty for a plain positional
// argument; NamePos is its source location (unset when Name is empty).
type Arg struct {
	Name    string
	NamePos token.Position
	Value   Expr
}

// Pos reports the argument's leading position: the name's, if present,
// else its value's.
func (a *Arg) Pos() token.Position {
	if a.Name != "" {
		return a.NamePos
	}
	return a.Value.Pos()
}

func (a *Arg) String() string {
	if a.Name == "" {
		return a.Value.String()
	}
	return a.Name + ": " + a.Value.String()
}

func syntheticArg(v Expr) *Arg { return &Arg{Value: v} }

// CallExpr is a function/method call, and is also the representation
// shared by prefix, binary and subscript expressions (see
// NewPrefixExpr, NewBinaryExpr, NewSubscriptExpr below).
type CallExpr struct {
	exprBase
	Token       token.Token
	Callee      Expr
	GenericArgs []*TypeExpr
	Args        []*Arg

	// Resolved is filled in by the type checker: the *semantic.Symbol of
	// the specific overload this call binds to. Declared as interface{}
	// to avoid an import cycle between ast and semantic.
	Resolved interface{}
}

func (c *CallExpr) exprNode()            {}
func (c *CallExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CallExpr) Pos() token.Position  { return c.Token.Pos }
func (c *CallExpr) String() string {
	var out bytes.Buffer
	out.WriteString(c.Callee.String())
	if len(c.GenericArgs) > 0 {
		parts := make([]string, len(c.GenericArgs))
		for i, a := range c.GenericArgs {
			parts[i] = a.String()
		}
		out.WriteString("<" + strings.Join(parts, ", ") + ">")
	}
	out.WriteString("(")
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	return out.String()
}

func syntheticIdent(name string, tok token.Token) *Ident {
	return &Ident{Token: tok, Name: name}
}

// NewPrefixExpr builds the Call encoding of a prefix operator expression
// (e.g. `-x`, `!flag`): callee is the synthetic identifier "prefix <op>".
func NewPrefixExpr(op string, operand Expr, tok token.Token) *CallExpr {
	return &CallExpr{Token: tok, Callee: syntheticIdent("prefix "+op, tok), Args: []*Arg{syntheticArg(operand)}}
}

// NewBinaryExpr builds the Call encoding of a binary operator expression:
// callee is the synthetic identifier named after the bare operator
// spelling (e.g. "+", "<").
func NewBinaryExpr(op string, left, right Expr, tok token.Token) *CallExpr {
	return &CallExpr{Token: tok, Callee: syntheticIdent(op, tok), Args: []*Arg{syntheticArg(left), syntheticArg(right)}}
}

// NewSubscriptExpr builds the Call encoding of `recv[index]`: callee is
// the synthetic identifier "[]".
func NewSubscriptExpr(recv, index Expr, tok token.Token) *CallExpr {
	return &CallExpr{Token: tok, Callee: syntheticIdent("[]", tok), Args: []*Arg{syntheticArg(recv), syntheticArg(index)}}
}

// ArrayLit is `[e0, e1, ...]`. Its element type and size are inferred
// from the first element during type checking.
type ArrayLit struct {
	exprBase
	Token token.Token
	Elems []Expr
}

func (a *ArrayLit) exprNode()            {}
func (a *ArrayLit) TokenLiteral() string { return a.Token.Literal }
func (a *ArrayLit) Pos() token.Position  { return a.Token.Pos }
func (a *ArrayLit) String() string {
	parts := make([]string, len(a.Elems))
	for i, e := range a.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// UnwrapExpr is the postfix `e!` operator: converts a nullable pointer
// T* to a non-null reference T&, with a runtime null check left to the
// code generator.
type UnwrapExpr struct {
	exprBase
	Token token.Token
	Value Expr
}

func (u *UnwrapExpr) exprNode()            {}
func (u *UnwrapExpr) TokenLiteral() string { return u.Token.Literal }
func (u *UnwrapExpr) Pos() token.Position  { return u.Value.Pos() }
func (u *UnwrapExpr) String() string       { return u.Value.String() + "!" }

// MemberExpr accesses a field or method by name on recv (e.g. `p.x`).
type MemberExpr struct {
	exprBase
	Token token.Token
	Recv  Expr
	Name  string
}

func (m *MemberExpr) exprNode()            {}
func (m *MemberExpr) TokenLiteral() string { return m.Token.Literal }
func (m *MemberExpr) Pos() token.Position  { return m.Recv.Pos() }
func (m *MemberExpr) String() string       { return m.Recv.String() + "." + m.Name }

// AssignExpr is `target op= value` for any of the assignment operators
// (`=`, `+=`, `-=`, ...).
type AssignExpr struct {
	exprBase
	Token  token.Token
	Target Expr
	Op     token.Type
	Value  Expr
}

func (a *AssignExpr) exprNode()            {}
func (a *AssignExpr) TokenLiteral() string { return a.Token.Literal }
func (a *AssignExpr) Pos() token.Position  { return a.Token.Pos }
func (a *AssignExpr) String() string {
	return a.Target.String() + " " + a.Op.String() + " " + a.Value.String()
}

// CastExpr is `cast<Type>(value)`.
type CastExpr struct {
	exprBase
	Token  token.Token
	Target *TypeExpr
	Value  Expr
}

func (c *CastExpr) exprNode()            {}
func (c *CastExpr) TokenLiteral() string { return c.Token.Literal }
func (c *CastExpr) Pos() token.Position  { return c.Token.Pos }
func (c *CastExpr) String() string {
	return "cast<" + c.Target.String() + ">(" + c.Value.String() + ")"
}

// RangeExpr is `low..high` (exclusive) or `low...high` (inclusive).
type RangeExpr struct {
	exprBase
	Token     token.Token
	Low       Expr
	High      Expr
	Inclusive bool
}

func (r *RangeExpr) exprNode()            {}
func (r *RangeExpr) TokenLiteral() string { return r.Token.Literal }
func (r *RangeExpr) Pos() token.Position  { return r.Token.Pos }
func (r *RangeExpr) String() string {
	sep := ".."
	if r.Inclusive {
		sep = "..."
	}
	return r.Low.String() + sep + r.High.String()
}

// TupleExpr is `(a, b, c)` used as a value rather than a grouped
// expression (len(Elems) != 1 or a trailing comma disambiguates it at
// parse time).
type TupleExpr struct {
	exprBase
	Token token.Token
	Elems []Expr
}

func (t *TupleExpr) exprNode()            {}
func (t *TupleExpr) TokenLiteral() string { return t.Token.Literal }
func (t *TupleExpr) Pos() token.Position  { return t.Token.Pos }
func (t *TupleExpr) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// ExprStmt wraps an expression used in statement position.
type ExprStmt struct {
	Token token.Token
	X     Expr
}

func (s *ExprStmt) stmtNode()           {}
func (s *ExprStmt) TokenLiteral() string { return s.Token.Literal }
func (s *ExprStmt) Pos() token.Position  { return s.Token.Pos }
func (s *ExprStmt) String() string       { return s.X.String() }

// DiscardStmt is `_ = expr`, evaluating expr and discarding the result.
type DiscardStmt struct {
	Token token.Token
	Value Expr
}

func (s *DiscardStmt) stmtNode()           {}
func (s *DiscardStmt) TokenLiteral() string { return s.Token.Literal }
func (s *DiscardStmt) Pos() token.Position  { return s.Token.Pos }
func (s *DiscardStmt) String() string       { return "_ = " + s.Value.String() }

// BlockStmt is `{ ... }`.
type BlockStmt struct {
	Token token.Token
	Stmts []Stmt
}

func (b *BlockStmt) stmtNode()           {}
func (b *BlockStmt) TokenLiteral() string { return b.Token.Literal }
func (b *BlockStmt) Pos() token.Position  { return b.Token.Pos }
func (b *BlockStmt) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, s := range b.Stmts {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(s.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}
