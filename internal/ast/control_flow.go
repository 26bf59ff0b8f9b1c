package ast

import (
	"bytes"
	"strings"

	"github.com/ferrite-lang/ferritec/pkg/token"
)

// IfStmt is `if cond { ... } else ...`. Else may be a BlockStmt or
// another IfStmt (else-if chaining).
type IfStmt struct {
	Token token.Token
	Cond  Expr
	Then  *BlockStmt
	Else  Stmt
}

func (s *IfStmt) stmtNode()            {}
func (s *IfStmt) TokenLiteral() string { return s.Token.Literal }
func (s *IfStmt) Pos() token.Position  { return s.Token.Pos }
func (s *IfStmt) String() string {
	out := "if " + s.Cond.String() + " " + s.Then.String()
	if s.Else != nil {
		out += " else " + s.Else.String()
	}
	return out
}

// WhileStmt is `while cond { ... }`.
type WhileStmt struct {
	Token token.Token
	Cond  Expr
	Body  *BlockStmt
}

func (s *WhileStmt) stmtNode()            {}
func (s *WhileStmt) TokenLiteral() string { return s.Token.Literal }
func (s *WhileStmt) Pos() token.Position  { return s.Token.Pos }
func (s *WhileStmt) String() string       { return "while " + s.Cond.String() + " " + s.Body.String() }

// ForStmt is `for name in iterable { ... }`.
type ForStmt struct {
	Token    token.Token
	Var      *Ident
	Iterable Expr
	Body     *BlockStmt
}

func (s *ForStmt) stmtNode()            {}
func (s *ForStmt) TokenLiteral() string { return s.Token.Literal }
func (s *ForStmt) Pos() token.Position  { return s.Token.Pos }
func (s *ForStmt) String() string {
	return "for " + s.Var.String() + " in " + s.Iterable.String() + " " + s.Body.String()
}

// CaseClause is one `case values: { ... }` or `default: { ... }` arm of
// a switch statement.
type CaseClause struct {
	Token   token.Token
	Values  []Expr // empty when Default
	Default bool
	Body    *BlockStmt
}

func (c *CaseClause) String() string {
	var out bytes.Buffer
	if c.Default {
		out.WriteString("default")
	} else {
		parts := make([]string, len(c.Values))
		for i, v := range c.Values {
			parts[i] = v.String()
		}
		out.WriteString("case " + strings.Join(parts, ", "))
	}
	out.WriteString(": " + c.Body.String())
	return out.String()
}

// SwitchStmt is `switch subject { case ...: ... default: ... }`. At
// most one Cases entry may have Default set; the parser rejects a
// second default clause.
type SwitchStmt struct {
	Token   token.Token
	Subject Expr
	Cases   []*CaseClause
}

func (s *SwitchStmt) stmtNode()            {}
func (s *SwitchStmt) TokenLiteral() string { return s.Token.Literal }
func (s *SwitchStmt) Pos() token.Position  { return s.Token.Pos }
func (s *SwitchStmt) String() string {
	var out bytes.Buffer
	out.WriteString("switch " + s.Subject.String() + " {\n")
	for _, c := range s.Cases {
		out.WriteString("  " + c.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// IncDecStmt is `target++` or `target--`.
type IncDecStmt struct {
	Token   token.Token
	Target  Expr
	Op      token.Type // INCREMENT or DECREMENT
}

func (s *IncDecStmt) stmtNode()            {}
func (s *IncDecStmt) TokenLiteral() string { return s.Token.Literal }
func (s *IncDecStmt) Pos() token.Position  { return s.Token.Pos }
func (s *IncDecStmt) String() string       { return s.Target.String() + s.Op.String() }

// BreakStmt exits the innermost enclosing loop or switch.
type BreakStmt struct {
	Token token.Token
}

func (s *BreakStmt) stmtNode()            {}
func (s *BreakStmt) TokenLiteral() string { return s.Token.Literal }
func (s *BreakStmt) Pos() token.Position  { return s.Token.Pos }
func (s *BreakStmt) String() string       { return "break" }
