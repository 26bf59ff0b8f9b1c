package ast

import (
	"strings"

	"github.com/ferrite-lang/ferritec/pkg/token"
)

// Param is a function or method parameter.
type Param struct {
	Token token.Token
	Name  *Ident
	Type  *TypeExpr
}

func (p *Param) TokenLiteral() string { return p.Token.Literal }
func (p *Param) Pos() token.Position  { return p.Name.Pos() }
func (p *Param) String() string       { return p.Name.String() + ": " + p.Type.String() }

// ImportDecl is `import "name"`. An import path ending in .h resolves
// against caller-supplied extern declarations rather than a source file.
type ImportDecl struct {
	Token token.Token
	Path  string
}

func (i *ImportDecl) stmtNode()            {}
func (i *ImportDecl) TokenLiteral() string { return i.Token.Literal }
func (i *ImportDecl) Pos() token.Position  { return i.Token.Pos }
func (i *ImportDecl) String() string       { return "import \"" + i.Path + "\"" }

// VarDecl declares one variable via `let`, `var`, or `const`.
type VarDecl struct {
	Token         token.Token
	Keyword       token.Type // LET, VAR, or CONST
	Name          *Ident
	Type          *TypeExpr // nil when inferred from Value
	Value         Expr      // nil when Uninitialized
	Uninitialized bool
	Mutable       bool
}

func (v *VarDecl) stmtNode()            {}
func (v *VarDecl) TokenLiteral() string { return v.Token.Literal }
func (v *VarDecl) Pos() token.Position  { return v.Token.Pos }
func (v *VarDecl) String() string {
	var parts []string
	parts = append(parts, v.Keyword.String(), v.Name.String())
	if v.Type != nil {
		parts = append(parts, ":", v.Type.String())
	}
	if v.Uninitialized {
		parts = append(parts, "=", "uninitialized")
	} else if v.Value != nil {
		parts = append(parts, "=", v.Value.String())
	}
	return strings.Join(parts, " ")
}
