package ast

import (
	"bytes"
	"strings"

	"github.com/ferrite-lang/ferritec/pkg/token"
)

// FuncDecl is a free function, method, init, or deinit declaration.
// Methods carry a non-nil Receiver; init/deinit carry IsInit/IsDeinit.
type FuncDecl struct {
	Token         token.Token
	Name          *Ident
	GenericParams []*GenericParam
	Params        []*Param
	ReturnType    *TypeExpr // nil for void
	Body          *BlockStmt
	Receiver      *TypeExpr // non-nil for methods
	IsMutating    bool
	IsInit        bool
	IsDeinit      bool
	IsExternal    bool
	ExternalName  string
	IsOperator    bool // Name.Name spells an operator, e.g. "+" or "[]"
}

func (f *FuncDecl) stmtNode()            {}
func (f *FuncDecl) TokenLiteral() string { return f.Token.Literal }
func (f *FuncDecl) Pos() token.Position  { return f.Token.Pos }
func (f *FuncDecl) String() string {
	var out bytes.Buffer
	if f.IsMutating {
		out.WriteString("mutating ")
	}
	out.WriteString("func ")
	out.WriteString(f.Name.String())
	if len(f.GenericParams) > 0 {
		parts := make([]string, len(f.GenericParams))
		for i, g := range f.GenericParams {
			parts[i] = g.String()
		}
		out.WriteString("<" + strings.Join(parts, ", ") + ">")
	}
	out.WriteString("(")
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(")")
	if f.ReturnType != nil {
		out.WriteString(" -> ")
		out.WriteString(f.ReturnType.String())
	}
	if f.Body != nil {
		out.WriteString(" ")
		out.WriteString(f.Body.String())
	}
	return out.String()
}

// ReturnStmt is `return` or `return expr`.
type ReturnStmt struct {
	Token token.Token
	Value Expr
}

func (r *ReturnStmt) stmtNode()            {}
func (r *ReturnStmt) TokenLiteral() string { return r.Token.Literal }
func (r *ReturnStmt) Pos() token.Position  { return r.Token.Pos }
func (r *ReturnStmt) String() string {
	if r.Value == nil {
		return "return"
	}
	return "return " + r.Value.String()
}

// DeferStmt is `defer expr` (expr is evaluated at scope exit).
type DeferStmt struct {
	Token token.Token
	Call  Expr
}

func (d *DeferStmt) stmtNode()            {}
func (d *DeferStmt) TokenLiteral() string { return d.Token.Literal }
func (d *DeferStmt) Pos() token.Position  { return d.Token.Pos }
func (d *DeferStmt) String() string       { return "defer " + d.Call.String() }
