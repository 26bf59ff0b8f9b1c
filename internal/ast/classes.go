package ast

import (
	"bytes"
	"strings"

	"github.com/ferrite-lang/ferritec/pkg/token"
)

// FieldDecl is a class/struct field.
type FieldDecl struct {
	Token   token.Token
	Name    *Ident
	Type    *TypeExpr
	Mutable bool
}

func (f *FieldDecl) stmtNode()            {}
func (f *FieldDecl) TokenLiteral() string { return f.Name.TokenLiteral() }
func (f *FieldDecl) Pos() token.Position  { return f.Name.Pos() }
func (f *FieldDecl) String() string {
	s := f.Name.String() + ": " + f.Type.String()
	if f.Mutable {
		s = "mutable " + s
	}
	return s
}

// TypeDecl declares a class, struct, or interface. Class and struct
// share this node (IsStruct distinguishes them) since the grammar
// production is the same; InterfaceDecl is kept separate because it has
// no fields-with-initializers, init/deinit, or inheritance.
type TypeDecl struct {
	Token         token.Token
	Name          *Ident
	GenericParams []*GenericParam
	IsStruct      bool
	Parent        *TypeExpr
	Interfaces    []*TypeExpr
	Fields        []*FieldDecl
	Methods       []*FuncDecl
	Init          *FuncDecl
	Deinit        *FuncDecl
}

func (c *TypeDecl) stmtNode()            {}
func (c *TypeDecl) TokenLiteral() string { return c.Token.Literal }
func (c *TypeDecl) Pos() token.Position  { return c.Token.Pos }
func (c *TypeDecl) String() string {
	var out bytes.Buffer
	kind := "class"
	if c.IsStruct {
		kind = "struct"
	}
	out.WriteString(kind + " " + c.Name.String())
	if len(c.GenericParams) > 0 {
		parts := make([]string, len(c.GenericParams))
		for i, g := range c.GenericParams {
			parts[i] = g.String()
		}
		out.WriteString("<" + strings.Join(parts, ", ") + ">")
	}
	var bases []string
	if c.Parent != nil {
		bases = append(bases, c.Parent.String())
	}
	for _, iface := range c.Interfaces {
		bases = append(bases, iface.String())
	}
	if len(bases) > 0 {
		out.WriteString(": " + strings.Join(bases, ", "))
	}
	out.WriteString(" {\n")
	for _, f := range c.Fields {
		out.WriteString("  " + f.String() + "\n")
	}
	if c.Init != nil {
		out.WriteString("  " + strings.ReplaceAll(c.Init.String(), "\n", "\n  ") + "\n")
	}
	if c.Deinit != nil {
		out.WriteString("  " + strings.ReplaceAll(c.Deinit.String(), "\n", "\n  ") + "\n")
	}
	for _, m := range c.Methods {
		out.WriteString("  " + strings.ReplaceAll(m.String(), "\n", "\n  ") + "\n")
	}
	out.WriteString("}")
	return out.String()
}

// NewExpr is `Type(args...)` object/struct construction.
type NewExpr struct {
	exprBase
	Token token.Token
	Type  *TypeExpr
	Args  []*Arg
}

func (n *NewExpr) exprNode()            {}
func (n *NewExpr) TokenLiteral() string { return n.Token.Literal }
func (n *NewExpr) Pos() token.Position  { return n.Token.Pos }
func (n *NewExpr) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Type.String() + "(" + strings.Join(parts, ", ") + ")"
}
