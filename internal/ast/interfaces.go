package ast

import (
	"bytes"
	"strings"

	"github.com/ferrite-lang/ferritec/pkg/token"
)

// MethodSig is a method signature declared inside an interface body —
// no receiver, no body.
type MethodSig struct {
	Token      token.Token
	Name       *Ident
	Params     []*Param
	ReturnType *TypeExpr
}

func (m *MethodSig) String() string {
	var out bytes.Buffer
	out.WriteString("func ")
	out.WriteString(m.Name.String())
	out.WriteString("(")
	parts := make([]string, len(m.Params))
	for i, p := range m.Params {
		parts[i] = p.String()
	}
	out.WriteString(strings.Join(parts, ", "))
	out.WriteString(")")
	if m.ReturnType != nil {
		out.WriteString(" -> " + m.ReturnType.String())
	}
	return out.String()
}

// InterfaceDecl declares a structural interface: a set of field and
// method signatures any conforming type must provide.
type InterfaceDecl struct {
	Token   token.Token
	Name    *Ident
	Fields  []*FieldDecl
	Methods []*MethodSig
}

func (i *InterfaceDecl) stmtNode()            {}
func (i *InterfaceDecl) TokenLiteral() string { return i.Token.Literal }
func (i *InterfaceDecl) Pos() token.Position  { return i.Token.Pos }
func (i *InterfaceDecl) String() string {
	var out bytes.Buffer
	out.WriteString("interface " + i.Name.String() + " {\n")
	for _, f := range i.Fields {
		out.WriteString("  " + f.String() + "\n")
	}
	for _, m := range i.Methods {
		out.WriteString("  " + m.String() + "\n")
	}
	out.WriteString("}")
	return out.String()
}
