package ast

import (
	"strings"

	"github.com/ferrite-lang/ferritec/pkg/token"
)

// TypeExpr is the parsed, unresolved spelling of a type: a name, its
// generic arguments, and any pointer/reference/array/mutability
// decoration. The checker resolves a TypeExpr into a types.Type.
type TypeExpr struct {
	Token     token.Token
	Name      string
	Args      []*TypeExpr // generic arguments: Box<T>
	Pointer   bool        // T* — nullable pointer
	Reference bool        // T& — non-null reference
	ArraySize *int        // non-nil for [N]T; nil ArraySize with IsArray means []T
	IsArray   bool
	Mutable   bool // `mutable T`
}

func (t *TypeExpr) TokenLiteral() string { return t.Token.Literal }
func (t *TypeExpr) Pos() token.Position  { return t.Token.Pos }
func (t *TypeExpr) String() string {
	s := t.Name
	if len(t.Args) > 0 {
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = a.String()
		}
		s += "<" + strings.Join(parts, ", ") + ">"
	}
	if t.IsArray {
		size := ""
		if t.ArraySize != nil {
			size = itoa(*t.ArraySize)
		}
		s = "[" + size + "]" + s
	}
	if t.Pointer {
		s += "*"
	}
	if t.Reference {
		s += "&"
	}
	if t.Mutable {
		s = "mutable " + s
	}
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// GenericParam is a declared generic type parameter, optionally
// constrained to a single interface.
type GenericParam struct {
	Token      token.Token
	Name       string
	Constraint *TypeExpr
}

func (g *GenericParam) String() string {
	if g.Constraint != nil {
		return g.Name + ": " + g.Constraint.String()
	}
	return g.Name
}
