package ast_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/pkg/token"
	"github.com/stretchr/testify/require"
)

func ident(name string) *ast.Ident {
	return &ast.Ident{Token: token.New(token.IDENT, name, token.Position{Line: 1, Column: 1}), Name: name}
}

func TestNewBinaryExpr_EncodesAsCall(t *testing.T) {
	tok := token.New(token.PLUS, "+", token.Position{Line: 1, Column: 3})
	expr := ast.NewBinaryExpr("+", ident("a"), ident("b"), tok)
	require.Equal(t, "+", expr.Callee.String())
	require.Len(t, expr.Args, 2)
	require.Equal(t, "+(a, b)", expr.String())
}

func TestNewPrefixExpr_SynthesizesCalleeName(t *testing.T) {
	tok := token.New(token.MINUS, "-", token.Position{Line: 1, Column: 1})
	expr := ast.NewPrefixExpr("-", ident("x"), tok)
	require.Equal(t, "prefix -", expr.Callee.String())
}

func TestNewSubscriptExpr_SynthesizesCalleeName(t *testing.T) {
	tok := token.New(token.LBRACKET, "[", token.Position{Line: 1, Column: 2})
	expr := ast.NewSubscriptExpr(ident("arr"), ident("i"), tok)
	require.Equal(t, "[]", expr.Callee.String())
	require.Equal(t, "[](arr, i)", expr.String())
}

func TestProgram_StringIncludesImports(t *testing.T) {
	prog := &ast.Program{
		Imports: []*ast.ImportDecl{{Token: token.New(token.IMPORT, "import", token.Position{Line: 1, Column: 1}), Path: "std"}},
	}
	require.Contains(t, prog.String(), "import \"std\"")
}
