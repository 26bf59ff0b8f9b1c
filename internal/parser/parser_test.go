package parser_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/internal/parser"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog := p.ParseProgram()
	for _, e := range p.Errors() {
		if !e.Warning {
			require.Fail(t, "unexpected parse error", e.Error())
		}
	}
	return prog
}

func TestParseVarDecl_InferredAndAnnotated(t *testing.T) {
	prog := parse(t, "let x = 5\nvar y: Int = uninitialized\n")
	require.Len(t, prog.Decls, 2)

	x := prog.Decls[0].(*ast.VarDecl)
	require.Equal(t, "x", x.Name.Name)
	require.Nil(t, x.Type)
	require.False(t, x.Uninitialized)

	y := prog.Decls[1].(*ast.VarDecl)
	require.Equal(t, "Int", y.Type.Name)
	require.True(t, y.Uninitialized)
}

func TestParseBinaryExpr_PrecedenceClimbing(t *testing.T) {
	prog := parse(t, "let x = 1 + 2 * 3\n")
	decl := prog.Decls[0].(*ast.VarDecl)
	call := decl.Value.(*ast.CallExpr)
	require.Equal(t, "+", call.Callee.String())
	require.Equal(t, "1", call.Args[0].String())
	require.Equal(t, "*(2, 3)", call.Args[1].String())
}

func TestParsePrefixExpr_EncodesAsCall(t *testing.T) {
	prog := parse(t, "let x = -a\n")
	decl := prog.Decls[0].(*ast.VarDecl)
	call := decl.Value.(*ast.CallExpr)
	require.Equal(t, "prefix -", call.Callee.String())
}

func TestParseSubscriptExpr_EncodesAsCall(t *testing.T) {
	prog := parse(t, "let x = arr[0]\n")
	decl := prog.Decls[0].(*ast.VarDecl)
	call := decl.Value.(*ast.CallExpr)
	require.Equal(t, "[]", call.Callee.String())
}

func TestParseGenericCall_DisambiguatesFromComparison(t *testing.T) {
	prog := parse(t, "let x = Box<Int>(5)\n")
	decl := prog.Decls[0].(*ast.VarDecl)
	call := decl.Value.(*ast.CallExpr)
	require.Equal(t, "Box", call.Callee.String())
	require.Len(t, call.GenericArgs, 1)
	require.Equal(t, "Int", call.GenericArgs[0].Name)
}

func TestParseGenericCall_SpaceBeforeLessThanStillOpensGenerics(t *testing.T) {
	// Space before '<' but none after still opens a generic-argument
	// list per spec.md §4.2/§9's "no whitespace on at least one side".
	prog := parse(t, "let x = Box <Int>(5)\n")
	decl := prog.Decls[0].(*ast.VarDecl)
	call := decl.Value.(*ast.CallExpr)
	require.Equal(t, "Box", call.Callee.String())
	require.Len(t, call.GenericArgs, 1)
	require.Equal(t, "Int", call.GenericArgs[0].Name)
}

func TestParseComparison_NotMistakenForGenerics(t *testing.T) {
	prog := parse(t, "let x = a < b\n")
	decl := prog.Decls[0].(*ast.VarDecl)
	call := decl.Value.(*ast.CallExpr)
	require.Equal(t, "<", call.Callee.String())
	require.Len(t, call.Args, 2)
}

func TestParseCallExpr_NamedArgument(t *testing.T) {
	prog := parse(t, "let x = f(a, b: 2)\n")
	decl := prog.Decls[0].(*ast.VarDecl)
	call := decl.Value.(*ast.CallExpr)
	require.Len(t, call.Args, 2)
	require.Equal(t, "", call.Args[0].Name)
	require.Equal(t, "b", call.Args[1].Name)
	require.Equal(t, "2", call.Args[1].Value.String())
	require.Equal(t, "b: 2", call.Args[1].String())
}

func TestParseIntLit_OverflowDeferredToChecker(t *testing.T) {
	prog := parse(t, "let x = 99999999999999999999\n")
	decl := prog.Decls[0].(*ast.VarDecl)
	lit := decl.Value.(*ast.IntLit)
	require.True(t, lit.Overflow)
}

func TestParseIfElseChain(t *testing.T) {
	prog := parse(t, "func f() { if a { return 1 } else if b { return 2 } else { return 3 } }\n")
	fn := prog.Decls[0].(*ast.FuncDecl)
	ifStmt := fn.Body.Stmts[0].(*ast.IfStmt)
	require.NotNil(t, ifStmt.Else)
	elseIf, ok := ifStmt.Else.(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, elseIf.Else)
}

func TestParseForStmt(t *testing.T) {
	prog := parse(t, "func f() { for x in items { break } }\n")
	fn := prog.Decls[0].(*ast.FuncDecl)
	forStmt := fn.Body.Stmts[0].(*ast.ForStmt)
	require.Equal(t, "x", forStmt.Var.Name)
	require.IsType(t, &ast.BreakStmt{}, forStmt.Body.Stmts[0])
}

func TestParseSwitchStmt_RejectsDuplicateDefault(t *testing.T) {
	p := parser.New(lexer.New("func f() { switch x { case 1: { } default: { } default: { } } }\n"))
	p.ParseProgram()
	found := false
	for _, e := range p.Errors() {
		if e.Code == parser.ErrDuplicateDefault {
			found = true
		}
	}
	require.True(t, found)
}

func TestParseClassDecl_WithParentAndInterfaces(t *testing.T) {
	prog := parse(t, "class Dog: Animal, Named {\n  name: String\n  func bark() -> String { return name }\n}\n")
	decl := prog.Decls[0].(*ast.TypeDecl)
	require.Equal(t, "Dog", decl.Name.Name)
	require.Equal(t, "Animal", decl.Parent.Name)
	require.Len(t, decl.Interfaces, 1)
	require.Equal(t, "Named", decl.Interfaces[0].Name)
	require.Len(t, decl.Fields, 1)
	require.Len(t, decl.Methods, 1)
}

func TestParseStructDecl_HasNoParent(t *testing.T) {
	prog := parse(t, "struct Point: Comparable {\n  x: Int\n  y: Int\n}\n")
	decl := prog.Decls[0].(*ast.TypeDecl)
	require.Nil(t, decl.Parent)
	require.Len(t, decl.Interfaces, 1)
}

func TestParseInterfaceDecl(t *testing.T) {
	prog := parse(t, "interface Named {\n  name: String\n  func greet() -> String\n}\n")
	decl := prog.Decls[0].(*ast.InterfaceDecl)
	require.Len(t, decl.Fields, 1)
	require.Len(t, decl.Methods, 1)
}

func TestParseOperatorOverload_Binary(t *testing.T) {
	prog := parse(t, "class Vec {\n  x: Int\n  func +(other: Vec) -> Vec { return this }\n}\n")
	decl := prog.Decls[0].(*ast.TypeDecl)
	require.Len(t, decl.Methods, 1)
	require.True(t, decl.Methods[0].IsOperator)
	require.Equal(t, "+", decl.Methods[0].Name.Name)
}

func TestParseOperatorOverload_PrefixAndSubscript(t *testing.T) {
	prog := parse(t, "class Vec {\n  x: Int\n  func prefix -() -> Vec { return this }\n  func [](i: Int) -> Int { return x }\n}\n")
	decl := prog.Decls[0].(*ast.TypeDecl)
	require.Len(t, decl.Methods, 2)
	require.Equal(t, "prefix -", decl.Methods[0].Name.Name)
	require.Equal(t, "[]", decl.Methods[1].Name.Name)
}

func TestParseGenericFunc(t *testing.T) {
	prog := parse(t, "func identity<T>(x: T) -> T { return x }\n")
	fn := prog.Decls[0].(*ast.FuncDecl)
	require.Len(t, fn.GenericParams, 1)
	require.Equal(t, "T", fn.GenericParams[0].Name)
}

func TestParseDiscardStmt(t *testing.T) {
	prog := parse(t, "func f() { _ = compute() }\n")
	fn := prog.Decls[0].(*ast.FuncDecl)
	require.IsType(t, &ast.DiscardStmt{}, fn.Body.Stmts[0])
}

func TestParseDeferStmt(t *testing.T) {
	prog := parse(t, "func f() { defer cleanup() }\n")
	fn := prog.Decls[0].(*ast.FuncDecl)
	require.IsType(t, &ast.DeferStmt{}, fn.Body.Stmts[0])
}

func TestParseAssignExpr_CompoundOperator(t *testing.T) {
	prog := parse(t, "func f() { x += 1 }\n")
	fn := prog.Decls[0].(*ast.FuncDecl)
	stmt := fn.Body.Stmts[0].(*ast.ExprStmt)
	assign := stmt.X.(*ast.AssignExpr)
	require.Equal(t, "x", assign.Target.String())
}

func TestParseImportDecl(t *testing.T) {
	prog := parse(t, "import \"std/io\"\nfunc main() { }\n")
	require.Len(t, prog.Imports, 1)
	require.Equal(t, "std/io", prog.Imports[0].Path)
}

func TestParseMixedTerminatorStyle_Warns(t *testing.T) {
	p := parser.New(lexer.New("let a = 1\nlet b = 2;\n"))
	p.ParseProgram()
	found := false
	for _, e := range p.Errors() {
		if e.Code == parser.ErrMixedTerminatorStyle {
			found = true
		}
	}
	require.True(t, found)
}

func TestParsePointerAndReferenceTypeSigils(t *testing.T) {
	prog := parse(t, "let x: Int* = null\nvar y: Int& = uninitialized\n")
	xd := prog.Decls[0].(*ast.VarDecl)
	require.True(t, xd.Type.Pointer)
	yd := prog.Decls[1].(*ast.VarDecl)
	require.True(t, yd.Type.Reference)
}

func TestParseArrayType(t *testing.T) {
	prog := parse(t, "var x: []Int = uninitialized\nvar y: [3]Int = uninitialized\n")
	xd := prog.Decls[0].(*ast.VarDecl)
	require.True(t, xd.Type.IsArray)
	require.Nil(t, xd.Type.ArraySize)
	yd := prog.Decls[1].(*ast.VarDecl)
	require.NotNil(t, yd.Type.ArraySize)
	require.Equal(t, 3, *yd.Type.ArraySize)
}
