package module

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/internal/parser"
	"github.com/ferrite-lang/ferritec/internal/semantic"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// ParseExpression parses a single standalone expression, the first of
// the two REPL entry points spec.md §6 names — a would-be interactive
// shell parses one line at a time against its accumulated scope rather
// than a whole file.
func ParseExpression(src string) (ast.Expr, []*source.Diagnostic) {
	lx := lexer.New(src)
	p := parser.New(lx)
	expr := p.ParseExpression()

	var diags []*source.Diagnostic
	for _, e := range p.Errors() {
		if e.Warning {
			diags = append(diags, source.Warnf("<eval>", e.Pos, "%s", e.Message))
		} else {
			diags = append(diags, source.Errorf("<eval>", e.Pos, "%s", e.Message))
		}
	}
	return expr, diags
}

// CheckExpression type-checks expr against scope, the second REPL
// entry point: a caller threads the same *semantic.Scope across
// repeated calls so bindings from one REPL line are visible in the
// next.
func CheckExpression(pool *types.Pool, symbols *semantic.SymbolTable, expr ast.Expr, scope *semantic.Scope) (types.Type, []*source.Diagnostic) {
	c := semantic.NewChecker(pool, symbols)
	t := c.CheckExpr("<eval>", "<eval>", scope, expr)

	var diags []*source.Diagnostic
	for _, e := range c.Errors() {
		if e.Warning {
			diags = append(diags, source.Warnf("<eval>", e.Pos, "%s", e.Message))
		} else {
			diags = append(diags, source.Errorf("<eval>", e.Pos, "%s", e.Message))
		}
	}
	return t, diags
}
