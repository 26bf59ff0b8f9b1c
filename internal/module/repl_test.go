package module

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/semantic"
	"github.com/ferrite-lang/ferritec/internal/types"
)

func TestParseExpression(t *testing.T) {
	expr, diags := ParseExpression("1 + 2 * 3")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if expr == nil {
		t.Fatal("ParseExpression returned a nil expression")
	}
	if _, ok := expr.(*ast.CallExpr); !ok {
		t.Errorf("expected a Binary expression (modeled as a Call), got %T", expr)
	}
}

func TestParseExpression_SyntaxError(t *testing.T) {
	_, diags := ParseExpression("1 +")
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic for an incomplete expression")
	}
	if diags[0].File != "<eval>" {
		t.Errorf("diagnostic File = %q, want %q", diags[0].File, "<eval>")
	}
}

func TestCheckExpression(t *testing.T) {
	pool := types.NewPool()
	symbols := semantic.NewSymbolTable()
	scope := semantic.NewScope(nil)

	expr, diags := ParseExpression("1 + 2")
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}

	typ, diags := CheckExpression(pool, symbols, expr, scope)
	if len(diags) != 0 {
		t.Fatalf("unexpected check diagnostics: %v", diags)
	}
	if typ == nil || types.Name(typ) != types.IntName {
		t.Errorf("CheckExpression type = %v, want %s", typ, types.IntName)
	}
}

func TestCheckExpression_UndefinedVariable(t *testing.T) {
	pool := types.NewPool()
	symbols := semantic.NewSymbolTable()
	scope := semantic.NewScope(nil)

	expr, _ := ParseExpression("undefinedThing")
	_, diags := CheckExpression(pool, symbols, expr, scope)
	if len(diags) == 0 {
		t.Fatal("expected a diagnostic referencing an undefined identifier")
	}
}

func TestCheckExpression_SharedScopeAcrossCalls(t *testing.T) {
	pool := types.NewPool()
	symbols := semantic.NewSymbolTable()
	scope := semantic.NewScope(nil)
	scope.Declare(&semantic.LocalVar{Name: "x", Type: pool.Int(), Mutable: true})

	expr, diags := ParseExpression("x + 1")
	if len(diags) != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", diags)
	}

	typ, diags := CheckExpression(pool, symbols, expr, scope)
	if len(diags) != 0 {
		t.Fatalf("unexpected check diagnostics: %v", diags)
	}
	if types.Name(typ) != types.IntName {
		t.Errorf("type = %v, want %s", typ, types.IntName)
	}
}
