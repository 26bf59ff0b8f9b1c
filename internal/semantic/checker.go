// Package semantic implements C6 (the symbol table) and C7 (the type
// checker): name resolution, expression typing, overload resolution,
// generic instantiation, and the semantic validation rules of §4.3.
package semantic

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// funcCtx is the "current function" context the checker threads
// explicitly (never a package global) through every statement and
// expression check, per spec.md §5/§9's stack-discipline requirement.
type funcCtx struct {
	decl         *ast.FuncDecl
	returnType   types.Type // nil for void
	receiver     types.Type // nil for free functions
	mutating     bool
	initializing bool // true inside init: field writes are the initial binding, not a mutation
	loopDepth    int
	switchDepth  int
}

// Checker walks a fully parsed module and decorates its AST: every
// expression gets a resolved Type, every Call gets a resolved callee
// declaration, every Var gets a resolved declaration.
type Checker struct {
	Pool    *types.Pool
	Symbols *SymbolTable

	moduleName string
	file       string
	scope      *Scope
	funcStack  []*funcCtx

	// genericArgs is the "current generic arguments" substitution,
	// pushed and popped around every recursive re-check of a generic
	// callee's body (spec.md §4.3, §5, §9).
	genericArgs []map[string]types.Type

	// identAliases is the small substitution map from source identifier
	// to replacement name consulted before lookup (spec.md §4.3
	// "Identifier replacement").
	identAliases map[string]string

	// typeMembers caches the resolved field/method type tables of a
	// TypeDecl for interface-conformance and member-access checks.
	typeMembers map[*ast.TypeDecl]*memberTable

	// varTypes caches a module-scope VarDecl's resolved type (from its
	// annotation, or by checking its initializer the first time it's
	// referenced).
	varTypes map[*ast.VarDecl]types.Type

	// searchEverywhere widens SymbolTable lookups across every module,
	// set while re-checking a generic instantiation whose body may
	// reference names only visible from its declaring file (spec.md
	// §4.3's "everywhere" flag).
	searchEverywhere bool

	errors []*Error
}

// memberTable is the resolved (post-generic-substitution) field and
// method signature set of a class/struct, used for interface
// conformance checks and member lookup.
type memberTable struct {
	fields  map[string]types.Type
	methods map[string]*types.FunctionType
}

// NewChecker creates a Checker over an already-populated symbol table
// (top-level declarations are published during parsing, per C5/C6).
func NewChecker(pool *types.Pool, symbols *SymbolTable) *Checker {
	return &Checker{
		Pool:        pool,
		Symbols:     symbols,
		scope:       NewScope(nil),
		identAliases: make(map[string]string),
		typeMembers: make(map[*ast.TypeDecl]*memberTable),
		varTypes:    make(map[*ast.VarDecl]types.Type),
	}
}

// Errors returns every diagnostic raised so far.
func (c *Checker) Errors() []*Error { return c.errors }

// HasErrors reports whether any non-warning diagnostic was raised.
func (c *Checker) HasErrors() bool {
	for _, e := range c.errors {
		if !e.Warning {
			return true
		}
	}
	return false
}

func (c *Checker) report(err *Error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

func (c *Checker) currentFunc() *funcCtx {
	if len(c.funcStack) == 0 {
		return nil
	}
	return c.funcStack[len(c.funcStack)-1]
}

func (c *Checker) pushFunc(fc *funcCtx) { c.funcStack = append(c.funcStack, fc) }
func (c *Checker) popFunc()             { c.funcStack = c.funcStack[:len(c.funcStack)-1] }

func (c *Checker) pushScope() { c.scope = NewScope(c.scope) }
func (c *Checker) popScope()  { c.scope = c.scope.Outer }

// pushGenericArgs establishes a new generic-substitution frame and
// returns a restore function; callers must defer it so the stack
// unwinds even if the recursive check panics.
func (c *Checker) pushGenericArgs(args map[string]types.Type) func() {
	c.genericArgs = append(c.genericArgs, args)
	return func() { c.genericArgs = c.genericArgs[:len(c.genericArgs)-1] }
}

// substGeneric resolves a bare generic-parameter name against the
// current substitution stack, innermost frame first.
func (c *Checker) substGeneric(name string) (types.Type, bool) {
	for i := len(c.genericArgs) - 1; i >= 0; i-- {
		if t, ok := c.genericArgs[i][name]; ok {
			return t, true
		}
	}
	return nil, false
}

// resolveIdent applies the identifier-replacement substitution map
// before any lookup (spec.md §4.3).
func (c *Checker) resolveIdent(name string) string {
	if replacement, ok := c.identAliases[name]; ok {
		return replacement
	}
	return name
}

// CheckExpr type-checks a single standalone expression against scope
// (an already-populated lexical scope, e.g. one carrying previously
// declared REPL bindings) — the module.CheckExpression entry point
// named in spec.md §6.
func (c *Checker) CheckExpr(moduleName, file string, scope *Scope, e ast.Expr) types.Type {
	c.moduleName = moduleName
	c.file = file
	if scope != nil {
		c.scope = scope
	}
	return c.checkExpr(e)
}

// CheckFile type-checks every top-level declaration of prog, which
// belongs to file within moduleName. Declarations must already be
// published in Symbols (done while parsing).
func (c *Checker) CheckFile(moduleName, file string, prog *ast.Program) {
	c.moduleName = moduleName
	c.file = file
	for _, d := range prog.Decls {
		c.checkTopLevelDecl(d)
	}
}
