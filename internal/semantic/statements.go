package semantic

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// checkStmt type-checks one statement in the current scope/function
// context.
func (c *Checker) checkStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.VarDecl:
		c.checkLocalVarDecl(v)
	case *ast.ReturnStmt:
		c.checkReturnStmt(v)
	case *ast.IncDecStmt:
		c.checkIncDecStmt(v)
	case *ast.ExprStmt:
		c.checkExpr(v.X)
	case *ast.DiscardStmt:
		c.checkExpr(v.Value)
	case *ast.DeferStmt:
		c.checkDeferStmt(v)
	case *ast.IfStmt:
		c.checkIfStmt(v)
	case *ast.WhileStmt:
		c.checkWhileStmt(v)
	case *ast.ForStmt:
		c.checkForStmt(v)
	case *ast.SwitchStmt:
		c.checkSwitchStmt(v)
	case *ast.BreakStmt:
		c.checkBreakStmt(v)
	case *ast.BlockStmt:
		c.checkBlock(v)
	default:
		c.report(newInvalidOperation(s.Pos(), "unsupported statement %T", s))
	}
}

func (c *Checker) checkBlock(b *ast.BlockStmt) {
	c.pushScope()
	defer c.popScope()
	for _, s := range b.Stmts {
		c.checkStmt(s)
	}
}

func (c *Checker) checkLocalVarDecl(v *ast.VarDecl) {
	var declared types.Type
	if v.Type != nil {
		declared = c.resolveTypeExpr(v.Type)
	}
	var valueType types.Type
	if !v.Uninitialized && v.Value != nil {
		valueType = c.checkExpr(v.Value)
	}

	result := declared
	switch {
	case declared != nil && valueType != nil:
		c.checkConvertible(v.Value, valueType, declared)
	case declared == nil:
		result = valueType
	}
	if result == nil {
		return
	}
	mutable := v.Keyword == token.VAR
	result = c.Pool.SetMutable(result, mutable)
	if !c.scope.Declare(&LocalVar{Name: v.Name.Name, Type: result, Mutable: mutable, Decl: v}) {
		c.report(newRedeclaration(v.Pos(), v.Name.Name))
	}
}

func (c *Checker) checkReturnStmt(r *ast.ReturnStmt) {
	fc := c.currentFunc()
	if fc == nil {
		c.report(newInvalidReturn(r.Pos(), "return outside of a function body"))
		return
	}
	switch {
	case fc.returnType == nil && r.Value != nil:
		c.report(newInvalidReturn(r.Pos(), "function has no return type but return has a value"))
	case fc.returnType == nil:
		// ok, bare return from a void function
	case r.Value == nil:
		c.report(newInvalidReturn(r.Pos(), "function must return a value of type %s", fc.returnType.String()))
	default:
		if t := c.checkExpr(r.Value); t != nil {
			c.checkConvertible(r.Value, t, fc.returnType)
		}
	}
}

func (c *Checker) checkIncDecStmt(s *ast.IncDecStmt) {
	if !isLValue(s.Target) {
		c.report(newInvalidAssignment(s.Pos(), "%s is not an lvalue", s.Op.String()))
		return
	}
	t := c.checkExpr(s.Target)
	if t == nil {
		return
	}
	if !t.Mutable() {
		c.report(newMutabilityError(s.Pos(), "cannot %s an immutable value", s.Op.String()))
		return
	}
	if !types.IsNumeric(t) {
		c.report(newInvalidOperation(s.Pos(), "%s requires a numeric operand, got %s", s.Op.String(), t.String()))
	}
}

func (c *Checker) checkDeferStmt(d *ast.DeferStmt) {
	if c.currentFunc() == nil {
		c.report(newInvalidOperation(d.Pos(), "defer outside of a function body"))
		return
	}
	if _, ok := d.Call.(*ast.CallExpr); !ok {
		c.report(newInvalidOperation(d.Pos(), "defer requires a call expression"))
		return
	}
	c.checkExpr(d.Call)
}

func (c *Checker) checkCondition(e ast.Expr) {
	t := c.checkExpr(e)
	if t != nil && !types.IsBool(t) {
		c.report(newTypeMismatch(e.Pos(), c.Pool.Bool(), t))
	}
}

func (c *Checker) checkIfStmt(s *ast.IfStmt) {
	c.checkCondition(s.Cond)
	c.checkBlock(s.Then)
	if s.Else != nil {
		c.checkStmt(s.Else)
	}
}

func (c *Checker) checkWhileStmt(s *ast.WhileStmt) {
	c.checkCondition(s.Cond)
	fc := c.currentFunc()
	if fc != nil {
		fc.loopDepth++
		defer func() { fc.loopDepth-- }()
	}
	c.checkBlock(s.Body)
}

func (c *Checker) checkForStmt(s *ast.ForStmt) {
	iterT := c.checkExpr(s.Iterable)
	c.pushScope()
	defer c.popScope()
	if iterT != nil {
		if iterT.Kind() != types.Range {
			c.report(newInvalidOperation(s.Iterable.Pos(), "for-loop iterable must be a range, got %s", iterT.String()))
		} else {
			c.scope.Declare(&LocalVar{Name: s.Var.Name, Type: types.ElementType(iterT), Mutable: false, Decl: s})
		}
	}
	fc := c.currentFunc()
	if fc != nil {
		fc.loopDepth++
		defer func() { fc.loopDepth-- }()
	}
	for _, st := range s.Body.Stmts {
		c.checkStmt(st)
	}
}

func (c *Checker) checkSwitchStmt(s *ast.SwitchStmt) {
	subjectT := c.checkExpr(s.Subject)
	fc := c.currentFunc()
	if fc != nil {
		fc.switchDepth++
		defer func() { fc.switchDepth-- }()
	}
	for _, cc := range s.Cases {
		for _, v := range cc.Values {
			if vt := c.checkExpr(v); vt != nil && subjectT != nil {
				c.checkConvertible(v, vt, subjectT)
			}
		}
		c.checkBlock(cc.Body)
	}
}

func (c *Checker) checkBreakStmt(s *ast.BreakStmt) {
	fc := c.currentFunc()
	if fc == nil || (fc.loopDepth == 0 && fc.switchDepth == 0) {
		c.report(newInvalidBreak(s.Pos()))
	}
}

// checkFuncBody type-checks fn's parameters and body with receiver bound
// as `this`'s type (nil for a free function).
func (c *Checker) checkFuncBody(fn *ast.FuncDecl, receiver types.Type) {
	if fn == nil || fn.Body == nil {
		return
	}
	fc := &funcCtx{decl: fn, receiver: receiver, mutating: fn.IsMutating || fn.IsInit || fn.IsDeinit, initializing: fn.IsInit}
	if fn.ReturnType != nil {
		fc.returnType = c.resolveTypeExpr(fn.ReturnType)
	}
	c.pushFunc(fc)
	c.pushScope()
	for _, p := range fn.Params {
		c.scope.Declare(&LocalVar{Name: p.Name.Name, Type: c.resolveTypeExpr(p.Type), Mutable: false, Decl: p})
	}
	for _, st := range fn.Body.Stmts {
		c.checkStmt(st)
	}
	if fc.returnType != nil && !stmtsAlwaysReturn(fn.Body.Stmts) {
		c.report(newMissingReturn(fn.Pos(), fn.Name.Name))
	}
	c.popScope()
	c.popFunc()
}

// stmtsAlwaysReturn conservatively reports whether every control-flow
// path through stmts ends in a return.
func stmtsAlwaysReturn(stmts []ast.Stmt) bool {
	for _, s := range stmts {
		if stmtAlwaysReturns(s) {
			return true
		}
	}
	return false
}

func stmtAlwaysReturns(s ast.Stmt) bool {
	switch v := s.(type) {
	case *ast.ReturnStmt:
		return true
	case *ast.BlockStmt:
		return stmtsAlwaysReturn(v.Stmts)
	case *ast.IfStmt:
		if v.Else == nil {
			return false
		}
		return stmtAlwaysReturns(v.Then) && stmtAlwaysReturns(v.Else)
	case *ast.SwitchStmt:
		hasDefault := false
		for _, cc := range v.Cases {
			if cc.Default {
				hasDefault = true
			}
			if !stmtsAlwaysReturn(cc.Body.Stmts) {
				return false
			}
		}
		return hasDefault
	default:
		return false
	}
}
