package semantic

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

var logicalOps = map[string]bool{"&&": true, "||": true}
var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, ">": true, "<=": true, ">=": true}
var bitwiseOps = map[string]bool{"&": true, "|": true, "^": true, "<<": true, ">>": true}
var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true}

// checkExpr computes e's type per §4.3's expression-typing table,
// decorates e with the result via SetType, and returns it. A nil result
// means a diagnostic was already raised; callers must treat it as opaque
// (not assignable to anything) rather than raise a second error.
func (c *Checker) checkExpr(e ast.Expr) types.Type {
	t := c.typeOfExpr(e)
	if t != nil {
		e.SetType(t)
	}
	return t
}

func (c *Checker) typeOfExpr(e ast.Expr) types.Type {
	switch v := e.(type) {
	case *ast.Ident:
		return c.checkIdent(v)
	case *ast.IntLit:
		return c.checkIntLit(v)
	case *ast.FloatLit:
		return c.Pool.Float64()
	case *ast.BoolLit:
		return c.Pool.Bool()
	case *ast.StringLit:
		return c.Pool.StrT()
	case *ast.CharLit:
		return c.Pool.Char()
	case *ast.NullLit:
		return c.Pool.Null()
	case *ast.ThisExpr:
		return c.checkThis(v)
	case *ast.GroupedExpr:
		return c.checkExpr(v.Inner)
	case *ast.TupleExpr:
		elems := make([]types.Type, len(v.Elems))
		for i, el := range v.Elems {
			elems[i] = c.checkExpr(el)
		}
		return c.Pool.TupleOf(elems, false)
	case *ast.ArrayLit:
		return c.checkArrayLit(v)
	case *ast.RangeExpr:
		return c.checkRangeExpr(v)
	case *ast.CastExpr:
		return c.checkCastExpr(v)
	case *ast.MemberExpr:
		return c.checkMemberExpr(v)
	case *ast.UnwrapExpr:
		return c.checkUnwrapExpr(v)
	case *ast.AssignExpr:
		return c.checkAssignExpr(v)
	case *ast.CallExpr:
		return c.checkCallExpr(v)
	case *ast.NewExpr:
		return c.checkNewExpr(v)
	default:
		c.report(newInvalidOperation(e.Pos(), "unsupported expression %T", e))
		return nil
	}
}

// checkIdent resolves a bare identifier against, in order: the lexical
// scope chain, the current receiver's fields (an implicit `this.`), and
// the module symbol table.
func (c *Checker) checkIdent(id *ast.Ident) types.Type {
	name := c.resolveIdent(id.Name)

	if lv, ok := c.scope.Lookup(name); ok {
		id.Resolved = lv
		return lv.Type
	}

	if fc := c.currentFunc(); fc != nil && fc.receiver != nil {
		if td, ok := c.lookupTypeDecl(types.Name(fc.receiver)); ok {
			mt := c.memberTableFor(td)
			if ft, ok := mt.fields[name]; ok {
				id.Resolved = td
				switch {
				case fc.initializing:
					// Inside init, a field write is its initial binding,
					// not a mutation, regardless of its own declared
					// mutability (mirrors a `let` local's one-time
					// initializer).
					return c.Pool.SetMutable(ft, true)
				case !fc.mutating:
					return c.Pool.SetMutable(ft, false)
				default:
					return ft
				}
			}
		}
	}

	sym, ok := c.Symbols.FindDecl(c.file, name)
	if !ok {
		c.report(newUndefinedVariable(id.Pos(), name))
		return nil
	}
	id.Resolved = sym
	switch d := sym.Decl.(type) {
	case *ast.VarDecl:
		return c.varDeclType(d)
	default:
		c.report(newUndefinedVariable(id.Pos(), name))
		return nil
	}
}

// varDeclType resolves and caches a top-level (module-scope) VarDecl's
// type, either from its annotation or by checking its initializer.
func (c *Checker) varDeclType(d *ast.VarDecl) types.Type {
	if t, ok := c.varTypes[d]; ok {
		return t
	}
	var t types.Type
	switch {
	case d.Type != nil:
		t = c.resolveTypeExpr(d.Type)
	case d.Value != nil:
		t = c.checkExpr(d.Value)
	default:
		t = c.Pool.Void()
	}
	if d.Keyword != token.VAR && t != nil {
		t = c.Pool.SetMutable(t, false)
	}
	c.varTypes[d] = t
	return t
}

func (c *Checker) checkThis(t *ast.ThisExpr) types.Type {
	fc := c.currentFunc()
	if fc == nil || fc.receiver == nil {
		c.report(newInvalidOperation(t.Pos(), "'this' used outside of a method body"))
		return nil
	}
	return c.Pool.SetMutable(fc.receiver, fc.mutating)
}

func (c *Checker) checkIntLit(l *ast.IntLit) types.Type {
	if l.Overflow {
		c.report(newInvalidOperation(l.Pos(), "integer literal %q is out of range for a 64-bit signed integer", l.Token.Literal))
		return nil
	}
	if fitsInt32(l.Value) {
		return c.Pool.Int()
	}
	return c.Pool.Int64()
}

func (c *Checker) checkArrayLit(a *ast.ArrayLit) types.Type {
	if len(a.Elems) == 0 {
		c.report(newInvalidOperation(a.Pos(), "cannot infer element type of an empty array literal"))
		return nil
	}
	elemType := c.checkExpr(a.Elems[0])
	for _, el := range a.Elems[1:] {
		t := c.checkExpr(el)
		if elemType != nil && t != nil && !types.Equals(t, elemType) {
			c.report(newTypeMismatch(el.Pos(), elemType, t))
		}
	}
	if elemType == nil {
		return nil
	}
	return c.Pool.ArrayOf(elemType, len(a.Elems), false)
}

func (c *Checker) checkRangeExpr(r *ast.RangeExpr) types.Type {
	lowT := c.checkExpr(r.Low)
	highT := c.checkExpr(r.High)
	if lowT == nil || highT == nil {
		return nil
	}
	if !types.IsOrdinal(lowT) {
		c.report(newInvalidOperation(r.Pos(), "range endpoints must be ordinal, got %s", lowT.String()))
		return nil
	}
	if !c.checkConvertible(r.High, highT, lowT) {
		return nil
	}
	return c.Pool.RangeOf(lowT, false)
}

func (c *Checker) checkCastExpr(ce *ast.CastExpr) types.Type {
	from := c.checkExpr(ce.Value)
	to := c.resolveTypeExpr(ce.Target)
	if from == nil || to == nil {
		return nil
	}
	if !c.checkCast(ce, from, to) {
		c.report(newInvalidOperation(ce.Pos(), "invalid cast from %s to %s", from.String(), to.String()))
		return nil
	}
	return to
}

// checkMemberExpr types `recv.name`, handling synthetic array/string
// members and rejecting access through a possibly-null pointer.
func (c *Checker) checkMemberExpr(m *ast.MemberExpr) types.Type {
	recvType := c.checkExpr(m.Recv)
	if recvType == nil {
		return nil
	}
	if err := c.checkMemberAccessBase(m.Pos(), recvType); err != nil {
		c.report(err)
		return nil
	}
	t := c.memberType(m.Pos(), recvType, m.Name)
	if t == nil {
		return nil
	}
	// `this.field` inside init: the write is the field's initial
	// binding, not a mutation, regardless of its own declared
	// mutability (see the analogous case in checkIdent).
	if _, isThis := m.Recv.(*ast.ThisExpr); isThis {
		if fc := c.currentFunc(); fc != nil && fc.initializing {
			return c.Pool.SetMutable(t, true)
		}
	}
	return t
}

// checkMemberAccessBase forbids a member access rooted at a nullable
// pointer (spec.md's scenario 6); T& and value receivers are fine.
func (c *Checker) checkMemberAccessBase(pos token.Position, recvType types.Type) *Error {
	if types.IsNullablePointer(recvType) {
		return newInvalidOperation(pos, "cannot call member function through pointer '%s', pointer may be null", recvType.String())
	}
	return nil
}

// memberType resolves a field or the synthetic array/string members
// `data`/`count` on recvType. Method references (not calls) are not
// addressable as values in this language, so a name that only matches a
// method is an error here; method *calls* are handled in checkCallExpr.
func (c *Checker) memberType(pos token.Position, recvType types.Type, name string) types.Type {
	if types.IsReference(recvType) {
		recvType = c.Pool.SetMutable(types.Pointee(recvType), recvType.Mutable())
	}
	if types.IsArrayType(recvType) || types.IsString(recvType) {
		switch name {
		case "count":
			return c.Pool.Int()
		case "data":
			return c.Pool.Ptr(c.Pool.Char(), false, false)
		}
	}
	typeName := types.Name(recvType)
	if typeName == "" {
		c.report(newInvalidOperation(pos, "type %s has no member %q", recvType.String(), name))
		return nil
	}
	td, ok := c.lookupTypeDecl(typeName)
	if !ok {
		c.report(newInvalidOperation(pos, "type %s has no member %q", recvType.String(), name))
		return nil
	}
	mt := c.memberTableFor(td)
	if ft, ok := mt.fields[name]; ok {
		if !recvType.Mutable() {
			return c.Pool.SetMutable(ft, false)
		}
		return ft
	}
	c.report(newInvalidOperation(pos, "%s has no field %q", recvType.String(), name))
	return nil
}

func (c *Checker) checkUnwrapExpr(u *ast.UnwrapExpr) types.Type {
	t := c.checkExpr(u.Value)
	if t == nil {
		return nil
	}
	if !types.IsNullablePointer(t) {
		c.report(newInvalidOperation(u.Pos(), "'!' requires a nullable pointer, got %s", t.String()))
		return nil
	}
	return c.Pool.Ptr(types.Pointee(t), false, t.Mutable())
}

func (c *Checker) checkAssignExpr(a *ast.AssignExpr) types.Type {
	targetType := c.checkExpr(a.Target)
	valueType := c.checkExpr(a.Value)
	if targetType == nil || valueType == nil {
		return nil
	}
	if !isLValue(a.Target) {
		c.report(newInvalidAssignment(a.Pos(), "left-hand side of assignment is not an lvalue"))
		return nil
	}
	if !targetType.Mutable() {
		c.report(newMutabilityError(a.Pos(), "cannot assign to immutable value of type %s", targetType.String()))
		return nil
	}
	// The target's own mutability was checked above; the value converts
	// to the target's type without it, as a declaration's initializer does.
	valueTarget := c.Pool.SetMutable(targetType, false)
	if a.Op != token.ASSIGN {
		// CompoundAssign op=: sugar for lhs = lhs op rhs; both halves must
		// typecheck, so synthesize the binary application and re-check it
		// against targetType.
		opName := compoundOpName(a.Op)
		bin := ast.NewBinaryExpr(opName, a.Target, a.Value, a.Token)
		binType := c.checkCallExpr(bin)
		if binType == nil {
			return nil
		}
		if !c.checkConvertible(a.Value, binType, valueTarget) {
			return nil
		}
		return targetType
	}
	if !c.checkConvertible(a.Value, valueType, valueTarget) {
		return nil
	}
	return targetType
}

func (c *Checker) checkNewExpr(n *ast.NewExpr) types.Type {
	call := &ast.CallExpr{Token: n.Token, Callee: &ast.Ident{Token: n.Token, Name: n.Type.Name}, Args: n.Args}
	return c.checkCallExpr(call)
}

var compoundOpNames = map[token.Type]string{
	token.PLUS_EQ: "+", token.MINUS_EQ: "-", token.STAR_EQ: "*", token.SLASH_EQ: "/",
	token.PERCENT_EQ: "%", token.AMP_EQ: "&", token.PIPE_EQ: "|", token.CARET_EQ: "^",
	token.SHL_EQ: "<<", token.SHR_EQ: ">>", token.AND_AND_EQ: "&&", token.OR_OR_EQ: "||",
}

func compoundOpName(op token.Type) string { return compoundOpNames[op] }
