package semantic

import (
	"math"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
)

const (
	int32Min = -1 << 31
	int32Max = 1<<31 - 1
)

// literalValue extracts the constant integer value of e if e is (possibly
// through parentheses) an IntLit, used by conversion rules 3/4 to check
// whether a literal's value fits the target type.
func literalValue(e ast.Expr) (int64, bool) {
	switch v := e.(type) {
	case *ast.IntLit:
		return v.Value, true
	case *ast.GroupedExpr:
		return literalValue(v.Inner)
	default:
		return 0, false
	}
}

func isIntLiteral(e ast.Expr) bool {
	_, ok := literalValue(e)
	return ok
}

func isStringLiteral(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.StringLit:
		return true
	case *ast.GroupedExpr:
		return isStringLiteral(v.Inner)
	default:
		return false
	}
}

func isNullLiteral(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.NullLit:
		return true
	case *ast.GroupedExpr:
		return isNullLiteral(v.Inner)
	default:
		return false
	}
}

// isLValue reports whether e names a storage location, per the
// Lvalue/rvalue glossary entry.
func isLValue(e ast.Expr) bool {
	switch v := e.(type) {
	case *ast.Ident, *ast.ThisExpr:
		return true
	case *ast.MemberExpr:
		return true
	case *ast.GroupedExpr:
		return isLValue(v.Inner)
	case *ast.CallExpr:
		if id, ok := v.Callee.(*ast.Ident); ok {
			return id.Name == "[]" || id.Name == "prefix *"
		}
		return false
	default:
		return false
	}
}

// fitsInt32 reports whether v fits in a 32-bit signed integer.
func fitsInt32(v int64) bool { return v >= int32Min && v <= int32Max }

// fitsTarget reports whether literal value v fits the range of the
// built-in integer type named by target.
func fitsTarget(v int64, target types.Type) bool {
	name := types.Name(target)
	switch name {
	case types.IntName, types.Int32Name:
		return v >= int32Min && v <= int32Max
	case types.Int64Name:
		return true // already a parsed int64
	case types.Int8Name:
		return v >= math.MinInt8 && v <= math.MaxInt8
	case types.Int16Name:
		return v >= math.MinInt16 && v <= math.MaxInt16
	case types.UIntName, types.UInt32Name:
		return v >= 0 && v <= math.MaxUint32
	case types.UInt8Name:
		return v >= 0 && v <= math.MaxUint8
	case types.UInt16Name:
		return v >= 0 && v <= math.MaxUint16
	case types.UInt64Name:
		return v >= 0
	default:
		return false
	}
}

// convertible implements the seven implicit-conversion rules of §4.3. It
// never mutates e; callers that accept the conversion are responsible for
// calling e.SetType when rule 3/4 applies (an integer literal's resolved
// type narrows to the target).
func (c *Checker) convertible(e ast.Expr, from, to types.Type) bool {
	// Rule 1: equal ignoring mutability, with a legal mutability transfer.
	if types.Equals(c.Pool.SetMutable(from, false), c.Pool.SetMutable(to, false)) {
		if to.Mutable() && !from.Mutable() {
			return false // never immutable -> mutable
		}
		return true
	}

	// Rule 2: S is a named type structurally implementing interface T.
	if name := types.Name(to); name != "" {
		if _, isIface := c.lookupInterfaceDecl(name); isIface {
			if c.implementsInterface(from, name) {
				return true
			}
		}
	}

	// Rule 3: integer literal -> integer type that can hold its value.
	if v, ok := literalValue(e); ok && types.IsInteger(to) {
		if fitsTarget(v, to) {
			return true
		}
	}

	// Rule 4: integer literal -> floating-point type.
	if isIntLiteral(e) && types.IsFloatingPoint(to) {
		return true
	}

	// Rule 5: null literal -> nullable pointer.
	if isNullLiteral(e) && types.IsNullablePointer(to) {
		return true
	}

	// Rule 6: string literal -> immutable char* (C-string interop).
	if isStringLiteral(e) && types.IsNullablePointer(to) && types.Name(types.Pointee(to)) == types.CharName && !to.Mutable() {
		return true
	}

	// Rule 7: lvalue of a named non-value-semantics (class) type -> pointer
	// whose pointee the lvalue's type implicitly converts to (implicit
	// address-of for reference parameters).
	if isLValue(e) && types.IsPointer(to) {
		if name := types.Name(from); name != "" {
			if td, ok := c.lookupTypeDecl(name); ok && !td.IsStruct {
				if c.convertible(e, from, types.Pointee(to)) {
					return true
				}
			}
		}
	}

	return false
}

// applyLiteralNarrowing records the implicit literal-narrowing conversion
// (rules 3/4) on e's resolved type once a conversion to target has been
// accepted, per the "on success the literal's resolved type is set to T"
// clause.
func (c *Checker) applyLiteralNarrowing(e ast.Expr, target types.Type) {
	if isIntLiteral(e) && (types.IsInteger(target) || types.IsFloatingPoint(target)) {
		e.SetType(target)
	}
}

// checkConvertible reports a type-mismatch diagnostic if from is not
// implicitly convertible to to, and returns whether it was.
func (c *Checker) checkConvertible(e ast.Expr, from, to types.Type) bool {
	if to == nil || from == nil {
		return false
	}
	if !c.convertible(e, from, to) {
		c.report(newTypeMismatch(e.Pos(), to, from))
		return false
	}
	c.applyLiteralNarrowing(e, to)
	return true
}

// checkCast validates an explicit cast<T>(e): bool -> int; (mutable)
// void* <-> T* with no mutability fabrication.
func (c *Checker) checkCast(pos ast.Node, from, to types.Type) bool {
	if types.IsBool(from) && types.IsInteger(to) {
		return true
	}
	fromPtr, fromOK := asPointer(from)
	toPtr, toOK := asPointer(to)
	if fromOK && toOK {
		fromVoid := types.Name(fromPtr.Elem) == types.VoidName
		toVoid := types.Name(toPtr.Elem) == types.VoidName
		if fromVoid || toVoid {
			if to.Mutable() && !from.Mutable() {
				return false
			}
			return true
		}
	}
	return false
}

func asPointer(t types.Type) (*types.PointerType, bool) {
	p, ok := t.(*types.PointerType)
	return p, ok
}
