package semantic

import (
	"strings"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// checkCallExpr dispatches a CallExpr to the right typing rule: the
// operator-as-call encodings (prefix, binary, subscript), a built-in
// pseudo-function, a method call (Callee is a MemberExpr), or ordinary
// overload resolution.
func (c *Checker) checkCallExpr(call *ast.CallExpr) types.Type {
	switch callee := call.Callee.(type) {
	case *ast.MemberExpr:
		return c.checkMethodCall(call, callee)
	case *ast.Ident:
		name := c.resolveIdent(callee.Name)
		switch {
		case strings.HasPrefix(name, "prefix "):
			return c.checkPrefixCall(call, strings.TrimPrefix(name, "prefix "))
		case name == "[]":
			return c.checkSubscriptCall(call)
		case logicalOps[name] || comparisonOps[name] || bitwiseOps[name] || arithmeticOps[name]:
			return c.checkBinaryCall(call, name)
		case name == "sizeOf":
			return c.checkSizeOf(call)
		case c.Pool.Scalar(name) != nil:
			return c.checkScalarInitializer(call, name)
		default:
			return c.checkPlainCall(call, name)
		}
	default:
		c.report(newInvalidOperation(call.Pos(), "expression is not callable"))
		return nil
	}
}

func (c *Checker) argTypes(args []*ast.Arg) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		out[i] = c.checkExpr(a.Value)
	}
	return out
}

func anyNil(ts []types.Type) bool {
	for _, t := range ts {
		if t == nil {
			return true
		}
	}
	return false
}

// checkPrefixCall types `!x`, `*x`, `&x`, `+x`, `-x`, `~x`. `!`, `*`, and
// `&` have fixed, non-overloadable semantics; `+`, `-`, and `~` fall back
// to overload resolution against a user-declared `prefix <op>` function
// when the operand isn't a builtin numeric type.
func (c *Checker) checkPrefixCall(call *ast.CallExpr, op string) types.Type {
	operand := call.Args[0].Value
	t := c.checkExpr(operand)
	if t == nil {
		return nil
	}
	switch op {
	case "!":
		if !types.IsBool(t) {
			c.report(newTypeMismatch(operand.Pos(), c.Pool.Bool(), t))
			return nil
		}
		return c.Pool.Bool()
	case "*":
		if !types.IsPointer(t) {
			c.report(newInvalidOperation(operand.Pos(), "cannot dereference non-pointer type %s", t.String()))
			return nil
		}
		return types.Pointee(t)
	case "&":
		if !isLValue(operand) {
			c.report(newInvalidOperation(operand.Pos(), "cannot take the address of a non-lvalue"))
			return nil
		}
		return c.Pool.Ptr(t, false, t.Mutable())
	case "+", "-", "~":
		if types.IsNumeric(t) {
			if op == "~" && types.IsFloatingPoint(t) {
				c.report(newInvalidOperation(operand.Pos(), "'~' is forbidden on floating-point operands"))
				return nil
			}
			return t
		}
		return c.resolveOverload("prefix "+op, c.freeCandidates("prefix "+op), call, call.Args, []types.Type{t})
	default:
		c.report(newInvalidOperation(call.Pos(), "unknown prefix operator %q", op))
		return nil
	}
}

// checkBinaryCall types the arithmetic/logical/comparison/bitwise binary
// operators. Builtin operand pairs are handled directly; anything else
// falls back to overload resolution against a user-declared operator
// function.
func (c *Checker) checkBinaryCall(call *ast.CallExpr, op string) types.Type {
	lhs, rhs := call.Args[0].Value, call.Args[1].Value
	lt := c.checkExpr(lhs)
	rt := c.checkExpr(rhs)
	if lt == nil || rt == nil {
		return nil
	}

	builtinOperands := types.IsNumeric(lt) || types.IsBool(lt) || types.IsPointer(lt)
	if !builtinOperands {
		return c.resolveOverload(op, c.freeCandidates(op), call, call.Args, []types.Type{lt, rt})
	}

	switch {
	case logicalOps[op]:
		if !types.IsBool(lt) || !types.IsBool(rt) {
			c.report(newInvalidOperation(call.Pos(), "%q requires bool operands", op))
			return nil
		}
		return c.Pool.Bool()
	case comparisonOps[op]:
		if !c.checkConvertible(rhs, rt, lt) && !c.checkConvertible(lhs, lt, rt) {
			c.report(newTypeMismatch(rhs.Pos(), lt, rt))
			return nil
		}
		return c.Pool.Bool()
	case bitwiseOps[op]:
		if types.IsFloatingPoint(lt) || types.IsFloatingPoint(rt) {
			c.report(newInvalidOperation(call.Pos(), "%q is forbidden on floating-point operands", op))
			return nil
		}
		return c.commonNumericType(call, lhs, rhs, lt, rt)
	case arithmeticOps[op]:
		return c.commonNumericType(call, lhs, rhs, lt, rt)
	default:
		c.report(newInvalidOperation(call.Pos(), "unknown binary operator %q", op))
		return nil
	}
}

// commonNumericType implements the "common type after implicit
// conversion rules" clause for arithmetic/bitwise operators: one side
// must implicitly convert to the other's type.
func (c *Checker) commonNumericType(call *ast.CallExpr, lhs, rhs ast.Expr, lt, rt types.Type) types.Type {
	if types.Equals(c.Pool.SetMutable(lt, false), c.Pool.SetMutable(rt, false)) {
		return c.Pool.SetMutable(lt, false)
	}
	if c.convertible(rhs, rt, lt) {
		c.applyLiteralNarrowing(rhs, lt)
		return c.Pool.SetMutable(lt, false)
	}
	if c.convertible(lhs, lt, rt) {
		c.applyLiteralNarrowing(lhs, rt)
		return c.Pool.SetMutable(rt, false)
	}
	c.report(newTypeMismatch(call.Pos(), lt, rt))
	return nil
}

// checkSubscriptCall types `a[i]`: builtin array indexing, including the
// constant-out-of-range compile error, or a user `[]` operator.
func (c *Checker) checkSubscriptCall(call *ast.CallExpr) types.Type {
	recv, idx := call.Args[0].Value, call.Args[1].Value
	recvType := c.checkExpr(recv)
	idxType := c.checkExpr(idx)
	if recvType == nil || idxType == nil {
		return nil
	}
	if !types.IsArrayType(recvType) {
		return c.resolveOverload("[]", c.methodCandidates(recvType, "[]"), call, call.Args, []types.Type{recvType, idxType})
	}
	if !c.checkConvertible(idx, idxType, c.Pool.Int()) {
		return nil
	}
	if size, sized := types.ArraySize(recvType); sized {
		if v, ok := literalValue(idx); ok && (v < 0 || v >= int64(size)) {
			c.report(newInvalidOperation(idx.Pos(), "accessing array out-of-bounds with index %d, array size is %d", v, size))
			return nil
		}
	}
	elem := types.ElementType(recvType)
	if !recvType.Mutable() {
		return c.Pool.SetMutable(elem, false)
	}
	return elem
}

// checkPlainCall resolves an ordinary function/constructor call by name.
func (c *Checker) checkPlainCall(call *ast.CallExpr, name string) types.Type {
	argTypes := c.argTypes(call.Args)
	if anyNil(argTypes) {
		return nil
	}
	return c.resolveOverload(name, c.freeCandidates(name), call, call.Args, argTypes)
}

// checkSizeOf types `sizeOf<T>()`: zero arguments, one generic argument,
// returns uint64.
func (c *Checker) checkSizeOf(call *ast.CallExpr) types.Type {
	if len(call.Args) != 0 || len(call.GenericArgs) != 1 {
		c.report(newInvalidOperation(call.Pos(), "sizeOf expects zero arguments and one generic type argument"))
		return nil
	}
	if c.resolveTypeExpr(call.GenericArgs[0]) == nil {
		return nil
	}
	return c.Pool.UInt64()
}

// checkScalarInitializer types a call whose name is a built-in scalar
// type: a one-argument converting initializer, e.g. `Int(someFloat)`.
func (c *Checker) checkScalarInitializer(call *ast.CallExpr, name string) types.Type {
	if len(call.Args) != 1 || len(call.GenericArgs) != 0 {
		c.report(newInvalidOperation(call.Pos(), "%q expects exactly one argument", name))
		return nil
	}
	argType := c.checkExpr(call.Args[0].Value)
	if argType == nil {
		return nil
	}
	target := c.Pool.Scalar(name)
	if !types.IsNumeric(argType) && !types.IsBool(argType) && !types.IsString(argType) {
		c.report(newInvalidOperation(call.Pos(), "cannot convert %s to %s", argType.String(), name))
		return nil
	}
	return target
}

// checkMethodCall types `recv.m(args)`, including the offsetUnsafely
// builtin pointer method and the nullable-pointer member-access guard.
func (c *Checker) checkMethodCall(call *ast.CallExpr, member *ast.MemberExpr) types.Type {
	recvType := c.checkExpr(member.Recv)
	if recvType == nil {
		return nil
	}
	if err := c.checkMemberAccessBase(member.Pos(), recvType); err != nil {
		c.report(err)
		return nil
	}
	if types.IsPointer(recvType) && member.Name == "offsetUnsafely" {
		argTypes := c.argTypes(call.Args)
		if len(argTypes) != 1 || anyNil(argTypes) || !c.checkConvertible(call.Args[0].Value, argTypes[0], c.Pool.Int64()) {
			c.report(newArgumentCountError(call.Pos(), "offsetUnsafely", 1, len(call.Args)))
			return nil
		}
		return recvType
	}
	argTypes := c.argTypes(call.Args)
	if anyNil(argTypes) {
		return nil
	}
	return c.resolveOverload(member.Name, c.methodCandidates(recvType, member.Name), call, call.Args, argTypes)
}
