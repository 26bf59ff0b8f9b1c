package semantic

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// isBareGenericParam reports whether te is an undecorated use of one of
// names (no array/pointer/reference/mutable wrapping, no generic
// arguments of its own) — the shape spec.md §4.3 requires for a
// parameter's declared type to drive inference.
func isBareGenericParam(te *ast.TypeExpr, names map[string]bool) bool {
	return te != nil && names[te.Name] && len(te.Args) == 0 &&
		!te.Pointer && !te.Reference && !te.IsArray && !te.Mutable
}

// inferGenericArgs implements §4.3's "Generic argument handling": either
// validates an explicit generic-argument list, or infers each parameter
// by scanning (param, arg) pairs for a bare use of that parameter's name.
// argTypes are the already-computed, pre-substitution types of the call's
// arguments. base carries any substitution already established by an
// enclosing receiver (a generic class's own type arguments); it is
// consulted but never mutated.
func (c *Checker) inferGenericArgs(params []*ast.GenericParam, paramList []*ast.Param, explicit []*ast.TypeExpr, argTypes []types.Type, base map[string]types.Type, pos token.Position) (map[string]types.Type, bool) {
	sub := make(map[string]types.Type, len(params))
	for k, v := range base {
		sub[k] = v
	}
	if len(params) == 0 {
		return sub, true
	}

	if len(explicit) > 0 {
		if len(explicit) != len(params) {
			c.report(newInvalidOperation(pos, "expected %d generic argument(s), got %d", len(params), len(explicit)))
			return nil, false
		}
		for i, gp := range params {
			sub[gp.Name] = c.resolveTypeExprWith(explicit[i], sub)
		}
	} else {
		names := make(map[string]bool, len(params))
		for _, gp := range params {
			names[gp.Name] = true
		}
		inferred := make(map[string]types.Type)
		n := len(paramList)
		if len(argTypes) < n {
			n = len(argTypes)
		}
		for i := 0; i < n; i++ {
			pt := paramList[i].Type
			if !isBareGenericParam(pt, names) {
				continue
			}
			if existing, ok := inferred[pt.Name]; ok {
				if !types.Equals(existing, argTypes[i]) {
					c.report(newInvalidOperation(pos, "conflicting inferred types for generic parameter %q", pt.Name))
					return nil, false
				}
				continue
			}
			inferred[pt.Name] = argTypes[i]
		}
		for _, gp := range params {
			t, ok := inferred[gp.Name]
			if !ok {
				c.report(newInvalidOperation(pos, "couldn't infer generic parameter %q", gp.Name))
				return nil, false
			}
			sub[gp.Name] = t
		}
	}

	for _, gp := range params {
		if gp.Constraint == nil {
			continue
		}
		arg := sub[gp.Name]
		if arg == nil || !c.implementsInterface(arg, gp.Constraint.Name) {
			argName := ""
			if arg != nil {
				argName = arg.String()
			}
			c.report(newGenericConstraintError(pos, argName, gp.Constraint.Name))
			return nil, false
		}
	}
	return sub, true
}

// resolveTypeExprWith resolves te under an explicit one-shot substitution
// frame, used for explicit generic-argument-list validation before the
// call's own frame would otherwise be established.
func (c *Checker) resolveTypeExprWith(te *ast.TypeExpr, sub map[string]types.Type) types.Type {
	pop := c.pushGenericArgs(sub)
	defer pop()
	return c.resolveTypeExpr(te)
}
