package semantic

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// candidate is one overload-resolution candidate: either a plain
// function/method (funcDecl) or a TypeDecl expanded to its initializer
// (spec.md §4.3 step 3).
type candidate struct {
	funcDecl  *ast.FuncDecl
	typeDecl  *ast.TypeDecl // non-nil: this candidate is TypeName's constructor
	module    string
	receiver  types.Type // non-nil for method/init calls
	recvSubst map[string]types.Type
}

// ResolvedCall is what the checker stores on a CallExpr.Resolved once
// overload resolution binds it, per the code-generator handoff guarantee
// that every call has a non-null resolved callee declaration.
type ResolvedCall struct {
	Func        *ast.FuncDecl
	Type        *ast.TypeDecl
	Module      string
	GenericArgs map[string]types.Type
}

// freeCandidates gathers every non-method declaration visible from the
// current file named name: plain functions/operator-functions and
// TypeDecls (constructor calls).
func (c *Checker) freeCandidates(name string) []candidate {
	syms := c.Symbols.FindDecls(c.file, name, c.searchEverywhere)
	var out []candidate
	for _, sym := range syms {
		switch d := sym.Decl.(type) {
		case *ast.FuncDecl:
			if d.Receiver != nil || d.IsDeinit || d.IsInit {
				continue
			}
			out = append(out, candidate{funcDecl: d, module: sym.Module})
		case *ast.TypeDecl:
			out = append(out, candidate{funcDecl: d.Init, typeDecl: d, module: sym.Module})
		}
	}
	return out
}

// methodCandidates gathers every method named name reachable on recvType,
// walking the parent chain, tagged with the generic substitution recvType
// implies for its declaring TypeDecl's own generic parameters.
func (c *Checker) methodCandidates(recvType types.Type, name string) []candidate {
	if types.IsReference(recvType) {
		recvType = c.Pool.SetMutable(types.Pointee(recvType), recvType.Mutable())
	}
	typeName := types.Name(recvType)
	if typeName == "" {
		return nil
	}
	td, ok := c.lookupTypeDecl(typeName)
	if !ok {
		return nil
	}
	module := ""
	if sym, ok := c.Symbols.FindDecl(c.file, typeName); ok {
		module = sym.Module
	}
	recvSubst := zipGenericArgs(td.GenericParams, types.GenericArgs(recvType))

	var out []candidate
	for cur := td; cur != nil; {
		for _, m := range cur.Methods {
			if m.Name.Name == name {
				out = append(out, candidate{funcDecl: m, module: module, receiver: recvType, recvSubst: recvSubst})
			}
		}
		if cur.Parent == nil {
			break
		}
		parent, ok := c.lookupTypeDecl(cur.Parent.Name)
		if !ok {
			break
		}
		cur = parent
	}
	return out
}

func zipGenericArgs(params []*ast.GenericParam, args []types.Type) map[string]types.Type {
	if len(params) == 0 || len(params) != len(args) {
		return nil
	}
	m := make(map[string]types.Type, len(params))
	for i, gp := range params {
		m[gp.Name] = args[i]
	}
	return m
}

// genericParams returns the generic parameters of cand's TypeDecl (for a
// constructor candidate) or of its function, or nil if it has neither.
func (c *candidate) genericParams() []*ast.GenericParam {
	if c.typeDecl != nil {
		return c.typeDecl.GenericParams
	}
	if c.funcDecl != nil {
		return c.funcDecl.GenericParams
	}
	return nil
}

// bindCandidate attempts to resolve cand against argTypes: establishing
// (or inferring) its generic substitution, checking arity, and checking
// every argument's convertibility to the corresponding parameter type.
// When strict, failures are reported as diagnostics; when not (the silent
// multi-candidate filtering pass of step 5), failures are swallowed and
// simply reported back via ok=false.
func (c *Checker) bindCandidate(cand candidate, call *ast.CallExpr, args []*ast.Arg, argTypes []types.Type, strict bool) (types.Type, map[string]types.Type, bool) {
	fn := cand.funcDecl
	if fn == nil {
		if cand.typeDecl == nil {
			return nil, nil, false
		}
		// A type with no init is constructed by a call with no arguments.
		fn = &ast.FuncDecl{}
		cand.funcDecl = fn
	}
	if len(fn.Params) != len(args) {
		if strict {
			c.report(newArgumentCountError(call.Pos(), displayName(call), len(fn.Params), len(args)))
		}
		return nil, nil, false
	}

	sub, ok := c.inferGenericArgsSilently(cand, call, argTypes, strict)
	if !ok {
		return nil, nil, false
	}

	pop := c.pushGenericArgs(sub)
	defer pop()

	for i, p := range fn.Params {
		// spec.md §4.3 step 5: "every named argument's name matches the
		// corresponding parameter name". A named argument still binds
		// positionally; only its spelling against that position's
		// parameter is checked.
		if args[i].Name != "" && args[i].Name != p.Name.Name {
			if strict {
				c.report(newInvalidArgumentName(args[i].Pos(), args[i].Name, p.Name.Name))
			}
			return nil, nil, false
		}
		expected := c.resolveTypeExpr(p.Type)
		if expected == nil {
			return nil, nil, false
		}
		if strict {
			if !c.checkConvertible(args[i].Value, argTypes[i], expected) {
				return nil, nil, false
			}
		} else if !c.convertible(args[i].Value, argTypes[i], expected) {
			return nil, nil, false
		}
	}

	var result types.Type
	switch {
	case cand.typeDecl != nil:
		args := make([]types.Type, len(cand.typeDecl.GenericParams))
		for i, gp := range cand.typeDecl.GenericParams {
			args[i] = sub[gp.Name]
		}
		result = c.Pool.Basic(cand.typeDecl.Name.Name, args, false)
	case fn.ReturnType != nil:
		result = c.resolveTypeExpr(fn.ReturnType)
	default:
		result = c.Pool.Void()
	}
	return result, sub, true
}

// inferGenericArgsSilently wraps inferGenericArgs so the silent matching
// pass (strict=false) never emits diagnostics for an inference failure —
// it just disqualifies the candidate.
func (c *Checker) inferGenericArgsSilently(cand candidate, call *ast.CallExpr, argTypes []types.Type, strict bool) (map[string]types.Type, bool) {
	if !strict {
		before := len(c.errors)
		sub, ok := c.inferGenericArgs(cand.genericParams(), cand.funcDecl.Params, call.GenericArgs, argTypes, cand.recvSubst, call.Pos())
		c.errors = c.errors[:before]
		return sub, ok
	}
	return c.inferGenericArgs(cand.genericParams(), cand.funcDecl.Params, call.GenericArgs, argTypes, cand.recvSubst, call.Pos())
}

func displayName(call *ast.CallExpr) string {
	switch callee := call.Callee.(type) {
	case *ast.Ident:
		return callee.Name
	case *ast.MemberExpr:
		return callee.Name
	default:
		return "<call>"
	}
}

// resolveOverload implements §4.3's overload-resolution algorithm over an
// already-gathered candidate list.
func (c *Checker) resolveOverload(name string, candidates []candidate, call *ast.CallExpr, args []*ast.Arg, argTypes []types.Type) types.Type {
	if len(candidates) == 0 {
		c.report(newUndefinedFunction(call.Pos(), name))
		return nil
	}

	if len(candidates) == 1 {
		result, sub, ok := c.bindCandidate(candidates[0], call, args, argTypes, true)
		if !ok {
			return nil
		}
		c.finalizeCall(call, candidates[0], sub)
		return c.recheckGenericBody(candidates[0], sub, result)
	}

	type match struct {
		cand   candidate
		result types.Type
		sub    map[string]types.Type
	}
	var matches []match
	for _, cand := range candidates {
		if result, sub, ok := c.bindCandidate(cand, call, args, argTypes, false); ok {
			matches = append(matches, match{cand, result, sub})
		}
	}

	switch len(matches) {
	case 0:
		c.report(newNoOverload(call.Pos(), name))
		return nil
	case 1:
		c.finalizeCall(call, matches[0].cand, matches[0].sub)
		return c.recheckGenericBody(matches[0].cand, matches[0].sub, matches[0].result)
	}

	allHeaders := true
	var stdMatch *match
	for i := range matches {
		if !isHeaderModule(matches[i].cand.module) {
			allHeaders = false
		}
		if matches[i].cand.module == "std" {
			stdMatch = &matches[i]
		}
	}
	switch {
	case allHeaders:
		c.finalizeCall(call, matches[0].cand, matches[0].sub)
		return c.recheckGenericBody(matches[0].cand, matches[0].sub, matches[0].result)
	case stdMatch != nil:
		c.finalizeCall(call, stdMatch.cand, stdMatch.sub)
		return c.recheckGenericBody(stdMatch.cand, stdMatch.sub, stdMatch.result)
	default:
		c.report(newAmbiguousOverload(call.Pos(), name))
		return nil
	}
}

func isHeaderModule(module string) bool {
	return len(module) > 2 && module[len(module)-2:] == ".h"
}

func (c *Checker) finalizeCall(call *ast.CallExpr, cand candidate, sub map[string]types.Type) {
	call.Resolved = &ResolvedCall{Func: cand.funcDecl, Type: cand.typeDecl, Module: cand.module, GenericArgs: sub}
}

// recheckGenericBody re-type-checks a generic callee's body under sub,
// gated so this only ever happens from a call site (never while first
// walking top-level declarations). Non-generic candidates return result
// unchanged.
func (c *Checker) recheckGenericBody(cand candidate, sub map[string]types.Type, result types.Type) types.Type {
	fn := cand.funcDecl
	if fn == nil || fn.Body == nil || len(cand.genericParams()) == 0 {
		return result
	}
	pop := c.pushGenericArgs(sub)
	defer pop()
	c.checkFuncBody(fn, cand.receiver)
	return result
}
