package semantic

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// resolveTypeExpr turns a parsed TypeExpr into an interned types.Type,
// applying the current generic substitution (if te names a bare generic
// parameter) before falling back to built-in scalars and declared
// class/struct/interface names.
func (c *Checker) resolveTypeExpr(te *ast.TypeExpr) types.Type {
	if te == nil {
		return nil
	}

	var base types.Type
	switch {
	case te.Name == "This":
		base = c.thisType()
	case len(te.Args) == 0:
		if t, ok := c.substGeneric(te.Name); ok {
			base = t
		} else if scalar := c.Pool.Scalar(te.Name); scalar != nil {
			base = scalar
		} else {
			base = c.resolveDeclaredType(te)
		}
	default:
		base = c.resolveDeclaredType(te)
	}
	if base == nil {
		c.report(newUndefinedType(te.Pos(), te.Name))
		return nil
	}

	if te.IsArray {
		size := -1
		if te.ArraySize != nil {
			size = *te.ArraySize
		}
		base = c.Pool.ArrayOf(base, size, false)
	}
	if te.Pointer {
		base = c.Pool.Ptr(base, true, false)
	}
	if te.Reference {
		base = c.Pool.Ptr(base, false, false)
	}
	if te.Mutable {
		base = c.Pool.SetMutable(base, true)
	}
	return base
}

// thisType returns the receiver type of the function currently being
// checked, or nil outside of a method body.
func (c *Checker) thisType() types.Type {
	fc := c.currentFunc()
	if fc == nil {
		return nil
	}
	return fc.receiver
}

// resolveDeclaredType resolves te against the symbol table: a TypeDecl or
// InterfaceDecl visible from the current file, with any generic arguments
// recursively resolved and carried on the resulting BasicType.
func (c *Checker) resolveDeclaredType(te *ast.TypeExpr) types.Type {
	sym, ok := c.Symbols.FindDecl(c.file, te.Name)
	if !ok {
		return nil
	}
	switch sym.Decl.(type) {
	case *ast.TypeDecl, *ast.InterfaceDecl:
	default:
		return nil
	}
	args := make([]types.Type, len(te.Args))
	for i, a := range te.Args {
		args[i] = c.resolveTypeExpr(a)
	}
	return c.Pool.Basic(te.Name, args, false)
}

// lookupTypeDecl finds the TypeDecl named name visible from the current
// file (not an interface).
func (c *Checker) lookupTypeDecl(name string) (*ast.TypeDecl, bool) {
	sym, ok := c.Symbols.FindDecl(c.file, name)
	if !ok {
		return nil, false
	}
	td, ok := sym.Decl.(*ast.TypeDecl)
	return td, ok
}

// lookupInterfaceDecl finds the InterfaceDecl named name visible from the
// current file.
func (c *Checker) lookupInterfaceDecl(name string) (*ast.InterfaceDecl, bool) {
	sym, ok := c.Symbols.FindDecl(c.file, name)
	if !ok {
		return nil, false
	}
	id, ok := sym.Decl.(*ast.InterfaceDecl)
	return id, ok
}

// memberTableFor computes (and caches) the field/method signature table
// of td, including fields and methods inherited from td.Parent.
func (c *Checker) memberTableFor(td *ast.TypeDecl) *memberTable {
	if mt, ok := c.typeMembers[td]; ok {
		return mt
	}
	mt := &memberTable{fields: make(map[string]types.Type), methods: make(map[string]*types.FunctionType)}
	c.typeMembers[td] = mt // break recursive self-reference cycles early

	if td.Parent != nil {
		if parent, ok := c.lookupTypeDecl(td.Parent.Name); ok {
			parentTable := c.memberTableFor(parent)
			for name, ft := range parentTable.fields {
				mt.fields[name] = ft
			}
			for name, sig := range parentTable.methods {
				mt.methods[name] = sig
			}
		}
	}

	receiver := c.Pool.Basic(td.Name.Name, nil, false)
	for _, f := range td.Fields {
		ft := c.resolveTypeExprAsReceiver(f.Type, receiver)
		if ft != nil {
			ft = c.Pool.SetMutable(ft, f.Mutable)
		}
		mt.fields[f.Name.Name] = ft
	}
	for _, m := range td.Methods {
		mt.methods[m.Name.Name] = c.methodSignature(m, receiver)
	}
	return mt
}

// resolveTypeExprAsReceiver resolves te with `This` bound to receiver,
// used when computing a member table outside of any active function
// context (so thisType() would otherwise return nil).
func (c *Checker) resolveTypeExprAsReceiver(te *ast.TypeExpr, receiver types.Type) types.Type {
	c.pushFunc(&funcCtx{receiver: receiver})
	defer c.popFunc()
	return c.resolveTypeExpr(te)
}

// methodSignature computes m's FunctionType (excluding the receiver),
// resolved with This bound to receiver.
func (c *Checker) methodSignature(m *ast.FuncDecl, receiver types.Type) *types.FunctionType {
	c.pushFunc(&funcCtx{receiver: receiver})
	defer c.popFunc()
	params := make([]types.Type, len(m.Params))
	for i, p := range m.Params {
		params[i] = c.resolveTypeExpr(p.Type)
	}
	var result types.Type
	if m.ReturnType != nil {
		result = c.resolveTypeExpr(m.ReturnType)
	}
	ft, _ := c.Pool.FuncType(params, result, false).(*types.FunctionType)
	return ft
}

// interfaceTable computes the field/method requirement table of an
// InterfaceDecl, with This bound to the candidate type under test.
func (c *Checker) interfaceTable(id *ast.InterfaceDecl, candidate types.Type) (map[string]types.Type, map[string]*types.FunctionType) {
	fields := make(map[string]types.Type)
	methods := make(map[string]*types.FunctionType)
	c.pushFunc(&funcCtx{receiver: candidate})
	defer c.popFunc()
	for _, f := range id.Fields {
		fields[f.Name.Name] = c.resolveTypeExpr(f.Type)
	}
	for _, m := range id.Methods {
		params := make([]types.Type, len(m.Params))
		for i, p := range m.Params {
			params[i] = c.resolveTypeExpr(p.Type)
		}
		var result types.Type
		if m.ReturnType != nil {
			result = c.resolveTypeExpr(m.ReturnType)
		}
		if ft, ok := c.Pool.FuncType(params, result, false).(*types.FunctionType); ok {
			methods[m.Name.Name] = ft
		}
	}
	return fields, methods
}

// implementsInterface reports whether named type t (a Basic type over a
// TypeDecl) structurally conforms to the interface named ifaceName.
func (c *Checker) implementsInterface(t types.Type, ifaceName string) bool {
	id, ok := c.lookupInterfaceDecl(ifaceName)
	if !ok {
		return false
	}
	name := types.Name(t)
	if name == "" {
		return false
	}
	td, ok := c.lookupTypeDecl(name)
	if !ok {
		return false
	}
	mt := c.memberTableFor(td)
	ifaceFields, ifaceMethods := c.interfaceTable(id, t)
	return types.Implements(mt.fields, mt.methods, ifaceFields, ifaceMethods)
}
