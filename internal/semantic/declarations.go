package semantic

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// checkTopLevelDecl dispatches a single top-level declaration. Import
// resolution is handled by the module loader before the checker ever
// sees a file, so ImportDecl is a no-op here.
func (c *Checker) checkTopLevelDecl(d ast.Stmt) {
	switch v := d.(type) {
	case *ast.ImportDecl:
		// resolved by the module loader
	case *ast.VarDecl:
		declared := c.varDeclType(v)
		if v.Value != nil {
			valueType := c.checkExpr(v.Value)
			if v.Type != nil && declared != nil && valueType != nil {
				c.checkConvertible(v.Value, valueType, c.Pool.SetMutable(declared, false))
			}
		}
	case *ast.ExprStmt:
		c.checkExpr(v.X)
	case *ast.FuncDecl:
		c.checkTopLevelFunc(v)
	case *ast.TypeDecl:
		c.checkTypeDecl(v)
	case *ast.InterfaceDecl:
		c.checkInterfaceDecl(v)
	default:
		c.report(newInvalidOperation(d.Pos(), "unsupported top-level declaration %T", d))
	}
}

// checkTopLevelFunc checks a free function. A generic function's body is
// not checked here: it is only re-checked, substituted, from an actual
// call site (recheckGenericBody), per the stack-discipline gating rule.
func (c *Checker) checkTopLevelFunc(fn *ast.FuncDecl) {
	if len(fn.GenericParams) > 0 {
		return
	}
	c.checkFuncBody(fn, nil)
}

// checkTypeDecl validates a class/struct declaration: its declared
// interfaces are structurally satisfied, and (for non-generic types) its
// init/deinit/methods are checked eagerly with `this` bound to the type.
func (c *Checker) checkTypeDecl(td *ast.TypeDecl) {
	mt := c.memberTableFor(td)
	_ = mt // forces field/method type resolution, surfacing undefined-type errors

	receiver := c.Pool.Basic(td.Name.Name, c.genericArgsOf(td), false)
	for _, iface := range td.Interfaces {
		if !c.implementsInterface(receiver, iface.Name) {
			c.report(newInterfaceError(td.Pos(), td.Name.Name, iface.Name))
		}
	}

	if len(td.GenericParams) > 0 {
		return
	}

	mutReceiver := c.Pool.SetMutable(receiver, true)
	c.checkFuncBody(td.Init, mutReceiver)
	c.checkFuncBody(td.Deinit, mutReceiver)
	for _, m := range td.Methods {
		recv := receiver
		if m.IsMutating {
			recv = mutReceiver
		}
		c.checkFuncBody(m, recv)
	}
}

// genericArgsOf produces placeholder Type arguments, one opaque BasicType
// per generic parameter named after it, so a generic TypeDecl's own
// interface-conformance check can run abstractly, the way its
// instantiation-time substitution would eventually bind them.
func (c *Checker) genericArgsOf(td *ast.TypeDecl) []types.Type {
	if len(td.GenericParams) == 0 {
		return nil
	}
	args := make([]types.Type, len(td.GenericParams))
	for i, gp := range td.GenericParams {
		args[i] = c.Pool.Basic(gp.Name, nil, false)
	}
	return args
}

// checkInterfaceDecl resolves every field and method signature named by
// id, surfacing undefined-type errors; interface declarations have no
// bodies to check.
func (c *Checker) checkInterfaceDecl(id *ast.InterfaceDecl) {
	receiver := c.Pool.Basic(id.Name.Name, nil, false)
	c.interfaceTable(id, receiver)
}
