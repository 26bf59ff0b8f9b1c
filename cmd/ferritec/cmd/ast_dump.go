package cmd

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/ferrite-lang/ferritec/internal/ast"
)

// dumpProgramTree renders a whole parsed file as a treeprint.Tree, one
// branch per import and per top-level declaration.
func dumpProgramTree(p *ast.Program) treeprint.Tree {
	tree := treeprint.NewWithRoot("Program")
	for _, imp := range p.Imports {
		tree.AddNode(imp.String())
	}
	for _, d := range p.Decls {
		addStmtNode(tree, d)
	}
	return tree
}

// dumpTree renders a single expression (used by `parse -e --dump-ast`).
func dumpTree(e ast.Expr) treeprint.Tree {
	tree := treeprint.New()
	addExprNode(tree, e)
	return tree
}

func addStmtNode(t treeprint.Tree, s ast.Stmt) {
	switch n := s.(type) {
	case *ast.FuncDecl:
		b := t.AddBranch(funcLabel(n))
		for _, p := range n.Params {
			b.AddNode(p.String())
		}
		if n.Body != nil {
			bodyBranch := b.AddBranch("body")
			for _, st := range n.Body.Stmts {
				addStmtNode(bodyBranch, st)
			}
		}
	case *ast.TypeDecl:
		kind := "class"
		if n.IsStruct {
			kind = "struct"
		}
		b := t.AddBranch(fmt.Sprintf("%s %s", kind, n.Name.Name))
		for _, f := range n.Fields {
			b.AddNode(f.String())
		}
		if n.Init != nil {
			addStmtNode(b, n.Init)
		}
		if n.Deinit != nil {
			addStmtNode(b, n.Deinit)
		}
		for _, m := range n.Methods {
			addStmtNode(b, m)
		}
	case *ast.InterfaceDecl:
		t.AddNode(n.String())
	case *ast.VarDecl:
		t.AddNode(n.String())
	case *ast.BlockStmt:
		b := t.AddBranch("block")
		for _, st := range n.Stmts {
			addStmtNode(b, st)
		}
	case *ast.IfStmt:
		b := t.AddBranch("if " + n.Cond.String())
		addStmtNode(b, n.Then)
		if n.Else != nil {
			elseBranch := b.AddBranch("else")
			addStmtNode(elseBranch, n.Else)
		}
	case *ast.WhileStmt:
		b := t.AddBranch("while " + n.Cond.String())
		addStmtNode(b, n.Body)
	case *ast.ForStmt:
		b := t.AddBranch("for " + n.Var.Name + " in " + n.Iterable.String())
		addStmtNode(b, n.Body)
	case *ast.SwitchStmt:
		b := t.AddBranch("switch " + n.Subject.String())
		for _, c := range n.Cases {
			addStmtNode(b, c.Body)
		}
	case *ast.ExprStmt:
		addExprNode(t, n.X)
	default:
		t.AddNode(s.String())
	}
}

func addExprNode(t treeprint.Tree, e ast.Expr) {
	switch n := e.(type) {
	case *ast.CallExpr:
		b := t.AddBranch(n.Callee.String())
		for _, a := range n.Args {
			if a.Name != "" {
				addExprNode(b.AddBranch(a.Name+":"), a.Value)
				continue
			}
			addExprNode(b, a.Value)
		}
	default:
		t.AddNode(e.String())
	}
}

func funcLabel(f *ast.FuncDecl) string {
	switch {
	case f.IsInit:
		return "init"
	case f.IsDeinit:
		return "deinit"
	default:
		return "func " + f.Name.Name
	}
}
