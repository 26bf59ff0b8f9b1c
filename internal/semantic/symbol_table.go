package semantic

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
)

// DeclName returns the identifier a top-level declaration is published
// under, or "", false for nodes that never carry a name (e.g. a deinit,
// which is addressed only through its owning type).
func DeclName(d ast.Stmt) (string, bool) {
	switch v := d.(type) {
	case *ast.FuncDecl:
		if v.IsDeinit {
			return "", false
		}
		return v.Name.Name, true
	case *ast.VarDecl:
		return v.Name.Name, true
	case *ast.TypeDecl:
		return v.Name.Name, true
	case *ast.InterfaceDecl:
		return v.Name.Name, true
	default:
		return "", false
	}
}

// Symbol is one named declaration published into a SymbolTable, tagged
// with the module that contributed it (used by overload resolution's
// ".h" / "std" tie-breakers).
type Symbol struct {
	Name   string
	Decl   ast.Stmt
	Module string
	File   string
}

// SymbolTable implements C6: a per-module, name-indexed mapping to
// declarations, with file-local imports layered over module-global
// entries. It is mutated only while parsing (Register) and queried
// during type checking (FindDecl/FindDecls).
type SymbolTable struct {
	// moduleGlobal holds every top-level declaration published anywhere
	// in the owning module, keyed by name. Overloading means a name can
	// map to more than one declaration.
	moduleGlobal map[string][]*Symbol

	// fileLocal holds, per source file, the declarations that file
	// itself contributes (a subset of moduleGlobal).
	fileLocal map[string]map[string][]*Symbol

	// imported holds, per source file, declarations pulled in by that
	// file's import statements from other modules.
	imported map[string]map[string][]*Symbol

	// modules tracks every module this table has published
	// declarations for, import or otherwise, used by the "everywhere"
	// search widening during generic re-instantiation.
	modules map[string]map[string][]*Symbol
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		moduleGlobal: make(map[string][]*Symbol),
		fileLocal:    make(map[string]map[string][]*Symbol),
		imported:     make(map[string]map[string][]*Symbol),
		modules:      make(map[string]map[string][]*Symbol),
	}
}

// Register publishes decl, declared in file belonging to moduleName,
// into the module-global and file-local layers. Declarations with no
// name (deinitializers, imports) are ignored; they're addressed through
// their owning TypeDecl instead.
func (st *SymbolTable) Register(moduleName, file string, decl ast.Stmt) {
	name, ok := DeclName(decl)
	if !ok {
		return
	}
	sym := &Symbol{Name: name, Decl: decl, Module: moduleName, File: file}

	st.moduleGlobal[name] = append(st.moduleGlobal[name], sym)

	if st.fileLocal[file] == nil {
		st.fileLocal[file] = make(map[string][]*Symbol)
	}
	st.fileLocal[file][name] = append(st.fileLocal[file][name], sym)

	if st.modules[moduleName] == nil {
		st.modules[moduleName] = make(map[string][]*Symbol)
	}
	st.modules[moduleName][name] = append(st.modules[moduleName][name], sym)
}

// Import layers decls (declarations published by some other module)
// over file's visibility, so unqualified references in that file can
// resolve to them.
func (st *SymbolTable) Import(file string, decls []*Symbol) {
	if st.imported[file] == nil {
		st.imported[file] = make(map[string][]*Symbol)
	}
	for _, sym := range decls {
		st.imported[file][sym.Name] = append(st.imported[file][sym.Name], sym)
		if st.modules[sym.Module] == nil {
			st.modules[sym.Module] = make(map[string][]*Symbol)
		}
		st.modules[sym.Module][sym.Name] = append(st.modules[sym.Module][sym.Name], sym)
	}
}

// ModuleDecls returns every declaration published under moduleName
// (used to seed Import when resolving an `import "name"`).
func (st *SymbolTable) ModuleDecls(moduleName string) []*Symbol {
	var out []*Symbol
	for _, syms := range st.modules[moduleName] {
		out = append(out, syms...)
	}
	return out
}

// FindDecls returns every declaration visible under name from file,
// layering (in order) file-local declarations, declarations imported
// into file, and the module-global layer. When everywhere is set, the
// search widens to every module this table knows about — used when
// re-checking a generic instantiation whose body may reference names
// only visible from its declaring file.
func (st *SymbolTable) FindDecls(file, name string, everywhere bool) []*Symbol {
	var out []*Symbol
	seen := make(map[*Symbol]bool)
	add := func(syms []*Symbol) {
		for _, s := range syms {
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	if local, ok := st.fileLocal[file]; ok {
		add(local[name])
	}
	if imp, ok := st.imported[file]; ok {
		add(imp[name])
	}
	add(st.moduleGlobal[name])
	if everywhere {
		for _, byName := range st.modules {
			add(byName[name])
		}
	}
	return out
}

// FindDecl returns the unique declaration visible under name from
// file, or an error if there are zero or more than one candidate.
// Overloadable kinds (functions, methods, types acting as initializers)
// are expected to be disambiguated via FindDecls + overload resolution
// instead; FindDecl is for names that must resolve to exactly one
// declaration (variables, types used as a type annotation, imports).
func (st *SymbolTable) FindDecl(file, name string) (*Symbol, bool) {
	decls := st.FindDecls(file, name, false)
	if len(decls) != 1 {
		return nil, false
	}
	return decls[0], true
}
