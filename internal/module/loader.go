package module

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/internal/parser"
	"github.com/ferrite-lang/ferritec/internal/semantic"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// SourceExt is the canonical Ferrite source file extension tried when
// resolving an import path that doesn't already carry an extension.
const SourceExt = ".fe"

// Loader resolves `import "name"` declarations against an ordered list
// of search-path roots (spec.md §6) and drives C2 (lexer) and C5
// (parser) over every file reachable from an entry module, publishing
// declarations into a shared SymbolTable (C6) as they're parsed.
type Loader struct {
	SearchPaths []string
	Pool        *types.Pool
	Symbols     *semantic.SymbolTable
	Files       *source.Registry

	modules map[string]*Module
}

// NewLoader creates a Loader over a fresh Pool and SymbolTable, ready
// to parse an entry module and everything it transitively imports.
func NewLoader(searchPaths []string) *Loader {
	return &Loader{
		SearchPaths: searchPaths,
		Pool:        types.NewPool(),
		Symbols:     semantic.NewSymbolTable(),
		Files:       source.NewRegistry(),
		modules:     make(map[string]*Module),
	}
}

// Modules returns every module this Loader has parsed or registered so
// far, in no particular order — used by a driver that wants to
// type-check an entry module and everything it transitively imports,
// not just the entry module's own files.
func (l *Loader) Modules() []*Module {
	out := make([]*Module, 0, len(l.modules))
	for _, m := range l.modules {
		out = append(out, m)
	}
	return out
}

// RegisterHeader installs a ".h" header module's declarations directly
// — the caller-supplied ExternDecls seed spec.md §6 describes for
// C-header FFI. name should end in ".h"; overload resolution's
// tie-breaker (§4.3) inspects exactly that suffix.
func (l *Loader) RegisterHeader(name string, decls []ast.Stmt) *Module {
	m := newModule(name)
	m.Header = true
	for _, d := range decls {
		l.Symbols.Register(name, name+"#extern", d)
	}
	l.modules[name] = m
	return m
}

// ParseModule resolves name to a source file under one of l.SearchPaths
// (trying the bare name, then name+SourceExt), parses it and every
// module it imports, and publishes every declaration into l.Symbols.
// A previously loaded module (by name) is returned from cache.
func (l *Loader) ParseModule(name string) (*Module, []*source.Diagnostic, error) {
	if m, ok := l.modules[name]; ok {
		return m, nil, nil
	}
	if strings.HasSuffix(name, ".h") {
		return nil, nil, fmt.Errorf("header module %q was not registered via RegisterHeader", name)
	}

	path, err := l.resolvePath(name)
	if err != nil {
		return nil, nil, err
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading module %q: %w", name, err)
	}

	m := newModule(name)
	l.modules[name] = m // published before recursing, so import cycles resolve instead of looping forever

	sf, diags, err := l.parseFile(name, path, string(contents))
	if err != nil {
		return nil, diags, err
	}
	m.Files = append(m.Files, sf)

	for _, imp := range sf.Program.Imports {
		impDiags, err := l.resolveImport(path, sf.Path, imp)
		diags = append(diags, impDiags...)
		if err != nil {
			return m, diags, err
		}
	}
	return m, diags, nil
}

// resolveImport loads imp.Path (if not already loaded) and layers its
// published declarations over file's import visibility.
func (l *Loader) resolveImport(entryPath, file string, imp *ast.ImportDecl) ([]*source.Diagnostic, error) {
	if strings.HasSuffix(imp.Path, ".h") {
		if _, ok := l.modules[imp.Path]; !ok {
			return nil, fmt.Errorf("header module %q was not registered via RegisterHeader", imp.Path)
		}
		l.Symbols.Import(file, l.Symbols.ModuleDecls(imp.Path))
		return nil, nil
	}
	imported, diags, err := l.ParseModule(imp.Path)
	if err != nil {
		return diags, fmt.Errorf("importing %q: %w", imp.Path, err)
	}
	l.Symbols.Import(file, l.Symbols.ModuleDecls(imported.Name))
	return diags, nil
}

// resolvePath finds the on-disk file backing module name under
// l.SearchPaths, trying name as given first, then name+SourceExt.
func (l *Loader) resolvePath(name string) (string, error) {
	candidates := []string{name, name + SourceExt}
	for _, root := range l.SearchPaths {
		for _, c := range candidates {
			p := filepath.Join(root, c)
			if _, err := os.Stat(p); err == nil {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("module %q not found in search path %v", name, l.SearchPaths)
}

// parseFile drives the lexer and parser over contents, registering its
// top-level declarations into l.Symbols under moduleName and its raw
// text into l.Files for caret diagnostics.
func (l *Loader) parseFile(moduleName, path, contents string) (*SourceFile, []*source.Diagnostic, error) {
	l.Files.Add(path, contents)

	lx := lexer.New(contents)
	p := parser.New(lx)
	prog := p.ParseProgram()

	var diags []*source.Diagnostic
	for _, e := range p.Errors() {
		if e.Warning {
			diags = append(diags, source.Warnf(path, e.Pos, "%s", e.Message))
		} else {
			diags = append(diags, source.Errorf(path, e.Pos, "%s", e.Message))
		}
	}

	for _, d := range prog.Decls {
		l.Symbols.Register(moduleName, path, d)
	}

	return &SourceFile{Path: path, Program: prog}, diags, nil
}

// ParseFile is the single-file entry point: it parses contents as its
// own one-file module named name, with no import resolution.
func (l *Loader) ParseFile(name, contents string) (*Module, []*source.Diagnostic) {
	m := newModule(name)
	l.modules[name] = m
	sf, diags, _ := l.parseFile(name, name, contents)
	m.Files = append(m.Files, sf)
	return m, diags
}
