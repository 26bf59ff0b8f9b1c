package module

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeModule(t *testing.T, dir, name, contents string) {
	t.Helper()
	path := filepath.Join(dir, name+SourceExt)
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestLoader_ParseModule(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main", "let x = 1\n")

	l := NewLoader([]string{dir})
	m, diags, err := l.ParseModule("main")
	if err != nil {
		t.Fatalf("ParseModule returned error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("ParseModule returned unexpected diagnostics: %v", diags)
	}
	if m.Name != "main" {
		t.Errorf("Name = %q, want %q", m.Name, "main")
	}
	if len(m.Files) != 1 {
		t.Fatalf("len(Files) = %d, want 1", len(m.Files))
	}
	if len(m.Files[0].Program.Decls) != 1 {
		t.Errorf("len(Decls) = %d, want 1", len(m.Files[0].Program.Decls))
	}

	decls := l.Symbols.ModuleDecls("main")
	if len(decls) != 1 || decls[0].Name != "x" {
		t.Errorf("ModuleDecls(main) = %v, want one Symbol named x", decls)
	}
}

func TestLoader_ParseModule_BareNameTakesPriorityOverExtension(t *testing.T) {
	dir := t.TempDir()
	// A bare-named file (no extension) should be tried before name+SourceExt.
	if err := os.WriteFile(filepath.Join(dir, "main"), []byte("let a = 1\n"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	writeModule(t, dir, "main", "let b = 2\n")

	l := NewLoader([]string{dir})
	m, _, err := l.ParseModule("main")
	if err != nil {
		t.Fatalf("ParseModule returned error: %v", err)
	}
	decls := l.Symbols.ModuleDecls(m.Name)
	if len(decls) != 1 || decls[0].Name != "a" {
		t.Errorf("expected the bare-named file to win, got decls %v", decls)
	}
}

func TestLoader_ParseModule_NotFound(t *testing.T) {
	l := NewLoader([]string{t.TempDir()})
	_, _, err := l.ParseModule("nonexistent")
	if err == nil {
		t.Fatal("expected an error for a module missing from every search path")
	}
	if !strings.Contains(err.Error(), "nonexistent") {
		t.Errorf("error message should mention the module name, got: %v", err)
	}
}

func TestLoader_ParseModule_Caching(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main", "let x = 1\n")

	l := NewLoader([]string{dir})
	first, _, err := l.ParseModule("main")
	if err != nil {
		t.Fatalf("first ParseModule returned error: %v", err)
	}
	second, diags, err := l.ParseModule("main")
	if err != nil {
		t.Fatalf("second ParseModule returned error: %v", err)
	}
	if diags != nil {
		t.Errorf("cached ParseModule should return no diagnostics, got %v", diags)
	}
	if first != second {
		t.Error("ParseModule should return the same *Module instance from cache")
	}
}

func TestLoader_ParseModule_Imports(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "geometry", "func area(side: Int) -> Int {\n  return side * side\n}\n")
	writeModule(t, dir, "main", "import \"geometry\"\nlet a = area(3)\n")

	l := NewLoader([]string{dir})
	m, diags, err := l.ParseModule("main")
	if err != nil {
		t.Fatalf("ParseModule returned error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}

	if _, ok := l.modules["geometry"]; !ok {
		t.Error("importing \"geometry\" should have loaded it into the loader's module cache")
	}

	sym, ok := l.Symbols.FindDecl(m.Files[0].Path, "area")
	if !ok {
		t.Fatal("area should be visible in main's file after import")
	}
	if sym.Module != "geometry" {
		t.Errorf("resolved area's owning module = %q, want %q", sym.Module, "geometry")
	}
}

func TestLoader_ParseModule_ImportCycle(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a", "import \"b\"\nlet x = 1\n")
	writeModule(t, dir, "b", "import \"a\"\nlet y = 2\n")

	l := NewLoader([]string{dir})
	_, _, err := l.ParseModule("a")
	if err != nil {
		t.Fatalf("mutually importing modules should resolve via the module cache, got error: %v", err)
	}
}

func TestLoader_Modules(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "geometry", "func area(side: Int) -> Int {\n  return side * side\n}\n")
	writeModule(t, dir, "main", "import \"geometry\"\nlet a = area(3)\n")

	l := NewLoader([]string{dir})
	if _, _, err := l.ParseModule("main"); err != nil {
		t.Fatalf("ParseModule returned error: %v", err)
	}

	names := make(map[string]bool)
	for _, m := range l.Modules() {
		names[m.Name] = true
	}
	if !names["main"] || !names["geometry"] {
		t.Errorf("Modules() = %v, want both main and geometry", names)
	}
}

func TestLoader_RegisterHeader(t *testing.T) {
	l := NewLoader(nil)
	m := l.RegisterHeader("stdio.h", nil)
	if !m.Header {
		t.Error("RegisterHeader should mark the module as a header")
	}

	_, _, err := l.ParseModule("stdio.h")
	if err != nil {
		t.Fatalf("ParseModule on a registered header should succeed from cache, got: %v", err)
	}
}

func TestLoader_ParseModule_UnregisteredHeaderImport(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main", "import \"stdio.h\"\nlet x = 1\n")

	l := NewLoader([]string{dir})
	_, _, err := l.ParseModule("main")
	if err == nil {
		t.Fatal("importing an unregistered .h module should fail")
	}
	if !strings.Contains(err.Error(), "stdio.h") {
		t.Errorf("error should mention the header module name, got: %v", err)
	}
}

func TestLoader_ParseFile(t *testing.T) {
	l := NewLoader(nil)
	m, diags := l.ParseFile("<stdin>", "let x = 1\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(m.Files) != 1 || len(m.Files[0].Program.Decls) != 1 {
		t.Fatalf("ParseFile should register one file with one declaration, got %+v", m.Files)
	}
}

func TestLoader_ParseFile_SyntaxError(t *testing.T) {
	l := NewLoader(nil)
	_, diags := l.ParseFile("<stdin>", "let = 1\n")
	if len(diags) == 0 {
		t.Fatal("expected at least one diagnostic for invalid syntax")
	}
}
