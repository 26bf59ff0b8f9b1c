package module

import "testing"

func TestCheck_NoErrors(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main", "let x = 1 + 2\n")

	l := NewLoader([]string{dir})
	m, diags, err := l.ParseModule("main")
	if err != nil {
		t.Fatalf("ParseModule returned error: %v", err)
	}
	if len(diags) != 0 {
		t.Fatalf("ParseModule returned unexpected diagnostics: %v", diags)
	}

	checkDiags := Check(l.Pool, l.Symbols, m)
	if len(checkDiags) != 0 {
		t.Errorf("Check() = %v, want no diagnostics", checkDiags)
	}
}

func TestCheck_TypeError(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "main", "var x: String = 1\n")

	l := NewLoader([]string{dir})
	m, _, err := l.ParseModule("main")
	if err != nil {
		t.Fatalf("ParseModule returned error: %v", err)
	}

	checkDiags := Check(l.Pool, l.Symbols, m)
	if len(checkDiags) == 0 {
		t.Fatal("Check() should report a type mismatch")
	}
	if checkDiags[0].File != m.Files[0].Path {
		t.Errorf("diagnostic File = %q, want %q", checkDiags[0].File, m.Files[0].Path)
	}
}

func TestCheck_AcrossImport(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "geometry", "func area(side: Int) -> Int {\n  return side * side\n}\n")
	writeModule(t, dir, "main", "import \"geometry\"\nlet a = area(3)\n")

	l := NewLoader([]string{dir})
	m, _, err := l.ParseModule("main")
	if err != nil {
		t.Fatalf("ParseModule returned error: %v", err)
	}

	// Check only walks m's own files; geometry must be checked separately
	// as its own Module for a complete multi-file diagnostic sweep, the
	// way the `check` CLI command calls Check once per loaded module.
	checkDiags := Check(l.Pool, l.Symbols, m)
	if len(checkDiags) != 0 {
		t.Errorf("Check(main) = %v, want no diagnostics", checkDiags)
	}
}
