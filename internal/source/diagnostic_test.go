package source

import (
	"strings"
	"testing"

	"github.com/ferrite-lang/ferritec/pkg/token"
)

func TestDiagnostic_Error(t *testing.T) {
	tests := []struct {
		name        string
		diag        *Diagnostic
		wantContain []string
	}{
		{
			name: "error severity",
			diag: Errorf("test.fe", token.Position{Line: 3, Column: 7}, "undefined variable %q", "x"),
			wantContain: []string{
				"test.fe:3:7",
				"error:",
				`undefined variable "x"`,
			},
		},
		{
			name: "warning severity",
			diag: Warnf("test.fe", token.Position{Line: 1, Column: 1}, "mismatched statement terminator"),
			wantContain: []string{
				"test.fe:1:1",
				"warning:",
				"mismatched statement terminator",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.diag.Error()
			for _, want := range tt.wantContain {
				if !strings.Contains(got, want) {
					t.Errorf("Error() = %q, want substring %q", got, want)
				}
			}
		})
	}
}

func TestSeverity_String(t *testing.T) {
	if got := SeverityError.String(); got != "error" {
		t.Errorf("SeverityError.String() = %q, want %q", got, "error")
	}
	if got := SeverityWarning.String(); got != "warning" {
		t.Errorf("SeverityWarning.String() = %q, want %q", got, "warning")
	}
}

func TestDiagnostic_Render(t *testing.T) {
	files := NewRegistry()
	files.Add("test.fe", "let x = 1\nlet y = x +\n")

	d := Errorf("test.fe", token.Position{Line: 2, Column: 12}, "unexpected end of expression")
	got := d.Render(files)

	wantContain := []string{
		"test.fe:2:12",
		"error",
		"unexpected end of expression",
		"let y = x +",
		"^",
	}
	for _, want := range wantContain {
		if !strings.Contains(got, want) {
			t.Errorf("Render() output missing %q, got:\n%s", want, got)
		}
	}

	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("Render() produced %d lines, want 3 (message, source, caret): %q", len(lines), got)
	}
	caretCol := strings.Index(lines[2], "^")
	if caretCol != d.Pos.Column-1 {
		t.Errorf("caret at column %d, want %d", caretCol, d.Pos.Column-1)
	}
}

func TestDiagnostic_RenderUnregisteredFile(t *testing.T) {
	files := NewRegistry()
	d := Errorf("missing.fe", token.Position{Line: 1, Column: 1}, "boom")
	got := d.Render(files)

	if !strings.Contains(got, "missing.fe:1:1") {
		t.Errorf("Render() = %q, want the message line even without a registered file", got)
	}
	if strings.Count(got, "\n") != 1 {
		t.Errorf("Render() without a registered file should stop after the message line, got:\n%s", got)
	}
}

func TestRenderAll(t *testing.T) {
	files := NewRegistry()
	files.Add("a.fe", "let x = 1\n")

	ds := []*Diagnostic{
		Errorf("a.fe", token.Position{Line: 1, Column: 1}, "first"),
		Warnf("a.fe", token.Position{Line: 1, Column: 5}, "second"),
	}
	got := RenderAll(ds, files)

	if !strings.Contains(got, "first") || !strings.Contains(got, "second") {
		t.Errorf("RenderAll() missing one of the diagnostics: %q", got)
	}
	if !strings.Contains(got, "\n\n") {
		t.Errorf("RenderAll() should separate diagnostics with a blank line, got %q", got)
	}
}

func TestRenderAll_Empty(t *testing.T) {
	if got := RenderAll(nil, NewRegistry()); got != "" {
		t.Errorf("RenderAll(nil) = %q, want empty string", got)
	}
}
