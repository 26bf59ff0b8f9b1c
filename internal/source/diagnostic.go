// Package source owns the raw bytes of input files and renders
// Diagnostics (errors/warnings from the lexer, parser, and checker)
// in the `<file>:<line>:<column>: error: <message>` caret format, with
// severity keywords colorized when fatih/color's default detection
// allows it. That detection checks whether stdout, not stderr, is a
// terminal.
package source

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/ferrite-lang/ferritec/pkg/token"
)

// Severity classifies a Diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is the single carrier type for every error/warning the
// front-end raises: lex, syntax, type, name, and semantic. Each
// subsystem builds one with Errorf/Warnf rather than an ad hoc
// fmt.Errorf string, so every diagnostic is guaranteed a file and
// position.
type Diagnostic struct {
	File     string
	Pos      token.Position
	Severity Severity
	Message  string
}

func Errorf(file string, pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{File: file, Pos: pos, Severity: SeverityError, Message: fmt.Sprintf(format, args...)}
}

func Warnf(file string, pos token.Position, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{File: file, Pos: pos, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)}
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.File, d.Pos.Line, d.Pos.Column, d.Severity, d.Message)
}

var (
	errorTag = color.New(color.FgRed, color.Bold).SprintFunc()
	warnTag  = color.New(color.FgYellow, color.Bold).SprintFunc()
	caretTag = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Render formats d against the file registered in files (a *Registry),
// including the offending source line and a caret underneath. Severity
// keywords are colorized unless fatih/color's NoColor is set; by default
// it is set when stdout is not a terminal, whatever stderr is.
func (d *Diagnostic) Render(files *Registry) string {
	var b strings.Builder
	tag := errorTag(d.Severity.String())
	if d.Severity == SeverityWarning {
		tag = warnTag(d.Severity.String())
	}
	fmt.Fprintf(&b, "%s:%d:%d: %s: %s\n", d.File, d.Pos.Line, d.Pos.Column, tag, d.Message)

	line, ok := files.Line(d.File, d.Pos.Line)
	if !ok {
		return b.String()
	}
	b.WriteString(line)
	b.WriteString("\n")
	col := d.Pos.Column
	if col < 1 {
		col = 1
	}
	b.WriteString(strings.Repeat(" ", col-1))
	b.WriteString(caretTag("^"))
	return b.String()
}

// RenderAll renders every diagnostic in ds, separated by blank lines.
func RenderAll(ds []*Diagnostic, files *Registry) string {
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.Render(files)
	}
	return strings.Join(parts, "\n\n")
}
