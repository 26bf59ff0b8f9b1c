// Package module is the ambient "driver" stand-in required to exercise
// C1–C7 end-to-end without the out-of-scope interactive/linker
// collaborators spec.md §1 excludes. It owns source files, drives the
// lexer/parser over them, publishes declarations into a shared symbol
// table, resolves `import` declarations against an ordered search path,
// and runs the type checker over a fully loaded module.
package module

import (
	"github.com/google/uuid"

	"github.com/ferrite-lang/ferritec/internal/ast"
)

// SourceFile is one parsed input file belonging to a Module.
type SourceFile struct {
	Path    string
	Program *ast.Program
}

// Module owns one or more SourceFiles (C1) and, together with the
// Loader that built it, the module-global layer of the symbol table
// (C6) they publish into. Each Module is tagged with a v4 UUID at
// construction so diagnostics from independently checked modules (a
// module and the modules it imports) can be correlated without
// re-deriving identity from a file path — mirroring how a downstream
// code generator or REPL would need to key a cache of already-checked
// modules.
type Module struct {
	ID    uuid.UUID
	Name  string
	Files []*SourceFile

	// Header marks a ".h" header module: its declarations are supplied
	// directly by the caller (RegisterHeader) instead of being parsed
	// from source, modeling C-header FFI without a C parser.
	Header bool
}

func newModule(name string) *Module {
	return &Module{ID: uuid.New(), Name: name}
}
