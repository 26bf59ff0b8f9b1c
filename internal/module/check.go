package module

import (
	"github.com/ferrite-lang/ferritec/internal/semantic"
	"github.com/ferrite-lang/ferritec/internal/source"
	"github.com/ferrite-lang/ferritec/internal/types"
)

// Check runs C7 (the type checker) over every file of m, which must
// already have been loaded (and, transitively, its imports) via a
// Loader so pool/symbols carry every declaration m's files can see.
func Check(pool *types.Pool, symbols *semantic.SymbolTable, m *Module) []*source.Diagnostic {
	var diags []*source.Diagnostic
	for _, f := range m.Files {
		c := semantic.NewChecker(pool, symbols)
		c.CheckFile(m.Name, f.Path, f.Program)
		for _, e := range c.Errors() {
			if e.Warning {
				diags = append(diags, source.Warnf(f.Path, e.Pos, "%s", e.Message))
			} else {
				diags = append(diags, source.Errorf(f.Path, e.Pos, "%s", e.Message))
			}
		}
	}
	return diags
}
