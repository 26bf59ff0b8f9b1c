package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// parseVarDecl parses `let|var|const name[: Type] = value` or
// `var name: Type = uninitialized`. `let`/`const` always require a value;
// `var` may be left uninitialized, and declares a mutable binding unless
// followed by `mutable` is irrelevant here — mutability of the value
// itself (for pointee/field mutation) is carried on the type, not the
// binding keyword.
func (p *Parser) parseVarDecl() ast.Stmt {
	tok := p.cur()
	keyword := tok.Type
	p.advance()

	name := p.expectIdent()
	if name == nil {
		return nil
	}

	decl := &ast.VarDecl{Token: tok, Keyword: keyword, Name: name}

	if p.curIs(token.COLON) {
		p.advance()
		decl.Type = p.parseTypeExpr()
		if decl.Type == nil {
			return nil
		}
	}

	if !p.expect(token.ASSIGN) {
		return nil
	}

	if p.curIs(token.UNINITIALIZED) {
		if keyword != token.VAR {
			p.errorf(ErrInvalidSyntax, "only 'var' declarations may be left uninitialized")
		}
		decl.Uninitialized = true
		p.advance()
	} else {
		decl.Value = p.parseExpression(LOWEST)
		if decl.Value == nil {
			return nil
		}
	}

	p.consumeTerminator()
	return decl
}
