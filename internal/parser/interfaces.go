package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// parseInterfaceDecl parses `interface Name { field: Type; func m(...) -> T; ... }`.
// Interface bodies declare required fields and method signatures only — no
// bodies, no init/deinit.
func (p *Parser) parseInterfaceDecl() ast.Stmt {
	tok := p.cur()
	p.advance() // consume 'interface'

	name := p.expectIdent()
	if name == nil {
		return nil
	}
	decl := &ast.InterfaceDecl{Token: tok, Name: name}

	if !p.expect(token.LBRACE) {
		return nil
	}
	p.skipNewlines()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		if p.curIs(token.FUNC) {
			sig := p.parseMethodSig()
			if sig != nil {
				decl.Methods = append(decl.Methods, sig)
			}
		} else if p.curIs(token.IDENT) {
			f := p.parseFieldDecl()
			if f != nil {
				decl.Fields = append(decl.Fields, f)
			}
		} else {
			p.errorf(ErrUnexpectedToken, "unexpected token in interface body: %s", p.cur().Type)
			p.synchronize()
		}
		p.skipNewlines()
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return decl
}

// parseMethodSig parses `func name(params) [-> Type]` with no body.
func (p *Parser) parseMethodSig() *ast.MethodSig {
	tok := p.cur()
	p.advance() // consume 'func'
	name := p.expectIdent()
	if name == nil {
		return nil
	}
	sig := &ast.MethodSig{Token: tok, Name: name}
	sig.Params = p.parseParamList()
	if p.curIs(token.ARROW) {
		p.advance()
		sig.ReturnType = p.parseTypeExpr()
		if sig.ReturnType == nil {
			return nil
		}
	}
	p.consumeTerminator()
	return sig
}
