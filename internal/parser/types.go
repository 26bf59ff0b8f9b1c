package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// parseTypeExpr parses a type annotation:
//
//	[mutable] [ '[' [size] ']' ] Name [ '<' Args '>' ] [ '*' | '&' ]
func (p *Parser) parseTypeExpr() *ast.TypeExpr {
	tok := p.cur()
	te := &ast.TypeExpr{Token: tok}

	if p.curIs(token.MUTABLE) {
		te.Mutable = true
		p.advance()
	}

	if p.curIs(token.LBRACKET) {
		te.IsArray = true
		p.advance()
		if p.curIs(token.INT) {
			n := p.parseIntLit().(*ast.IntLit)
			size := int(n.Value)
			te.ArraySize = &size
		}
		if !p.expect(token.RBRACKET) {
			return nil
		}
	}

	if !p.curIs(token.IDENT) {
		p.errorf(ErrExpectedType, "expected type name, got %s", p.cur().Type)
		return nil
	}
	te.Name = p.cur().Literal
	p.advance()

	if p.curIs(token.LT) && p.curLessThanMightOpenGenerics() {
		p.advance()
		for {
			arg := p.parseTypeExpr()
			if arg == nil {
				return nil
			}
			te.Args = append(te.Args, arg)
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
		if !p.expect(token.GT) {
			return nil
		}
	}

	if p.curIs(token.STAR) {
		te.Pointer = true
		p.advance()
	} else if p.curIs(token.AMP) {
		te.Reference = true
		p.advance()
	}

	return te
}

// parseGenericParams parses `<Name[: Constraint], ...>` generic parameter
// lists on func/class/struct/interface declarations.
func (p *Parser) parseGenericParams() []*ast.GenericParam {
	if !p.curIs(token.LT) {
		return nil
	}
	p.advance()
	var params []*ast.GenericParam
	for {
		if !p.curIs(token.IDENT) {
			p.errorf(ErrExpectedIdent, "expected generic parameter name, got %s", p.cur().Type)
			return nil
		}
		gp := &ast.GenericParam{Token: p.cur(), Name: p.cur().Literal}
		p.advance()
		if p.curIs(token.COLON) {
			p.advance()
			gp.Constraint = p.parseTypeExpr()
		}
		params = append(params, gp)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.GT) {
		return nil
	}
	return params
}

// parseParamList parses `(name: Type, ...)`.
func (p *Parser) parseParamList() []*ast.Param {
	if !p.expect(token.LPAREN) {
		return nil
	}
	var params []*ast.Param
	for !p.curIs(token.RPAREN) {
		name := p.expectIdent()
		if name == nil {
			return nil
		}
		if !p.expect(token.COLON) {
			return nil
		}
		ty := p.parseTypeExpr()
		if ty == nil {
			return nil
		}
		params = append(params, &ast.Param{Token: name.Token, Name: name, Type: ty})
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return params
}
