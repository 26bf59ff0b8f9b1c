package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// parseTypeDecl parses a class or struct declaration. The two share a
// grammar production (generic params, optional parent/interface list,
// fields, init/deinit, methods); isStruct only changes the keyword
// consumed and TypeDecl.IsStruct.
//
//	(class|struct) Name [<GP>] [: Parent[, Iface, ...]] { members }
func (p *Parser) parseTypeDecl(isStruct bool) ast.Stmt {
	tok := p.cur()
	p.advance() // consume 'class'/'struct'

	name := p.expectIdent()
	if name == nil {
		return nil
	}

	decl := &ast.TypeDecl{Token: tok, Name: name, IsStruct: isStruct}
	decl.GenericParams = p.parseGenericParams()

	if p.curIs(token.COLON) {
		p.advance()
		first := p.parseTypeExpr()
		if first == nil {
			return nil
		}
		// The first base named is the parent class; struct declarations
		// never have one, so a struct's base list is all interfaces.
		if !isStruct {
			decl.Parent = first
		} else {
			decl.Interfaces = append(decl.Interfaces, first)
		}
		for p.curIs(token.COMMA) {
			p.advance()
			iface := p.parseTypeExpr()
			if iface == nil {
				return nil
			}
			decl.Interfaces = append(decl.Interfaces, iface)
		}
	}

	if !p.expect(token.LBRACE) {
		return nil
	}
	p.skipNewlines()

	selfType := &ast.TypeExpr{Token: name.Token, Name: name.Name}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		switch {
		case p.curIs(token.FUNC), p.curIs(token.MUTATING), p.curIs(token.EXTERN):
			m := p.parseFuncDecl(selfType)
			fn, ok := m.(*ast.FuncDecl)
			switch {
			case !ok || fn == nil:
			case fn.IsInit:
				decl.Init = fn
			case fn.IsDeinit:
				decl.Deinit = fn
			default:
				decl.Methods = append(decl.Methods, fn)
			}
		case p.curIs(token.MUTABLE), p.curIs(token.IDENT):
			f := p.parseFieldDecl()
			if f != nil {
				decl.Fields = append(decl.Fields, f)
			}
		default:
			p.errorf(ErrUnexpectedToken, "unexpected token in %s body: %s", tok.Type, p.cur().Type)
			p.synchronize()
		}
		p.skipNewlines()
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return decl
}

// parseFieldDecl parses `[mutable] name: Type`.
func (p *Parser) parseFieldDecl() *ast.FieldDecl {
	tok := p.cur()
	mutable := false
	if p.curIs(token.MUTABLE) {
		mutable = true
		p.advance()
	}
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
	p.consumeTerminator()
	return &ast.FieldDecl{Token: tok, Name: name, Type: ty, Mutable: mutable}
}
