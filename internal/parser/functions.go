package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// operatorTokens are the token types that can follow `func` as the name of
// an operator-overload declaration (e.g. `func +(other: T) -> T`).
var operatorTokens = map[token.Type]bool{
	token.PLUS: true, token.MINUS: true, token.STAR: true, token.SLASH: true,
	token.PERCENT: true, token.AMP: true, token.PIPE: true, token.CARET: true,
	token.AND_AND: true, token.OR_OR: true, token.SHL: true, token.SHR: true,
	token.EQ: true, token.NE: true, token.LT: true, token.GT: true, token.LE: true, token.GE: true,
}

// parseFuncDecl parses a function, method, init, or deinit declaration.
// receiver is non-nil when parsing a method inside a class/struct body.
//
//	[mutating] func name [<GP>] (params) [-> Type] body
//	[mutating] func init(params) body
//	[mutating] func deinit() body
//	extern func name(params) [-> Type]
//	func <op>(params) -> Type        // binary operator overload
//	func prefix <op>(params) -> Type // prefix operator overload
//	func [](params) -> Type          // subscript operator overload
func (p *Parser) parseFuncDecl(receiver *ast.TypeExpr) ast.Stmt {
	fn := &ast.FuncDecl{Receiver: receiver}

	if p.curIs(token.EXTERN) {
		fn.IsExternal = true
		p.advance()
	}
	if p.curIs(token.MUTATING) {
		fn.IsMutating = true
		p.advance()
	}

	fn.Token = p.cur()
	if !p.expect(token.FUNC) {
		return nil
	}

	switch {
	case p.curIs(token.INIT):
		fn.IsInit = true
		fn.Name = &ast.Ident{Token: p.cur(), Name: "init"}
		p.advance()
	case p.curIs(token.DEINIT):
		fn.IsDeinit = true
		fn.Name = &ast.Ident{Token: p.cur(), Name: "deinit"}
		p.advance()
	case p.curIs(token.LBRACKET) && p.peekIs(token.RBRACKET):
		tok := p.cur()
		p.advance()
		p.advance()
		fn.IsOperator = true
		fn.Name = &ast.Ident{Token: tok, Name: "[]"}
	case p.curIsPrefixOperatorSpelling():
		fn.IsOperator = true
		tok := p.cur()
		opTok := p.peek()
		fn.Name = &ast.Ident{Token: tok, Name: "prefix " + opTok.Literal}
		p.advance()
		p.advance()
	case p.curIs(token.IDENT):
		fn.Name = p.expectIdent()
	case operatorTokens[p.cur().Type]:
		fn.IsOperator = true
		tok := p.cur()
		fn.Name = &ast.Ident{Token: tok, Name: tok.Literal}
		p.advance()
	default:
		p.errorf(ErrExpectedIdent, "expected function name or operator spelling, got %s", p.cur().Type)
		return nil
	}
	if fn.Name == nil {
		return nil
	}

	if !fn.IsInit && !fn.IsDeinit {
		fn.GenericParams = p.parseGenericParams()
	}

	fn.Params = p.parseParamList()

	if p.curIs(token.ARROW) {
		p.advance()
		fn.ReturnType = p.parseTypeExpr()
		if fn.ReturnType == nil {
			return nil
		}
	}

	if fn.IsExternal {
		p.consumeTerminator()
		return fn
	}

	fn.Body = p.parseBlockStmt()
	if fn.Body == nil {
		return nil
	}
	return fn
}

// curIsPrefixOperatorSpelling reports whether the cursor is at the
// contextual "prefix" identifier directly followed by a unary operator
// token, the spelling used to declare a prefix operator overload (e.g.
// `func prefix -(...)`). "prefix" is not a reserved keyword; it is
// recognized only in this position.
func (p *Parser) curIsPrefixOperatorSpelling() bool {
	if !p.curIs(token.IDENT) || p.cur().Literal != "prefix" {
		return false
	}
	switch p.peek().Type {
	case token.MINUS, token.BANG, token.TILDE, token.AMP, token.STAR:
		return true
	default:
		return false
	}
}
