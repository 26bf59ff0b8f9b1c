package parser

import (
	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// parseBlockStmt parses `{ stmt... }`.
func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	tok := p.cur()
	if !p.expect(token.LBRACE) {
		return nil
	}
	p.ctx.PushBlock("block", tok.Pos)
	defer p.ctx.PopBlock()

	block := &ast.BlockStmt{Token: tok}
	p.skipNewlines()
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Stmts = append(block.Stmts, stmt)
		} else {
			p.synchronize()
		}
		p.skipNewlines()
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return block
}

// parseIfStmt parses `if cond { ... } [else (if ... | { ... })]`.
func (p *Parser) parseIfStmt() ast.Stmt {
	tok := p.cur()
	p.advance() // consume 'if'
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	then := p.parseBlockStmt()
	if then == nil {
		return nil
	}
	stmt := &ast.IfStmt{Token: tok, Cond: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.advance()
		if p.curIs(token.IF) {
			stmt.Else = p.parseIfStmt()
		} else {
			stmt.Else = p.parseBlockStmt()
		}
	}
	return stmt
}

// parseWhileStmt parses `while cond { ... }`.
func (p *Parser) parseWhileStmt() ast.Stmt {
	tok := p.cur()
	p.advance()
	cond := p.parseExpression(LOWEST)
	if cond == nil {
		return nil
	}
	body := p.parseBlockStmt()
	if body == nil {
		return nil
	}
	return &ast.WhileStmt{Token: tok, Cond: cond, Body: body}
}

// parseForStmt parses `for name in iterable { ... }`.
func (p *Parser) parseForStmt() ast.Stmt {
	tok := p.cur()
	p.advance()
	name := p.expectIdent()
	if name == nil {
		return nil
	}
	if !p.expect(token.IN) {
		return nil
	}
	iterable := p.parseExpression(LOWEST)
	if iterable == nil {
		return nil
	}
	body := p.parseBlockStmt()
	if body == nil {
		return nil
	}
	return &ast.ForStmt{Token: tok, Var: name, Iterable: iterable, Body: body}
}

// parseSwitchStmt parses:
//
//	switch subject {
//	  case v1, v2: { ... }
//	  default: { ... }
//	}
//
// At most one default clause is allowed; a second one is a parse error.
func (p *Parser) parseSwitchStmt() ast.Stmt {
	tok := p.cur()
	p.advance()
	subject := p.parseExpression(LOWEST)
	if subject == nil {
		return nil
	}
	if !p.expect(token.LBRACE) {
		return nil
	}
	p.skipNewlines()

	stmt := &ast.SwitchStmt{Token: tok, Subject: subject}
	sawDefault := false
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		clause := p.parseCaseClause()
		if clause == nil {
			p.synchronize()
			p.skipNewlines()
			continue
		}
		if clause.Default {
			if sawDefault {
				p.errorf(ErrDuplicateDefault, "switch statement has more than one default clause")
			}
			sawDefault = true
		}
		stmt.Cases = append(stmt.Cases, clause)
		p.skipNewlines()
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	return stmt
}

func (p *Parser) parseCaseClause() *ast.CaseClause {
	tok := p.cur()
	clause := &ast.CaseClause{Token: tok}
	switch {
	case p.curIs(token.DEFAULT):
		clause.Default = true
		p.advance()
	case p.curIs(token.CASE):
		p.advance()
		for {
			v := p.parseExpression(LOWEST)
			if v == nil {
				return nil
			}
			clause.Values = append(clause.Values, v)
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	default:
		p.errorf(ErrUnexpectedToken, "expected 'case' or 'default', got %s", p.cur().Type)
		return nil
	}
	if !p.expect(token.COLON) {
		return nil
	}
	clause.Body = p.parseBlockStmt()
	if clause.Body == nil {
		return nil
	}
	return clause
}

func (p *Parser) parseBreakStmt() ast.Stmt {
	tok := p.cur()
	p.advance()
	p.consumeTerminator()
	return &ast.BreakStmt{Token: tok}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	tok := p.cur()
	p.advance()
	stmt := &ast.ReturnStmt{Token: tok}
	if !p.curIs(token.NEWLINE) && !p.curIs(token.SEMICOLON) && !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt.Value = p.parseExpression(LOWEST)
		if stmt.Value == nil {
			return nil
		}
	}
	p.consumeTerminator()
	return stmt
}

func (p *Parser) parseDeferStmt() ast.Stmt {
	tok := p.cur()
	p.advance()
	call := p.parseExpression(LOWEST)
	if call == nil {
		return nil
	}
	p.consumeTerminator()
	return &ast.DeferStmt{Token: tok, Call: call}
}
