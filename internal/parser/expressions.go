package parser

import (
	"strconv"
	"strings"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

func (p *Parser) registerExpressionParsers() {
	p.prefixParseFns[token.IDENT] = p.parseIdent
	p.prefixParseFns[token.INT] = p.parseIntLit
	p.prefixParseFns[token.FLOAT] = p.parseFloatLit
	p.prefixParseFns[token.STRING] = p.parseStringLit
	p.prefixParseFns[token.CHAR] = p.parseCharLit
	p.prefixParseFns[token.TRUE] = p.parseBoolLit
	p.prefixParseFns[token.FALSE] = p.parseBoolLit
	p.prefixParseFns[token.NULL] = p.parseNullLit
	p.prefixParseFns[token.THIS] = p.parseThisExpr
	p.prefixParseFns[token.LPAREN] = p.parseGroupedOrTupleExpr
	p.prefixParseFns[token.CAST] = p.parseCastExpr
	p.prefixParseFns[token.MINUS] = p.parsePrefixExpr
	p.prefixParseFns[token.BANG] = p.parsePrefixExpr
	p.prefixParseFns[token.TILDE] = p.parsePrefixExpr
	p.prefixParseFns[token.AMP] = p.parsePrefixExpr
	p.prefixParseFns[token.STAR] = p.parsePrefixExpr
	p.prefixParseFns[token.LBRACKET] = p.parseArrayLit

	infix := p.parseBinaryExpr
	for _, t := range []token.Type{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.AMP, token.PIPE, token.CARET, token.AND_AND, token.OR_OR,
		token.SHL, token.SHR, token.EQ, token.NE, token.LT, token.GT, token.LE, token.GE,
	} {
		p.infixParseFns[t] = infix
	}
	for t := range assignOps {
		p.infixParseFns[t] = p.parseAssignExpr
	}
	p.infixParseFns[token.DOTDOT] = p.parseRangeExpr
	p.infixParseFns[token.ELLIPSIS] = p.parseRangeExpr
	p.infixParseFns[token.DOT] = p.parseMemberExpr
	p.infixParseFns[token.LPAREN] = p.parseCallExpr
	p.infixParseFns[token.LBRACKET] = p.parseSubscriptExpr
	p.infixParseFns[token.BANG] = p.parseUnwrapExpr
}

// parseExpression is the Pratt-parser entry point: parse a prefix
// expression, then fold in infix operators whose precedence exceeds
// minPrec. Also handles the generic-call form `f<T>(...)`, which needs a
// speculative parse since `f < T` alone is also a valid comparison.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	prefix, ok := p.prefixParseFns[p.cur().Type]
	if !ok {
		p.errorf(ErrNoPrefixParse, "no prefix parse function for %s", p.cur().Type)
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for {
		if p.curIs(token.LT) && p.curLessThanMightOpenGenerics() {
			left = p.tryParseGenericCall(left)
			if left == nil {
				return nil
			}
			continue
		}
		prec := getPrecedence(p.cur().Type)
		if minPrec >= prec {
			break
		}
		infix, ok := p.infixParseFns[p.cur().Type]
		if !ok {
			break
		}
		left = infix(left)
	}
	return left
}

// curLessThanMightOpenGenerics applies the whitespace disambiguation rule
// from spec.md §4.2/§9: a '<' can open a generic-argument list as long as
// there is no whitespace on at least one side of it - either tight
// against the callee ("f<T>(...)") or tight against what follows it
// ("f <T>(...)"). Only when whitespace surrounds both sides is '<' taken
// unconditionally as the comparison operator. Callers still confirm the
// guess by requiring a matching '>' directly followed by '(', and roll
// back via tryParseGenericCall otherwise.
func (p *Parser) curLessThanMightOpenGenerics() bool {
	return !p.cur().SpaceBefore || !p.peek().SpaceBefore
}

// tryParseGenericCall speculatively parses `<T, U>(args)` following a
// callee expression. On failure it rewinds the cursor and the caller falls
// back to treating '<' as the less-than operator.
func (p *Parser) tryParseGenericCall(callee ast.Expr) ast.Expr {
	mark := p.cursor.Mark()
	errCount := len(p.errors)
	tok := p.cur()
	p.advance() // consume '<'

	var args []*ast.TypeExpr
	for !p.curIs(token.GT) {
		te := p.parseTypeExpr()
		if te == nil {
			p.cursor = p.cursor.ResetTo(mark)
			p.errors = p.errors[:errCount]
			return p.continueAsComparison(callee)
		}
		args = append(args, te)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.curIs(token.GT) || !p.peekIs(token.LPAREN) {
		p.cursor = p.cursor.ResetTo(mark)
		p.errors = p.errors[:errCount]
		return p.continueAsComparison(callee)
	}
	p.advance() // consume '>'
	call := p.parseCallExpr(callee).(*ast.CallExpr)
	call.GenericArgs = args
	call.Token = tok
	return call
}

// continueAsComparison re-parses '<' as the less-than binary operator
// after a failed generic-call speculation.
func (p *Parser) continueAsComparison(left ast.Expr) ast.Expr {
	return p.parseBinaryExpr(left)
}

func (p *Parser) parseIdent() ast.Expr {
	tok := p.cur()
	p.advance()
	return &ast.Ident{Token: tok, Name: tok.Literal}
}

func (p *Parser) parseIntLit() ast.Expr {
	tok := p.cur()
	lit := strings.ReplaceAll(tok.Literal, "_", "")
	var v int64
	var err error
	switch {
	case strings.HasPrefix(lit, "0x") || strings.HasPrefix(lit, "0X"):
		v, err = strconv.ParseInt(lit[2:], 16, 64)
	case strings.HasPrefix(lit, "0b") || strings.HasPrefix(lit, "0B"):
		v, err = strconv.ParseInt(lit[2:], 2, 64)
	default:
		v, err = strconv.ParseInt(lit, 10, 64)
	}
	p.advance()
	// ParseInt fails when the value does not fit in 64 bits, or when a
	// bare "0x"/"0b" prefix has no digits (the lexer has already
	// reported that one). Per spec.md §4.1 overflow is a type error, not
	// a syntax error: both cases are marked Overflow and left to the
	// checker instead of aborting the file here.
	if err != nil {
		return &ast.IntLit{Token: tok, Overflow: true}
	}
	return &ast.IntLit{Token: tok, Value: v}
}

func (p *Parser) parseFloatLit() ast.Expr {
	tok := p.cur()
	v, err := strconv.ParseFloat(tok.Literal, 64)
	if err != nil {
		p.errorf(ErrInvalidSyntax, "invalid float literal %q", tok.Literal)
	}
	p.advance()
	return &ast.FloatLit{Token: tok, Value: v}
}

func (p *Parser) parseStringLit() ast.Expr {
	tok := p.cur()
	p.advance()
	return &ast.StringLit{Token: tok, Value: tok.Literal}
}

func (p *Parser) parseCharLit() ast.Expr {
	tok := p.cur()
	p.advance()
	var r rune
	for _, c := range tok.Literal {
		r = c
		break
	}
	return &ast.CharLit{Token: tok, Value: r}
}

func (p *Parser) parseBoolLit() ast.Expr {
	tok := p.cur()
	p.advance()
	return &ast.BoolLit{Token: tok, Value: tok.Type == token.TRUE}
}

func (p *Parser) parseNullLit() ast.Expr {
	tok := p.cur()
	p.advance()
	return &ast.NullLit{Token: tok}
}

func (p *Parser) parseThisExpr() ast.Expr {
	tok := p.cur()
	p.advance()
	return &ast.ThisExpr{Token: tok}
}

// parseGroupedOrTupleExpr parses `(expr)` or `(a, b, ...)`. A single
// element with no trailing comma is a GroupedExpr; anything else (zero
// elements, more than one, or a trailing comma) is a TupleExpr.
func (p *Parser) parseGroupedOrTupleExpr() ast.Expr {
	tok := p.cur()
	p.advance() // consume '('
	if p.curIs(token.RPAREN) {
		p.advance()
		return &ast.TupleExpr{Token: tok}
	}
	first := p.parseExpression(LOWEST)
	if first == nil {
		return nil
	}
	if p.curIs(token.RPAREN) {
		p.advance()
		return &ast.GroupedExpr{Token: tok, Inner: first}
	}
	elems := []ast.Expr{first}
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RPAREN) {
			break
		}
		e := p.parseExpression(LOWEST)
		if e == nil {
			return nil
		}
		elems = append(elems, e)
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.TupleExpr{Token: tok, Elems: elems}
}

// parseCastExpr parses `cast<Type>(value)`.
func (p *Parser) parseCastExpr() ast.Expr {
	tok := p.cur()
	p.advance() // consume 'cast'
	if !p.expect(token.LT) {
		return nil
	}
	target := p.parseTypeExpr()
	if target == nil {
		return nil
	}
	if !p.expect(token.GT) {
		return nil
	}
	if !p.expect(token.LPAREN) {
		return nil
	}
	value := p.parseExpression(LOWEST)
	if value == nil {
		return nil
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.CastExpr{Token: tok, Target: target, Value: value}
}

func (p *Parser) parsePrefixExpr() ast.Expr {
	tok := p.cur()
	op := tok.Literal
	p.advance()
	operand := p.parseExpression(PREFIX)
	if operand == nil {
		return nil
	}
	return ast.NewPrefixExpr(op, operand, tok)
}

func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	tok := p.cur()
	op := tok.Literal
	prec := getPrecedence(tok.Type)
	p.advance()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return ast.NewBinaryExpr(op, left, right, tok)
}

func (p *Parser) parseAssignExpr(left ast.Expr) ast.Expr {
	tok := p.cur()
	op := tok.Type
	p.advance()
	value := p.parseExpression(ASSIGN - 1)
	if value == nil {
		return nil
	}
	return &ast.AssignExpr{Token: tok, Target: left, Op: op, Value: value}
}

func (p *Parser) parseRangeExpr(left ast.Expr) ast.Expr {
	tok := p.cur()
	inclusive := tok.Type == token.ELLIPSIS
	p.advance()
	high := p.parseExpression(RANGE)
	if high == nil {
		return nil
	}
	return &ast.RangeExpr{Token: tok, Low: left, High: high, Inclusive: inclusive}
}

// parseUnwrapExpr parses the postfix `e!` unwrap operator.
func (p *Parser) parseUnwrapExpr(left ast.Expr) ast.Expr {
	tok := p.cur()
	p.advance() // consume '!'
	return &ast.UnwrapExpr{Token: tok, Value: left}
}

// parseArrayLit parses `[e0, e1, ...]`.
func (p *Parser) parseArrayLit() ast.Expr {
	tok := p.cur()
	p.advance() // consume '['
	lit := &ast.ArrayLit{Token: tok}
	if p.curIs(token.RBRACKET) {
		p.advance()
		return lit
	}
	for {
		e := p.parseExpression(LOWEST)
		if e == nil {
			return nil
		}
		lit.Elems = append(lit.Elems, e)
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return lit
}

func (p *Parser) parseMemberExpr(left ast.Expr) ast.Expr {
	tok := p.cur()
	p.advance() // consume '.'
	name := p.expectIdent()
	if name == nil {
		return nil
	}
	return &ast.MemberExpr{Token: tok, Recv: left, Name: name.Name}
}

func (p *Parser) parseCallExpr(callee ast.Expr) ast.Expr {
	tok := p.cur()
	p.advance() // consume '('
	var args []*ast.Arg
	if !p.curIs(token.RPAREN) {
		for {
			a := p.parseArg()
			if a == nil {
				return nil
			}
			args = append(args, a)
			if p.curIs(token.COMMA) {
				p.advance()
				continue
			}
			break
		}
	}
	if !p.expect(token.RPAREN) {
		return nil
	}
	return &ast.CallExpr{Token: tok, Callee: callee, Args: args}
}

// parseArg parses one call argument: `(ident ':')? expr`, per spec.md
// §4.3 step 5's named-argument matching. The `ident ':'` prefix is only
// recognized when an identifier is immediately followed by ':' - a bare
// expression that happens to start with an identifier falls through to
// the normal expression parse.
func (p *Parser) parseArg() *ast.Arg {
	if p.curIs(token.IDENT) && p.peekIs(token.COLON) {
		nameTok := p.cur()
		p.advance() // consume identifier
		p.advance() // consume ':'
		v := p.parseExpression(LOWEST)
		if v == nil {
			return nil
		}
		return &ast.Arg{Name: nameTok.Literal, NamePos: nameTok.Pos, Value: v}
	}
	v := p.parseExpression(LOWEST)
	if v == nil {
		return nil
	}
	return &ast.Arg{Value: v}
}

func (p *Parser) parseSubscriptExpr(recv ast.Expr) ast.Expr {
	tok := p.cur()
	p.advance() // consume '['
	idx := p.parseExpression(LOWEST)
	if idx == nil {
		return nil
	}
	if !p.expect(token.RBRACKET) {
		return nil
	}
	return ast.NewSubscriptExpr(recv, idx, tok)
}
