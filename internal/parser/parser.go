package parser

import (
	"fmt"

	"github.com/ferrite-lang/ferritec/internal/ast"
	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/pkg/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN   // = += -= *= /= %= &= |= ^= <<= >>=
	RANGE    // ..
	LOGICOR  // ||
	LOGICAND // &&
	BITOR    // |
	BITXOR   // ^
	BITAND   // &
	EQUALITY // == !=
	RELATION // < > <= >=
	SHIFT    // << >>
	SUM      // + -
	PRODUCT  // * / %
	PREFIX   // -x !x ~x &x *x
	CALL     // f(...), f<T>(...)
	INDEX    // a[i]
	MEMBER   // a.b
)

var precedences = map[token.Type]int{
	token.ASSIGN:    ASSIGN,
	token.PLUS_EQ:   ASSIGN,
	token.MINUS_EQ:  ASSIGN,
	token.STAR_EQ:   ASSIGN,
	token.SLASH_EQ:  ASSIGN,
	token.PERCENT_EQ: ASSIGN,
	token.AMP_EQ:    ASSIGN,
	token.PIPE_EQ:   ASSIGN,
	token.CARET_EQ:  ASSIGN,
	token.SHL_EQ:    ASSIGN,
	token.SHR_EQ:    ASSIGN,
	token.AND_AND_EQ: ASSIGN,
	token.OR_OR_EQ:  ASSIGN,
	token.DOTDOT:    RANGE,
	token.ELLIPSIS:  RANGE,
	token.OR_OR:     LOGICOR,
	token.AND_AND:   LOGICAND,
	token.PIPE:      BITOR,
	token.CARET:     BITXOR,
	token.AMP:       BITAND,
	token.EQ:        EQUALITY,
	token.NE:        EQUALITY,
	token.LT:        RELATION,
	token.GT:        RELATION,
	token.LE:        RELATION,
	token.GE:        RELATION,
	token.SHL:       SHIFT,
	token.SHR:       SHIFT,
	token.PLUS:      SUM,
	token.MINUS:     SUM,
	token.STAR:      PRODUCT,
	token.SLASH:     PRODUCT,
	token.PERCENT:   PRODUCT,
	token.LPAREN:    CALL,
	token.LBRACKET:  INDEX,
	token.DOT:       MEMBER,
	token.BANG:      INDEX, // postfix unwrap `e!` binds as tightly as subscript/call
}

// assignOps is the set of token types that are assignment operators.
var assignOps = map[token.Type]bool{
	token.ASSIGN: true, token.PLUS_EQ: true, token.MINUS_EQ: true, token.STAR_EQ: true,
	token.SLASH_EQ: true, token.PERCENT_EQ: true, token.AMP_EQ: true, token.PIPE_EQ: true,
	token.CARET_EQ: true, token.SHL_EQ: true, token.SHR_EQ: true,
	token.AND_AND_EQ: true, token.OR_OR_EQ: true,
}

type prefixParseFn func() ast.Expr
type infixParseFn func(ast.Expr) ast.Expr

// Parser turns a token stream into an *ast.Program.
type Parser struct {
	cursor         *TokenCursor
	ctx            *ParseContext
	prefixParseFns map[token.Type]prefixParseFn
	infixParseFns  map[token.Type]infixParseFn
	errors         []*ParserError

	// disableTerminatorLatch turns off the mixed-terminator-style warning,
	// for tooling (like `ferritec fmt`) that intentionally normalizes style.
	disableTerminatorLatch bool
}

// New creates a Parser reading from l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		cursor: NewTokenCursor(l),
		ctx:    NewParseContext(),
	}
	p.prefixParseFns = make(map[token.Type]prefixParseFn)
	p.infixParseFns = make(map[token.Type]infixParseFn)
	p.registerExpressionParsers()
	return p
}

// DisableTerminatorWarnings turns off mismatched-statement-terminator
// warnings (used by the formatter, which rewrites terminator style anyway).
func (p *Parser) DisableTerminatorWarnings() { p.disableTerminatorLatch = true }

// Errors returns accumulated parse errors and warnings.
func (p *Parser) Errors() []*ParserError { return p.errors }

func (p *Parser) cur() token.Token  { return p.cursor.Current() }
func (p *Parser) peek() token.Token { return p.cursor.Peek(1) }

func (p *Parser) advance() { p.cursor = p.cursor.Advance() }

func (p *Parser) curIs(t token.Type) bool  { return p.cursor.Is(t) }
func (p *Parser) peekIs(t token.Type) bool { return p.cursor.PeekIs(1, t) }

// expect advances past the current token if it has type t, else records an
// error and leaves the cursor unchanged.
func (p *Parser) expect(t token.Type) bool {
	if p.curIs(t) {
		p.advance()
		return true
	}
	p.errorf(ErrUnexpectedToken, "expected %s, got %s", t, p.cur().Type)
	return false
}

func (p *Parser) errorf(code, format string, args ...interface{}) {
	p.errors = append(p.errors, NewParserError(p.cur().Pos, fmt.Sprintf(format, args...), code))
}

func (p *Parser) warnf(code, format string, args ...interface{}) {
	p.errors = append(p.errors, &ParserError{
		Message: fmt.Sprintf(format, args...), Code: code, Pos: p.cur().Pos, Warning: true,
	})
}

func getPrecedence(t token.Type) int {
	if prec, ok := precedences[t]; ok {
		return prec
	}
	return LOWEST
}

// expectIdent consumes an identifier token and returns it as *ast.Ident, or
// nil with an error recorded.
func (p *Parser) expectIdent() *ast.Ident {
	if !p.curIs(token.IDENT) {
		p.errorf(ErrExpectedIdent, "expected identifier, got %s", p.cur().Type)
		return nil
	}
	tok := p.cur()
	p.advance()
	return &ast.Ident{Token: tok, Name: tok.Literal}
}

// skipNewlines consumes any run of significant NEWLINE tokens, used between
// declarations at file/block scope where blank lines are not meaningful.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.advance()
	}
}

// consumeTerminator consumes one statement terminator: a NEWLINE, a ';', or
// the lookahead of a closing '}' (which itself terminates the preceding
// statement without being consumed). It latches the file's terminator style
// on the first explicit terminator seen and warns on a later mismatch.
func (p *Parser) consumeTerminator() {
	switch {
	case p.curIs(token.NEWLINE):
		p.latch(TerminatorNewline)
		for p.curIs(token.NEWLINE) {
			p.advance()
		}
	case p.curIs(token.SEMICOLON):
		p.latch(TerminatorSemicolon)
		p.advance()
		p.skipNewlines()
	case p.curIs(token.RBRACE), p.curIs(token.EOF):
		// statement ends at a block/file boundary; nothing to consume
	default:
		p.errorf(ErrMissingTerminator, "expected end of statement, got %s", p.cur().Type)
	}
}

func (p *Parser) latch(style TerminatorStyle) {
	if p.disableTerminatorLatch {
		return
	}
	if !p.ctx.LatchTerminator(style) {
		name := "newline"
		if style == TerminatorSemicolon {
			name = "semicolon"
		}
		p.warnf(ErrMixedTerminatorStyle, "statement terminated with %s, but file uses the other style", name)
	}
}

// ParseExpression parses a single standalone expression, the REPL
// entry point named in spec.md §6 (module.ParseExpression wraps this
// with lexer construction and diagnostic conversion).
func (p *Parser) ParseExpression() ast.Expr {
	return p.parseExpression(LOWEST)
}

// ParseProgram parses a full source file.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for p.curIs(token.IMPORT) {
		if imp := p.parseImportDecl(); imp != nil {
			prog.Imports = append(prog.Imports, imp)
		}
		p.skipNewlines()
	}
	for !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) {
			p.advance()
			continue
		}
		stmt := p.parseTopLevelDecl()
		if stmt != nil {
			prog.Decls = append(prog.Decls, stmt)
		} else {
			p.synchronize()
		}
	}
	return prog
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	tok := p.cur()
	p.advance()
	if !p.curIs(token.STRING) {
		p.errorf(ErrExpectedIdent, "expected string path after import, got %s", p.cur().Type)
		return nil
	}
	path := p.cur().Literal
	p.advance()
	p.consumeTerminator()
	return &ast.ImportDecl{Token: tok, Path: path}
}

// parseTopLevelDecl parses one of: func, class, struct, interface, var/let/const.
func (p *Parser) parseTopLevelDecl() ast.Stmt {
	switch p.cur().Type {
	case token.FUNC, token.EXTERN, token.MUTATING:
		return p.parseFuncDecl(nil)
	case token.CLASS:
		return p.parseTypeDecl(false)
	case token.STRUCT:
		return p.parseTypeDecl(true)
	case token.INTERFACE:
		return p.parseInterfaceDecl()
	case token.LET, token.VAR, token.CONST:
		return p.parseVarDecl()
	default:
		return p.parseStatement()
	}
}

// synchronize advances past tokens until a likely declaration/statement
// boundary, so a single parse error doesn't cascade through the rest of the
// file.
func (p *Parser) synchronize() {
	for !p.curIs(token.EOF) {
		if p.curIs(token.NEWLINE) || p.curIs(token.SEMICOLON) {
			p.advance()
			return
		}
		switch p.cur().Type {
		case token.FUNC, token.CLASS, token.STRUCT, token.INTERFACE,
			token.LET, token.VAR, token.CONST, token.IF, token.WHILE, token.FOR,
			token.SWITCH, token.RETURN, token.RBRACE:
			return
		}
		p.advance()
	}
}
