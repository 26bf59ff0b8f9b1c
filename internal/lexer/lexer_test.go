package lexer_test

import (
	"testing"

	"github.com/ferrite-lang/ferritec/internal/lexer"
	"github.com/ferrite-lang/ferritec/pkg/token"
	"github.com/stretchr/testify/require"
)

func collectTypes(t *testing.T, src string) []token.Type {
	t.Helper()
	l := lexer.New(src)
	var types []token.Type
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
		types = append(types, tok.Type)
	}
	return types
}

func TestNextToken_Keywords(t *testing.T) {
	types := collectTypes(t, "let x = 1")
	require.Equal(t, []token.Type{token.LET, token.IDENT, token.ASSIGN, token.INT}, types)
}

func TestNextToken_CaseSensitiveKeywords(t *testing.T) {
	// "Let" is not a keyword: Ferrite is case sensitive, unlike the
	// Pascal-descended teacher language.
	types := collectTypes(t, "Let")
	require.Equal(t, []token.Type{token.IDENT}, types)
}

func TestNextToken_Operators(t *testing.T) {
	types := collectTypes(t, "a <= b >= c == d != e && f || g << h >> i")
	require.Equal(t, []token.Type{
		token.IDENT, token.LE, token.IDENT, token.GE, token.IDENT, token.EQ,
		token.IDENT, token.NE, token.IDENT, token.AND_AND, token.IDENT,
		token.OR_OR, token.IDENT, token.SHL, token.IDENT, token.SHR, token.IDENT,
	}, types)
}

func TestNextToken_PointerAndReferenceTypeSpellings(t *testing.T) {
	l := lexer.New("T* T&")
	tok := l.NextToken()
	require.Equal(t, token.IDENT, tok.Type)
	star := l.NextToken()
	require.Equal(t, token.STAR, star.Type)
	require.False(t, star.SpaceBefore)
}

func TestNextToken_GenericsWhitespaceHint(t *testing.T) {
	// No space before '<' and no space after: plausible generic open.
	l := lexer.New("Box<T>")
	_ = l.NextToken() // Box
	lt := l.NextToken()
	require.Equal(t, token.LT, lt.Type)
	require.False(t, lt.SpaceBefore)
}

func TestNextToken_Strings(t *testing.T) {
	l := lexer.New(`"hello\nworld"`)
	tok := l.NextToken()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "hello\nworld", tok.Literal)
}

func TestNextToken_StringEscapes(t *testing.T) {
	l := lexer.New(`"\a\b\n\r\t\v\"\\"`)
	tok := l.NextToken()
	require.Equal(t, token.STRING, tok.Type)
	require.Equal(t, "\a\b\n\r\t\v\"\\", tok.Literal)
	require.Empty(t, l.Errors())
}

func TestNextToken_UnknownEscapeReportsError(t *testing.T) {
	l := lexer.New(`"\q"`)
	l.NextToken()
	require.NotEmpty(t, l.Errors())
}

func TestNextToken_Numbers(t *testing.T) {
	cases := map[string]token.Type{
		"123":   token.INT,
		"0xFF":  token.INT,
		"0b101": token.INT,
		"1.5":   token.FLOAT,
		"1e10":  token.FLOAT,
	}
	for src, want := range cases {
		l := lexer.New(src)
		tok := l.NextToken()
		require.Equalf(t, want, tok.Type, "source %q", src)
	}
}

func TestNextToken_NewlineIsSignificant(t *testing.T) {
	types := collectTypes(t, "let x = 1\nlet y = 2")
	require.Contains(t, types, token.NEWLINE)
}

func TestNextToken_UnterminatedStringReportsError(t *testing.T) {
	l := lexer.New(`"unterminated`)
	l.NextToken()
	require.NotEmpty(t, l.Errors())
}

func TestPeek_DoesNotConsume(t *testing.T) {
	l := lexer.New("a b c")
	peeked := l.Peek(1)
	require.Equal(t, "b", peeked.Literal)
	first := l.NextToken()
	require.Equal(t, "a", first.Literal)
}

func TestSaveRestoreState_Backtracks(t *testing.T) {
	l := lexer.New("a b c")
	state := l.SaveState()
	_ = l.NextToken()
	_ = l.NextToken()
	l.RestoreState(state)
	tok := l.NextToken()
	require.Equal(t, "a", tok.Literal)
}

func TestNew_StripsBOM(t *testing.T) {
	l := lexer.New("\xEF\xBB\xBFlet")
	tok := l.NextToken()
	require.Equal(t, token.LET, tok.Type)
	require.Equal(t, 1, tok.Pos.Column)
}
