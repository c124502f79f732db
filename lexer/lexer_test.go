// ==============================================================================================
// FILE: lexer/lexer_test.go
// ==============================================================================================
// PURPOSE: Validates that the Lexer produces the expected token stream for every
//          tokenization rule in the language spec (§4.1).
// ==============================================================================================

package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Hrpavi7/SharpScript/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `&insert x = 10;
const name = "Amogh";
flag = true;
pi = 3.14;
`
	expected := []struct {
		typ     token.TokenType
		literal string
	}{
		{token.INSERT, "&insert"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.NUMBER, "10"},
		{token.SEMI, ";"},
		{token.CONST, "const"},
		{token.IDENT, "name"},
		{token.ASSIGN, "="},
		{token.STRING, "Amogh"},
		{token.SEMI, ";"},
		{token.IDENT, "flag"},
		{token.ASSIGN, "="},
		{token.TRUE, "true"},
		{token.SEMI, ";"},
		{token.IDENT, "pi"},
		{token.ASSIGN, "="},
		{token.NUMBER, "3.14"},
		{token.SEMI, ";"},
		{token.EOF, ""},
	}
	runLexerTest(t, input, expected)
}

func TestNextTokenOperators(t *testing.T) {
	input := `+ - * / % == != < <= > >= && || ! ++ -- += -= *= /= %= =>`
	expected := []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.LT_EQ, token.GT, token.GT_EQ,
		token.AND, token.OR, token.BANG, token.INC, token.DEC,
		token.PLUS_EQ, token.MINUS_EQ, token.ASTERISK_EQ, token.SLASH_EQ, token.PERCENT_EQ,
		token.ARROW, token.EOF,
	}
	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		assert.Equalf(t, want, tok.Type, "token %d", i)
	}
}

func TestDottedIdentifierLexesAsSingleToken(t *testing.T) {
	l := New("system.print(x)")
	tok := l.NextToken()
	assert.Equal(t, token.SYSTEM_PRINT, tok.Type)
	assert.Equal(t, "system.print", tok.Literal)

	l2 := New("file.read(p)")
	tok2 := l2.NextToken()
	assert.Equal(t, token.IDENT, tok2.Type)
	assert.Equal(t, "file.read", tok2.Literal)
}

func TestCommentVersusIncludeDirective(t *testing.T) {
	l := New("# a plain comment\nx")
	tok := l.NextToken()
	assert.Equal(t, token.IDENT, tok.Type)
	assert.Equal(t, "x", tok.Literal)

	l2 := New(`#include "util.sharp"`)
	tok2 := l2.NextToken()
	assert.Equal(t, token.INCLUDE, tok2.Type)
	assert.Equal(t, "util.sharp", tok2.Literal)
}

func TestAmpersandInsertVersusBareAmpersand(t *testing.T) {
	l := New("&insert x")
	tok := l.NextToken()
	assert.Equal(t, token.INSERT, tok.Type)

	l2 := New("& x")
	tok2 := l2.NextToken()
	assert.Equal(t, token.ILLEGAL, tok2.Type)
}

func TestUnterminatedStringConsumesToEOF(t *testing.T) {
	l := New(`"unterminated`)
	tok := l.NextToken()
	assert.Equal(t, token.STRING, tok.Type)
	assert.Equal(t, "unterminated", tok.Literal)
	assert.Equal(t, token.EOF, l.NextToken().Type)
}

func runLexerTest(t *testing.T, input string, expected []struct {
	typ     token.TokenType
	literal string
}) {
	t.Helper()
	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		assert.Equalf(t, want.typ, tok.Type, "token %d type", i)
		assert.Equalf(t, want.literal, tok.Literal, "token %d literal", i)
	}
}
