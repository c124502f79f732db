// ==============================================================================================
// FILE: token/token_test.go
// ==============================================================================================

package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIdent(t *testing.T) {
	cases := map[string]TokenType{
		"if":           IF,
		"namespace":    NAMESPACE,
		"system.print": SYSTEM_PRINT,
		"system.len":   SYSTEM_LEN,
		"add":          ADD,
		"notakeyword":  IDENT,
		"file.read":    IDENT, // not one of the seven dedicated tags (§4.1 design note)
	}
	for input, want := range cases {
		assert.Equalf(t, want, LookupIdent(input), "LookupIdent(%q)", input)
	}
}

func TestIsWordOperator(t *testing.T) {
	for _, tt := range []TokenType{ADD, SUB, MUL, DIV, MOD} {
		assert.True(t, IsWordOperator(tt))
	}
	for _, tt := range []TokenType{IF, PLUS, IDENT} {
		assert.False(t, IsWordOperator(tt))
	}
}
