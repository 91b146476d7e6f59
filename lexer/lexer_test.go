package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, t := range toks {
		ks[i] = t.Kind
	}
	return ks
}

func TestLexBasicExpr(t *testing.T) {
	toks, err := Lex("let x = 2 + 3 * 4")
	require.NoError(t, err)
	assert.Equal(t, []Kind{Keyword, Ident, Op, Number, Op, Number, Op, Number, Semicolon, EOF}, kinds(toks))
}

func TestAutomaticSemicolons(t *testing.T) {
	toks, err := Lex("let x = 1\nlet y = 2\n")
	require.NoError(t, err)
	var semis int
	for _, tk := range toks {
		if tk.Kind == Semicolon {
			semis++
		}
	}
	assert.Equal(t, 2, semis)
}

func TestNoSemicolonAfterOperator(t *testing.T) {
	toks, err := Lex("let x = 1 +\n2")
	require.NoError(t, err)
	for _, tk := range toks {
		assert.NotEqual(t, Semicolon, tk.Kind, "a newline after '+' must not become a semicolon")
	}
}

func TestInterpolatedString(t *testing.T) {
	toks, err := Lex(`"hi {name}!"`)
	require.NoError(t, err)
	require.Len(t, toks, 2)
	require.Equal(t, InterpStr, toks[0].Kind)
	require.Len(t, toks[0].Parts, 3)
	assert.False(t, toks[0].Parts[0].IsVar)
	assert.Equal(t, "hi ", toks[0].Parts[0].Text)
	assert.True(t, toks[0].Parts[1].IsVar)
	assert.Equal(t, "name", toks[0].Parts[1].Text)
	assert.False(t, toks[0].Parts[2].IsVar)
	assert.Equal(t, "!", toks[0].Parts[2].Text)
}

func TestStringEscapes(t *testing.T) {
	toks, err := Lex(`"a\nb\tc\{d\}"`)
	require.NoError(t, err)
	require.Equal(t, Str, toks[0].Kind)
	assert.Equal(t, "a\nb\tc{d}", toks[0].Text)
}

func TestUnterminatedString(t *testing.T) {
	_, err := Lex(`"abc`)
	require.Error(t, err)
}

func TestNewlineInsideStringIsError(t *testing.T) {
	_, err := Lex("\"abc\ndef\"")
	require.Error(t, err)
}

func TestBadEscape(t *testing.T) {
	_, err := Lex(`"\q"`)
	require.Error(t, err)
}

func TestLoneAmpersand(t *testing.T) {
	_, err := Lex("a & b")
	require.Error(t, err)
}

func TestCompoundAssignOperators(t *testing.T) {
	toks, err := Lex("x += 1")
	require.NoError(t, err)
	assert.Equal(t, "+=", toks[1].Text)
}

func TestComment(t *testing.T) {
	toks, err := Lex("let x = 1 # a comment\nlet y = 2")
	require.NoError(t, err)
	var semis int
	for _, tk := range toks {
		if tk.Kind == Semicolon {
			semis++
		}
	}
	assert.Equal(t, 2, semis)
}
