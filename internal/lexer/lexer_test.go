package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wexpr/wexpr/internal/lexer"
	"github.com/wexpr/wexpr/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeBasics(t *testing.T) {
	toks, err := lexer.Tokenize(`@( a 1 -2.5 "s" <aGk=> #(1 2) *[x] [y] true )`)
	require.NoError(t, err)
	require.Equal(t, []token.Kind{
		token.MapOpen, token.Word, token.Number, token.Number, token.String,
		token.Binary, token.ArrayOpen, token.Number, token.Number, token.CloseScope,
		token.Reference, token.ReferenceDef, token.Word, token.CloseScope,
	}, kinds(toks))
}

func TestTokenizeDiscardsCommentsAndWhitespace(t *testing.T) {
	toks, err := lexer.Tokenize("a ; line comment\nb ;(--block--) c")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c"}, lexemes(toks))
}

func lexemes(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Lexeme
	}
	return out
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	_, err := lexer.Tokenize(";(-- never closed")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Unterminated block comment")
}

func TestTokenizeUnknownToken(t *testing.T) {
	// a lone "#" not followed by "(" matches no rule: word excludes it,
	// and array_open requires the "#(" pair.
	_, err := lexer.Tokenize("a # b")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Syntax error: Unknown token")
}

func TestTokenizeInvalidEscape(t *testing.T) {
	_, err := lexer.Tokenize(`"asdf \a"`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Syntax Error: Invalid escape sequence in string.")
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, err := lexer.Tokenize(`"unterminated`)
	require.Error(t, err)
	require.Contains(t, err.Error(), "File ended unexpectedly")
}

func TestTokenizeReferenceRequiresIdent(t *testing.T) {
	// a lone "*" matches no rule: it's excluded from word characters and
	// isn't followed by "[ident]", so it's an unknown token.
	_, err := lexer.Tokenize("*")
	require.Error(t, err)
	require.Contains(t, err.Error(), "Syntax error: Unknown token")
}

func TestIsWord(t *testing.T) {
	require.True(t, lexer.IsWord("hello"))
	require.True(t, lexer.IsWord("true"))
	require.False(t, lexer.IsWord(""))
	require.False(t, lexer.IsWord("has space"))
	require.False(t, lexer.IsWord("has)paren"))
	require.False(t, lexer.IsWord("a[b"))
}
