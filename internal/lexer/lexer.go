// Package lexer implements the single-pass Wexpr tokenizer: at each
// position the thirteen token kinds are tried in a fixed priority order,
// and the first one that matches wins.
package lexer

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/wexpr/wexpr/internal/codecerr"
	"github.com/wexpr/wexpr/internal/escape"
	"github.com/wexpr/wexpr/internal/token"
)

func fail(offset, length int, msg string) error {
	return errors.WithStack(codecerr.New(offset, length, msg))
}

// Tokenize produces the syntactic token stream for source, discarding
// whitespace, newlines, and comments along the way.
func Tokenize(source string) ([]token.Token, error) {
	var tokens []token.Token
	n := len(source)
	i := 0

	for i < n {
		c := source[i]

		// 1: whitespace
		if c == ' ' || c == '\t' {
			j := i + 1
			for j < n && (source[j] == ' ' || source[j] == '\t') {
				j++
			}
			i = j
			continue
		}

		// 2: newline
		if c == '\r' || c == '\n' {
			j := i + 1
			for j < n && (source[j] == '\r' || source[j] == '\n') {
				j++
			}
			i = j
			continue
		}

		// 3: block_comment, 4: line_comment
		if c == ';' {
			if strings.HasPrefix(source[i:], ";(--") {
				rel := strings.Index(source[i+4:], "--)")
				if rel < 0 {
					return nil, fail(i, 1, "Syntax Error: Unterminated block comment.")
				}
				i = i + 4 + rel + 3
				continue
			}
			j := i + 1
			for j < n && source[j] != '\n' {
				j++
			}
			i = j
			continue
		}

		// 5: string
		if c == '"' {
			end, err := scanString(source, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token.Token{Kind: token.String, Lexeme: source[i:end], ByteOffset: i})
			i = end
			continue
		}

		// 6: number
		if end, ok := scanNumber(source, i); ok {
			tokens = append(tokens, token.Token{Kind: token.Number, Lexeme: source[i:end], ByteOffset: i})
			i = end
			continue
		}

		// 7: word
		if end, ok := scanWord(source, i); ok {
			tokens = append(tokens, token.Token{Kind: token.Word, Lexeme: source[i:end], ByteOffset: i})
			i = end
			continue
		}

		// 8: binary
		if c == '<' {
			if end, ok := scanBinary(source, i); ok {
				tokens = append(tokens, token.Token{Kind: token.Binary, Lexeme: source[i:end], ByteOffset: i})
				i = end
				continue
			}
		}

		// 9: map_open
		if strings.HasPrefix(source[i:], "@(") {
			tokens = append(tokens, token.Token{Kind: token.MapOpen, Lexeme: "@(", ByteOffset: i})
			i += 2
			continue
		}

		// 10: array_open
		if strings.HasPrefix(source[i:], "#(") {
			tokens = append(tokens, token.Token{Kind: token.ArrayOpen, Lexeme: "#(", ByteOffset: i})
			i += 2
			continue
		}

		// 11: reference
		if c == '*' {
			if end, ok := scanReference(source, i); ok {
				tokens = append(tokens, token.Token{Kind: token.Reference, Lexeme: source[i:end], ByteOffset: i})
				i = end
				continue
			}
		}

		// 12: reference_def
		if c == '[' {
			if end, ok := scanReferenceDef(source, i); ok {
				tokens = append(tokens, token.Token{Kind: token.ReferenceDef, Lexeme: source[i:end], ByteOffset: i})
				i = end
				continue
			}
		}

		// 13: close_scope
		if c == ')' {
			tokens = append(tokens, token.Token{Kind: token.CloseScope, Lexeme: ")", ByteOffset: i})
			i++
			continue
		}

		return nil, fail(i, 1, "Syntax error: Unknown token")
	}

	return tokens, nil
}

func scanString(source string, start int) (end int, err error) {
	n := len(source)
	i := start + 1
	for {
		if i >= n {
			return 0, fail(n, 1, "Syntax Error: File ended unexpectedly")
		}
		c := source[i]
		if c == '"' {
			return i + 1, nil
		}
		if c == '\\' {
			if i+1 >= n {
				return 0, fail(n, 1, "Syntax Error: File ended unexpectedly")
			}
			if !escape.Valid(source[i+1]) {
				return 0, fail(i, 2, "Syntax Error: Invalid escape sequence in string.")
			}
			i += 2
			continue
		}
		i++
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func scanNumber(source string, start int) (end int, ok bool) {
	n := len(source)
	j := start
	if j < n && source[j] == '-' {
		j++
	}
	digitsStart := j
	for j < n && isDigit(source[j]) {
		j++
	}
	if j == digitsStart {
		return 0, false
	}
	if j < n && source[j] == '.' {
		k := j + 1
		fracStart := k
		for k < n && isDigit(source[k]) {
			k++
		}
		if k > fracStart {
			j = k
		}
	}
	return j, true
}

const wordExcluded = "<>*#@();[]"

func scanWord(source string, start int) (end int, ok bool) {
	n := len(source)
	j := start
	for j < n {
		c := source[j]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		if strings.IndexByte(wordExcluded, c) >= 0 {
			break
		}
		j++
	}
	if j == start {
		return 0, false
	}
	return j, true
}

func isBase64Char(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '+' || c == '/' || c == '=':
		return true
	default:
		return false
	}
}

func scanBinary(source string, start int) (end int, ok bool) {
	n := len(source)
	j := start + 1
	for j < n && isBase64Char(source[j]) {
		j++
	}
	if j < n && source[j] == '>' {
		return j + 1, true
	}
	return 0, false
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isIdentCont(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}

func scanReference(source string, start int) (end int, ok bool) {
	n := len(source)
	if start+1 >= n || source[start+1] != '[' {
		return 0, false
	}
	j := start + 2
	if j >= n || !isIdentStart(source[j]) {
		return 0, false
	}
	j++
	for j < n && isIdentCont(source[j]) {
		j++
	}
	if j >= n || source[j] != ']' {
		return 0, false
	}
	return j + 1, true
}

// IsWord reports whether s, taken as a whole, is exactly what a `word`
// token would lex from the same bytes — the encoder uses this to decide
// whether a string may be emitted as a bareword instead of a quoted
// string.
func IsWord(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			return false
		}
		if strings.IndexByte(wordExcluded, c) >= 0 {
			return false
		}
	}
	return true
}

func scanReferenceDef(source string, start int) (end int, ok bool) {
	n := len(source)
	j := start + 1
	for j < n && (source[j] == ' ' || source[j] == '\t') {
		j++
	}
	if j >= n || !isIdentStart(source[j]) {
		return 0, false
	}
	k := j + 1
	for k < n && isIdentCont(source[k]) {
		k++
	}
	for k < n && (source[k] == ' ' || source[k] == '\t') {
		k++
	}
	if k >= n || source[k] != ']' {
		return 0, false
	}
	return k + 1, true
}
