// Package escape implements the five-entry escape map quoted strings use in
// both directions: \\ \r \n \t \" while tokenizing, and their inverse while
// encoding a string that needs quoting.
package escape

import "strings"

// Valid reports whether c is a recognized second character of a "\" escape.
func Valid(c byte) bool {
	switch c {
	case '\\', 'r', 'n', 't', '"':
		return true
	default:
		return false
	}
}

func unescapeByte(c byte) byte {
	switch c {
	case 'r':
		return '\r'
	case 'n':
		return '\n'
	case 't':
		return '\t'
	default:
		return c // '\\' and '"' map to themselves
	}
}

// Unescape reverses Escape. The lexer has already rejected any invalid
// escape sequence by the time the parser calls this, so it never fails on
// input that passed tokenization.
func Unescape(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' && i+1 < len(s) {
			i++
			b.WriteByte(unescapeByte(s[i]))
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func escapeByte(c byte) (byte, bool) {
	switch c {
	case '\\':
		return '\\', true
	case '\r':
		return 'r', true
	case '\n':
		return 'n', true
	case '\t':
		return 't', true
	case '"':
		return '"', true
	default:
		return 0, false
	}
}

// Escape applies the escape map to s so it can be embedded between quotes.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if r, ok := escapeByte(c); ok {
			b.WriteByte('\\')
			b.WriteByte(r)
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
