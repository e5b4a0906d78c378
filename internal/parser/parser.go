// Package parser implements the recursive-descent walk of a Wexpr token
// stream: it dispatches on each token's kind, maintains the intra-document
// reference table, and honors container-reuse (merge) semantics against a
// caller-supplied prepopulated root.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/wexpr/wexpr/internal/base64x"
	"github.com/wexpr/wexpr/internal/codecerr"
	"github.com/wexpr/wexpr/internal/escape"
	"github.com/wexpr/wexpr/internal/lexer"
	"github.com/wexpr/wexpr/internal/token"
	"github.com/wexpr/wexpr/internal/utf8x"
	"github.com/wexpr/wexpr/types"
)

func fail(offset, length int, msg string) error {
	return errors.WithStack(codecerr.New(offset, length, msg))
}

type refEntry struct {
	definedAt int
	value     types.Value
}

type state struct {
	source   string
	tokens   []token.Token
	pos      int
	refs     map[string]refEntry
	warnings []codecerr.Warning
}

// Parse tokenizes and parses source, merging into prepopulated (which may
// be nil) when the document's top-level value is a map or array. It
// returns the parsed value, any warnings accumulated along the way, and
// the first fatal lexical or syntactic error encountered.
func Parse(source string, prepopulated types.Value) (types.Value, []codecerr.Warning, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, nil, err
	}

	st := &state{source: source, tokens: toks, refs: make(map[string]refEntry)}

	tok, ok := st.next()
	if !ok {
		return nil, st.warnings, fail(len(source), 1, "Syntax Error: File ended unexpectedly")
	}

	v, err := st.parseValue(tok, prepopulated)
	if err != nil {
		return nil, st.warnings, err
	}

	if st.pos < len(st.tokens) {
		return nil, st.warnings, fail(st.tokens[st.pos].ByteOffset, 1, "Syntax Error: Garbage at end of file")
	}

	return v, st.warnings, nil
}

func (st *state) peek() (token.Token, bool) {
	if st.pos >= len(st.tokens) {
		return token.Token{}, false
	}
	return st.tokens[st.pos], true
}

func (st *state) next() (token.Token, bool) {
	t, ok := st.peek()
	if ok {
		st.pos++
	}
	return t, ok
}

func (st *state) unexpectedEOF() error {
	return fail(len(st.source), 1, "Syntax Error: File ended unexpectedly")
}

func (st *state) parseValue(tok token.Token, prepopulated types.Value) (types.Value, error) {
	switch tok.Kind {
	case token.String:
		inner := tok.Lexeme[1 : len(tok.Lexeme)-1]
		return types.NewString(escape.Unescape(inner)), nil

	case token.Number:
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, fail(tok.ByteOffset, len(tok.Lexeme), "Syntax Error: Invalid number literal.")
		}
		return types.NewNumber(n), nil

	case token.Word:
		switch tok.Lexeme {
		case "true":
			return types.NewBool(true), nil
		case "false":
			return types.NewBool(false), nil
		case "nil", "null":
			return types.NewNull(), nil
		default:
			return types.NewString(tok.Lexeme), nil
		}

	case token.Binary:
		payload := tok.Lexeme[1 : len(tok.Lexeme)-1]
		return types.NewBinary(base64x.Decode(payload)), nil

	case token.Reference:
		ident := tok.Lexeme[2 : len(tok.Lexeme)-1]
		entry, ok := st.refs[ident]
		if !ok {
			return nil, fail(tok.ByteOffset, len(tok.Lexeme),
				fmt.Sprintf("Syntax Error: Reference [%s] is undefined.", ident))
		}
		return entry.value, nil

	case token.ReferenceDef:
		ident := strings.TrimSpace(tok.Lexeme[1 : len(tok.Lexeme)-1])

		valueTok, ok := st.next()
		if !ok {
			return nil, st.unexpectedEOF()
		}
		v, err := st.parseValue(valueTok, nil)
		if err != nil {
			return nil, err
		}

		if prior, exists := st.refs[ident]; exists {
			st.warnings = append(st.warnings,
				codecerr.Warning{Offset: tok.ByteOffset, Msg: fmt.Sprintf("Warning: Redefinition of reference [%s].", ident)},
				codecerr.Warning{Offset: prior.definedAt, Msg: fmt.Sprintf("Warning: Prior definition of reference [%s] was here.", ident)},
			)
		}
		st.refs[ident] = refEntry{definedAt: tok.ByteOffset, value: v}
		return v, nil

	case token.MapOpen:
		return st.parseMap(prepopulated)

	case token.ArrayOpen:
		return st.parseArray(prepopulated)

	case token.CloseScope:
		return nil, fail(tok.ByteOffset, 1, "Syntax Error: Unexpected close of scope.")

	default:
		return nil, fail(tok.ByteOffset, 1, "Syntax Error: Unexpected token.")
	}
}

func (st *state) parseMap(prepopulated types.Value) (types.Value, error) {
	m := types.Map{}
	if prepopulated != nil && prepopulated.Kind() == types.KindMap {
		for k, v := range prepopulated.Map() {
			m[k] = v
		}
	}

	for {
		keyTok, ok := st.next()
		if !ok {
			return nil, st.unexpectedEOF()
		}
		if keyTok.Kind == token.CloseScope {
			break
		}

		// "[name] value" in key position: name is the entry's key, and the
		// value is registered as reference [name].
		if keyTok.Kind == token.ReferenceDef {
			v, err := st.parseValue(keyTok, nil)
			if err != nil {
				return nil, err
			}
			m[types.StringKey(strings.TrimSpace(keyTok.Lexeme[1:len(keyTok.Lexeme)-1]))] = v
			continue
		}

		key, err := st.parseMapKey(keyTok)
		if err != nil {
			return nil, err
		}

		valTok, ok := st.next()
		if !ok {
			return nil, st.unexpectedEOF()
		}
		if valTok.Kind == token.CloseScope {
			return nil, fail(valTok.ByteOffset, 1, "Syntax Error: Expected a value but instead found end of scope.")
		}

		reuse := containerToReuse(valTok.Kind, m[key])
		v, err := st.parseValue(valTok, reuse)
		if err != nil {
			return nil, err
		}
		m[key] = v
	}

	return types.NewMapFrom(m), nil
}

func (st *state) parseMapKey(keyTok token.Token) (types.MapKey, error) {
	switch keyTok.Kind {
	case token.Word:
		return types.StringKey(keyTok.Lexeme), nil
	case token.Number:
		n, err := strconv.ParseFloat(keyTok.Lexeme, 64)
		if err != nil {
			return types.MapKey{}, fail(keyTok.ByteOffset, len(keyTok.Lexeme), "Syntax Error: Invalid number literal.")
		}
		return types.NumberKey(n), nil
	case token.String:
		inner := keyTok.Lexeme[1 : len(keyTok.Lexeme)-1]
		unescaped := escape.Unescape(inner)
		if !utf8x.ValidString(unescaped) {
			return types.MapKey{}, fail(keyTok.ByteOffset, len(keyTok.Lexeme), "Syntax Error: Map key is not valid UTF-8.")
		}
		return types.StringKey(unescaped), nil
	default:
		return types.MapKey{}, fail(keyTok.ByteOffset, 1,
			fmt.Sprintf("Syntax Error: Expected map key as word, number, or string but instead found %s.", keyTok.Kind))
	}
}

func (st *state) parseArray(prepopulated types.Value) (types.Value, error) {
	var arr types.Array
	if prepopulated != nil && prepopulated.Kind() == types.KindArray {
		src := prepopulated.Array()
		arr = make(types.Array, len(src))
		copy(arr, src)
	}

	idx := 0
	for {
		valTok, ok := st.next()
		if !ok {
			return nil, st.unexpectedEOF()
		}
		if valTok.Kind == token.CloseScope {
			break
		}

		var existing types.Value
		if idx < len(arr) {
			existing = arr[idx]
		}
		reuse := containerToReuse(valTok.Kind, existing)

		v, err := st.parseValue(valTok, reuse)
		if err != nil {
			return nil, err
		}

		if idx < len(arr) {
			arr[idx] = v
		} else {
			arr = append(arr, v)
		}
		idx++
	}

	return types.NewArrayFrom(arr), nil
}

// containerToReuse returns existing when the about-to-be-parsed token opens
// a container of the same kind existing already holds, implementing the
// merge-not-replace rule for values parsed against a prepopulated root. A
// nil existing, or a kind mismatch, means the new value should simply win.
func containerToReuse(valueKind token.Kind, existing types.Value) types.Value {
	if existing == nil {
		return nil
	}
	switch valueKind {
	case token.MapOpen:
		if existing.Kind() == types.KindMap {
			return existing
		}
	case token.ArrayOpen:
		if existing.Kind() == types.KindArray {
			return existing
		}
	}
	return nil
}
