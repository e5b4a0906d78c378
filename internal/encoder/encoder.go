// Package encoder implements the recursive value-tree walk that renders
// Wexpr text: arrayness detection, key classification (bareword vs.
// quoted), binary forcing of string values by path, and pretty-printing
// with tab indentation.
package encoder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/wexpr/wexpr/internal/base64x"
	"github.com/wexpr/wexpr/internal/codecerr"
	"github.com/wexpr/wexpr/internal/escape"
	"github.com/wexpr/wexpr/internal/lexer"
	"github.com/wexpr/wexpr/internal/utf8x"
	"github.com/wexpr/wexpr/internal/wpath"
	"github.com/wexpr/wexpr/types"
)

// Encoder holds the warnings accumulated by the most recent Encode call.
// Like the parser's reference table, it carries no state across calls.
type Encoder struct {
	Warnings []codecerr.Warning
}

// New returns a ready-to-use Encoder.
func New() *Encoder { return &Encoder{} }

// Encode renders v as Wexpr text. binaryPaths may be nil. A nil error means
// success even when some entries were elided with a warning; the only
// fatal encode error is a non-UTF-8 map key.
func (e *Encoder) Encode(v types.Value, pretty bool, binaryPaths map[string]bool) (string, error) {
	e.Warnings = nil
	if binaryPaths == nil {
		binaryPaths = map[string]bool{}
	}

	text, produced, err := e.renderValue(v, wpath.Root(), 0, pretty, binaryPaths)
	if err != nil {
		return "", err
	}
	if !produced {
		return "", nil
	}
	return text, nil
}

func (e *Encoder) renderValue(v types.Value, path wpath.Path, depth int, pretty bool, binaryPaths map[string]bool) (text string, produced bool, err error) {
	if v == nil {
		e.Warnings = append(e.Warnings, codecerr.Warning{
			Msg: fmt.Sprintf("Cannot insert <nil> %s", path.String()),
		})
		return "", false, nil
	}

	switch v.Kind() {
	case types.KindNull:
		return "null", true, nil
	case types.KindBool:
		if v.Bool() {
			return "true", true, nil
		}
		return "false", true, nil
	case types.KindNumber:
		return formatNumber(v.Number()), true, nil
	case types.KindString:
		return e.renderString(v.Str(), path, binaryPaths), true, nil
	case types.KindBinary:
		return "<" + base64x.Encode(v.Binary()) + ">", true, nil
	case types.KindArray:
		s, err := e.renderArray(v.Array(), path, depth, pretty, binaryPaths)
		if err != nil {
			return "", false, err
		}
		return s, true, nil
	case types.KindMap:
		m := v.Map()
		var s string
		if isArrayShaped(m) {
			s, err = e.renderMapAsArray(m, path, depth, pretty, binaryPaths)
		} else {
			s, err = e.renderMap(m, path, depth, pretty, binaryPaths)
		}
		if err != nil {
			return "", false, err
		}
		return s, true, nil
	default:
		e.elide(v.Kind(), path)
		return "", false, nil
	}
}

func (e *Encoder) elide(kind types.Kind, path wpath.Path) {
	e.Warnings = append(e.Warnings, codecerr.Warning{
		Msg: fmt.Sprintf("Cannot insert %s %s", kind, path.String()),
	})
}

func (e *Encoder) renderString(s string, path wpath.Path, binaryPaths map[string]bool) string {
	if binaryPaths[path.String()] || !utf8x.ValidString(s) {
		return "<" + base64x.Encode([]byte(s)) + ">"
	}
	if lexer.IsWord(s) && !isReservedWord(s) {
		return s
	}
	return "\"" + escape.Escape(s) + "\""
}

func isReservedWord(s string) bool {
	switch s {
	case "true", "false", "nil", "null":
		return true
	default:
		return false
	}
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (e *Encoder) renderArray(items types.Array, path wpath.Path, depth int, pretty bool, binaryPaths map[string]bool) (string, error) {
	parts := make([]string, 0, len(items))
	for i, item := range items {
		childPath := path.Child(strconv.Itoa(i + 1))
		text, produced, err := e.renderValue(item, childPath, depth+1, pretty, binaryPaths)
		if err != nil {
			return "", err
		}
		if !produced {
			continue
		}
		parts = append(parts, text)
	}
	return wrapContainer("#(", ")", parts, depth, pretty), nil
}

// isArrayShaped reports whether m's keys are exactly the integers 1..n
// with n = len(m) and no gaps.
func isArrayShaped(m types.Map) bool {
	n := len(m)
	if n == 0 {
		return false
	}
	for i := 1; i <= n; i++ {
		if _, ok := m[types.NumberKey(float64(i))]; !ok {
			return false
		}
	}
	return true
}

func (e *Encoder) renderMapAsArray(m types.Map, path wpath.Path, depth int, pretty bool, binaryPaths map[string]bool) (string, error) {
	n := len(m)
	parts := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		childPath := path.Child(strconv.Itoa(i))
		text, produced, err := e.renderValue(m[types.NumberKey(float64(i))], childPath, depth+1, pretty, binaryPaths)
		if err != nil {
			return "", err
		}
		if !produced {
			continue
		}
		parts = append(parts, text)
	}
	return wrapContainer("#(", ")", parts, depth, pretty), nil
}

func mapKeySegment(k types.MapKey) string {
	if k.IsNumber() {
		return formatNumber(k.Num())
	}
	return k.Str()
}

// renderMap orders entries deterministically (numeric keys first by value,
// then string keys lexically) even though map iteration order is otherwise
// unconstrained — a deterministic order makes golden-text tests
// reproducible.
func (e *Encoder) renderMap(m types.Map, path wpath.Path, depth int, pretty bool, binaryPaths map[string]bool) (string, error) {
	keys := make([]types.MapKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.IsNumber() != b.IsNumber() {
			return a.IsNumber()
		}
		if a.IsNumber() {
			return a.Num() < b.Num()
		}
		return a.Str() < b.Str()
	})

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		childPath := path.Child(mapKeySegment(k))

		keyText, err := e.renderMapKey(k, childPath)
		if err != nil {
			return "", err
		}

		valText, produced, err := e.renderValue(m[k], childPath, depth+1, pretty, binaryPaths)
		if err != nil {
			return "", err
		}
		if !produced {
			continue
		}
		parts = append(parts, keyText+" "+valText)
	}
	return wrapContainer("@(", ")", parts, depth, pretty), nil
}

func (e *Encoder) renderMapKey(k types.MapKey, path wpath.Path) (string, error) {
	if k.IsNumber() {
		return formatNumber(k.Num()), nil
	}
	s := k.Str()
	if !utf8x.ValidString(s) {
		return "", errors.WithStack(codecerr.New(0, 0,
			fmt.Sprintf("Encoding Error: map key at %s is not valid UTF-8", path.String())))
	}
	if lexer.IsWord(s) && !isReservedWord(s) {
		return s, nil
	}
	return "\"" + escape.Escape(s) + "\"", nil
}

func wrapContainer(open, closeTok string, parts []string, depth int, pretty bool) string {
	if !pretty {
		return open + strings.Join(parts, " ") + closeTok
	}
	if len(parts) == 0 {
		return open + closeTok
	}

	childIndent := strings.Repeat("\t", depth+1)
	closeIndent := strings.Repeat("\t", depth)

	var b strings.Builder
	b.WriteString(open)
	b.WriteByte('\n')
	for _, p := range parts {
		b.WriteString(childIndent)
		b.WriteString(p)
		b.WriteByte('\n')
	}
	b.WriteString(closeIndent)
	b.WriteString(closeTok)
	return b.String()
}
