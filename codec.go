package wexpr

import (
	"github.com/cockroachdb/errors"

	"github.com/wexpr/wexpr/diagnostic"
	"github.com/wexpr/wexpr/internal/codecerr"
	"github.com/wexpr/wexpr/internal/encoder"
	"github.com/wexpr/wexpr/internal/parser"
)

// DecodeOptions configures a single Decode call.
type DecodeOptions struct {
	// PrepopulatedRoot, when non-nil and a Map or Array, is merged into by
	// the document's top-level value using the container-reuse rule: a
	// nested map/array the document also assigns is merged into rather
	// than replaced, while scalar entries are simply overwritten.
	PrepopulatedRoot Value
}

// EncodeOptions configures a single Encode call.
type EncodeOptions struct {
	// Pretty selects tab-indented, one-item-per-line output.
	Pretty bool
	// BinaryPaths forces the string at each given dotted path (see
	// internal/wpath) to encode as a base64 blob regardless of its
	// content.
	BinaryPaths map[string]bool
}

// Warning is a non-fatal decode or encode anomaly: a reference
// redefinition, or a value elided because it couldn't be encoded.
type Warning = codecerr.Warning

// DiagnosticError is the fatal error Decode returns: its Error() text is
// already formatted as "LINE:COL:MESSAGE\nSOURCELINE\nINDICATOR".
type DiagnosticError struct {
	Message string
	Offset  int
	Length  int
}

func (e *DiagnosticError) Error() string { return e.Message }

func decodeDiagnostic(source string, err error) error {
	var pe *codecerr.PositionedError
	if errors.As(err, &pe) {
		return &DiagnosticError{
			Message: diagnostic.Format(source, pe.Msg, pe.Offset, pe.Length),
			Offset:  pe.Offset,
			Length:  pe.Length,
		}
	}
	return err
}

func encodeDiagnostic(err error) error {
	var pe *codecerr.PositionedError
	if errors.As(err, &pe) {
		return errors.New(pe.Msg)
	}
	return err
}

// Decoder decodes Wexpr text. All of its state (the reference table, the
// token stream, warnings) is local to one Decode call; nothing crosses
// invocations, so a single Decoder is safe to reuse sequentially but never
// concurrently.
type Decoder struct {
	// Warnings accumulated by the most recent Decode call: reference
	// redefinitions, most recently.
	Warnings []Warning
}

// NewDecoder returns a ready-to-use Decoder.
func NewDecoder() *Decoder { return &Decoder{} }

// Decode parses source into a Value tree. On success it returns a non-nil
// Value (decoding the literal document "null" legitimately yields a Value
// of KindNull, not a Go nil) and a nil error. On failure it returns a nil
// Value and a *DiagnosticError.
func (d *Decoder) Decode(source string, opts DecodeOptions) (Value, error) {
	d.Warnings = nil

	v, warnings, err := parser.Parse(source, opts.PrepopulatedRoot)
	d.Warnings = warnings
	if err != nil {
		return nil, decodeDiagnostic(source, err)
	}
	return v, nil
}

// Decode is a convenience wrapper around a throwaway Decoder for callers
// who don't need access to warnings.
func Decode(source string, opts DecodeOptions) (Value, error) {
	return NewDecoder().Decode(source, opts)
}

// Encoder encodes a Value tree to Wexpr text. Like Decoder, its state does
// not cross calls.
type Encoder struct {
	// Warnings accumulated by the most recent Encode call: one per elided,
	// unencodable entry.
	Warnings []Warning

	inner *encoder.Encoder
}

// NewEncoder returns a ready-to-use Encoder.
func NewEncoder() *Encoder { return &Encoder{inner: encoder.New()} }

// Encode renders v as Wexpr text. A nil error means success even if some
// entries were elided (see Warnings); the only fatal encode error is a
// non-UTF-8 map key.
func (e *Encoder) Encode(v Value, opts EncodeOptions) (string, error) {
	text, err := e.inner.Encode(v, opts.Pretty, opts.BinaryPaths)
	e.Warnings = e.inner.Warnings
	if err != nil {
		return "", encodeDiagnostic(err)
	}
	return text, nil
}

// Encode is a convenience wrapper around a throwaway Encoder for callers
// who don't need access to warnings.
func Encode(v Value, opts EncodeOptions) (string, error) {
	return NewEncoder().Encode(v, opts)
}
