// Package codecerr carries positional error and warning data between the
// lexer/parser/encoder and the diagnostic formatter. Its errors are wrapped
// with github.com/cockroachdb/errors at the raise site so a stack trace and
// errors.Is/As support survive the trip up through the parser to the
// wexpr facade, without disturbing the plain message text a diagnostic
// needs to render verbatim.
package codecerr

// PositionedError is a fatal lexical or syntactic error located at a byte
// offset in the source buffer.
type PositionedError struct {
	Offset int
	Length int
	Msg    string
}

func New(offset, length int, msg string) *PositionedError {
	return &PositionedError{Offset: offset, Length: length, Msg: msg}
}

func (e *PositionedError) Error() string { return e.Msg }

// Warning is a non-fatal anomaly recorded during decode or encode:
// reference redefinition, or an elided unencodable value.
type Warning struct {
	Offset int
	Msg    string
}

func (w Warning) String() string { return w.Msg }
