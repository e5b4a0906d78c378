package wexpr_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wexpr/wexpr"
)

func TestDecodeScalars(t *testing.T) {
	v, err := wexpr.Decode("42", wexpr.DecodeOptions{})
	require.NoError(t, err)
	require.Equal(t, wexpr.KindNumber, v.Kind())
	require.Equal(t, 42.0, v.Number())
}

func TestDecodeNullIsANonNilValue(t *testing.T) {
	v, err := wexpr.Decode("null", wexpr.DecodeOptions{})
	require.NoError(t, err)
	require.NotNil(t, v)
	require.Equal(t, wexpr.KindNull, v.Kind())
}

func TestDecodeErrorIsADiagnostic(t *testing.T) {
	v, err := wexpr.Decode("@(a *[b])", wexpr.DecodeOptions{})
	require.Nil(t, v)
	require.Error(t, err)

	var diag *wexpr.DiagnosticError
	require.ErrorAs(t, err, &diag)
	require.Equal(t, "1:5:Syntax Error: Reference [b] is undefined.\n@(a *[b])\n    ^~~~", diag.Message)
	require.Equal(t, err.Error(), diag.Message)
}

func TestDecodeMergesIntoPrepopulatedRoot(t *testing.T) {
	prepopulated := wexpr.NewMap(wexpr.Map{
		wexpr.StringKey("a"): wexpr.NewNumber(1),
		wexpr.StringKey("b"): wexpr.NewNumber(2),
	})

	v, err := wexpr.Decode("@(b 20 c 3)", wexpr.DecodeOptions{PrepopulatedRoot: prepopulated})
	require.NoError(t, err)

	m := v.Map()
	require.Equal(t, 1.0, m[wexpr.StringKey("a")].Number())
	require.Equal(t, 20.0, m[wexpr.StringKey("b")].Number())
	require.Equal(t, 3.0, m[wexpr.StringKey("c")].Number())
}

func TestDecoderTracksWarnings(t *testing.T) {
	d := wexpr.NewDecoder()
	_, err := d.Decode(`#( [x] 1 [x] 2 *[x] )`, wexpr.DecodeOptions{})
	require.NoError(t, err)
	require.Len(t, d.Warnings, 2)
}

func TestEncodeRoundTrip(t *testing.T) {
	v, err := wexpr.Decode("#(1 2 3)", wexpr.DecodeOptions{})
	require.NoError(t, err)

	text, err := wexpr.Encode(v, wexpr.EncodeOptions{})
	require.NoError(t, err)
	require.Equal(t, "#(1 2 3)", text)
}

func TestEncoderTracksWarnings(t *testing.T) {
	e := wexpr.NewEncoder()
	out, err := e.Encode(nil, wexpr.EncodeOptions{})
	require.NoError(t, err)
	require.Empty(t, out)
	require.Len(t, e.Warnings, 1)
}

func TestEncodeFatalNonUTF8KeyError(t *testing.T) {
	m := wexpr.NewMap(wexpr.Map{
		wexpr.StringKey(string([]byte{0xC2})): wexpr.NewNumber(1),
	})
	_, err := wexpr.Encode(m, wexpr.EncodeOptions{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "not valid UTF-8")

	// encode errors carry a plain message, not a source-positioned diagnostic.
	_, isDiagnostic := err.(*wexpr.DiagnosticError)
	require.False(t, isDiagnostic)
}
