package base64x_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wexpr/wexpr/internal/base64x"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"empty", []byte{}, ""},
		{"one byte", []byte("f"), "Zg=="},
		{"two bytes", []byte("fo"), "Zm8="},
		{"three bytes", []byte("foo"), "Zm9v"},
		{"hello world", []byte("hello world"), "aGVsbG8gd29ybGQ="},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, base64x.Encode(test.input))
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []byte
	}{
		{"empty", "", []byte{}},
		{"round trip", "aGVsbG8gd29ybGQ=", []byte("hello world")},
		{"padding stripped ok", "Zm9v", []byte("foo")},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, base64x.Decode(test.input))
		})
	}
}

func TestDecodeIsLenient(t *testing.T) {
	// spaces, newlines, and any other byte outside the alphabet are simply
	// skipped rather than rejected.
	require.Equal(t, []byte("foo"), base64x.Decode("Zm 9\nv"))
	require.Equal(t, []byte("foo"), base64x.Decode("Zm9v!!!"))
}

func TestDecodeDropsPartialTrailingByte(t *testing.T) {
	// a single leftover base64 character carries only 6 bits, never enough
	// for a full output byte, so it contributes nothing.
	require.Empty(t, base64x.Decode("Z"))
}

func TestRoundTrip(t *testing.T) {
	for _, s := range [][]byte{
		{},
		{0},
		{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		[]byte("the quick brown fox jumps over the lazy dog"),
	} {
		require.Equal(t, s, base64x.Decode(base64x.Encode(s)))
	}
}
