package utf8x_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wexpr/wexpr/internal/utf8x"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected bool
	}{
		{"empty", []byte{}, true},
		{"ascii", []byte("hello"), true},
		{"two byte", []byte{0xC2, 0x80}, true},
		{"three byte", []byte{0xE2, 0x82, 0xAC}, true}, // "€"
		{"four byte", []byte{0xF0, 0x9F, 0x98, 0x80}, true},
		{"lone continuation byte", []byte{0x80}, false},
		{"truncated two byte", []byte{0xC2}, false},
		{"surrogate range excluded", []byte{0xED, 0xA0, 0x80}, false},
		{"overlong e0 excluded", []byte{0xE0, 0x80, 0x80}, false},
		{"f4 above max excluded", []byte{0xF4, 0x90, 0x80, 0x80}, false},
		{"invalid lead byte", []byte{0xFF}, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			require.Equal(t, test.expected, utf8x.Valid(test.input))
		})
	}
}

func TestValidString(t *testing.T) {
	require.True(t, utf8x.ValidString("hello, 世界"))
	require.False(t, utf8x.ValidString(string([]byte{0xC2})))
}
