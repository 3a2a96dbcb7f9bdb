package workflow

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalConfirmer(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"yes", "yes\n", true},
		{"y", "y\n", true},
		{"uppercase", "YES\n", true},
		{"padded", "  y  \n", true},
		{"no", "no\n", false},
		{"n", "n\n", false},
		{"empty answer defaults to no", "\n", false},
		{"closed input defaults to no", "", false},
		{"garbage", "sure why not\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			c := NewTerminalConfirmer(strings.NewReader(tt.input), out)

			ok, err := c.Confirm("Continue?")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ok)
			assert.Contains(t, out.String(), "Continue? (y/N)")
		})
	}
}
