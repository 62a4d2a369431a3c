package tui

import (
	"os"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestColorEnabled(t *testing.T) {
	tests := []struct {
		name     string
		noColor  *string
		term     string
		expected bool
	}{
		{name: "color terminal", term: "xterm-256color", expected: true},
		{name: "NO_COLOR set", noColor: stringPtr("1"), term: "xterm-256color"},
		{name: "NO_COLOR set but empty", noColor: stringPtr(""), term: "xterm-256color"},
		{name: "dumb terminal", term: "dumb"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TERM", tc.term)
			t.Setenv("NO_COLOR", "")
			if tc.noColor == nil {
				_ = os.Unsetenv("NO_COLOR")
			} else {
				t.Setenv("NO_COLOR", *tc.noColor)
			}

			assert.Equal(t, tc.expected, colorEnabled())
		})
	}
}

func TestCheckNoColor_DropsToASCII(t *testing.T) {
	previous := lipgloss.ColorProfile()
	t.Cleanup(func() { lipgloss.SetColorProfile(previous) })

	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Setenv("NO_COLOR", "1")

	CheckNoColor()
	assert.Equal(t, termenv.Ascii, lipgloss.ColorProfile())
}

func stringPtr(s string) *string { return &s }
