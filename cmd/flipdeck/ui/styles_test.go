package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectTheme(t *testing.T) {
	tests := []struct {
		name     string
		colorfg  string
		wantDark bool
	}{
		{"unset", "", false},
		{"dark background", "15;0", true},
		{"grey background", "7;8", true},
		{"light background", "0;15", false},
		{"three fields", "15;default;0", true},
		{"garbage", "nope", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("COLORFGBG", tt.colorfg)
			assert.Equal(t, tt.wantDark, DetectTheme().IsDark)
		})
	}
}

func TestThemeFor(t *testing.T) {
	t.Setenv("COLORFGBG", "15;0")

	assert.False(t, ThemeFor("light").IsDark)
	assert.True(t, ThemeFor(" DARK ").IsDark)
	assert.True(t, ThemeFor("auto").IsDark, "auto follows the terminal")
	assert.True(t, ThemeFor("").IsDark)
}

func TestNewStylesCarriesTheme(t *testing.T) {
	s := NewStyles(DarkTheme())
	assert.True(t, s.Theme.IsDark)
	assert.Equal(t, DarkAccent, s.Theme.Accent)
}
