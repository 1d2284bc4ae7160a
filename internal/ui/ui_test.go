package ui

import (
	stderrors "errors"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
)

func TestSemanticColorsExist(t *testing.T) {
	tests := []struct {
		name  string
		color lipgloss.Color
	}{
		{"ColorSuccess", ColorSuccess},
		{"ColorError", ColorError},
		{"ColorWarning", ColorWarning},
		{"ColorInfo", ColorInfo},
		{"ColorPrimary", ColorPrimary},
		{"ColorMuted", ColorMuted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, string(tt.color), "%s should not be empty", tt.name)
		})
	}
}

func TestMessages_Plain(t *testing.T) {
	DisableColors()

	assert.Equal(t, "✓ wrote status.png", Success("wrote status.png"))
	assert.Equal(t, "! wrote the error image", Warning("wrote the error image"))
	assert.Equal(t, "770x670", Muted("770x670"))
}

func TestMessages_Colored(t *testing.T) {
	ForceColors()
	defer DisableColors()

	got := Success("done")
	assert.Contains(t, got, "\x1b[")
	assert.Contains(t, got, SymbolSuccess)
	assert.Contains(t, got, "done")
}

func TestError(t *testing.T) {
	DisableColors()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil",
			err:  nil,
			want: "",
		},
		{
			name: "plain error gets a symbol",
			err:  stderrors.New("boom"),
			want: "✗ boom\n",
		},
		{
			name: "structured error keeps one symbol",
			err:  errors.New(errors.ErrConfig, "API_URL is not set", "Set API_URL to your dashboard address"),
			want: "✗ API_URL is not set\n\n  Set API_URL to your dashboard address\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Error(tt.err))
		})
	}
}
