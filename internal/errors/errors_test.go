package errors

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCodes(t *testing.T) {
	codes := []string{
		ErrConfig,
		ErrFont,
		ErrMeasure,
		ErrLayout,
		ErrGeometry,
		ErrUpstream,
		ErrRender,
	}

	seen := make(map[string]bool)
	for _, code := range codes {
		assert.NotEmpty(t, code, "error code should not be empty")
		assert.False(t, seen[code], "error code %q should be unique", code)
		seen[code] = true
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		code       string
		message    string
		suggestion string
	}{
		{
			name:       "config error",
			code:       ErrConfig,
			message:    "columns must be at least 1",
			suggestion: "Set SERVERS_PER_ROW to a positive number",
		},
		{
			name:       "measure error",
			code:       ErrMeasure,
			message:    "Couldn't measure card text",
			suggestion: "",
		},
		{
			name:       "upstream error",
			code:       ErrUpstream,
			message:    "Login rejected by the dashboard",
			suggestion: "Check USERNAME and PASSWORD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, tt.suggestion)

			require.NotNil(t, err)
			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.Equal(t, tt.suggestion, err.Suggestion)
			assert.Nil(t, err.Cause)
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name          string
		err           *Error
		expectedParts []string
	}{
		{
			name:          "basic error formatting",
			err:           New(ErrConfig, "Invalid configuration", "Check picnezha.yaml syntax"),
			expectedParts: []string{"✗ Invalid configuration", "Check picnezha.yaml syntax"},
		},
		{
			name:          "error without suggestion",
			err:           New(ErrLayout, "Negative padding", ""),
			expectedParts: []string{"Negative padding"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := tt.err.Error()
			for _, part := range tt.expectedParts {
				assert.Contains(t, output, part)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("png: invalid format")
	wrapped := Wrap(cause, "Couldn't encode image")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrRender, wrapped.Code, "Wrap should default to ErrRender code")
	assert.Equal(t, "Couldn't encode image", wrapped.Message)
	assert.Equal(t, cause, wrapped.Cause)
	assert.Contains(t, wrapped.Error(), "png: invalid format")
}

func TestWrapWithCode(t *testing.T) {
	cause := errors.New("file not found")
	wrapped := WrapWithCode(cause, ErrFont, "Failed to load font", "Check FONT_PATH")

	require.NotNil(t, wrapped)
	assert.Equal(t, ErrFont, wrapped.Code)
	assert.Equal(t, "Check FONT_PATH", wrapped.Suggestion)
	assert.True(t, errors.Is(wrapped, cause))
	assert.Equal(t, cause, wrapped.Unwrap())
}

func TestIsCode(t *testing.T) {
	err := New(ErrConfig, "Config error", "")

	assert.True(t, IsCode(err, ErrConfig))
	assert.False(t, IsCode(err, ErrMeasure))
	assert.False(t, IsCode(errors.New("standard error"), ErrConfig))
	assert.False(t, IsCode(nil, ErrConfig))
}

func TestIsCode_OutermostWins(t *testing.T) {
	inner := New(ErrMeasure, "measure failed", "")
	outer := WrapWithCode(inner, ErrRender, "render failed", "")

	assert.True(t, IsCode(outer, ErrRender))
	assert.True(t, IsCode(inner, ErrMeasure))
}

func TestErrorMessageStructure(t *testing.T) {
	err := WrapWithCode(
		errors.New("dial tcp: connection refused"),
		ErrUpstream,
		"Can't reach the dashboard API",
		"Check API_URL",
	)

	lines := strings.Split(err.Error(), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "✗"), "first line should start with failure symbol")
	assert.Contains(t, lines[0], "Can't reach the dashboard API")
}

func TestOneLine(t *testing.T) {
	err := WrapWithCode(errors.New("boom"), ErrRender, "Render failed", "Try again")

	assert.Equal(t, "✗ Render failed boom Try again", OneLine(err))
	assert.Equal(t, "plain", OneLine(errors.New("  plain\n")))
	assert.Equal(t, "", OneLine(nil))
}
