package cli

import (
	"bytes"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withVersion swaps the build info for the duration of a test.
func withVersion(t *testing.T, v, c, d string) {
	t.Helper()
	origVersion, origCommit, origDate := version, commit, date
	t.Cleanup(func() {
		version, commit, date = origVersion, origCommit, origDate
	})
	version, commit, date = v, c, d
}

func TestVersionOutput(t *testing.T) {
	withVersion(t, "1.2.3", "abc1234", "2025-01-08T12:00:00Z")

	var buf bytes.Buffer
	printVersion(&buf, false)
	output := buf.String()

	assert.Contains(t, output, "picnezha v1.2.3", "should show version with v prefix")
	assert.Contains(t, output, "commit: abc1234")
	assert.Contains(t, output, "built: 2025-01-08T12:00:00Z")
	assert.Contains(t, output, "go: "+runtime.Version())
	assert.Contains(t, output, "os/arch: "+runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionOutputShort(t *testing.T) {
	withVersion(t, "1.2.3", "abc1234", "2025-01-08T12:00:00Z")

	var buf bytes.Buffer
	printVersion(&buf, true)
	assert.Equal(t, "1.2.3", strings.TrimSpace(buf.String()), "short output should only show version")
}

func TestVersionOutputDev(t *testing.T) {
	withVersion(t, "dev", "none", "unknown")

	var buf bytes.Buffer
	printVersion(&buf, false)
	assert.Contains(t, buf.String(), "picnezha dev", "dev version should not have v prefix")
}

func TestVersionCommand(t *testing.T) {
	withVersion(t, "0.4.0", "none", "unknown")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version", "--short"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		versionShort = false
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "0.4.0\n", buf.String())
}

func TestFormatVersion(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty string", input: "", want: ""},
		{name: "dev version", input: "dev", want: "dev"},
		{name: "version without prefix", input: "1.2.3", want: "v1.2.3"},
		{name: "version with prefix", input: "v1.2.3", want: "v1.2.3"},
		{name: "version with prerelease", input: "1.2.3-beta.1", want: "v1.2.3-beta.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatVersion(tt.input))
		})
	}
}

func TestVersionCommandHasShortFlag(t *testing.T) {
	flag := versionCmd.Flags().Lookup("short")
	require.NotNil(t, flag, "version command should have --short flag")
	assert.Equal(t, "bool", flag.Value.Type())
	assert.Equal(t, "false", flag.DefValue)
}

func TestSetVersionInfo(t *testing.T) {
	withVersion(t, "dev", "none", "unknown")

	SetVersionInfo("2.0.0", "def5678", "2025-06-15T10:00:00Z")

	assert.Equal(t, "2.0.0", version)
	assert.Equal(t, "def5678", commit)
	assert.Equal(t, "2025-06-15T10:00:00Z", date)
	assert.Equal(t, "2.0.0", GetVersion())
}
