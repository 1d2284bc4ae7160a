package cli

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"config error", errors.New(errors.ErrConfig, "API_URL is not set", ""), 2},
		{"wrapped config error", errors.WrapWithCode(stderrors.New("address in use"), errors.ErrConfig, "Couldn't listen", ""), 2},
		{"upstream error", errors.New(errors.ErrUpstream, "Dashboard login failed", ""), 1},
		{"plain error", stderrors.New(`unknown command "foo" for "picnezha"`), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"render", "serve", "version"})
}

func TestRootCommand_GlobalFlags(t *testing.T) {
	for _, name := range []string{"config", "debug", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "missing --%s", name)
	}
}
