package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/logger"
	"github.com/KunBuFenZi/PicNezha/internal/ui"
)

// Global flags
var (
	cfgFile string
	debug   bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "picnezha",
	Short: "Render Nezha server status as a PNG",
	Long: `picnezha draws the servers of a Nezha dashboard as one PNG image: a card
per server with its platform, CPU, memory, traffic and uptime.

Render once to a file, or serve the image over HTTP so every request shows
the current state.

Examples:
  picnezha render -o status.png
  picnezha render --input servers.yaml -o - > status.png
  picnezha serve --addr :3000`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		applyGlobalFlags()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./picnezha.yaml, then ~/.config/picnezha/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print debug logging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

func applyGlobalFlags() {
	if noColor || os.Getenv("NO_COLOR") != "" {
		ui.DisableColors()
	}
	if debug {
		_ = os.Setenv(logger.DebugEnv, "1")
	}
}

// Execute runs the root command until it finishes or the process is
// interrupted, then exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.Error(err))
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	if errors.IsCode(err, errors.ErrConfig) {
		return 2
	}
	return 1
}
