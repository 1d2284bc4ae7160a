package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/KunBuFenZi/PicNezha/internal/config"
	"github.com/KunBuFenZi/PicNezha/internal/logger"
	"github.com/KunBuFenZi/PicNezha/internal/server"
	"github.com/KunBuFenZi/PicNezha/internal/source"
)

// serveFlags are the flags of `picnezha serve`.
type serveFlags struct {
	Addr      string
	AccessLog string
}

var serveOpts serveFlags

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the status image over HTTP",
	Long: `Serve the status image over HTTP. Every request fetches the server list
and renders a fresh image.

  GET /status   the image, always 200 image/png (the error image on failure)
  GET /healthz  {"status":"ok"}

The listen address comes from --addr, else server.addr with the PORT
environment variable replacing its port.

Examples:
  picnezha serve
  picnezha serve --addr 127.0.0.1:8080 --access-log json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCommand(cmd.Context(), serveOpts, cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveOpts.Addr, "addr", "", "listen address (default :3000)")
	serveCmd.Flags().StringVar(&serveOpts.AccessLog, "access-log", "", "access log format: console, json or off")
}

func (f serveFlags) overrides() config.Config {
	return config.Config{
		Server: config.ServerConfig{Addr: f.Addr, AccessLog: f.AccessLog},
	}
}

func serveCommand(ctx context.Context, f serveFlags, stderr io.Writer) error {
	cfg, err := loadConfig(f.overrides())
	if err != nil {
		return err
	}
	// An explicit --addr beats PORT.
	if f.Addr != "" {
		cfg.Server.Port = 0
	}

	fonts, err := loadFonts(cfg)
	if err != nil {
		return err
	}
	log := logger.NewEnvLogger("[serve]")
	src, err := source.New(cfg, log)
	if err != nil {
		return err
	}

	access := server.NewAccessLogger(cfg.Server.AccessLog, stderr)
	srv := server.New(server.Options{
		Source:  src,
		Render:  renderOptions(cfg, fonts),
		Timeout: cfg.Server.RenderTimeout,
		Logger:  log,
		Access:  &access,
	})
	return srv.ListenAndServe(ctx, cfg.Server.ListenAddr())
}
