package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/KunBuFenZi/PicNezha/internal/config"
	"github.com/KunBuFenZi/PicNezha/internal/errors"
	"github.com/KunBuFenZi/PicNezha/internal/logger"
	"github.com/KunBuFenZi/PicNezha/internal/render"
	"github.com/KunBuFenZi/PicNezha/internal/source"
	"github.com/KunBuFenZi/PicNezha/internal/ui"
)

// stdoutPath makes render write the image to stdout.
const stdoutPath = "-"

// renderFlags are the flags of `picnezha render`.
type renderFlags struct {
	Output  string
	Source  string
	Input   string
	Columns int
	Title   string
}

var renderOpts renderFlags

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the status image once",
	Long: `Fetch the server list and write the status image as PNG.

If fetching or drawing fails, the error image is written instead and the
command exits non-zero, so a cron job still leaves a readable picture behind.

Examples:
  picnezha render -o status.png
  picnezha render --source local -o me.png
  picnezha render --input servers.yaml --columns 3 -o - > status.png`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return renderCommand(cmd.Context(), renderOpts, cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderOpts.Output, "output", "o", "status.png", `output file, or "-" for stdout`)
	renderCmd.Flags().StringVar(&renderOpts.Source, "source", "", "where records come from: nezha, file or local")
	renderCmd.Flags().StringVar(&renderOpts.Input, "input", "", "snapshot file for the file source (implies --source file)")
	renderCmd.Flags().IntVar(&renderOpts.Columns, "columns", 0, "server cards per row")
	renderCmd.Flags().StringVar(&renderOpts.Title, "title", "", "header text")
}

func (f renderFlags) overrides() config.Config {
	o := config.Config{
		Source: config.SourceConfig{Kind: f.Source, File: f.Input},
		Render: config.RenderConfig{Title: f.Title, Columns: f.Columns},
	}
	if f.Input != "" && f.Source == "" {
		o.Source.Kind = config.SourceFile
	}
	return o
}

func renderCommand(ctx context.Context, f renderFlags, stdout, stderr io.Writer) error {
	if f.Output == "" {
		return errors.New(errors.ErrConfig, "No output given", `Pass -o status.png, or -o - for stdout`)
	}
	if err := checkOutput(f.Output, stdout); err != nil {
		return err
	}

	cfg, err := loadConfig(f.overrides())
	if err != nil {
		return err
	}
	fonts, err := loadFonts(cfg)
	if err != nil {
		return err
	}
	src, err := source.New(cfg, logger.NewEnvLogger("[render]"))
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Server.RenderTimeout)
	defer cancel()

	var res render.Result
	recs, err := src.Servers(ctx)
	if err != nil {
		res = render.Failure(err, fonts)
	} else {
		res = render.RenderOrFallback(recs, renderOptions(cfg, fonts))
	}

	if err := writeOutput(f.Output, stdout, res.PNG); err != nil {
		return err
	}

	dest := f.Output
	if dest == stdoutPath {
		dest = "stdout"
	}
	if !res.OK() {
		fmt.Fprintln(stderr, ui.Warning("Wrote the error image to "+dest))
		return res.Err
	}
	fmt.Fprintln(stderr, ui.Success(fmt.Sprintf("Rendered %d servers to %s %s",
		len(recs), dest, ui.Muted("("+humanize.Bytes(uint64(len(res.PNG)))+")"))))
	return nil
}

// checkOutput refuses to dump PNG bytes onto an interactive terminal.
func checkOutput(path string, stdout io.Writer) error {
	if path != stdoutPath {
		return nil
	}
	if f, ok := stdout.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return errors.New(errors.ErrConfig,
			"Refusing to write PNG data to a terminal",
			"Redirect stdout to a file, or pass -o status.png")
	}
	return nil
}

func writeOutput(path string, stdout io.Writer, png []byte) error {
	if path == stdoutPath {
		if _, err := stdout.Write(png); err != nil {
			return errors.Wrap(err, "Couldn't write the image to stdout")
		}
		return nil
	}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path,
			"Check the directory exists and is writable")
	}
	return nil
}
