package cli

import (
	"github.com/KunBuFenZi/PicNezha/internal/config"
	"github.com/KunBuFenZi/PicNezha/internal/render"
)

// loadConfig resolves the config file and environment, overlays the flag
// values in overrides, and validates the result.
func loadConfig(overrides config.Config) (*config.Config, error) {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Apply(overrides); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFonts(cfg *config.Config) (*render.FontSet, error) {
	return render.LoadFontSet(cfg.Render.FontPath, cfg.Render.EmojiFontPath)
}

// renderOptions turns the render section of cfg into compose options.
func renderOptions(cfg *config.Config, fonts *render.FontSet) render.Options {
	consts := render.DefaultConstants()
	consts.Columns = cfg.Render.Columns
	return render.Options{
		Title:     cfg.HeaderText(),
		Constants: consts,
		Fonts:     fonts,
	}
}
