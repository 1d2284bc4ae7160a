package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
)

// MaxColumns bounds the cards per row; wider grids exceed the canvas limit
// anyway.
const MaxColumns = 16

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but picnezha only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade picnezha")
	}

	if err := validateSource(cfg); err != nil {
		return err
	}

	if err := validateRender(cfg.Render); err != nil {
		return errors.New(errors.ErrConfig, err.Error(), "Check the 'render' section in your "+ConfigFileName+".")
	}

	if err := validateServer(cfg.Server); err != nil {
		return errors.New(errors.ErrConfig, err.Error(), "Check the 'server' section in your "+ConfigFileName+".")
	}

	return nil
}

func validateSource(cfg *Config) error {
	switch cfg.Source.Kind {
	case SourceNezha:
		return validateNezha(cfg.Nezha)
	case SourceFile:
		if cfg.Source.File == "" {
			return errors.New(errors.ErrConfig,
				"The file source needs a snapshot path",
				"Set source.file or pass --input.")
		}
	case SourceLocal:
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Unknown source %q", cfg.Source.Kind),
			"Use one of: nezha, file, local.")
	}
	return nil
}

func validateNezha(n NezhaConfig) error {
	if n.APIURL == "" {
		return errors.New(errors.ErrConfig,
			"No dashboard URL configured",
			"Set API_URL or nezha.api_url, e.g. https://nezha.example.com")
	}

	u, err := url.Parse(n.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Dashboard URL %q isn't an http(s) URL", n.APIURL),
			"Use the full URL including the scheme, e.g. https://nezha.example.com")
	}

	if n.Timeout <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("nezha.timeout must be positive, got %s", n.Timeout),
			"Use a duration like 10s.")
	}
	return nil
}

func validateRender(r RenderConfig) error {
	if r.Columns < 1 || r.Columns > MaxColumns {
		return fmt.Errorf("render.columns must be between 1 and %d, got %d", MaxColumns, r.Columns)
	}
	return nil
}

func validateServer(s ServerConfig) error {
	if s.Port < 0 || s.Port > 65535 {
		return fmt.Errorf("server.port must be between 0 and 65535, got %d", s.Port)
	}
	if s.Port == 0 {
		if _, _, err := net.SplitHostPort(s.Addr); err != nil {
			return fmt.Errorf("server.addr %q isn't a host:port address", s.Addr)
		}
	}
	switch s.AccessLog {
	case "console", "json", "off":
	default:
		return fmt.Errorf("server.access_log must be console, json or off, got %q", s.AccessLog)
	}
	if s.RenderTimeout <= 0 {
		return fmt.Errorf("server.render_timeout must be positive, got %s", s.RenderTimeout)
	}
	return nil
}

// ListenAddr is the address `picnezha serve` binds. Port, when set, replaces
// the port of Addr.
func (s ServerConfig) ListenAddr() string {
	if s.Port <= 0 {
		return s.Addr
	}
	host, _, err := net.SplitHostPort(s.Addr)
	if err != nil {
		host = ""
	}
	return net.JoinHostPort(host, strconv.Itoa(s.Port))
}

// HeaderText is the title drawn in the header band: the configured title,
// else the dashboard URL, else DefaultTitle.
func (c *Config) HeaderText() string {
	switch {
	case c.Render.Title != "":
		return c.Render.Title
	case c.Nezha.APIURL != "":
		return c.Nezha.APIURL
	}
	return DefaultTitle
}
