package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Source kinds
const (
	SourceNezha = "nezha"
	SourceFile  = "file"
	SourceLocal = "local"
)

// Config represents the complete picnezha.yaml configuration file.
type Config struct {
	Version int          `yaml:"version" mapstructure:"version"`
	Source  SourceConfig `yaml:"source" mapstructure:"source"`
	Nezha   NezhaConfig  `yaml:"nezha" mapstructure:"nezha"`
	Render  RenderConfig `yaml:"render" mapstructure:"render"`
	Server  ServerConfig `yaml:"server" mapstructure:"server"`
}

// SourceConfig picks where server records come from.
type SourceConfig struct {
	// Kind is "nezha", "file" or "local".
	Kind string `yaml:"kind" mapstructure:"kind"`

	// File is the snapshot path for the "file" source (YAML or JSON).
	File string `yaml:"file" mapstructure:"file"`
}

// NezhaConfig holds the dashboard API credentials.
type NezhaConfig struct {
	// APIURL is the dashboard base URL, e.g. https://nezha.example.com.
	APIURL   string `yaml:"api_url" mapstructure:"api_url"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`

	// Timeout bounds each API request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// RenderConfig controls the image.
type RenderConfig struct {
	// Title is the header text. Empty falls back to the API URL.
	Title string `yaml:"title" mapstructure:"title"`

	// Columns is the number of server cards per row.
	Columns int `yaml:"columns" mapstructure:"columns"`

	// FontPath replaces the built-in body font. Supports ~.
	FontPath string `yaml:"font_path" mapstructure:"font_path"`

	// EmojiFontPath is used for runes the body font lacks. Supports ~.
	EmojiFontPath string `yaml:"emoji_font_path" mapstructure:"emoji_font_path"`
}

// ServerConfig controls `picnezha serve`.
type ServerConfig struct {
	// Addr is the listen address.
	Addr string `yaml:"addr" mapstructure:"addr"`

	// Port overrides the port of Addr when set (the PORT env var).
	Port int `yaml:"port" mapstructure:"port"`

	// AccessLog is "console", "json" or "off".
	AccessLog string `yaml:"access_log" mapstructure:"access_log"`

	// RenderTimeout bounds fetching records for one /status request.
	RenderTimeout time.Duration `yaml:"render_timeout" mapstructure:"render_timeout"`
}

// DefaultTitle is the header text when neither a title nor an API URL is set.
const DefaultTitle = "Server Status"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: CurrentConfigVersion,
		Source: SourceConfig{
			Kind: SourceNezha,
		},
		Nezha: NezhaConfig{
			Timeout: 10 * time.Second,
		},
		Render: RenderConfig{
			Columns: 2,
		},
		Server: ServerConfig{
			Addr:          ":3000",
			AccessLog:     "console",
			RenderTimeout: 15 * time.Second,
		},
	}
}
