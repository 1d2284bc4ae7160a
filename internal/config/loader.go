package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/imdario/mergo"
	"github.com/spf13/viper"

	"github.com/KunBuFenZi/PicNezha/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = "picnezha.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/picnezha"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// envBindings maps config keys to the environment variables that hosted
// deployments (containers, serverless) set. Env wins over the file.
var envBindings = map[string]string{
	"nezha.api_url":          "API_URL",
	"nezha.username":         "USERNAME",
	"nezha.password":         "PASSWORD",
	"render.title":           "TEXT",
	"render.columns":         "SERVERS_PER_ROW",
	"render.font_path":       "FONT_PATH",
	"render.emoji_font_path": "EMOJI_FONT_PATH",
	"server.port":            "PORT",
}

// Load reads config from the specified path, then applies environment
// overrides. An empty path skips the file and uses defaults plus env.
func Load(path string) (*Config, error) {
	v := viper.New()
	if err := bindEnv(v); err != nil {
		return nil, err
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if os.IsNotExist(err) {
				return nil, errors.WrapWithCode(err, errors.ErrConfig,
					"Config file not found",
					"Create "+ConfigFileName+" or specify one with --config")
			}
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to read config file",
				"Check the file exists and is valid YAML")
		}
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. picnezha.yaml in current directory
// 3. ~/.config/picnezha/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	if explicit != "" {
		explicit = ExpandTilde(explicit)
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	if home, _ := os.UserHomeDir(); home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault finds and loads a config file, or falls back to defaults
// plus environment when there is none. Deployments that only set env vars
// work without a file.
func LoadOrDefault(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}
	return Load(path)
}

func bindEnv(v *viper.Viper) error {
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig, "Couldn't bind "+env, "")
		}
	}
	return nil
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		where := "your environment"
		if path != "" {
			where = path
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the values in "+where)
	}

	cfg.Nezha.APIURL = strings.TrimRight(strings.TrimSpace(cfg.Nezha.APIURL), "/")
	cfg.Source.File = ExpandTilde(cfg.Source.File)
	cfg.Render.FontPath = ExpandTilde(cfg.Render.FontPath)
	cfg.Render.EmojiFontPath = ExpandTilde(cfg.Render.EmojiFontPath)

	return cfg, nil
}

// Apply overlays the non-zero fields of overrides onto cfg. Command-line
// flags are collected into overrides so they win over file and env.
func (c *Config) Apply(overrides Config) error {
	if err := mergo.Merge(c, overrides, mergo.WithOverride); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig, "Couldn't apply command-line overrides", "")
	}
	c.Source.File = ExpandTilde(c.Source.File)
	return nil
}
