// Package config loads client settings from <config dir>/config.yaml, FISHINV_*
// environment variables and command-line overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	envPrefix = "FISHINV"

	KeyLocation       = "location"
	KeyDeployedOrigin = "deployed_origin"
	KeyAPI            = "api"
	KeyNumberPolicy   = "number_policy"
	KeyStartPage      = "start_page"
	KeyHTTPTimeout    = "http_timeout"
	KeyTUITheme       = "tui.theme"
	KeyTUIGlyphs      = "tui.glyphs"

	DefaultLocation = "http://127.0.0.1:5000/"
)

const defaultConfigYAML = `# fishinv configuration

# Address the client is opened from. Its origin is the default API base;
# a ?api=<origin> query parameter on it overrides everything but --api.
location: http://127.0.0.1:5000/

# Known deployed backend origin (optional).
# deployed_origin: https://fish-inventory.example.com

# Explicit API base override (same as --api).
# api:

# Numeric input policy for qty / unit price: permissive (invalid => 0) | strict
number_policy: permissive

# First TUI page: dashboard | inventory | settings | help | last
start_page: dashboard

# HTTP timeout (0 = transport default, no timeout)
http_timeout: 0s

tui:
  theme: auto   # auto | light | dark
  glyphs: unicode # unicode | ascii
`

type Config struct {
	Dir string

	Location       string
	DeployedOrigin string
	API            string
	NumberPolicy   string
	StartPage      string
	HTTPTimeout    time.Duration
	TUITheme       string
	TUIGlyphs      string
}

// Dir returns the config directory. FISHINV_CONFIG_DIR overrides ~/.fishinv
// (keeps tests away from the real home directory).
func Dir() (string, error) {
	if v := strings.TrimSpace(os.Getenv("FISHINV_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".fishinv"), nil
}

// Load reads config.yaml from dir, writing a default file on first run.
// overrides (typically explicitly-set flags) win over file and environment.
func Load(dir string, overrides map[string]any) (*Config, error) {
	if strings.TrimSpace(dir) == "" {
		d, err := Dir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(dir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyLocation, DefaultLocation)
	v.SetDefault(KeyNumberPolicy, "permissive")
	v.SetDefault(KeyStartPage, "dashboard")
	v.SetDefault(KeyHTTPTimeout, "0s")
	v.SetDefault(KeyTUITheme, "auto")
	v.SetDefault(KeyTUIGlyphs, "unicode")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	for k, val := range overrides {
		v.Set(k, val)
	}

	return &Config{
		Dir:            dir,
		Location:       strings.TrimSpace(v.GetString(KeyLocation)),
		DeployedOrigin: strings.TrimSpace(v.GetString(KeyDeployedOrigin)),
		API:            strings.TrimSpace(v.GetString(KeyAPI)),
		NumberPolicy:   strings.TrimSpace(v.GetString(KeyNumberPolicy)),
		StartPage:      strings.TrimSpace(v.GetString(KeyStartPage)),
		HTTPTimeout:    v.GetDuration(KeyHTTPTimeout),
		TUITheme:       strings.TrimSpace(v.GetString(KeyTUITheme)),
		TUIGlyphs:      strings.TrimSpace(v.GetString(KeyTUIGlyphs)),
	}, nil
}

// BaseOrigin resolves the API base for this configuration.
func (c *Config) BaseOrigin() (origin string, rule string) {
	return ResolveBaseOrigin(OriginInputs{
		Location:       c.Location,
		DeployedOrigin: c.DeployedOrigin,
		Override:       c.API,
	})
}

func ensureDefaultConfigFile(dir string) error {
	path := filepath.Join(dir, configFileExt)
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
