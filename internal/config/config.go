// Package config resolves tada's settings from defaults, a TOML file and
// TADA_* environment variables. Command-line flags are applied on top by the
// CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Backends and themes understood by the rest of the program.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"
)

var themes = []string{"classic", "neon", "mono"}

// Config is the resolved configuration.
type Config struct {
	DataDir  string `toml:"data_dir"`
	Backend  string `toml:"backend"`
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
	NoColor  bool   `toml:"no_color"`
	// Watch reloads the TUI when the data files change on disk.
	Watch bool `toml:"watch"`
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		DataDir:  defaultDataDir(),
		Backend:  BackendJSON,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
		Watch:    true,
	}
}

// DefaultPath is $XDG_CONFIG_HOME/tada/config.toml, falling back to the OS
// config dir.
func DefaultPath() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, "tada", "config.toml")
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tada", "config.toml")
}

func defaultDataDir() string {
	if x := os.Getenv("XDG_DATA_HOME"); x != "" {
		return filepath.Join(x, "tada")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "tada")
}

// Load builds a Config. path names the TOML file; when empty DefaultPath is
// used and a missing file is fine. An explicitly named file must exist.
// Enumerated values are not checked here: callers apply their own overrides
// and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file %s: %w", path, err)
			}
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}
	cfg.DataDir = expandPath(cfg.DataDir)
	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TADA_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TADA_BACKEND"); v != "" {
		cfg.Backend = strings.ToLower(v)
	}
	if v := os.Getenv("TADA_THEME"); v != "" {
		cfg.Theme = strings.ToLower(v)
	}
	if v := os.Getenv("TADA_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TADA_NO_COLOR"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TADA_NO_COLOR: %w", err)
		}
		cfg.NoColor = b
	}
	// The de facto convention; any value disables color.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.NoColor = true
	}
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("backend %q: want %s or %s", c.Backend, BackendJSON, BackendSQLite)
	}
	valid := false
	for _, t := range themes {
		if c.Theme == t {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("theme %q: want one of %s", c.Theme, strings.Join(themes, ", "))
	}
	if c.DataDir == "" {
		return errors.New("data_dir is empty")
	}
	return nil
}

// SQLitePath is where the sqlite backend keeps its database.
func (c *Config) SQLitePath() string { return filepath.Join(c.DataDir, "tada.db") }

func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if p == "~" || strings.HasPrefix(p, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return p
		}
		return filepath.Join(home, strings.TrimPrefix(p[1:], "/"))
	}
	return p
}
