// Package config loads the wbs configuration file and environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alexanderramin/wbs/internal/domain"
	"gopkg.in/yaml.v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Config holds settings read from config.yaml.
type Config struct {
	DataPath    string   `yaml:"data_path"`
	Backend     string   `yaml:"backend"`
	Statuses    []string `yaml:"statuses"`
	Indent      string   `yaml:"indent"`
	LogUseCases bool     `yaml:"log_use_cases"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Path resolves the location of the config file. WBS_CONFIG wins, then
// $XDG_CONFIG_HOME/wbs/config.yaml, then ~/.config/wbs/config.yaml.
func Path() (string, error) {
	if p := os.Getenv("WBS_CONFIG"); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wbs", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "wbs", "config.yaml"), nil
}

// Load reads the config file, falls back to defaults when it is missing,
// then applies WBS_DATA, WBS_BACKEND and WBS_LOG.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile is Load against an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("WBS_DATA"); v != "" {
		cfg.DataPath = v
	}
	if v := os.Getenv("WBS_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("WBS_LOG"); v != "" {
		cfg.LogUseCases, _ = strconv.ParseBool(v)
	}
}

func applyDefaults(cfg *Config) {
	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	if cfg.Backend == "" {
		cfg.Backend = BackendJSON
	}
	if cfg.DataPath == "" {
		cfg.DataPath = defaultDataPath(cfg.Backend)
	}
	if len(cfg.Statuses) == 0 {
		for _, st := range domain.DefaultStatuses {
			cfg.Statuses = append(cfg.Statuses, string(st))
		}
	}
	if cfg.Indent == "" {
		cfg.Indent = "  "
	}
}

func defaultDataPath(backend string) string {
	name := "wbs_data.json"
	if backend == BackendSQLite {
		name = "wbs.db"
	}
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return name
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "wbs", name)
}

// Validate checks the backend and status list.
func (c *Config) Validate() error {
	if c.Backend != BackendJSON && c.Backend != BackendSQLite {
		return fmt.Errorf("config: unknown backend %q (want %s or %s)", c.Backend, BackendJSON, BackendSQLite)
	}
	seen := make(map[string]bool, len(c.Statuses))
	for _, s := range c.Statuses {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("config: blank status in statuses")
		}
		if seen[s] {
			return fmt.Errorf("config: duplicate status %q", s)
		}
		seen[s] = true
	}
	return nil
}

// StatusSet builds the domain status set from the configured names.
func (c *Config) StatusSet() domain.StatusSet {
	return domain.NewStatusSet(c.Statuses)
}
