// Package config loads planera settings from an optional config file
// with environment overrides. Everything has a sensible default so the
// CLI works with no configuration at all.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Database DatabaseConfig `json:"database"`
	Org      OrgConfig      `json:"org"`
	Defaults DefaultsConfig `json:"defaults"`
}

type DatabaseConfig struct {
	Path string `json:"path"`
}

// OrgConfig identifies the tenant and the acting leader. Every command
// runs scoped to this organization.
type OrgConfig struct {
	ID    string `json:"id"`
	Actor string `json:"actor"`
}

// DefaultsConfig seeds new plans and meetings.
type DefaultsConfig struct {
	Location  string `json:"location"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (c *Config) setDefaults() error {
	if c.Database.Path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		c.Database.Path = filepath.Join(home, ".planera", "planera.db")
	}
	if c.Org.ID == "" {
		c.Org.ID = "default"
	}
	if c.Defaults.StartTime == "" {
		c.Defaults.StartTime = "18:30"
	}
	if c.Defaults.EndTime == "" {
		c.Defaults.EndTime = "20:00"
	}
	return nil
}

// Load reads the config file at path, or the default location when path
// is empty. A missing default file is not an error. Environment
// variables prefixed PLANERA_ override file values, with __ separating
// nested keys (PLANERA_DATABASE__PATH).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if path == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, ".planera", "config.yaml")
		}
	}

	if path != "" {
		var parser koanf.Parser
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", filepath.Ext(path))
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			if explicit || !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("loading config %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider("PLANERA_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "planera_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.setDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
