package storage

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Site struct {
		BaseURL     string `yaml:"base_url"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
	} `yaml:"site"`

	Content struct {
		Dir string `yaml:"dir"`
	} `yaml:"content"`

	Web struct {
		Addr     string `yaml:"addr"`
		PageSize int    `yaml:"page_size"`
	} `yaml:"web"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Database.Path = "./devlog.db"
	cfg.Site.Title = "devlog"
	cfg.Site.Description = "Development notes and projects"
	cfg.Content.Dir = "./content"
	cfg.Web.Addr = ":8080"
	cfg.Web.PageSize = 10
	return cfg
}

// LoadConfig reads the config file at path, layered over defaults, then
// applies environment overrides (DEVLOG_DB, DEVLOG_SITE_URL). A missing
// file is not an error; defaults and environment apply alone.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if db := os.Getenv("DEVLOG_DB"); db != "" {
		cfg.Database.Path = db
	}
	if url := os.Getenv("DEVLOG_SITE_URL"); url != "" {
		cfg.Site.BaseURL = url
	}

	return cfg, nil
}

// Validate reports every missing required value in one error so a
// misconfigured deployment fails fast with the full list.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.Path == "" {
		missing = append(missing, "database.path (or DEVLOG_DB)")
	}
	if c.Site.BaseURL == "" {
		missing = append(missing, "site.base_url (or DEVLOG_SITE_URL)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// WriteDefault writes the default config to path, refusing to clobber
// an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
