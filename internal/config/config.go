// Package config loads the postboard YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/postboard/internal/constants"
)

// Config is the on-disk configuration
type Config struct {
	Debug          bool         `yaml:"debug"`
	StartMonth     string       `yaml:"start_month"` // YYYY-MM or "current"
	MaxPostsPerDay int          `yaml:"max_posts_per_day"`
	CaptionLimit   int          `yaml:"caption_limit"`
	EnforceMoveCap bool         `yaml:"enforce_move_cap"`
	Export         ExportConfig `yaml:"export"`
}

type ExportConfig struct {
	Format   string `yaml:"format"`   // md, html, sqlite or postgres
	Dir      string `yaml:"dir"`      // output directory for md/html
	Database string `yaml:"database"` // sqlite path or postgres URL without password
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		StartMonth:     constants.DefaultStartMonth,
		MaxPostsPerDay: constants.MaxPostsPerDay,
		CaptionLimit:   constants.CaptionSoftLimit,
		Export: ExportConfig{
			Format:   constants.DefaultExportFormat,
			Dir:      ".",
			Database: constants.DefaultExportPath,
		},
	}
}

// Load reads the configuration at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to path, creating parent directories
func (c *Config) Save(path string) error {
	path = ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate checks field values
func (c *Config) Validate() error {
	if c.MaxPostsPerDay <= 0 {
		return fmt.Errorf("max_posts_per_day must be positive, got %d", c.MaxPostsPerDay)
	}
	if c.CaptionLimit <= 0 {
		return fmt.Errorf("caption_limit must be positive, got %d", c.CaptionLimit)
	}
	if _, _, err := ParseMonth(c.StartMonth, time.Now()); err != nil {
		return fmt.Errorf("invalid start_month: %w", err)
	}
	switch c.Export.Format {
	case "md", "html", "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid export.format %q (valid: md, html, sqlite, postgres)", c.Export.Format)
	}
	return nil
}

// InitialMonth resolves StartMonth relative to now
func (c *Config) InitialMonth(now time.Time) (time.Month, int, error) {
	return ParseMonth(c.StartMonth, now)
}

// ParseMonth parses a YYYY-MM value. "current" and "" resolve to now's month.
func ParseMonth(s string, now time.Time) (time.Month, int, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, constants.StartMonthCurrent) {
		return now.Month(), now.Year(), nil
	}
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return 0, 0, fmt.Errorf("expected YYYY-MM, got %q", s)
	}
	return t.Month(), t.Year(), nil
}

// ExpandPath replaces a leading "~" with the user's home directory
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Dir returns the directory holding the config file, used for logs and locks
func Dir(path string) string {
	return filepath.Dir(ExpandPath(path))
}
