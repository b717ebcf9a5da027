// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/saimali7/Tour-CRM-sub000/internal/timeline"
)

// Config holds the application configuration.
type Config struct {
	Day     DayConfig     `toml:"day"`
	Storage StorageConfig `toml:"storage"`
	UI      UIConfig      `toml:"ui"`
}

// DayConfig holds the operating-day window and board granularity.
type DayConfig struct {
	Start       string `toml:"start"`        // e.g., "07:00"
	End         string `toml:"end"`          // e.g., "21:00"
	SlotMinutes int    `toml:"slot_minutes"` // height of one board row
	SnapMinutes int    `toml:"snap_minutes"` // drop-time rounding
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Day: DayConfig{
			Start:       "07:00",
			End:         "21:00",
			SlotMinutes: 30,
			SnapMinutes: 15,
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "tourboard.db"
	}
	return filepath.Join(home, ".local", "share", "tourboard", "tourboard.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "tourboard", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TOURBOARD_DAY_START"); v != "" {
		cfg.Day.Start = v
	}
	if v := os.Getenv("TOURBOARD_DAY_END"); v != "" {
		cfg.Day.End = v
	}
	if v := os.Getenv("TOURBOARD_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("TOURBOARD_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	start, err := timeline.ParseClock(c.Day.Start)
	if err != nil {
		return fmt.Errorf("day.start must be in HH:MM format, got %q", c.Day.Start)
	}
	end, err := timeline.ParseClock(c.Day.End)
	if err != nil {
		return fmt.Errorf("day.end must be in HH:MM format, got %q", c.Day.End)
	}
	if start >= end {
		return errors.New("day.start must be before day.end")
	}
	if c.Day.SlotMinutes <= 0 {
		return errors.New("slot_minutes must be positive")
	}
	if c.Day.SnapMinutes <= 0 {
		return errors.New("snap_minutes must be positive")
	}
	if (end-start)%c.Day.SlotMinutes != 0 {
		return fmt.Errorf("day window (%s-%s) must be divisible by slot_minutes (%d)",
			c.Day.Start, c.Day.End, c.Day.SlotMinutes)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Window returns the operating-day window.
func (c *Config) Window() (timeline.Window, error) {
	return timeline.NewWindow(c.Day.Start, c.Day.End)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
