// Package config provides configuration loading for the hsdate CLI.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/hyperspy/hsdatetime/datetime"
	"github.com/hyperspy/hsdatetime/datetime/types"
	"gopkg.in/yaml.v3"
)

// LocalZone names the time zone of the host.
const LocalZone = "Local"

// Config holds all configuration for the CLI.
type Config struct {
	// Debug enables development logging at debug level.
	Debug bool `yaml:"debug"`

	// Location is the time zone in which serial dates are rendered: a zone
	// database name, a fixed offset such as "+05:30", or "Local".
	Location string `yaml:"location"`

	// Format is the default format of the read command.
	Format string `yaml:"format"`

	// Use1904 selects the 1904 date system for spreadsheet cells.
	Use1904 bool `yaml:"use_1904"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed, or if it fails
// validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate returns an error if the location or format cannot be resolved.
func (c *Config) Validate() error {
	if _, err := c.TimeLocation(); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}
	if _, err := c.ReadFormat(); err != nil {
		return fmt.Errorf("invalid format: %w", err)
	}
	return nil
}

// TimeLocation resolves Location.
func (c *Config) TimeLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == LocalZone {
		return time.Local, nil
	}
	//nolint:wrapcheck
	return types.LoadZone(c.Location)
}

// ReadFormat resolves Format.
func (c *Config) ReadFormat() (datetime.Format, error) {
	//nolint:wrapcheck
	return datetime.ParseFormat(c.Format)
}
