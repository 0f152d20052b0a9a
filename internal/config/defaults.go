package config

import "github.com/hyperspy/hsdatetime/datetime"

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Location == "" {
		cfg.Location = LocalZone
	}
	if cfg.Format == "" {
		cfg.Format = string(datetime.FormatISO)
	}
}
