package config

import "strings"

// Normalize lower-cases driver names and fills zero values from Default.
// It runs before Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	def := Default()

	cfg.Bus.Driver = strings.ToLower(strings.TrimSpace(cfg.Bus.Driver))
	if cfg.Bus.Driver == "" {
		cfg.Bus.Driver = def.Bus.Driver
	}
	if cfg.Bus.Device == "" && cfg.Bus.Driver == DriverIoctl {
		cfg.Bus.Device = def.Bus.Device
	}
	if cfg.Bus.Address == 0 {
		cfg.Bus.Address = def.Bus.Address
	}

	cfg.Lights.Driver = strings.ToLower(strings.TrimSpace(cfg.Lights.Driver))
	if cfg.Lights.Driver == "" {
		cfg.Lights.Driver = def.Lights.Driver
	}

	if cfg.Indicator.Epoch.IsZero() {
		cfg.Indicator.Epoch = def.Indicator.Epoch
	}
	cfg.Indicator.Epoch = cfg.Indicator.Epoch.UTC()

	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = def.Log.Level
	}
	if cfg.Log.ConsoleBaud == 0 {
		cfg.Log.ConsoleBaud = def.Log.ConsoleBaud
	}
}
