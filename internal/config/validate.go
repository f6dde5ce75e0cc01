package config

import (
	"fmt"
	"log/slog"
	"time"
)

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	switch cfg.Bus.Driver {
	case DriverIoctl, DriverPeriph, DriverMock:
	default:
		return fmt.Errorf("config: bus.driver %q must be one of ioctl, periph, mock", cfg.Bus.Driver)
	}
	if cfg.Bus.Address > 0x7F {
		return fmt.Errorf("config: bus.address 0x%x is not a 7-bit address", cfg.Bus.Address)
	}
	if cfg.Bus.MaxOpsPerSec < 0 {
		return fmt.Errorf("config: bus.max_ops_per_sec must not be negative")
	}

	switch cfg.Lights.Driver {
	case DriverGPIO:
		if cfg.Lights.RedPin == "" || cfg.Lights.GreenPin == "" {
			return fmt.Errorf("config: lights.red_pin and lights.green_pin are required for gpio")
		}
		if cfg.Lights.RedPin == cfg.Lights.GreenPin {
			return fmt.Errorf("config: lights.red_pin and lights.green_pin are both %q", cfg.Lights.RedPin)
		}
	case DriverMock:
	default:
		return fmt.Errorf("config: lights.driver %q must be one of gpio, mock", cfg.Lights.Driver)
	}

	if p := cfg.Indicator.PollInterval; p <= 0 || p >= time.Second {
		return fmt.Errorf("config: indicator.poll_interval %s must be in (0, 1s)", p)
	}
	if cfg.Indicator.SettleDelay < 0 {
		return fmt.Errorf("config: indicator.settle_delay must not be negative")
	}
	if y := cfg.Indicator.Epoch.Year(); y < 2000 || y > 2099 {
		return fmt.Errorf("config: indicator.epoch year %d not in [2000, 2099]", y)
	}

	if cfg.MQTT.Broker != "" && cfg.MQTT.Topic == "" {
		return fmt.Errorf("config: mqtt.topic is required when mqtt.broker is set")
	}

	var l slog.Level
	if err := l.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return fmt.Errorf("config: log.level: %w", err)
	}
	if cfg.Log.Console != "" && cfg.Log.ConsoleBaud <= 0 {
		return fmt.Errorf("config: log.console_baud must be positive")
	}
	return nil
}
