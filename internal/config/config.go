// Package config loads the daemon configuration from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Bus       BusConfig       `yaml:"bus"`
	Lights    LightsConfig    `yaml:"lights"`
	Indicator IndicatorConfig `yaml:"indicator"`
	HTTP      HTTPConfig      `yaml:"http"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	Log       LogConfig       `yaml:"log"`
}

// ---- BUS ----

type BusConfig struct {
	Driver       string `yaml:"driver"` // ioctl | periph | mock
	Device       string `yaml:"device"` // /dev/i2c-N for ioctl, bus name for periph
	Address      uint16 `yaml:"address"`
	MaxOpsPerSec int    `yaml:"max_ops_per_sec"`
}

// ---- LIGHTS ----

type LightsConfig struct {
	Driver   string `yaml:"driver"` // gpio | mock
	RedPin   string `yaml:"red_pin"`
	GreenPin string `yaml:"green_pin"`
}

// ---- INDICATOR ----

type IndicatorConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	SettleDelay  time.Duration `yaml:"settle_delay"`
	Epoch        time.Time     `yaml:"epoch"`
}

// ---- SURFACES ----

type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty disables the API
	MDNS bool   `yaml:"mdns"`
}

type MQTTConfig struct {
	Broker   string `yaml:"broker"` // empty disables telemetry
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Console     string `yaml:"console"` // serial device to tee logs to
	ConsoleBaud int    `yaml:"console_baud"`
}

const (
	DriverIoctl  = "ioctl"
	DriverPeriph = "periph"
	DriverGPIO   = "gpio"
	DriverMock   = "mock"
)

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Bus: BusConfig{
			Driver:       DriverIoctl,
			Device:       "/dev/i2c-1",
			Address:      0x32,
			MaxOpsPerSec: 500,
		},
		Lights: LightsConfig{
			Driver:   DriverGPIO,
			RedPin:   "GPIO17",
			GreenPin: "GPIO27",
		},
		Indicator: IndicatorConfig{
			PollInterval: 10 * time.Millisecond,
			SettleDelay:  time.Second,
			Epoch:        time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
			MDNS: true,
		},
		MQTT: MQTTConfig{
			Topic: "meetlight/status",
		},
		Log: LogConfig{
			Level:       "info",
			ConsoleBaud: 115200,
		},
	}
}

// Load reads path over the defaults, then normalizes and validates the
// result. Unknown keys are an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults, then normalizes and validates.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	Normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LogLevel returns the configured slog level. Validate guarantees it parses.
func (c *Config) LogLevel() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
