// Package config loads the smart-plug daemon configuration from YAML.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/sweeney/smart-plug/internal/gpio"
	"github.com/sweeney/smart-plug/internal/plug"
	"github.com/sweeney/smart-plug/internal/radio"
	"github.com/sweeney/smart-plug/internal/sensor"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Node   NodeConfig   `yaml:"node"`
	Radio  RadioConfig  `yaml:"radio"`
	GPIO   GPIOConfig   `yaml:"gpio"`
	Timing TimingConfig `yaml:"timing"`
	Sensor SensorConfig `yaml:"sensor"`
	HTTP   HTTPConfig   `yaml:"http"`
}

type NodeConfig struct {
	ID      string `yaml:"id"`
	Address string `yaml:"address"` // 64-bit EUI, hex
}

type RadioConfig struct {
	Broker   string        `yaml:"broker"`
	ClientID string        `yaml:"client_id"`
	Prefix   string        `yaml:"prefix"`
	Timeout  time.Duration `yaml:"timeout"`
	Inbox    int           `yaml:"inbox"`
}

type GPIOConfig struct {
	Chip string    `yaml:"chip"`
	Pins gpio.Pins `yaml:"pins"`
}

type TimingConfig struct {
	Discovery time.Duration `yaml:"discovery"`
	Telemetry time.Duration `yaml:"telemetry"`
	Debounce  time.Duration `yaml:"debounce"`
	Poll      time.Duration `yaml:"poll"`
}

type SensorConfig struct {
	Payload string `yaml:"payload"`
	File    string `yaml:"file"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"` // empty disables the status server
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

// Load reads path, applies defaults and validates. An empty path yields the
// defaults.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Node.ID == "" {
		c.Node.ID = "smart-plug"
	}
	if c.Node.Address == "" {
		c.Node.Address = "0013a20000000001"
	}
	if c.Radio.Broker == "" {
		c.Radio.Broker = "tcp://127.0.0.1:1883"
	}
	if c.Radio.Prefix == "" {
		c.Radio.Prefix = radio.DefaultPrefix
	}
	if c.Radio.Timeout == 0 {
		c.Radio.Timeout = 500 * time.Millisecond
	}
	if c.Radio.Inbox == 0 {
		c.Radio.Inbox = 16
	}
	if c.GPIO.Chip == "" {
		c.GPIO.Chip = gpio.DefaultChip
	}
	if c.GPIO.Pins == (gpio.Pins{}) {
		c.GPIO.Pins = gpio.DefaultPins
	}
	if c.Timing.Discovery == 0 {
		c.Timing.Discovery = plug.DefaultDiscoveryPeriodMs * time.Millisecond
	}
	if c.Timing.Telemetry == 0 {
		c.Timing.Telemetry = plug.DefaultTelemetryPeriodMs * time.Millisecond
	}
	if c.Timing.Debounce == 0 {
		c.Timing.Debounce = plug.DefaultDebouncePeriodMs * time.Millisecond
	}
	if c.Timing.Poll == 0 {
		c.Timing.Poll = 10 * time.Millisecond
	}
	if c.Sensor.Payload == "" && c.Sensor.File == "" {
		c.Sensor.Payload = sensor.DefaultPayload
	}
}

// Validate checks values that have no usable default.
func (c *Config) Validate() error {
	if _, err := plug.ParseAddress(c.Node.Address); err != nil {
		return fmt.Errorf("node.address: %w", err)
	}
	if c.Node.ID == plug.CoordinatorNodeID {
		return fmt.Errorf("node.id %q is reserved for the coordinator", c.Node.ID)
	}
	if c.Radio.Broker == "" {
		return fmt.Errorf("radio.broker is required")
	}
	if c.Radio.Timeout < 0 {
		return fmt.Errorf("radio.timeout must not be negative")
	}
	if c.Radio.Inbox < 1 {
		return fmt.Errorf("radio.inbox must be at least 1")
	}
	if err := c.GPIO.Pins.Validate(); err != nil {
		return fmt.Errorf("gpio.pins: %w", err)
	}
	for name, d := range map[string]time.Duration{
		"timing.discovery": c.Timing.Discovery,
		"timing.telemetry": c.Timing.Telemetry,
		"timing.debounce":  c.Timing.Debounce,
		"timing.poll":      c.Timing.Poll,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	for name, d := range map[string]time.Duration{
		"timing.discovery": c.Timing.Discovery,
		"timing.telemetry": c.Timing.Telemetry,
		"timing.debounce":  c.Timing.Debounce,
	} {
		if d < time.Millisecond {
			return fmt.Errorf("%s (%v) must be at least 1ms", name, d)
		}
	}
	if c.Timing.Poll >= c.Timing.Debounce || c.Timing.Poll >= c.Timing.Telemetry {
		return fmt.Errorf("timing.poll (%v) must be shorter than debounce and telemetry periods", c.Timing.Poll)
	}
	return nil
}

// NodeAddress returns the parsed node address. Call after Validate.
func (c *Config) NodeAddress() plug.Address {
	addr, _ := plug.ParseAddress(c.Node.Address)
	return addr
}

// Periods converts the timing section into gate periods.
func (c *Config) Periods() plug.Periods {
	return plug.Periods{
		DiscoveryMs: c.Timing.Discovery.Milliseconds(),
		TelemetryMs: c.Timing.Telemetry.Milliseconds(),
		DebounceMs:  c.Timing.Debounce.Milliseconds(),
	}
}

// RadioOptions builds the radio connection options.
func (c *Config) RadioOptions() radio.Options {
	return radio.Options{
		Broker:    c.Radio.Broker,
		ClientID:  c.Radio.ClientID,
		Prefix:    c.Radio.Prefix,
		NodeID:    c.Node.ID,
		Address:   c.NodeAddress(),
		Timeout:   c.Radio.Timeout,
		InboxSize: c.Radio.Inbox,
	}
}

// SensorSource builds the configured sensor source. A file takes precedence over a
// static payload.
func (c *Config) SensorSource() plug.Sensor {
	if c.Sensor.File != "" {
		return &sensor.File{Path: c.Sensor.File}
	}
	return sensor.Static(c.Sensor.Payload)
}
