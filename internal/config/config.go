// Package config provides TOML configuration loading for the wheel-tracking
// VMC engine.
//
// The configuration file supports the following structure:
//
//	enabled = true
//	report_interval = 60.0
//
//	[input]
//	address = "0.0.0.0:39539"
//
//	[output]
//	address = "127.0.0.1:39540"
//
//	[device.wheel]
//	position = [0, 1.2, 0.4]
//	rotation = [0, 0, 0]
//	radius = 0.17
//
//	[device.wheel.glue]
//	left = 180
//	right = 0
//
//	[mapping.axis.wheel.on_update.device]
//	wheel = { range = [0, 360] }
//
// Example usage:
//
//	cfg, err := config.Load("config.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the complete configuration for the engine.
type Config struct {
	// Enabled gates the whole engine (default: true).
	Enabled bool `toml:"enabled"`

	Input  SocketConfig `toml:"input"`
	Output SocketConfig `toml:"output"`

	// ReportInterval is the period, in seconds, between periodic summary
	// log lines. Zero disables periodic reports.
	ReportInterval float64 `toml:"report_interval"`

	// Device maps a device name (used by mapping entries) to its
	// descriptor.
	Device map[string]DeviceConfig `toml:"device"`

	Mapping MappingConfig `toml:"mapping"`
}

// SocketConfig names a UDP endpoint.
type SocketConfig struct {
	Address string `toml:"address"`
}

// DeviceConfig describes one configured peripheral. Only Wheel is
// implemented; the Kind field selects it explicitly so unknown future
// kinds fail loudly instead of silently defaulting.
type DeviceConfig struct {
	Kind string `toml:"kind"`

	Position [3]float32 `toml:"position"`
	Rotation [3]float32 `toml:"rotation"`
	Radius   float32    `toml:"radius"`
	Tracker  string     `toml:"tracker"`

	Glue       *GlueConfig       `toml:"glue"`
	Rotational *RotationalConfig `toml:"rotational"`
}

// GlueConfig configures a Glue technique: fixed hand positions on the
// wheel rim, given as clock-face degrees (0 = north/top).
type GlueConfig struct {
	Left  float32 `toml:"left"`
	Right float32 `toml:"right"`
}

// RotationalConfig configures a Rotational technique. All angle fields are
// in degrees. A table with every field zero selects the tuned defaults (see
// device.DefaultRotationalConfig); otherwise every field is used as given,
// and a field left out stays zero.
type RotationalConfig struct {
	CrossStart   float32 `toml:"cross_start"`
	CrossGrip    float32 `toml:"cross_grip"`
	CrossOut     float32 `toml:"cross_out"`
	CrossRetract float32 `toml:"cross_retract"`
	CrossEnd     float32 `toml:"cross_end"`

	TurnStart float32 `toml:"turn_start"`
	TurnGrip  float32 `toml:"turn_grip"`
	TurnLift  float32 `toml:"turn_lift"`
	TurnOut   float32 `toml:"turn_out"`
	TurnEnd   float32 `toml:"turn_end"`
}

// LinearMap is a configured [a, b] output range for an axis or button
// mapping entry.
type LinearMap struct {
	Range [2]float32 `toml:"range"`
}

// OutputSet is a named set of blendshape/device writes applied together.
type OutputSet struct {
	Blendshape map[string]LinearMap `toml:"blendshape"`
	Device     map[string]LinearMap `toml:"device"`
}

// AxisMappingConfig configures one semantic axis ID's fold into blendshape
// and device writes.
type AxisMappingConfig struct {
	OnUpdate OutputSet `toml:"on_update"`
}

// ButtonMappingConfig configures one semantic button ID's fold, plus
// one-shot press/release tables.
type ButtonMappingConfig struct {
	OnUpdate  OutputSet          `toml:"on_update"`
	OnPress   map[string]float32 `toml:"on_press"`
	OnRelease map[string]float32 `toml:"on_release"`
}

// MappingConfig collects the axis and button mapping tables, keyed by
// semantic event ID.
type MappingConfig struct {
	Axis   map[string]AxisMappingConfig   `toml:"axis"`
	Button map[string]ButtonMappingConfig `toml:"button"`
}

// Default returns the default configuration: engine enabled, input bound
// on all interfaces, output to local loopback, and reports every 60
// seconds.
func Default() *Config {
	return &Config{
		Enabled:        true,
		Input:          SocketConfig{Address: "0.0.0.0:39539"},
		Output:         SocketConfig{Address: "127.0.0.1:39540"},
		ReportInterval: 60,
		Device:         map[string]DeviceConfig{},
	}
}

// Load reads and parses a TOML configuration file. If path is empty, the
// default configuration is returned unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Input.Address == "" {
		return fmt.Errorf("input.address must not be empty")
	}
	if c.Output.Address == "" {
		return fmt.Errorf("output.address must not be empty")
	}
	if c.ReportInterval < 0 {
		return fmt.Errorf("report_interval must not be negative, got %f", c.ReportInterval)
	}

	for name, d := range c.Device {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("device %q: %w", name, err)
		}
	}

	return nil
}

// Validate checks one device descriptor.
func (d *DeviceConfig) Validate() error {
	switch d.Kind {
	case "", "wheel":
	default:
		return fmt.Errorf("unknown device kind %q", d.Kind)
	}

	if d.Radius <= 0 {
		return fmt.Errorf("radius must be positive, got %f", d.Radius)
	}
	if d.Glue != nil && d.Rotational != nil {
		return fmt.Errorf("a wheel may configure at most one technique")
	}

	return nil
}
