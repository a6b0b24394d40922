// Package config loads the host shell configuration from YAML. A named
// embedded profile supplies every default; a file only needs the keys it
// changes.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ads1115-go/drivers/ads1115"
)

// EmbeddedConfigLookup allows overriding how profiles are resolved.
var EmbeddedConfigLookup = func(profile string) ([]byte, bool) {
	b, ok := embeddedConfigs[profile]
	return b, ok
}

// DefaultProfile is used when no profile is named.
const DefaultProfile = "sim"

const (
	BusSim     = "sim"
	BusLinux   = "linux"
	BusMachine = "machine" // RP2 I2C0, firmware only
)

type Config struct {
	Bus     BusConfig     `yaml:"bus"`
	Alert   AlertConfig   `yaml:"alert"`
	Driver  DriverConfig  `yaml:"driver"`
	Harness HarnessConfig `yaml:"harness"`
	Sim     SimConfig     `yaml:"sim"`
	Console ConsoleConfig `yaml:"console"`
	Pins    PinsConfig    `yaml:"pins"`
	Report  ReportConfig  `yaml:"report"`
}

// BusConfig selects the I2C bus. Name is a periph bus name ("1",
// "/dev/i2c-1") and is ignored for the simulator.
type BusConfig struct {
	Kind string `yaml:"kind"`
	Name string `yaml:"name"`
}

// AlertConfig names the GPIO wired to ALERT/RDY.
type AlertConfig struct {
	Pin string `yaml:"pin"`
}

type DriverConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`
	PollMargin    time.Duration `yaml:"poll_margin"`
	SettleSamples int           `yaml:"settle_samples"`
}

type HarnessConfig struct {
	Gain                float64       `yaml:"gain"` // full scale, volts
	Rate                uint32        `yaml:"rate"` // samples per second
	ReadChannel         string        `yaml:"read_channel"`
	Delay               time.Duration `yaml:"delay"`
	AlertTimeoutSamples int           `yaml:"alert_timeout_samples"`
}

// SimConfig describes the simulated chip.
type SimConfig struct {
	Address string     `yaml:"address"`
	Inputs  [4]float64 `yaml:"inputs"`
}

// ConsoleConfig selects a serial console instead of the interactive prompt
// when Device is set.
type ConsoleConfig struct {
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`
	Prompt string `yaml:"prompt"`
}

// PinsConfig is the wiring printed by "ads1115 -p".
type PinsConfig struct {
	SCL string `yaml:"scl"`
	SDA string `yaml:"sda"`
	INT string `yaml:"int"`
}

type ReportConfig struct {
	Path string `yaml:"path"`
}

// LoadError reports a configuration problem.
type LoadError struct {
	File    string
	Field   string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	s := "config: "
	if e.File != "" {
		s += e.File + ": "
	}
	if e.Field != "" {
		s += e.Field + ": "
	}
	s += e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *LoadError) Unwrap() error { return e.Cause }

// Default returns the named embedded profile.
func Default(profile string) (*Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	raw, ok := EmbeddedConfigLookup(profile)
	if !ok || len(raw) == 0 {
		return nil, &LoadError{Message: "no embedded profile " + profile}
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, &LoadError{Message: "embedded profile " + profile, Cause: err}
	}
	return &c, nil
}

// Parse applies data on top of the named profile and validates the result.
func Parse(profile string, data []byte) (*Config, error) {
	c, err := Default(profile)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, c); err != nil {
			return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads path (optional) on top of the named profile.
func Load(profile, path string) (*Config, error) {
	var data []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
		}
		data = b
	}
	c, err := Parse(profile, data)
	if le, ok := err.(*LoadError); ok {
		le.File = path
	}
	return c, err
}

// Validate checks every value the shell converts to a driver type.
func (c *Config) Validate() error {
	switch c.Bus.Kind {
	case BusSim:
	case BusLinux, BusMachine:
		if c.Alert.Pin == "" {
			return &LoadError{Field: "alert.pin", Message: "required for the " + c.Bus.Kind + " bus"}
		}
	default:
		return &LoadError{Field: "bus.kind", Message: "want sim, linux or machine"}
	}
	if _, err := c.Harness.DriverGain(); err != nil {
		return &LoadError{Field: "harness.gain", Message: "no such full scale", Cause: err}
	}
	if _, err := c.Harness.DriverRate(); err != nil {
		return &LoadError{Field: "harness.rate", Message: "no such data rate", Cause: err}
	}
	if _, err := ParseChannel(c.Harness.ReadChannel); err != nil {
		return &LoadError{Field: "harness.read_channel", Message: "unknown channel", Cause: err}
	}
	if _, err := ParseAddress(c.Sim.Address); err != nil {
		return &LoadError{Field: "sim.address", Message: "unknown strap", Cause: err}
	}
	if c.Driver.PollInterval < 0 || c.Driver.PollMargin < 0 || c.Harness.Delay < 0 {
		return &LoadError{Field: "driver", Message: "durations must not be negative"}
	}
	if c.Console.Device != "" && c.Console.Baud <= 0 {
		return &LoadError{Field: "console.baud", Message: "must be positive"}
	}
	return nil
}

// DriverConfig returns the driver settings for addr.
func (c *Config) DriverConfig(addr ads1115.Address) ads1115.Config {
	return ads1115.Config{
		Address:       addr,
		PollInterval:  c.Driver.PollInterval,
		PollMargin:    c.Driver.PollMargin,
		SettleSamples: c.Driver.SettleSamples,
	}
}

// DriverGain maps the full-scale volts onto a Gain.
func (h HarnessConfig) DriverGain() (ads1115.Gain, error) {
	for _, g := range ads1115.Gains {
		if g.FullScale() == h.Gain {
			return g, nil
		}
	}
	return 0, ads1115.ErrConfig
}

// DriverRate maps samples per second onto a DataRate.
func (h HarnessConfig) DriverRate() (ads1115.DataRate, error) {
	for _, r := range ads1115.DataRates {
		if r.SamplesPerSecond() == h.Rate {
			return r, nil
		}
	}
	return 0, ads1115.ErrConfig
}

// ParseChannel accepts the channel names printed by Channel.String.
func ParseChannel(s string) (ads1115.Channel, error) {
	for _, ch := range ads1115.Channels {
		if ch.String() == s {
			return ch, nil
		}
	}
	return 0, ads1115.ErrConfig
}

// ParseAddress accepts GND, VCC, SDA or SCL.
func ParseAddress(s string) (ads1115.Address, error) {
	for a := ads1115.AddrGND; a <= ads1115.AddrSCL; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, ads1115.ErrConfig
}
