// Package ads1115 provides a minimal TinyGo driver for the ADS1115 16-bit
// delta-sigma ADC with programmable gain and a threshold comparator.
//
// Design notes (datasheet references):
// • I2C 16-bit register protocol; pointer byte then MSB, LSB.
// • Four strap-selected 7-bit addresses (0x48..0x4B).
// • Single-shot conversions are started by writing OS=1 and polled on the OS
//   readback bit; continuous mode free-runs at the selected data rate.
// • ALERT/RDY comparator with traditional (hysteresis) or window mode,
//   latch and 1/2/4-conversion queue.
//
// A Device is not safe for concurrent use; it caches the last written
// configuration word.
package ads1115

import (
	"time"

	"tinygo.org/x/drivers"
)

// State of the conversion engine.
type State uint8

const (
	StateIdle State = iota
	StateConfiguring
	StateConverting
	StateReady
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConfiguring:
		return "configuring"
	case StateConverting:
		return "converting"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Config controls addressing and polling behaviour. Zero values select
// defaults.
type Config struct {
	Address Address
	// PollInterval is the delay between OS-bit and alert polls. Default 1 ms.
	PollInterval time.Duration
	// PollMargin is added to the worst-case conversion time when bounding
	// PollUntilReady. Default 10 ms.
	PollMargin time.Duration
	// SettleSamples is the number of sample periods waited after a continuous
	// mode (re)configuration. Default and minimum 1.
	SettleSamples int
	// Sleep suspends the caller between polls. Default time.Sleep.
	Sleep func(time.Duration)
}

// Device wraps an I2C connection to one ADS1115.
type Device struct {
	i2c  drivers.I2C
	addr uint16

	fields Fields     // last written field set
	cfg    ConfigWord // last written word (OS bit as written)
	state  State

	pollInterval  time.Duration
	pollMargin    time.Duration
	settleSamples int
	sleep         func(time.Duration)

	// Fixed buffers to avoid per-call heap allocations.
	w [3]byte
	r [2]byte
}

// New creates a Device. It does not touch the bus.
func New(i2c drivers.I2C, cfg Config) (*Device, error) {
	if !cfg.Address.Valid() {
		return nil, &ConfigError{Field: "address", Reason: "unknown strap"}
	}
	d := &Device{
		i2c:           i2c,
		addr:          cfg.Address.BusAddress(),
		fields:        DefaultFields(),
		cfg:           ConfigPowerOn,
		pollInterval:  cfg.PollInterval,
		pollMargin:    cfg.PollMargin,
		settleSamples: cfg.SettleSamples,
		sleep:         cfg.Sleep,
	}
	if d.pollInterval <= 0 {
		d.pollInterval = time.Millisecond
	}
	if d.pollMargin <= 0 {
		d.pollMargin = 10 * time.Millisecond
	}
	if d.settleSamples < 1 {
		d.settleSamples = 1
	}
	if d.sleep == nil {
		d.sleep = time.Sleep
	}
	return d, nil
}

// Init probes the device by reading the config register and adopts its
// contents as the cached configuration.
func (d *Device) Init() error {
	v, err := d.ReadRegister(RegConfig)
	if err != nil {
		return err
	}
	f := Decode(ConfigWord(v))
	f.Start = false
	d.fields = f
	d.cfg = f.Encode()
	d.state = StateIdle
	return nil
}

// Close disables the comparator and returns the device to single-shot
// (power-down between conversions).
func (d *Device) Close() error {
	f := d.fields
	f.Start = false
	f.Mode = ModeSingleShot
	f.Queue = QueueDisabled
	f.Latch = false
	err := d.writeFields(f)
	d.state = StateIdle
	return err
}

// BusAddress returns the resolved 7-bit address.
func (d *Device) BusAddress() uint16 { return d.addr }

// State returns the conversion engine state.
func (d *Device) State() State { return d.state }

// Fields returns the cached configuration fields.
func (d *Device) Fields() Fields { return d.fields }

// Cached returns the last written config word, OS bit as written.
func (d *Device) Cached() ConfigWord { return d.cfg }

// Gain returns the gain used to scale conversion reads.
func (d *Device) Gain() Gain { return d.fields.Gain }

// ---------------- CONFIG register ----------------

// ReadConfig reads the raw config register.
func (d *Device) ReadConfig() (ConfigWord, error) {
	v, err := d.ReadRegister(RegConfig)
	return ConfigWord(v), err
}

// WriteConfig validates and writes a complete field set. The OS bit is taken
// from f.Start.
func (d *Device) WriteConfig(f Fields) error {
	if err := f.Validate(); err != nil {
		return err
	}
	return d.writeFields(f)
}

// writeFields writes without validation and refreshes the cache on success.
func (d *Device) writeFields(f Fields) error {
	w := f.Encode()
	if err := d.WriteRegister(RegConfig, uint16(w)); err != nil {
		return err
	}
	f.Start = false
	d.fields = f
	d.cfg = w
	return nil
}

// SetDataRate updates the data rate used by subsequent acquisitions. In
// continuous mode the register is rewritten and the new rate settled.
func (d *Device) SetDataRate(r DataRate) error {
	if !r.Valid() {
		return &ConfigError{Field: "data_rate", Reason: "out of range"}
	}
	f := d.fields
	f.DataRate = r
	if f.Mode != ModeContinuous {
		d.fields = f
		return nil
	}
	if err := d.writeFields(f); err != nil {
		return err
	}
	d.settle(r)
	return nil
}

func (d *Device) settle(r DataRate) {
	d.sleep(d.SettleTime(r))
}
