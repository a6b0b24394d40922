// Package harness runs the ADS1115 validation tests and the read routines
// behind the shell. Every entry point returns an errcode.Status.
package harness

import (
	"fmt"
	"io"
	"time"

	"tinygo.org/x/drivers"

	"ads1115-go/drivers/ads1115"
	"ads1115-go/errcode"
	"ads1115-go/services/alert"
	"ads1115-go/types"
)

// Printer receives every line of harness output.
type Printer interface {
	Printf(format string, args ...any)
}

// WriterPrinter prints to an io.Writer.
type WriterPrinter struct{ W io.Writer }

func (p WriterPrinter) Printf(format string, args ...any) {
	fmt.Fprintf(p.W, format, args...)
}

// Env is everything a test run needs. Zero fields select defaults.
type Env struct {
	Bus drivers.I2C
	// Device is used as the driver config; Address is overridden per call.
	Device ads1115.Config
	// AlertPin is the host input wired to ALERT/RDY. Nil makes the
	// comparator paths fail.
	AlertPin types.IRQPin
	Out      Printer

	// Gain, Rate and ReadChannel cover what the command line does not
	// parameterise. Their zero values are the enum zero values (±6.144 V,
	// 8 SPS, AIN0_AIN1); services/config supplies 128 SPS.
	Gain        ads1115.Gain
	Rate        ads1115.DataRate
	ReadChannel ads1115.Channel

	// Delay between read cycles. Default 1 s.
	Delay time.Duration
	// AlertTimeoutSamples bounds each wait for an alert. Default 64.
	AlertTimeoutSamples int
	// Sleep is used for Delay. Default Device.Sleep, then time.Sleep.
	Sleep func(time.Duration)
}

// Harness runs tests against one bus.
type Harness struct {
	env Env
}

func New(env Env) *Harness {
	if env.Out == nil {
		env.Out = WriterPrinter{W: io.Discard}
	}
	if env.Delay <= 0 {
		env.Delay = time.Second
	}
	if env.AlertTimeoutSamples < 1 {
		env.AlertTimeoutSamples = 64
	}
	if env.Sleep == nil {
		env.Sleep = env.Device.Sleep
	}
	if env.Sleep == nil {
		env.Sleep = time.Sleep
	}
	return &Harness{env: env}
}

func (h *Harness) printf(format string, args ...any) {
	h.env.Out.Printf(format, args...)
}

// finish prints a failure line and folds err onto the status surface.
func (h *Harness) finish(what string, err error) errcode.Status {
	st := errcode.StatusOf(err)
	if st != errcode.StatusOK {
		h.printf("ads1115: %s failed: %v.\n", what, err)
	}
	return st
}

// open builds and probes a device at addr. The caller must Close it.
func (h *Harness) open(addr ads1115.Address) (*ads1115.Device, error) {
	cfg := h.env.Device
	cfg.Address = addr
	d, err := ads1115.New(h.env.Bus, cfg)
	if err != nil {
		return nil, err
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// withDevice runs fn with an open device and always closes it. A Close
// error is reported only when fn succeeded.
func (h *Harness) withDevice(addr ads1115.Address, fn func(d *ads1115.Device) error) (err error) {
	d, err := h.open(addr)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := d.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(d)
}

// comparator arms the comparator then the alert line. A failure unwinds
// whatever was enabled before returning. On success the caller must call
// release, which disarms the line then disables the comparator and returns
// the first error seen.
func (h *Harness) comparator(d *ads1115.Device, c ads1115.ComparatorConfig) (line *alert.Line, release func() error, err error) {
	if err := d.ArmComparator(c); err != nil {
		return nil, nil, err
	}
	line, err = alert.NewLine(h.env.AlertPin, alertEdge(c.Polarity))
	if err != nil {
		d.DisableComparator()
		return nil, nil, err
	}
	if err := line.Arm(); err != nil {
		d.DisableComparator()
		return nil, nil, err
	}
	release = func() error {
		err := line.Disarm()
		if derr := d.DisableComparator(); err == nil {
			err = derr
		}
		return err
	}
	// Drop anything asserted before the line was armed.
	if _, err := d.ReadConversion(); err != nil {
		release()
		return nil, nil, err
	}
	line.Signal().Clear()
	return line, release, nil
}

// withComparator runs fn with the comparator and line armed. A release
// error is reported only when fn succeeded.
func (h *Harness) withComparator(d *ads1115.Device, c ads1115.ComparatorConfig, fn func(line *alert.Line) error) (err error) {
	line, release, err := h.comparator(d, c)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := release(); err == nil {
			err = rerr
		}
	}()
	return fn(line)
}

func (h *Harness) comparatorConfig(ch ads1115.Channel, mode ads1115.CompareMode, low, high float64) ads1115.ComparatorConfig {
	return ads1115.ComparatorConfig{
		ComparatorSettings: ads1115.ComparatorSettings{
			Channel:  ch,
			Gain:     h.env.Gain,
			DataRate: h.env.Rate,
			Mode:     mode,
			Polarity: ads1115.ActiveLow,
			Latch:    true,
			Queue:    ads1115.QueueOne,
		},
		Low:  low,
		High: high,
	}
}

// alertEdge is the asserting edge of the open-drain ALERT/RDY output.
func alertEdge(p ads1115.Polarity) types.Edge {
	if p == ads1115.ActiveHigh {
		return types.EdgeRising
	}
	return types.EdgeFalling
}

// checkRead rejects a bad channel or a bad configured gain or rate before
// any bus traffic.
func (h *Harness) checkRead(ch ads1115.Channel) error {
	switch {
	case !ch.Valid():
		return &ads1115.ConfigError{Field: "channel", Reason: "out of range"}
	case !h.env.Gain.Valid():
		return &ads1115.ConfigError{Field: "gain", Reason: "out of range"}
	case !h.env.Rate.Valid():
		return &ads1115.ConfigError{Field: "data_rate", Reason: "out of range"}
	}
	return nil
}

func checkTimes(times int) error {
	if times < 0 {
		return &ads1115.ConfigError{Field: "times", Reason: "negative"}
	}
	return nil
}

func (h *Harness) pause() { h.env.Sleep(h.env.Delay) }

func mismatch(op, msg string) error {
	return &errcode.E{C: errcode.Mismatch, Op: op, Msg: msg}
}
