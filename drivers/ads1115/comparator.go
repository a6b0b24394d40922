package ads1115

import (
	"time"

	"ads1115-go/x/mathx"
)

// AlertSignal is the "alert observed" flag set by the ALERT/RDY interrupt
// handler. Observed must reflect the flag at the instant of the call.
type AlertSignal interface {
	Observed() bool
	Clear()
}

// Thresholds holds the Lo_thresh and Hi_thresh register codes.
type Thresholds struct {
	Low, High int16
}

// Outside reports whether raw would count as out of bounds for mode m: above
// High for the traditional comparator, outside [Low, High] for the window
// comparator.
func (t Thresholds) Outside(raw int16, m CompareMode) bool {
	if m == CompareWindow {
		return raw < t.Low || raw > t.High
	}
	return raw > t.High
}

// SetThresholds writes Lo_thresh then Hi_thresh. Ordering is not checked; for
// the traditional comparator low <= high is the caller's precondition.
func (d *Device) SetThresholds(low, high int16) error {
	if err := d.WriteRegister(RegLowThreshold, uint16(low)); err != nil {
		return err
	}
	return d.WriteRegister(RegHighThreshold, uint16(high))
}

// ReadThresholds reads both threshold registers.
func (d *Device) ReadThresholds() (Thresholds, error) {
	lo, err := d.readS16(RegLowThreshold)
	if err != nil {
		return Thresholds{}, err
	}
	hi, err := d.readS16(RegHighThreshold)
	if err != nil {
		return Thresholds{}, err
	}
	return Thresholds{Low: lo, High: hi}, nil
}

// ComparatorSettings are the acquisition and comparator fields written by
// EnableComparator.
type ComparatorSettings struct {
	Channel  Channel
	Gain     Gain
	DataRate DataRate
	Mode     CompareMode
	Polarity Polarity
	Latch    bool
	Queue    Queue
}

// Validate rejects out-of-range values and a disabled queue.
func (s ComparatorSettings) Validate() error {
	if err := s.fields().Validate(); err != nil {
		return err
	}
	if s.Queue == QueueDisabled {
		return &ConfigError{Field: "queue", Reason: "comparator needs a queue depth of 1, 2 or 4"}
	}
	return nil
}

func (s ComparatorSettings) fields() Fields {
	return Fields{
		Channel:     s.Channel,
		Gain:        s.Gain,
		Mode:        ModeContinuous,
		DataRate:    s.DataRate,
		CompareMode: s.Mode,
		Polarity:    s.Polarity,
		Latch:       s.Latch,
		Queue:       s.Queue,
	}
}

// EnableComparator starts continuous conversions with the comparator armed.
// This is the only path that enables ALERT assertion.
func (d *Device) EnableComparator(s ComparatorSettings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	return d.applyContinuous(s.fields())
}

// DisableComparator sets COMP_QUE to disabled, leaving acquisition as is.
func (d *Device) DisableComparator() error {
	f := d.fields
	f.Start = false
	f.Queue = QueueDisabled
	f.Latch = false
	return d.writeFields(f)
}

// ComparatorEnabled reports whether the cached configuration arms ALERT.
func (d *Device) ComparatorEnabled() bool { return d.fields.Queue != QueueDisabled }

// ComparatorConfig combines comparator settings with thresholds in volts.
type ComparatorConfig struct {
	ComparatorSettings
	Low, High float64
}

// Validate checks the settings and, for the traditional comparator, the
// threshold ordering.
func (c ComparatorConfig) Validate() error {
	if err := c.ComparatorSettings.Validate(); err != nil {
		return err
	}
	if c.Mode == CompareThreshold && c.Low > c.High {
		return &ConfigError{Field: "thresholds", Reason: "low above high"}
	}
	return nil
}

// Thresholds converts the volt thresholds to codes at the configured gain.
func (c ComparatorConfig) Thresholds() Thresholds {
	return Thresholds{
		Low:  VoltageToCode(c.Low, c.Gain),
		High: VoltageToCode(c.High, c.Gain),
	}
}

// ArmComparator validates c, then programs thresholds and enables the
// comparator. Nothing is written when validation fails.
func (d *Device) ArmComparator(c ComparatorConfig) error {
	if err := c.Validate(); err != nil {
		return err
	}
	t := c.Thresholds()
	if err := d.SetThresholds(t.Low, t.High); err != nil {
		return err
	}
	return d.EnableComparator(c.ComparatorSettings)
}

// WaitForAlert polls sig for up to timeoutSamples sample periods at the
// current data rate. When the alert is observed the flag is cleared and the
// conversion register read, which releases a latched ALERT; the triggering
// sample is returned.
func (d *Device) WaitForAlert(sig AlertSignal, timeoutSamples int) (Sample, error) {
	if sig == nil {
		return Sample{}, ErrNoSignal
	}
	if timeoutSamples < 1 {
		return Sample{}, &ConfigError{Field: "timeout", Reason: "must be at least one sample"}
	}
	budget := d.fields.DataRate.Period() * time.Duration(timeoutSamples)
	polls := int(mathx.CeilDiv(budget, d.pollInterval))
	for i := 0; ; i++ {
		if sig.Observed() {
			sig.Clear()
			return d.ReadConversion()
		}
		if i >= polls {
			break
		}
		d.sleep(d.pollInterval)
	}
	return Sample{}, ErrAlertTimeout
}
