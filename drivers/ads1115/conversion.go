package ads1115

import (
	"time"

	"ads1115-go/x/mathx"
)

// ---------------- Single-shot ----------------

// StartSingleShot writes a single-shot configuration with OS=1 for the given
// input and gain. Comparator and data rate fields are carried from the cache.
func (d *Device) StartSingleShot(ch Channel, g Gain) error {
	f := d.fields
	f.Start = true
	f.Channel = ch
	f.Gain = g
	f.Mode = ModeSingleShot
	if err := f.Validate(); err != nil {
		return err
	}
	d.state = StateConfiguring
	if err := d.writeFields(f); err != nil {
		d.state = StateIdle
		return err
	}
	d.state = StateConverting
	return nil
}

// PollBound returns the maximum number of OS-bit reads PollUntilReady makes
// at data rate r: the conversion period plus PollMargin, in PollInterval
// steps, plus the initial read.
func (d *Device) PollBound(r DataRate) int {
	budget := r.Period() + d.pollMargin
	return int(mathx.CeilDiv(budget, d.pollInterval)) + 1
}

// PollUntilReady reads the config register until the OS bit reports the
// conversion complete. It gives up with ErrConversionTimeout after
// PollBound(r) reads.
func (d *Device) PollUntilReady(r DataRate) error {
	if !r.Valid() {
		return &ConfigError{Field: "data_rate", Reason: "out of range"}
	}
	limit := d.PollBound(r)
	for i := 0; i < limit; i++ {
		w, err := d.ReadConfig()
		if err != nil {
			return err
		}
		if w.Ready() {
			d.state = StateReady
			return nil
		}
		if i+1 < limit {
			d.sleep(d.pollInterval)
		}
	}
	return ErrConversionTimeout
}

// ReadConversion reads the conversion register and scales it with the active
// gain. A completed single-shot result returns the engine to idle.
func (d *Device) ReadConversion() (Sample, error) {
	raw, err := d.readS16(RegConversion)
	if err != nil {
		return Sample{}, err
	}
	if d.state == StateReady {
		d.state = StateIdle
	}
	return newSample(raw, d.fields.Gain), nil
}

// ReadSingle performs trigger, bounded poll and read.
func (d *Device) ReadSingle(ch Channel, g Gain) (Sample, error) {
	if err := d.StartSingleShot(ch, g); err != nil {
		return Sample{}, err
	}
	if err := d.PollUntilReady(d.fields.DataRate); err != nil {
		return Sample{}, err
	}
	return d.ReadConversion()
}

// ---------------- Continuous ----------------

// StartContinuous writes a continuous-mode configuration once and waits the
// settling time so the first read does not return a sample from the previous
// input.
func (d *Device) StartContinuous(ch Channel, g Gain, r DataRate) error {
	f := d.fields
	f.Start = false
	f.Channel = ch
	f.Gain = g
	f.Mode = ModeContinuous
	f.DataRate = r
	return d.applyContinuous(f)
}

// SelectInput changes input and gain while in continuous mode. The full
// configuration is rewritten and the settling time applied again, because a
// MUX change invalidates the conversion in flight.
func (d *Device) SelectInput(ch Channel, g Gain) error {
	if d.fields.Mode != ModeContinuous {
		return ErrNotContinuous
	}
	f := d.fields
	f.Channel = ch
	f.Gain = g
	return d.applyContinuous(f)
}

// Continuous reports whether the device was last configured free-running.
func (d *Device) Continuous() bool { return d.fields.Mode == ModeContinuous }

func (d *Device) applyContinuous(f Fields) error {
	if err := f.Validate(); err != nil {
		return err
	}
	d.state = StateConfiguring
	if err := d.writeFields(f); err != nil {
		d.state = StateIdle
		return err
	}
	d.settle(f.DataRate)
	d.state = StateConverting
	return nil
}

// SettleTime returns the wait applied after a continuous reconfiguration.
func (d *Device) SettleTime(r DataRate) time.Duration {
	return r.Period() * time.Duration(d.settleSamples)
}
