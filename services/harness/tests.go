package harness

import (
	"math"

	"ads1115-go/drivers/ads1115"
	"ads1115-go/errcode"
	"ads1115-go/services/alert"
)

// RegisterTest writes representative configuration words and threshold
// pairs and checks each read back, then checks the code/voltage conversion
// at every gain.
func (h *Harness) RegisterTest(addr ads1115.Address) errcode.Status {
	h.printf("ads1115: start register test.\n")
	err := h.withDevice(addr, func(d *ads1115.Device) error {
		if err := h.configRoundTrip(d); err != nil {
			return err
		}
		if err := h.thresholdRoundTrip(d); err != nil {
			return err
		}
		return h.conversionCheck()
	})
	if st := h.finish("register test", err); st != errcode.StatusOK {
		return st
	}
	h.printf("ads1115: finish register test.\n")
	return errcode.StatusOK
}

// registerCases varies one group of fields at a time around the power-on
// defaults, then crosses the comparator fields.
func registerCases() []ads1115.Fields {
	base := ads1115.DefaultFields()
	var out []ads1115.Fields
	for _, ch := range ads1115.Channels {
		for _, g := range ads1115.Gains {
			f := base
			f.Channel, f.Gain = ch, g
			out = append(out, f)
		}
	}
	for _, m := range []ads1115.Mode{ads1115.ModeContinuous, ads1115.ModeSingleShot} {
		for _, r := range ads1115.DataRates {
			f := base
			f.Mode, f.DataRate = m, r
			out = append(out, f)
		}
	}
	for _, cm := range []ads1115.CompareMode{ads1115.CompareThreshold, ads1115.CompareWindow} {
		for _, p := range []ads1115.Polarity{ads1115.ActiveLow, ads1115.ActiveHigh} {
			for _, lat := range []bool{false, true} {
				for _, q := range []ads1115.Queue{ads1115.QueueOne, ads1115.QueueTwo, ads1115.QueueFour, ads1115.QueueDisabled} {
					f := base
					f.CompareMode, f.Polarity, f.Latch, f.Queue = cm, p, lat, q
					out = append(out, f)
				}
			}
		}
	}
	return out
}

func (h *Harness) configRoundTrip(d *ads1115.Device) error {
	cases := registerCases()
	for _, f := range cases {
		if err := d.WriteConfig(f); err != nil {
			return err
		}
		got, err := d.ReadConfig()
		if err != nil {
			return err
		}
		want := f.Encode()
		if uint16(got)&ads1115.ConfigReadMask != uint16(want)&ads1115.ConfigReadMask {
			h.printf("ads1115: config wrote %#04x read %#04x.\n", uint16(want), uint16(got))
			return mismatch("config", "readback differs")
		}
	}
	h.printf("ads1115: config register check %d words ok.\n", len(cases))
	return nil
}

func (h *Harness) thresholdRoundTrip(d *ads1115.Device) error {
	pairs := []ads1115.Thresholds{
		{Low: -32768, High: 32767},
		{Low: -1, High: 1},
		{Low: 0x1234, High: 0x7654},
		{Low: 12000, High: -12000},
	}
	for _, p := range pairs {
		if err := d.SetThresholds(p.Low, p.High); err != nil {
			return err
		}
		got, err := d.ReadThresholds()
		if err != nil {
			return err
		}
		if got != p {
			h.printf("ads1115: thresholds wrote %d/%d read %d/%d.\n", p.Low, p.High, got.Low, got.High)
			return mismatch("thresholds", "readback differs")
		}
	}
	h.printf("ads1115: threshold register check ok.\n")
	return d.SetThresholds(ads1115.LowThresholdPowerOn, ads1115.HighThresholdPowerOn)
}

func (h *Harness) conversionCheck() error {
	for _, g := range ads1115.Gains {
		for _, raw := range []int16{math.MinInt16, -1, 0, 1, 12345, math.MaxInt16} {
			v := ads1115.ScaleToVoltage(raw, g)
			if back := ads1115.VoltageToCode(v, g); back != raw {
				h.printf("ads1115: gain %0.3fV code %d came back as %d.\n", g.FullScale(), raw, back)
				return mismatch("convert", "code does not round trip")
			}
		}
	}
	h.printf("ads1115: conversion check ok.\n")
	return nil
}

// ReadTest reads ReadChannel times in single-shot mode, then times more in
// continuous mode.
func (h *Harness) ReadTest(addr ads1115.Address, times int) errcode.Status {
	if err := checkTimes(times); err != nil {
		return h.finish("read test", err)
	}
	if err := h.checkRead(h.env.ReadChannel); err != nil {
		return h.finish("read test", err)
	}
	h.printf("ads1115: start read test.\n")
	err := h.withDevice(addr, func(d *ads1115.Device) error {
		if err := d.SetDataRate(h.env.Rate); err != nil {
			return err
		}
		h.printf("ads1115: single read test.\n")
		for i := 0; i < times; i++ {
			s, err := d.ReadSingle(h.env.ReadChannel, h.env.Gain)
			if err != nil {
				return err
			}
			h.printf("ads1115: %d/%d.\n", i+1, times)
			h.printf("ads1115: adc is %0.4fV.\n", s.Volts)
			h.pause()
		}
		h.printf("ads1115: continuous read test.\n")
		if err := d.StartContinuous(h.env.ReadChannel, h.env.Gain, h.env.Rate); err != nil {
			return err
		}
		for i := 0; i < times; i++ {
			h.pause()
			s, err := d.ReadConversion()
			if err != nil {
				return err
			}
			h.printf("ads1115: %d/%d.\n", i+1, times)
			h.printf("ads1115: adc is %0.4fV.\n", s.Volts)
		}
		return nil
	})
	if st := h.finish("read test", err); st != errcode.StatusOK {
		return st
	}
	h.printf("ads1115: finish read test.\n")
	return errcode.StatusOK
}

// MultichannelTest reads each channel times in single-shot mode and checks
// the MUX readback carries only that channel. With no channels given all
// eight are swept.
func (h *Harness) MultichannelTest(addr ads1115.Address, times int, channels ...ads1115.Channel) errcode.Status {
	if err := checkTimes(times); err != nil {
		return h.finish("multichannel test", err)
	}
	if len(channels) == 0 {
		channels = ads1115.Channels[:]
	}
	for _, ch := range channels {
		if !ch.Valid() {
			return h.finish("multichannel test", &ads1115.ConfigError{Field: "channel", Reason: "out of range"})
		}
	}
	h.printf("ads1115: start multichannel test.\n")
	err := h.withDevice(addr, func(d *ads1115.Device) error {
		if err := d.SetDataRate(h.env.Rate); err != nil {
			return err
		}
		for _, ch := range channels {
			h.printf("ads1115: channel %s.\n", ch)
			for i := 0; i < times; i++ {
				s, err := d.ReadSingle(ch, h.env.Gain)
				if err != nil {
					return err
				}
				w, err := d.ReadConfig()
				if err != nil {
					return err
				}
				if w.Channel() != ch {
					h.printf("ads1115: mux reads %s want %s.\n", w.Channel(), ch)
					return mismatch("mux", "channel readback differs")
				}
				h.printf("ads1115: %d/%d.\n", i+1, times)
				h.printf("ads1115: adc is %0.4fV.\n", s.Volts)
				h.pause()
			}
		}
		return nil
	})
	if st := h.finish("multichannel test", err); st != errcode.StatusOK {
		return st
	}
	h.printf("ads1115: finish multichannel test.\n")
	return errcode.StatusOK
}

// CompareTest arms the comparator on ch and waits for times alerts. Each
// triggering sample must lie outside the programmed bound for mode.
func (h *Harness) CompareTest(addr ads1115.Address, ch ads1115.Channel, mode ads1115.CompareMode, low, high float64, times int) errcode.Status {
	if err := checkTimes(times); err != nil {
		return h.finish("interrupt test", err)
	}
	cfg := h.comparatorConfig(ch, mode, low, high)
	if err := cfg.Validate(); err != nil {
		return h.finish("interrupt test", err)
	}
	h.printf("ads1115: start interrupt test.\n")
	h.printf("ads1115: %s mode, low %0.4fV high %0.4fV.\n", mode, low, high)
	err := h.withDevice(addr, func(d *ads1115.Device) error {
		return h.withComparator(d, cfg, func(line *alert.Line) error {
			th := cfg.Thresholds()
			for i := 0; i < times; i++ {
				s, err := d.WaitForAlert(line.Signal(), h.env.AlertTimeoutSamples)
				if err != nil {
					return err
				}
				h.printf("ads1115: %d/%d.\n", i+1, times)
				h.printf("ads1115: find interrupt.\n")
				h.printf("ads1115: adc is %0.4fV.\n", s.Volts)
				if !th.Outside(s.Raw, mode) {
					return mismatch("compare", "alert sample inside bound")
				}
			}
			return nil
		})
	})
	if st := h.finish("interrupt test", err); st != errcode.StatusOK {
		return st
	}
	h.printf("ads1115: finish interrupt test.\n")
	return errcode.StatusOK
}
