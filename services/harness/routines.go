package harness

import (
	"ads1115-go/drivers/ads1115"
	"ads1115-go/errcode"
	"ads1115-go/services/alert"
)

// BasicRead reads ch in continuous mode times, pausing Delay before each
// read.
func (h *Harness) BasicRead(addr ads1115.Address, ch ads1115.Channel, times int) errcode.Status {
	if err := checkTimes(times); err != nil {
		return h.finish("basic read", err)
	}
	if err := h.checkRead(ch); err != nil {
		return h.finish("basic read", err)
	}
	err := h.withDevice(addr, func(d *ads1115.Device) error {
		if err := d.StartContinuous(ch, h.env.Gain, h.env.Rate); err != nil {
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
	return h.finish("basic read", err)
}

// ShotRead triggers one single-shot conversion per cycle.
func (h *Harness) ShotRead(addr ads1115.Address, ch ads1115.Channel, times int) errcode.Status {
	if err := checkTimes(times); err != nil {
		return h.finish("shot read", err)
	}
	if err := h.checkRead(ch); err != nil {
		return h.finish("shot read", err)
	}
	err := h.withDevice(addr, func(d *ads1115.Device) error {
		if err := d.SetDataRate(h.env.Rate); err != nil {
			return err
		}
		for i := 0; i < times; i++ {
			h.pause()
			s, err := d.ReadSingle(ch, h.env.Gain)
			if err != nil {
				return err
			}
			h.printf("ads1115: %d/%d.\n", i+1, times)
			h.printf("ads1115: adc is %0.4fV.\n", s.Volts)
		}
		return nil
	})
	return h.finish("shot read", err)
}

// InterruptRead reads with the comparator armed and stops at the first
// observed alert. Running out of cycles without one is not an error.
func (h *Harness) InterruptRead(addr ads1115.Address, ch ads1115.Channel, mode ads1115.CompareMode, low, high float64, times int) errcode.Status {
	if err := checkTimes(times); err != nil {
		return h.finish("interrupt read", err)
	}
	cfg := h.comparatorConfig(ch, mode, low, high)
	if err := cfg.Validate(); err != nil {
		return h.finish("interrupt read", err)
	}
	err := h.withDevice(addr, func(d *ads1115.Device) error {
		return h.withComparator(d, cfg, func(line *alert.Line) error {
			for i := 0; i < times; i++ {
				h.pause()
				s, err := d.ReadConversion()
				if err != nil {
					return err
				}
				h.printf("ads1115: %d/%d.\n", i+1, times)
				h.printf("ads1115: read is %0.4fV.\n", s.Volts)
				if line.Signal().Take() {
					h.printf("ads1115: find interrupt.\n")
					break
				}
			}
			return nil
		})
	})
	return h.finish("interrupt read", err)
}
