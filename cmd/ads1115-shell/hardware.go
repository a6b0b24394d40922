//go:build !tinygo

package main

import (
	"errors"
	"log/slog"
	"time"

	"github.com/tarm/serial"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"ads1115-go/drivers/ads1115/adssim"
	"ads1115-go/services/alert"
	"ads1115-go/services/config"
	"ads1115-go/types"
)

// hardware is the bus and ALERT/RDY pin the shell drives.
type hardware struct {
	bus   drivers.I2C
	pin   types.IRQPin
	sleep func(time.Duration)
	close func() error
}

func (h *hardware) Close() error {
	if h.close == nil {
		return nil
	}
	return h.close()
}

// Compile-time check: periph buses already speak the tinygo Tx shape.
var _ drivers.I2C = (i2c.Bus)(nil)

func openHardware(cfg *config.Config, log *slog.Logger) (*hardware, error) {
	switch cfg.Bus.Kind {
	case config.BusSim:
		return openSim(cfg, log)
	case config.BusMachine:
		return nil, errors.New("the machine bus needs the firmware build")
	}
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	bus, err := i2creg.Open(cfg.Bus.Name)
	if err != nil {
		return nil, err
	}
	pin, err := alert.HostPin(cfg.Alert.Pin)
	if err != nil {
		bus.Close()
		return nil, err
	}
	log.Info("linux bus open", "bus", bus.String(), "alert", cfg.Alert.Pin)
	return &hardware{bus: bus, pin: pin, sleep: time.Sleep, close: bus.Close}, nil
}

// openSim builds a simulated chip strapped per sim.address. Time on the
// chip is virtual, so delays complete immediately.
func openSim(cfg *config.Config, log *slog.Logger) (*hardware, error) {
	addr, err := config.ParseAddress(cfg.Sim.Address)
	if err != nil {
		return nil, err
	}
	chip := adssim.New(addr.BusAddress())
	for i, v := range cfg.Sim.Inputs {
		chip.SetInput(i, v)
	}
	log.Info("simulated chip", "address", addr.String(), "inputs", cfg.Sim.Inputs)
	return &hardware{bus: chip, pin: chip.Pin(), sleep: chip.Advance}, nil
}

func openSerial(c config.ConsoleConfig) (*serial.Port, error) {
	return serial.OpenPort(&serial.Config{Name: c.Device, Baud: c.Baud})
}
