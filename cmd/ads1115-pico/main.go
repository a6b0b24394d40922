//go:build rp2040 || rp2350

// Command ads1115-pico serves the ADS1115 validation shell on UART0 of a
// Pico or Pico 2, with the chip on I2C0 and ALERT/RDY on a GPIO.
package main

import (
	"context"
	"machine"
	"strconv"
	"strings"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"ads1115-go/services/alert"
	"ads1115-go/services/config"
	"ads1115-go/services/harness"
	"ads1115-go/services/shell"
)

// uartReader turns RecvSomeContext into an io.Reader for the console.
type uartReader struct {
	ctx context.Context
	u   *uartx.UART
}

func (r uartReader) Read(p []byte) (int, error) { return r.u.RecvSomeContext(r.ctx, p) }

func main() {
	time.Sleep(1500 * time.Millisecond)
	println("[ads1115] boot …")

	cfg, err := config.Parse("pico", nil)
	if err != nil {
		println("[ads1115] config:", err.Error())
		return
	}

	i2c := machine.I2C0
	if err := i2c.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	}); err != nil {
		println("[ads1115] i2c0:", err.Error())
		return
	}

	console := uartx.UART0
	_ = console.Configure(uartx.UARTConfig{
		BaudRate: uint32(cfg.Console.Baud),
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})

	env := harness.Env{
		Bus:                 i2c,
		Device:              cfg.DriverConfig(0),
		Out:                 harness.WriterPrinter{W: console},
		Delay:               cfg.Harness.Delay,
		AlertTimeoutSamples: cfg.Harness.AlertTimeoutSamples,
	}
	env.Gain, _ = cfg.Harness.DriverGain()
	env.Rate, _ = cfg.Harness.DriverRate()
	env.ReadChannel, _ = config.ParseChannel(cfg.Harness.ReadChannel)
	if n, ok := gpioNumber(cfg.Alert.Pin); ok {
		if pin, ok := alert.MachinePin(n); ok {
			env.AlertPin = pin
		}
	}
	if env.AlertPin == nil {
		println("[ads1115] no alert pin", cfg.Alert.Pin, "- comparator commands will fail")
	}

	sh := shell.New(harness.New(env), env.Out,
		shell.WithPins(shell.Pins{SCL: cfg.Pins.SCL, SDA: cfg.Pins.SDA, INT: cfg.Pins.INT}),
	)

	ctx := context.Background()
	for {
		if err := sh.Serve(ctx, uartReader{ctx: ctx, u: console}); err != nil {
			println("[ads1115] console:", err.Error())
		}
		time.Sleep(100 * time.Millisecond)
	}
}

// gpioNumber parses "GP6" or "6".
func gpioNumber(name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(name, "GP"))
	return n, err == nil && n >= 0
}
