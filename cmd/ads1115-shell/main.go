//go:build !tinygo

// Command ads1115-shell runs the ADS1115 validation shell on a host, either
// against the simulated chip or a Linux I2C bus.
//
// Usage:
//
//	ads1115-shell [flags]
//	ads1115-shell -profile rpi -e "ads1115 -t reg -a GND"
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"ads1115-go/errcode"
	"ads1115-go/services/config"
	"ads1115-go/services/harness"
	"ads1115-go/services/shell"
)

type options struct {
	profile  string
	file     string
	serial   string
	exec     string
	logLevel string
}

func main() {
	var o options
	flag.StringVar(&o.profile, "profile", config.DefaultProfile, "Embedded profile: sim, rpi")
	flag.StringVar(&o.file, "config", "", "YAML file applied on top of the profile")
	flag.StringVar(&o.serial, "serial", "", "Serve the shell on this serial device instead of the terminal")
	flag.StringVar(&o.exec, "e", "", "Run one command line and exit with its status")
	flag.StringVar(&o.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	os.Exit(run(o))
}

func run(o options) int {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(o.logLevel)}))

	cfg, err := config.Load(o.profile, o.file)
	if err != nil {
		log.Error("load config", "err", err)
		return int(errcode.StatusInvalid)
	}
	if o.serial != "" {
		cfg.Console.Device = o.serial
	}

	hw, err := openHardware(cfg, log)
	if err != nil {
		log.Error("open hardware", "bus", cfg.Bus.Kind, "err", err)
		return int(errcode.StatusFailed)
	}
	defer hw.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := shell.NewReport(time.Now(), o.profile)
	defer saveReport(log, report, cfg.Report.Path)

	switch {
	case o.exec != "":
		sh := newShell(cfg, hw, os.Stdout, report)
		st := sh.Exec(o.exec)
		if msg := shell.StatusMessage(st); msg != "" {
			os.Stdout.WriteString(msg + "\n")
		}
		return int(st)

	case cfg.Console.Device != "":
		port, err := openSerial(cfg.Console)
		if err != nil {
			log.Error("open serial console", "device", cfg.Console.Device, "err", err)
			return int(errcode.StatusFailed)
		}
		defer port.Close()
		log.Info("serving shell", "device", cfg.Console.Device, "baud", cfg.Console.Baud)
		sh := newShell(cfg, hw, port, report)
		if err := sh.Serve(ctx, port); err != nil && ctx.Err() == nil {
			log.Error("serial console", "err", err)
			return int(errcode.StatusFailed)
		}
		return int(errcode.StatusOK)

	default:
		if err := interactive(ctx, cfg, hw, report); err != nil {
			log.Error("interactive shell", "err", err)
			return int(errcode.StatusFailed)
		}
		return int(errcode.StatusOK)
	}
}

func newShell(cfg *config.Config, hw *hardware, w io.Writer, report *shell.Report) *shell.Shell {
	out := harness.WriterPrinter{W: w}
	gain, _ := cfg.Harness.DriverGain()
	rate, _ := cfg.Harness.DriverRate()
	ch, _ := config.ParseChannel(cfg.Harness.ReadChannel)

	dev := cfg.DriverConfig(0)
	dev.Sleep = hw.sleep
	h := harness.New(harness.Env{
		Bus:                 hw.bus,
		Device:              dev,
		AlertPin:            hw.pin,
		Out:                 out,
		Gain:                gain,
		Rate:                rate,
		ReadChannel:         ch,
		Delay:               cfg.Harness.Delay,
		AlertTimeoutSamples: cfg.Harness.AlertTimeoutSamples,
	})
	return shell.New(h, out,
		shell.WithPins(shell.Pins{SCL: cfg.Pins.SCL, SDA: cfg.Pins.SDA, INT: cfg.Pins.INT}),
		shell.WithReport(report),
	)
}

func saveReport(log *slog.Logger, r *shell.Report, path string) {
	if path == "" {
		return
	}
	if err := r.Save(path); err != nil {
		log.Warn("save report", "path", path, "err", err)
		return
	}
	log.Info("report saved", "path", path, "run_id", r.RunID, "failed", r.Failed())
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
