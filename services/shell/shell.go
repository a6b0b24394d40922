// Package shell parses "ads1115 ..." command lines and dispatches them to
// the validation harness.
package shell

import (
	"strings"
	"time"

	"github.com/google/shlex"

	"ads1115-go/errcode"
	"ads1115-go/services/harness"
)

// Program is the command word every line must start with.
const Program = "ads1115"

// StatusUnknownCommand is returned for lines not addressed to Program. It
// lives outside the harness status set.
const StatusUnknownCommand errcode.Status = 2

// Info is printed by "ads1115 -i".
type Info struct {
	Chip          string
	Manufacturer  string
	Interface     string
	DriverVersion string
	SupplyMin     float64 // V
	SupplyMax     float64 // V
	MaxCurrent    float64 // mA
	TempMax       float64 // °C
	TempMin       float64 // °C
}

// DefaultInfo describes the ADS1115 and this driver.
var DefaultInfo = Info{
	Chip:          "Texas Instruments ADS1115",
	Manufacturer:  "Texas Instruments",
	Interface:     "IIC",
	DriverVersion: "1.0",
	SupplyMin:     2.0,
	SupplyMax:     5.5,
	MaxCurrent:    0.2,
	TempMax:       125.0,
	TempMin:       -40.0,
}

// Pins is printed by "ads1115 -p".
type Pins struct {
	SCL, SDA, INT string
}

// Shell executes command lines. It is not safe for concurrent use.
type Shell struct {
	h      *harness.Harness
	out    harness.Printer
	info   Info
	pins   Pins
	report *Report
	now    func() time.Time
}

type Option func(*Shell)

func WithInfo(i Info) Option              { return func(s *Shell) { s.info = i } }
func WithPins(p Pins) Option              { return func(s *Shell) { s.pins = p } }
func WithReport(r *Report) Option         { return func(s *Shell) { s.report = r } }
func WithClock(f func() time.Time) Option { return func(s *Shell) { s.now = f } }

func New(h *harness.Harness, out harness.Printer, opts ...Option) *Shell {
	s := &Shell{h: h, out: out, info: DefaultInfo, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Exec tokenizes and runs one line. Blank lines succeed without output.
func (s *Shell) Exec(line string) errcode.Status {
	words, err := shlex.Split(line)
	if err != nil {
		return s.record(line, errcode.StatusInvalid)
	}
	if len(words) == 0 {
		return errcode.StatusOK
	}
	if words[0] != Program {
		return s.record(line, StatusUnknownCommand)
	}
	return s.record(line, s.Run(words[1:]))
}

// Run dispatches the words after the program name.
func (s *Shell) Run(argv []string) errcode.Status {
	if len(argv) == 0 {
		s.help()
		return errcode.StatusOK
	}
	switch argv[0] {
	case "-i":
		if len(argv) != 1 {
			return errcode.StatusInvalid
		}
		s.printInfo()
		return errcode.StatusOK
	case "-p":
		if len(argv) != 1 {
			return errcode.StatusInvalid
		}
		s.printPins()
		return errcode.StatusOK
	case "-h":
		if len(argv) != 1 {
			return errcode.StatusInvalid
		}
		s.help()
		return errcode.StatusOK
	case "-t", "-c":
		if len(argv) < 2 {
			return errcode.StatusInvalid
		}
		c, ok := findCommand(argv[0], argv[1])
		if !ok {
			return errcode.StatusInvalid
		}
		a, ok := c.parse(argv[2:])
		if !ok {
			return errcode.StatusInvalid
		}
		return c.run(s, a)
	}
	return errcode.StatusInvalid
}

// StatusMessage is the console line printed after a non-zero status.
func StatusMessage(st errcode.Status) string {
	switch st {
	case errcode.StatusOK:
		return ""
	case errcode.StatusFailed:
		return "ads1115: run failed."
	case StatusUnknownCommand:
		return "ads1115: unknown command."
	case errcode.StatusInvalid:
		return "ads1115: param is invalid."
	default:
		return "ads1115: unknown status code."
	}
}

func (s *Shell) record(line string, st errcode.Status) errcode.Status {
	if s.report != nil {
		s.report.Add(s.now(), strings.TrimSpace(line), st)
	}
	return st
}

func (s *Shell) printInfo() {
	i := s.info
	s.out.Printf("ads1115: chip is %s.\n", i.Chip)
	s.out.Printf("ads1115: manufacturer is %s.\n", i.Manufacturer)
	s.out.Printf("ads1115: interface is %s.\n", i.Interface)
	s.out.Printf("ads1115: driver version is %s.\n", i.DriverVersion)
	s.out.Printf("ads1115: min supply voltage is %0.1fV.\n", i.SupplyMin)
	s.out.Printf("ads1115: max supply voltage is %0.1fV.\n", i.SupplyMax)
	s.out.Printf("ads1115: max current is %0.2fmA.\n", i.MaxCurrent)
	s.out.Printf("ads1115: max temperature is %0.1fC.\n", i.TempMax)
	s.out.Printf("ads1115: min temperature is %0.1fC.\n", i.TempMin)
}

func (s *Shell) printPins() {
	s.out.Printf("ads1115: SCL connected to %s.\n", orUnset(s.pins.SCL))
	s.out.Printf("ads1115: SDA connected to %s.\n", orUnset(s.pins.SDA))
	s.out.Printf("ads1115: INT connected to %s.\n", orUnset(s.pins.INT))
}

func (s *Shell) help() {
	s.out.Printf("ads1115 -i\n\tshow ads1115 chip and driver information.\n")
	s.out.Printf("ads1115 -h\n\tshow ads1115 help.\n")
	s.out.Printf("ads1115 -p\n\tshow ads1115 pin connections of the current board.\n")
	for _, c := range commands {
		s.out.Printf("%s\n\t%s\n", c.usage, c.help)
	}
}

func orUnset(s string) string {
	if s == "" {
		return "nothing"
	}
	return s
}
