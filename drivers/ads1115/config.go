package ads1115

import (
	"time"

	"ads1115-go/x/timex"
)

// ---------------- Addressing ----------------

// Address selects one of the four strap-defined bus addresses.
type Address uint8

const (
	AddrGND Address = iota // ADDR tied to ground
	AddrVCC                // ADDR tied to supply
	AddrSDA                // ADDR tied to SDA
	AddrSCL                // ADDR tied to SCL
)

func (a Address) Valid() bool { return a <= AddrSCL }

// BusAddress returns the 7-bit I2C address, or 0 for an invalid strap.
func (a Address) BusAddress() uint16 {
	switch a {
	case AddrGND:
		return AddressGND
	case AddrVCC:
		return AddressVCC
	case AddrSDA:
		return AddressSDA
	case AddrSCL:
		return AddressSCL
	default:
		return 0
	}
}

func (a Address) String() string {
	switch a {
	case AddrGND:
		return "GND"
	case AddrVCC:
		return "VCC"
	case AddrSDA:
		return "SDA"
	case AddrSCL:
		return "SCL"
	default:
		return "invalid"
	}
}

// ---------------- Configuration fields ----------------

// Channel is the MUX[2:0] input pair.
type Channel uint8

const (
	ChannelAIN0AIN1 Channel = iota
	ChannelAIN0AIN3
	ChannelAIN1AIN3
	ChannelAIN2AIN3
	ChannelAIN0GND
	ChannelAIN1GND
	ChannelAIN2GND
	ChannelAIN3GND
)

// Channels lists every multiplexer setting in MUX code order.
var Channels = [...]Channel{
	ChannelAIN0AIN1, ChannelAIN0AIN3, ChannelAIN1AIN3, ChannelAIN2AIN3,
	ChannelAIN0GND, ChannelAIN1GND, ChannelAIN2GND, ChannelAIN3GND,
}

func (c Channel) Valid() bool { return c <= ChannelAIN3GND }

// Inputs returns the positive and negative analog input indices. A negative
// index of -1 means the pin is measured against ground.
func (c Channel) Inputs() (pos, neg int) {
	switch c {
	case ChannelAIN0AIN1:
		return 0, 1
	case ChannelAIN0AIN3:
		return 0, 3
	case ChannelAIN1AIN3:
		return 1, 3
	case ChannelAIN2AIN3:
		return 2, 3
	case ChannelAIN0GND:
		return 0, -1
	case ChannelAIN1GND:
		return 1, -1
	case ChannelAIN2GND:
		return 2, -1
	default:
		return 3, -1
	}
}

func (c Channel) String() string {
	switch c {
	case ChannelAIN0AIN1:
		return "AIN0_AIN1"
	case ChannelAIN0AIN3:
		return "AIN0_AIN3"
	case ChannelAIN1AIN3:
		return "AIN1_AIN3"
	case ChannelAIN2AIN3:
		return "AIN2_AIN3"
	case ChannelAIN0GND:
		return "AIN0_GND"
	case ChannelAIN1GND:
		return "AIN1_GND"
	case ChannelAIN2GND:
		return "AIN2_GND"
	case ChannelAIN3GND:
		return "AIN3_GND"
	default:
		return "invalid"
	}
}

// Gain is the PGA[2:0] full-scale range.
type Gain uint8

const (
	Gain6V144 Gain = iota // ±6.144 V
	Gain4V096             // ±4.096 V
	Gain2V048             // ±2.048 V
	Gain1V024             // ±1.024 V
	Gain0V512             // ±0.512 V
	Gain0V256             // ±0.256 V
)

// Gains lists every defined PGA setting.
var Gains = [...]Gain{Gain6V144, Gain4V096, Gain2V048, Gain1V024, Gain0V512, Gain0V256}

var fullScale = [...]float64{6.144, 4.096, 2.048, 1.024, 0.512, 0.256}

func (g Gain) Valid() bool { return g <= Gain0V256 }

// FullScale returns the full-scale voltage. PGA codes 6 and 7 alias ±0.256 V
// on the device; Decode folds them onto Gain0V256.
func (g Gain) FullScale() float64 {
	if !g.Valid() {
		return fullScale[Gain0V256]
	}
	return fullScale[g]
}

// LSB returns the voltage step of one code at this gain.
func (g Gain) LSB() float64 { return g.FullScale() / 32768.0 }

// Mode is the MODE bit.
type Mode uint8

const (
	ModeContinuous Mode = iota
	ModeSingleShot
)

func (m Mode) Valid() bool { return m <= ModeSingleShot }

// DataRate is the DR[2:0] sample rate.
type DataRate uint8

const (
	Rate8SPS DataRate = iota
	Rate16SPS
	Rate32SPS
	Rate64SPS
	Rate128SPS
	Rate250SPS
	Rate475SPS
	Rate860SPS
)

// DataRates lists every data rate setting.
var DataRates = [...]DataRate{
	Rate8SPS, Rate16SPS, Rate32SPS, Rate64SPS,
	Rate128SPS, Rate250SPS, Rate475SPS, Rate860SPS,
}

var samplesPerSecond = [...]uint32{8, 16, 32, 64, 128, 250, 475, 860}

func (r DataRate) Valid() bool { return r <= Rate860SPS }

func (r DataRate) SamplesPerSecond() uint32 {
	if !r.Valid() {
		return samplesPerSecond[Rate8SPS]
	}
	return samplesPerSecond[r]
}

// Period returns one conversion period, rounded up to the next microsecond.
func (r DataRate) Period() time.Duration {
	ns := timex.PeriodFromHz(r.SamplesPerSecond())
	return time.Duration((ns + 999) / 1000 * 1000)
}

// CompareMode is the COMP_MODE bit.
type CompareMode uint8

const (
	CompareThreshold CompareMode = iota // traditional, hysteresis between lo/hi
	CompareWindow                       // alert outside [lo, hi]
)

func (m CompareMode) Valid() bool { return m <= CompareWindow }

func (m CompareMode) String() string {
	switch m {
	case CompareThreshold:
		return "THRESHOLD"
	case CompareWindow:
		return "WINDOW"
	default:
		return "invalid"
	}
}

// Polarity is the COMP_POL bit.
type Polarity uint8

const (
	ActiveLow Polarity = iota
	ActiveHigh
)

func (p Polarity) Valid() bool { return p <= ActiveHigh }

// Queue is COMP_QUE[1:0]: consecutive out-of-bound conversions before ALERT
// asserts, or comparator disabled.
type Queue uint8

const (
	QueueOne Queue = iota
	QueueTwo
	QueueFour
	QueueDisabled
)

func (q Queue) Valid() bool { return q <= QueueDisabled }

// Depth returns the assertion count, or 0 when the comparator is disabled.
func (q Queue) Depth() int {
	switch q {
	case QueueOne:
		return 1
	case QueueTwo:
		return 2
	case QueueFour:
		return 4
	default:
		return 0
	}
}

// ---------------- Configuration word ----------------

// ConfigWord is the packed CONFIG register value.
type ConfigWord uint16

// Fields is the decoded form of a ConfigWord.
type Fields struct {
	Start       bool // OS: write 1 to start a single conversion
	Channel     Channel
	Gain        Gain
	Mode        Mode
	DataRate    DataRate
	CompareMode CompareMode
	Polarity    Polarity
	Latch       bool
	Queue       Queue
}

// DefaultFields matches ConfigPowerOn without the OS bit.
func DefaultFields() Fields {
	return Fields{
		Channel:  ChannelAIN0AIN1,
		Gain:     Gain2V048,
		Mode:     ModeSingleShot,
		DataRate: Rate128SPS,
		Queue:    QueueDisabled,
	}
}

// Validate rejects out-of-range enum values.
func (f Fields) Validate() error {
	switch {
	case !f.Channel.Valid():
		return &ConfigError{Field: "channel", Reason: "out of range"}
	case !f.Gain.Valid():
		return &ConfigError{Field: "gain", Reason: "out of range"}
	case !f.Mode.Valid():
		return &ConfigError{Field: "mode", Reason: "out of range"}
	case !f.DataRate.Valid():
		return &ConfigError{Field: "data_rate", Reason: "out of range"}
	case !f.CompareMode.Valid():
		return &ConfigError{Field: "compare_mode", Reason: "out of range"}
	case !f.Polarity.Valid():
		return &ConfigError{Field: "polarity", Reason: "out of range"}
	case !f.Queue.Valid():
		return &ConfigError{Field: "queue", Reason: "out of range"}
	}
	return nil
}

// Encode packs the fields. Out-of-range values are truncated to their field
// width; call Validate first when the input is untrusted.
func (f Fields) Encode() ConfigWord {
	var v uint16
	if f.Start {
		v |= cfgOS
	}
	v |= (uint16(f.Channel) << cfgMuxShift) & cfgMuxMask
	v |= (uint16(f.Gain) << cfgPGAShift) & cfgPGAMask
	v |= (uint16(f.Mode) << cfgModeShift) & cfgMode
	v |= (uint16(f.DataRate) << cfgDRShift) & cfgDRMask
	v |= (uint16(f.CompareMode) << cfgCompModeShift) & cfgCompMode
	v |= (uint16(f.Polarity) << cfgCompPolShift) & cfgCompPol
	if f.Latch {
		v |= cfgCompLat
	}
	v |= (uint16(f.Queue) << cfgCompQueShift) & cfgQueMask
	return ConfigWord(v)
}

// Decode unpacks a ConfigWord.
func Decode(w ConfigWord) Fields {
	v := uint16(w)
	g := Gain((v & cfgPGAMask) >> cfgPGAShift)
	if g > Gain0V256 {
		g = Gain0V256
	}
	return Fields{
		Start:       v&cfgOS != 0,
		Channel:     Channel((v & cfgMuxMask) >> cfgMuxShift),
		Gain:        g,
		Mode:        Mode((v & cfgMode) >> cfgModeShift),
		DataRate:    DataRate((v & cfgDRMask) >> cfgDRShift),
		CompareMode: CompareMode((v & cfgCompMode) >> cfgCompModeShift),
		Polarity:    Polarity((v & cfgCompPol) >> cfgCompPolShift),
		Latch:       v&cfgCompLat != 0,
		Queue:       Queue((v & cfgQueMask) >> cfgCompQueShift),
	}
}

// Channel returns the MUX field of a raw word.
func (w ConfigWord) Channel() Channel { return Channel((uint16(w) & cfgMuxMask) >> cfgMuxShift) }

// Ready reports the OS bit as read back: set when no conversion is in progress.
func (w ConfigWord) Ready() bool { return uint16(w)&cfgOS != 0 }
