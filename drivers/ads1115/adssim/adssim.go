// Package adssim simulates an ADS1115 behind the tinygo drivers.I2C Tx shape
// for host-side tests and the host shell.
//
// Time is virtual: nothing converts until Advance is called, so a driver
// configured with Sleep: chip.Advance runs deterministically. Conversions,
// the OS busy flag, the comparator queue/latch logic and the ALERT/RDY pin
// follow the datasheet register model.
package adssim

import (
	"errors"
	"math"
	"sync"
	"time"

	"ads1115-go/types"
	"ads1115-go/x/mathx"
	"ads1115-go/x/timex"
)

// Errors returned by Tx.
var (
	ErrNack     = errors.New("adssim: address not acknowledged")
	ErrProtocol = errors.New("adssim: malformed transfer")
)

const (
	regConversion = 0
	regConfig     = 1
	regLoThresh   = 2
	regHiThresh   = 3

	bitOS       uint16 = 1 << 15
	bitMode     uint16 = 1 << 8
	bitCompMode uint16 = 1 << 4
	bitCompPol  uint16 = 1 << 3
	bitCompLat  uint16 = 1 << 2
	maskQue     uint16 = 0x3

	configReset uint16 = 0x8583
)

var (
	fsTable  = [8]float64{6.144, 4.096, 2.048, 1.024, 0.512, 0.256, 0.256, 0.256}
	spsTable = [8]uint32{8, 16, 32, 64, 128, 250, 475, 860}
	queDepth = [4]int{1, 2, 4, 0}
)

// Stats counts register traffic.
type Stats struct {
	Tx     int
	Reads  [4]int
	Writes [4]int
}

// Chip is one simulated ADS1115.
type Chip struct {
	mu   sync.Mutex
	addr uint16
	now  time.Duration

	regs [4]uint16 // config stored without OS
	ptr  uint8

	inputs [4]float64 // AIN0..AIN3, volts

	busy      bool
	busyUntil time.Duration
	nextConv  time.Duration // continuous mode only

	count    int
	asserted bool
	pin      *AlertPin

	stuck     bool
	fail      error
	failAfter int // Tx calls left before fail applies; <0 means immediately
	stats     Stats
}

// New creates a chip answering at the given 7-bit address, in its power-on
// state.
func New(addr uint16) *Chip {
	c := &Chip{addr: addr, failAfter: -1}
	c.pin = &AlertPin{number: -1, level: true}
	c.reset()
	return c
}

func (c *Chip) reset() {
	c.regs[regConversion] = 0
	c.regs[regConfig] = configReset &^ bitOS
	c.regs[regLoThresh] = 0x8000
	c.regs[regHiThresh] = 0x7FFF
	c.busy = false
	c.count = 0
	c.asserted = false
}

// ---------------- Test controls ----------------

// SetInput sets the voltage on analog input n (0..3).
func (c *Chip) SetInput(n int, volts float64) {
	c.mu.Lock()
	if n >= 0 && n < len(c.inputs) {
		c.inputs[n] = volts
	}
	c.mu.Unlock()
}

// SetStuck makes single-shot conversions never complete.
func (c *Chip) SetStuck(on bool) {
	c.mu.Lock()
	c.stuck = on
	c.mu.Unlock()
}

// FailWith makes every Tx after the next n succeed-calls return err. A nil
// err clears the fault.
func (c *Chip) FailWith(err error, after int) {
	c.mu.Lock()
	c.fail = err
	c.failAfter = after
	c.mu.Unlock()
}

// Peek returns a register value as stored (config without OS readback).
func (c *Chip) Peek(reg uint8) uint16 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.regs[reg&3]
}

// Stats returns a copy of the traffic counters.
func (c *Chip) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Now returns the virtual time.
func (c *Chip) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Alerting reports whether the comparator currently asserts ALERT.
func (c *Chip) Alerting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.asserted
}

// Pin returns the ALERT/RDY pin.
func (c *Chip) Pin() *AlertPin { return c.pin }

// ---------------- I2C target ----------------

// Tx implements drivers.I2C. A pointer-only write followed by a read returns
// the addressed register MSB first; a 3-byte write stores a register.
func (c *Chip) Tx(addr uint16, w, r []byte) error {
	c.mu.Lock()
	c.stats.Tx++
	if c.fail != nil {
		if c.failAfter <= 0 {
			err := c.fail
			c.mu.Unlock()
			return err
		}
		c.failAfter--
	}
	if addr != c.addr {
		c.mu.Unlock()
		return ErrNack
	}
	switch len(w) {
	case 0:
	case 1:
		c.ptr = w[0] & 3
	case 3:
		c.ptr = w[0] & 3
		c.write(c.ptr, uint16(w[1])<<8|uint16(w[2]))
	default:
		c.mu.Unlock()
		return ErrProtocol
	}
	if len(r) > 0 {
		if len(r) != 2 {
			c.mu.Unlock()
			return ErrProtocol
		}
		v := c.read(c.ptr)
		r[0] = byte(v >> 8)
		r[1] = byte(v)
	}
	fire := c.syncPin()
	c.mu.Unlock()
	fire()
	return nil
}

func (c *Chip) read(reg uint8) uint16 {
	c.stats.Reads[reg]++
	switch reg {
	case regConfig:
		v := c.regs[regConfig]
		if !c.busy {
			v |= bitOS
		}
		return v
	case regConversion:
		if c.regs[regConfig]&bitCompLat != 0 {
			c.asserted = false
		}
		return c.regs[regConversion]
	default:
		return c.regs[reg]
	}
}

func (c *Chip) write(reg uint8, v uint16) {
	c.stats.Writes[reg]++
	switch reg {
	case regConversion:
		// read-only
	case regConfig:
		c.regs[regConfig] = v &^ bitOS
		c.count = 0
		if v&maskQue == maskQue {
			c.asserted = false
		}
		period := c.period()
		if v&bitMode == 0 {
			c.busy = false
			c.nextConv = c.now + period
			return
		}
		if v&bitOS != 0 && !c.busy {
			c.busy = true
			c.busyUntil = c.now + period
		}
	default:
		c.regs[reg] = v
	}
}

// ---------------- Virtual time ----------------

// Advance moves virtual time forward by d, completing every conversion due
// in that span. It has the signature of time.Sleep.
func (c *Chip) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	var fires []func()
	for {
		at, ok := c.nextEvent()
		if !ok || at > target {
			break
		}
		c.now = at
		c.complete()
		fires = append(fires, c.syncPin())
	}
	c.now = target
	c.mu.Unlock()
	for _, f := range fires {
		f()
	}
}

// ConversionsIn returns how many continuous conversions the current data
// rate produces in d.
func (c *Chip) ConversionsIn(d time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return timex.Periods(d, c.period())
}

func (c *Chip) nextEvent() (time.Duration, bool) {
	if c.regs[regConfig]&bitMode == 0 {
		return c.nextConv, true
	}
	if c.busy && !c.stuck {
		return c.busyUntil, true
	}
	return 0, false
}

func (c *Chip) complete() {
	raw := c.sample()
	c.regs[regConversion] = uint16(raw)
	if c.regs[regConfig]&bitMode == 0 {
		c.nextConv = c.now + c.period()
	} else {
		c.busy = false
	}
	c.compare(raw)
}

func (c *Chip) period() time.Duration {
	dr := (c.regs[regConfig] >> 5) & 0x7
	return time.Duration(timex.PeriodFromHz(spsTable[dr]))
}

func (c *Chip) sample() int16 {
	v := c.regs[regConfig]
	mux := (v >> 12) & 0x7
	fs := fsTable[(v>>9)&0x7]
	var diff float64
	switch mux {
	case 0:
		diff = c.inputs[0] - c.inputs[1]
	case 1:
		diff = c.inputs[0] - c.inputs[3]
	case 2:
		diff = c.inputs[1] - c.inputs[3]
	case 3:
		diff = c.inputs[2] - c.inputs[3]
	default:
		diff = c.inputs[mux-4]
	}
	code := math.Round(diff * 32768.0 / fs)
	return int16(mathx.Clamp(code, math.MinInt16, math.MaxInt16))
}

// compare runs the comparator on a fresh conversion.
func (c *Chip) compare(raw int16) {
	v := c.regs[regConfig]
	depth := queDepth[v&maskQue]
	if depth == 0 {
		return
	}
	lo := int16(c.regs[regLoThresh])
	hi := int16(c.regs[regHiThresh])
	window := v&bitCompMode != 0
	latch := v&bitCompLat != 0

	var out bool
	if window {
		out = raw < lo || raw > hi
	} else {
		out = raw > hi
	}
	if out {
		c.count++
		if c.count >= depth {
			c.asserted = true
		}
		return
	}
	c.count = 0
	if latch {
		return
	}
	if window || raw < lo {
		c.asserted = false
	}
}

// syncPin drives the pin from the comparator state and returns the IRQ
// callback to run once the chip lock is released.
func (c *Chip) syncPin() func() {
	v := c.regs[regConfig]
	level := true // open drain, pulled up when idle
	if v&maskQue != maskQue {
		activeHigh := v&bitCompPol != 0
		level = c.asserted == activeHigh
	}
	return c.pin.drive(level)
}

// ---------------- ALERT/RDY pin ----------------

// AlertPin is the chip's ALERT/RDY output seen as a host input with IRQ.
type AlertPin struct {
	mu      sync.Mutex
	number  int
	level   bool
	pull    types.Pull
	irqEdge types.Edge
	irqFunc func()
	irqErr  error
	clrErr  error
	edges   int
}

// SetNumber assigns the GPIO number reported by Number.
func (p *AlertPin) SetNumber(n int) {
	p.mu.Lock()
	p.number = n
	p.mu.Unlock()
}

// FailIRQ makes SetIRQ return err (nil clears).
func (p *AlertPin) FailIRQ(err error) {
	p.mu.Lock()
	p.irqErr = err
	p.mu.Unlock()
}

// FailClearIRQ makes ClearIRQ return err and leave the handler installed
// (nil clears).
func (p *AlertPin) FailClearIRQ(err error) {
	p.mu.Lock()
	p.clrErr = err
	p.mu.Unlock()
}

func (p *AlertPin) ConfigureInput(pull types.Pull) error {
	p.mu.Lock()
	p.pull = pull
	p.mu.Unlock()
	return nil
}

func (p *AlertPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *AlertPin) Number() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.number
}

func (p *AlertPin) SetIRQ(edge types.Edge, handler func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.irqErr != nil {
		return p.irqErr
	}
	p.irqEdge = edge
	p.irqFunc = handler
	return nil
}

func (p *AlertPin) ClearIRQ() error {
	p.mu.Lock()
	if err := p.clrErr; err != nil {
		p.mu.Unlock()
		return err
	}
	p.irqEdge = types.EdgeNone
	p.irqFunc = nil
	p.mu.Unlock()
	return nil
}

// Armed reports whether an IRQ handler is installed.
func (p *AlertPin) Armed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.irqFunc != nil
}

// Edges returns the number of level transitions seen so far.
func (p *AlertPin) Edges() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.edges
}

func (p *AlertPin) drive(level bool) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	e := types.EdgeFrom(p.level, level)
	p.level = level
	if e == types.EdgeNone {
		return func() {}
	}
	p.edges++
	if h := p.irqFunc; h != nil && p.irqEdge.Wants(e) {
		return h
	}
	return func() {}
}
