// Package alert turns the ADS1115 ALERT/RDY pin into the "alert observed"
// flag the comparator wait polls.
package alert

import (
	"errors"
	"sync/atomic"

	"ads1115-go/types"
)

var (
	ErrNoPin    = errors.New("alert: no pin")
	ErrNoEdge   = errors.New("alert: edge none")
	ErrArmed    = errors.New("alert: already armed")
	ErrNotArmed = errors.New("alert: not armed")
)

// Flag is set from interrupt context and read by the foreground loop. All
// access is atomic.
type Flag struct{ v atomic.Uint32 }

func (f *Flag) Set()           { f.v.Store(1) }
func (f *Flag) Clear()         { f.v.Store(0) }
func (f *Flag) Observed() bool { return f.v.Load() != 0 }

// Take clears the flag and reports whether it was set.
func (f *Flag) Take() bool { return f.v.Swap(0) != 0 }

// Line binds one IRQ-capable pin to a Flag.
type Line struct {
	pin   types.IRQPin
	edge  types.Edge
	flag  Flag
	hits  atomic.Uint32
	armed bool
}

// NewLine prepares a line on pin that fires on edge. The ALERT/RDY output
// is open drain, so Arm configures the input with a pull-up.
func NewLine(pin types.IRQPin, edge types.Edge) (*Line, error) {
	if pin == nil {
		return nil, ErrNoPin
	}
	if edge == types.EdgeNone {
		return nil, ErrNoEdge
	}
	return &Line{pin: pin, edge: edge}, nil
}

// Arm clears the flag and installs the interrupt handler. The handler only
// stores to atomics.
func (l *Line) Arm() error {
	if l.armed {
		return ErrArmed
	}
	if err := l.pin.ConfigureInput(types.PullUp); err != nil {
		return err
	}
	l.flag.Clear()
	handler := func() {
		l.flag.Set()
		l.hits.Add(1)
	}
	if err := l.pin.SetIRQ(l.edge, handler); err != nil {
		return err
	}
	l.armed = true
	return nil
}

// Disarm removes the handler. A line that was never armed reports
// ErrNotArmed.
func (l *Line) Disarm() error {
	if !l.armed {
		return ErrNotArmed
	}
	l.armed = false
	return l.pin.ClearIRQ()
}

// Signal returns the flag set by the handler.
func (l *Line) Signal() *Flag { return &l.flag }

// Hits returns the number of interrupts taken since NewLine.
func (l *Line) Hits() uint32 { return l.hits.Load() }

func (l *Line) Armed() bool      { return l.armed }
func (l *Line) Edge() types.Edge { return l.edge }
func (l *Line) Pin() int         { return l.pin.Number() }
