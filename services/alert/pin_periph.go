//go:build !tinygo

package alert

import (
	"errors"
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"ads1115-go/types"
)

// ErrUnknownPin is returned when the host has no GPIO by that name.
var ErrUnknownPin = errors.New("alert: unknown gpio")

// edgePoll bounds each WaitForEdge so ClearIRQ can stop the watcher.
const edgePoll = 100 * time.Millisecond

// HostPin looks up a GPIO through periph's registry (for example "GPIO17")
// and adapts it to types.IRQPin. periph has no callback interrupts, so
// SetIRQ runs a goroutine blocked in WaitForEdge. host.Init must have run.
func HostPin(name string) (types.IRQPin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, ErrUnknownPin
	}
	return NewPeriphPin(p), nil
}

// NewPeriphPin wraps an existing periph pin.
func NewPeriphPin(p gpio.PinIO) types.IRQPin {
	return &periphPin{p: p, pull: gpio.Float}
}

type periphPin struct {
	p    gpio.PinIO
	pull gpio.Pull

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func (h *periphPin) ConfigureInput(pull types.Pull) error {
	h.pull = periphPull(pull)
	return h.p.In(h.pull, gpio.NoEdge)
}

func (h *periphPin) Get() bool   { return h.p.Read() == gpio.High }
func (h *periphPin) Number() int { return h.p.Number() }

func (h *periphPin) SetIRQ(edge types.Edge, handler func()) error {
	if err := h.ClearIRQ(); err != nil {
		return err
	}
	if err := h.p.In(h.pull, periphEdge(edge)); err != nil {
		return err
	}
	h.mu.Lock()
	stop := make(chan struct{})
	done := make(chan struct{})
	h.stop, h.done = stop, done
	h.mu.Unlock()

	go func() {
		defer close(done)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if h.p.WaitForEdge(edgePoll) {
				handler()
			}
		}
	}()
	return nil
}

func (h *periphPin) ClearIRQ() error {
	h.mu.Lock()
	stop, done := h.stop, h.done
	h.stop, h.done = nil, nil
	h.mu.Unlock()
	if stop == nil {
		return nil
	}
	close(stop)
	<-done
	return h.p.In(h.pull, gpio.NoEdge)
}

func periphPull(p types.Pull) gpio.Pull {
	switch p {
	case types.PullUp:
		return gpio.PullUp
	case types.PullDown:
		return gpio.PullDown
	default:
		return gpio.Float
	}
}

func periphEdge(e types.Edge) gpio.Edge {
	switch e {
	case types.EdgeRising:
		return gpio.RisingEdge
	case types.EdgeFalling:
		return gpio.FallingEdge
	case types.EdgeBoth:
		return gpio.BothEdges
	default:
		return gpio.NoEdge
	}
}
