package types

// ---- GPIO abstractions ----

type Pull uint8

const (
	PullNone Pull = iota
	PullUp
	PullDown
)

// Edge selection for IRQ.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	case EdgeBoth:
		return "both"
	default:
		return "none"
	}
}

// EdgeFrom classifies a level transition.
func EdgeFrom(old, new bool) Edge {
	switch {
	case !old && new:
		return EdgeRising
	case old && !new:
		return EdgeFalling
	default:
		return EdgeNone
	}
}

// Wants reports whether an IRQ configured for e fires on seen.
func (e Edge) Wants(seen Edge) bool {
	switch e {
	case EdgeBoth:
		return seen == EdgeRising || seen == EdgeFalling
	case EdgeNone:
		return false
	default:
		return e == seen
	}
}

// InputPin is a digital input.
type InputPin interface {
	ConfigureInput(pull Pull) error
	Get() bool
	Number() int
}

// IRQPin extends InputPin with edge interrupts. The handler runs in
// interrupt context and must not block.
type IRQPin interface {
	InputPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}
