package component

import (
	"time"

	"github.com/lixenwraith/skybastion/core"
)

// GaugeKind identifies the resource a gauge meters
type GaugeKind uint8

const (
	GaugeLaser GaugeKind = iota
	GaugeThruster
)

// String returns the gauge name
func (k GaugeKind) String() string {
	if k == GaugeLaser {
		return "laser"
	}
	return "thruster"
}

// GaugeComponent is a discrete-charge resource living on its own entity
// Current stays in [0, Max]; hitting zero forces a full recharge before reuse
type GaugeComponent struct {
	Kind  GaugeKind
	Owner core.Entity

	Max               int
	Current           int
	MustFullyRecharge bool

	// Consuming is the consumer request flag, cleared on depletion
	Consuming bool

	// LevelCap bounds Max growth through level ups
	LevelCap int

	// Elapsed accumulates toward the next whole charge step
	Elapsed time.Duration
	// LastConsuming is the mode Elapsed was accumulated in
	LastConsuming bool
}
