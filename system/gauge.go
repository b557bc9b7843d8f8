package system

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
)

// GaugeResult reports threshold transitions of one gauge tick
type GaugeResult struct {
	Depleted  bool
	Recharged bool
}

// TickGauge advances a gauge by dt in whole-period steps
// consuming is the request; it is honored only while charges remain and no full recharge is pending
// Switching between consuming and recharging restarts the partial period
func TickGauge(g *component.GaugeComponent, dt, period time.Duration, consuming bool) GaugeResult {
	var res GaugeResult
	if period <= 0 {
		return res
	}

	consuming = consuming && CanConsume(g)
	if consuming != g.LastConsuming {
		g.Elapsed = 0
		g.LastConsuming = consuming
	}

	if consuming {
		g.Elapsed += dt
		for g.Elapsed >= period && g.Current > 0 {
			g.Elapsed -= period
			g.Current--
		}
		if g.Current == 0 {
			g.MustFullyRecharge = true
			g.Consuming = false
			g.LastConsuming = false
			g.Elapsed = 0
			res.Depleted = true
		}
		return res
	}

	if g.Current >= g.Max {
		g.Elapsed = 0
		return res
	}

	g.Elapsed += dt
	for g.Elapsed >= period && g.Current < g.Max {
		g.Elapsed -= period
		g.Current++
	}
	if g.Current == g.Max {
		g.Elapsed = 0
		if g.MustFullyRecharge {
			g.MustFullyRecharge = false
			res.Recharged = true
		}
	}
	return res
}

// CanConsume reports whether the gauge currently allows consumption
func CanConsume(g *component.GaugeComponent) bool {
	return g.Current > 0 && !g.MustFullyRecharge
}

// GaugeSystem ticks every resource gauge; consumers set the consuming flag through SetConsuming
type GaugeSystem struct {
	world *engine.World
	log   zerolog.Logger

	// Telemetry
	statDepleted  *atomic.Int64
	statRecharged *atomic.Int64

	enabled bool
}

// NewGaugeSystem creates the gauge system
func NewGaugeSystem(world *engine.World) *GaugeSystem {
	s := &GaugeSystem{
		world: world,
		log:   world.Resources.SystemLogger("gauge"),
	}

	s.statDepleted = world.Resources.Status.Ints.Get("gauge.depleted")
	s.statRecharged = world.Resources.Status.Ints.Get("gauge.recharged")

	s.Init()
	return s
}

// Init resets session state for new game
func (s *GaugeSystem) Init() {
	s.statDepleted.Store(0)
	s.statRecharged.Store(0)
	s.enabled = true
}

// Name returns system's name
func (s *GaugeSystem) Name() string {
	return "gauge"
}

// Priority returns the system's priority
func (s *GaugeSystem) Priority() int {
	return parameter.PriorityGauge
}

// EventTypes returns the event types GaugeSystem handles
func (s *GaugeSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventGaugeLevelUpRequest,
		event.EventMetaSystemCommandRequest,
		event.EventGameReset,
	}
}

// HandleEvent processes level-up requests
func (s *GaugeSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventGameReset {
		s.Init()
		return
	}

	if ev.Type == event.EventMetaSystemCommandRequest {
		if payload, ok := ev.Payload.(*event.MetaSystemCommandPayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
	}

	if !s.enabled {
		return
	}

	switch ev.Type {
	case event.EventGaugeLevelUpRequest:
		if payload, ok := ev.Payload.(*event.GaugePayload); ok {
			s.LevelUp(payload.Gauge)
		}
	}
}

// Update ticks consumption and recharge of every gauge
func (s *GaugeSystem) Update() {
	if !s.enabled {
		return
	}

	dt := s.world.Resources.Time.DeltaTime
	period := s.world.Resources.Tuning.ChargePeriod

	for _, e := range s.world.Components.Gauge.GetAllEntities() {
		g, ok := s.world.Components.Gauge.GetComponent(e)
		if !ok {
			continue
		}
		res := TickGauge(&g, dt, period, g.Consuming)
		s.world.Components.Gauge.SetComponent(e, g)

		if res.Depleted {
			s.statDepleted.Add(1)
			s.world.PushEvent(event.EventGaugeDepleted, &event.GaugePayload{Gauge: e, Owner: g.Owner})
			s.log.Debug().Uint64("gauge", uint64(e)).Str("kind", g.Kind.String()).Msg("depleted")
		}
		if res.Recharged {
			s.statRecharged.Add(1)
			s.world.PushEvent(event.EventGaugeRecharged, &event.GaugePayload{Gauge: e, Owner: g.Owner})
			s.log.Debug().Uint64("gauge", uint64(e)).Str("kind", g.Kind.String()).Msg("recharged")
		}
	}
}

// SetConsuming sets the consumer request flag
func (s *GaugeSystem) SetConsuming(e core.Entity, on bool) {
	g, ok := s.world.Components.Gauge.GetComponent(e)
	if !ok || g.Consuming == on {
		return
	}
	g.Consuming = on
	s.world.Components.Gauge.SetComponent(e, g)
}

// CanConsume reports whether the gauge entity allows consumption now
func (s *GaugeSystem) CanConsume(e core.Entity) bool {
	g, ok := s.world.Components.Gauge.GetComponent(e)
	return ok && CanConsume(&g)
}

// Charges returns current and max charges
func (s *GaugeSystem) Charges(e core.Entity) (cur, max int) {
	g, ok := s.world.Components.Gauge.GetComponent(e)
	if !ok {
		return 0, 0
	}
	return g.Current, g.Max
}

// LevelUp grows a laser gauge by one charge up to its cap and refills it
func (s *GaugeSystem) LevelUp(e core.Entity) {
	g, ok := s.world.Components.Gauge.GetComponent(e)
	if !ok || g.Kind != component.GaugeLaser {
		return
	}
	if g.Max < g.LevelCap {
		g.Max++
	}
	g.Current = g.Max
	g.MustFullyRecharge = false
	g.Elapsed = 0
	s.world.Components.Gauge.SetComponent(e, g)
	s.log.Debug().Uint64("gauge", uint64(e)).Int("max", g.Max).Msg("level up")
}
