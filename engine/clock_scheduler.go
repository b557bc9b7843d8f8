package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/skybastion/parameter"
)

// ClockScheduler advances the simulation one tick at a time
//
// Tick order:
//  1. BeginTick hooks (start-of-tick snapshots)
//  2. Event dispatch, FIFO
//  3. System Update by ascending priority
//
// Step is the deterministic entry for tests and headless hosts; Run drives Step from a ticker
type ClockScheduler struct {
	world    *World
	router   *EventRouter
	provider TimeProvider
	log      zerolog.Logger

	tickCount atomic.Uint64
	running   atomic.Bool

	// Cached metric pointers
	statTicks      *atomic.Int64
	statDispatched *atomic.Int64
	statDropped    *atomic.Int64
}

// NewClockScheduler creates a scheduler and registers every system already added to the world
func NewClockScheduler(world *World, provider TimeProvider) *ClockScheduler {
	cs := &ClockScheduler{
		world:    world,
		router:   NewEventRouter(world),
		provider: provider,
		log:      world.Resources.SystemLogger("scheduler"),
	}

	reg := world.Resources.Status
	cs.statTicks = reg.Ints.Get("engine.ticks")
	cs.statDispatched = reg.Ints.Get("engine.events_dispatched")
	cs.statDropped = reg.Ints.Get("engine.events_dropped")

	for _, s := range world.Systems() {
		cs.router.Register(s)
	}
	return cs
}

// RegisterEventHandler adds a non-system event handler
func (cs *ClockScheduler) RegisterEventHandler(handler EventHandler) {
	cs.router.Register(handler)
}

// Router exposes the event router for inspection
func (cs *ClockScheduler) Router() *EventRouter {
	return cs.router
}

// TickCount returns the number of completed ticks
func (cs *ClockScheduler) TickCount() uint64 {
	return cs.tickCount.Load()
}

// Step runs one tick with the given delta
// Negative deltas are treated as zero, deltas above MaxStepDelta are capped
func (cs *ClockScheduler) Step(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	if dt > parameter.MaxStepDelta {
		dt = parameter.MaxStepDelta
	}

	cs.world.RunSafe(func() {
		frame := int64(cs.tickCount.Load()) + 1
		cs.world.Resources.Time.Update(dt, frame)

		systems := cs.world.Systems()
		for _, s := range systems {
			if ts, ok := s.(TickStarter); ok {
				ts.BeginTick()
			}
		}

		n := cs.router.DispatchAll()

		for _, s := range systems {
			s.Update()
		}

		cs.statDispatched.Add(int64(n))
	})

	ticks := cs.tickCount.Add(1)
	cs.statTicks.Store(int64(ticks))
	cs.statDropped.Store(int64(cs.world.Resources.Event.Queue.Dropped()))
}

// Advance runs whole ticks of the given size until total simulated time is covered
// A trailing partial tick is run with the remainder
func (cs *ClockScheduler) Advance(total, tick time.Duration) {
	if tick <= 0 {
		return
	}
	for total >= tick {
		cs.Step(tick)
		total -= tick
	}
	if total > 0 {
		cs.Step(total)
	}
}

// Run drives Step at the given interval until ctx is cancelled
// Delta is measured on the TimeProvider so a slow host sees larger steps
func (cs *ClockScheduler) Run(ctx context.Context, interval time.Duration) error {
	if !cs.running.CompareAndSwap(false, true) {
		return nil
	}
	defer cs.running.Store(false)

	if interval <= 0 {
		interval = parameter.GameUpdateInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := cs.provider.Now()
	cs.log.Debug().Dur("interval", interval).Msg("scheduler started")

	for {
		select {
		case <-ctx.Done():
			cs.log.Debug().Uint64("ticks", cs.TickCount()).Msg("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			now := cs.provider.Now()
			cs.Step(now.Sub(last))
			last = now
		}
	}
}

// Running reports whether Run is active
func (cs *ClockScheduler) Running() bool {
	return cs.running.Load()
}
