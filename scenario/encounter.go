package scenario

import (
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/config"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/system"
	"github.com/lixenwraith/skybastion/vmath"
)

// Encounter is a wired boss fight: world, systems, scheduler and the entities of interest
type Encounter struct {
	World     *engine.World
	Combat    *system.Combat
	Scheduler *engine.ClockScheduler

	Boss    core.Entity
	Groups  []core.Entity
	Players []core.Entity

	// Autopilot drives players each tick when set
	Autopilot bool
}

type options struct {
	log      zerolog.Logger
	spawner  engine.Spawner
	notifier engine.Notifier
	clock    engine.TimeProvider
}

// Option customizes Build
type Option func(*options)

// WithLogger sets the base logger of the world
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithSpawner sets the presentation spawner
func WithSpawner(s engine.Spawner) Option {
	return func(o *options) { o.spawner = s }
}

// WithNotifier sets the combat notification sink
func WithNotifier(n engine.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithTimeProvider sets the scheduler clock
func WithTimeProvider(p engine.TimeProvider) Option {
	return func(o *options) { o.clock = p }
}

// Build creates a boss encounter from configuration
// The boss sits at the origin facing +Z with a turret ring on top, small cannons along both
// flanks and big cannons on the bow; players spread in an arc ahead of it, facing the boss
func Build(cfg *config.Config, opts ...Option) *Encounter {
	o := options{
		log:      zerolog.Nop(),
		spawner:  engine.NopSpawner{},
		notifier: engine.NopNotifier{},
		clock:    engine.NewMonotonicTimeProvider(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	w := engine.NewWorld()
	w.Resources.Log = o.log
	w.Resources.Tuning = cfg.Tuning()
	w.Resources.Spawner = o.spawner
	w.Resources.Notifier = o.notifier

	enc := &Encounter{World: w, Combat: system.NewCombat(w)}
	tuning := w.Resources.Tuning

	enc.Boss = system.CreateBossHP(w, vmath.V3FZero, vmath.V3FForward, cfg.Boss.HitPoints, tuning)

	r := parameter.ColliderRadiusBoss
	if cfg.Boss.Turrets > 0 {
		enc.Groups = append(enc.Groups, system.CreateGroup(w, enc.Boss, component.WeaponTurret, turretRing(cfg.Boss.Turrets, r), tuning))
	}
	if cfg.Boss.SmallCannons > 0 {
		enc.Groups = append(enc.Groups, system.CreateGroup(w, enc.Boss, component.WeaponSmallCannon, flankBatteries(cfg.Boss.SmallCannons, r), tuning))
	}
	if cfg.Boss.BigCannons > 0 {
		enc.Groups = append(enc.Groups, system.CreateGroup(w, enc.Boss, component.WeaponBigCannon, bowBatteries(cfg.Boss.BigCannons, r), tuning))
	}

	for _, pos := range playerArc(cfg.Sandbox.Players, parameter.ScenarioPlayerDistance) {
		fwd := vmath.V3FNormalize(vmath.V3FSub(vmath.V3FZero, pos))
		enc.Players = append(enc.Players, system.CreatePlayer(w, pos, fwd, tuning))
	}

	enc.Scheduler = engine.NewClockScheduler(w, o.clock)

	o.log.Info().
		Int("groups", len(enc.Groups)).
		Int("players", len(enc.Players)).
		Int("boss_hp", cfg.Boss.HitPoints).
		Msg("encounter built")
	return enc
}

// turretRing lays turrets on the upper hull facing up
func turretRing(n int, r float64) []system.Placement {
	out := make([]system.Placement, 0, n)
	for _, pos := range system.FormationPositions(vmath.Vec3F{Y: r}, n, r*0.6) {
		out = append(out, system.Placement{Offset: pos, Forward: vmath.V3FUp, Up: vmath.V3FForward})
	}
	return out
}

// flankBatteries alternates small cannons between port and starboard, spaced fore to aft
func flankBatteries(n int, r float64) []system.Placement {
	out := make([]system.Placement, 0, n)
	rows := (n + 1) / 2
	for i := 0; i < n; i++ {
		side := 1.0
		if i%2 == 1 {
			side = -1.0
		}
		row := i / 2
		z := r * 0.8 * (float64(row) - float64(rows-1)/2) / math.Max(1, float64(rows-1))
		out = append(out, system.Placement{
			Offset:  vmath.Vec3F{X: side * r, Z: z},
			Forward: vmath.Vec3F{X: side},
			Up:      vmath.V3FUp,
		})
	}
	return out
}

// bowBatteries spreads big cannons across the bow facing forward
func bowBatteries(n int, r float64) []system.Placement {
	out := make([]system.Placement, 0, n)
	for i := 0; i < n; i++ {
		x := 0.0
		if n > 1 {
			x = r * 0.5 * (2*float64(i)/float64(n-1) - 1)
		}
		out = append(out, system.Placement{
			Offset:  vmath.Vec3F{X: x, Z: r},
			Forward: vmath.V3FForward,
			Up:      vmath.V3FUp,
		})
	}
	return out
}

// playerArc spreads n spawn points over a 60 degree arc ahead of the boss, slightly above it
func playerArc(n int, dist float64) []vmath.Vec3F {
	out := make([]vmath.Vec3F, 0, n)
	const spread = math.Pi / 3
	for i := 0; i < n; i++ {
		a := 0.0
		if n > 1 {
			a = spread * (float64(i)/float64(n-1) - 0.5)
		}
		out = append(out, vmath.Vec3F{X: dist * math.Sin(a), Y: dist * 0.1, Z: dist * math.Cos(a)})
	}
	return out
}

// Step advances the encounter by one tick, running the autopilot first when enabled
func (e *Encounter) Step(dt time.Duration) {
	if e.Autopilot {
		e.Drive()
	}
	e.Scheduler.Step(dt)
}

// Advance steps the encounter through total in tick-sized steps
func (e *Encounter) Advance(total, tick time.Duration) {
	if tick <= 0 {
		return
	}
	for total > 0 {
		dt := tick
		if total < tick {
			dt = total
		}
		e.Step(dt)
		total -= dt
	}
}

// Drive queues player actions for the next tick: a missile at any lock and the laser while it has charge
func (e *Encounter) Drive() {
	for _, p := range e.Players {
		if !e.World.Alive(p) {
			continue
		}
		if e.Combat.Locks.HasTarget(p) {
			e.World.PushEvent(event.EventMissileLaunchRequest, &event.PlayerPayload{Player: p})
		}
		pw, ok := e.World.Components.PlayerWeapon.GetComponent(p)
		if !ok {
			continue
		}
		if !pw.LaserFiring && e.Combat.Gauges.CanConsume(pw.LaserGauge) {
			if cur, max := e.Combat.Gauges.Charges(pw.LaserGauge); cur == max {
				e.World.PushEvent(event.EventLaserRequest, &event.PlayerTogglePayload{Player: p, On: true})
			}
		}
	}
}
