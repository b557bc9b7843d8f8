package scenario

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/skybastion/core"
)

// GroupSummary is the observable state of one weapon group
type GroupSummary struct {
	Entity          core.Entity
	Class           string
	Alive           int
	Max             int
	ReviveArmed     bool
	ReviveRemaining time.Duration
}

// PlayerSummary is the observable state of one player
type PlayerSummary struct {
	Entity      core.Entity
	Alive       bool
	HitPoints   int
	Locked      core.Entity
	Laser       int
	LaserMax    int
	LaserOn     bool
	Thruster    int
	ThrusterMax int
	Missiles    int
}

// Summary is a point-in-time view of the encounter for hosts and tests
type Summary struct {
	Tick     uint64
	GameTime time.Duration

	BossAlive     bool
	BossHitPoints int
	BossMax       int
	DamageOpen    bool
	EscortsAlive  int
	Respawns      int
	ForceArmed    bool

	Groups  []GroupSummary
	Players []PlayerSummary
}

// Summary collects the current encounter state
func (e *Encounter) Summary() Summary {
	w := e.World
	s := Summary{
		Tick:     e.Scheduler.TickCount(),
		GameTime: w.Resources.Time.GameTime,
	}

	if hull, ok := w.Components.Hull.GetComponent(e.Boss); ok && w.Alive(e.Boss) {
		s.BossAlive = true
		s.BossHitPoints = hull.HitPoints
		s.BossMax = hull.MaxHitPoints
		s.ForceArmed = hull.ForceReviveArmed
		s.DamageOpen = e.Combat.Gate.CanAcceptDamage(e.Boss)
	}
	if boss, ok := w.Components.Boss.GetComponent(e.Boss); ok {
		s.Respawns = boss.Respawns
		for _, esc := range boss.Escorts {
			if w.Alive(esc) {
				s.EscortsAlive++
			}
		}
	}

	for _, g := range e.Groups {
		grp, ok := w.Components.Group.GetComponent(g)
		if !ok {
			continue
		}
		s.Groups = append(s.Groups, GroupSummary{
			Entity:          g,
			Class:           grp.Class.String(),
			Alive:           grp.AliveCount,
			Max:             grp.MaxCount,
			ReviveArmed:     grp.ReviveArmed,
			ReviveRemaining: grp.ReviveRemaining,
		})
	}

	for _, p := range e.Players {
		ps := PlayerSummary{Entity: p, Alive: w.Alive(p)}
		if hull, ok := w.Components.Hull.GetComponent(p); ok {
			ps.HitPoints = hull.HitPoints
		}
		if lock, ok := w.Components.Lock.GetComponent(p); ok {
			ps.Locked = lock.Locked
		}
		if pw, ok := w.Components.PlayerWeapon.GetComponent(p); ok {
			ps.Laser, ps.LaserMax = e.Combat.Gauges.Charges(pw.LaserGauge)
			ps.Thruster, ps.ThrusterMax = e.Combat.Gauges.Charges(pw.ThrusterGauge)
			ps.LaserOn = pw.LaserFiring
			ps.Missiles = pw.MissilesFired
		}
		s.Players = append(s.Players, ps)
	}
	return s
}

// MarshalZerologObject logs the summary as a structured object
func (s Summary) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("tick", s.Tick).
		Dur("game_time", s.GameTime).
		Bool("boss_alive", s.BossAlive).
		Int("boss_hp", s.BossHitPoints).
		Bool("damage_open", s.DamageOpen).
		Int("escorts", s.EscortsAlive).
		Int("respawns", s.Respawns)

	groups := zerolog.Arr()
	for _, g := range s.Groups {
		groups.Dict(zerolog.Dict().
			Str("class", g.Class).
			Int("alive", g.Alive).
			Int("max", g.Max).
			Bool("armed", g.ReviveArmed))
	}
	e.Array("groups", groups)

	players := zerolog.Arr()
	for _, p := range s.Players {
		players.Dict(zerolog.Dict().
			Uint64("entity", uint64(p.Entity)).
			Int("hp", p.HitPoints).
			Uint64("locked", uint64(p.Locked)).
			Int("laser", p.Laser).
			Int("missiles", p.Missiles))
	}
	e.Array("players", players)
}
