package system

import (
	"math"

	"github.com/lixenwraith/skybastion/component"
	"github.com/lixenwraith/skybastion/core"
	"github.com/lixenwraith/skybastion/engine"
	"github.com/lixenwraith/skybastion/parameter"
	"github.com/lixenwraith/skybastion/vmath"
)

// Placement positions an emplacement relative to its anchor hull
// Forward is the rest aim direction, usually the outward surface normal
type Placement struct {
	Offset  vmath.Vec3F
	Forward vmath.Vec3F
	Up      vmath.Vec3F
}

// BandFloor returns the hit point band floor used for boss band crossings
func BandFloor(hp, band int) int {
	if band <= 0 {
		return 0
	}
	return (hp / band) * band
}

// EmplacementDefaults returns a full-health emplacement of the given class
func EmplacementDefaults(class component.WeaponClass) component.EmplacementComponent {
	switch class {
	case component.WeaponSmallCannon:
		return component.EmplacementComponent{
			Class:        class,
			MaxHitPoints: parameter.CombatHPSmallCannon,
			HitPoints:    parameter.CombatHPSmallCannon,
			Enabled:      true,
			Limits:       component.RotationLimits{BodyYawMax: parameter.CombatYawMaxSmallCannon, JointPitchMax: parameter.CombatPitchMaxSmallCannon},
			TurnRate:     parameter.CombatTurnRateSmallCannon,
			FireRange:    parameter.CombatRangeSmallCannon,
			FireInterval: parameter.CombatIntervalSmallCannon,
			Damage:       parameter.CombatDamageSmallCannon,
		}
	case component.WeaponBigCannon:
		return component.EmplacementComponent{
			Class:        class,
			MaxHitPoints: parameter.CombatHPBigCannon,
			HitPoints:    parameter.CombatHPBigCannon,
			Enabled:      true,
			Limits:       component.RotationLimits{BodyYawMax: parameter.CombatYawMaxBigCannon, JointPitchMax: parameter.CombatPitchMaxBigCannon},
			TurnRate:     parameter.CombatTurnRateBigCannon,
			FireRange:    parameter.CombatRangeBigCannon,
			FireInterval: parameter.CombatIntervalBeamTick,
			Damage:       parameter.CombatDamageBeamTick,
			Beam:         true,
		}
	default:
		return component.EmplacementComponent{
			Class:           component.WeaponTurret,
			MaxHitPoints:    parameter.CombatHPTurret,
			HitPoints:       parameter.CombatHPTurret,
			Enabled:         true,
			SchedulerDriven: true,
			Limits:          component.RotationLimits{BodyYawMax: parameter.CombatYawMaxTurret, JointPitchMax: parameter.CombatPitchMaxTurret},
			TurnRate:        parameter.CombatTurnRateTurret,
			FireRange:       parameter.CombatRangeTurret,
			FireInterval:    parameter.CombatIntervalTurret,
			Damage:          parameter.CombatDamageTurret,
		}
	}
}

// CreateHull creates a hull with transform, collider and category tags
// Damage is enabled; weapon groups attach later through CreateGroup
func CreateHull(w *engine.World, kind component.HullKind, pos, forward vmath.Vec3F, maxHP int, radius float64) core.Entity {
	e := w.CreateEntity()

	var colMask, catMask component.Category
	switch kind {
	case component.HullPlayer:
		colMask = component.CategoryPlayer
		catMask = component.CategoryPlayer | component.CategorySeekTarget
	case component.HullEscort:
		colMask = component.CategoryHostile | component.CategoryEscort
		catMask = component.CategoryHostile | component.CategoryEscort | component.CategoryLockable
	default:
		colMask = component.CategoryHostile
		catMask = component.CategoryHostile | component.CategoryLockable
	}

	w.Components.Transform.SetComponent(e, component.TransformComponent{Position: pos, Forward: forward, Up: vmath.V3FUp, Active: true})
	w.Components.Collider.SetComponent(e, component.ColliderComponent{Radius: radius, Mask: colMask})
	w.Components.Category.SetComponent(e, component.CategoryComponent{Mask: catMask})
	w.Components.Hull.SetComponent(e, component.HullComponent{
		Kind:          kind,
		MaxHitPoints:  maxHP,
		HitPoints:     maxHP,
		DamageEnabled: true,
	})
	return e
}

// CreateEscort creates one escort hull
func CreateEscort(w *engine.World, pos, forward vmath.Vec3F) core.Entity {
	return CreateHull(w, component.HullEscort, pos, forward, parameter.CombatHPEscort, parameter.ColliderRadiusEscort)
}

// FormationPositions returns count evenly spaced points on a ring around center in the horizontal plane
func FormationPositions(center vmath.Vec3F, count int, radius float64) []vmath.Vec3F {
	out := make([]vmath.Vec3F, 0, count)
	for i := 0; i < count; i++ {
		a := 2 * math.Pi * float64(i) / float64(count)
		out = append(out, vmath.V3FAdd(center, vmath.Vec3F{X: radius * math.Cos(a), Z: radius * math.Sin(a)}))
	}
	return out
}

// CreateEscortFormation spawns a ring of escorts around center facing forward
func CreateEscortFormation(w *engine.World, center, forward vmath.Vec3F, count int, radius float64) []core.Entity {
	escorts := make([]core.Entity, 0, count)
	for _, pos := range FormationPositions(center, count, radius) {
		escorts = append(escorts, CreateEscort(w, pos, forward))
	}
	return escorts
}

// CreateBoss creates the boss hull with its escort formation at default hit points
func CreateBoss(w *engine.World, pos, forward vmath.Vec3F, tuning *parameter.Tuning) core.Entity {
	return CreateBossHP(w, pos, forward, parameter.CombatHPBoss, tuning)
}

// CreateBossHP creates a boss hull with maxHP hit points and its escort formation
func CreateBossHP(w *engine.World, pos, forward vmath.Vec3F, maxHP int, tuning *parameter.Tuning) core.Entity {
	e := CreateHull(w, component.HullBoss, pos, forward, maxHP, parameter.ColliderRadiusBoss)

	checkpoints := make([]int, len(tuning.EscortCheckpoints))
	copy(checkpoints, tuning.EscortCheckpoints)

	w.Components.Boss.SetComponent(e, component.BossComponent{
		Escorts:         CreateEscortFormation(w, pos, forward, tuning.EscortCount, tuning.EscortRadius),
		LastBand:        BandFloor(maxHP, tuning.BossBand),
		Checkpoints:     checkpoints,
		ShieldActive:    true,
		FormationSize:   tuning.EscortCount,
		FormationRadius: tuning.EscortRadius,
	})
	return e
}

// CreateGroup creates an emplacement group of one class on an anchor hull and attaches it to the hull gate
func CreateGroup(w *engine.World, anchor core.Entity, class component.WeaponClass, placements []Placement, tuning *parameter.Tuning) core.Entity {
	anchorPos := vmath.V3FZero
	if tr, ok := w.Components.Transform.GetComponent(anchor); ok {
		anchorPos = tr.Position
	}

	g := w.CreateEntity()
	members := make([]core.Entity, 0, len(placements))
	for _, p := range placements {
		m := w.CreateEntity()
		up := p.Up
		if up == vmath.V3FZero {
			up = vmath.V3FUp
		}
		emp := EmplacementDefaults(class)
		emp.Group = g
		w.Components.Transform.SetComponent(m, component.TransformComponent{
			Position: vmath.V3FAdd(anchorPos, p.Offset),
			Forward:  p.Forward,
			Up:       up,
			Active:   true,
		})
		w.Components.Collider.SetComponent(m, component.ColliderComponent{Radius: parameter.ColliderRadiusEmplacement, Mask: component.CategoryEmplacement})
		w.Components.Category.SetComponent(m, component.CategoryComponent{Mask: component.CategoryEmplacement | component.CategoryLockable})
		w.Components.Emplacement.SetComponent(m, emp)
		members = append(members, m)
	}

	w.Components.Group.SetComponent(g, component.GroupComponent{
		Class:        class,
		Anchor:       anchor,
		Members:      members,
		AliveCount:   len(members),
		MaxCount:     len(members),
		GateAlive:    len(members),
		ReviveDelay:  tuning.ReviveDelay,
		PerPlayerCap: tuning.PerPlayerCap,
		AssignRange:  tuning.AssignRange,
	})

	if hull, ok := w.Components.Hull.GetComponent(anchor); ok {
		hull.Groups = append(hull.Groups, g)
		w.Components.Hull.SetComponent(anchor, hull)
	}
	return g
}

// CreatePlayer creates a player craft with lock controller, gauges and weapons
func CreatePlayer(w *engine.World, pos, forward vmath.Vec3F, tuning *parameter.Tuning) core.Entity {
	p := CreateHull(w, component.HullPlayer, pos, forward, parameter.CombatHPPlayer, parameter.ColliderRadiusPlayer)

	w.Components.Lock.SetComponent(p, component.LockComponent{
		LockCircleRadius: tuning.LockCircleRadius,
		MissileRange:     tuning.MissileRange,
		HalfFOV:          tuning.HalfFOV,
		Aspect:           tuning.Aspect,
		RequireLOS:       tuning.RequireLOS,
	})

	laser := CreateGauge(w, p, component.GaugeLaser, tuning.LaserCharges, tuning.LaserLevelCap)
	thruster := CreateGauge(w, p, component.GaugeThruster, tuning.ThrusterCharges, tuning.ThrusterCharges)

	w.Components.PlayerWeapon.SetComponent(p, component.PlayerWeaponComponent{
		LaserGauge:    laser,
		ThrusterGauge: thruster,
	})
	return p
}

// CreateGauge creates a full gauge entity owned by owner
func CreateGauge(w *engine.World, owner core.Entity, kind component.GaugeKind, charges, levelCap int) core.Entity {
	g := w.CreateEntity()
	if levelCap < charges {
		levelCap = charges
	}
	w.Components.Gauge.SetComponent(g, component.GaugeComponent{
		Kind:     kind,
		Owner:    owner,
		Max:      charges,
		Current:  charges,
		LevelCap: levelCap,
	})
	return g
}
