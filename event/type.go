package event

// EventType represents the type of game event
type EventType int

const (
	// EventTick is the zero type, never queued
	EventTick EventType = iota

	// === Meta Event ===

	// EventGameReset signals a full session reset
	// Trigger: host | Consumer: all systems | Payload: nil
	EventGameReset

	// EventMetaSystemCommandRequest toggles a system by name
	// Trigger: host, debug | Consumer: all systems | Payload: *MetaSystemCommandPayload
	EventMetaSystemCommandRequest

	// === Damage Event ===

	// EventDamageRequest asks the owner of the target to apply damage
	// Trigger: EmplacementSystem, PlayerWeaponSystem, host collision
	// Consumer: HullSystem, EmplacementSystem | Payload: *DamageRequestPayload
	EventDamageRequest

	// EventHealthChanged notifies presentation of a hit point change
	// Trigger: HullSystem, EmplacementSystem, GroupSystem | Consumer: Notifier | Payload: *HealthChangedPayload
	EventHealthChanged

	// === Hull Event ===

	// EventHullDestroyed signals hull death, emitted once
	// Trigger: HullSystem | Consumer: Notifier | Payload: *HullDestroyedPayload
	EventHullDestroyed

	// EventShieldEngaged signals the boss shield coming up with a fresh escort formation
	// Trigger: HullSystem | Consumer: Notifier | Payload: *ShieldPayload
	EventShieldEngaged

	// EventShieldDisengaged signals the last escort going down
	// Trigger: HullSystem | Consumer: Notifier | Payload: *ShieldPayload
	EventShieldDisengaged

	// EventEscortFormationSpawned signals an escort formation respawn at a checkpoint
	// Trigger: HullSystem | Consumer: Notifier | Payload: *EscortFormationPayload
	EventEscortFormationSpawned

	// === Emplacement Event ===

	// EventEmplacementDestroyed signals an emplacement reaching zero hit points
	// Trigger: EmplacementSystem | Consumer: GroupSystem, Notifier | Payload: *EmplacementPayload
	EventEmplacementDestroyed

	// EventEmplacementRevived signals an emplacement back at full hit points
	// Trigger: GroupSystem | Consumer: Notifier | Payload: *EmplacementPayload
	EventEmplacementRevived

	// EventEmplacementWakeRequest wakes a dormant emplacement
	// Trigger: host | Consumer: EmplacementSystem | Payload: *EmplacementPayload
	EventEmplacementWakeRequest

	// EventShotFired signals a discrete emplacement shot
	// Trigger: EmplacementSystem | Consumer: Notifier | Payload: *ShotPayload
	EventShotFired

	// === Group Event ===

	// EventGroupReviveRequest force-revives a group regardless of its own timer
	// Trigger: HullSystem (force-revive expiry, boss band crossing) | Consumer: GroupSystem | Payload: *GroupPayload
	EventGroupReviveRequest

	// EventGroupRevived signals a completed group revive
	// Trigger: GroupSystem | Consumer: HullSystem, Notifier | Payload: *GroupPayload
	EventGroupRevived

	// === Lock Event ===

	// EventTargetLocked signals a new player lock
	// Trigger: LockSystem | Consumer: Notifier | Payload: *LockPayload
	EventTargetLocked

	// EventTargetLost signals a dropped player lock
	// Trigger: LockSystem | Consumer: Notifier | Payload: *LockPayload
	EventTargetLost

	// === Player Weapon Event ===

	// EventMissileLaunchRequest asks to fire a missile at the current lock
	// Trigger: host input | Consumer: PlayerWeaponSystem | Payload: *PlayerPayload
	EventMissileLaunchRequest

	// EventMissileLaunched signals a launched missile
	// Trigger: PlayerWeaponSystem | Consumer: Notifier | Payload: *MissileLaunchedPayload
	EventMissileLaunched

	// EventLaserRequest starts or stops the player laser
	// Trigger: host input | Consumer: PlayerWeaponSystem | Payload: *PlayerTogglePayload
	EventLaserRequest

	// EventBoostRequest starts or stops the thruster boost
	// Trigger: host input | Consumer: PlayerWeaponSystem | Payload: *PlayerTogglePayload
	EventBoostRequest

	// === Gauge Event ===

	// EventGaugeDepleted signals a gauge hitting zero, consumer forced off
	// Trigger: GaugeSystem | Consumer: PlayerWeaponSystem, Notifier | Payload: *GaugePayload
	EventGaugeDepleted

	// EventGaugeRecharged signals a gauge back at full after depletion
	// Trigger: GaugeSystem | Consumer: Notifier | Payload: *GaugePayload
	EventGaugeRecharged

	// EventGaugeLevelUpRequest grows a laser gauge by one charge
	// Trigger: host progression | Consumer: GaugeSystem | Payload: *GaugePayload
	EventGaugeLevelUpRequest
)

// GameEvent represents a single game event with metadata
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
