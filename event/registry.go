package event

var typeToName = map[EventType]string{
	EventTick:                     "Tick",
	EventGameReset:                "GameReset",
	EventMetaSystemCommandRequest: "MetaSystemCommandRequest",
	EventDamageRequest:            "DamageRequest",
	EventHealthChanged:            "HealthChanged",
	EventHullDestroyed:            "HullDestroyed",
	EventShieldEngaged:            "ShieldEngaged",
	EventShieldDisengaged:         "ShieldDisengaged",
	EventEscortFormationSpawned:   "EscortFormationSpawned",
	EventEmplacementDestroyed:     "EmplacementDestroyed",
	EventEmplacementRevived:       "EmplacementRevived",
	EventEmplacementWakeRequest:   "EmplacementWakeRequest",
	EventShotFired:                "ShotFired",
	EventGroupReviveRequest:       "GroupReviveRequest",
	EventGroupRevived:             "GroupRevived",
	EventTargetLocked:             "TargetLocked",
	EventTargetLost:               "TargetLost",
	EventMissileLaunchRequest:     "MissileLaunchRequest",
	EventMissileLaunched:          "MissileLaunched",
	EventLaserRequest:             "LaserRequest",
	EventBoostRequest:             "BoostRequest",
	EventGaugeDepleted:            "GaugeDepleted",
	EventGaugeRecharged:           "GaugeRecharged",
	EventGaugeLevelUpRequest:      "GaugeLevelUpRequest",
}

// String returns the registered name of the event type
func (t EventType) String() string {
	if name, ok := typeToName[t]; ok {
		return name
	}
	return "Unknown"
}
