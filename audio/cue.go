package audio

import (
	"github.com/gopxl/beep"

	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
)

// Cue is a synthesized combat sound
type Cue int

const (
	CueExplosion  Cue = iota // Hull destroyed
	CueWeaponDown            // Emplacement destroyed
	CueRevive                // Group revived
	CueLock                  // Target locked
	CueLockLost              // Target lost
	CueShieldDown            // Boss shield disengaged
	CueEscortWarp            // Escort formation spawned
	CueDepleted              // Gauge depleted
	CueRecharged             // Gauge recharged
	CueMissile               // Missile launched
	cueCount
)

var cueNames = [cueCount]string{
	"explosion", "weapon_down", "revive", "lock", "lock_lost",
	"shield_down", "escort_warp", "depleted", "recharged", "missile",
}

// String returns the cue name used in volume maps
func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// ParseCue resolves a cue name
func ParseCue(name string) (Cue, bool) {
	for i, n := range cueNames {
		if n == name {
			return Cue(i), true
		}
	}
	return 0, false
}

// CueForEvent maps a combat event to its cue; most events are silent
func CueForEvent(t event.EventType) (Cue, bool) {
	switch t {
	case event.EventHullDestroyed:
		return CueExplosion, true
	case event.EventEmplacementDestroyed:
		return CueWeaponDown, true
	case event.EventGroupRevived:
		return CueRevive, true
	case event.EventTargetLocked:
		return CueLock, true
	case event.EventTargetLost:
		return CueLockLost, true
	case event.EventShieldDisengaged:
		return CueShieldDown, true
	case event.EventEscortFormationSpawned:
		return CueEscortWarp, true
	case event.EventGaugeDepleted:
		return CueDepleted, true
	case event.EventGaugeRecharged:
		return CueRecharged, true
	case event.EventMissileLaunched:
		return CueMissile, true
	default:
		return 0, false
	}
}

// Render synthesizes a cue at unity gain
func Render(c Cue, rate beep.SampleRate) beep.Streamer {
	switch c {
	case CueExplosion:
		// Noise burst over a falling rumble
		return beep.Mix(
			newVolume(shaped(0, 0, WaveNoise, parameter.ExplosionSoundDuration, parameter.ExplosionSoundAttack, parameter.ExplosionSoundRelease, rate), 0.6),
			newVolume(shaped(90, 40, WaveSine, parameter.ExplosionSoundDuration, parameter.ExplosionSoundAttack, parameter.ExplosionSoundRelease, rate), 0.4),
		)
	case CueWeaponDown:
		return shaped(220, 80, WaveSaw, parameter.WeaponDownSoundDuration, parameter.WeaponDownSoundAttack, parameter.WeaponDownSoundRelease, rate)
	case CueRevive:
		// Rising three-note arpeggio (A4, C#5, E5)
		note := func(f float64) beep.Streamer {
			return shaped(f, f, WaveSquare, parameter.ReviveSoundNoteDuration, parameter.ReviveSoundAttack, parameter.ReviveSoundRelease, rate)
		}
		return newVolume(beep.Seq(note(440), note(554.37), note(659.25)), 0.5)
	case CueLock:
		return shaped(1760, 1760, WaveSine, parameter.LockSoundDuration, parameter.LockSoundAttack, parameter.LockSoundRelease, rate)
	case CueLockLost:
		return shaped(880, 440, WaveSine, parameter.LockLostSoundDuration, parameter.LockSoundAttack, parameter.LockSoundRelease, rate)
	case CueShieldDown:
		return shaped(600, 150, WaveSaw, parameter.ShieldSoundDuration, parameter.ShieldSoundAttack, parameter.ShieldSoundRelease, rate)
	case CueEscortWarp:
		return shaped(150, 900, WaveSine, parameter.ShieldSoundDuration, parameter.ShieldSoundAttack, parameter.ShieldSoundRelease, rate)
	case CueDepleted:
		return shaped(120, 120, WaveSquare, parameter.GaugeSoundDuration, parameter.GaugeSoundAttack, parameter.GaugeSoundRelease, rate)
	case CueRecharged:
		return shaped(987.77, 1318.51, WaveSquare, parameter.GaugeSoundDuration, parameter.GaugeSoundAttack, parameter.GaugeSoundRelease, rate)
	case CueMissile:
		return newVolume(shaped(0, 0, WaveNoise, parameter.MissileSoundDuration, parameter.MissileSoundAttack, parameter.MissileSoundRelease, rate), 0.5)
	default:
		return nil
	}
}
