package parameter

import "time"

// Audio Output
const (
	// AudioSampleRate is the cue render and speaker rate
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 50 * time.Millisecond

	// AudioMasterVolume is the default linear master gain
	AudioMasterVolume = 0.6

	// MinSoundGap between repeats of the same cue
	MinSoundGap = 50 * time.Millisecond
)

// Explosion cue (hull destroyed)
const (
	ExplosionSoundDuration = 700 * time.Millisecond
	ExplosionSoundAttack   = 5 * time.Millisecond
	ExplosionSoundRelease  = 600 * time.Millisecond
)

// Weapon down cue (emplacement destroyed)
const (
	WeaponDownSoundDuration = 250 * time.Millisecond
	WeaponDownSoundAttack   = 5 * time.Millisecond
	WeaponDownSoundRelease  = 150 * time.Millisecond
)

// Revive cue (group revived)
const (
	ReviveSoundNoteDuration = 120 * time.Millisecond
	ReviveSoundAttack       = 5 * time.Millisecond
	ReviveSoundRelease      = 60 * time.Millisecond
)

// Lock cues
const (
	LockSoundDuration     = 90 * time.Millisecond
	LockSoundAttack       = 3 * time.Millisecond
	LockSoundRelease      = 40 * time.Millisecond
	LockLostSoundDuration = 160 * time.Millisecond
)

// Shield and escort cues
const (
	ShieldSoundDuration = 400 * time.Millisecond
	ShieldSoundAttack   = 150 * time.Millisecond
	ShieldSoundRelease  = 200 * time.Millisecond
)

// Gauge cues
const (
	GaugeSoundDuration = 200 * time.Millisecond
	GaugeSoundAttack   = 5 * time.Millisecond
	GaugeSoundRelease  = 120 * time.Millisecond
)

// Missile launch cue
const (
	MissileSoundDuration = 300 * time.Millisecond
	MissileSoundAttack   = 100 * time.Millisecond
	MissileSoundRelease  = 150 * time.Millisecond
)
