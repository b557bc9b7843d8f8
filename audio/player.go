package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/skybastion/event"
	"github.com/lixenwraith/skybastion/parameter"
)

// Output receives finished cue streams
type Output interface {
	Play(s beep.Streamer)
}

// Config holds cue gains and throttling
type Config struct {
	SampleRate   beep.SampleRate
	MasterVolume float64
	// Volumes overrides per-cue linear gain; missing cues play at 1.0
	Volumes map[Cue]float64
	// MinGap drops repeats of one cue closer than this
	MinGap time.Duration
}

// DefaultConfig returns the built-in audio settings
func DefaultConfig() Config {
	return Config{
		SampleRate:   beep.SampleRate(parameter.AudioSampleRate),
		MasterVolume: parameter.AudioMasterVolume,
		Volumes: map[Cue]float64{
			CueExplosion: 1.0,
			CueLock:      0.5,
			CueLockLost:  0.5,
			CueMissile:   0.7,
		},
		MinGap: parameter.MinSoundGap,
	}
}

// CuePlayer turns combat notifications into sounds
// It satisfies engine.Notifier and is called on the simulation goroutine
type CuePlayer struct {
	mu     sync.Mutex
	out    Output
	cfg    Config
	cache  *cueCache
	last   [cueCount]time.Time
	played [cueCount]int
	now    func() time.Time
}

// NewCuePlayer creates a player over out; a nil out discards cues
func NewCuePlayer(out Output, cfg Config) *CuePlayer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = beep.SampleRate(parameter.AudioSampleRate)
	}
	return &CuePlayer{
		out:   out,
		cfg:   cfg,
		cache: newCueCache(cfg.SampleRate),
		now:   time.Now,
	}
}

// Preload renders every cue ahead of the first notification
func (p *CuePlayer) Preload() {
	p.cache.preload()
}

// Notify plays the cue mapped to the event, if any
func (p *CuePlayer) Notify(ev event.GameEvent) {
	if cue, ok := CueForEvent(ev.Type); ok {
		p.Play(cue)
	}
}

// Play sends a cue to the output unless muted or throttled
func (p *CuePlayer) Play(cue Cue) bool {
	if cue < 0 || cue >= cueCount {
		return false
	}

	p.mu.Lock()
	now := p.now()
	if !p.last[cue].IsZero() && now.Sub(p.last[cue]) < p.cfg.MinGap {
		p.mu.Unlock()
		return false
	}
	vol := p.cfg.MasterVolume
	if v, ok := p.cfg.Volumes[cue]; ok {
		vol *= v
	}
	if vol <= 0 || p.out == nil {
		p.mu.Unlock()
		return false
	}
	p.last[cue] = now
	p.played[cue]++
	p.mu.Unlock()

	p.out.Play(newVolume(p.cache.get(cue), vol))
	return true
}

// Played returns how many times a cue reached the output
func (p *CuePlayer) Played(cue Cue) int {
	if cue < 0 || cue >= cueCount {
		return 0
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.played[cue]
}

// Speaker is the hardware output backed by beep/speaker
// All cues share one mixer so overlapping sounds blend
type Speaker struct {
	mixer *beep.Mixer
}

// NewSpeaker initializes the audio device; fails on hosts without one
func NewSpeaker(rate beep.SampleRate) (*Speaker, error) {
	if err := speaker.Init(rate, rate.N(parameter.AudioBufferDuration)); err != nil {
		return nil, err
	}
	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play adds a stream to the shared mixer
func (s *Speaker) Play(st beep.Streamer) {
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close stops playback and releases the device
func (s *Speaker) Close() {
	speaker.Clear()
	speaker.Close()
}
