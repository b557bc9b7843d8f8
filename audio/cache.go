package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// cueCache stores rendered cues so repeats replay a buffer instead of resynthesizing
type cueCache struct {
	mu     sync.RWMutex
	format beep.Format
	store  [cueCount]*beep.Buffer
}

func newCueCache(rate beep.SampleRate) *cueCache {
	return &cueCache{format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}}
}

// get returns a fresh streamer over the cached cue, rendering it on first use
func (c *cueCache) get(cue Cue) beep.StreamSeeker {
	if cue < 0 || cue >= cueCount {
		return nil
	}

	c.mu.RLock()
	buf := c.store[cue]
	c.mu.RUnlock()

	if buf == nil {
		c.mu.Lock()
		// Double-check after acquiring write lock
		if buf = c.store[cue]; buf == nil {
			buf = beep.NewBuffer(c.format)
			buf.Append(Render(cue, c.format.SampleRate))
			c.store[cue] = buf
		}
		c.mu.Unlock()
	}
	return buf.Streamer(0, buf.Len())
}

// preload renders every cue
func (c *cueCache) preload() {
	for cue := Cue(0); cue < cueCount; cue++ {
		c.get(cue)
	}
}
