// Package audio plays the wall-bump cue. Sound is optional: when the speaker
// cannot be opened the player stays silent.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate   = beep.SampleRate(44100)
	bumpFreq     = 110
	bumpLength   = 60 * time.Millisecond
	bumpCooldown = 150 * time.Millisecond
)

// Player mixes short cues into a single speaker stream.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	lastBump    time.Time
	now         func() time.Time
}

// NewPlayer creates a silent player. Call Init to open the speaker.
func NewPlayer() *Player {
	return &Player{
		mixer: &beep.Mixer{},
		now:   time.Now,
	}
}

// Init opens the speaker. A failure leaves the player usable but silent.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether cues are audible.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Bump plays the wall-bump thud. Repeats inside the cooldown are ignored so a
// held key does not stack tones.
func (p *Player) Bump() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	now := p.now()
	if !p.lastBump.IsZero() && now.Sub(p.lastBump) < bumpCooldown {
		return
	}
	s, err := BumpSound(sampleRate)
	if err != nil {
		return
	}
	p.lastBump = now

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the speaker.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return nil
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
	return nil
}

// BumpSound is a short low sine with a linear fade-out.
func BumpSound(sr beep.SampleRate) (beep.Streamer, error) {
	sine, err := generators.SineTone(sr, bumpFreq)
	if err != nil {
		return nil, err
	}
	total := sr.N(bumpLength)
	pos := 0
	fade := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := sine.Stream(samples)
		for i := 0; i < n; i++ {
			gain := 0.4 * math.Max(0, 1-float64(pos)/float64(total))
			samples[i][0] *= gain
			samples[i][1] *= gain
			pos++
		}
		return n, ok
	})
	return beep.Take(total, fade), nil
}
