package audio

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// BeepPlayer synthesizes clips and mixes them on the system speaker.
type BeepPlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

// NewBeepPlayer creates a player. volume is linear, 1.0 is unchanged.
func NewBeepPlayer(volume float64) *BeepPlayer {
	return &BeepPlayer{
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize opens the speaker. Calling it twice is a no-op.
func (p *BeepPlayer) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops all sounds and releases the speaker.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}

// Play queues c on the mixer and returns immediately.
// Before Initialize (or after Close) clips are dropped.
func (p *BeepPlayer) Play(c Clip) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s := newVolume(clipStreamer(c), p.volume)
	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// clipStreamer builds a finite streamer for c.
func clipStreamer(c Clip) beep.Streamer {
	switch c {
	case ClipJetStart:
		return newSweep(180, 520, 400*time.Millisecond)
	case ClipJetStop:
		return newSweep(520, 160, 400*time.Millisecond)
	case ClipJetCabin:
		hum, err := generators.SineTone(sampleRate, 110)
		if err != nil {
			return beep.Silence(0)
		}
		return newFade(beep.Take(sampleRate.N(600*time.Millisecond), hum), 600*time.Millisecond)
	case ClipExplosion:
		return newFade(newNoise(700*time.Millisecond), 700*time.Millisecond)
	default:
		return beep.Silence(0)
	}
}

// sweep is a saw oscillator gliding from one frequency to another.
type sweep struct {
	from, to float64
	phase    float64
	pos      int
	total    int
}

func newSweep(from, to float64, d time.Duration) beep.Streamer {
	return newFade(&sweep{from: from, to: to, total: sampleRate.N(d)}, d)
}

func (s *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		t := float64(s.pos) / float64(s.total)
		freq := s.from + (s.to-s.from)*t
		val := 2.0*s.phase - 1.0
		samples[i][0] = val * 0.4
		samples[i][1] = val * 0.4
		s.phase += freq / float64(sampleRate)
		s.phase -= math.Floor(s.phase)
		s.pos++
	}
	return len(samples), true
}

func (s *sweep) Err() error { return nil }

// noise is white noise of a fixed length.
type noise struct {
	pos, total int
}

func newNoise(d time.Duration) beep.Streamer {
	return &noise{total: sampleRate.N(d)}
}

func (s *noise) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.pos >= s.total {
			return i, i > 0
		}
		val := rand.Float64()*2 - 1
		samples[i][0] = val
		samples[i][1] = val
		s.pos++
	}
	return len(samples), true
}

func (s *noise) Err() error { return nil }

// fade scales a stream linearly from full volume down to silence.
type fade struct {
	streamer beep.Streamer
	pos      int
	total    int
}

func newFade(s beep.Streamer, d time.Duration) beep.Streamer {
	return &fade{streamer: s, total: sampleRate.N(d)}
}

func (f *fade) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = f.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		vol := 1.0 - float64(f.pos)/float64(f.total)
		if vol < 0 {
			vol = 0
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		f.pos++
	}
	return n, ok
}

func (f *fade) Err() error { return f.streamer.Err() }

// newVolume wraps s with a linear volume; math.Log2(0) is -Inf so zero is silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
