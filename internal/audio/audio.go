// Package audio plays the game's fire-and-forget sound effects.
package audio

// Clip identifies a sound effect.
type Clip int

const (
	ClipJetStart  Clip = iota // Engine spooling up
	ClipJetStop               // Engine winding down
	ClipJetCabin              // Cruising hum, repeated while moving fast
	ClipExplosion             // Something blew up
)

// String returns the clip name.
func (c Clip) String() string {
	switch c {
	case ClipJetStart:
		return "jet-start"
	case ClipJetStop:
		return "jet-stop"
	case ClipJetCabin:
		return "jet-cabin"
	case ClipExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Player triggers sound effects. Play must not block the caller; overlapping
// clips may be mixed, cut off or dropped.
type Player interface {
	Play(c Clip)
}

// Silent is a Player that discards every clip.
type Silent struct{}

// Play does nothing.
func (Silent) Play(Clip) {}

// Recorder is a Player that remembers played clips in order.
type Recorder struct {
	Clips []Clip
}

// Play appends c to the recording.
func (r *Recorder) Play(c Clip) {
	r.Clips = append(r.Clips, c)
}

// Count returns how many times c was played.
func (r *Recorder) Count(c Clip) int {
	n := 0
	for _, got := range r.Clips {
		if got == c {
			n++
		}
	}
	return n
}

// Reset forgets all recorded clips.
func (r *Recorder) Reset() {
	r.Clips = r.Clips[:0]
}
