package loop

import (
	"math"
	"math/rand"
	"time"

	"github.com/tomz197/skyduel/internal/draw"
	"github.com/tomz197/skyduel/internal/object"
	"github.com/tomz197/skyduel/internal/physics"
)

// Background is a starfield that scrolls down by BackgroundStep every BackgroundEvery.
type Background struct {
	stars  []physics.Vec2
	height float64
	offset float64
	scroll Interval
}

// NewBackground scatters stars over the playfield.
func NewBackground(rng *rand.Rand, field object.Playfield) Background {
	stars := make([]physics.Vec2, starCount)
	for i := range stars {
		stars[i] = physics.Vec2{
			X: rng.Float64() * field.Width,
			Y: rng.Float64() * field.Height,
		}
	}
	return Background{
		stars:  stars,
		height: field.Height,
		scroll: Interval{Every: BackgroundEvery},
	}
}

// Start restarts the scroll timer at now.
func (b *Background) Start(now time.Duration) {
	b.scroll.Start(now)
}

// Scroll moves the stars once per elapsed period.
func (b *Background) Scroll(now time.Duration) {
	if b.scroll.Due(now) {
		b.offset = math.Mod(b.offset+BackgroundStep, b.height)
	}
}

// Offset returns how far the stars have scrolled.
func (b *Background) Offset() float64 {
	return b.offset
}

// Draw plots the stars at their scrolled positions.
func (b *Background) Draw(s draw.Surface) {
	for _, star := range b.stars {
		s.DrawPoint(star.X, math.Mod(star.Y+b.offset, b.height))
	}
}
