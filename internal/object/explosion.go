package object

import (
	"github.com/tomz197/skyduel/internal/audio"
	"github.com/tomz197/skyduel/internal/physics"
)

// ExplosionFrames is the number of frames in the explosion animation.
const ExplosionFrames = 16

// ExplosionState is the phase of an entity's explosion.
type ExplosionState int

const (
	ExplosionIdle ExplosionState = iota
	ExplosionRunning
)

// Explosion tracks the explosion animation of one entity.
type Explosion struct {
	State ExplosionState
	Frame int          // Next frame to show, in [0, ExplosionFrames)
	Shown int          // Frame currently on screen
	Pos   physics.Vec2 // Where the entity was when it exploded
}

// Active reports whether the explosion is playing.
func (x Explosion) Active() bool {
	return x.State == ExplosionRunning
}

// Explode starts the explosion animation at the current position.
func (e *Entity) Explode(snd audio.Player) {
	e.Explosion = Explosion{
		State: ExplosionRunning,
		Pos:   e.Pos,
	}
	snd.Play(audio.ClipExplosion)
}

// AdvanceExplosion shows the next explosion frame. It returns false once the
// animation has finished (or was not running): the entity then stops and its
// engine falls silent.
func (e *Entity) AdvanceExplosion() bool {
	x := &e.Explosion
	if x.State != ExplosionRunning {
		return false
	}

	x.Shown = x.Frame
	x.Frame++
	if x.Frame < ExplosionFrames {
		return true
	}

	x.State = ExplosionIdle
	x.Frame = 0
	e.ResetVelocity()
	if e.Player != nil {
		e.Player.speed = SpeedStop
	}
	return false
}
