package object

import (
	"github.com/tomz197/skyduel/internal/audio"
	"github.com/tomz197/skyduel/internal/input"
	"github.com/tomz197/skyduel/internal/physics"
	"github.com/tomz197/skyduel/internal/sprite"
)

// Player tuning.
const (
	StartLives    = 3
	KillScore     = 50
	Player1Accel  = 0.5
	Player2Accel  = 0.1
	speedStartAt  = 35.0 // |vel| above which the engine starts
	speedStopAt   = 25.0 // |vel| below which the engine stops
	cabinInterval = 1.0  // Seconds between cabin hum clips
	edgeMargin    = 1.0
)

// SpeedState is the engine sound state of a player.
type SpeedState int

const (
	SpeedStop SpeedState = iota
	SpeedStart
)

// Headings cycles through the plane sprites for Rotate.
type Headings map[input.Direction]*sprite.Sprite

// Player holds the state only player entities have.
type Player struct {
	Slot  int // 0 for player one, 1 for player two
	Life  int
	Score int
	Accel float64      // Velocity change per held direction per tick
	Spawn physics.Vec2 // Respawn position

	heading  input.Direction
	headings Headings
	speed    SpeedState
	timer    float64 // Seconds since the last engine clip
}

// NewPlayer creates a player entity in slot at spawn.
// headings may be nil when the player cannot rotate.
func NewPlayer(slot int, spr *sprite.Sprite, spawn physics.Vec2, accel float64, headings Headings) *Entity {
	e := New(KindPlayer, spr, spawn, nil)
	e.Player = &Player{
		Slot:     slot,
		Life:     StartLives,
		Accel:    accel,
		Spawn:    spawn,
		heading:  input.DirForward,
		headings: headings,
	}
	return e
}

// SpeedState returns the engine sound state.
func (p *Player) SpeedState() SpeedState {
	return p.speed
}

// Heading returns the direction the plane faces.
func (p *Player) Heading() input.Direction {
	return p.heading
}

// IncreaseScore adds one kill's worth of points.
func (p *Player) IncreaseScore() {
	p.Score += KillScore
}

// Move accelerates a player along every held direction and keeps it inside
// the playfield. Edges are checked after each axis step in the order
// left, right, forward, backward.
func (e *Entity) Move(dir input.Direction, field Playfield) {
	if e.Player == nil {
		return
	}
	accel := e.Player.Accel
	halfW := e.Width() / 2
	halfH := e.Height() / 2

	if dir.Has(input.DirLeft) {
		e.Vel.X -= accel
	}
	if e.Pos.X < edgeMargin+halfW {
		e.Vel.X = 0
	}

	if dir.Has(input.DirRight) {
		e.Vel.X += accel
	}
	if e.Pos.X > field.Width-halfW {
		e.Pos.X = field.Width - halfW
		e.Vel.X = 0
	}

	if dir.Has(input.DirForward) {
		e.Vel.Y -= accel
	}
	if e.Pos.Y < edgeMargin+halfH {
		e.Vel.Y = 0
	}

	if dir.Has(input.DirBackward) {
		e.Vel.Y += accel
	}
	if e.Pos.Y > field.Height-halfH {
		e.Pos.Y = field.Height - halfH
		e.Vel.Y = 0
	}
}

// Respawn moves the player back to its spawn point at rest.
func (e *Entity) Respawn() {
	if e.Player == nil {
		return
	}
	e.Pos = e.Player.Spawn
	e.ResetVelocity()
}

// Rotate turns the plane a quarter to the left and swaps its sprite.
// Position and velocity are kept.
func (e *Entity) Rotate() {
	p := e.Player
	if p == nil || len(p.headings) == 0 {
		return
	}
	next := nextHeading(p.heading)
	spr, ok := p.headings[next]
	if !ok {
		return
	}
	p.heading = next
	e.Sprite = spr
}

func nextHeading(d input.Direction) input.Direction {
	switch d {
	case input.DirForward:
		return input.DirLeft
	case input.DirLeft:
		return input.DirBackward
	case input.DirBackward:
		return input.DirRight
	default:
		return input.DirForward
	}
}

func (p *Player) updateSpeed(v, dt float64, snd audio.Player) {
	p.timer += dt

	switch p.speed {
	case SpeedStop:
		if v > speedStartAt {
			p.speed = SpeedStart
			snd.Play(audio.ClipJetStart)
			p.timer = 0
		}
	case SpeedStart:
		if v < speedStopAt {
			p.speed = SpeedStop
			snd.Play(audio.ClipJetStop)
			p.timer = 0
		} else if p.timer > cabinInterval {
			snd.Play(audio.ClipJetCabin)
			p.timer = 0
		}
	}
}
