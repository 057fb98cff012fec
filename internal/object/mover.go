package object

import "github.com/tomz197/skyduel/internal/physics"

// Per-tick steps of the autonomous movers, in pixels.
const (
	BulletStep      = 6.0
	EnemyBulletStep = 3.0
	CrateStep       = 1.0
	HeartStep       = 1.0
)

// EnemyAccel is the velocity change of one patrol nudge.
const EnemyAccel = 0.2

// Mover moves an entity once per tick without player input.
type Mover interface {
	Advance(e *Entity, field Playfield)
}

// Drift moves an entity by a fixed step each tick and flags it out of bounds
// once it has fully left the playfield through the top (upward step) or the
// bottom (downward step).
type Drift struct {
	Step physics.Vec2
}

// Advance implements Mover.
func (d Drift) Advance(e *Entity, field Playfield) {
	e.Pos = e.Pos.Add(d.Step)

	r := e.Rect()
	switch {
	case d.Step.Y < 0 && r.Bottom < 0:
		e.OutOfBounds = true
	case d.Step.Y > 0 && r.Top > field.Height:
		e.OutOfBounds = true
	}
}

// Patrol steers an entity toward the horizontal center of the playfield,
// which makes it swing left and right around the midline.
type Patrol struct{}

// Advance implements Mover.
func (Patrol) Advance(e *Entity, field Playfield) {
	mid := field.Mid()
	switch {
	case e.Pos.X < mid:
		e.PositiveXVelocity()
	case e.Pos.X > mid:
		e.NegativeXVelocity()
	}
}
