// Package object defines the game entities: players, enemies, bullets and pickups.
package object

import (
	"github.com/tomz197/skyduel/internal/audio"
	"github.com/tomz197/skyduel/internal/draw"
	"github.com/tomz197/skyduel/internal/physics"
	"github.com/tomz197/skyduel/internal/sprite"
)

// Kind identifies what an entity is.
type Kind int

const (
	KindPlayer Kind = iota
	KindEnemy
	KindBullet
	KindEnemyBullet
	KindCrate
	KindHeart
)

func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindEnemy:
		return "enemy"
	case KindBullet:
		return "bullet"
	case KindEnemyBullet:
		return "enemy bullet"
	case KindCrate:
		return "crate"
	case KindHeart:
		return "heart"
	default:
		return "unknown"
	}
}

// NoOwner marks entities that were not fired by a player.
const NoOwner = -1

// Playfield is the size of the world in pixels.
type Playfield struct {
	Width, Height float64
}

// Mid returns the horizontal center of the playfield.
func (p Playfield) Mid() float64 {
	return p.Width / 2
}

// Entity is any object in the world. Per-kind behavior comes from its Mover
// and, for players, its Player state.
type Entity struct {
	Kind   Kind
	Pos    physics.Vec2   // Center in world pixels
	Vel    physics.Vec2   // Pixels per second
	Sprite *sprite.Sprite // Current image; also the collision mask

	OutOfBounds bool // Left the playfield on its travel axis
	Destroyed   bool // Hit; removed at the next compaction
	Owner       int  // Player slot that fired a bullet, NoOwner otherwise

	Explosion Explosion
	Player    *Player // Non-nil for player entities

	mover Mover
}

// New creates an entity of kind k centered at pos.
func New(k Kind, spr *sprite.Sprite, pos physics.Vec2, m Mover) *Entity {
	return &Entity{
		Kind:   k,
		Pos:    pos,
		Sprite: spr,
		Owner:  NoOwner,
		mover:  m,
	}
}

// Width returns the sprite width in pixels.
func (e *Entity) Width() float64 {
	return e.Sprite.Width()
}

// Height returns the sprite height in pixels.
func (e *Entity) Height() float64 {
	return e.Sprite.Height()
}

// Rect returns the bounding box around the current position.
func (e *Entity) Rect() physics.Rect {
	return e.Sprite.Rect(e.Pos)
}

// Removable reports whether the entity should leave its collection.
func (e *Entity) Removable() bool {
	return e.OutOfBounds || e.Destroyed
}

// Advance runs the entity's autonomous movement for one tick.
func (e *Entity) Advance(field Playfield) {
	if e.mover != nil {
		e.mover.Advance(e, field)
	}
}

// ResetVelocity stops the entity.
func (e *Entity) ResetVelocity() {
	e.Vel = physics.Vec2{}
}

// PositiveXVelocity nudges the entity to the right.
func (e *Entity) PositiveXVelocity() {
	e.Vel.X += EnemyAccel
}

// NegativeXVelocity nudges the entity to the left.
func (e *Entity) NegativeXVelocity() {
	e.Vel.X -= EnemyAccel
}

// Update integrates velocity over dt seconds and, for players, runs the
// engine sound state machine.
func (e *Entity) Update(dt float64, snd audio.Player) {
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	if e.Player != nil {
		e.Player.updateSpeed(e.Vel.Len(), dt, snd)
	}
}

// Draw renders the entity, or its current explosion frame while exploding.
func (e *Entity) Draw(s draw.Surface, explosion *sprite.Animation) {
	if e.Explosion.Active() && explosion != nil {
		s.DrawSprite(explosion.Frame(e.Explosion.Shown), e.Explosion.Pos)
		return
	}
	s.DrawSprite(e.Sprite, e.Pos)
}

// Compact removes every removable entity in place and clears the freed tail
// slots. Order of the remaining entities is kept.
func Compact(list []*Entity) []*Entity {
	kept := list[:0]
	for _, e := range list {
		if !e.Removable() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(list); i++ {
		list[i] = nil
	}
	return kept
}
