package loop

import (
	"github.com/tomz197/skyduel/internal/object"
	"github.com/tomz197/skyduel/internal/physics"
)

// Hit reports whether projectile overlaps target: bounding boxes first, then
// opaque pixels inside the overlap.
func Hit(projectile, target *object.Entity) bool {
	ra, rb := projectile.Rect(), target.Rect()
	if !physics.AreIntersecting(ra, rb) {
		return false
	}
	return physics.MasksOverlap(projectile.Sprite.Mask, ra, target.Sprite.Mask, rb)
}

// touching reports a body contact between a player and another entity.
func touching(player, other *object.Entity) bool {
	return physics.Within(player.Pos, other.Pos, player.Width())
}

// planeCollision handles the two planes ramming each other.
func (g *Game) planeCollision() {
	p1, p2 := g.Players[0], g.Players[1]
	if !touching(p1, p2) {
		return
	}
	g.killPlayer(0)
	g.killPlayer(1)
}

// crateCollision handles players flying into crates.
func (g *Game) crateCollision() {
	for _, c := range g.Crates {
		for slot, p := range g.Players {
			if c.Destroyed {
				break
			}
			if touching(p, c) {
				g.killPlayer(slot)
				g.destroy(c)
			}
		}
	}
}

// heartCollision handles players picking up hearts. A player out of lives
// cannot pick one up.
func (g *Game) heartCollision() {
	for _, h := range g.Hearts {
		for _, p := range g.Players {
			if h.Destroyed {
				break
			}
			if p.Player.Life > 0 && touching(p, h) {
				p.Player.Life++
				h.Destroyed = true
			}
		}
	}
}

// enemyBulletCollision handles enemy bullets hitting either player.
func (g *Game) enemyBulletCollision() {
	for _, b := range g.EnemyBullets {
		for slot, p := range g.Players {
			if b.Destroyed {
				break
			}
			if Hit(b, p) {
				b.Destroyed = true
				g.killPlayer(slot)
			}
		}
	}
}

// bulletCollision handles player bullets hitting the opponent, crates and enemies.
// A bullet is used up by its first hit and never hits its own shooter.
func (g *Game) bulletCollision() {
	for _, b := range g.Bullets {
		if b.Destroyed {
			continue
		}

		for slot, p := range g.Players {
			if slot == b.Owner {
				continue
			}
			if Hit(b, p) {
				b.Destroyed = true
				g.killPlayer(slot)
				break
			}
		}

		for _, c := range g.Crates {
			if b.Destroyed {
				break
			}
			if !c.Destroyed && Hit(b, c) {
				b.Destroyed = true
				g.destroy(c)
				g.award(b.Owner)
			}
		}

		for _, e := range g.Enemies {
			if b.Destroyed {
				break
			}
			if !e.Destroyed && Hit(b, e) {
				b.Destroyed = true
				g.destroy(e)
				g.award(b.Owner)
				g.log.Debug("enemy down", "player", b.Owner+1)
			}
		}
	}
}
