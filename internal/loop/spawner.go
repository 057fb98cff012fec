package loop

import (
	"time"

	"github.com/tomz197/skyduel/internal/object"
	"github.com/tomz197/skyduel/internal/physics"
)

// Spawner creates crates, hearts, enemies and enemy bullets on independent cooldowns.
type Spawner struct {
	crate       Cooldown
	heart       Cooldown
	enemy       Cooldown
	enemyBullet Cooldown
}

// NewSpawner creates a spawner whose first attempt spawns everything.
func NewSpawner() Spawner {
	return Spawner{
		crate:       Cooldown{Interval: CrateInterval},
		heart:       Cooldown{Interval: HeartInterval},
		enemy:       Cooldown{Interval: EnemyInterval},
		enemyBullet: Cooldown{Interval: EnemyBulletInterval},
	}
}

// Spawn adds every entity whose cooldown elapsed at now.
func (s *Spawner) Spawn(g *Game, now time.Duration) {
	if s.crate.Ready(now) {
		g.Crates = append(g.Crates, g.newPickup(object.KindCrate))
	}
	if s.heart.Ready(now) {
		g.Hearts = append(g.Hearts, g.newPickup(object.KindHeart))
	}
	if s.enemy.Ready(now) {
		g.Enemies = append(g.Enemies, object.New(object.KindEnemy, g.sprites.enemy, EnemySpawn, object.Patrol{}))
		g.log.Debug("enemy spawned", "enemies", len(g.Enemies))
	}
	// The cooldown runs even when there is nobody to shoot.
	if s.enemyBullet.Ready(now) && len(g.Enemies) > 0 {
		shooter := g.Enemies[len(g.Enemies)-1]
		pos := physics.Vec2{X: shooter.Pos.X, Y: shooter.Pos.Y + shooter.Height()/2}
		g.EnemyBullets = append(g.EnemyBullets,
			object.New(object.KindEnemyBullet, g.sprites.enemyBullet, pos, object.Drift{Step: physics.Vec2{Y: object.EnemyBulletStep}}))
	}
}

// newPickup creates a crate or heart at a random column near the top.
func (g *Game) newPickup(k object.Kind) *object.Entity {
	pos := physics.Vec2{X: float64(g.rng.Intn(FieldWidth)), Y: PickupSpawnY}
	if k == object.KindHeart {
		return object.New(k, g.sprites.heart, pos, object.Drift{Step: physics.Vec2{Y: object.HeartStep}})
	}
	return object.New(k, g.sprites.crate, pos, object.Drift{Step: physics.Vec2{Y: object.CrateStep}})
}
