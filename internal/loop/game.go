// Package loop runs a two-player session: frame updates, collisions, spawning
// and drawing, plus the host loop that drives it.
package loop

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyduel/internal/audio"
	"github.com/tomz197/skyduel/internal/input"
	"github.com/tomz197/skyduel/internal/object"
	"github.com/tomz197/skyduel/internal/physics"
	"github.com/tomz197/skyduel/internal/save"
)

// Game owns every entity of one session.
type Game struct {
	Field   object.Playfield
	State   GameState
	Message string // Shown on the game over screen

	Players      [2]*object.Entity
	Enemies      []*object.Entity
	Bullets      []*object.Entity
	EnemyBullets []*object.Entity
	Crates       []*object.Entity
	Hearts       []*object.Entity

	sprites  sprites
	snd      audio.Player
	log      *log.Logger
	clock    Clock
	rng      *rand.Rand
	savePath string

	spawner    Spawner
	fire       [2]Cooldown
	exploding  [2]bool // Explosion timer running per player
	background Background

	status      string
	statusUntil time.Duration
	lastFrame   time.Duration
}

// NewGame creates a session ready to play.
func NewGame(opts Options) (*Game, error) {
	spr, err := loadSprites(opts.Sheet)
	if err != nil {
		return nil, fmt.Errorf("load sprites: %w", err)
	}

	g := &Game{
		Field:    object.Playfield{Width: FieldWidth, Height: FieldHeight},
		sprites:  spr,
		snd:      opts.Sound,
		log:      opts.Logger,
		clock:    opts.Clock,
		rng:      opts.Rand,
		savePath: opts.SavePath,
	}
	if g.snd == nil {
		g.snd = audio.Silent{}
	}
	if g.log == nil {
		g.log = discardLogger()
	}
	if g.clock == nil {
		g.clock = NewClock()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if g.savePath == "" {
		g.savePath = save.FileName
	}

	g.background = NewBackground(g.rng, g.Field)
	g.Reset()
	return g, nil
}

// Reset starts a fresh session: full lives, no score, empty skies.
func (g *Game) Reset() {
	g.Players[0] = object.NewPlayer(0, g.sprites.headings[input.DirForward], Player1Spawn, object.Player1Accel, g.sprites.headings)
	g.Players[1] = object.NewPlayer(1, g.sprites.plane2, Player2Spawn, object.Player2Accel, nil)
	g.Enemies = nil
	g.Bullets = nil
	g.EnemyBullets = nil
	g.Crates = nil
	g.Hearts = nil

	g.spawner = NewSpawner()
	g.fire = [2]Cooldown{{Interval: FireInterval}, {Interval: FireInterval}}
	g.exploding = [2]bool{}
	g.State = GameStatePlaying
	g.Message = ""
	g.status = ""

	now := g.clock.Now()
	g.lastFrame = now
	g.background.Start(now)
	g.log.Debug("session started")
}

// Frame advances the session by one tick.
func (g *Game) Frame(in input.Input) {
	now := g.clock.Now()
	delta := now - g.lastFrame
	if delta > maxFrameDelta {
		delta = maxFrameDelta
	}
	if delta < 0 {
		delta = 0
	}
	g.lastFrame = now

	if g.State == GameStateOver {
		if in.Enter {
			g.Reset()
		}
		return
	}

	// Save and Load report failures on the HUD and in the log.
	if in.Save {
		_ = g.Save()
	}
	if in.Load {
		_ = g.Load()
	}
	if in.Rotate {
		g.Players[0].Rotate()
	}

	for i, p := range g.Players {
		p.Move(in.Dir[i], g.Field)
	}
	for _, e := range g.Enemies {
		e.Advance(g.Field)
	}

	g.planeCollision()
	g.crateCollision()
	if g.State == GameStateOver {
		g.compact()
		return
	}
	g.heartCollision()
	g.compact()

	g.spawner.Spawn(g, now)
	g.sweep()
	g.fireBullets(in, now)

	g.enemyBulletCollision()
	g.bulletCollision()
	g.compact()

	g.update(delta.Seconds())
	g.background.Scroll(now)
	g.checkGameOver()
}

// AdvanceExplosions steps every running player explosion by one frame.
// The host calls it every ExplosionInterval.
func (g *Game) AdvanceExplosions() {
	for i, p := range g.Players {
		if g.exploding[i] && !p.AdvanceExplosion() {
			g.exploding[i] = false
		}
	}
}

// Exploding reports whether the explosion timer of player slot is running.
func (g *Game) Exploding(slot int) bool {
	return g.exploding[slot]
}

// fireBullets spawns a bullet for each player holding fire whose cooldown elapsed.
func (g *Game) fireBullets(in input.Input, now time.Duration) {
	for i, p := range g.Players {
		if !in.Fire[i] || !g.fire[i].Ready(now) {
			continue
		}
		pos := physics.Vec2{X: p.Pos.X, Y: p.Pos.Y - p.Height()/2}
		b := object.New(object.KindBullet, g.sprites.bullet, pos, object.Drift{Step: physics.Vec2{Y: -object.BulletStep}})
		b.Owner = i
		g.Bullets = append(g.Bullets, b)
	}
}

// killPlayer takes a life from player slot, starts its explosion and respawns it.
func (g *Game) killPlayer(slot int) {
	p := g.Players[slot]
	p.Explode(g.snd)
	g.exploding[slot] = true
	p.Respawn()
	p.Player.Life--
	g.log.Debug("player hit", "player", slot+1, "lives", p.Player.Life)
	if p.Player.Life <= 0 {
		g.gameOver(slot)
	}
}

// destroy removes a non-player entity with an explosion sound.
func (g *Game) destroy(e *object.Entity) {
	e.Explode(g.snd)
	e.Destroyed = true
}

// award credits a kill to the player that fired the bullet.
func (g *Game) award(owner int) {
	if owner < 0 || owner >= len(g.Players) {
		return
	}
	g.Players[owner].Player.IncreaseScore()
}

func (g *Game) update(dt float64) {
	for _, p := range g.Players {
		p.Update(dt, g.snd)
	}
	for _, list := range g.collections() {
		for _, e := range list {
			e.Update(dt, g.snd)
		}
	}
}

// collections lists the per-kind slices in draw order.
func (g *Game) collections() [][]*object.Entity {
	return [][]*object.Entity{g.Enemies, g.Bullets, g.Crates, g.Hearts, g.EnemyBullets}
}

// checkGameOver catches lives set to zero outside a kill, such as a load.
func (g *Game) checkGameOver() {
	for i, p := range g.Players {
		if p.Player.Life <= 0 {
			g.gameOver(i)
			return
		}
	}
}

// gameOver ends the session because player slot ran out of lives. Only the
// first call of a session counts.
func (g *Game) gameOver(slot int) {
	if g.State == GameStateOver {
		return
	}
	g.State = GameStateOver
	g.Message = fmt.Sprintf("Player %d died", slot+1)
	g.log.Info("game over", "player", slot+1,
		"score1", g.Players[0].Player.Score, "score2", g.Players[1].Player.Score)
}

// Status returns the current HUD status message, if any.
func (g *Game) Status() string {
	if g.status == "" || g.clock.Now() >= g.statusUntil {
		return ""
	}
	return g.status
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.clock.Now() + StatusDuration
}
