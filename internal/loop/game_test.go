package loop

import (
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomz197/skyduel/internal/audio"
	"github.com/tomz197/skyduel/internal/draw"
	"github.com/tomz197/skyduel/internal/input"
	"github.com/tomz197/skyduel/internal/object"
	"github.com/tomz197/skyduel/internal/physics"
	"github.com/tomz197/skyduel/internal/save"
	"github.com/tomz197/skyduel/internal/sprite"
)

type fakeClock struct {
	now time.Duration
}

func (c *fakeClock) Now() time.Duration {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now += d
}

func newTestGame(t *testing.T) (*Game, *fakeClock, *audio.Recorder) {
	t.Helper()
	sheet, err := sprite.Default()
	if err != nil {
		t.Fatalf("sprite.Default: %v", err)
	}
	clk := &fakeClock{}
	rec := &audio.Recorder{}
	g, err := NewGame(Options{
		Sheet:    sheet,
		Sound:    rec,
		Clock:    clk,
		Rand:     rand.New(rand.NewSource(1)),
		SavePath: filepath.Join(t.TempDir(), save.FileName),
	})
	if err != nil {
		t.Fatalf("NewGame: %v", err)
	}
	return g, clk, rec
}

func TestNewGameNeedsSheet(t *testing.T) {
	if _, err := NewGame(Options{}); err == nil {
		t.Fatalf("NewGame without sheet should fail")
	}
}

func TestNewGameStartState(t *testing.T) {
	g, _, _ := newTestGame(t)
	if g.State != GameStatePlaying {
		t.Fatalf("state = %v, want playing", g.State)
	}
	if g.Players[0].Pos != Player1Spawn || g.Players[1].Pos != Player2Spawn {
		t.Fatalf("players at %+v and %+v", g.Players[0].Pos, g.Players[1].Pos)
	}
	for i, p := range g.Players {
		if p.Player.Life != object.StartLives || p.Player.Score != 0 {
			t.Errorf("player %d: lives %d score %d", i+1, p.Player.Life, p.Player.Score)
		}
	}
}

func TestCooldown(t *testing.T) {
	c := Cooldown{Interval: 4 * time.Second}
	if !c.Ready(0) {
		t.Fatalf("first attempt should pass")
	}
	if c.Ready(3999 * time.Millisecond) {
		t.Fatalf("attempt inside the interval passed")
	}
	if !c.Ready(4 * time.Second) {
		t.Fatalf("attempt after the interval was refused")
	}
	c.Reset()
	if !c.Ready(4001 * time.Millisecond) {
		t.Fatalf("attempt after Reset was refused")
	}
}

func TestIntervalSkipsMissedPeriods(t *testing.T) {
	iv := Interval{Every: 100 * time.Millisecond}
	iv.Start(0)
	if iv.Due(50 * time.Millisecond) {
		t.Fatalf("due before the first period")
	}
	if !iv.Due(100 * time.Millisecond) {
		t.Fatalf("not due after one period")
	}
	if !iv.Due(1 * time.Second) {
		t.Fatalf("not due after a long stall")
	}
	if iv.Due(1050 * time.Millisecond) {
		t.Fatalf("missed periods were replayed")
	}
}

func TestSpawnerIntervals(t *testing.T) {
	g, _, _ := newTestGame(t)
	s := NewSpawner()

	s.Spawn(g, 0)
	if len(g.Crates) != 1 || len(g.Hearts) != 1 || len(g.Enemies) != 1 || len(g.EnemyBullets) != 1 {
		t.Fatalf("first spawn: crates %d hearts %d enemies %d enemy bullets %d",
			len(g.Crates), len(g.Hearts), len(g.Enemies), len(g.EnemyBullets))
	}

	s.Spawn(g, time.Second)
	if len(g.Crates) != 1 || len(g.Hearts) != 1 || len(g.EnemyBullets) != 1 {
		t.Fatalf("spawned inside the cooldown")
	}

	s.Spawn(g, 4*time.Second)
	if len(g.Crates) != 2 || len(g.Hearts) != 2 || len(g.EnemyBullets) != 2 || len(g.Enemies) != 1 {
		t.Fatalf("after 4s: crates %d hearts %d enemies %d enemy bullets %d",
			len(g.Crates), len(g.Hearts), len(g.Enemies), len(g.EnemyBullets))
	}

	s.Spawn(g, 10*time.Second)
	if len(g.Enemies) != 2 {
		t.Fatalf("enemies after 10s = %d, want 2", len(g.Enemies))
	}
}

func TestSpawnPositions(t *testing.T) {
	g, _, _ := newTestGame(t)
	s := NewSpawner()
	s.Spawn(g, 0)

	for _, e := range append(g.Crates, g.Hearts...) {
		if e.Pos.Y != PickupSpawnY || e.Pos.X < 0 || e.Pos.X >= FieldWidth {
			t.Errorf("%v spawned at %+v", e.Kind, e.Pos)
		}
	}
	enemy := g.Enemies[0]
	if enemy.Pos != EnemySpawn {
		t.Errorf("enemy at %+v, want %+v", enemy.Pos, EnemySpawn)
	}
	want := physics.Vec2{X: EnemySpawn.X, Y: EnemySpawn.Y + enemy.Height()/2}
	if g.EnemyBullets[0].Pos != want {
		t.Errorf("enemy bullet at %+v, want %+v", g.EnemyBullets[0].Pos, want)
	}
}

func TestEnemyBulletUsesLastEnemy(t *testing.T) {
	g, _, _ := newTestGame(t)
	s := NewSpawner()
	s.Spawn(g, 0)

	last := object.New(object.KindEnemy, g.sprites.enemy, physics.Vec2{X: 600, Y: 100}, object.Patrol{})
	g.Enemies = append(g.Enemies, last)
	s.Spawn(g, EnemyBulletInterval)

	got := g.EnemyBullets[len(g.EnemyBullets)-1].Pos
	if got.X != 600 {
		t.Fatalf("enemy bullet x = %v, want 600 (last enemy)", got.X)
	}
}

func TestEnemyBulletSkippedWithoutEnemies(t *testing.T) {
	g, _, _ := newTestGame(t)
	s := NewSpawner()
	s.enemy.Ready(0) // no enemy this round

	s.Spawn(g, 0)
	if len(g.Enemies) != 0 || len(g.EnemyBullets) != 0 {
		t.Fatalf("enemies %d enemy bullets %d, want none", len(g.Enemies), len(g.EnemyBullets))
	}

	g.Enemies = append(g.Enemies, object.New(object.KindEnemy, g.sprites.enemy, EnemySpawn, object.Patrol{}))
	s.Spawn(g, time.Second)
	if len(g.EnemyBullets) != 0 {
		t.Fatalf("enemy bullet fired although the cooldown was consumed")
	}
	s.Spawn(g, EnemyBulletInterval)
	if len(g.EnemyBullets) != 1 {
		t.Fatalf("enemy bullets = %d, want 1", len(g.EnemyBullets))
	}
}

func newBullet(g *Game, pos physics.Vec2, owner int) *object.Entity {
	b := object.New(object.KindBullet, g.sprites.bullet, pos, object.Drift{Step: physics.Vec2{Y: -object.BulletStep}})
	b.Owner = owner
	return b
}

func TestSweepRemovesOutOfBounds(t *testing.T) {
	g, _, _ := newTestGame(t)
	for i := 0; i < 5; i++ {
		g.Bullets = append(g.Bullets, newBullet(g, physics.Vec2{X: float64(100 + 50*i), Y: 300}, 0))
	}
	// Adjacent removals must not shield each other.
	g.Bullets[1].OutOfBounds = true
	g.Bullets[2].OutOfBounds = true
	g.Bullets[4].Pos.Y = -20
	g.sweep()

	if len(g.Bullets) != 2 {
		t.Fatalf("bullets left = %d, want 2", len(g.Bullets))
	}
	for _, b := range g.Bullets {
		if b.OutOfBounds {
			t.Fatalf("out of bounds bullet survived the sweep at %+v", b.Pos)
		}
	}
	if g.Bullets[0].Pos.X != 100 || g.Bullets[1].Pos.X != 250 {
		t.Fatalf("wrong survivors: %+v %+v", g.Bullets[0].Pos, g.Bullets[1].Pos)
	}
}

func TestSweepDropsPickupsBelowTheField(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.Crates = append(g.Crates, g.newPickup(object.KindCrate))
	g.Hearts = append(g.Hearts, g.newPickup(object.KindHeart))
	g.Crates[0].Pos.Y = FieldHeight + 100
	g.sweep()
	if len(g.Crates) != 0 {
		t.Fatalf("crate below the field was kept")
	}
	if len(g.Hearts) != 1 || g.Hearts[0].Pos.Y != PickupSpawnY+object.HeartStep {
		t.Fatalf("heart not advanced: %+v", g.Hearts)
	}
}

func TestHitNeedsOpaqueOverlap(t *testing.T) {
	g, _, _ := newTestGame(t)
	crate := g.newPickup(object.KindCrate)
	crate.Pos = physics.Vec2{X: 400, Y: 200}
	if !Hit(newBullet(g, crate.Pos, 0), crate) {
		t.Fatalf("bullet over the crate center should hit")
	}

	// 16x16 target whose only opaque cell is the top-left 8x8.
	targetMask := physics.NewMask(2, 2, 8)
	targetMask.Set(0, 0, true)
	target := object.New(object.KindCrate, &sprite.Sprite{Name: "corner", Mask: targetMask}, physics.Vec2{X: 8, Y: 8}, nil)

	shotMask := physics.NewMask(1, 1, 8)
	shotMask.Set(0, 0, true)
	shot := object.New(object.KindBullet, &sprite.Sprite{Name: "dot", Mask: shotMask}, physics.Vec2{X: 12, Y: 12}, nil)

	if !physics.AreIntersecting(shot.Rect(), target.Rect()) {
		t.Fatalf("test setup: rectangles should overlap")
	}
	if Hit(shot, target) {
		t.Fatalf("overlap of transparent pixels counted as a hit")
	}

	shot.Pos = physics.Vec2{X: 6, Y: 6}
	if !Hit(shot, target) {
		t.Fatalf("overlap of opaque pixels missed")
	}
}

func TestBulletDestroysCrateAndScores(t *testing.T) {
	g, _, rec := newTestGame(t)
	crate := g.newPickup(object.KindCrate)
	crate.Pos = physics.Vec2{X: 600, Y: 200}
	g.Crates = append(g.Crates, crate)
	g.Bullets = append(g.Bullets, newBullet(g, crate.Pos, 1))

	g.bulletCollision()
	g.compact()

	if len(g.Crates) != 0 || len(g.Bullets) != 0 {
		t.Fatalf("crates %d bullets %d, want 0 and 0", len(g.Crates), len(g.Bullets))
	}
	if got := g.Players[1].Player.Score; got != object.KillScore {
		t.Fatalf("shooter score = %d, want %d", got, object.KillScore)
	}
	if g.Players[0].Player.Score != 0 {
		t.Fatalf("non-shooter scored")
	}
	if rec.Count(audio.ClipExplosion) != 1 {
		t.Fatalf("crate explosion clip not played")
	}
}

func TestBulletDestroysEnemy(t *testing.T) {
	g, _, _ := newTestGame(t)
	enemy := object.New(object.KindEnemy, g.sprites.enemy, physics.Vec2{X: 300, Y: 100}, object.Patrol{})
	g.Enemies = append(g.Enemies, enemy)
	g.Bullets = append(g.Bullets, newBullet(g, enemy.Pos, 0))

	g.bulletCollision()
	g.compact()

	if len(g.Enemies) != 0 || len(g.Bullets) != 0 {
		t.Fatalf("enemies %d bullets %d, want 0 and 0", len(g.Enemies), len(g.Bullets))
	}
	if g.Players[0].Player.Score != object.KillScore {
		t.Fatalf("score = %d", g.Players[0].Player.Score)
	}
}

func TestBulletIsConsumedByFirstHit(t *testing.T) {
	g, _, _ := newTestGame(t)
	pos := physics.Vec2{X: 300, Y: 100}
	crate := g.newPickup(object.KindCrate)
	crate.Pos = pos
	g.Crates = append(g.Crates, crate)
	g.Enemies = append(g.Enemies, object.New(object.KindEnemy, g.sprites.enemy, pos, object.Patrol{}))
	g.Bullets = append(g.Bullets, newBullet(g, pos, 0))

	g.bulletCollision()
	g.compact()

	if len(g.Crates) != 0 || len(g.Enemies) != 1 {
		t.Fatalf("crates %d enemies %d, want 0 and 1", len(g.Crates), len(g.Enemies))
	}
}

func TestBulletNeverHitsShooter(t *testing.T) {
	g, _, rec := newTestGame(t)
	p1 := g.Players[0]
	g.Bullets = append(g.Bullets, newBullet(g, p1.Pos, 0))

	g.bulletCollision()
	if p1.Player.Life != object.StartLives || g.Bullets[0].Destroyed {
		t.Fatalf("own bullet hit the shooter")
	}

	p1.Pos = physics.Vec2{X: 250, Y: 250}
	g.Bullets = []*object.Entity{newBullet(g, p1.Pos, 1)}
	g.bulletCollision()
	if p1.Player.Life != object.StartLives-1 {
		t.Fatalf("opponent bullet missed: lives %d", p1.Player.Life)
	}
	if p1.Pos != Player1Spawn || !p1.Vel.IsZero() {
		t.Fatalf("player one not respawned: %+v", p1.Pos)
	}
	if !g.Exploding(0) || rec.Count(audio.ClipExplosion) != 1 {
		t.Fatalf("explosion not started")
	}
	if g.Players[1].Player.Score != 0 {
		t.Fatalf("shooting a plane should not score")
	}
}

func TestEnemyBulletHitsEitherPlayer(t *testing.T) {
	g, _, _ := newTestGame(t)
	for slot, p := range g.Players {
		b := object.New(object.KindEnemyBullet, g.sprites.enemyBullet, p.Pos, object.Drift{Step: physics.Vec2{Y: object.EnemyBulletStep}})
		g.EnemyBullets = []*object.Entity{b}
		g.enemyBulletCollision()
		g.compact()

		if p.Player.Life != object.StartLives-1 {
			t.Errorf("player %d lives = %d", slot+1, p.Player.Life)
		}
		if len(g.EnemyBullets) != 0 {
			t.Errorf("enemy bullet not consumed")
		}
	}
}

func TestPlaneCollision(t *testing.T) {
	g, _, _ := newTestGame(t)
	p1, p2 := g.Players[0], g.Players[1]
	p2.Pos = physics.Vec2{X: p1.Pos.X + 50, Y: p1.Pos.Y}
	p1.Vel = physics.Vec2{X: 10}

	g.planeCollision()

	for i, p := range g.Players {
		if p.Player.Life != object.StartLives-1 {
			t.Errorf("player %d lives = %d", i+1, p.Player.Life)
		}
		if !g.Exploding(i) || !p.Vel.IsZero() {
			t.Errorf("player %d not exploding at rest", i+1)
		}
	}
	if p1.Pos != Player1Spawn || p2.Pos != Player2Spawn {
		t.Fatalf("players not respawned: %+v %+v", p1.Pos, p2.Pos)
	}
}

func TestCrateContact(t *testing.T) {
	g, _, _ := newTestGame(t)
	crate := g.newPickup(object.KindCrate)
	crate.Pos = g.Players[1].Pos.Add(physics.Vec2{X: 30})
	g.Crates = append(g.Crates, crate)

	g.crateCollision()
	g.compact()

	if g.Players[1].Player.Life != object.StartLives-1 {
		t.Fatalf("player two lives = %d", g.Players[1].Player.Life)
	}
	if g.Players[0].Player.Life != object.StartLives {
		t.Fatalf("player one lost a life")
	}
	if len(g.Crates) != 0 {
		t.Fatalf("crate not destroyed")
	}
}

func TestHeartPickup(t *testing.T) {
	g, _, rec := newTestGame(t)
	heart := g.newPickup(object.KindHeart)
	heart.Pos = g.Players[0].Pos.Add(physics.Vec2{Y: -40})
	g.Hearts = append(g.Hearts, heart)

	g.heartCollision()
	g.compact()

	if g.Players[0].Player.Life != object.StartLives+1 {
		t.Fatalf("lives = %d", g.Players[0].Player.Life)
	}
	if len(g.Hearts) != 0 {
		t.Fatalf("heart not collected")
	}
	if len(rec.Clips) != 0 {
		t.Fatalf("pickup played %v", rec.Clips)
	}
}

func TestFireCooldown(t *testing.T) {
	g, clk, _ := newTestGame(t)
	fire := input.Input{Fire: [2]bool{true, false}}

	g.Frame(fire)
	if len(g.Bullets) != 1 {
		t.Fatalf("bullets = %d, want 1", len(g.Bullets))
	}
	p1 := g.Players[0]
	want := physics.Vec2{X: p1.Pos.X, Y: p1.Pos.Y - p1.Height()/2}
	if g.Bullets[0].Pos != want || g.Bullets[0].Owner != 0 {
		t.Fatalf("bullet at %+v owner %d, want %+v owner 0", g.Bullets[0].Pos, g.Bullets[0].Owner, want)
	}

	clk.Advance(100 * time.Millisecond)
	g.Frame(fire)
	if len(g.Bullets) != 1 {
		t.Fatalf("fired inside the cooldown")
	}

	clk.Advance(100 * time.Millisecond)
	g.Frame(fire)
	if len(g.Bullets) != 2 {
		t.Fatalf("bullets = %d after the cooldown, want 2", len(g.Bullets))
	}
}

func TestMoveAndRotateThroughFrame(t *testing.T) {
	g, clk, _ := newTestGame(t)
	up := g.Players[0].Sprite

	in := input.Input{Rotate: true}
	in.Dir[1] = input.DirRight
	g.Frame(in)

	if g.Players[0].Sprite == up || g.Players[0].Player.Heading() != input.DirLeft {
		t.Fatalf("player one did not rotate")
	}
	if g.Players[1].Vel.X != object.Player2Accel {
		t.Fatalf("player two vel.x = %v", g.Players[1].Vel.X)
	}

	clk.Advance(time.Second / 60)
	g.Frame(input.Input{})
	if g.Players[1].Pos.X <= Player2Spawn.X {
		t.Fatalf("player two did not move: %+v", g.Players[1].Pos)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g, clk, _ := newTestGame(t)
	g.Players[1].Player.Life = 0
	g.Frame(input.Input{})

	if g.State != GameStateOver || g.Message != "Player 2 died" {
		t.Fatalf("state %v message %q", g.State, g.Message)
	}

	clk.Advance(time.Second)
	g.Frame(input.Input{Fire: [2]bool{true, true}})
	if g.State != GameStateOver || len(g.Bullets) != 0 {
		t.Fatalf("game kept running after game over")
	}

	g.Frame(input.Input{Enter: true})
	if g.State != GameStatePlaying {
		t.Fatalf("Enter did not restart")
	}
	if g.Players[1].Player.Life != object.StartLives || len(g.Crates) != 0 {
		t.Fatalf("restart kept old state")
	}
}

func TestAdvanceExplosions(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.killPlayer(0)

	for i := 0; i < object.ExplosionFrames-1; i++ {
		g.AdvanceExplosions()
		if !g.Exploding(0) {
			t.Fatalf("timer stopped after %d frames", i+1)
		}
	}
	g.AdvanceExplosions()
	if g.Exploding(0) {
		t.Fatalf("timer still running after the last frame")
	}
	if g.Exploding(1) {
		t.Fatalf("player two timer started")
	}
}

func TestLastLifeEndsGameImmediately(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.Players[1].Player.Life = 1

	g.killPlayer(1)
	if g.State != GameStateOver || g.Message != "Player 2 died" {
		t.Fatalf("state %v message %q", g.State, g.Message)
	}

	g.killPlayer(0)
	if g.Message != "Player 2 died" {
		t.Fatalf("later kill replaced message: %q", g.Message)
	}
}

func TestHeartCannotUndoCrashOnLastLife(t *testing.T) {
	g, _, _ := newTestGame(t)
	p1 := g.Players[0]
	p1.Player.Life = 1

	crate := g.newPickup(object.KindCrate)
	crate.Pos = p1.Pos
	g.Crates = append(g.Crates, crate)
	heart := g.newPickup(object.KindHeart)
	heart.Pos = Player1Spawn
	g.Hearts = append(g.Hearts, heart)

	g.Frame(input.Input{})

	if g.State != GameStateOver {
		t.Fatalf("state = %v, want game over", g.State)
	}
	if p1.Player.Life != 0 {
		t.Fatalf("lives = %d, want 0", p1.Player.Life)
	}
	if g.Message != "Player 1 died" {
		t.Fatalf("message = %q", g.Message)
	}
}

func TestHeartIgnoresPlayerOutOfLives(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.Players[0].Player.Life = 0
	heart := g.newPickup(object.KindHeart)
	heart.Pos = g.Players[0].Pos
	g.Hearts = append(g.Hearts, heart)

	g.heartCollision()

	if g.Players[0].Player.Life != 0 || heart.Destroyed {
		t.Fatalf("lives %d heart destroyed %v", g.Players[0].Player.Life, heart.Destroyed)
	}
}

func TestSaveAndLoad(t *testing.T) {
	g, _, _ := newTestGame(t)
	if err := g.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if g.Status() != MsgSaved {
		t.Fatalf("status = %q", g.Status())
	}

	p1, p2 := g.Players[0], g.Players[1]
	p1.Pos = physics.Vec2{X: 700, Y: 100}
	p1.Vel = physics.Vec2{X: 5, Y: 5}
	p2.Vel = physics.Vec2{X: -3}
	p1.Player.Life = 1
	p1.Player.Score = 300

	if err := g.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if p1.Pos != Player1Spawn || p2.Pos != Player2Spawn {
		t.Fatalf("positions %+v %+v", p1.Pos, p2.Pos)
	}
	if !p1.Vel.IsZero() || !p2.Vel.IsZero() {
		t.Fatalf("velocities not reset: %+v %+v", p1.Vel, p2.Vel)
	}
	if p1.Player.Life != 3 || p1.Player.Score != 0 {
		t.Fatalf("lives %d score %d", p1.Player.Life, p1.Player.Score)
	}
	if g.Status() != MsgLoaded {
		t.Fatalf("status = %q", g.Status())
	}
}

func TestLoadMissingFileKeepsState(t *testing.T) {
	g, clk, _ := newTestGame(t)
	g.Players[0].Player.Score = 150

	if err := g.Load(); err == nil {
		t.Fatalf("Load of a missing file succeeded")
	}
	if g.Players[0].Player.Score != 150 {
		t.Fatalf("failed load changed the session")
	}
	if g.Status() != MsgLoadFailed {
		t.Fatalf("status = %q", g.Status())
	}

	clk.Advance(StatusDuration)
	if g.Status() != "" {
		t.Fatalf("status did not expire")
	}
}

func TestSaveFailure(t *testing.T) {
	g, _, _ := newTestGame(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	g.savePath = filepath.Join(blocker, save.FileName)

	if err := g.Save(); err == nil {
		t.Fatalf("Save into a file path succeeded")
	}
	if g.Status() != MsgSaveFailed {
		t.Fatalf("status = %q", g.Status())
	}
}

func TestSaveKeysThroughFrame(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.Frame(input.Input{Save: true})
	if _, err := os.Stat(g.savePath); err != nil {
		t.Fatalf("save file missing: %v", err)
	}
}

func TestFailedLoadThroughFrameKeepsPlaying(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.Players[0].Player.Score = 100

	g.Frame(input.Input{Load: true})

	if g.State != GameStatePlaying {
		t.Fatalf("state = %v, want playing", g.State)
	}
	if g.Players[0].Player.Score != 100 {
		t.Fatalf("score = %d, want 100", g.Players[0].Player.Score)
	}
	if g.Status() != MsgLoadFailed {
		t.Fatalf("status = %q, want %q", g.Status(), MsgLoadFailed)
	}
}

func TestBackgroundScroll(t *testing.T) {
	b := NewBackground(rand.New(rand.NewSource(2)), object.Playfield{Width: FieldWidth, Height: FieldHeight})
	b.Start(0)

	steps := []struct {
		at   time.Duration
		want float64
	}{
		{50 * time.Millisecond, 0},
		{100 * time.Millisecond, BackgroundStep},
		{150 * time.Millisecond, BackgroundStep},
		{200 * time.Millisecond, 2 * BackgroundStep},
	}
	for _, s := range steps {
		b.Scroll(s.at)
		if b.Offset() != s.want {
			t.Fatalf("offset at %v = %v, want %v", s.at, b.Offset(), s.want)
		}
	}
}

type recordSurface struct {
	calls    []string
	points   int
	texts    []string
	presents int
}

func (r *recordSurface) Begin() {
	r.calls = append(r.calls, "begin")
}

func (r *recordSurface) DrawSprite(spr *sprite.Sprite, _ physics.Vec2) {
	r.calls = append(r.calls, spr.Name)
}

func (r *recordSurface) DrawPoint(_, _ float64) {
	r.points++
}

func (r *recordSurface) DrawText(_, _ float64, _ draw.Align, text string) {
	r.texts = append(r.texts, text)
}

func (r *recordSurface) Present() error {
	r.presents++
	r.calls = append(r.calls, "present")
	return nil
}

func TestDrawOrder(t *testing.T) {
	g, _, _ := newTestGame(t)
	at := physics.Vec2{X: 300, Y: 300}
	g.Enemies = []*object.Entity{object.New(object.KindEnemy, g.sprites.enemy, at, nil)}
	g.Bullets = []*object.Entity{newBullet(g, at, 0)}
	g.Crates = []*object.Entity{g.newPickup(object.KindCrate)}
	g.Hearts = []*object.Entity{g.newPickup(object.KindHeart)}
	g.EnemyBullets = []*object.Entity{object.New(object.KindEnemyBullet, g.sprites.enemyBullet, at, nil)}

	surf := &recordSurface{}
	if err := g.Draw(surf); err != nil {
		t.Fatal(err)
	}

	want := []string{"begin", sprite.PlaneUp, sprite.Plane2, sprite.Enemy, sprite.Bullet,
		sprite.Crate, sprite.Heart, sprite.EnemyBullet, "present"}
	if len(surf.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", surf.calls, want)
	}
	for i := range want {
		if surf.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", surf.calls, want)
		}
	}
	if surf.points != starCount {
		t.Fatalf("stars drawn = %d, want %d", surf.points, starCount)
	}
}

func TestDrawExplosionAndGameOver(t *testing.T) {
	g, _, _ := newTestGame(t)
	g.killPlayer(0)
	g.AdvanceExplosions()
	g.Players[1].Player.Life = 0
	g.checkGameOver()

	surf := &recordSurface{}
	if err := g.Draw(surf); err != nil {
		t.Fatal(err)
	}
	if surf.calls[1] != sprite.Explosion {
		t.Fatalf("exploding player drawn as %q", surf.calls[1])
	}
	found := false
	for _, text := range surf.texts {
		if text == "Player 2 died" {
			found = true
		}
	}
	if !found {
		t.Fatalf("game over message missing from %v", surf.texts)
	}
}

func TestRunStopsOnQuit(t *testing.T) {
	g, _, _ := newTestGame(t)
	frames := 0
	src := InputFunc(func() input.Input {
		frames++
		return input.Input{Quit: frames > 2}
	})
	surf := &recordSurface{}

	if err := Run(context.Background(), g, src, surf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if surf.presents != 2 {
		t.Fatalf("presented %d frames, want 2", surf.presents)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	g, _, _ := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	surf := &recordSurface{}
	if err := Run(ctx, g, InputFunc(func() input.Input { return input.Input{} }), surf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if surf.presents != 0 {
		t.Fatalf("presented %d frames after cancel", surf.presents)
	}
}
