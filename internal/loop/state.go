package loop

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/skyduel/internal/audio"
	"github.com/tomz197/skyduel/internal/input"
	"github.com/tomz197/skyduel/internal/object"
	"github.com/tomz197/skyduel/internal/sprite"
)

// GameState represents the current phase of a session.
type GameState int

const (
	GameStatePlaying GameState = iota // Active gameplay
	GameStateOver                     // A player ran out of lives
)

// Options configures a Game. Zero values get sensible defaults, except Sheet.
type Options struct {
	Sheet    *sprite.Sheet
	Sound    audio.Player // nil plays nothing
	Logger   *log.Logger  // nil discards logs
	Clock    Clock        // nil uses the wall clock
	Rand     *rand.Rand   // nil seeds from the wall clock
	SavePath string       // Empty uses save.FileName in the working directory
}

// sprites holds the resolved images a session draws with.
type sprites struct {
	headings    object.Headings
	plane2      *sprite.Sprite
	enemy       *sprite.Sprite
	bullet      *sprite.Sprite
	enemyBullet *sprite.Sprite
	crate       *sprite.Sprite
	heart       *sprite.Sprite
	explosion   *sprite.Animation
}

func loadSprites(sheet *sprite.Sheet) (sprites, error) {
	var s sprites
	if sheet == nil {
		return s, fmt.Errorf("no sprite sheet")
	}

	s.headings = object.Headings{}
	for dir, name := range map[input.Direction]string{
		input.DirForward:  sprite.PlaneUp,
		input.DirLeft:     sprite.PlaneLeft,
		input.DirBackward: sprite.PlaneDown,
		input.DirRight:    sprite.PlaneRight,
	} {
		spr, err := sheet.Sprite(name)
		if err != nil {
			return s, err
		}
		s.headings[dir] = spr
	}

	singles := []struct {
		name string
		dst  **sprite.Sprite
	}{
		{sprite.Plane2, &s.plane2},
		{sprite.Enemy, &s.enemy},
		{sprite.Bullet, &s.bullet},
		{sprite.EnemyBullet, &s.enemyBullet},
		{sprite.Crate, &s.crate},
		{sprite.Heart, &s.heart},
	}
	for _, single := range singles {
		spr, err := sheet.Sprite(single.name)
		if err != nil {
			return s, err
		}
		*single.dst = spr
	}

	explosion, err := sheet.Animation(sprite.Explosion)
	if err != nil {
		return s, err
	}
	if explosion.FrameCount() != object.ExplosionFrames {
		return s, fmt.Errorf("%w: explosion has %d frames, want %d",
			sprite.ErrBadSheet, explosion.FrameCount(), object.ExplosionFrames)
	}
	s.explosion = explosion
	return s, nil
}

func discardLogger() *log.Logger {
	return log.New(io.Discard)
}
