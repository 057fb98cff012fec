package loop

import (
	"time"

	"github.com/tomz197/skyduel/internal/physics"
)

// Game configuration constants.
// All tunable game parameters are centralized here for easy adjustment.

// Playfield in logical pixels.
const (
	FieldWidth  = 800
	FieldHeight = 600
)

// Frame timing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
	maxFrameDelta   = 100 * time.Millisecond // Clamp for long stalls (e.g. a suspended terminal)
)

// Player
var (
	Player1Spawn = physics.Vec2{X: 100, Y: 400}
	Player2Spawn = physics.Vec2{X: 400, Y: 400}
)

// FireInterval is the minimum time between two shots of one player.
const FireInterval = 200 * time.Millisecond

// Spawning
const (
	CrateInterval       = 4000 * time.Millisecond
	HeartInterval       = 4000 * time.Millisecond
	EnemyInterval       = 10000 * time.Millisecond
	EnemyBulletInterval = 4000 * time.Millisecond
	PickupSpawnY        = 32
)

// EnemySpawn is where new enemies appear.
var EnemySpawn = physics.Vec2{X: 100, Y: 60}

// Animation
const (
	ExplosionInterval = 250 * time.Millisecond
	BackgroundStep    = 10 // Pixels per scroll
	BackgroundEvery   = 100 * time.Millisecond
	starCount         = 60
)

// StatusDuration is how long a status message stays on the HUD.
const StatusDuration = 2 * time.Second

// Status messages
const (
	MsgSaved      = "Game saved"
	MsgLoaded     = "Game loaded"
	MsgLoadFailed = "Unable to open file"
	MsgSaveFailed = "Unable to save file"
)
