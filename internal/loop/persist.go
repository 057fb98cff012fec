package loop

import (
	"github.com/tomz197/skyduel/internal/save"
)

// Snapshot captures the persisted fields of the session.
func (g *Game) Snapshot() save.Snapshot {
	p1 := g.Players[0]
	return save.Snapshot{
		P1:    p1.Pos,
		P2:    g.Players[1].Pos,
		Lives: p1.Player.Life,
		Score: p1.Player.Score,
	}
}

// Restore applies a snapshot. Both players come to rest.
func (g *Game) Restore(s save.Snapshot) {
	p1, p2 := g.Players[0], g.Players[1]
	p1.Pos = s.P1
	p2.Pos = s.P2
	p1.ResetVelocity()
	p2.ResetVelocity()
	p1.Player.Life = s.Lives
	p1.Player.Score = s.Score
}

// Save writes the session to the save file and reports the outcome on the HUD.
func (g *Game) Save() error {
	if err := save.SaveFile(g.savePath, g.Snapshot()); err != nil {
		g.log.Warn("save failed", "path", g.savePath, "err", err)
		g.setStatus(MsgSaveFailed)
		return err
	}
	g.log.Info("game saved", "path", g.savePath)
	g.setStatus(MsgSaved)
	return nil
}

// Load restores the session from the save file. A missing or malformed file
// leaves the session untouched.
func (g *Game) Load() error {
	s, err := save.LoadFile(g.savePath)
	if err != nil {
		g.log.Warn("load failed", "path", g.savePath, "err", err)
		g.setStatus(MsgLoadFailed)
		return err
	}
	g.Restore(s)
	g.log.Info("game loaded", "path", g.savePath)
	g.setStatus(MsgLoaded)
	return nil
}
