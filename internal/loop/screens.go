package loop

import (
	"fmt"

	"github.com/tomz197/skyduel/internal/draw"
)

// HUD placement in logical pixels.
const (
	hudMargin = 8
	hudTop    = 0
)

// Draw renders the whole frame back to front and presents it.
func (g *Game) Draw(s draw.Surface) error {
	s.Begin()

	g.background.Draw(s)
	for _, p := range g.Players {
		p.Draw(s, g.sprites.explosion)
	}
	for _, list := range g.collections() {
		for _, e := range list {
			e.Draw(s, g.sprites.explosion)
		}
	}

	g.drawHUD(s)
	if g.State == GameStateOver {
		g.drawGameOver(s)
	}

	return s.Present()
}

// drawHUD draws lives and score of both players plus the status line.
func (g *Game) drawHUD(s draw.Surface) {
	p1, p2 := g.Players[0].Player, g.Players[1].Player
	s.DrawText(hudMargin, hudTop, draw.AlignLeft, fmt.Sprintf("P1 Lives: %d Score: %d", p1.Life, p1.Score))
	s.DrawText(FieldWidth-hudMargin, hudTop, draw.AlignRight, fmt.Sprintf("P2 Lives: %d Score: %d", p2.Life, p2.Score))

	if msg := g.Status(); msg != "" {
		s.DrawText(FieldWidth/2, FieldHeight-hudMargin, draw.AlignCenter, msg)
	}
}

// drawGameOver draws the game over message and restart prompt.
func (g *Game) drawGameOver(s draw.Surface) {
	cx, cy := float64(FieldWidth/2), float64(FieldHeight/2)
	s.DrawText(cx, cy-40, draw.AlignCenter, "GAME OVER")
	s.DrawText(cx, cy, draw.AlignCenter, g.Message)
	s.DrawText(cx, cy+40, draw.AlignCenter, "Press ENTER to restart, ESC to quit")
}
