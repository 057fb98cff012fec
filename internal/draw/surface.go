// Package draw renders the playfield to terminals.
package draw

import (
	"github.com/tomz197/skyduel/internal/physics"
	"github.com/tomz197/skyduel/internal/sprite"
)

// Align selects which end of a text sits on its anchor point.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Surface is where a frame is drawn. Coordinates are logical playfield pixels.
type Surface interface {
	// Begin starts a new frame with an empty surface.
	Begin()
	// DrawSprite draws spr centered on center.
	DrawSprite(spr *sprite.Sprite, center physics.Vec2)
	// DrawPoint sets a single pixel.
	DrawPoint(x, y float64)
	// DrawText writes text anchored at (x, y).
	DrawText(x, y float64, align Align, text string)
	// Present shows the finished frame.
	Present() error
}

// Render area limits, in terminal cells.
const (
	MaxTermWidth = 160
	aspectCols   = 8 // cols:rows of a 4:3 playfield with half-block pixels
	aspectRows   = 3
)

// FitPlayfield picks the largest 4:3 render area that fits the terminal, capped
// at MaxTermWidth columns, and the offsets that center it.
func FitPlayfield(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth)
	renderHeight = renderWidth * aspectRows / aspectCols
	if renderHeight > termHeight {
		renderHeight = termHeight
		renderWidth = renderHeight * aspectCols / aspectRows
	}
	if renderWidth < 1 {
		renderWidth = 1
	}
	if renderHeight < 1 {
		renderHeight = 1
	}
	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}
