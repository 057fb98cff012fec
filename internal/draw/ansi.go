package draw

import (
	"io"

	"github.com/tomz197/skyduel/internal/physics"
	"github.com/tomz197/skyduel/internal/sprite"
)

// ANSI is a Surface that writes escape sequences to a terminal stream
// (a local raw-mode terminal or an SSH session).
type ANSI struct {
	canvas   *Canvas
	frame    *FrameBuffer
	w        io.Writer
	sizeFunc TermSizeFunc
	cleared  bool
}

// NewANSI creates an ANSI surface for a logical playfield of width x height.
// sizeFunc reports the terminal size; nil uses DefaultTermSizeFunc.
func NewANSI(w io.Writer, sizeFunc TermSizeFunc, width, height float64) *ANSI {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	termWidth, termHeight, err := sizeFunc()
	if err != nil {
		termWidth, termHeight = 80, 24
	}
	renderWidth, renderHeight, offsetCol, offsetRow := FitPlayfield(termWidth, termHeight)
	canvas := NewScaledCanvas(renderWidth, renderHeight, width, height)
	canvas.SetOffset(offsetCol, offsetRow)

	return &ANSI{
		canvas:   canvas,
		frame:    NewFrameBuffer(w),
		w:        w,
		sizeFunc: sizeFunc,
	}
}

// Canvas exposes the pixel buffer.
func (a *ANSI) Canvas() *Canvas {
	return a.canvas
}

// Begin handles terminal resize and clears the canvas.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (a *ANSI) Begin() {
	if termWidth, termHeight, err := a.sizeFunc(); err == nil {
		renderWidth, renderHeight, offsetCol, offsetRow := FitPlayfield(termWidth, termHeight)
		c := a.canvas
		if renderWidth != c.TerminalWidth() || renderHeight != c.TerminalHeight() ||
			offsetCol != c.OffsetCol() || offsetRow != c.OffsetRow() {
			a.cleared = false
		}
		c.Resize(renderWidth, renderHeight)
		c.SetOffset(offsetCol, offsetRow)
	}

	if !a.cleared {
		a.frame.WriteString(seqClear)
		a.canvas.ForceRedraw()
		a.canvas.RenderBorder(a.frame)
		a.cleared = true
	}
	a.canvas.Clear()
}

// DrawSprite implements Surface.
func (a *ANSI) DrawSprite(spr *sprite.Sprite, center physics.Vec2) {
	a.canvas.DrawSprite(spr, center)
}

// DrawPoint implements Surface.
func (a *ANSI) DrawPoint(x, y float64) {
	a.canvas.SetFloat(x, y)
}

// DrawText implements Surface.
func (a *ANSI) DrawText(x, y float64, align Align, text string) {
	a.canvas.DrawText(x, y, align, text)
}

// Present writes the changed cells and flushes them to the terminal.
func (a *ANSI) Present() error {
	if err := a.canvas.Render(a.frame); err != nil {
		return err
	}
	return a.frame.Flush()
}

// Open prepares the terminal for drawing.
func (a *ANSI) Open() {
	HideCursor(a.w)
	ClearScreen(a.w)
}

// Close restores the terminal.
func (a *ANSI) Close() {
	ClearScreen(a.w)
	ShowCursor(a.w)
}

var _ Surface = (*ANSI)(nil)
