// Package tui is a tcell frontend: it draws frames on a tcell screen and turns
// tcell key events into game input.
package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/tomz197/skyduel/internal/draw"
	"github.com/tomz197/skyduel/internal/input"
	"github.com/tomz197/skyduel/internal/physics"
	"github.com/tomz197/skyduel/internal/sprite"
)

// Terminal is both the draw surface and the input source of a local game.
type Terminal struct {
	screen  tcell.Screen
	canvas  *draw.Canvas
	style   tcell.Style
	events  chan tcell.Event
	tracker input.Tracker
	closed  bool
}

// New opens the local terminal for a playfield of width x height logical pixels.
func New(width, height float64) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, width, height)
}

// NewWithScreen wraps an existing screen, e.g. a simulation screen in tests.
func NewWithScreen(screen tcell.Screen, width, height float64) (*Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.HideCursor()
	screen.Clear()

	cols, rows := screen.Size()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitPlayfield(cols, rows)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, width, height)
	canvas.SetOffset(offsetCol, offsetRow)

	t := &Terminal{
		screen: screen,
		canvas: canvas,
		style:  tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack),
		events: make(chan tcell.Event, 100),
	}
	go t.pump()
	return t, nil
}

func (t *Terminal) pump() {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			close(t.events)
			return
		}
		t.events <- ev
	}
}

// Close restores the terminal.
func (t *Terminal) Close() {
	t.screen.Fini()
}

// ReadInput drains pending events (non-blocking). A finished event stream reads as Quit.
func (t *Terminal) ReadInput() input.Input {
	now := time.Now()

drain:
	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				t.closed = true
				break drain
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				t.tracker.Press(KeyFor(ev), now)
			case *tcell.EventResize:
				t.screen.Sync()
			}
		default:
			break drain
		}
	}

	in := t.tracker.Snapshot(now)
	if t.closed {
		in.Quit = true
	}
	return in
}

// KeyFor maps a tcell key event to a game key.
func KeyFor(ev *tcell.EventKey) input.Key {
	switch ev.Key() {
	case tcell.KeyUp:
		return input.KeyUp
	case tcell.KeyDown:
		return input.KeyDown
	case tcell.KeyLeft:
		return input.KeyLeft
	case tcell.KeyRight:
		return input.KeyRight
	case tcell.KeyEnter:
		return input.KeyEnter
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return input.KeyQuit
	case tcell.KeyRune:
		return input.KeyForRune(ev.Rune())
	default:
		return input.KeyNone
	}
}

// Begin fits the canvas to the current screen size and clears it.
func (t *Terminal) Begin() {
	cols, rows := t.screen.Size()
	renderWidth, renderHeight, offsetCol, offsetRow := draw.FitPlayfield(cols, rows)
	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.canvas.Clear()
	t.screen.Clear()
}

// DrawSprite implements draw.Surface.
func (t *Terminal) DrawSprite(spr *sprite.Sprite, center physics.Vec2) {
	t.canvas.DrawSprite(spr, center)
}

// DrawPoint implements draw.Surface.
func (t *Terminal) DrawPoint(x, y float64) {
	t.canvas.SetFloat(x, y)
}

// DrawText implements draw.Surface.
func (t *Terminal) DrawText(x, y float64, align draw.Align, text string) {
	t.canvas.DrawText(x, y, align, text)
}

// Present copies the canvas to the screen; tcell sends only the changed cells.
func (t *Terminal) Present() error {
	offCol, offRow := t.canvas.OffsetCol(), t.canvas.OffsetRow()
	for row := 0; row < t.canvas.TerminalHeight(); row++ {
		for col := 0; col < t.canvas.TerminalWidth(); col++ {
			ch := t.canvas.Cell(col, row)
			if ch == ' ' {
				continue
			}
			t.screen.SetContent(col+offCol, row+offRow, ch, nil, t.style)
		}
	}
	t.screen.Show()
	return nil
}

var _ draw.Surface = (*Terminal)(nil)
