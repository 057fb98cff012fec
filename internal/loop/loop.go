package loop

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/tomz197/skyduel/internal/draw"
	"github.com/tomz197/skyduel/internal/input"
)

// InputSource delivers one input snapshot per frame without blocking.
type InputSource interface {
	ReadInput() input.Input
}

// InputFunc adapts a function to InputSource.
type InputFunc func() input.Input

// ReadInput implements InputSource.
func (f InputFunc) ReadInput() input.Input {
	return f()
}

// FromStream reads frames from a raw terminal byte stream.
func FromStream(s *input.Stream) InputSource {
	return InputFunc(func() input.Input {
		return input.ReadInput(s)
	})
}

// Run drives g with the standard Input → Update → Draw cycle until the player
// quits, the input closes or ctx is cancelled. Explosions advance on their
// own ExplosionInterval alongside the frames.
func Run(ctx context.Context, g *Game, src InputSource, surf draw.Surface) error {
	explosions := Interval{Every: ExplosionInterval}
	explosions.Start(g.clock.Now())

	for {
		frameStart := time.Now()

		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// ===== INPUT PHASE =====
		in := src.ReadInput()
		if in.Quit {
			g.log.Debug("quit requested")
			return nil
		}

		// ===== UPDATE PHASE =====
		g.Frame(in)
		if explosions.Due(g.clock.Now()) {
			g.AdvanceExplosions()
		}

		// ===== DRAW PHASE =====
		if err := g.Draw(surf); err != nil {
			return err
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < TargetFrameTime {
			time.Sleep(TargetFrameTime - elapsed)
		}
	}
}

// RunTerminal plays g on an ANSI terminal stream: r carries key bytes, w
// receives the frames and sizeFunc reports the terminal size.
func RunTerminal(ctx context.Context, g *Game, r *bufio.Reader, w io.Writer, sizeFunc draw.TermSizeFunc) error {
	surf := draw.NewANSI(w, sizeFunc, FieldWidth, FieldHeight)
	surf.Open()
	defer surf.Close()

	return Run(ctx, g, FromStream(input.StartStream(r)), surf)
}
