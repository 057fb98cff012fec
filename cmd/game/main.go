package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/tomz197/skyduel/internal/audio"
	"github.com/tomz197/skyduel/internal/config"
	"github.com/tomz197/skyduel/internal/loop"
	"github.com/tomz197/skyduel/internal/save"
	"github.com/tomz197/skyduel/internal/sprite"
	"github.com/tomz197/skyduel/internal/tui"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "skyduel: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.Load(); err != nil {
		return fmt.Errorf("read .env: %w", err)
	}
	settings := config.FromEnv()

	logOut, closeLog, err := settings.OpenLog()
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()
	logger := settings.NewLogger(logOut, "skyduel")

	sheet, err := sprite.Default()
	if err != nil {
		return fmt.Errorf("load sprites: %w", err)
	}

	snd, closeSound := newSound(settings.Sound, logger)
	defer closeSound()

	g, err := loop.NewGame(loop.Options{
		Sheet:    sheet,
		Sound:    snd,
		Logger:   logger,
		SavePath: filepath.Join(settings.SaveDir, save.FileName),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting", "frontend", settings.Frontend, "sound", settings.Sound)
	if settings.Frontend == config.FrontendTcell {
		return runTcell(ctx, g)
	}
	return runANSI(ctx, g)
}

func runANSI(ctx context.Context, g *loop.Game) error {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	return loop.RunTerminal(ctx, g, bufio.NewReader(os.Stdin), os.Stdout, nil)
}

func runTcell(ctx context.Context, g *loop.Game) error {
	t, err := tui.New(loop.FieldWidth, loop.FieldHeight)
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	defer t.Close()

	return loop.Run(ctx, g, t, t)
}

// newSound returns the speaker-backed player, or a silent one when sound is
// disabled or the device cannot be opened.
func newSound(enabled bool, logger *log.Logger) (audio.Player, func()) {
	if !enabled {
		return audio.Silent{}, func() {}
	}
	p := audio.NewBeepPlayer(0.6)
	if err := p.Initialize(); err != nil {
		logger.Warn("sound disabled", "err", err)
		return audio.Silent{}, func() {}
	}
	return p, p.Close
}
