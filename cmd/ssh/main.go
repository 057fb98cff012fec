package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/tomz197/skyduel/internal/audio"
	"github.com/tomz197/skyduel/internal/config"
	"github.com/tomz197/skyduel/internal/draw"
	"github.com/tomz197/skyduel/internal/loop"
	"github.com/tomz197/skyduel/internal/save"
	"github.com/tomz197/skyduel/internal/sprite"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = "/app/keys/host_key"
)

func main() {
	if err := config.Load(); err != nil {
		log.Fatal("failed to read .env", "err", err)
	}
	settings := config.FromEnv()
	logger := settings.NewLogger(os.Stderr, "skyduel-ssh")

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("ssh config", "host", host, "port", port, "hostKeyPath", hostKeyPath, "saveDir", settings.SaveDir)

	sheet, err := sprite.Default()
	if err != nil {
		logger.Fatal("failed to load sprites", "err", err)
	}

	h := &handler{sheet: sheet, saveDir: settings.SaveDir, logger: logger}

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			h.middleware,
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// TCP_NODELAY keeps key presses from being batched
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("starting ssh server", "addr", net.JoinHostPort(host, port))
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-done
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("shutdown error", "err", err)
	}
}

// handler runs one independent two-player game per SSH session. Both
// players share the connecting keyboard.
type handler struct {
	sheet   *sprite.Sheet
	saveDir string
	logger  *log.Logger
}

func (h *handler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		logger := h.logger.With("user", sess.User())
		logger.Info("new game session", "terminal", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		win := newWindowSize(pty.Window)
		go win.follow(winCh)

		g, err := loop.NewGame(loop.Options{
			Sheet:    h.sheet,
			Sound:    audio.Silent{},
			Logger:   logger,
			SavePath: h.savePath(sess.User()),
		})
		if err != nil {
			logger.Error("failed to start game", "err", err)
			fmt.Fprintln(sess, "Error: unable to start the game")
			return
		}

		if err := loop.RunTerminal(sess.Context(), g, bufio.NewReader(sess), sess, win.size); err != nil {
			logger.Warn("game error", "err", err)
		}

		logger.Info("session ended")
		next(sess)
	}
}

// savePath keeps each user's save file in its own directory.
func (h *handler) savePath(user string) string {
	name := filepath.Base(strings.TrimSpace(user))
	if name == "" || name == "." || name == ".." || name == string(filepath.Separator) {
		name = "guest"
	}
	return filepath.Join(h.saveDir, "sessions", name, save.FileName)
}

// windowSize follows the PTY size reported by the client.
type windowSize struct {
	mu   sync.RWMutex
	cols int
	rows int
}

func newWindowSize(win ssh.Window) *windowSize {
	return &windowSize{cols: win.Width, rows: win.Height}
}

// follow applies window change events until the channel closes.
func (ws *windowSize) follow(changes <-chan ssh.Window) {
	for win := range changes {
		ws.mu.Lock()
		ws.cols, ws.rows = win.Width, win.Height
		ws.mu.Unlock()
	}
}

func (ws *windowSize) size() (int, int, error) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.cols, ws.rows, nil
}

var _ draw.TermSizeFunc = (*windowSize)(nil).size
