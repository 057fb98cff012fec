package config

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Frontend selects how the local game draws to the terminal.
type Frontend string

const (
	FrontendANSI  Frontend = "ansi"
	FrontendTcell Frontend = "tcell"
)

// Settings holds the options shared by the binaries.
type Settings struct {
	LogFile  string   // SKYDUEL_LOG; empty discards logs
	LogLevel string   // SKYDUEL_LOG_LEVEL
	Frontend Frontend // SKYDUEL_FRONTEND
	Sound    bool     // SKYDUEL_SOUND
	SaveDir  string   // SKYDUEL_SAVE_DIR
}

// FromEnv reads Settings from the environment.
func FromEnv() Settings {
	s := Settings{
		LogFile:  GetEnv("SKYDUEL_LOG", ""),
		LogLevel: GetEnv("SKYDUEL_LOG_LEVEL", "info"),
		Frontend: Frontend(strings.ToLower(GetEnv("SKYDUEL_FRONTEND", string(FrontendANSI)))),
		Sound:    GetEnvBool("SKYDUEL_SOUND", true),
		SaveDir:  GetEnv("SKYDUEL_SAVE_DIR", "."),
	}
	if s.Frontend != FrontendTcell {
		s.Frontend = FrontendANSI
	}
	return s
}

// Level returns the parsed log level, defaulting to info.
func (s Settings) Level() log.Level {
	lvl, err := log.ParseLevel(s.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// NewLogger builds a logger writing to w at the configured level.
func (s Settings) NewLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           s.Level(),
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}

// OpenLog opens the configured log file for appending, or returns io.Discard
// when none is set. The returned close func is always non-nil.
func (s Settings) OpenLog() (io.Writer, func() error, error) {
	if s.LogFile == "" {
		return io.Discard, func() error { return nil }, nil
	}
	f, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
