// ABOUTME: File-backed zerolog logger shared by CLI and TUI
// ABOUTME: Writes to the config directory so output never corrupts the terminal

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu      sync.Mutex
	logger  = zerolog.Nop()
	logFile *os.File
)

// Init opens the debug log under configDir at the given level. An empty
// configDir leaves logging disabled. Repeated calls replace the previous file.
func Init(configDir, level string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
		logger = zerolog.Nop()
	}
	if configDir == "" {
		return nil
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(configDir, "debug.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}

	logFile = f
	logger = zerolog.New(f).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
	return nil
}

// Close flushes and closes the log file. Safe to call without Init.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = zerolog.Nop()
}

// Get returns the current logger. Before Init it is a no-op logger, so
// callers never need to guard their log statements. The pointer refers to
// a snapshot; a later Init does not retarget loggers already handed out.
func Get() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := logger
	return &l
}

func parseLevel(s string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
