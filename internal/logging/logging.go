package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global slog instance for the application
var Logger *slog.Logger

// Options configures the log file
type Options struct {
	Level      string // debug, info, warn, error
	File       string // empty means ~/.tally/logs/tally.log
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Init initializes the logging system, writing rotated logs to the configured file.
// Uses text format for human readability. The returned closer flushes and closes
// the file.
func Init(opts Options) (io.Closer, error) {
	path := opts.File
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}

	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	SetOutput(file, level)
	return file, nil
}

// SetOutput points the global logger, and the standard log package, at w
func SetOutput(w io.Writer, level slog.Level) {
	// Create text handler (human readable)
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	Logger = slog.New(handler)
	slog.SetDefault(Logger)

	log.SetOutput(w)
	log.SetFlags(log.LstdFlags) // Include timestamp
}

// ParseLevel maps a level name to a slog level. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// DefaultPath returns ~/.tally/logs/tally.log
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tally", "logs", "tally.log"), nil
}
