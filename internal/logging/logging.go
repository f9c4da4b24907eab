// Package logging configures slog for meshidx runs.
//
// A normal run logs text to the command's stderr at the configured level.
// With --debug every generator run is also recorded as JSON in
// ~/.meshidx/logs/meshidx.log, rotated by size, so slow or failing index
// generation can be inspected after the fact.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Config describes the --debug file logger.
type Config struct {
	// Level is the minimum level: debug, info, warn or error.
	Level string
	// FilePath is the JSON log file.
	FilePath string
	// MaxSizeMB triggers rotation (default 10).
	MaxSizeMB int
	// MaxFiles is how many rotated files are kept (default 5).
	MaxFiles int
	// Echo, if set, receives a copy of every record.
	Echo io.Writer
}

// DefaultConfig returns the file logger defaults.
func DefaultConfig() Config {
	return Config{
		Level:     "info",
		FilePath:  DefaultLogPath(),
		MaxSizeMB: 10,
		MaxFiles:  5,
	}
}

// DebugConfig returns the configuration used by --debug.
func DebugConfig() Config {
	cfg := DefaultConfig()
	cfg.Level = "debug"
	return cfg
}

// Setup opens the rotating log file and returns a JSON logger writing to
// it. The cleanup function flushes and closes the file.
func Setup(cfg Config) (*slog.Logger, func(), error) {
	writer, err := NewRotatingWriter(cfg.FilePath, cfg.MaxSizeMB, cfg.MaxFiles)
	if err != nil {
		return nil, nil, err
	}

	var out io.Writer = writer
	if cfg.Echo != nil {
		out = io.MultiWriter(writer, cfg.Echo)
	}

	logger := slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}))

	cleanup := func() {
		_ = writer.Sync()
		_ = writer.Close()
	}
	return logger, cleanup, nil
}

// NewConsole returns the text logger used when --debug is not set.
func NewConsole(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
}

// parseLevel maps a config level name to slog. Unknown names fall back to
// info; config validation rejects them before they get here.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
