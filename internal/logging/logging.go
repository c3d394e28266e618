// Package logging initializes the structured loggers for the service.
package logging

import (
	"io"
	"log/slog"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	structuredLogger *slog.Logger
	initOnce         sync.Once

	// closers for per-service file logs, closed on shutdown
	closersMu sync.Mutex
	closers   []io.Closer
)

const (
	LevelTrace = slog.Level(-8)
	LevelFatal = slog.Level(12)
)

var levelNames = map[slog.Leveler]string{
	LevelTrace: "TRACE",
	LevelFatal: "FATAL",
}

func replaceLevelNames(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		label, ok := levelNames[level]
		if !ok {
			label = level.String()
		}
		a.Value = slog.StringValue(label)
	}
	return a
}

// Init configures the default loggers: JSON to stdout for machine
// consumption and text to stderr for humans.
func Init(debug bool) {
	initOnce.Do(func() {
		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		structuredHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       level,
			ReplaceAttr: replaceLevelNames,
		})
		structuredLogger = slog.New(structuredHandler)
		slog.SetDefault(structuredLogger)
	})
}

// ForService returns a logger writing JSON records to a rotating file in
// addition to the default output. The returned close function flushes and
// closes the file writer.
func ForService(service, path string, maxSizeMB, maxAgeDays int, level slog.Leveler) (*slog.Logger, func() error) {
	rotator := &lumberjack.Logger{
		Filename: path,
		MaxSize:  maxSizeMB,
		MaxAge:   maxAgeDays,
		Compress: true,
	}

	closersMu.Lock()
	closers = append(closers, rotator)
	closersMu.Unlock()

	handler := slog.NewJSONHandler(rotator, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: replaceLevelNames,
	})
	logger := slog.New(handler).With("service", service)
	return logger, rotator.Close
}

// Shutdown closes all file writers created by ForService.
func Shutdown() {
	closersMu.Lock()
	defer closersMu.Unlock()
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
}
