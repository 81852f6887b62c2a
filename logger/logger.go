package logger

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var rootLogger *slog.Logger
var setup sync.Once

// Level is shared by every logger built here so it can be adjusted at runtime.
var Level = new(slog.LevelVar)

// Setup returns the process-wide logger, creating it on first use.
func Setup() *slog.Logger {

	setup.Do(func() {
		log := New(os.Stderr)
		slog.SetDefault(log)
		rootLogger = log
	})

	return rootLogger
}

// New builds a text logger writing to w at the shared Level.
func New(w io.Writer) *slog.Logger {
	logOptions := &slog.HandlerOptions{Level: Level}

	if len(os.Getenv("INVOCATION_ID")) > 0 {
		// don't add timestamps when running under systemd
		log.Default().SetFlags(0)

		logOptions.ReplaceAttr = func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey && len(groups) == 0 {
				a.Key = ""
				a.Value = slog.AnyValue(nil)
			}
			return a
		}
	}

	return slog.New(slog.NewTextHandler(w, logOptions))
}

// SetLevel parses a level name ("debug", "info", "warn", "error") and applies it.
func SetLevel(name string) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		lvl = slog.LevelInfo
	}
	Level.Set(lvl)
}

type loggerKey struct{}

// NewContext adds the logger to the context.
func NewContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext retrieves a logger from the context. If there is none,
// it returns the default logger.
func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	return Setup()
}
