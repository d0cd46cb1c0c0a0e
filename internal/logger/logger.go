package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/getsentry/sentry-go"
	slogmulti "github.com/samber/slog-multi"
	slogsentry "github.com/samber/slog-sentry/v2"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates new Logger instance writing text records to stdout at the specified level.
func New(level int) *Logger {
	return newLogger(os.Stdout, level)
}

// NewWithSentry creates a Logger that additionally forwards error records to
// Sentry. An empty dsn yields the same logger as New.
func NewWithSentry(level int, dsn string) (*Logger, error) {
	if dsn == "" {
		return New(level), nil
	}

	if err := sentry.Init(sentry.ClientOptions{Dsn: dsn}); err != nil {
		return nil, fmt.Errorf("failed to initialize sentry: %w", err)
	}

	handler := slogmulti.Fanout(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)}),
		slogsentry.Option{Level: slog.LevelError}.NewSentryHandler(),
	)

	return &Logger{Logger: slog.New(handler)}, nil
}

func newLogger(w io.Writer, level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
