package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
)

// SlogLogger adapts a slog.Logger to the printf-style Logger the domain
// services use.
type SlogLogger struct {
	logger    *slog.Logger
	component string
}

// New creates a logger writing to w at the given level.
func New(w io.Writer, level entities.LogLevel) *SlogLogger {
	if w == nil {
		w = os.Stderr
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return &SlogLogger{logger: slog.New(handler)}
}

// NewDefault creates a logger writing to stderr at info level.
func NewDefault() *SlogLogger {
	return New(os.Stderr, entities.LogLevelInfo)
}

var _ ports.Logger = (*SlogLogger)(nil)

// WithComponent returns a logger that tags every record with the
// component name.
func (l *SlogLogger) WithComponent(name string) *SlogLogger {
	return &SlogLogger{
		logger:    l.logger.With(slog.String("component", name)),
		component: name,
	}
}

// Debug logs at debug level.
func (l *SlogLogger) Debug(msg string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(msg, args...))
}

// Info logs at info level.
func (l *SlogLogger) Info(msg string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(msg, args...))
}

// Warn logs at warn level.
func (l *SlogLogger) Warn(msg string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(msg, args...))
}

// Error logs at error level.
func (l *SlogLogger) Error(msg string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(msg, args...))
}

func parseLevel(level entities.LogLevel) slog.Level {
	switch level {
	case entities.LogLevelDebug:
		return slog.LevelDebug
	case entities.LogLevelWarn:
		return slog.LevelWarn
	case entities.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
