package http

import (
	"log"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

// levelRank orders log levels for threshold comparison.
var levelRank = map[entities.LogLevel]int{
	entities.LogLevelDebug: 0,
	entities.LogLevelInfo:  1,
	entities.LogLevelWarn:  2,
	entities.LogLevelError: 3,
}

// HTTPLogger is the leveled logger used by the HTTP server and its
// middleware. Verbose mode drops the threshold to debug regardless of
// the configured level.
type HTTPLogger struct {
	component string
	verbose   bool
	level     entities.LogLevel
}

// NewHTTPLogger returns a logger at the default info level.
func NewHTTPLogger(component string, verbose bool) *HTTPLogger {
	return NewHTTPLoggerWithLevel(component, verbose, entities.LogLevelInfo)
}

// NewHTTPLoggerWithLevel returns a logger with an explicit level.
func NewHTTPLoggerWithLevel(component string, verbose bool, level entities.LogLevel) *HTTPLogger {
	return &HTTPLogger{
		component: component,
		verbose:   verbose,
		level:     level,
	}
}

func (l *HTTPLogger) emit(msgLevel entities.LogLevel, tag, msg string, args []interface{}) {
	threshold := levelRank[l.level]
	if l.verbose {
		threshold = levelRank[entities.LogLevelDebug]
	}
	if levelRank[msgLevel] < threshold {
		return
	}
	log.Printf("["+tag+"] [%s] "+msg, append([]interface{}{l.component}, args...)...)
}

func (l *HTTPLogger) Debug(msg string, args ...interface{}) {
	l.emit(entities.LogLevelDebug, "DEBUG", msg, args)
}

func (l *HTTPLogger) Info(msg string, args ...interface{}) {
	l.emit(entities.LogLevelInfo, "INFO", msg, args)
}

func (l *HTTPLogger) Warn(msg string, args ...interface{}) {
	l.emit(entities.LogLevelWarn, "WARN", msg, args)
}

func (l *HTTPLogger) Error(msg string, args ...interface{}) {
	l.emit(entities.LogLevelError, "ERROR", msg, args)
}

// SetLevel updates the logging level.
func (l *HTTPLogger) SetLevel(level entities.LogLevel) {
	l.level = level
}
