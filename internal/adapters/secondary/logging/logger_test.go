package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

func TestSlogLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, entities.LogLevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	out := buf.String()
	assert.NotContains(t, out, "debug message")
	assert.NotContains(t, out, "info message")
	assert.Contains(t, out, "warn message")
	assert.Contains(t, out, "error message")
}

func TestSlogLogger_FormatsArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, entities.LogLevelInfo)

	logger.Info("generated %d slides for %q", 5, "Launch Plan")

	assert.Contains(t, buf.String(), `generated 5 slides for \"Launch Plan\"`)
}

func TestSlogLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, entities.LogLevelInfo).WithComponent("generation")

	logger.Info("pipeline started")

	out := buf.String()
	assert.Contains(t, out, "component=generation")
	assert.Contains(t, out, "pipeline started")
}

func TestSlogLogger_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, entities.LogLevel("bogus"))

	logger.Debug("hidden")
	logger.Info("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
