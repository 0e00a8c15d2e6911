package http

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

func TestServerLifecycle(t *testing.T) {
	env := newTestEnv(t, &stubSlideGenerator{})
	srv := env.server

	assert.False(t, srv.IsRunning())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, srv.Start(ctx, 0, "127.0.0.1"))
	assert.True(t, srv.IsRunning())

	t.Run("double start fails", func(t *testing.T) {
		assert.Error(t, srv.Start(ctx, 0, "127.0.0.1"))
	})

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	require.NoError(t, srv.Stop(stopCtx))
	assert.False(t, srv.IsRunning())

	t.Run("stop when not running fails", func(t *testing.T) {
		assert.Error(t, srv.Stop(stopCtx))
	})
}

func TestNewServerRequiresConfig(t *testing.T) {
	assert.Panics(t, func() {
		NewServer(ServerDeps{}, nil)
	})
}

func TestNewServerWithLogging(t *testing.T) {
	srv := NewServerWithLogging(ServerDeps{}, &entities.ServerConfig{
		Host: "localhost",
		Port: 8421,
	}, &entities.LoggingConfig{Level: "debug", Verbose: true})

	require.NotNil(t, srv)
	assert.False(t, srv.IsRunning())
}
