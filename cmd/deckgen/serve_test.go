package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

func TestValidateServeConfig(t *testing.T) {
	base := func() *entities.Config {
		return &entities.Config{
			Server: entities.ServerConfig{Host: "localhost", Port: 8421},
		}
	}

	t.Run("valid config passes", func(t *testing.T) {
		assert.NoError(t, validateServeConfig(base()))
	})

	t.Run("zero port rejected", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 0
		assert.Error(t, validateServeConfig(cfg))
	})

	t.Run("port out of range rejected", func(t *testing.T) {
		cfg := base()
		cfg.Server.Port = 70000
		assert.Error(t, validateServeConfig(cfg))
	})

	t.Run("host with spaces rejected", func(t *testing.T) {
		cfg := base()
		cfg.Server.Host = "bad host"
		assert.Error(t, validateServeConfig(cfg))
	})
}

func TestServeCommandFlags(t *testing.T) {
	assert.NotNil(t, serveCmd.Flags().Lookup("port"))
	assert.NotNil(t, serveCmd.Flags().Lookup("host"))
	assert.NotNil(t, serveCmd.Flags().Lookup("theme"))
	assert.NotNil(t, serveCmd.Flags().Lookup("store"))
}
