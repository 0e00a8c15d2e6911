package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

func originServer(environment string, corsOrigins ...string) *Server {
	return NewServer(ServerDeps{}, &entities.ServerConfig{
		Host:        "localhost",
		Port:        8421,
		Environment: environment,
		CORSOrigins: corsOrigins,
	})
}

func requestWithOrigin(origin string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/ws/p1", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestIsValidOrigin(t *testing.T) {
	t.Run("development", func(t *testing.T) {
		s := originServer("development")

		tests := []struct {
			origin string
			valid  bool
		}{
			{"", true}, // same-origin
			{"http://localhost:3000", true},
			{"http://127.0.0.1:8421", true},
			{"http://192.168.1.50:3000", true},
			{"http://10.0.0.5", true},
			{"http://172.16.0.1", true},
			{"http://172.31.255.1", true},
			{"http://172.32.0.1", false}, // outside private class B
			{"https://evil.example.com", false},
		}

		for _, tt := range tests {
			assert.Equal(t, tt.valid, s.isValidOrigin(requestWithOrigin(tt.origin)),
				"origin %q", tt.origin)
		}
	})

	t.Run("production whitelist", func(t *testing.T) {
		s := originServer("production", "https://app.deckgen.dev")

		assert.True(t, s.isValidOrigin(requestWithOrigin("https://app.deckgen.dev")))
		assert.False(t, s.isValidOrigin(requestWithOrigin("http://localhost:3000")))
		assert.False(t, s.isValidOrigin(requestWithOrigin("https://other.example.com")))
	})

	t.Run("production wildcard subdomains", func(t *testing.T) {
		s := originServer("production", "*.deckgen.dev")

		assert.True(t, s.isValidOrigin(requestWithOrigin("https://staging.deckgen.dev")))
		assert.False(t, s.isValidOrigin(requestWithOrigin("https://deckgen.evil.com")))
	})
}

func TestIsPrivateClassB(t *testing.T) {
	assert.True(t, isPrivateClassB("172.16.0.1"))
	assert.True(t, isPrivateClassB("172.31.9.9"))
	assert.False(t, isPrivateClassB("172.15.0.1"))
	assert.False(t, isPrivateClassB("172.32.0.1"))
	assert.False(t, isPrivateClassB("192.168.1.1"))
	assert.False(t, isPrivateClassB("172"))
}

func TestWebSocketRejectsUnknownPresentation(t *testing.T) {
	env := newTestEnv(t, &stubSlideGenerator{})

	req := httptest.NewRequest(http.MethodGet, "/ws/does-not-exist", nil)
	rec := env.do(req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
