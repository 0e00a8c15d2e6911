package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	handler := securityHeadersMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "1; mode=block", rec.Header().Get("X-XSS-Protection"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := NewHTTPLogger("test", false)
	handler := createRecoveryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	}), logger)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		handler.ServeHTTP(rec, req)
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingMiddlewareCapturesStatus(t *testing.T) {
	logger := NewHTTPLogger("test", false)
	handler := createLoggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), logger)

	req := httptest.NewRequest(http.MethodGet, "/teapot", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "short and stout", rec.Body.String())
}

func TestRateLimiter(t *testing.T) {
	rl := &rateLimiter{clients: make(map[string]*clientInfo)}

	t.Run("allows requests under the limit", func(t *testing.T) {
		for i := 0; i < 5; i++ {
			assert.True(t, rl.isAllowed("10.9.0.1", 5, time.Minute))
		}
	})

	t.Run("blocks requests over the limit", func(t *testing.T) {
		assert.False(t, rl.isAllowed("10.9.0.1", 5, time.Minute))
	})

	t.Run("limits are per client", func(t *testing.T) {
		assert.True(t, rl.isAllowed("10.9.0.2", 5, time.Minute))
	})

	t.Run("window expiry frees the client", func(t *testing.T) {
		rl := &rateLimiter{clients: make(map[string]*clientInfo)}
		assert.True(t, rl.isAllowed("10.9.0.3", 1, time.Nanosecond))
		time.Sleep(time.Millisecond)
		assert.True(t, rl.isAllowed("10.9.0.3", 1, time.Nanosecond))
	})
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		expected   string
	}{
		{
			name:       "remote addr fallback",
			remoteAddr: "203.0.113.7:9000",
			expected:   "203.0.113.7",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "203.0.113.7:9000",
			headers:    map[string]string{"X-Forwarded-For": "198.51.100.4"},
			expected:   "198.51.100.4",
		},
		{
			name:       "x-real-ip honored",
			remoteAddr: "203.0.113.7:9000",
			headers:    map[string]string{"X-Real-IP": "198.51.100.9"},
			expected:   "198.51.100.9",
		},
		{
			name:       "invalid forwarded header ignored",
			remoteAddr: "203.0.113.7:9000",
			headers:    map[string]string{"X-Forwarded-For": "not-an-ip"},
			expected:   "203.0.113.7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, getClientIP(req))
		})
	}
}
