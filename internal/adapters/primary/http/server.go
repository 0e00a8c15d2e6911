package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
	"github.com/deckgen/deckgen/internal/domain/services"
)

// Server exposes the generation, editing, and auth operations over HTTP
// plus a per-presentation WebSocket for edit events.
type Server struct {
	server       *http.Server
	connMgr      *ConnectionManager
	generation   ports.GenerationService
	images       ports.ImageAcquisition
	auth         ports.AuthService
	repo         ports.PresentationRepository
	config       *entities.ServerConfig
	defaultTheme string
	logger       *HTTPLogger

	mu       sync.RWMutex
	sessions map[string]*services.EditorSession
	running  bool
}

// ServerDeps bundles the services the server dispatches to.
type ServerDeps struct {
	Generation ports.GenerationService
	Images     ports.ImageAcquisition
	Auth       ports.AuthService
	Repository ports.PresentationRepository

	// DefaultTheme is applied to generation requests that name no theme.
	// Empty means the domain default.
	DefaultTheme string
}

// NewServer creates a new HTTP server
// config must not be nil - use config.GetDefaultConfig().Server if needed
func NewServer(deps ServerDeps, config *entities.ServerConfig) *Server {
	if config == nil {
		panic("server config cannot be nil - provide a valid ServerConfig")
	}
	return &Server{
		generation:   deps.Generation,
		images:       deps.Images,
		auth:         deps.Auth,
		repo:         deps.Repository,
		connMgr:      NewConnectionManager(),
		config:       config,
		defaultTheme: deps.DefaultTheme,
		sessions:     make(map[string]*services.EditorSession),
		logger:       NewHTTPLogger("server", false),
	}
}

// NewServerWithLogging creates a new HTTP server with logging configuration
func NewServerWithLogging(deps ServerDeps, config *entities.ServerConfig, loggingConfig *entities.LoggingConfig) *Server {
	s := NewServer(deps, config)

	level := entities.LogLevelInfo
	verbose := false
	if loggingConfig != nil {
		level = loggingConfig.GetLevel()
		verbose = loggingConfig.Verbose
	}
	s.logger = NewHTTPLoggerWithLevel("server", verbose, level)
	return s
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context, port int, host string) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server already running")
	}

	// Start connection manager
	go s.connMgr.Run(ctx)

	router := s.setupRoutes()

	// Add CORS middleware with configurable origins from config
	c := cors.New(cors.Options{
		AllowedOrigins:   s.config.GetCORSOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           300, // 5 minutes
	})
	handler := c.Handler(router)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", host, port),
		Handler:      handler,
		ReadTimeout:  s.config.GetReadTimeout(),
		WriteTimeout: s.config.GetWriteTimeout(),
		IdleTimeout:  60 * time.Second,
	}
	s.running = true
	s.mu.Unlock()

	go func() {
		s.logger.Info("HTTP server starting on %s:%d", host, port)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return errors.New("server not running")
	}

	// Close all WebSocket connections
	s.connMgr.CloseAll()

	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.GetShutdownTimeout())
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.running = false
	return nil
}

// IsRunning returns whether the server is currently running
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() http.Handler {
	r := mux.NewRouter()

	// WebSocket endpoint, one room per presentation
	r.HandleFunc("/ws/{id}", s.handleWebSocket)

	api := r.PathPrefix("/api").Subrouter()

	// Auth endpoints
	api.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.handleCurrentUser).Methods(http.MethodGet)

	// Presentation endpoints
	api.HandleFunc("/presentations", s.handleListPresentations).Methods(http.MethodGet)
	api.HandleFunc("/presentations/generate", s.handleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/presentations/{id}", s.handleGetPresentation).Methods(http.MethodGet)
	api.HandleFunc("/presentations/{id}", s.handleDeletePresentation).Methods(http.MethodDelete)

	// Editor endpoints
	api.HandleFunc("/presentations/{id}/slides", s.handleAddSlide).Methods(http.MethodPost)
	api.HandleFunc("/presentations/{id}/slides/reorder", s.handleReorderSlides).Methods(http.MethodPost)
	api.HandleFunc("/presentations/{id}/slides/{index}", s.handleUpdateSlide).Methods(http.MethodPatch)
	api.HandleFunc("/presentations/{id}/slides/{index}", s.handleDeleteSlide).Methods(http.MethodDelete)
	api.HandleFunc("/presentations/{id}/navigate", s.handleNavigate).Methods(http.MethodPost)
	api.HandleFunc("/presentations/{id}/background", s.handleChangeBackground).Methods(http.MethodPut)
	api.HandleFunc("/presentations/{id}/background/type", s.handleSwitchBackgroundType).Methods(http.MethodPut)

	// Image endpoints
	api.HandleFunc("/images/search", s.handleSearchImages).Methods(http.MethodGet)
	api.HandleFunc("/images/upload", s.handleUploadImage).Methods(http.MethodPost)

	// Apply middleware in order: security -> rate limiting -> logging -> recovery
	var handler http.Handler = r
	handler = securityHeadersMiddleware(handler)
	handler = rateLimitMiddleware(handler)
	handler = createLoggingMiddleware(handler, s.logger)
	handler = createRecoveryMiddleware(handler, s.logger)

	return handler
}

// session returns the edit session for a presentation, loading the
// presentation from the repository on first access.
func (s *Server) session(ctx context.Context, id string) (*services.EditorSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess := services.NewEditorSession(p)
	s.sessions[id] = sess
	return sess, nil
}

// dropSession forgets the edit session for a presentation.
func (s *Server) dropSession(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// persistSession saves a snapshot of the session's working copy and
// broadcasts the edit event to the presentation's subscribers. The
// snapshot keeps the save and the broadcast encoding independent of
// edits that land on the session afterwards.
func (s *Server) persistSession(ctx context.Context, id string, sess *services.EditorSession, eventType string, data interface{}) error {
	if err := s.repo.Save(ctx, sess.Snapshot()); err != nil {
		return err
	}

	s.connMgr.Broadcast(id, ports.EditEvent{
		Type:           eventType,
		PresentationID: id,
		Timestamp:      time.Now().UTC(),
		Data:           data,
	})
	return nil
}
