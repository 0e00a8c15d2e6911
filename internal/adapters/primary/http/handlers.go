package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
	"github.com/deckgen/deckgen/internal/domain/services"
)

// maxUploadSize caps uploaded file and image sizes.
const maxUploadSize = 10 << 20

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string    `json:"error"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// writeJSON writes a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("Failed to encode JSON response: %v", err)
	}
}

// handleError maps domain errors onto HTTP statuses. Validation problems
// keep their message; everything else is sanitized to avoid leaking
// internals.
func (s *Server) handleError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	message := "Internal server error"

	var validationErr *entities.ValidationError
	var persistenceErr *entities.PersistenceError

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		message = validationErr.Error()
	case errors.Is(err, entities.ErrNotFound):
		status = http.StatusNotFound
		message = "Resource not found"
	case errors.Is(err, services.ErrInvalidCredentials):
		status = http.StatusUnauthorized
		message = "Invalid email or password"
	case errors.Is(err, services.ErrEmailTaken):
		status = http.StatusConflict
		message = "Email is already registered"
	case errors.As(err, &persistenceErr):
		status = http.StatusInternalServerError
		message = "Storage error"
	}

	// Log the actual error for debugging (server-side only)
	s.logger.Error("HTTP error (status %d): %v", status, err)

	s.writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Time:    time.Now(),
	})
}

// decodeJSON decodes a request body into dst with a size cap.
func decodeJSON(r *http.Request, dst interface{}) error {
	body := io.LimitReader(r.Body, 1<<20)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return entities.NewValidationError("body", "invalid JSON request body")
	}
	return nil
}

// --- Auth handlers ---

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	user, err := s.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.auth.Logout(r.Context()); err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

func (s *Server) handleCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.CurrentUser(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}

// --- Presentation handlers ---

func (s *Server) handleListPresentations(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.CurrentUser(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	metas, err := s.repo.ListByUser(r.Context(), user.ID)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, metas)
}

func (s *Server) handleGetPresentation(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	p, err := s.repo.Get(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePresentation(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	if err := s.repo.Delete(r.Context(), id); err != nil {
		s.handleError(w, err)
		return
	}
	s.dropSession(id)

	s.writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

type generateJSONRequest struct {
	Source     string `json:"source"`
	Title      string `json:"title"`
	Text       string `json:"text"`
	SlideCount int    `json:"slideCount"`
	ImageMode  string `json:"imageMode"`
	Theme      string `json:"theme"`
}

// handleGenerate runs the generation pipeline. The request is JSON for
// direct and pasted-text sources, or multipart form data when a file is
// the source.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	user, err := s.auth.CurrentUser(r.Context())
	if err != nil {
		s.handleError(w, err)
		return
	}

	var genReq ports.GenerateRequest

	contentType := r.Header.Get("Content-Type")
	if isMultipart(contentType) {
		genReq, err = s.parseMultipartGenerate(r)
		if err != nil {
			s.handleError(w, err)
			return
		}
	} else {
		var req generateJSONRequest
		if err := decodeJSON(r, &req); err != nil {
			s.handleError(w, err)
			return
		}
		genReq = ports.GenerateRequest{
			Source:     ports.SourceKind(req.Source),
			Title:      req.Title,
			Text:       req.Text,
			SlideCount: req.SlideCount,
			ImageMode:  imageModeOrDefault(req.ImageMode),
			Theme:      req.Theme,
		}
	}
	genReq.UserID = user.ID
	if genReq.Theme == "" {
		genReq.Theme = s.defaultTheme
	}

	p, err := s.generation.Generate(r.Context(), genReq)
	if err != nil {
		// A save failure still carries the assembled presentation; report
		// the error status but do not pretend nothing was generated.
		if p == nil {
			s.handleError(w, err)
			return
		}
		s.logger.Error("generated presentation %s was not persisted: %v", p.ID, err)
	}

	s.writeJSON(w, http.StatusCreated, p)
}

// parseMultipartGenerate reads a file-backed generation request.
func (s *Server) parseMultipartGenerate(r *http.Request) (ports.GenerateRequest, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return ports.GenerateRequest{}, entities.NewValidationError("body", "invalid multipart form")
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return ports.GenerateRequest{}, entities.NewValidationError("file", "a file upload is required")
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		return ports.GenerateRequest{}, entities.NewValidationError("file", "could not read uploaded file")
	}

	slideCount := 5
	if v := r.FormValue("slideCount"); v != "" {
		if n, err := parsePositiveInt(v); err == nil {
			slideCount = n
		}
	}

	return ports.GenerateRequest{
		Source:     ports.SourceUploadedFile,
		Title:      r.FormValue("title"),
		File:       &ports.UploadedFile{Name: header.Filename, Data: data},
		SlideCount: slideCount,
		ImageMode:  imageModeOrDefault(r.FormValue("imageMode")),
		Theme:      r.FormValue("theme"),
	}, nil
}

// --- Image handlers ---

type searchImagesResponse struct {
	Query  string   `json:"query"`
	Images []string `json:"images"`
}

func (s *Server) handleSearchImages(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.handleError(w, entities.NewValidationError("q", "a search query is required"))
		return
	}

	urls, err := s.images.SearchImages(r.Context(), query)
	if err != nil {
		s.handleError(w, err)
		return
	}
	if urls == nil {
		urls = []string{}
	}

	s.writeJSON(w, http.StatusOK, searchImagesResponse{Query: query, Images: urls})
}

// handleUploadImage wraps an uploaded image as a background value the
// client can apply to a slide.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.handleError(w, entities.NewValidationError("body", "invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.handleError(w, entities.NewValidationError("image", "an image upload is required"))
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		s.handleError(w, entities.NewValidationError("image", "could not read uploaded image"))
		return
	}

	bg := s.images.UploadBackground(data, header.Header.Get("Content-Type"))
	s.writeJSON(w, http.StatusOK, bg)
}
