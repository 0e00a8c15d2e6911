package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
	"github.com/deckgen/deckgen/internal/domain/services"
)

// editorResponse is the state returned after every editor mutation.
type editorResponse struct {
	Presentation *entities.Presentation `json:"presentation"`
	CurrentIndex int                    `json:"currentIndex"`
	Applied      bool                   `json:"applied"`
}

func (s *Server) editorState(sess *services.EditorSession, applied bool) editorResponse {
	return editorResponse{
		Presentation: sess.Snapshot(),
		CurrentIndex: sess.CurrentIndex(),
		Applied:      applied,
	}
}

func (s *Server) handleAddSlide(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	sess, err := s.session(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	slide := sess.AddSlide()
	if err := s.persistSession(r.Context(), id, sess, ports.EventSlideAdded, slide); err != nil {
		s.handleError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, s.editorState(sess, true))
}

func (s *Server) handleDeleteSlide(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	index, err := parseIndex(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	sess, err := s.session(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	applied := sess.DeleteSlide(index)
	if applied {
		if err := s.persistSession(r.Context(), id, sess, ports.EventSlideDeleted, map[string]int{"index": index}); err != nil {
			s.handleError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, s.editorState(sess, applied))
}

type updateSlideRequest struct {
	Title        *string                `json:"title"`
	Content      *[]string              `json:"content"`
	Background   *entities.Background   `json:"background"`
	TitleStyle   *entities.TextStyle    `json:"titleStyle"`
	ContentStyle *entities.TextStyle    `json:"contentStyle"`
}

func (s *Server) handleUpdateSlide(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	index, err := parseIndex(r)
	if err != nil {
		s.handleError(w, err)
		return
	}

	var req updateSlideRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	sess, err := s.session(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	applied := sess.UpdateSlide(index, services.SlideUpdate{
		Title:        req.Title,
		Content:      req.Content,
		Background:   req.Background,
		TitleStyle:   req.TitleStyle,
		ContentStyle: req.ContentStyle,
	})
	if applied {
		if err := s.persistSession(r.Context(), id, sess, ports.EventSlideUpdated, map[string]int{"index": index}); err != nil {
			s.handleError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, s.editorState(sess, applied))
}

type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (s *Server) handleReorderSlides(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	sess, err := s.session(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	applied := sess.Reorder(req.From, req.To)
	if applied {
		if err := s.persistSession(r.Context(), id, sess, ports.EventSlidesReordered, req); err != nil {
			s.handleError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, s.editorState(sess, applied))
}

type navigateRequest struct {
	Delta int `json:"delta"`
}

func (s *Server) handleNavigate(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	var req navigateRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	sess, err := s.session(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	index := sess.Navigate(req.Delta)

	// Navigation is cursor-only state; nothing to persist, but other
	// session participants still want to follow along.
	s.connMgr.Broadcast(id, ports.EditEvent{
		Type:           ports.EventNavigated,
		PresentationID: id,
		Timestamp:      nowUTC(),
		Data:           map[string]int{"index": index},
	})

	s.writeJSON(w, http.StatusOK, s.editorState(sess, true))
}

// handleChangeBackground replaces the current slide's background. The
// body may carry either a full background value or a gallery URL.
type changeBackgroundRequest struct {
	Background *entities.Background `json:"background"`
	GalleryURL string               `json:"galleryUrl"`
}

func (s *Server) handleChangeBackground(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	var req changeBackgroundRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	var bg entities.Background
	switch {
	case req.GalleryURL != "":
		bg = s.images.SelectFromGallery(req.GalleryURL)
	case req.Background != nil:
		if err := req.Background.Validate(); err != nil {
			s.handleError(w, entities.NewValidationError("background", err.Error()))
			return
		}
		bg = *req.Background
	default:
		s.handleError(w, entities.NewValidationError("background", "a background or gallery URL is required"))
		return
	}

	sess, err := s.session(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	applied := sess.ChangeBackground(bg)
	if applied {
		if err := s.persistSession(r.Context(), id, sess, ports.EventBackgroundChanged, bg); err != nil {
			s.handleError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, s.editorState(sess, applied))
}

type switchBackgroundTypeRequest struct {
	Type string `json:"type"`
}

func (s *Server) handleSwitchBackgroundType(w http.ResponseWriter, r *http.Request) {
	id := pathVar(r, "id")

	var req switchBackgroundTypeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.handleError(w, err)
		return
	}

	t := entities.BackgroundType(req.Type)
	switch t {
	case entities.BackgroundColor, entities.BackgroundGradient, entities.BackgroundImage:
	default:
		s.handleError(w, entities.NewValidationError("type", "unknown background type"))
		return
	}

	sess, err := s.session(r.Context(), id)
	if err != nil {
		s.handleError(w, err)
		return
	}

	applied := sess.SwitchBackgroundType(t)
	if applied {
		if err := s.persistSession(r.Context(), id, sess, ports.EventBackgroundChanged, sess.CurrentSlide().Background); err != nil {
			s.handleError(w, err)
			return
		}
	}

	s.writeJSON(w, http.StatusOK, s.editorState(sess, applied))
}

// --- small request helpers ---

func nowUTC() time.Time {
	return time.Now().UTC()
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func parseIndex(r *http.Request) (int, error) {
	raw := pathVar(r, "index")
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, entities.NewValidationError("index", "slide index must be an integer")
	}
	return index, nil
}

func parsePositiveInt(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, entities.NewValidationError("slideCount", "must be a positive integer")
	}
	return n, nil
}

func isMultipart(contentType string) bool {
	return strings.HasPrefix(contentType, "multipart/form-data")
}

func imageModeOrDefault(mode string) ports.ImageMode {
	switch ports.ImageMode(mode) {
	case ports.ImageModeAI, ports.ImageModeSearch, ports.ImageModeNone:
		return ports.ImageMode(mode)
	default:
		return ports.ImageModeNone
	}
}
