package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

// SlideUpdate carries the partial fields of an UpdateSlide call. Nil
// pointers leave the corresponding slide field untouched.
type SlideUpdate struct {
	Title        *string
	Content      *[]string
	Background   *entities.Background
	TitleStyle   *entities.TextStyle
	ContentStyle *entities.TextStyle
}

// EditorSession is the in-memory mutation engine over one presentation
// plus a current-slide cursor. Every operation is total over a valid
// presentation: out-of-range indices are ignored, never an error. The
// session exclusively owns its working copy for the duration of an edit.
type EditorSession struct {
	mu           sync.Mutex
	presentation *entities.Presentation
	current      int
}

// NewEditorSession starts an edit session over p. The caller hands over
// ownership of p until the session ends.
func NewEditorSession(p *entities.Presentation) *EditorSession {
	return &EditorSession{presentation: p}
}

// Presentation returns the working copy.
func (e *EditorSession) Presentation() *entities.Presentation {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.presentation
}

// Snapshot returns a deep copy of the working presentation taken under
// the session lock. Callers that serialize or persist concurrently with
// ongoing edits must use this instead of Presentation: the working copy
// keeps changing under later operations, the snapshot does not.
func (e *EditorSession) Snapshot() *entities.Presentation {
	e.mu.Lock()
	defer e.mu.Unlock()

	copied := *e.presentation
	copied.Slides = make([]entities.Slide, len(e.presentation.Slides))
	for i, slide := range e.presentation.Slides {
		slide.Content = append([]string(nil), slide.Content...)
		if slide.Background.Color != nil {
			fill := *slide.Background.Color
			slide.Background.Color = &fill
		}
		if slide.Background.Gradient != nil {
			fill := *slide.Background.Gradient
			slide.Background.Gradient = &fill
		}
		if slide.Background.Image != nil {
			fill := *slide.Background.Image
			slide.Background.Image = &fill
		}
		copied.Slides[i] = slide
	}
	return &copied
}

// CurrentIndex returns the cursor position.
func (e *EditorSession) CurrentIndex() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// CurrentSlide returns the slide under the cursor, or nil when the
// presentation has no slides.
func (e *EditorSession) CurrentSlide() *entities.Slide {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current < 0 || e.current >= len(e.presentation.Slides) {
		return nil
	}
	return &e.presentation.Slides[e.current]
}

// AddSlide appends a new slide styled like slide 0 (or with global
// defaults when the presentation is empty) and moves the cursor to it.
// Adding to an empty presentation is allowed: the empty state is
// recoverable, only deletion may not create it.
func (e *EditorSession) AddSlide() entities.Slide {
	e.mu.Lock()
	defer e.mu.Unlock()

	slide := entities.NewSlide(uuid.NewString(), "New Slide", []string{"Add your content here"})
	if len(e.presentation.Slides) > 0 {
		first := e.presentation.Slides[0]
		slide.TitleStyle = first.TitleStyle
		slide.ContentStyle = first.ContentStyle
	}

	e.presentation.Slides = append(e.presentation.Slides, slide)
	e.current = len(e.presentation.Slides) - 1
	return slide
}

// DeleteSlide removes the slide at index. It refuses to delete the last
// remaining slide, so deletion can never empty a presentation. Returns
// whether a slide was removed.
func (e *EditorSession) DeleteSlide(index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	slides := e.presentation.Slides
	if len(slides) <= 1 {
		return false
	}
	if index < 0 || index >= len(slides) {
		return false
	}

	e.presentation.Slides = append(slides[:index], slides[index+1:]...)
	if e.current > len(e.presentation.Slides)-1 {
		e.current = len(e.presentation.Slides) - 1
	}
	return true
}

// UpdateSlide merges the partial update into the slide at index. Other
// slides and unset fields are unaffected. Returns whether the slide
// existed.
func (e *EditorSession) UpdateSlide(index int, update SlideUpdate) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.presentation.Slides) {
		return false
	}

	slide := &e.presentation.Slides[index]
	if update.Title != nil {
		slide.Title = *update.Title
	}
	if update.Content != nil {
		slide.Content = *update.Content
	}
	if update.Background != nil {
		slide.Background = *update.Background
	}
	if update.TitleStyle != nil {
		slide.TitleStyle = *update.TitleStyle
	}
	if update.ContentStyle != nil {
		slide.ContentStyle = *update.ContentStyle
	}
	return true
}

// Reorder moves the slide at from to position to, shifting the slides in
// between. The cursor deliberately does not follow the moved slide; it
// keeps pointing at its old index. Returns whether anything moved.
func (e *EditorSession) Reorder(from, to int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	slides := e.presentation.Slides
	if from < 0 || from >= len(slides) || to < 0 || to >= len(slides) || from == to {
		return false
	}

	moved := slides[from]
	slides = append(slides[:from], slides[from+1:]...)
	slides = append(slides[:to], append([]entities.Slide{moved}, slides[to:]...)...)
	e.presentation.Slides = slides
	return true
}

// Navigate moves the cursor by delta, clamped to the valid range.
// Walking past either end is a no-op, not an error.
func (e *EditorSession) Navigate(delta int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	next := e.current + delta
	if next < 0 {
		next = 0
	}
	if max := len(e.presentation.Slides) - 1; next > max {
		if max < 0 {
			max = 0
		}
		next = max
	}
	e.current = next
	return e.current
}

// ChangeBackground replaces only the background of the current slide.
// Text styles are untouched. Returns whether a current slide existed.
func (e *EditorSession) ChangeBackground(bg entities.Background) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current < 0 || e.current >= len(e.presentation.Slides) {
		return false
	}
	e.presentation.Slides[e.current].Background = bg
	return true
}

// SwitchBackgroundType replaces the current slide's background with a
// fresh default of the given type. Fields of the previous variant are
// discarded: they are not meaningful across a type change.
func (e *EditorSession) SwitchBackgroundType(t entities.BackgroundType) bool {
	return e.ChangeBackground(entities.DefaultBackgroundFor(t))
}
