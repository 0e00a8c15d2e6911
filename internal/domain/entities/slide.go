package entities

import "errors"

// DefaultSlideTitle is used whenever a slide has no usable title.
const DefaultSlideTitle = "Untitled Slide"

// Slide represents a single slide in a presentation
type Slide struct {
	// ID is a unique identifier for the slide, stable across reorders
	ID string `json:"id"`

	// Title is the slide headline
	Title string `json:"title"`

	// Content is the ordered list of bullet strings (possibly empty)
	Content []string `json:"content"`

	// Background is the visual fill of the slide
	Background Background `json:"background"`

	// TitleStyle and ContentStyle control text rendering
	TitleStyle   TextStyle `json:"titleStyle"`
	ContentStyle TextStyle `json:"contentStyle"`
}

// NewSlide builds a slide with the named default styles and a white
// background. Empty titles are replaced by the default title.
func NewSlide(id, title string, content []string) Slide {
	if title == "" {
		title = DefaultSlideTitle
	}
	if content == nil {
		content = []string{}
	}
	return Slide{
		ID:           id,
		Title:        title,
		Content:      content,
		Background:   DefaultBackground(),
		TitleStyle:   DefaultTitleStyle(),
		ContentStyle: DefaultContentStyle(),
	}
}

// Validate ensures the slide satisfies its structural invariants
func (s *Slide) Validate() error {
	if s.ID == "" {
		return errors.New("slide id is required")
	}
	if s.Title == "" {
		return errors.New("slide title is required")
	}
	if s.Content == nil {
		return errors.New("slide content must be a list, possibly empty")
	}
	return s.Background.Validate()
}
