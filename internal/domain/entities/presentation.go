package entities

import (
	"errors"
	"fmt"
	"time"
)

// Presentation represents a complete slide deck with metadata and slides
type Presentation struct {
	// ID is a unique identifier for the presentation
	ID string `json:"id"`

	// UserID references the owning user. Ownership is a weak reference:
	// nothing cascades when the user goes away.
	UserID string `json:"userId"`

	// Title is the presentation title
	Title string `json:"title"`

	// Slides contains all slides in display/navigation order
	Slides []Slide `json:"slides"`

	// Theme is a name from the fixed palette
	Theme string `json:"theme"`

	// CreatedAt is when the presentation was generated
	CreatedAt time.Time `json:"createdAt"`
}

// PresentationMeta is the listing projection of a presentation. It is
// derived on demand and never stored on its own.
type PresentationMeta struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	SlideCount int       `json:"slideCount"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Meta returns the listing projection of the presentation.
func (p *Presentation) Meta() PresentationMeta {
	return PresentationMeta{
		ID:         p.ID,
		Title:      p.Title,
		SlideCount: len(p.Slides),
		CreatedAt:  p.CreatedAt,
	}
}

// Validate ensures the presentation has valid required fields
func (p *Presentation) Validate() error {
	if p.ID == "" {
		return errors.New("presentation id is required")
	}

	if p.Title == "" {
		return errors.New("presentation title is required")
	}

	// Validate each slide
	for i := range p.Slides {
		if err := p.Slides[i].Validate(); err != nil {
			return fmt.Errorf("slide %d validation failed: %w", i+1, err)
		}
	}

	// Set default theme if not specified
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}

	return nil
}

// GetSlideByIndex returns a slide by its index (0-based)
func (p *Presentation) GetSlideByIndex(index int) (*Slide, error) {
	if index < 0 || index >= len(p.Slides) {
		return nil, fmt.Errorf("slide index %d out of range (0-%d)", index, len(p.Slides)-1)
	}
	return &p.Slides[index], nil
}

// SlideCount returns the total number of slides
func (p *Presentation) SlideCount() int {
	return len(p.Slides)
}
