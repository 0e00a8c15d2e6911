package builders

import (
	"fmt"
	"time"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

// PresentationBuilder helps build Presentation entities for testing
type PresentationBuilder struct {
	presentation *entities.Presentation
}

// NewPresentationBuilder creates a new presentation builder with sensible defaults
func NewPresentationBuilder() *PresentationBuilder {
	return &PresentationBuilder{
		presentation: &entities.Presentation{
			ID:        "test-presentation",
			UserID:    "test-user",
			Title:     "Test Presentation",
			Theme:     entities.DefaultTheme,
			Slides:    []entities.Slide{},
			CreatedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
	}
}

// WithID sets the presentation id
func (b *PresentationBuilder) WithID(id string) *PresentationBuilder {
	b.presentation.ID = id
	return b
}

// WithUserID sets the owning user
func (b *PresentationBuilder) WithUserID(userID string) *PresentationBuilder {
	b.presentation.UserID = userID
	return b
}

// WithTitle sets the presentation title
func (b *PresentationBuilder) WithTitle(title string) *PresentationBuilder {
	b.presentation.Title = title
	return b
}

// WithTheme sets the presentation theme
func (b *PresentationBuilder) WithTheme(theme string) *PresentationBuilder {
	b.presentation.Theme = theme
	return b
}

// WithCreatedAt sets the creation timestamp
func (b *PresentationBuilder) WithCreatedAt(t time.Time) *PresentationBuilder {
	b.presentation.CreatedAt = t
	return b
}

// WithSlides sets the presentation slides
func (b *PresentationBuilder) WithSlides(slides []entities.Slide) *PresentationBuilder {
	b.presentation.Slides = slides
	return b
}

// WithSlide adds a single slide to the presentation
func (b *PresentationBuilder) WithSlide(slide entities.Slide) *PresentationBuilder {
	b.presentation.Slides = append(b.presentation.Slides, slide)
	return b
}

// WithSlideCount adds the specified number of default slides
func (b *PresentationBuilder) WithSlideCount(count int) *PresentationBuilder {
	for i := 0; i < count; i++ {
		slide := NewSlideBuilder().
			WithID(fmt.Sprintf("slide-%d", i+1)).
			WithTitle(fmt.Sprintf("Slide %d", i+1)).
			Build()
		b.presentation.Slides = append(b.presentation.Slides, slide)
	}
	return b
}

// Build returns the built presentation
func (b *PresentationBuilder) Build() *entities.Presentation {
	return b.presentation
}

// SlideBuilder helps build Slide entities for testing
type SlideBuilder struct {
	slide entities.Slide
}

// NewSlideBuilder creates a new slide builder with sensible defaults
func NewSlideBuilder() *SlideBuilder {
	return &SlideBuilder{
		slide: entities.NewSlide("test-slide", "Test Slide", []string{"First point"}),
	}
}

// WithID sets the slide id
func (b *SlideBuilder) WithID(id string) *SlideBuilder {
	b.slide.ID = id
	return b
}

// WithTitle sets the slide title
func (b *SlideBuilder) WithTitle(title string) *SlideBuilder {
	b.slide.Title = title
	return b
}

// WithContent sets the slide bullet content
func (b *SlideBuilder) WithContent(content ...string) *SlideBuilder {
	b.slide.Content = content
	return b
}

// WithBackground sets the slide background
func (b *SlideBuilder) WithBackground(bg entities.Background) *SlideBuilder {
	b.slide.Background = bg
	return b
}

// WithTitleStyle sets the title text style
func (b *SlideBuilder) WithTitleStyle(style entities.TextStyle) *SlideBuilder {
	b.slide.TitleStyle = style
	return b
}

// WithContentStyle sets the body text style
func (b *SlideBuilder) WithContentStyle(style entities.TextStyle) *SlideBuilder {
	b.slide.ContentStyle = style
	return b
}

// Build returns the built slide
func (b *SlideBuilder) Build() entities.Slide {
	return b.slide
}
