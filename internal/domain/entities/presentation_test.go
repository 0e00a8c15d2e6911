package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresentationValidate(t *testing.T) {
	t.Run("valid presentation", func(t *testing.T) {
		p := &Presentation{
			ID:        "p1",
			UserID:    "u1",
			Title:     "Quarterly Review",
			Slides:    []Slide{NewSlide("s1", "Intro", []string{"point"})},
			CreatedAt: time.Now(),
		}
		require.NoError(t, p.Validate())
		assert.Equal(t, DefaultTheme, p.Theme)
	})

	t.Run("missing title", func(t *testing.T) {
		p := &Presentation{ID: "p1"}
		assert.Error(t, p.Validate())
	})

	t.Run("invalid slide reported with index", func(t *testing.T) {
		p := &Presentation{
			ID:     "p1",
			Title:  "Broken",
			Slides: []Slide{NewSlide("s1", "ok", nil), {ID: "", Title: "no id"}},
		}
		err := p.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "slide 2")
	})
}

func TestPresentationMeta(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	p := &Presentation{
		ID:        "p1",
		Title:     "Deck",
		Slides:    []Slide{NewSlide("s1", "a", nil), NewSlide("s2", "b", nil)},
		CreatedAt: created,
	}

	meta := p.Meta()
	assert.Equal(t, "p1", meta.ID)
	assert.Equal(t, "Deck", meta.Title)
	assert.Equal(t, 2, meta.SlideCount)
	assert.Equal(t, created, meta.CreatedAt)
}

func TestGetSlideByIndex(t *testing.T) {
	p := &Presentation{
		ID:     "p1",
		Title:  "Deck",
		Slides: []Slide{NewSlide("s1", "a", nil)},
	}

	slide, err := p.GetSlideByIndex(0)
	require.NoError(t, err)
	assert.Equal(t, "s1", slide.ID)

	_, err = p.GetSlideByIndex(1)
	assert.Error(t, err)

	_, err = p.GetSlideByIndex(-1)
	assert.Error(t, err)
}

func TestNewSlideDefaults(t *testing.T) {
	s := NewSlide("s1", "", nil)
	assert.Equal(t, DefaultSlideTitle, s.Title)
	assert.NotNil(t, s.Content)
	assert.Empty(t, s.Content)
	assert.Equal(t, DefaultBackground(), s.Background)
	assert.Equal(t, DefaultTitleStyle(), s.TitleStyle)
	assert.Equal(t, DefaultContentStyle(), s.ContentStyle)
}
