package builders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

func TestPresentationBuilder(t *testing.T) {
	t.Run("defaults produce a valid presentation", func(t *testing.T) {
		p := NewPresentationBuilder().WithSlideCount(1).Build()

		require.NoError(t, p.Validate())
		assert.Equal(t, "Test Presentation", p.Title)
		assert.Equal(t, entities.DefaultTheme, p.Theme)
	})

	t.Run("overrides apply", func(t *testing.T) {
		created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		p := NewPresentationBuilder().
			WithID("p-42").
			WithUserID("u-7").
			WithTitle("Quarterly Review").
			WithTheme("midnight").
			WithCreatedAt(created).
			Build()

		assert.Equal(t, "p-42", p.ID)
		assert.Equal(t, "u-7", p.UserID)
		assert.Equal(t, "Quarterly Review", p.Title)
		assert.Equal(t, "midnight", p.Theme)
		assert.Equal(t, created, p.CreatedAt)
	})

	t.Run("slide count adds distinct slides", func(t *testing.T) {
		p := NewPresentationBuilder().WithSlideCount(3).Build()

		require.Len(t, p.Slides, 3)
		assert.Equal(t, "slide-1", p.Slides[0].ID)
		assert.Equal(t, "Slide 3", p.Slides[2].Title)
		assert.NotEqual(t, p.Slides[0].ID, p.Slides[1].ID)
	})
}

func TestSlideBuilder(t *testing.T) {
	t.Run("defaults carry default styles and background", func(t *testing.T) {
		s := NewSlideBuilder().Build()

		assert.Equal(t, entities.DefaultBackground(), s.Background)
		assert.Equal(t, entities.DefaultTitleStyle(), s.TitleStyle)
		assert.Equal(t, entities.DefaultContentStyle(), s.ContentStyle)
	})

	t.Run("background override", func(t *testing.T) {
		bg := entities.NewGradientBackground("#000000", "#ffffff", 180)
		s := NewSlideBuilder().WithBackground(bg).WithContent("a", "b").Build()

		assert.Equal(t, bg, s.Background)
		assert.Equal(t, []string{"a", "b"}, s.Content)
	})
}

func TestUserBuilder(t *testing.T) {
	u := NewUserBuilder().WithEmail("ada@example.com").Build()

	require.NoError(t, u.Validate())
	assert.Equal(t, "ada@example.com", u.Email)
}
