package http

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

func seedPresentation(t *testing.T, env *testEnv, id string, slideCount int) *entities.Presentation {
	t.Helper()

	slides := make([]entities.Slide, slideCount)
	for i := range slides {
		slides[i] = entities.NewSlide(
			string(rune('a'+i)),
			"Slide "+string(rune('A'+i)),
			[]string{"point"},
		)
	}
	p := &entities.Presentation{
		ID:     id,
		UserID: "u1",
		Title:  "Editable",
		Theme:  "default",
		Slides: slides,
	}
	require.NoError(t, env.repo.Save(context.Background(), p))
	return p
}

func decodeEditorResponse(t *testing.T, body []byte) editorResponse {
	t.Helper()
	var resp editorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	require.NotNil(t, resp.Presentation)
	return resp
}

func TestEditorAddDeleteSlide(t *testing.T) {
	t.Run("add appends and moves cursor", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 2)

		rec := env.doJSON(http.MethodPost, "/api/presentations/p1/slides", nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.True(t, resp.Applied)
		assert.Len(t, resp.Presentation.Slides, 3)
		assert.Equal(t, 2, resp.CurrentIndex)
		assert.NotEmpty(t, resp.Presentation.Slides[2].ID)
	})

	t.Run("add to unknown presentation is 404", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})

		rec := env.doJSON(http.MethodPost, "/api/presentations/missing/slides", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete middle slide", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 3)

		rec := env.doJSON(http.MethodDelete, "/api/presentations/p1/slides/1", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.True(t, resp.Applied)
		require.Len(t, resp.Presentation.Slides, 2)
		assert.Equal(t, "Slide A", resp.Presentation.Slides[0].Title)
		assert.Equal(t, "Slide C", resp.Presentation.Slides[1].Title)
	})

	t.Run("deleting the last remaining slide is refused", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 1)

		rec := env.doJSON(http.MethodDelete, "/api/presentations/p1/slides/0", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.False(t, resp.Applied)
		assert.Len(t, resp.Presentation.Slides, 1)
	})

	t.Run("out of range delete is a no-op", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 2)

		rec := env.doJSON(http.MethodDelete, "/api/presentations/p1/slides/9", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.False(t, resp.Applied)
		assert.Len(t, resp.Presentation.Slides, 2)
	})

	t.Run("non-numeric index is 400", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 2)

		rec := env.doJSON(http.MethodDelete, "/api/presentations/p1/slides/abc", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestEditorUpdateSlide(t *testing.T) {
	t.Run("partial update keeps other fields", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 2)

		rec := env.doJSON(http.MethodPatch, "/api/presentations/p1/slides/0", map[string]interface{}{
			"title": "Renamed",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.True(t, resp.Applied)
		assert.Equal(t, "Renamed", resp.Presentation.Slides[0].Title)
		assert.Equal(t, []string{"point"}, resp.Presentation.Slides[0].Content)
	})

	t.Run("update persists across sessions", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 2)

		rec := env.doJSON(http.MethodPatch, "/api/presentations/p1/slides/1", map[string]interface{}{
			"content": []string{"new bullet"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		stored, err := env.repo.Get(context.Background(), "p1")
		require.NoError(t, err)
		assert.Equal(t, []string{"new bullet"}, stored.Slides[1].Content)
	})

	t.Run("out of range update is a no-op", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 2)

		rec := env.doJSON(http.MethodPatch, "/api/presentations/p1/slides/5", map[string]interface{}{
			"title": "Nope",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.False(t, resp.Applied)
	})
}

func TestEditorReorder(t *testing.T) {
	t.Run("moves slide and keeps ids", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 3)

		rec := env.doJSON(http.MethodPost, "/api/presentations/p1/slides/reorder", map[string]int{
			"from": 0, "to": 2,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.True(t, resp.Applied)
		titles := []string{
			resp.Presentation.Slides[0].Title,
			resp.Presentation.Slides[1].Title,
			resp.Presentation.Slides[2].Title,
		}
		assert.Equal(t, []string{"Slide B", "Slide C", "Slide A"}, titles)
	})

	t.Run("out of range reorder is a no-op", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 3)

		rec := env.doJSON(http.MethodPost, "/api/presentations/p1/slides/reorder", map[string]int{
			"from": 0, "to": 7,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.False(t, resp.Applied)
	})
}

func TestEditorNavigate(t *testing.T) {
	env := newTestEnv(t, &stubSlideGenerator{})
	seedPresentation(t, env, "p1", 3)

	t.Run("advances within bounds", func(t *testing.T) {
		rec := env.doJSON(http.MethodPost, "/api/presentations/p1/navigate", map[string]int{"delta": 2})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.Equal(t, 2, resp.CurrentIndex)
	})

	t.Run("clamps at the last slide", func(t *testing.T) {
		rec := env.doJSON(http.MethodPost, "/api/presentations/p1/navigate", map[string]int{"delta": 10})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.Equal(t, 2, resp.CurrentIndex)
	})

	t.Run("clamps at the first slide", func(t *testing.T) {
		rec := env.doJSON(http.MethodPost, "/api/presentations/p1/navigate", map[string]int{"delta": -10})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.Equal(t, 0, resp.CurrentIndex)
	})
}

func TestEditorBackground(t *testing.T) {
	t.Run("gallery url becomes image background", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 1)

		rec := env.doJSON(http.MethodPut, "/api/presentations/p1/background", map[string]string{
			"galleryUrl": "https://img.example.com/pick.jpg",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.True(t, resp.Applied)
		bg := resp.Presentation.Slides[0].Background
		require.Equal(t, entities.BackgroundImage, bg.Type)
		require.NotNil(t, bg.Image)
		assert.Equal(t, "https://img.example.com/pick.jpg", bg.Image.Value)
	})

	t.Run("explicit gradient background", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 1)

		rec := env.doJSON(http.MethodPut, "/api/presentations/p1/background", map[string]interface{}{
			"background": map[string]interface{}{
				"type": "gradient", "color1": "#112233", "color2": "#445566", "angle": 45,
			},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		bg := resp.Presentation.Slides[0].Background
		require.Equal(t, entities.BackgroundGradient, bg.Type)
		require.NotNil(t, bg.Gradient)
		assert.Equal(t, "#112233", bg.Gradient.Color1)
		assert.Equal(t, 45, bg.Gradient.Angle)
		assert.Nil(t, bg.Color)
		assert.Nil(t, bg.Image)
	})

	t.Run("empty body is 400", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 1)

		rec := env.doJSON(http.MethodPut, "/api/presentations/p1/background", map[string]string{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("switching type resets variant fields", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 1)

		rec := env.doJSON(http.MethodPut, "/api/presentations/p1/background/type", map[string]string{
			"type": "gradient",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.True(t, resp.Applied)
		bg := resp.Presentation.Slides[0].Background
		require.Equal(t, entities.BackgroundGradient, bg.Type)
		require.NotNil(t, bg.Gradient)
		assert.Equal(t, entities.DefaultGradientColor1, bg.Gradient.Color1)
		assert.Nil(t, bg.Color)
	})

	t.Run("switching to the same type resets to the default fill", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 1)

		rec := env.doJSON(http.MethodPut, "/api/presentations/p1/background", map[string]interface{}{
			"background": map[string]interface{}{"type": "color", "value": "#000000"},
		})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = env.doJSON(http.MethodPut, "/api/presentations/p1/background/type", map[string]string{
			"type": "color",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeEditorResponse(t, rec.Body.Bytes())
		assert.True(t, resp.Applied)
		bg := resp.Presentation.Slides[0].Background
		require.NotNil(t, bg.Color)
		assert.Equal(t, entities.DefaultBackgroundColor, bg.Color.Value)
	})

	t.Run("unknown type is 400", func(t *testing.T) {
		env := newTestEnv(t, &stubSlideGenerator{})
		seedPresentation(t, env, "p1", 1)

		rec := env.doJSON(http.MethodPut, "/api/presentations/p1/background/type", map[string]string{
			"type": "sparkles",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
