package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackgroundConstructors(t *testing.T) {
	t.Run("color defaults to white", func(t *testing.T) {
		bg := NewColorBackground("")
		assert.Equal(t, BackgroundColor, bg.Type)
		require.NotNil(t, bg.Color)
		assert.Equal(t, DefaultBackgroundColor, bg.Color.Value)
		assert.Nil(t, bg.Gradient)
		assert.Nil(t, bg.Image)
	})

	t.Run("gradient fills missing stops", func(t *testing.T) {
		bg := NewGradientBackground("", "", 45)
		require.NotNil(t, bg.Gradient)
		assert.Equal(t, DefaultGradientColor1, bg.Gradient.Color1)
		assert.Equal(t, DefaultGradientColor2, bg.Gradient.Color2)
		assert.Equal(t, 45, bg.Gradient.Angle)
	})

	t.Run("image carries default opacity and blur", func(t *testing.T) {
		bg := NewImageBackground("https://example.com/a.jpg")
		require.NotNil(t, bg.Image)
		assert.Equal(t, 1.0, bg.Image.Opacity)
		assert.Equal(t, 0, bg.Image.Blur)
	})
}

func TestBackgroundValidate(t *testing.T) {
	tests := []struct {
		name    string
		bg      Background
		wantErr bool
	}{
		{"valid color", NewColorBackground("#112233"), false},
		{"valid gradient", NewGradientBackground("#000000", "#ffffff", 90), false},
		{"valid image", NewImageBackground("https://example.com/a.jpg"), false},
		{"unknown type", Background{Type: "sparkles"}, true},
		{"tag without fill", Background{Type: BackgroundColor}, true},
		{"two fills at once", Background{Type: BackgroundColor, Color: &ColorFill{Value: "#fff"}, Image: &ImageFill{}}, true},
		{"gradient angle out of range", NewGradientBackground("#000", "#fff", 400), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBackgroundTypeSwitchDropsStaleFields(t *testing.T) {
	// A gradient switched to image must expose only image fields.
	bg := NewGradientBackground("#111111", "#222222", 180)
	bg = DefaultBackgroundFor(BackgroundImage)

	assert.Equal(t, BackgroundImage, bg.Type)
	assert.Nil(t, bg.Gradient)
	assert.Nil(t, bg.Color)
	require.NotNil(t, bg.Image)
	assert.Equal(t, 1.0, bg.Image.Opacity)
	assert.Equal(t, 0, bg.Image.Blur)

	data, err := json.Marshal(bg)
	require.NoError(t, err)
	var flat map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &flat))
	assert.NotContains(t, flat, "color1")
	assert.NotContains(t, flat, "color2")
	assert.NotContains(t, flat, "angle")
}

func TestBackgroundUnmarshal(t *testing.T) {
	t.Run("round trip preserves gradient", func(t *testing.T) {
		in := NewGradientBackground("#101010", "#202020", 270)
		data, err := json.Marshal(in)
		require.NoError(t, err)

		var out Background
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	})

	t.Run("unknown tag becomes white color", func(t *testing.T) {
		var bg Background
		require.NoError(t, json.Unmarshal([]byte(`{"type":"video","value":"x"}`), &bg))
		assert.Equal(t, DefaultBackground(), bg)
	})

	t.Run("image without numeric fields gets defaults", func(t *testing.T) {
		var bg Background
		require.NoError(t, json.Unmarshal([]byte(`{"type":"image","value":"https://example.com/a.jpg"}`), &bg))
		require.NotNil(t, bg.Image)
		assert.Equal(t, 1.0, bg.Image.Opacity)
		assert.Equal(t, 0, bg.Image.Blur)
	})

	t.Run("garbage becomes white color", func(t *testing.T) {
		var bg Background
		require.NoError(t, json.Unmarshal([]byte(`"not an object"`), &bg))
		assert.Equal(t, DefaultBackground(), bg)
	})
}
