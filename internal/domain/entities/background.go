package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

// BackgroundType discriminates the background variants.
type BackgroundType string

const (
	BackgroundColor    BackgroundType = "color"
	BackgroundGradient BackgroundType = "gradient"
	BackgroundImage    BackgroundType = "image"
)

// Default color values used when a background (or one of its fields) is
// missing from a stored document.
const (
	DefaultBackgroundColor = "#ffffff"
	DefaultGradientColor1  = "#ffffff"
	DefaultGradientColor2  = "#bbbbbb"
	DefaultGradientAngle   = 90
	DefaultImageOpacity    = 1.0
	DefaultImageBlur       = 0
)

// ColorFill is a solid color background.
type ColorFill struct {
	Value string `json:"value"`
}

// GradientFill is a two-color linear gradient background.
type GradientFill struct {
	Color1 string `json:"color1"`
	Color2 string `json:"color2"`
	// Angle is the gradient direction in degrees, 0-360.
	Angle int `json:"angle"`
}

// ImageFill is an image background. Value is a URL or data URI.
type ImageFill struct {
	Value string `json:"value"`
	// Opacity is in the range 0.0-1.0.
	Opacity float64 `json:"opacity"`
	// Blur is in pixels, >= 0.
	Blur int `json:"blur"`
}

// Background is a tagged union over the three fill variants. Exactly one
// of the variant pointers is non-nil, selected by Type. Fields of
// non-active variants are never populated: switching the type replaces
// the whole value.
type Background struct {
	Type     BackgroundType
	Color    *ColorFill
	Gradient *GradientFill
	Image    *ImageFill
}

// NewColorBackground returns a solid color background.
func NewColorBackground(value string) Background {
	if value == "" {
		value = DefaultBackgroundColor
	}
	return Background{Type: BackgroundColor, Color: &ColorFill{Value: value}}
}

// NewGradientBackground returns a gradient background with the given stops.
func NewGradientBackground(color1, color2 string, angle int) Background {
	if color1 == "" {
		color1 = DefaultGradientColor1
	}
	if color2 == "" {
		color2 = DefaultGradientColor2
	}
	return Background{
		Type:     BackgroundGradient,
		Gradient: &GradientFill{Color1: color1, Color2: color2, Angle: angle},
	}
}

// NewImageBackground returns an image background with default opacity and blur.
func NewImageBackground(value string) Background {
	return Background{
		Type:  BackgroundImage,
		Image: &ImageFill{Value: value, Opacity: DefaultImageOpacity, Blur: DefaultImageBlur},
	}
}

// DefaultBackground is the background used whenever a stored value is
// missing or unusable: solid white.
func DefaultBackground() Background {
	return NewColorBackground(DefaultBackgroundColor)
}

// DefaultBackgroundFor returns a fresh default value for the given
// variant. Used when the editor switches a slide's background type, so
// that no field of the previous variant survives the switch.
func DefaultBackgroundFor(t BackgroundType) Background {
	switch t {
	case BackgroundGradient:
		return NewGradientBackground(DefaultGradientColor1, DefaultGradientColor2, DefaultGradientAngle)
	case BackgroundImage:
		return NewImageBackground("")
	case BackgroundColor:
		return NewColorBackground(DefaultBackgroundColor)
	default:
		return DefaultBackground()
	}
}

// Validate ensures the tag and the active variant agree.
func (b *Background) Validate() error {
	switch b.Type {
	case BackgroundColor:
		if b.Color == nil || b.Gradient != nil || b.Image != nil {
			return errors.New("color background must carry exactly the color fill")
		}
	case BackgroundGradient:
		if b.Gradient == nil || b.Color != nil || b.Image != nil {
			return errors.New("gradient background must carry exactly the gradient fill")
		}
		if b.Gradient.Angle < 0 || b.Gradient.Angle > 360 {
			return fmt.Errorf("gradient angle %d out of range 0-360", b.Gradient.Angle)
		}
	case BackgroundImage:
		if b.Image == nil || b.Color != nil || b.Gradient != nil {
			return errors.New("image background must carry exactly the image fill")
		}
		if b.Image.Opacity < 0 || b.Image.Opacity > 1 {
			return fmt.Errorf("image opacity %v out of range 0-1", b.Image.Opacity)
		}
		if b.Image.Blur < 0 {
			return fmt.Errorf("image blur %d must be non-negative", b.Image.Blur)
		}
	default:
		return fmt.Errorf("unknown background type %q", b.Type)
	}
	return nil
}

// backgroundWire is the flat persisted form of a background. Only the
// fields of the active variant are written.
type backgroundWire struct {
	Type    BackgroundType `json:"type"`
	Value   string         `json:"value,omitempty"`
	Color1  string         `json:"color1,omitempty"`
	Color2  string         `json:"color2,omitempty"`
	Angle   *int           `json:"angle,omitempty"`
	Opacity *float64       `json:"opacity,omitempty"`
	Blur    *int           `json:"blur,omitempty"`
}

// MarshalJSON writes the flat tagged form, omitting every field that does
// not belong to the active variant.
func (b Background) MarshalJSON() ([]byte, error) {
	w := backgroundWire{Type: b.Type}
	switch b.Type {
	case BackgroundColor:
		if b.Color != nil {
			w.Value = b.Color.Value
		}
	case BackgroundGradient:
		if b.Gradient != nil {
			w.Color1 = b.Gradient.Color1
			w.Color2 = b.Gradient.Color2
			angle := b.Gradient.Angle
			w.Angle = &angle
		}
	case BackgroundImage:
		if b.Image != nil {
			w.Value = b.Image.Value
			opacity := b.Image.Opacity
			blur := b.Image.Blur
			w.Opacity = &opacity
			w.Blur = &blur
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the flat tagged form. Unknown tags and missing
// numeric sub-fields fall back to the documented defaults; a background
// that cannot be understood at all becomes the default white fill.
func (b *Background) UnmarshalJSON(data []byte) error {
	var w backgroundWire
	if err := json.Unmarshal(data, &w); err != nil {
		*b = DefaultBackground()
		return nil
	}

	switch w.Type {
	case BackgroundColor:
		*b = NewColorBackground(w.Value)
	case BackgroundGradient:
		angle := DefaultGradientAngle
		if w.Angle != nil {
			angle = *w.Angle
		}
		*b = NewGradientBackground(w.Color1, w.Color2, angle)
	case BackgroundImage:
		img := NewImageBackground(w.Value)
		if w.Opacity != nil {
			img.Image.Opacity = *w.Opacity
		}
		if w.Blur != nil {
			img.Image.Blur = *w.Blur
		}
		*b = img
	default:
		*b = DefaultBackground()
	}
	return nil
}
