package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
)

// DefaultPresentationTitle is used when a stored presentation has no
// usable title.
const DefaultPresentationTitle = "Untitled Presentation"

// DocumentNormalizer repairs raw persisted presentations into
// structurally valid ones. It never fails: every missing or wrong-typed
// field is replaced with its documented default. Normalizing an already
// normalized document yields the identical structure.
type DocumentNormalizer struct {
	clock ports.Clock
}

// NewDocumentNormalizer creates a new normalizer instance
func NewDocumentNormalizer(clock ports.Clock) *DocumentNormalizer {
	if clock == nil {
		clock = ports.RealClock{}
	}
	return &DocumentNormalizer{clock: clock}
}

// NormalizeJSON decodes raw JSON and normalizes the result. Undecodable
// input is treated like an absent document.
func (n *DocumentNormalizer) NormalizeJSON(data []byte) *entities.Presentation {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		raw = nil
	}
	return n.Normalize(raw)
}

// Normalize returns a structurally valid presentation built from raw,
// whatever shape raw has.
func (n *DocumentNormalizer) Normalize(raw interface{}) *entities.Presentation {
	m, _ := raw.(map[string]interface{})

	p := &entities.Presentation{
		ID:        asString(m["id"]),
		UserID:    asString(m["userId"]),
		Title:     asString(m["title"]),
		Theme:     entities.NormalizeTheme(asString(m["theme"])),
		CreatedAt: n.normalizeTime(m["createdAt"]),
	}
	if p.Title == "" {
		p.Title = DefaultPresentationTitle
	}

	rawSlides, _ := m["slides"].([]interface{})
	p.Slides = make([]entities.Slide, 0, len(rawSlides))
	now := n.clock.Now().UnixMilli()
	for i, rs := range rawSlides {
		p.Slides = append(p.Slides, n.normalizeSlide(rs, now, i))
	}

	return p
}

// normalizeSlide repairs a single slide. Missing ids are synthesized
// from the normalization timestamp plus the slide index, which keeps
// them distinct within one pass.
func (n *DocumentNormalizer) normalizeSlide(raw interface{}, stamp int64, index int) entities.Slide {
	m, _ := raw.(map[string]interface{})

	id := asString(m["id"])
	if id == "" {
		id = fmt.Sprintf("%d-%d", stamp, index)
	}

	title := asString(m["title"])
	if title == "" {
		title = entities.DefaultSlideTitle
	}

	return entities.Slide{
		ID:           id,
		Title:        title,
		Content:      asStringSlice(m["content"]),
		Background:   normalizeBackground(m["background"]),
		TitleStyle:   mergeStyle(entities.DefaultTitleStyle(), m["titleStyle"]),
		ContentStyle: mergeStyle(entities.DefaultContentStyle(), m["contentStyle"]),
	}
}

// normalizeBackground rebuilds the background union from a raw value.
// Unknown or missing tags become the default white fill; variant
// sub-fields that are absent get their stated defaults.
func normalizeBackground(raw interface{}) entities.Background {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return entities.DefaultBackground()
	}

	switch entities.BackgroundType(asString(m["type"])) {
	case entities.BackgroundColor:
		return entities.NewColorBackground(asString(m["value"]))

	case entities.BackgroundGradient:
		angle := entities.DefaultGradientAngle
		if v, ok := asInt(m["angle"]); ok {
			angle = v
		}
		return entities.NewGradientBackground(asString(m["color1"]), asString(m["color2"]), angle)

	case entities.BackgroundImage:
		bg := entities.NewImageBackground(asString(m["value"]))
		if v, ok := asFloat(m["opacity"]); ok {
			bg.Image.Opacity = v
		}
		if v, ok := asInt(m["blur"]); ok {
			bg.Image.Blur = v
		}
		return bg

	default:
		return entities.DefaultBackground()
	}
}

// mergeStyle shallow-merges a stored style over the named default: only
// fields individually present in the stored value override the default.
func mergeStyle(def entities.TextStyle, raw interface{}) entities.TextStyle {
	m, ok := raw.(map[string]interface{})
	if !ok {
		return def
	}

	out := def
	if v, ok := asInt(m["fontSize"]); ok {
		out.FontSize = v
	}
	if v, present := m["fontFamily"]; present {
		if s := asString(v); s != "" {
			out.FontFamily = s
		}
	}
	if v, present := m["color"]; present {
		if s := asString(v); s != "" {
			out.Color = s
		}
	}
	if v, ok := m["bold"].(bool); ok {
		out.Bold = v
	}
	if v, ok := m["italic"].(bool); ok {
		out.Italic = v
	}
	if v, ok := m["underline"].(bool); ok {
		out.Underline = v
	}
	if v, present := m["textShadow"]; present {
		out.TextShadow = asString(v)
	}
	return out
}

// normalizeTime parses a stored timestamp, falling back to now.
func (n *DocumentNormalizer) normalizeTime(raw interface{}) time.Time {
	if s := asString(raw); s != "" {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
	}
	return n.clock.Now().UTC().Truncate(time.Millisecond)
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func asInt(v interface{}) (int, bool) {
	f, ok := asFloat(v)
	if !ok {
		return 0, false
	}
	return int(f), true
}

// asStringSlice keeps only the string elements of a raw sequence. A
// non-sequence value is replaced with an empty one.
func asStringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(raw))
	for _, e := range raw {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Ensure DocumentNormalizer implements ports.Normalizer
var _ ports.Normalizer = (*DocumentNormalizer)(nil)
