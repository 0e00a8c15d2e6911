package entities

// TextStyle describes how a block of slide text is rendered. It is a
// value type: callers copy it, never share pointers into a slide.
type TextStyle struct {
	// FontSize is the size in points.
	FontSize int `json:"fontSize"`

	// FontFamily is the CSS font family name.
	FontFamily string `json:"fontFamily"`

	// Color is an opaque color string (hex or CSS color name).
	Color string `json:"color"`

	Bold      bool `json:"bold"`
	Italic    bool `json:"italic"`
	Underline bool `json:"underline"`

	// TextShadow is an optional CSS text-shadow value.
	TextShadow string `json:"textShadow,omitempty"`
}

// DefaultTitleStyle returns the named default style for slide titles.
func DefaultTitleStyle() TextStyle {
	return TextStyle{
		FontSize:   40,
		FontFamily: "Arial",
		Color:      "#000000",
		Bold:       true,
	}
}

// DefaultContentStyle returns the named default style for slide body text.
func DefaultContentStyle() TextStyle {
	return TextStyle{
		FontSize:   24,
		FontFamily: "Arial",
		Color:      "#333333",
	}
}
