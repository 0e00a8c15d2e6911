package ports

import "context"

// SlidePair is one title/bullets pair produced by the content generator.
type SlidePair struct {
	Title   string   `json:"title"`
	Content []string `json:"content"`
}

// SlideContentGenerator defines the interface to the external slide
// content generation capability.
type SlideContentGenerator interface {
	// GenerateSlides turns raw text into count ordered title/bullet pairs.
	// The call may fail or return malformed data; callers are expected to
	// recover with a local fallback.
	GenerateSlides(ctx context.Context, text string, count int) ([]SlidePair, error)
}

// ImageGenerator defines the interface to the external image generation
// capability.
type ImageGenerator interface {
	// GenerateImage returns a single image reference (URL or data URI)
	// for the prompt.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// ImageSearchProvider is one provider in the ordered web image search
// chain. Providers may fail or return an empty result; the caller tries
// the next provider in order.
type ImageSearchProvider interface {
	// Name identifies the provider in logs.
	Name() string

	// Search returns an ordered list of image URLs for the query.
	Search(ctx context.Context, query string) ([]string, error)
}

// ContentExtractor resolves uploaded file bytes into text usable by the
// content generator.
type ContentExtractor interface {
	// Extract returns the plain text of the file, or a synthesized
	// placeholder naming the file when the content is not plain text.
	// The second return is an optional title hint found in the content.
	Extract(filename string, data []byte) (text string, titleHint string)

	// Sanitize strips markup from pasted text, returning plain text.
	Sanitize(text string) string

	// TitleFromFilename derives a presentation title from a file name.
	TitleFromFilename(filename string) string
}
