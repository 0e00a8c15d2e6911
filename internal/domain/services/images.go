package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"hash/fnv"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
)

// ImageService resolves slide backgrounds: AI generation with a
// deterministic placeholder on failure, ordered web search with provider
// fallback, direct upload, and gallery selection.
type ImageService struct {
	generator ports.ImageGenerator
	providers []ports.ImageSearchProvider
	logger    ports.Logger
}

// NewImageService creates a new image service. Providers are tried in
// the given order; the last one is expected to be the deterministic
// placeholder provider.
func NewImageService(generator ports.ImageGenerator, providers []ports.ImageSearchProvider, logger ports.Logger) *ImageService {
	return &ImageService{
		generator: generator,
		providers: providers,
		logger:    logger,
	}
}

// ResolveBackground resolves a background for the prompt using the given
// mode. AI failures degrade to a deterministic placeholder image rather
// than aborting the caller's generation.
func (s *ImageService) ResolveBackground(ctx context.Context, prompt string, mode ports.ImageMode) (entities.Background, error) {
	switch mode {
	case ports.ImageModeNone:
		return entities.DefaultBackground(), nil

	case ports.ImageModeAI:
		if s.generator == nil {
			return entities.NewImageBackground(PlaceholderImageURL(prompt)), nil
		}
		ref, err := s.generator.GenerateImage(ctx, prompt)
		if err != nil || ref == "" {
			if s.logger != nil {
				s.logger.Warn("image generation failed for %q, using placeholder: %v", prompt, err)
			}
			return entities.NewImageBackground(PlaceholderImageURL(prompt)), nil
		}
		return entities.NewImageBackground(ref), nil

	case ports.ImageModeSearch:
		urls, err := s.SearchImages(ctx, prompt)
		if err != nil {
			return entities.Background{}, err
		}
		if len(urls) == 0 {
			return entities.DefaultBackground(), nil
		}
		return entities.NewImageBackground(urls[0]), nil

	default:
		return entities.DefaultBackground(), nil
	}
}

// SearchImages runs the ordered provider chain: the first provider
// returning a non-empty result wins. A provider failure or empty result
// moves on to the next one. When every provider comes back empty the
// result is empty with a nil error ("no images found"); only an error
// from the final placeholder provider itself propagates.
func (s *ImageService) SearchImages(ctx context.Context, query string) ([]string, error) {
	for i, provider := range s.providers {
		urls, err := provider.Search(ctx, query)
		if err != nil {
			if i == len(s.providers)-1 {
				return nil, fmt.Errorf("image search provider %s: %w", provider.Name(), err)
			}
			if s.logger != nil {
				s.logger.Warn("image search provider %s failed, trying next: %v", provider.Name(), err)
			}
			continue
		}
		if len(urls) > 0 {
			return urls, nil
		}
	}
	return nil, nil
}

// UploadBackground wraps uploaded file bytes as an inline image
// background with default opacity and blur.
func (s *ImageService) UploadBackground(data []byte, contentType string) entities.Background {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	uri := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))
	return entities.NewImageBackground(uri)
}

// SelectFromGallery wraps a URL the user picked from earlier search
// results as an image background.
func (s *ImageService) SelectFromGallery(url string) entities.Background {
	return entities.NewImageBackground(url)
}

// PlaceholderImageURL derives a stable placeholder image reference from
// a prompt. The same prompt always yields the same URL.
func PlaceholderImageURL(prompt string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(prompt))
	return fmt.Sprintf("https://picsum.photos/seed/%d/1280/720", h.Sum32())
}

// Ensure ImageService implements ports.ImageAcquisition
var _ ports.ImageAcquisition = (*ImageService)(nil)
