package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
)

// pastedTitleLimit is how many characters of pasted text become the
// working title when none is given.
const pastedTitleLimit = 50

// GenerationService implements the content generation pipeline: resolve
// raw input per source kind, invoke the slide content generator (with a
// deterministic local fallback), attach backgrounds per slide, assemble
// and persist the presentation.
type GenerationService struct {
	generator ports.SlideContentGenerator
	images    ports.ImageAcquisition
	extractor ports.ContentExtractor
	repo      ports.PresentationRepository
	clock     ports.Clock
	logger    ports.Logger
}

// NewGenerationService creates a new generation service instance
func NewGenerationService(
	generator ports.SlideContentGenerator,
	images ports.ImageAcquisition,
	extractor ports.ContentExtractor,
	repo ports.PresentationRepository,
	clock ports.Clock,
	logger ports.Logger,
) *GenerationService {
	if clock == nil {
		clock = ports.RealClock{}
	}
	return &GenerationService{
		generator: generator,
		images:    images,
		extractor: extractor,
		repo:      repo,
		clock:     clock,
		logger:    logger,
	}
}

// Generate runs the pipeline and returns the stored presentation. Input
// validation happens before any network call. A failed content
// generation falls back to local synthetic slides; a failed save returns
// the assembled presentation together with the persistence error so the
// caller can surface it.
func (s *GenerationService) Generate(ctx context.Context, req ports.GenerateRequest) (*entities.Presentation, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	text, title := s.resolveContent(req)

	pairs, err := s.generator.GenerateSlides(ctx, text, req.SlideCount)
	if err != nil || len(pairs) == 0 {
		if s.logger != nil {
			s.logger.Warn("content generator unavailable, using local fallback: %v", err)
		}
		pairs = fallbackSlides(title, text, req.SlideCount)
	}

	slides := s.buildSlides(ctx, pairs, title, req.ImageMode)

	p := &entities.Presentation{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		Title:     title,
		Slides:    slides,
		Theme:     entities.NormalizeTheme(req.Theme),
		CreatedAt: s.clock.Now().UTC(),
	}

	if err := s.repo.Save(ctx, p); err != nil {
		// Saves are best effort, but failure is surfaced rather than
		// swallowed: the caller still gets the in-memory presentation.
		return p, fmt.Errorf("saving generated presentation: %w", err)
	}

	return p, nil
}

// validateRequest rejects input that is insufficient for the chosen
// source kind.
func validateRequest(req ports.GenerateRequest) error {
	if req.SlideCount < 1 {
		return entities.NewValidationError("slideCount", "must be at least 1")
	}

	switch req.Source {
	case ports.SourceDirect:
		if strings.TrimSpace(req.Title) == "" {
			return entities.NewValidationError("title", "a title is required for direct generation")
		}
	case ports.SourcePastedText:
		if strings.TrimSpace(req.Text) == "" {
			return entities.NewValidationError("text", "pasted text cannot be empty")
		}
	case ports.SourceUploadedFile:
		if req.File == nil || len(req.File.Data) == 0 {
			return entities.NewValidationError("file", "a file is required for file generation")
		}
	default:
		return entities.NewValidationError("source", fmt.Sprintf("unknown source kind %q", req.Source))
	}

	return nil
}

// resolveContent produces the text handed to the generator and the
// working presentation title, per source kind.
func (s *GenerationService) resolveContent(req ports.GenerateRequest) (text, title string) {
	switch req.Source {
	case ports.SourceDirect:
		return req.Title, req.Title

	case ports.SourcePastedText:
		text = s.extractor.Sanitize(req.Text)
		title = strings.TrimSpace(req.Title)
		if title == "" {
			title = truncateTitle(text)
		}
		return text, title

	case ports.SourceUploadedFile:
		var hint string
		text, hint = s.extractor.Extract(req.File.Name, req.File.Data)
		title = strings.TrimSpace(req.Title)
		if title == "" {
			title = hint
		}
		if title == "" {
			title = s.extractor.TitleFromFilename(req.File.Name)
		}
		return text, title
	}

	return "", ""
}

// truncateTitle derives a title from the head of pasted text.
func truncateTitle(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= pastedTitleLimit {
		if text == "" {
			return DefaultPresentationTitle
		}
		return text
	}
	return string(runes[:pastedTitleLimit]) + "..."
}

// buildSlides assembles full slides from generator pairs, resolving each
// background concurrently. The final order always matches the pair
// order, whichever image resolves first.
func (s *GenerationService) buildSlides(ctx context.Context, pairs []ports.SlidePair, title string, mode ports.ImageMode) []entities.Slide {
	slides := make([]entities.Slide, len(pairs))

	var wg sync.WaitGroup
	for i := range pairs {
		wg.Add(1)
		go func(i int, pair ports.SlidePair) {
			defer wg.Done()

			slide := entities.NewSlide(uuid.NewString(), pair.Title, pair.Content)

			prompt := pair.Title
			if prompt == "" {
				prompt = title
			}

			bg, err := s.images.ResolveBackground(ctx, prompt, mode)
			if err != nil {
				// Slide-level failures downgrade to a placeholder image
				// instead of aborting the whole generation.
				if s.logger != nil {
					s.logger.Warn("background resolution failed for slide %d: %v", i, err)
				}
				bg = entities.NewImageBackground(PlaceholderImageURL(prompt))
			}
			slide.Background = bg

			slides[i] = slide
		}(i, pairs[i])
	}
	wg.Wait()

	return slides
}

// fallbackSlides is the deterministic local generator used when the
// content generation capability fails or returns nothing. It always
// produces exactly count slides with non-empty titles.
func fallbackSlides(title, text string, count int) []ports.SlidePair {
	if title == "" {
		title = DefaultPresentationTitle
	}

	sentences := splitSentences(text)
	pairs := make([]ports.SlidePair, count)
	for i := 0; i < count; i++ {
		pair := ports.SlidePair{
			Title:   fmt.Sprintf("%s - Part %d", title, i+1),
			Content: []string{},
		}
		// Distribute sentences round-robin so every slide gets material.
		for j := i; j < len(sentences); j += count {
			pair.Content = append(pair.Content, sentences[j])
			if len(pair.Content) == 4 {
				break
			}
		}
		if len(pair.Content) == 0 {
			pair.Content = []string{"Add your content here"}
		}
		pairs[i] = pair
	}
	return pairs
}

// splitSentences breaks text into trimmed sentence-ish chunks.
func splitSentences(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Ensure GenerationService implements ports.GenerationService
var _ ports.GenerationService = (*GenerationService)(nil)
