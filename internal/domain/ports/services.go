package ports

import (
	"context"
	"time"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

// SourceKind identifies where the generation input comes from.
type SourceKind string

const (
	SourceDirect       SourceKind = "direct"
	SourcePastedText   SourceKind = "pastedText"
	SourceUploadedFile SourceKind = "uploadedFile"
)

// ImageMode selects the background image strategy for generated slides.
type ImageMode string

const (
	ImageModeAI     ImageMode = "ai"
	ImageModeSearch ImageMode = "search"
	ImageModeNone   ImageMode = "none"
)

// UploadedFile carries the name and bytes of a file chosen by the user.
type UploadedFile struct {
	Name string
	Data []byte
}

// GenerateRequest is the input to the content generation pipeline.
type GenerateRequest struct {
	Source     SourceKind
	Title      string
	Text       string
	File       *UploadedFile
	SlideCount int
	ImageMode  ImageMode
	Theme      string
	UserID     string
}

// GenerationService turns a generation request into a persisted
// presentation.
type GenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (*entities.Presentation, error)
}

// ImageAcquisition resolves slide backgrounds from prompts, queries, and
// uploads.
type ImageAcquisition interface {
	// ResolveBackground resolves a background for the prompt using the
	// given mode. In AI mode a failed generation degrades to a
	// deterministic placeholder image, never an error.
	ResolveBackground(ctx context.Context, prompt string, mode ImageMode) (entities.Background, error)

	// SearchImages runs the ordered provider chain. An empty result with
	// a nil error means every provider was exhausted ("no images found").
	SearchImages(ctx context.Context, query string) ([]string, error)

	// UploadBackground wraps uploaded file bytes as an inline image
	// background with default opacity and blur.
	UploadBackground(data []byte, contentType string) entities.Background

	// SelectFromGallery wraps a URL the user picked from earlier search
	// results as an image background.
	SelectFromGallery(url string) entities.Background
}

// Normalizer repairs raw persisted documents into structurally valid
// presentations.
type Normalizer interface {
	// Normalize never fails and is idempotent.
	Normalize(raw interface{}) *entities.Presentation
}

// AuthService is the local credential stand-in over the user collections.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*entities.User, error)
	Login(ctx context.Context, email, password string) (*entities.User, error)
	Logout(ctx context.Context) error
	CurrentUser(ctx context.Context) (*entities.User, error)
}

// Clock abstracts time for deterministic tests.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// Logger is the leveled logger services report through.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}
