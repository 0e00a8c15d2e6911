package ports

import (
	"context"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

// PresentationRepository persists presentations against the key-value
// store. Writes are last-write-wins with no version check; a write
// replaces one record inside the whole stored collection atomically from
// the caller's point of view.
type PresentationRepository interface {
	// Get loads a presentation by id, normalized. Returns
	// entities.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*entities.Presentation, error)

	// ListByUser returns the listing projections of a user's
	// presentations, in stored order.
	ListByUser(ctx context.Context, userID string) ([]entities.PresentationMeta, error)

	// Save stores the presentation, replacing any record with the same id.
	Save(ctx context.Context, p *entities.Presentation) error

	// Delete removes the presentation by id. Deleting an absent id is
	// not an error.
	Delete(ctx context.Context, id string) error
}

// UserRepository persists user records.
type UserRepository interface {
	// GetByEmail returns the user with the given email, or
	// entities.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Save stores the user, replacing any record with the same id.
	Save(ctx context.Context, u *entities.User) error
}

// CredentialStore holds the per-email password records. This is a local
// plaintext stand-in, not hardened credential storage.
type CredentialStore interface {
	SetPassword(ctx context.Context, email, password string) error
	CheckPassword(ctx context.Context, email, password string) (bool, error)
}

// SessionStore holds the current-session singleton.
type SessionStore interface {
	// Current returns the signed-in user, or entities.ErrNotFound when
	// no session exists.
	Current(ctx context.Context) (*entities.User, error)

	// SetCurrent records u as the signed-in user.
	SetCurrent(ctx context.Context, u *entities.User) error

	// Clear removes the current session.
	Clear(ctx context.Context) error
}
