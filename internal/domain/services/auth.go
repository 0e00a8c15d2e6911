package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
)

// ErrInvalidCredentials is returned when login email/password do not
// match a stored record.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when registering an email that already has
// an account.
var ErrEmailTaken = errors.New("email already registered")

// AuthService is the local credential stand-in over the user and
// password collections. Passwords are stored as-is; this is explicitly
// not hardened authentication.
type AuthService struct {
	users   ports.UserRepository
	creds   ports.CredentialStore
	session ports.SessionStore
}

// NewAuthService creates a new auth service instance
func NewAuthService(users ports.UserRepository, creds ports.CredentialStore, session ports.SessionStore) *AuthService {
	return &AuthService{users: users, creds: creds, session: session}
}

// Register creates a user, stores the credential, and signs the user in.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if password == "" {
		return nil, entities.NewValidationError("password", "password cannot be empty")
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, entities.ErrNotFound) {
		return nil, fmt.Errorf("checking existing user: %w", err)
	}

	user := &entities.User{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Email: email,
	}
	if err := user.Validate(); err != nil {
		return nil, entities.NewValidationError("user", err.Error())
	}

	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("saving user: %w", err)
	}
	if err := s.creds.SetPassword(ctx, email, password); err != nil {
		return nil, fmt.Errorf("saving credential: %w", err)
	}
	if err := s.session.SetCurrent(ctx, user); err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	return user, nil
}

// Login verifies the credential and starts a session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entities.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("loading user: %w", err)
	}

	ok, err := s.creds.CheckPassword(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("checking credential: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := s.session.SetCurrent(ctx, user); err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}

	return user, nil
}

// Logout clears the current session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// CurrentUser returns the signed-in user, or entities.ErrNotFound.
func (s *AuthService) CurrentUser(ctx context.Context) (*entities.User, error) {
	return s.session.Current(ctx)
}

// Ensure AuthService implements ports.AuthService
var _ ports.AuthService = (*AuthService)(nil)
