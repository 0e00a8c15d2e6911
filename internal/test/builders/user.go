package builders

import "github.com/deckgen/deckgen/internal/domain/entities"

// UserBuilder helps build User entities for testing
type UserBuilder struct {
	user *entities.User
}

// NewUserBuilder creates a new user builder with sensible defaults
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		user: &entities.User{
			ID:    "test-user",
			Name:  "Test User",
			Email: "test@example.com",
		},
	}
}

// WithID sets the user id
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.user.ID = id
	return b
}

// WithName sets the user display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

// WithEmail sets the user email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = email
	return b
}

// Build returns the built user
func (b *UserBuilder) Build() *entities.User {
	return b.user
}
