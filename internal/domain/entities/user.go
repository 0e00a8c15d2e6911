package entities

import (
	"errors"
	"strings"
)

// User is the credential subject owning presentations. The auth layer
// built on top of it is a local stand-in, not hardened authentication.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Validate ensures the user record carries usable identity fields.
func (u *User) Validate() error {
	if u.ID == "" {
		return errors.New("user id is required")
	}
	if strings.TrimSpace(u.Name) == "" {
		return errors.New("user name is required")
	}
	if !strings.Contains(u.Email, "@") {
		return errors.New("user email is invalid")
	}
	return nil
}
