package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/deckgen/deckgen/internal/domain/entities"
	"github.com/deckgen/deckgen/internal/domain/ports"
)

const (
	keyPresentations = "presentations"
	keyUsers         = "users"
	keyPasswords     = "passwords"
	keySession       = "session"
)

// PresentationRepository stores the whole presentation collection as one
// JSON array under a single key. Reads pass every record through the
// normalizer so documents written by older builds load cleanly.
type PresentationRepository struct {
	kv         ports.KeyValueStore
	normalizer ports.Normalizer
}

// NewPresentationRepository creates a repository over the given store.
func NewPresentationRepository(kv ports.KeyValueStore, n ports.Normalizer) *PresentationRepository {
	return &PresentationRepository{kv: kv, normalizer: n}
}

var _ ports.PresentationRepository = (*PresentationRepository)(nil)

func (r *PresentationRepository) load() ([]interface{}, error) {
	raw, ok, err := r.kv.Get(keyPresentations)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "get", Key: keyPresentations, Err: err}
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var docs []interface{}
	if err := json.Unmarshal([]byte(raw), &docs); err != nil {
		// Treat an unreadable collection as empty rather than wedging
		// every read. The next save rewrites it.
		return nil, nil
	}
	return docs, nil
}

func (r *PresentationRepository) save(docs []interface{}) error {
	raw, err := json.Marshal(docs)
	if err != nil {
		return &entities.PersistenceError{Op: "encode", Key: keyPresentations, Err: err}
	}
	if err := r.kv.Set(keyPresentations, string(raw)); err != nil {
		return &entities.PersistenceError{Op: "set", Key: keyPresentations, Err: err}
	}
	return nil
}

// Get loads a presentation by id, normalized. Returns
// entities.ErrNotFound when absent.
func (r *PresentationRepository) Get(_ context.Context, id string) (*entities.Presentation, error) {
	docs, err := r.load()
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		if docID(doc) == id {
			return r.normalizer.Normalize(doc), nil
		}
	}
	return nil, fmt.Errorf("presentation %s: %w", id, entities.ErrNotFound)
}

// ListByUser returns the listing projections of a user's presentations
// in stored order.
func (r *PresentationRepository) ListByUser(_ context.Context, userID string) ([]entities.PresentationMeta, error) {
	docs, err := r.load()
	if err != nil {
		return nil, err
	}

	metas := make([]entities.PresentationMeta, 0, len(docs))
	for _, doc := range docs {
		p := r.normalizer.Normalize(doc)
		if p.UserID != userID {
			continue
		}
		metas = append(metas, p.Meta())
	}
	return metas, nil
}

// Save stores the presentation, replacing any stored record with the
// same id. Last write wins; there is no version check.
func (r *PresentationRepository) Save(_ context.Context, p *entities.Presentation) error {
	docs, err := r.load()
	if err != nil {
		return err
	}

	encoded, err := json.Marshal(p)
	if err != nil {
		return &entities.PersistenceError{Op: "encode", Key: keyPresentations, Err: err}
	}
	var doc interface{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return &entities.PersistenceError{Op: "encode", Key: keyPresentations, Err: err}
	}

	replaced := false
	for i := range docs {
		if docID(docs[i]) == p.ID {
			docs[i] = doc
			replaced = true
			break
		}
	}
	if !replaced {
		docs = append(docs, doc)
	}
	return r.save(docs)
}

// Delete removes the presentation by id. Deleting an absent id is not
// an error.
func (r *PresentationRepository) Delete(_ context.Context, id string) error {
	docs, err := r.load()
	if err != nil {
		return err
	}

	kept := docs[:0]
	for _, doc := range docs {
		if docID(doc) != id {
			kept = append(kept, doc)
		}
	}
	if len(kept) == len(docs) {
		return nil
	}
	return r.save(kept)
}

// docID pulls the id out of a raw decoded document without normalizing.
func docID(doc interface{}) string {
	m, ok := doc.(map[string]interface{})
	if !ok {
		return ""
	}
	id, _ := m["id"].(string)
	return id
}

// UserRepository stores user records keyed by lowercase email.
type UserRepository struct {
	kv ports.KeyValueStore
}

// NewUserRepository creates a user repository over the given store.
func NewUserRepository(kv ports.KeyValueStore) *UserRepository {
	return &UserRepository{kv: kv}
}

var _ ports.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) load() (map[string]entities.User, error) {
	raw, ok, err := r.kv.Get(keyUsers)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "get", Key: keyUsers, Err: err}
	}
	users := make(map[string]entities.User)
	if !ok || raw == "" {
		return users, nil
	}
	if err := json.Unmarshal([]byte(raw), &users); err != nil {
		return make(map[string]entities.User), nil
	}
	return users, nil
}

// GetByEmail returns the user with the given email, or
// entities.ErrNotFound.
func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	users, err := r.load()
	if err != nil {
		return nil, err
	}
	u, ok := users[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", email, entities.ErrNotFound)
	}
	return &u, nil
}

// Save stores the user record.
func (r *UserRepository) Save(_ context.Context, u *entities.User) error {
	users, err := r.load()
	if err != nil {
		return err
	}
	users[strings.ToLower(u.Email)] = *u

	raw, err := json.Marshal(users)
	if err != nil {
		return &entities.PersistenceError{Op: "encode", Key: keyUsers, Err: err}
	}
	if err := r.kv.Set(keyUsers, string(raw)); err != nil {
		return &entities.PersistenceError{Op: "set", Key: keyUsers, Err: err}
	}
	return nil
}

// CredentialStore keeps per-email passwords in the key-value store.
// This is a local development stand-in, not hardened credential storage.
type CredentialStore struct {
	kv ports.KeyValueStore
}

// NewCredentialStore creates a credential store over the given store.
func NewCredentialStore(kv ports.KeyValueStore) *CredentialStore {
	return &CredentialStore{kv: kv}
}

var _ ports.CredentialStore = (*CredentialStore)(nil)

func (c *CredentialStore) load() (map[string]string, error) {
	raw, ok, err := c.kv.Get(keyPasswords)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "get", Key: keyPasswords, Err: err}
	}
	creds := make(map[string]string)
	if !ok || raw == "" {
		return creds, nil
	}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return make(map[string]string), nil
	}
	return creds, nil
}

// SetPassword records the password for email.
func (c *CredentialStore) SetPassword(_ context.Context, email, password string) error {
	creds, err := c.load()
	if err != nil {
		return err
	}
	creds[strings.ToLower(email)] = password

	raw, err := json.Marshal(creds)
	if err != nil {
		return &entities.PersistenceError{Op: "encode", Key: keyPasswords, Err: err}
	}
	if err := c.kv.Set(keyPasswords, string(raw)); err != nil {
		return &entities.PersistenceError{Op: "set", Key: keyPasswords, Err: err}
	}
	return nil
}

// CheckPassword reports whether the stored password for email matches.
func (c *CredentialStore) CheckPassword(_ context.Context, email, password string) (bool, error) {
	creds, err := c.load()
	if err != nil {
		return false, err
	}
	stored, ok := creds[strings.ToLower(email)]
	return ok && stored == password, nil
}

// SessionStore keeps the current-session singleton in the key-value
// store so a restart picks the session back up.
type SessionStore struct {
	kv ports.KeyValueStore
}

// NewSessionStore creates a session store over the given store.
func NewSessionStore(kv ports.KeyValueStore) *SessionStore {
	return &SessionStore{kv: kv}
}

var _ ports.SessionStore = (*SessionStore)(nil)

// Current returns the signed-in user, or entities.ErrNotFound when no
// session exists.
func (s *SessionStore) Current(_ context.Context) (*entities.User, error) {
	raw, ok, err := s.kv.Get(keySession)
	if err != nil {
		return nil, &entities.PersistenceError{Op: "get", Key: keySession, Err: err}
	}
	if !ok || raw == "" {
		return nil, entities.ErrNotFound
	}

	var u entities.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, entities.ErrNotFound
	}
	if u.ID == "" {
		return nil, entities.ErrNotFound
	}
	return &u, nil
}

// SetCurrent records u as the signed-in user.
func (s *SessionStore) SetCurrent(_ context.Context, u *entities.User) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return &entities.PersistenceError{Op: "encode", Key: keySession, Err: err}
	}
	if err := s.kv.Set(keySession, string(raw)); err != nil {
		return &entities.PersistenceError{Op: "set", Key: keySession, Err: err}
	}
	return nil
}

// Clear removes the current session.
func (s *SessionStore) Clear(_ context.Context) error {
	if err := s.kv.Remove(keySession); err != nil {
		return &entities.PersistenceError{Op: "remove", Key: keySession, Err: err}
	}
	return nil
}
