package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/deckgen/deckgen/internal/domain/entities"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, u *entities.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockCredentialStore struct {
	mock.Mock
}

func (m *MockCredentialStore) SetPassword(ctx context.Context, email, password string) error {
	args := m.Called(ctx, email, password)
	return args.Error(0)
}

func (m *MockCredentialStore) CheckPassword(ctx context.Context, email, password string) (bool, error) {
	args := m.Called(ctx, email, password)
	return args.Bool(0), args.Error(1)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Current(ctx context.Context) (*entities.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockSessionStore) SetCurrent(ctx context.Context, u *entities.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockSessionStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user and starts session", func(t *testing.T) {
		users := new(MockUserRepository)
		creds := new(MockCredentialStore)
		session := new(MockSessionStore)
		svc := NewAuthService(users, creds, session)

		users.On("GetByEmail", ctx, "ada@example.com").Return(nil, entities.ErrNotFound)
		users.On("Save", ctx, mock.Anything).Return(nil)
		creds.On("SetPassword", ctx, "ada@example.com", "hunter2").Return(nil)
		session.On("SetCurrent", ctx, mock.Anything).Return(nil)

		user, err := svc.Register(ctx, "Ada", "Ada@Example.com", "hunter2")

		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.NotEmpty(t, user.ID)
		session.AssertCalled(t, "SetCurrent", ctx, user)
	})

	t.Run("rejects taken email", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, new(MockCredentialStore), new(MockSessionStore))

		users.On("GetByEmail", ctx, "ada@example.com").
			Return(&entities.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}, nil)

		_, err := svc.Register(ctx, "Ada", "ada@example.com", "pw")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("rejects empty password", func(t *testing.T) {
		svc := NewAuthService(new(MockUserRepository), new(MockCredentialStore), new(MockSessionStore))

		_, err := svc.Register(ctx, "Ada", "ada@example.com", "")
		var verr *entities.ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	stored := &entities.User{ID: "u1", Name: "Ada", Email: "ada@example.com"}

	t.Run("success", func(t *testing.T) {
		users := new(MockUserRepository)
		creds := new(MockCredentialStore)
		session := new(MockSessionStore)
		svc := NewAuthService(users, creds, session)

		users.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil)
		creds.On("CheckPassword", ctx, "ada@example.com", "hunter2").Return(true, nil)
		session.On("SetCurrent", ctx, stored).Return(nil)

		user, err := svc.Login(ctx, "ada@example.com", "hunter2")
		require.NoError(t, err)
		assert.Equal(t, stored, user)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(MockUserRepository)
		creds := new(MockCredentialStore)
		svc := NewAuthService(users, creds, new(MockSessionStore))

		users.On("GetByEmail", ctx, "ada@example.com").Return(stored, nil)
		creds.On("CheckPassword", ctx, "ada@example.com", "wrong").Return(false, nil)

		_, err := svc.Login(ctx, "ada@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		users := new(MockUserRepository)
		svc := NewAuthService(users, new(MockCredentialStore), new(MockSessionStore))

		users.On("GetByEmail", ctx, "ghost@example.com").Return(nil, entities.ErrNotFound)

		_, err := svc.Login(ctx, "ghost@example.com", "pw")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogoutAndCurrentUser(t *testing.T) {
	ctx := context.Background()

	session := new(MockSessionStore)
	svc := NewAuthService(new(MockUserRepository), new(MockCredentialStore), session)

	session.On("Clear", ctx).Return(nil)
	require.NoError(t, svc.Logout(ctx))

	session.On("Current", ctx).Return(nil, entities.ErrNotFound)
	_, err := svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
