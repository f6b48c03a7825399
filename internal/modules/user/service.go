// README: Account service: signup, login, lookups.
package user

import (
	"context"
	"errors"
	"strings"

	"cabway/internal/auth"
	"cabway/internal/types"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrValidation     = errors.New("invalid user input")
	ErrBadCredentials = errors.New("invalid email or password")
)

type Service struct {
	store Store
	auth  *auth.Service
}

func NewService(store Store, authSvc *auth.Service) *Service {
	return &Service{store: store, auth: authSvc}
}

// Signup registers an account. Emails are lowercased before storage so
// lookups are case-insensitive.
func (s *Service) Signup(ctx context.Context, name, email, password string, role Role) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" || !strings.Contains(email, "@") {
		return nil, ErrValidation
	}
	if len(password) < 6 {
		return nil, ErrValidation
	}
	if role == "" {
		role = RoleUser
	}
	if !role.Valid() {
		return nil, ErrValidation
	}

	hash, err := s.auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	u := &User{
		ID:           types.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login checks credentials and issues a signed token. Unknown emails
// and wrong passwords report the same error.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.store.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, "", ErrBadCredentials
	}
	if err != nil {
		return nil, "", err
	}
	if !s.auth.CheckPassword(password, u.PasswordHash) {
		return nil, "", ErrBadCredentials
	}

	token, err := s.auth.GenerateToken(u.ID, u.Email, string(u.Role))
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*User, error) {
	return s.store.GetByID(ctx, id)
}

// List returns every account; administrative surface. Password hashes
// stay inside the service boundary, the HTTP layer never serializes
// them.
func (s *Service) List(ctx context.Context) ([]*User, error) {
	return s.store.List(ctx)
}
