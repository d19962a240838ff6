// Package identity verifies login credentials against the auth tables.
package identity

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for unknown users and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

// User is a row from the credential store.
type User struct {
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// UserStore captures credential persistence.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// Service checks login credentials.
type Service struct {
	store UserStore
}

// NewService constructs a Service.
func NewService(store UserStore) *Service {
	return &Service{store: store}
}

// Authenticate returns nil when username/password match a stored credential.
// Lookup misses and hash mismatches are indistinguishable to the caller.
func (s *Service) Authenticate(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrInvalidCredentials
	}
	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
