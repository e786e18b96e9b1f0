package users

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// Store is the persistence capability the service needs.
type Store interface {
	Insert(ctx context.Context, name, email, passwordHash, role, department string) (User, error)
	ByEmail(ctx context.Context, email string) (User, string, error)
}

// Service handles registration and login.
type Service struct {
	store Store
}

// NewService creates a service backed by a store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Register creates an account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, name, email, password, role, department string) (User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}
	return s.store.Insert(ctx, name, email, string(hash), role, department)
}

// Login verifies credentials and returns the user. Unknown email and wrong
// password both map to ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (User, error) {
	u, hash, err := s.store.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}
