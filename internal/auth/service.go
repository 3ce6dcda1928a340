package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Common errors
var (
	ErrUsernameTaken      = errors.New("user already exists")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const minPasswordLength = 6

// UserStore is the persistence surface the service depends on
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	Create(ctx context.Context, username, passwordHash, name, gender string) (*User, error)
}

// Service handles registration and login
type Service struct {
	store     UserStore
	jwtSecret []byte
}

// NewService creates a new auth service with store and signing secret injected
func NewService(store UserStore, jwtSecret []byte) *Service {
	return &Service{store: store, jwtSecret: jwtSecret}
}

// Register creates a new account with a bcrypt-hashed password
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	existing, err := s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, req.Username, string(hash), req.Name, req.Gender)
}

// Login verifies credentials and issues a session token.
// Unknown usernames and wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, error) {
	user, err := s.store.GetByUsername(ctx, req.Username)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return SignToken(s.jwtSecret, user.ID, user.Username)
}
