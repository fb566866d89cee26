package services

import (
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned on a failed login. It deliberately
// does not distinguish unknown users from wrong passwords.
var ErrInvalidCredentials = errors.New("services: invalid credentials")

// AuthService authenticates users and manages their sessions. It composes
// the user service, the session manager, and the password hasher, all
// resolved from the container.
type AuthService struct {
	users    *UserService
	sessions *SessionManager
	hasher   *PasswordHasher
}

// NewAuthService creates an AuthService over its three collaborators.
func NewAuthService(users *UserService, sessions *SessionManager, hasher *PasswordHasher) *AuthService {
	return &AuthService{users: users, sessions: sessions, hasher: hasher}
}

// Login verifies credentials and starts a session.
func (s *AuthService) Login(username, password string) (*Session, error) {
	user, err := s.users.GetByUsername(username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	if !s.hasher.Verify(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return s.sessions.Start(user), nil
}

// Current returns the session behind token, or ErrSessionExpired.
func (s *AuthService) Current(token string) (*Session, error) {
	return s.sessions.Get(token)
}

// Logout ends the session behind token.
func (s *AuthService) Logout(token string) {
	s.sessions.End(token)
}
