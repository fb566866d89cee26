package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

// ErrSessionExpired is returned when a token is unknown or past its TTL.
var ErrSessionExpired = errors.New("services: session expired or unknown")

// Session is an authenticated user session identified by an opaque token.
type Session struct {
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionManager keeps active sessions in memory with a TTL; expired
// entries are evicted by the cache. Sessions do not survive a restart,
// matching the desktop application's behavior.
type SessionManager struct {
	ttl      time.Duration
	sessions *gocache.Cache
}

// NewSessionManager creates a manager whose sessions live for ttl.
func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		sessions: gocache.New(ttl, 2*ttl),
	}
}

// Start creates a session for the user and returns it with a fresh token.
func (m *SessionManager) Start(user *User) *Session {
	s := &Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: time.Now(),
	}
	m.sessions.SetDefault(s.Token, s)
	return s
}

// Get returns the session for token, or ErrSessionExpired.
func (m *SessionManager) Get(token string) (*Session, error) {
	v, ok := m.sessions.Get(token)
	if !ok {
		return nil, ErrSessionExpired
	}
	return v.(*Session), nil
}

// End invalidates a session. Ending an unknown token is a no-op.
func (m *SessionManager) End(token string) {
	m.sessions.Delete(token)
}

// ActiveCount reports the number of live sessions.
func (m *SessionManager) ActiveCount() int {
	return m.sessions.ItemCount()
}

// Close drops all sessions; called by the container during cleanup.
func (m *SessionManager) Close() error {
	m.sessions.Flush()
	return nil
}
