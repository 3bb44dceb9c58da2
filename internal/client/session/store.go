// Package session is the client-side session manager: it persists the bearer
// token and cached user summary in durable storage, attaches the token to
// outgoing requests, and converges to a logged-out state whenever the server
// rejects authentication.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/agenciapet/petpal-manager/internal/core/domain"
	"github.com/agenciapet/petpal-manager/internal/core/token"
)

// User is the cached summary stored beside the token. It is advisory only:
// the server never trusts it for authorization.
type User struct {
	ID    string      `json:"id"`
	Name  string      `json:"name,omitempty"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// state is the on-disk shape: the two logical slots written and cleared
// together.
type state struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Store holds the client session. All mutations and reads go through one
// mutex so a logout completing mid-flight cannot race a request into being
// sent with a stale token.
type Store struct {
	mu    sync.Mutex
	path  string
	state state
}

// Open loads any previously persisted session from path. An unreadable or
// corrupt file is treated as logged out.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	if err := json.Unmarshal(raw, &s.state); err != nil {
		// Corrupt storage: start logged out rather than failing the app.
		s.state = state{}
		_ = os.Remove(path)
	}
	return s, nil
}

// Persist writes the token and user summary together as the atomic "log in"
// side effect.
func (s *Store) Persist(tok string, user User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{Token: tok, User: &user}
	return s.flush()
}

// Token returns the stored token, or empty when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// User returns the cached summary and whether one is present.
func (s *Store) User() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return User{}, false
	}
	return *s.state.User, true
}

// Authenticated reports whether a token is present ("believed
// authenticated"); only the server can say whether it is still valid.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Clear removes the token and cached summary together. Idempotent.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// DropIfExpired decodes the stored token without verifying its signature and
// clears the session when the expiry has passed. This is an optimistic
// application-start check; the server-side verification stays authoritative.
func (s *Store) DropIfExpired(now time.Time) (bool, error) {
	s.mu.Lock()
	raw := s.state.Token
	s.mu.Unlock()

	if raw == "" {
		return false, nil
	}

	claims, err := token.Peek(raw)
	if err != nil || !now.Before(claims.ExpiresAt) {
		return true, s.Clear()
	}
	return false, nil
}

// flush writes the state next to its final path and renames it into place so
// both slots always change together, even across a crash. Caller holds s.mu.
func (s *Store) flush() error {
	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}
