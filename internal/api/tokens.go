package api

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenStore holds the session's token pair. Implementations must be safe
// for concurrent use; the client reads tokens on every request while a
// refresh may be writing them.
type TokenStore interface {
	AccessToken() string
	RefreshToken() string
	SetTokens(access, refresh string)
	SetAccessToken(access string)
	Clear()
	HasSession() bool
}

type memoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemoryTokenStore creates an in-memory TokenStore. Tokens live only for
// the process lifetime; there is no persistence across restarts.
func NewMemoryTokenStore() TokenStore {
	return &memoryTokenStore{}
}

func (s *memoryTokenStore) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *memoryTokenStore) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *memoryTokenStore) SetTokens(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
}

func (s *memoryTokenStore) SetAccessToken(access string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
}

func (s *memoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
}

func (s *memoryTokenStore) HasSession() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access != ""
}

// TokenExpiry extracts the expiry claim without verifying the signature.
// Verification is the backend's job; the client only peeks at the claim to
// refresh proactively instead of waiting for a 401.
func TokenExpiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, fmt.Errorf("failed to parse token: %w", err)
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("token has no expiry claim")
	}
	return exp.Time, nil
}

// TokenExpiresWithin reports whether the token expires inside the window.
// Malformed tokens count as expired.
func TokenExpiresWithin(token string, window time.Duration) bool {
	exp, err := TokenExpiry(token)
	if err != nil {
		return true
	}
	return time.Until(exp) < window
}
