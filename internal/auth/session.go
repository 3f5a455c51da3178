// Package auth holds the bearer token used against the event backend.
package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Provider reports the current authentication state.
type Provider interface {
	Token() (string, bool)
	IsAuthenticated() bool
}

// Session is a Provider backed by a single bearer token. JWT tokens are
// treated as expired once their exp claim has passed; the signature is not
// checked here, the backend does that.
type Session struct {
	mu    sync.RWMutex
	token string
	now   func() time.Time
}

// NewSession creates a session holding token. An empty token means signed out.
func NewSession(token string) *Session {
	return &Session{
		token: strings.TrimSpace(token),
		now:   time.Now,
	}
}

// Set replaces the token.
func (s *Session) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
}

// Clear signs the session out.
func (s *Session) Clear() {
	s.Set("")
}

// Token returns the token when the session is authenticated.
func (s *Session) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.valid() {
		return "", false
	}
	return s.token, true
}

// IsAuthenticated implements Provider.
func (s *Session) IsAuthenticated() bool {
	_, ok := s.Token()
	return ok
}

// Expiry returns the exp claim of a JWT token.
func (s *Session) Expiry() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return expiry(s.token)
}

// Subject returns the sub claim of a JWT token.
func (s *Session) Subject() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	claims, ok := parseClaims(s.token)
	if !ok {
		return ""
	}
	sub, _ := claims.GetSubject()
	return sub
}

func (s *Session) valid() bool {
	if s.token == "" {
		return false
	}
	exp, ok := expiry(s.token)
	if !ok {
		return true
	}
	return s.now().Before(exp)
}

func expiry(token string) (time.Time, bool) {
	claims, ok := parseClaims(token)
	if !ok {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// parseClaims reads the claims of a JWT without verifying it. Opaque
// tokens report false.
func parseClaims(token string) (jwt.MapClaims, bool) {
	if strings.Count(token, ".") != 2 {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, false
	}
	return claims, true
}
