// Package session keeps the server-side state behind the browser cookie: the
// claimed identity, the confirmation token for state-changing actions and
// one-shot notices shown on the next rendered view.
package session

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"time"

	"gonotes/internal/auth"
)

const (
	FlashInfo    = "info"
	FlashSuccess = "success"
	FlashWarning = "warning"
	FlashDanger  = "danger"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

type Data struct {
	Username  string  `json:"username,omitempty"`
	CSRFToken string  `json:"csrf_token"`
	Flashes   []Flash `json:"flashes,omitempty"`
}

// Store persists session data by session id. Load returns (nil, nil) for an
// unknown or expired id. DeleteByUsername drops every session that claims
// username.
type Store interface {
	Load(ctx context.Context, id string) (*Data, error)
	Save(ctx context.Context, id string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
	DeleteByUsername(ctx context.Context, username string) error
}

type Session struct {
	id    string
	data  *Data
	dirty bool
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Identity() auth.Identity {
	return auth.Identity{Username: s.data.Username}
}

func (s *Session) CSRFToken() string {
	return s.data.CSRFToken
}

// VerifyCSRF reports whether token matches the session's current
// confirmation token.
func (s *Session) VerifyCSRF(token string) bool {
	if token == "" || s.data.CSRFToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.data.CSRFToken)) == 1
}

func (s *Session) AddFlash(category, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Category: category, Message: message})
	s.dirty = true
}

func (s *Session) PopFlashes() []Flash {
	flashes := s.data.Flashes
	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.dirty = true
	}
	return flashes
}

func newCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate csrf token failed: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
