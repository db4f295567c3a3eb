package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	jwtpkg "github.com/rahmasleam/NexusMenaV2/internal/pkg/jwt"
)

const DefaultTTL = 30 * 24 * time.Hour

var ErrNotFound = errors.New("session not found")

// Session is one signed-in device for a user. Sessions live in process
// memory; restarting the server signs everyone out.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	IP        string    `json:"ip,omitempty"`
	UA        string    `json:"ua,omitempty"`
	CreatedAt time.Time `json:"created"`
	SeenAt    time.Time `json:"seenAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Registry tracks active sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Issue registers a session and signs a JWT bound to it.
func (r *Registry) Issue(userID, ip, ua string, ttl time.Duration) (string, *Session, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	now := time.Now()
	s := &Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		IP:        strings.TrimSpace(ip),
		UA:        strings.TrimSpace(ua),
		CreatedAt: now,
		SeenAt:    now,
		ExpiresAt: now.Add(ttl),
	}

	token, err := jwtpkg.SignSession(userID, s.ID, ttl)
	if err != nil {
		return "", nil, err
	}

	r.mu.Lock()
	r.sessions[s.ID] = s
	r.mu.Unlock()
	return token, s, nil
}

// IsActive reports whether the session is known and unexpired.
// An empty session id is accepted for tokens issued without one.
func (r *Registry) IsActive(userID, sessionID string) bool {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return true
	}

	r.mu.RLock()
	s, ok := r.sessions[sessionID]
	r.mu.RUnlock()
	return ok && s.UserID == userID && time.Now().Before(s.ExpiresAt)
}

// Touch updates the last-seen time of a session.
func (r *Registry) Touch(userID, sessionID string) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return
	}
	r.mu.Lock()
	if s, ok := r.sessions[sessionID]; ok && s.UserID == userID {
		s.SeenAt = time.Now()
	}
	r.mu.Unlock()
}

// ListActive returns the live sessions for a user, most recent first.
func (r *Registry) ListActive(userID string) []*Session {
	now := time.Now()
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Session
	for _, s := range r.sessions {
		if s.UserID == userID && now.Before(s.ExpiresAt) {
			out = append(out, s)
		}
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].SeenAt.After(out[j-1].SeenAt); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// Revoke removes a session.
func (r *Registry) Revoke(userID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return ErrNotFound
	}
	delete(r.sessions, sessionID)
	return nil
}

// RevokeAllExcept removes every session of a user except one.
func (r *Registry) RevokeAllExcept(userID, keepSessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, s := range r.sessions {
		if s.UserID == userID && id != strings.TrimSpace(keepSessionID) {
			delete(r.sessions, id)
		}
	}
}
