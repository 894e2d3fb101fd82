package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName carries the session token between requests.
const CookieName = "pdv_session"

// Session is the per-login state created by a successful authenticate and
// destroyed on logout. Every handler receives it through the request context
// instead of ambient globals.
type Session struct {
	Token        string    `json:"-"`
	Usuario      string    `json:"usuario"`
	Role         string    `json:"role"`
	NomeExibicao string    `json:"nomeExibicao"`
	ExpiresAt    time.Time `json:"-"`
}

type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

func (s *SessionStore) Create(usuario, role, nomeExibicao string) Session {
	sess := Session{
		Token:        uuid.NewString(),
		Usuario:      usuario,
		Role:         role,
		NomeExibicao: nomeExibicao,
		ExpiresAt:    s.now().Add(s.ttl),
	}
	s.mu.Lock()
	s.sessions[sess.Token] = sess
	s.mu.Unlock()
	return sess
}

func (s *SessionStore) Get(token string) (Session, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		s.Destroy(token)
		return Session{}, false
	}
	return sess, true
}

func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

type contextKey struct{}

// FromContext returns the session attached by RequireAuth.
func FromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(contextKey{}).(Session)
	return sess, ok
}

func withSession(r *http.Request, sess Session) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), contextKey{}, sess))
}
