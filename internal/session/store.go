package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie carrying the session ID.
const CookieName = "costmeter_session"

// Store holds every live session in memory.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idle     time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewStore creates a store whose sessions expire after idle without traffic.
func NewStore(idle time.Duration, logger *slog.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		idle:     idle,
		now:      time.Now,
		logger:   logger,
	}
}

// Get returns the session with id and refreshes its idle timer.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if ok {
		s.touch(st.now())
	}
	return s, ok
}

// Create starts a new session with default form values.
func (st *Store) Create() *Session {
	s := newSession(uuid.NewString(), st.now())

	st.mu.Lock()
	st.sessions[s.id] = s
	st.mu.Unlock()

	return s
}

// Delete tears a session down, abandoning its outstanding forecast.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if ok {
		s.close()
	}
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle for longer than the store's idle timeout.
// Sessions with a forecast in flight are kept.
func (st *Store) Sweep(ctx context.Context) error {
	now := st.now()

	st.mu.Lock()
	var expired []*Session
	for id, s := range st.sessions {
		if err := ctx.Err(); err != nil {
			st.mu.Unlock()
			return err
		}
		if s.InFlight() || s.idleSince(now) <= st.idle {
			continue
		}
		delete(st.sessions, id)
		expired = append(expired, s)
	}
	remaining := len(st.sessions)
	st.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	if len(expired) > 0 {
		st.logger.Info("expired idle sessions", "expired", len(expired), "remaining", remaining)
	}
	return nil
}

type contextKey string

const sessionKey contextKey = "session"

// Middleware loads the caller's session from its cookie, creating one when
// the cookie is missing or stale.
func (st *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var s *Session
		if c, err := r.Cookie(CookieName); err == nil {
			s, _ = st.Get(c.Value)
		}
		if s == nil {
			s = st.Create()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    s.ID(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// WithSession stores s in ctx.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

// FromContext returns the session stored by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}
