package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"hoshin-matrix/internal/helper"
	"hoshin-matrix/internal/hoshin"
	"hoshin-matrix/internal/manual"
	"hoshin-matrix/internal/models"

	"github.com/rs/zerolog/log"
)

const sessionCookie = "hoshin_session"

// Session is the state of one browser session. Handlers hold its lock for the
// whole interaction.
type Session struct {
	sync.Mutex

	ID         string
	Mode       models.Mode
	Inputs     models.Inputs
	Report     *hoshin.Report
	Plan       manual.Plan
	Selections manual.Selections

	// guarded by the store lock
	lastUsed time.Time
}

// SessionStore keeps sessions in memory and forgets them after ttl of
// inactivity. A ttl <= 0 keeps them forever.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session), ttl: ttl}
}

func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		sess.lastUsed = time.Now()
	}
	return sess, ok
}

func (s *SessionStore) Create() (*Session, error) {
	id, err := helper.GenerateUUID()
	if err != nil {
		return nil, err
	}
	sess := &Session{ID: id, Mode: models.ModeAutomatic, Selections: manual.Selections{}, lastUsed: time.Now()}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return sess, nil
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep drops the sessions idle for longer than the ttl at now and returns
// how many were dropped.
func (s *SessionStore) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		if now.Sub(sess.lastUsed) > s.ttl {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps periodically until ctx is done.
func (s *SessionStore) Run(ctx context.Context) {
	if s.ttl <= 0 {
		return
	}
	interval := s.ttl / 2
	if interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := s.Sweep(now); n > 0 {
				log.Debug().Int("expired", n).Int("active", s.Len()).Msg("Swept idle sessions")
			}
		}
	}
}

// session returns the caller's session, creating it and setting the cookie
// when the request carries none or an unknown one.
func (s *HTTPServer) session(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions.Get(c.Value); ok {
			return sess, nil
		}
	}
	sess, err := s.sessions.Create()
	if err != nil {
		return nil, err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess, nil
}
