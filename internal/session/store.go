// Package session hosts calculator engines for remote keypads. Each session
// owns exactly one engine and serializes every key press applied to it.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go-chi-calculator/internal/calculator"
	"go-chi-calculator/internal/observability"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotFound        = errors.New("session not found")
	ErrTooManySessions = errors.New("too many sessions")
)

// Options bound the store.
type Options struct {
	IdleTimeout time.Duration // sessions untouched for this long are swept
	MaxSessions int
}

// Session is one calculator engine and the lock that makes it single-writer.
type Session struct {
	ID      string
	Created time.Time

	mu       sync.Mutex
	engine   *calculator.Engine
	lastUsed time.Time
	now      func() time.Time
}

// Press applies keys in order and returns the resulting state. Concurrent
// callers are serialized; each batch is applied without interleaving.
func (s *Session) Press(keys ...calculator.Key) calculator.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		s.engine.Press(k)
	}
	s.lastUsed = s.now()
	return s.engine.Snapshot()
}

// Snapshot returns the current state and counts as activity.
func (s *Session) Snapshot() calculator.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastUsed = s.now()
	return s.engine.Snapshot()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastUsed
}

// Store is an in-memory set of sessions keyed by UUID.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opts     Options
	now      func() time.Time
}

func NewStore(opts Options) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		opts:     opts,
		now:      time.Now,
	}
}

// Create starts a session with a cleared engine.
func (s *Store) Create(ctx context.Context) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		return nil, ErrTooManySessions
	}

	now := s.now()
	sess := &Session{
		ID:       uuid.NewString(),
		Created:  now,
		engine:   calculator.NewEngine(),
		lastUsed: now,
		now:      s.now,
	}
	s.sessions[sess.ID] = sess
	activeSessions.Add(ctx, 1)

	return sess, nil
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sess, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(s.sessions, id)
	activeSessions.Add(ctx, -1)
	return nil
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes sessions idle for longer than IdleTimeout and reports how
// many went. A zero IdleTimeout keeps everything.
func (s *Store) Sweep(ctx context.Context) int {
	if s.opts.IdleTimeout <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.opts.IdleTimeout)
	removed := 0
	for id, sess := range s.sessions {
		if sess.idleSince().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		activeSessions.Add(ctx, int64(-removed))
		sweptSessions.Add(ctx, int64(removed))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(ctx); n > 0 {
				observability.Logger.Info("idle sessions swept",
					zap.Int("removed", n),
					zap.Int("remaining", s.Len()),
				)
			}
		}
	}
}
