package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gbelpiede/cx-ai-agent-prototype/internal/domain"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/observability/telemetry"
	"github.com/gbelpiede/cx-ai-agent-prototype/internal/ports"
)

type entry struct {
	sess      *domain.Session
	expiresAt time.Time
}

// Store keeps live sessions in an in-memory map with periodic cleanup.
// Sessions are deliberately process-local: a restart logs everyone out.
type Store struct {
	data   map[string]entry
	ttl    time.Duration
	mu     sync.RWMutex
	log    *zap.Logger
	stopCh chan struct{}
}

// NewStore creates an in-memory session store with a background sweep.
func NewStore(ttl, cleanupInterval time.Duration, log *zap.Logger) ports.SessionStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}

	s := &Store{
		data:   make(map[string]entry),
		ttl:    ttl,
		log:    log,
		stopCh: make(chan struct{}),
	}

	go s.cleanupLoop(cleanupInterval)

	log.Info("In-memory session store initialized",
		zap.Duration("ttl", ttl),
		zap.Duration("cleanup_interval", cleanupInterval),
	)
	return s
}

// Put stores a private copy of the session, so the caller keeps no live
// reference into the store.
func (s *Store) Put(sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *sess
	s.data[sess.ID] = entry{sess: &cp, expiresAt: time.Now().Add(s.ttl)}
	telemetry.ActiveSessions.Set(float64(len(s.data)))
}

// Get resolves a session and slides its expiry forward. It hands out a
// detached copy; concurrent requests never share a session struct.
func (s *Store) Get(id string) (*domain.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, false
	}
	if e.expiresAt.Before(time.Now()) {
		delete(s.data, id)
		telemetry.ActiveSessions.Set(float64(len(s.data)))
		return nil, false
	}

	e.expiresAt = time.Now().Add(s.ttl)
	s.data[id] = e

	cp := *e.sess
	return &cp, true
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	telemetry.ActiveSessions.Set(float64(len(s.data)))
}

func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *Store) Close() {
	close(s.stopCh)
}

func (s *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	expired := 0
	for id, e := range s.data {
		if e.expiresAt.Before(now) {
			delete(s.data, id)
			expired++
		}
	}

	if expired > 0 {
		telemetry.ActiveSessions.Set(float64(len(s.data)))
		s.log.Debug("Session cleanup completed", zap.Int("expired_sessions", expired))
	}
}
