package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-entryform/pkg/controller"
	"github.com/goliatone/go-entryform/pkg/render"
)

// sessionStore keeps one controller per browser tab and drops idle ones.
type sessionStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry
	factory render.Factory
	idleTTL time.Duration
	now     func() time.Time
	logger  *zap.Logger
	closed  bool
}

type sessionEntry struct {
	ctrl     *controller.Controller
	lastSeen time.Time
}

func newSessionStore(factory render.Factory, idleTTL time.Duration, now func() time.Time, logger *zap.Logger) *sessionStore {
	return &sessionStore{
		entries: make(map[string]*sessionEntry),
		factory: factory,
		idleTTL: idleTTL,
		now:     now,
		logger:  logger,
	}
}

// Lookup returns the controller for id, creating a session with a fresh id
// when id is unknown or malformed. The returned id is the one to set on the
// cookie.
func (s *sessionStore) Lookup(ctx context.Context, id string) (string, *controller.Controller, error) {
	if _, err := uuid.Parse(id); err == nil {
		s.mu.Lock()
		if ent, ok := s.entries[id]; ok {
			ent.lastSeen = s.now()
			s.mu.Unlock()
			return id, ent.ctrl, nil
		}
		s.mu.Unlock()
	}

	ctrl, err := s.factory(ctx)
	if err != nil {
		return "", nil, err
	}
	id = uuid.NewString()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = ctrl.Close()
		return "", nil, errStoreClosed
	}
	s.entries[id] = &sessionEntry{ctrl: ctrl, lastSeen: s.now()}
	count := len(s.entries)
	s.mu.Unlock()

	s.logger.Debug("session created", zap.String("session", id), zap.Int("sessions", count))
	return id, ctrl, nil
}

// Len reports the number of live sessions.
func (s *sessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Cleanup closes and removes sessions idle for longer than the TTL.
func (s *sessionStore) Cleanup() int {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	var expired []*controller.Controller
	for id, ent := range s.entries {
		if ent.lastSeen.Before(cutoff) {
			expired = append(expired, ent.ctrl)
			delete(s.entries, id)
		}
	}
	s.mu.Unlock()

	for _, ctrl := range expired {
		_ = ctrl.Close()
	}
	if len(expired) > 0 {
		s.logger.Debug("sessions expired", zap.Int("count", len(expired)))
	}
	return len(expired)
}

// Janitor runs Cleanup every period until ctx ends.
func (s *sessionStore) Janitor(ctx context.Context, every time.Duration) {
	if every <= 0 {
		<-ctx.Done()
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.Cleanup()
		}
	}
}

// Close closes every controller; later lookups fail.
func (s *sessionStore) Close() {
	s.mu.Lock()
	s.closed = true
	entries := s.entries
	s.entries = make(map[string]*sessionEntry)
	s.mu.Unlock()

	for _, ent := range entries {
		_ = ent.ctrl.Close()
	}
}
