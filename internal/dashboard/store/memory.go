package store

import (
	"context"
	"sync"
	"time"

	"github.com/shandysiswandi/sheetboard/internal/dashboard/entity"
	"github.com/shandysiswandi/sheetboard/internal/pkg/pkgerror"
)

// InMemoryStore keeps one SessionState per session id. Sessions idle for
// longer than ttl are removed by Sweep; a non-positive ttl keeps them forever.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*sessionRecord
	ttl      time.Duration
	now      func() time.Time
}

type sessionRecord struct {
	mu       sync.Mutex
	state    entity.SessionState
	lastSeen time.Time
	deleted  bool
}

func NewInMemoryStore(ttl time.Duration) *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]*sessionRecord),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *InMemoryStore) Get(ctx context.Context, sessionID string) (entity.SessionState, error) {
	rec, err := s.get(sessionID)
	if err != nil {
		return entity.SessionState{}, err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	if rec.deleted {
		return entity.SessionState{}, pkgerror.ErrNotFound
	}
	rec.lastSeen = s.now()

	return rec.state, nil
}

// Update runs fn on the current state under the session lock and stores its
// result. A missing session starts from the zero state. When fn fails the
// stored state is left untouched.
func (s *InMemoryStore) Update(ctx context.Context, sessionID string, fn func(state entity.SessionState) (entity.SessionState, error)) (entity.SessionState, error) {
	for {
		rec := s.getOrCreate(sessionID)

		rec.mu.Lock()
		if rec.deleted {
			rec.mu.Unlock()
			continue
		}

		next, err := fn(rec.state)
		if err != nil {
			rec.mu.Unlock()
			return entity.SessionState{}, err
		}

		rec.state = next
		rec.lastSeen = s.now()
		rec.mu.Unlock()

		return next, nil
	}
}

func (s *InMemoryStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	rec, ok := s.sessions[sessionID]
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	if !ok {
		return pkgerror.ErrNotFound
	}

	rec.mu.Lock()
	rec.deleted = true
	rec.mu.Unlock()

	return nil
}

// Sweep removes the sessions idle since before now-ttl and returns how many it removed.
func (s *InMemoryStore) Sweep(now time.Time) int {
	if s.ttl <= 0 {
		return 0
	}

	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, rec := range s.sessions {
		// A locked record is being updated right now, so it is not idle.
		if !rec.mu.TryLock() {
			continue
		}
		if rec.lastSeen.Before(cutoff) {
			rec.deleted = true
			delete(s.sessions, id)
			removed++
		}
		rec.mu.Unlock()
	}

	return removed
}

// Len returns the number of live sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.sessions)
}

func (s *InMemoryStore) get(sessionID string) (*sessionRecord, error) {
	s.mu.RLock()
	rec, ok := s.sessions[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}

func (s *InMemoryStore) getOrCreate(sessionID string) *sessionRecord {
	if rec, err := s.get(sessionID); err == nil {
		return rec
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.sessions[sessionID]; ok {
		return rec
	}

	rec := &sessionRecord{lastSeen: s.now()}
	s.sessions[sessionID] = rec
	return rec
}
