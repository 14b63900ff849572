package session

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-BookingPortal/internal/flow"
)

// MemoryStore keeps drafts in process memory. Drafts are lost on restart and expire
// ttl after their last save.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu     sync.Mutex
	drafts map[string]memoryEntry
}

type memoryEntry struct {
	draft     flow.Draft
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, now: time.Now, drafts: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Load(ctx context.Context, id string) (flow.Draft, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.drafts[id]
	if !ok {
		return flow.Draft{}, false, nil
	}
	if s.ttl > 0 && !s.now().Before(entry.expiresAt) {
		delete(s.drafts, id)
		return flow.Draft{}, false, nil
	}
	return flow.Restore(entry.draft).Draft(), true, nil
}

func (s *MemoryStore) Save(ctx context.Context, id string, d flow.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.drafts[id] = memoryEntry{draft: flow.Restore(d).Draft(), expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.drafts, id)
	return nil
}

// Sweep drops expired drafts and returns how many were removed.
func (s *MemoryStore) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, entry := range s.drafts {
		if !now.Before(entry.expiresAt) {
			delete(s.drafts, id)
			removed++
		}
	}
	return removed
}
