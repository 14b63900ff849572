package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BookingPortal/internal/flow"
	"github.com/m04kA/SMC-BookingPortal/internal/slots"
)

// Manager hands out per-session handles. Draft updates of one session are serialized.
// Upstream calls run on a Snapshot outside Update, and the Update callback re-checks the
// draft before writing.
type Manager struct {
	store   DraftStore
	fetcher slots.Fetcher
	log     Logger
	metrics slots.Metrics
	idleTTL time.Duration

	locks *keyedMutex

	mu      sync.Mutex
	pickers map[string]*pickerEntry
}

type pickerEntry struct {
	picker   *slots.Picker
	lastUsed time.Time
}

// NewManager creates a manager. Slot pickers live in process memory even when store is
// shared, so a load and the select that follows must reach the same instance. Pickers are
// dropped after idleTTL without use. m may be nil.
func NewManager(store DraftStore, fetcher slots.Fetcher, idleTTL time.Duration, log Logger, m slots.Metrics) *Manager {
	return &Manager{
		store:   store,
		fetcher: fetcher,
		log:     log,
		metrics: m,
		idleTTL: idleTTL,
		locks:   newKeyedMutex(),
		pickers: make(map[string]*pickerEntry),
	}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id has the form NewID produces.
func ValidID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.Version() == 4
}

// Open returns the handle of session id.
func (m *Manager) Open(id string) (*Handle, error) {
	if !ValidID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return &Handle{id: id, m: m}, nil
}

// Sweep drops slot pickers idle since before now-idleTTL and returns how many were dropped.
func (m *Manager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, entry := range m.pickers {
		if now.Sub(entry.lastUsed) >= m.idleTTL {
			delete(m.pickers, id)
			removed++
		}
	}
	return removed
}

func (m *Manager) picker(id string) *slots.Picker {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.pickers[id]
	if !ok {
		entry = &pickerEntry{picker: slots.NewPicker(m.fetcher, m.log, m.metrics)}
		m.pickers[id] = entry
	}
	entry.lastUsed = time.Now()
	return entry.picker
}

func (m *Manager) dropPicker(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pickers, id)
}

// Handle is one session's view of the manager.
type Handle struct {
	id string
	m  *Manager
}

func (h *Handle) ID() string {
	return h.id
}

// Snapshot returns the session's draft, the empty draft for a new session.
func (h *Handle) Snapshot(ctx context.Context) (flow.Draft, error) {
	d, _, err := h.m.store.Load(ctx, h.id)
	if err != nil {
		return flow.Draft{}, err
	}
	return d, nil
}

// Update runs fn on the session's store while holding the session lock and saves the result.
// Nothing is saved when fn fails. An update that leaves the draft empty deletes it.
func (h *Handle) Update(ctx context.Context, fn func(s *flow.Store) error) (flow.Draft, error) {
	unlock := h.m.locks.Lock(h.id)
	defer unlock()

	current, _, err := h.m.store.Load(ctx, h.id)
	if err != nil {
		return flow.Draft{}, err
	}

	store := flow.Restore(current)
	if err := fn(store); err != nil {
		return flow.Draft{}, err
	}

	next := store.Draft()
	if next.IsEmpty() {
		if err := h.m.store.Delete(ctx, h.id); err != nil {
			return flow.Draft{}, err
		}
		return next, nil
	}

	if err := h.m.store.Save(ctx, h.id, next); err != nil {
		return flow.Draft{}, err
	}
	return next, nil
}

// Picker returns the session's slot picker.
func (h *Handle) Picker() *slots.Picker {
	return h.m.picker(h.id)
}

// Forget drops the session's in-memory slot state.
func (h *Handle) Forget() {
	h.m.dropPicker(h.id)
}
