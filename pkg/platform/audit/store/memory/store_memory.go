package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "custodian/pkg/platform/audit"
	"custodian/pkg/platform/sentinel"
)

// InMemoryStore keeps the trail in a slice guarded by a single lock so the
// hash chain and sequence stay linear.
type InMemoryStore struct {
	mu       sync.RWMutex
	events   []audit.Event
	byID     map[uuid.UUID]int
	lastHash string
	clock    func() time.Time
}

// Option configures an InMemoryStore.
type Option func(*InMemoryStore)

// WithClock overrides time.Now for deterministic tests.
func WithClock(clock func() time.Time) Option {
	return func(s *InMemoryStore) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewInMemoryStore(opts ...Option) *InMemoryStore {
	s := &InMemoryStore{
		byID:  make(map[uuid.UUID]int),
		clock: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Clear drops every event. Test helper; production code never truncates the trail.
func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.byID = make(map[uuid.UUID]int)
	s.lastHash = ""
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) (audit.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := audit.Prepare(event, int64(len(s.events))+1, s.lastHash, s.clock())
	if _, dup := s.byID[stored.ID]; dup {
		return audit.Event{}, sentinel.ErrConflict
	}
	s.events = append(s.events, stored)
	s.byID[stored.ID] = len(s.events) - 1
	s.lastHash = stored.Hash
	return stored.Clone(), nil
}

func (s *InMemoryStore) Query(_ context.Context, filter audit.Filter) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]audit.Event, 0, len(s.events))
	for _, e := range s.events {
		if filter.Matches(e) {
			out = append(out, e.Clone())
		}
	}
	return out, nil
}

func (s *InMemoryStore) Amend(_ context.Context, eventID uuid.UUID, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx, ok := s.byID[eventID]
	if !ok {
		return sentinel.ErrNotFound
	}
	return s.amendAt(idx, errMsg)
}

// AmendLastMatching amends the most recent event for entityID and action.
// Prefer Amend: two in-flight failures for the same subject and action can
// otherwise downgrade each other's event.
func (s *InMemoryStore) AmendLastMatching(_ context.Context, entityID, action, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.events) - 1; i >= 0; i-- {
		if s.events[i].EntityID == entityID && s.events[i].Action == action {
			return s.amendAt(i, errMsg)
		}
	}
	return sentinel.ErrNotFound
}

func (s *InMemoryStore) amendAt(idx int, errMsg string) error {
	amended, err := audit.Amend(s.events[idx], errMsg, s.clock())
	if err != nil {
		return err
	}
	s.events[idx] = amended
	return nil
}

// Len returns the number of events in the trail.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}
