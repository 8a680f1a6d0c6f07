package testutil

import (
	"context"
	"sync"

	"github.com/finecut/platform/internal/domain/engagement"
	ierr "github.com/finecut/platform/internal/errors"
)

// InMemoryEngagementStore implements engagement.Repository
type InMemoryEngagementStore struct {
	mu     sync.RWMutex
	events []*engagement.Event
}

// NewInMemoryEngagementStore creates a new in-memory engagement event store
func NewInMemoryEngagementStore() *InMemoryEngagementStore {
	return &InMemoryEngagementStore{}
}

func (s *InMemoryEngagementStore) Insert(ctx context.Context, e *engagement.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// unique constraint on idempotency_key
	for _, existing := range s.events {
		if existing.IdempotencyKey == e.IdempotencyKey {
			return ierr.NewError("duplicate idempotency key").
				WithHint("An event with this idempotency key already exists").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	cp := *e
	s.events = append(s.events, &cp)
	return nil
}

// Events returns all recorded events
func (s *InMemoryEngagementStore) Events() []*engagement.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*engagement.Event, len(s.events))
	copy(result, s.events)
	return result
}
