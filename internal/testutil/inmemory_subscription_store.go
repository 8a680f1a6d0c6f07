package testutil

import (
	"context"
	"sync"

	"github.com/finecut/platform/internal/domain/subscription"
	ierr "github.com/finecut/platform/internal/errors"
)

// InMemorySubscriptionStore implements subscription.Repository
type InMemorySubscriptionStore struct {
	mu            sync.RWMutex
	subscriptions map[string]*subscription.Subscription
	events        []*subscription.Event
}

// NewInMemorySubscriptionStore creates a new in-memory subscription store
func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		subscriptions: make(map[string]*subscription.Subscription),
	}
}

func copySubscription(sub *subscription.Subscription) *subscription.Subscription {
	if sub == nil {
		return nil
	}
	cp := *sub
	return &cp
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.subscriptions {
		if existing.ProviderSubscriptionID == sub.ProviderSubscriptionID {
			return ierr.NewError("duplicate provider subscription id").
				WithHint("A subscription already exists for this provider subscription").
				Mark(ierr.ErrAlreadyExists)
		}
	}
	s.subscriptions[sub.ID] = copySubscription(sub)
	return nil
}

func (s *InMemorySubscriptionStore) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, exists := s.subscriptions[id]
	if !exists {
		return nil, ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			Mark(ierr.ErrNotFound)
	}
	return copySubscription(sub), nil
}

func (s *InMemorySubscriptionStore) GetByProviderSubscriptionID(ctx context.Context, providerSubscriptionID string) (*subscription.Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, sub := range s.subscriptions {
		if sub.ProviderSubscriptionID == providerSubscriptionID {
			return copySubscription(sub), nil
		}
	}
	return nil, ierr.NewError("subscription not found").
		WithHint("No subscription for this provider subscription").
		Mark(ierr.ErrNotFound)
}

func (s *InMemorySubscriptionStore) Update(ctx context.Context, sub *subscription.Subscription) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[sub.ID]; !exists {
		return ierr.NewError("subscription not found").
			WithHint("Subscription not found").
			Mark(ierr.ErrNotFound)
	}
	s.subscriptions[sub.ID] = copySubscription(sub)
	return nil
}

func (s *InMemorySubscriptionStore) CreateEvent(ctx context.Context, event *subscription.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	eventCopy := *event
	s.events = append(s.events, &eventCopy)
	return nil
}

func (s *InMemorySubscriptionStore) ListEvents(ctx context.Context, subscriptionID string) ([]*subscription.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*subscription.Event
	for _, event := range s.events {
		if event.SubscriptionID == subscriptionID {
			eventCopy := *event
			result = append(result, &eventCopy)
		}
	}
	return result, nil
}
