package testutil

import (
	"context"
	"sync"

	"github.com/finecut/platform/internal/domain/order"
	ierr "github.com/finecut/platform/internal/errors"
)

// InMemoryOrderStore implements order.Repository
type InMemoryOrderStore struct {
	mu     sync.RWMutex
	orders map[string]*order.Order
}

// NewInMemoryOrderStore creates a new in-memory legacy order store
func NewInMemoryOrderStore() *InMemoryOrderStore {
	return &InMemoryOrderStore{
		orders: make(map[string]*order.Order),
	}
}

func (s *InMemoryOrderStore) Create(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.orders {
		if existing.ProviderRef == o.ProviderRef {
			return ierr.NewError("duplicate provider ref").
				WithHint("An order already exists for this provider reference").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

func (s *InMemoryOrderStore) GetByProviderRef(ctx context.Context, providerRef string) (*order.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.orders {
		if o.ProviderRef == providerRef {
			cp := *o
			return &cp, nil
		}
	}
	return nil, ierr.NewError("order not found").
		WithHint("No order for this provider reference").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryOrderStore) Update(ctx context.Context, o *order.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[o.ID]; !exists {
		return ierr.NewError("order not found").
			WithHint("Order not found").
			Mark(ierr.ErrNotFound)
	}
	cp := *o
	s.orders[o.ID] = &cp
	return nil
}

// Count returns the number of stored orders
func (s *InMemoryOrderStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
