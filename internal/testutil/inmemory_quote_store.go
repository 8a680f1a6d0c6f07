package testutil

import (
	"context"
	"sync"

	"github.com/finecut/platform/internal/domain/quote"
	ierr "github.com/finecut/platform/internal/errors"
)

// InMemoryQuoteStore implements quote.Repository
type InMemoryQuoteStore struct {
	mu     sync.RWMutex
	quotes map[string]*quote.Quote
}

// NewInMemoryQuoteStore creates a new in-memory quote store
func NewInMemoryQuoteStore() *InMemoryQuoteStore {
	return &InMemoryQuoteStore{
		quotes: make(map[string]*quote.Quote),
	}
}

// AddQuote seeds a quote for tests
func (s *InMemoryQuoteStore) AddQuote(q *quote.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *q
	s.quotes[q.ID] = &cp
}

func (s *InMemoryQuoteStore) Get(ctx context.Context, id string) (*quote.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, exists := s.quotes[id]
	if !exists {
		return nil, ierr.NewError("quote not found").
			WithHint("Quote not found").
			Mark(ierr.ErrNotFound)
	}
	cp := *q
	return &cp, nil
}

func (s *InMemoryQuoteStore) Update(ctx context.Context, q *quote.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.quotes[q.ID]; !exists {
		return ierr.NewError("quote not found").
			WithHint("Quote not found").
			Mark(ierr.ErrNotFound)
	}
	cp := *q
	s.quotes[q.ID] = &cp
	return nil
}
