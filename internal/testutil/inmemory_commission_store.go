package testutil

import (
	"context"
	"sync"

	"github.com/finecut/platform/internal/domain/commission"
	ierr "github.com/finecut/platform/internal/errors"
)

// InMemoryCommissionStore implements commission.Repository
type InMemoryCommissionStore struct {
	mu          sync.RWMutex
	commissions map[string]*commission.Commission
}

// NewInMemoryCommissionStore creates a new in-memory commission store
func NewInMemoryCommissionStore() *InMemoryCommissionStore {
	return &InMemoryCommissionStore{
		commissions: make(map[string]*commission.Commission),
	}
}

func (s *InMemoryCommissionStore) Create(ctx context.Context, c *commission.Commission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// unique constraint on invoice_id
	for _, existing := range s.commissions {
		if existing.InvoiceID == c.InvoiceID {
			return ierr.NewError("duplicate commission for invoice").
				WithHint("A commission record already exists for this invoice").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	cp := *c
	s.commissions[c.ID] = &cp
	return nil
}

func (s *InMemoryCommissionStore) GetByInvoiceID(ctx context.Context, invoiceID string) (*commission.Commission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.commissions {
		if c.InvoiceID == invoiceID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ierr.NewError("commission not found").
		WithHint("No commission record for this invoice").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryCommissionStore) ExistsForInvoice(ctx context.Context, invoiceID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.commissions {
		if c.InvoiceID == invoiceID {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of stored commission records
func (s *InMemoryCommissionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.commissions)
}
