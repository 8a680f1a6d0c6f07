package testutil

import (
	"context"
	"sync"

	"github.com/finecut/platform/internal/domain/invoice"
	ierr "github.com/finecut/platform/internal/errors"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	mu       sync.RWMutex
	invoices map[string]*invoice.Invoice
}

// NewInMemoryInvoiceStore creates a new in-memory invoice store
func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		invoices: make(map[string]*invoice.Invoice),
	}
}

func copyInvoice(inv *invoice.Invoice) *invoice.Invoice {
	if inv == nil {
		return nil
	}
	cp := *inv
	if len(inv.LineItems) > 0 {
		cp.LineItems = make([]*invoice.LineItem, len(inv.LineItems))
		for i, line := range inv.LineItems {
			lineCopy := *line
			cp.LineItems[i] = &lineCopy
		}
	}
	return &cp
}

func (s *InMemoryInvoiceStore) CreateWithLineItems(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID]; exists {
		return ierr.NewError("invoice already exists").
			WithHint("An invoice with this ID already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	for _, existing := range s.invoices {
		if inv.ProviderInvoiceID != nil && existing.ProviderInvoiceID != nil &&
			*inv.ProviderInvoiceID == *existing.ProviderInvoiceID {
			return ierr.NewError("duplicate provider invoice id").
				WithHint("An invoice already exists for this provider invoice").
				Mark(ierr.ErrAlreadyExists)
		}
		if inv.PaymentIntentID != nil && existing.PaymentIntentID != nil &&
			*inv.PaymentIntentID == *existing.PaymentIntentID {
			return ierr.NewError("duplicate payment intent id").
				WithHint("An invoice already exists for this payment intent").
				Mark(ierr.ErrAlreadyExists)
		}
	}

	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, exists := s.invoices[id]
	if !exists {
		return nil, ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	return copyInvoice(inv), nil
}

func (s *InMemoryInvoiceStore) GetByProviderInvoiceID(ctx context.Context, providerInvoiceID string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.ProviderInvoiceID != nil && *inv.ProviderInvoiceID == providerInvoiceID {
			return copyInvoice(inv), nil
		}
	}
	return nil, ierr.NewError("invoice not found").
		WithHint("No invoice for this provider invoice").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryInvoiceStore) GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*invoice.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inv := range s.invoices {
		if inv.PaymentIntentID != nil && *inv.PaymentIntentID == paymentIntentID {
			return copyInvoice(inv), nil
		}
	}
	return nil, ierr.NewError("invoice not found").
		WithHint("No invoice for this payment intent").
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.invoices[inv.ID]; !exists {
		return ierr.NewError("invoice not found").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound)
	}
	s.invoices[inv.ID] = copyInvoice(inv)
	return nil
}

// Count returns the number of stored invoices
func (s *InMemoryInvoiceStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.invoices)
}
