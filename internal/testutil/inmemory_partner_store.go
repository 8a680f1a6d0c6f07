package testutil

import (
	"context"
	"sync"

	"github.com/finecut/platform/internal/domain/partner"
	ierr "github.com/finecut/platform/internal/errors"
)

// InMemoryPartnerStore implements partner.Repository
type InMemoryPartnerStore struct {
	mu           sync.RWMutex
	associations []*partner.Association
}

// NewInMemoryPartnerStore creates a new in-memory partner association store
func NewInMemoryPartnerStore() *InMemoryPartnerStore {
	return &InMemoryPartnerStore{}
}

// AddAssociation seeds an association for tests
func (s *InMemoryPartnerStore) AddAssociation(assoc *partner.Association) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *assoc
	s.associations = append(s.associations, &cp)
}

func (s *InMemoryPartnerStore) GetActiveByCompanyID(ctx context.Context, companyID string) (*partner.Association, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, assoc := range s.associations {
		if assoc.CompanyID == companyID && assoc.Active {
			cp := *assoc
			return &cp, nil
		}
	}
	return nil, ierr.NewError("no active partner association").
		WithHint("Company has no distributor").
		Mark(ierr.ErrNotFound)
}
