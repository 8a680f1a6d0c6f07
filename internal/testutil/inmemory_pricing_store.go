package testutil

import (
	"context"
	"sync"

	"github.com/finecut/platform/internal/domain/pricing"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryPricingStore implements pricing.Repository
type InMemoryPricingStore struct {
	mu      sync.RWMutex
	ladders *pricing.Ladders
	err     error
	loads   int
}

// NewInMemoryPricingStore creates a new in-memory tier ladder store seeded
// with the default test ladders
func NewInMemoryPricingStore() *InMemoryPricingStore {
	return &InMemoryPricingStore{
		ladders: DefaultTestLadders(),
	}
}

// DefaultTestLadders returns the ladders used across pricing tests: a
// standard ladder with descending unit prices and a premium ladder with two
// discount rungs.
func DefaultTestLadders() *pricing.Ladders {
	return &pricing.Ladders{
		Standard: &pricing.Ladder{
			Tier:     types.PricingTierStandard,
			Currency: "gbp",
			Tiers: []pricing.Tier{
				{MinQuantity: 1, MaxQuantity: lo.ToPtr(int64(3)), UnitPrice: decimal.NewFromInt(33)},
				{MinQuantity: 4, MaxQuantity: lo.ToPtr(int64(9)), UnitPrice: decimal.NewFromInt(30)},
				{MinQuantity: 10, MaxQuantity: lo.ToPtr(int64(19)), UnitPrice: decimal.NewFromInt(26)},
				{MinQuantity: 20, MaxQuantity: lo.ToPtr(int64(34)), UnitPrice: decimal.NewFromInt(23)},
				{MinQuantity: 35, MaxQuantity: nil, UnitPrice: decimal.NewFromInt(20)},
			},
		},
		Premium: &pricing.Ladder{
			Tier:     types.PricingTierPremium,
			Currency: "gbp",
			Tiers: []pricing.Tier{
				{MinQuantity: 1, MaxQuantity: lo.ToPtr(int64(4)), DiscountPercent: decimal.Zero},
				{MinQuantity: 5, MaxQuantity: lo.ToPtr(int64(9)), DiscountPercent: decimal.NewFromFloat(0.15)},
				{MinQuantity: 10, MaxQuantity: nil, DiscountPercent: decimal.NewFromFloat(0.25)},
			},
		},
	}
}

// SetLadders replaces the stored ladders
func (s *InMemoryPricingStore) SetLadders(ladders *pricing.Ladders) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ladders = ladders
}

// SetError makes every subsequent load fail, simulating an unavailable
// configuration store
func (s *InMemoryPricingStore) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Loads returns how many times GetLadders has been called
func (s *InMemoryPricingStore) Loads() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loads
}

func (s *InMemoryPricingStore) GetLadders(ctx context.Context) (*pricing.Ladders, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loads++
	if s.err != nil {
		return nil, s.err
	}
	if s.ladders == nil {
		return nil, ierr.NewError("no tier ladders configured").
			WithHint("Tier ladders are not configured").
			Mark(ierr.ErrNotFound)
	}
	return s.ladders, nil
}
