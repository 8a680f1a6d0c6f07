package service

import (
	"testing"

	"github.com/finecut/platform/internal/domain/cart"
	"github.com/finecut/platform/internal/domain/pricing"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/testutil"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PricingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PricingService
	loader  TierLadderLoader
}

func TestPricingService(t *testing.T) {
	suite.Run(t, new(PricingServiceSuite))
}

func (s *PricingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.loader = NewTierLadderLoader(
		s.GetStores().PricingRepo,
		s.GetCache(),
		s.GetConfig(),
		s.GetLogger(),
	)
	s.service = NewPricingService(s.loader, s.GetConfig(), s.GetLogger())
}

func (s *PricingServiceSuite) standardItem(code string, qty int64, basePrice float64) cart.Item {
	return cart.Item{
		ProductCode: code,
		Quantity:    qty,
		Tier:        types.PricingTierStandard,
		ProductType: types.ProductTypeConsumable,
		BasePrice:   decimal.NewFromFloat(basePrice),
	}
}

func (s *PricingServiceSuite) premiumItem(code string, qty int64, basePrice float64) cart.Item {
	return cart.Item{
		ProductCode: code,
		Quantity:    qty,
		Tier:        types.PricingTierPremium,
		ProductType: types.ProductTypeTool,
		BasePrice:   decimal.NewFromFloat(basePrice),
	}
}

func (s *PricingServiceSuite) TestStandardItemsPricedByCombinedQuantity() {
	result, err := s.service.Price(s.GetContext(), []cart.Item{
		s.standardItem("SPACER-01", 2, 33),
		s.standardItem("BLADE-SEAL-01", 1, 33),
	})
	s.NoError(err)
	s.Len(result.Items, 2)

	// combined quantity 3 stays inside the first rung
	s.True(result.Items[0].UnitPrice.Equal(decimal.NewFromInt(33)))
	s.True(result.Items[1].UnitPrice.Equal(decimal.NewFromInt(33)))
	s.True(result.Items[0].LineTotal.Equal(decimal.NewFromInt(66)))
	s.True(result.Items[1].LineTotal.Equal(decimal.NewFromInt(33)))
	s.True(result.Subtotal.Equal(decimal.NewFromInt(99)))
	s.Empty(result.ValidationErrors)
}

func (s *PricingServiceSuite) TestStandardCombinedQuantityReachesDeepestRung() {
	result, err := s.service.Price(s.GetContext(), []cart.Item{
		s.standardItem("RUBBER-01", 20, 40),
		s.standardItem("PLASTIC-01", 20, 40),
	})
	s.NoError(err)
	s.Len(result.Items, 2)

	// 40 combined units resolve the 35+ rung for every standard line,
	// regardless of each item's own base price
	s.True(result.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)))
	s.True(result.Items[1].UnitPrice.Equal(decimal.NewFromInt(20)))
	s.True(result.Subtotal.Equal(decimal.NewFromInt(800)))

	s.Len(result.ValidationErrors, 2)
	s.Contains(result.ValidationErrors, "RUBBER-01: Maximum 15 units per SKU (you have 20)")
	s.Contains(result.ValidationErrors, "PLASTIC-01: Maximum 15 units per SKU (you have 20)")
}

func (s *PricingServiceSuite) TestPremiumItemDiscountedPerSKU() {
	result, err := s.service.Price(s.GetContext(), []cart.Item{
		s.premiumItem("CK-001", 10, 59),
	})
	s.NoError(err)
	s.Len(result.Items, 1)

	s.True(result.Items[0].UnitPrice.Equal(decimal.NewFromFloat(44.25)),
		"expected 44.25, got %s", result.Items[0].UnitPrice)
	s.True(result.Items[0].LineTotal.Equal(decimal.NewFromFloat(442.50)))
	s.True(result.Subtotal.Equal(decimal.NewFromFloat(442.50)))
	s.Equal("25% volume discount", result.Items[0].DiscountApplied)
	s.Empty(result.ValidationErrors)
}

func (s *PricingServiceSuite) TestPremiumDiscountBoundaryAtMinQuantity() {
	result, err := s.service.Price(s.GetContext(), []cart.Item{
		s.premiumItem("MPB-001", 5, 79),
	})
	s.NoError(err)

	// quantity exactly at the rung's min_quantity earns that rung's discount
	s.True(result.Items[0].UnitPrice.Equal(decimal.NewFromFloat(67.15)),
		"expected 67.15, got %s", result.Items[0].UnitPrice)
	s.True(result.Items[0].LineTotal.Equal(decimal.NewFromFloat(335.75)))
	s.Equal("15% volume discount", result.Items[0].DiscountApplied)
}

func (s *PricingServiceSuite) TestPremiumQuantitiesDoNotCombine() {
	result, err := s.service.Price(s.GetContext(), []cart.Item{
		s.premiumItem("CK-001", 4, 59),
		s.premiumItem("MPB-001", 4, 79),
	})
	s.NoError(err)

	// 8 premium units across two SKUs, but each line's own quantity of 4
	// stays below the first discount rung
	s.True(result.Items[0].UnitPrice.Equal(decimal.NewFromInt(59)))
	s.True(result.Items[1].UnitPrice.Equal(decimal.NewFromInt(79)))
	s.Empty(result.Items[0].DiscountApplied)
	s.Empty(result.Items[1].DiscountApplied)
}

func (s *PricingServiceSuite) TestQuantityAboveBoundedLadderClampsToDeepestRung() {
	ladders := testutil.DefaultTestLadders()
	ladders.Standard.Tiers[len(ladders.Standard.Tiers)-1].MaxQuantity = lo.ToPtr(int64(50))
	s.GetStores().PricingRepo.SetLadders(ladders)

	result, err := s.service.Price(s.GetContext(), []cart.Item{
		s.standardItem("SPACER-01", 100, 33),
	})
	s.NoError(err)

	// beyond the top of the ladder the deepest rung still applies
	s.True(result.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)))
	s.True(result.Subtotal.Equal(decimal.NewFromInt(2000)))
	s.Len(result.ValidationErrors, 1)
}

func (s *PricingServiceSuite) TestZeroQuantityItemExcludedFromCombinedTotal() {
	result, err := s.service.Price(s.GetContext(), []cart.Item{
		s.standardItem("SPACER-01", 0, 33),
		s.standardItem("BLADE-SEAL-01", 4, 33),
	})
	s.NoError(err)
	s.Len(result.Items, 2)

	// display line prices at base with a zero total and does not push the
	// combined quantity into a deeper rung
	s.True(result.Items[0].UnitPrice.Equal(decimal.NewFromInt(33)))
	s.True(result.Items[0].LineTotal.Equal(decimal.Zero))
	s.True(result.Items[1].UnitPrice.Equal(decimal.NewFromInt(30)))
	s.True(result.Subtotal.Equal(decimal.NewFromInt(120)))
}

func (s *PricingServiceSuite) TestUntieredItemSellsAtBasePrice() {
	result, err := s.service.Price(s.GetContext(), []cart.Item{
		{
			ProductCode: "SHIM-KIT-01",
			Quantity:    3,
			BasePrice:   decimal.NewFromFloat(12.50),
		},
	})
	s.NoError(err)
	s.True(result.Items[0].UnitPrice.Equal(decimal.NewFromFloat(12.50)))
	s.True(result.Items[0].LineTotal.Equal(decimal.NewFromFloat(37.50)))
	s.Empty(result.ValidationErrors)
}

func (s *PricingServiceSuite) TestEmptyCartSkipsLadderLoad() {
	result, err := s.service.Price(s.GetContext(), []cart.Item{})
	s.NoError(err)
	s.Empty(result.Items)
	s.True(result.Subtotal.Equal(decimal.Zero))
	s.Zero(s.GetStores().PricingRepo.Loads())
}

func (s *PricingServiceSuite) TestInvalidItemRejected() {
	_, err := s.service.Price(s.GetContext(), []cart.Item{
		{ProductCode: "", Quantity: 1, BasePrice: decimal.NewFromInt(10)},
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}

func (s *PricingServiceSuite) TestLadderLoadFailureIsFatal() {
	s.GetStores().PricingRepo.SetError(
		ierr.NewError("connection refused").Mark(ierr.ErrDatabase))

	_, err := s.service.Price(s.GetContext(), []cart.Item{
		s.standardItem("SPACER-01", 1, 33),
	})
	s.Error(err)
	s.True(ierr.IsConfiguration(err))
}

func (s *PricingServiceSuite) TestLaddersServedFromCacheWithinTTL() {
	items := []cart.Item{s.standardItem("SPACER-01", 1, 33)}

	_, err := s.service.Price(s.GetContext(), items)
	s.NoError(err)
	_, err = s.service.Price(s.GetContext(), items)
	s.NoError(err)

	s.Equal(1, s.GetStores().PricingRepo.Loads())
}

func (s *PricingServiceSuite) TestForceRefreshReloadsLadders() {
	_, err := s.loader.GetLadders(s.GetContext())
	s.NoError(err)
	_, err = s.loader.ForceRefresh(s.GetContext())
	s.NoError(err)

	s.Equal(2, s.GetStores().PricingRepo.Loads())
}

func (s *PricingServiceSuite) TestMixedCartPricesEachRegimeIndependently() {
	result, err := s.service.Price(s.GetContext(), []cart.Item{
		s.standardItem("SPACER-01", 10, 33),
		s.premiumItem("CK-001", 10, 59),
	})
	s.NoError(err)
	s.Len(result.Items, 2)

	// standard resolves its rung from 10 combined units; premium from its own
	s.True(result.Items[0].UnitPrice.Equal(decimal.NewFromInt(26)))
	s.True(result.Items[1].UnitPrice.Equal(decimal.NewFromFloat(44.25)))
	s.True(result.Subtotal.Equal(decimal.NewFromFloat(702.50)))
}

func (s *PricingServiceSuite) TestIncompleteLadderConfigurationRejected() {
	s.GetStores().PricingRepo.SetLadders(&pricing.Ladders{
		Standard: testutil.DefaultTestLadders().Standard,
	})

	_, err := s.service.Price(s.GetContext(), []cart.Item{
		s.standardItem("SPACER-01", 1, 33),
	})
	s.Error(err)
	s.True(ierr.IsConfiguration(err))
}
