package service

import (
	"context"
	"fmt"

	"github.com/finecut/platform/internal/config"
	"github.com/finecut/platform/internal/domain/cart"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// PricingResult is the output of one pricing pass. ValidationErrors are
// non-fatal: prices are computed regardless and the caller decides whether
// to block on them.
type PricingResult struct {
	Items            []cart.PricedItem `json:"items"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	ValidationErrors []string          `json:"validation_errors"`
}

// PricingService computes unit prices and discounts for cart line items
// under the two concurrent pricing regimes.
//
// Standard-tier items are priced as a group: their combined quantity
// resolves one unit price from the standard ladder which applies to every
// standard line regardless of each item's own base price. Premium-tier items
// are priced independently: each item's own quantity resolves a percentage
// discount off its own base price. Untiered items sell at base price.
type PricingService interface {
	Price(ctx context.Context, items []cart.Item) (*PricingResult, error)
}

type pricingService struct {
	ladders TierLadderLoader
	cfg     *config.Configuration
	logger  *logger.Logger
}

// NewPricingService creates a new pricing service
func NewPricingService(ladders TierLadderLoader, cfg *config.Configuration, logger *logger.Logger) PricingService {
	return &pricingService{
		ladders: ladders,
		cfg:     cfg,
		logger:  logger,
	}
}

// Price computes prices for every supplied item. Each input item appears in
// the output exactly once, in input order. Zero-quantity items are permitted
// (curated display lines): they price to a zero line total and are excluded
// from the standard-tier combined quantity.
func (s *pricingService) Price(ctx context.Context, items []cart.Item) (*PricingResult, error) {
	result := &PricingResult{
		Items:            make([]cart.PricedItem, 0, len(items)),
		Subtotal:         decimal.Zero,
		ValidationErrors: []string{},
	}

	if len(items) == 0 {
		return result, nil
	}

	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	// Configuration load failure is fatal: wrong prices risk revenue
	ladders, err := s.ladders.GetLadders(ctx)
	if err != nil {
		return nil, err
	}

	var standardTotalQty int64
	for _, item := range items {
		if item.Tier == types.PricingTierStandard && item.Quantity > 0 {
			standardTotalQty += item.Quantity
		}
		result.ValidationErrors = append(result.ValidationErrors, s.validateMaxQuantity(item)...)
	}

	// One resolved unit price covers every standard line in the cart
	var standardUnitPrice decimal.Decimal
	var standardNote string
	if standardTotalQty > 0 {
		tier := ladders.Standard.TierFor(standardTotalQty)
		standardUnitPrice = tier.UnitPrice
		standardNote = fmt.Sprintf("Volume pricing: %d units combined at %s each",
			standardTotalQty, tier.UnitPrice.StringFixed(2))
	}

	for _, item := range items {
		priced := cart.PricedItem{Item: item}

		switch {
		case item.Quantity == 0:
			// display-only line, never tiered
			priced.UnitPrice = item.BasePrice
			priced.LineTotal = decimal.Zero

		case item.Tier == types.PricingTierStandard:
			priced.UnitPrice = standardUnitPrice
			priced.DiscountApplied = standardNote

		case item.Tier == types.PricingTierPremium:
			tier := ladders.Premium.TierFor(item.Quantity)
			discount := tier.DiscountPercent
			priced.UnitPrice = item.BasePrice.
				Mul(decimal.NewFromInt(1).Sub(discount)).
				Round(types.GetCurrencyPrecision(ladders.Premium.Currency))
			if discount.IsPositive() {
				priced.DiscountApplied = fmt.Sprintf("%s%% volume discount",
					discount.Mul(decimal.NewFromInt(100)).String())
			}

		default:
			priced.UnitPrice = item.BasePrice
		}

		if item.Quantity > 0 {
			priced.LineTotal = priced.UnitPrice.Mul(decimal.NewFromInt(item.Quantity))
		}

		result.Items = append(result.Items, priced)
		result.Subtotal = result.Subtotal.Add(priced.LineTotal)
	}

	s.logger.Debugw("priced cart",
		"items", len(result.Items),
		"standard_total_qty", standardTotalQty,
		"subtotal", result.Subtotal.String(),
		"validation_errors", len(result.ValidationErrors),
	)

	return result, nil
}

// validateMaxQuantity checks an item against the per-SKU quantity cap for
// its tier. Violations are reported, never enforced: pricing proceeds and
// the caller decides whether to block.
func (s *pricingService) validateMaxQuantity(item cart.Item) []string {
	var max int
	switch item.Tier {
	case types.PricingTierStandard:
		max = s.cfg.Pricing.MaxQuantityStandard
	case types.PricingTierPremium:
		max = s.cfg.Pricing.MaxQuantityPremium
	default:
		return nil
	}

	if item.Quantity > int64(max) {
		return []string{fmt.Sprintf("%s: Maximum %d units per SKU (you have %d)",
			item.ProductCode, max, item.Quantity)}
	}
	return nil
}
