package types

import (
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/samber/lo"
)

// PricingTier is the pricing regime a product belongs to.
//
// Standard products are priced off the combined quantity of every standard
// item in the cart. Premium products each get a percentage discount keyed
// by their own quantity. Untiered products sell at base price.
type PricingTier string

const (
	PricingTierStandard PricingTier = "standard"
	PricingTierPremium  PricingTier = "premium"
	PricingTierNone     PricingTier = ""
)

func (t PricingTier) String() string {
	return string(t)
}

func (t PricingTier) Validate() error {
	allowed := []PricingTier{
		PricingTierStandard,
		PricingTierPremium,
		PricingTierNone,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid pricing tier").
			WithHint("Invalid pricing tier").
			WithReportableDetails(map[string]any{
				"tier":    t,
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// ProductType classifies products for commission rate purposes
type ProductType string

const (
	ProductTypeTool       ProductType = "tool"
	ProductTypeConsumable ProductType = "consumable"
	ProductTypeOther      ProductType = "other"
)

func (t ProductType) String() string {
	return string(t)
}
