package cart

import (
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// Item is a single line submitted by a quote or invoice builder.
// Items are ephemeral: they are constructed per pricing request and never
// persisted as such.
type Item struct {
	ProductCode string            `json:"product_code"`
	Quantity    int64             `json:"quantity"`
	Tier        types.PricingTier `json:"tier,omitempty"`
	ProductType types.ProductType `json:"product_type,omitempty"`
	BasePrice   decimal.Decimal   `json:"base_price"`
}

func (i Item) Validate() error {
	if i.ProductCode == "" {
		return ierr.NewError("product_code is required").
			WithHint("Each cart item must have a product code").
			Mark(ierr.ErrValidation)
	}
	if i.Quantity < 0 {
		return ierr.NewError("quantity must not be negative").
			WithHintf("Item %s has quantity %d", i.ProductCode, i.Quantity).
			Mark(ierr.ErrValidation)
	}
	if i.BasePrice.IsNegative() {
		return ierr.NewError("base_price must not be negative").
			WithHintf("Item %s has base price %s", i.ProductCode, i.BasePrice.String()).
			Mark(ierr.ErrValidation)
	}
	return i.Tier.Validate()
}

// PricedItem is an Item with its resolved unit price and line total attached.
// Output only; consumed by invoice creation.
type PricedItem struct {
	Item
	UnitPrice       decimal.Decimal `json:"unit_price"`
	LineTotal       decimal.Decimal `json:"line_total"`
	DiscountApplied string          `json:"discount_applied,omitempty"`
}
