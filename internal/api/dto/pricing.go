package dto

import (
	"github.com/finecut/platform/internal/domain/cart"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// PricingPreviewRequest asks for a priced rendition of a cart
type PricingPreviewRequest struct {
	Items []PricingItemRequest `json:"items" validate:"required,dive"`
}

// PricingItemRequest is one cart line in a pricing preview request
type PricingItemRequest struct {
	ProductCode string          `json:"product_code" validate:"required"`
	Quantity    int64           `json:"quantity" validate:"gte=0"`
	Tier        string          `json:"tier"`
	ProductType string          `json:"product_type"`
	BasePrice   decimal.Decimal `json:"base_price"`
}

// ToCartItems converts the request lines into domain cart items
func (r *PricingPreviewRequest) ToCartItems() []cart.Item {
	items := make([]cart.Item, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, cart.Item{
			ProductCode: it.ProductCode,
			Quantity:    it.Quantity,
			Tier:        types.PricingTier(it.Tier),
			ProductType: types.ProductType(it.ProductType),
			BasePrice:   it.BasePrice,
		})
	}
	return items
}

// PricingPreviewResponse carries the priced cart back to the caller
type PricingPreviewResponse struct {
	Items            []cart.PricedItem `json:"items"`
	Subtotal         decimal.Decimal   `json:"subtotal"`
	ValidationErrors []string          `json:"validation_errors"`
}
