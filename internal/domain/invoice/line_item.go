package invoice

import (
	"github.com/finecut/platform/internal/domain/cart"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// LineItem is a single priced line on an invoice
type LineItem struct {
	ID              string            `db:"id" json:"id"`
	InvoiceID       string            `db:"invoice_id" json:"invoice_id"`
	ProductCode     string            `db:"product_code" json:"product_code"`
	ProductType     types.ProductType `db:"product_type" json:"product_type"`
	Quantity        int64             `db:"quantity" json:"quantity"`
	UnitPrice       decimal.Decimal   `db:"unit_price" json:"unit_price"`
	LineTotal       decimal.Decimal   `db:"line_total" json:"line_total"`
	DiscountApplied string            `db:"discount_applied" json:"discount_applied,omitempty"`
	types.BaseModel
}

// LineItemFromPricedItem builds an invoice line item from pricing engine
// output
func LineItemFromPricedItem(invoiceID string, item cart.PricedItem) *LineItem {
	return &LineItem{
		ID:              types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		InvoiceID:       invoiceID,
		ProductCode:     item.ProductCode,
		ProductType:     item.ProductType,
		Quantity:        item.Quantity,
		UnitPrice:       item.UnitPrice,
		LineTotal:       item.LineTotal,
		DiscountApplied: item.DiscountApplied,
		BaseModel:       types.GetDefaultBaseModel(),
	}
}
