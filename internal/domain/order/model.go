// Package order carries the legacy orders table, kept in sync with the
// invoice table during the transition off the old checkout path.
//
// Deprecated: new code should read from the invoice domain. The order mirror
// is written by the webhook coordinator as an independent, idempotent
// operation and will be removed once the legacy admin views are retired.
package order

import (
	"time"

	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// Order mirrors an invoice's status for legacy consumers
type Order struct {
	ID            string              `db:"id" json:"id"`
	CompanyID     string              `db:"company_id" json:"company_id"`
	InvoiceID     *string             `db:"invoice_id" json:"invoice_id,omitempty"`
	ProviderRef   string              `db:"provider_ref" json:"provider_ref"`
	Currency      string              `db:"currency" json:"currency"`
	TotalAmount   decimal.Decimal     `db:"total_amount" json:"total_amount"`
	OrderStatus   types.InvoiceStatus `db:"order_status" json:"order_status"`
	PaidAt        *time.Time          `db:"paid_at" json:"paid_at,omitempty"`
	types.BaseModel
}
