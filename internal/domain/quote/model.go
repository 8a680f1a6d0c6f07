package quote

import (
	"time"

	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// Quote is a sales quote produced by the admin quote builder. When an
// invoice linked to a quote is paid, the quote is automatically marked won.
type Quote struct {
	ID          string            `db:"id" json:"id"`
	CompanyID   string            `db:"company_id" json:"company_id"`
	ContactID   string            `db:"contact_id" json:"contact_id"`
	QuoteStatus types.QuoteStatus `db:"quote_status" json:"quote_status"`
	InvoiceID   *string           `db:"invoice_id" json:"invoice_id,omitempty"`
	TotalAmount decimal.Decimal   `db:"total_amount" json:"total_amount"`
	WonAt       *time.Time        `db:"won_at" json:"won_at,omitempty"`
	types.BaseModel
}
