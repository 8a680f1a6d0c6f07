package invoice

import (
	"time"

	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice represents the invoice domain model. Invoices are created once per
// checkout or invoice-generation event and mutated only by the webhook
// reconciliation handler; they are never deleted, only voided.
type Invoice struct {
	ID                string                     `db:"id" json:"id"`
	CompanyID         string                     `db:"company_id" json:"company_id"`
	ContactID         string                     `db:"contact_id" json:"contact_id"`
	QuoteID           *string                    `db:"quote_id" json:"quote_id,omitempty"`
	InvoiceNumber     *string                    `db:"invoice_number" json:"invoice_number,omitempty"`
	Currency          string                     `db:"currency" json:"currency"`
	Subtotal          decimal.Decimal            `db:"subtotal" json:"subtotal"`
	TaxAmount         decimal.Decimal            `db:"tax_amount" json:"tax_amount"`
	ShippingAmount    decimal.Decimal            `db:"shipping_amount" json:"shipping_amount"`
	TotalAmount       decimal.Decimal            `db:"total_amount" json:"total_amount"`
	AmountRefunded    decimal.Decimal            `db:"amount_refunded" json:"amount_refunded"`
	InvoiceStatus     types.InvoiceStatus        `db:"invoice_status" json:"invoice_status"`
	PaymentStatus     types.InvoicePaymentStatus `db:"payment_status" json:"payment_status"`
	ProviderInvoiceID *string                    `db:"provider_invoice_id" json:"provider_invoice_id,omitempty"`
	PaymentIntentID   *string                    `db:"payment_intent_id" json:"payment_intent_id,omitempty"`
	PaidAt            *time.Time                 `db:"paid_at" json:"paid_at,omitempty"`
	VoidedAt          *time.Time                 `db:"voided_at" json:"voided_at,omitempty"`
	FinalizedAt       *time.Time                 `db:"finalized_at" json:"finalized_at,omitempty"`
	Metadata          types.Metadata             `db:"-" json:"metadata,omitempty"`
	LineItems         []*LineItem                `db:"-" json:"line_items,omitempty"`
	types.BaseModel
}

func (i *Invoice) Validate() error {
	if i.CompanyID == "" {
		return ierr.NewError("company_id is required").
			WithHint("Invoice must belong to a company").
			Mark(ierr.ErrValidation)
	}
	if i.Currency == "" {
		return ierr.NewError("currency is required").
			WithHint("Invoice must have a currency").
			Mark(ierr.ErrValidation)
	}
	if i.Subtotal.IsNegative() || i.TotalAmount.IsNegative() {
		return ierr.NewError("invoice amounts must not be negative").
			WithHint("Invoice amounts must be non negative").
			Mark(ierr.ErrValidation)
	}
	if err := i.InvoiceStatus.Validate(); err != nil {
		return err
	}
	return i.PaymentStatus.Validate()
}

// IsPaid reports whether the invoice has already completed its paid
// transition. Used by the webhook handler as the first idempotency check.
func (i *Invoice) IsPaid() bool {
	return i.InvoiceStatus == types.InvoiceStatusPaid
}
