package commission

import (
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// Commission is the payout owed to a distributor and sales rep for one paid
// invoice. At most one record exists per invoice; the two payment statuses
// are tracked independently.
type Commission struct {
	ID                    string                        `db:"id" json:"id"`
	InvoiceID             string                        `db:"invoice_id" json:"invoice_id"`
	DistributorID         string                        `db:"distributor_id" json:"distributor_id"`
	CustomerID            string                        `db:"customer_id" json:"customer_id"`
	SalesRepID            string                        `db:"sales_rep_id" json:"sales_rep_id"`
	Currency              string                        `db:"currency" json:"currency"`
	PartnerAmount         decimal.Decimal               `db:"partner_amount" json:"partner_amount"`
	SalesRepAmount        decimal.Decimal               `db:"sales_rep_amount" json:"sales_rep_amount"`
	PartnerPaymentStatus  types.CommissionPaymentStatus `db:"partner_payment_status" json:"partner_payment_status"`
	SalesRepPaymentStatus types.CommissionPaymentStatus `db:"sales_rep_payment_status" json:"sales_rep_payment_status"`
	types.BaseModel
}

func (c *Commission) Validate() error {
	if c.InvoiceID == "" {
		return ierr.NewError("invoice_id is required").
			WithHint("Commission must reference an invoice").
			Mark(ierr.ErrValidation)
	}
	if c.DistributorID == "" {
		return ierr.NewError("distributor_id is required").
			WithHint("Commission must reference a distributor").
			Mark(ierr.ErrValidation)
	}
	if c.PartnerAmount.IsNegative() || c.SalesRepAmount.IsNegative() {
		return ierr.NewError("commission amounts must not be negative").
			WithHint("Commission amounts must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}
