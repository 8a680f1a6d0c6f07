package types

import (
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/samber/lo"
)

// InvoiceStatus represents the current state of an invoice in its lifecycle
type InvoiceStatus string

const (
	// InvoiceStatusDraft indicates invoice is in draft state and can still be modified
	InvoiceStatusDraft InvoiceStatus = "draft"
	// InvoiceStatusSent indicates invoice has been finalized and sent for payment
	InvoiceStatusSent InvoiceStatus = "sent"
	// InvoiceStatusPaid indicates invoice has been paid in full
	InvoiceStatusPaid InvoiceStatus = "paid"
	// InvoiceStatusVoid indicates invoice has been voided and is no longer collectible
	InvoiceStatusVoid InvoiceStatus = "void"
	// InvoiceStatusUncollectible indicates the provider gave up collecting this invoice
	InvoiceStatusUncollectible InvoiceStatus = "uncollectible"
)

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	allowed := []InvoiceStatus{
		InvoiceStatusDraft,
		InvoiceStatusSent,
		InvoiceStatusPaid,
		InvoiceStatusVoid,
		InvoiceStatusUncollectible,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice status").
			WithHint("Invalid invoice status").
			WithReportableDetails(map[string]any{
				"status":  s,
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsTerminal reports whether no further status transitions are expected
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusVoid || s == InvoiceStatusUncollectible
}

// InvoicePaymentStatus represents the payment state of an invoice
type InvoicePaymentStatus string

const (
	PaymentStatusUnpaid   InvoicePaymentStatus = "unpaid"
	PaymentStatusPaid     InvoicePaymentStatus = "paid"
	PaymentStatusPartial  InvoicePaymentStatus = "partial"
	PaymentStatusRefunded InvoicePaymentStatus = "refunded"
	PaymentStatusVoid     InvoicePaymentStatus = "void"
)

func (s InvoicePaymentStatus) String() string {
	return string(s)
}

func (s InvoicePaymentStatus) Validate() error {
	allowed := []InvoicePaymentStatus{
		PaymentStatusUnpaid,
		PaymentStatusPaid,
		PaymentStatusPartial,
		PaymentStatusRefunded,
		PaymentStatusVoid,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid invoice payment status").
			WithHint("Invalid invoice payment status").
			WithReportableDetails(map[string]any{
				"status":  s,
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}
