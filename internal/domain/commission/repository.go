package commission

import (
	"context"
)

// Repository defines the interface for commission persistence operations.
// Implementations must enforce a unique constraint on invoice_id as the
// final idempotency backstop against duplicate webhook deliveries.
type Repository interface {
	// Create inserts a new commission record
	Create(ctx context.Context, c *Commission) error

	// GetByInvoiceID retrieves the commission record for an invoice
	GetByInvoiceID(ctx context.Context, invoiceID string) (*Commission, error)

	// ExistsForInvoice reports whether a commission record already exists
	// for the invoice
	ExistsForInvoice(ctx context.Context, invoiceID string) (bool, error)
}
