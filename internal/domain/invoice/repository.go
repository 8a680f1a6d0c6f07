package invoice

import (
	"context"
)

// Repository defines the interface for invoice persistence operations.
// Implementations must back CreateWithLineItems with a unique constraint on
// provider_invoice_id so duplicate webhook deliveries cannot produce two
// invoices for the same provider record.
type Repository interface {
	// CreateWithLineItems creates a new invoice and its line items atomically
	CreateWithLineItems(ctx context.Context, inv *Invoice) error

	// Get retrieves an invoice by internal ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// GetByProviderInvoiceID retrieves an invoice by the payment provider's
	// invoice ID
	GetByProviderInvoiceID(ctx context.Context, providerInvoiceID string) (*Invoice, error)

	// GetByPaymentIntentID retrieves an invoice by payment intent ID
	GetByPaymentIntentID(ctx context.Context, paymentIntentID string) (*Invoice, error)

	// Update updates an existing invoice
	Update(ctx context.Context, inv *Invoice) error
}
