package order

import (
	"context"
)

// Repository defines the interface for legacy order persistence operations
type Repository interface {
	// Create inserts a new order
	Create(ctx context.Context, o *Order) error

	// GetByProviderRef retrieves an order by the provider reference it was
	// created from (provider invoice or payment intent ID)
	GetByProviderRef(ctx context.Context, providerRef string) (*Order, error)

	// Update updates an existing order
	Update(ctx context.Context, o *Order) error
}
