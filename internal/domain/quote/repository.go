package quote

import (
	"context"
)

// Repository defines the interface for quote persistence operations
type Repository interface {
	// Get retrieves a quote by ID
	Get(ctx context.Context, id string) (*Quote, error)

	// Update updates an existing quote
	Update(ctx context.Context, q *Quote) error
}
