package subscription

import (
	"context"
)

// Repository defines the interface for subscription persistence operations
type Repository interface {
	// Create creates a new subscription
	Create(ctx context.Context, sub *Subscription) error

	// Get retrieves a subscription by internal ID
	Get(ctx context.Context, id string) (*Subscription, error)

	// GetByProviderSubscriptionID retrieves a subscription by the payment
	// provider's subscription ID
	GetByProviderSubscriptionID(ctx context.Context, providerSubscriptionID string) (*Subscription, error)

	// Update updates an existing subscription
	Update(ctx context.Context, sub *Subscription) error

	// CreateEvent appends an entry to the subscription audit log
	CreateEvent(ctx context.Context, event *Event) error

	// ListEvents returns the audit log for a subscription, oldest first
	ListEvents(ctx context.Context, subscriptionID string) ([]*Event, error)
}
