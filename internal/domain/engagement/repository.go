package engagement

import (
	"context"
)

// Repository defines the interface for engagement event persistence.
// Implementations must enforce a unique constraint on idempotency_key and
// return ErrAlreadyExists on conflict.
type Repository interface {
	// Insert records an engagement event
	Insert(ctx context.Context, e *Event) error
}
