package partner

import (
	"context"
)

// Repository defines the interface for partner association lookups
type Repository interface {
	// GetActiveByCompanyID returns the active association for a company, or
	// ErrNotFound when the company has no distributor
	GetActiveByCompanyID(ctx context.Context, companyID string) (*Association, error)
}
