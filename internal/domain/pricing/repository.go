package pricing

import (
	"context"
)

// Repository is the authoritative source of tier ladder configuration.
// Callers must treat a load failure as fatal to the pricing request: there
// is no fallback ladder.
type Repository interface {
	// GetLadders returns the currently configured standard and premium ladders
	GetLadders(ctx context.Context) (*Ladders, error)
}
