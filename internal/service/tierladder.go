package service

import (
	"context"

	"github.com/finecut/platform/internal/cache"
	"github.com/finecut/platform/internal/config"
	"github.com/finecut/platform/internal/domain/pricing"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
)

const tierLadderCacheKey = cache.PrefixTierLadder + "all"

// TierLadderLoader serves tier ladder configuration from a short-lived cache
// in front of the authoritative store. A load failure is fatal to the
// caller: pricing must never proceed on a fabricated or stale ladder when
// the authoritative source is down.
type TierLadderLoader interface {
	// GetLadders returns the cached ladders, loading from the repository
	// when the cache entry has expired
	GetLadders(ctx context.Context) (*pricing.Ladders, error)

	// ForceRefresh drops the cached entry and reloads from the repository
	ForceRefresh(ctx context.Context) (*pricing.Ladders, error)
}

type tierLadderLoader struct {
	repo   pricing.Repository
	cache  cache.Cache
	cfg    *config.Configuration
	logger *logger.Logger
}

// NewTierLadderLoader creates a new tier ladder loader
func NewTierLadderLoader(repo pricing.Repository, c cache.Cache, cfg *config.Configuration, logger *logger.Logger) TierLadderLoader {
	return &tierLadderLoader{
		repo:   repo,
		cache:  c,
		cfg:    cfg,
		logger: logger,
	}
}

func (l *tierLadderLoader) GetLadders(ctx context.Context) (*pricing.Ladders, error) {
	if cached, found := l.cache.Get(ctx, tierLadderCacheKey); found {
		if ladders, ok := cached.(*pricing.Ladders); ok {
			return ladders, nil
		}
	}
	return l.load(ctx)
}

func (l *tierLadderLoader) ForceRefresh(ctx context.Context) (*pricing.Ladders, error) {
	l.cache.Delete(ctx, tierLadderCacheKey)
	return l.load(ctx)
}

func (l *tierLadderLoader) load(ctx context.Context) (*pricing.Ladders, error) {
	ladders, err := l.repo.GetLadders(ctx)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Tier ladder configuration is unavailable").
			Mark(ierr.ErrConfiguration)
	}

	if err := ladders.Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Tier ladder configuration is invalid").
			Mark(ierr.ErrConfiguration)
	}

	// Refresh is an overwrite, not a lock. Serving a ladder up to one TTL
	// window old is an accepted tradeoff.
	l.cache.Set(ctx, tierLadderCacheKey, ladders, l.cfg.Cache.TierLadderTTL)

	l.logger.Debugw("tier ladders loaded",
		"standard_tiers", len(ladders.Standard.Tiers),
		"premium_tiers", len(ladders.Premium.Tiers),
	)
	return ladders, nil
}
