package postgres

import (
	"context"

	"github.com/finecut/platform/internal/domain/pricing"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
	pgclient "github.com/finecut/platform/internal/postgres"
	"github.com/finecut/platform/internal/types"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type pricingRepository struct {
	db     pgclient.IClient
	logger *logger.Logger
}

// NewPricingRepository creates a new postgres tier ladder repository
func NewPricingRepository(db pgclient.IClient, logger *logger.Logger) pricing.Repository {
	return &pricingRepository{db: db, logger: logger}
}

type tierRow struct {
	Tier            types.PricingTier `db:"tier"`
	Currency        string            `db:"currency"`
	MinQuantity     int64             `db:"min_quantity"`
	MaxQuantity     *int64            `db:"max_quantity"`
	UnitPrice       decimal.Decimal   `db:"unit_price"`
	DiscountPercent decimal.Decimal   `db:"discount_percent"`
}

func (r *pricingRepository) GetLadders(ctx context.Context) (*pricing.Ladders, error) {
	query := `
SELECT tier, currency, min_quantity, max_quantity, unit_price, discount_percent
FROM pricing_tiers
WHERE status = $1
ORDER BY tier, min_quantity`

	var rows []tierRow
	if err := sqlx.SelectContext(ctx, r.db.Querier(ctx), &rows, query, types.StatusPublished); err != nil {
		return nil, wrapDBError(err, "Failed to load tier ladders")
	}

	ladders := &pricing.Ladders{
		Standard: &pricing.Ladder{Tier: types.PricingTierStandard},
		Premium:  &pricing.Ladder{Tier: types.PricingTierPremium},
	}
	for _, row := range rows {
		tier := pricing.Tier{
			MinQuantity:     row.MinQuantity,
			MaxQuantity:     row.MaxQuantity,
			UnitPrice:       row.UnitPrice,
			DiscountPercent: row.DiscountPercent,
		}
		switch row.Tier {
		case types.PricingTierStandard:
			ladders.Standard.Currency = row.Currency
			ladders.Standard.Tiers = append(ladders.Standard.Tiers, tier)
		case types.PricingTierPremium:
			ladders.Premium.Currency = row.Currency
			ladders.Premium.Tiers = append(ladders.Premium.Tiers, tier)
		default:
			return nil, ierr.NewError("unknown pricing tier in configuration").
				WithHintf("Tier %s is not a recognised ladder", row.Tier).
				Mark(ierr.ErrValidation)
		}
	}

	return ladders, nil
}
