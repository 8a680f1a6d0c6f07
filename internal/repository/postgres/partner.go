package postgres

import (
	"context"

	"github.com/finecut/platform/internal/domain/partner"
	"github.com/finecut/platform/internal/logger"
	pgclient "github.com/finecut/platform/internal/postgres"
	"github.com/finecut/platform/internal/types"
	"github.com/jmoiron/sqlx"
)

type partnerRepository struct {
	db     pgclient.IClient
	logger *logger.Logger
}

// NewPartnerRepository creates a new postgres partner association repository
func NewPartnerRepository(db pgclient.IClient, logger *logger.Logger) partner.Repository {
	return &partnerRepository{db: db, logger: logger}
}

func (r *partnerRepository) GetActiveByCompanyID(ctx context.Context, companyID string) (*partner.Association, error) {
	query := `
SELECT id, distributor_id, company_id, sales_rep_id, active,
	status, created_at, updated_at
FROM partner_associations
WHERE company_id = $1 AND active = true AND status = $2
ORDER BY created_at DESC
LIMIT 1`

	var assoc partner.Association
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &assoc, query, companyID, types.StatusPublished); err != nil {
		return nil, wrapDBError(err, "No active partner association for company")
	}
	return &assoc, nil
}
