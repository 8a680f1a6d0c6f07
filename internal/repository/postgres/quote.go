package postgres

import (
	"context"

	"github.com/finecut/platform/internal/domain/quote"
	"github.com/finecut/platform/internal/logger"
	pgclient "github.com/finecut/platform/internal/postgres"
	"github.com/jmoiron/sqlx"
)

type quoteRepository struct {
	db     pgclient.IClient
	logger *logger.Logger
}

// NewQuoteRepository creates a new postgres quote repository
func NewQuoteRepository(db pgclient.IClient, logger *logger.Logger) quote.Repository {
	return &quoteRepository{db: db, logger: logger}
}

func (r *quoteRepository) Get(ctx context.Context, id string) (*quote.Quote, error) {
	query := `
SELECT id, company_id, contact_id, quote_status, invoice_id, total_amount,
	won_at, status, created_at, updated_at
FROM quotes
WHERE id = $1`

	var q quote.Quote
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &q, query, id); err != nil {
		return nil, wrapDBError(err, "Quote not found")
	}
	return &q, nil
}

func (r *quoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	query := `
UPDATE quotes SET
	quote_status = :quote_status,
	invoice_id = :invoice_id,
	won_at = :won_at,
	updated_at = :updated_at
WHERE id = :id`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, q); err != nil {
		return wrapDBError(err, "Failed to update quote")
	}
	return nil
}
