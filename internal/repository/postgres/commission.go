package postgres

import (
	"context"

	"github.com/finecut/platform/internal/domain/commission"
	"github.com/finecut/platform/internal/logger"
	pgclient "github.com/finecut/platform/internal/postgres"
	"github.com/jmoiron/sqlx"
)

type commissionRepository struct {
	db     pgclient.IClient
	logger *logger.Logger
}

// NewCommissionRepository creates a new postgres commission repository
func NewCommissionRepository(db pgclient.IClient, logger *logger.Logger) commission.Repository {
	return &commissionRepository{db: db, logger: logger}
}

func (r *commissionRepository) Create(ctx context.Context, c *commission.Commission) error {
	// invoice_id carries a unique constraint; a duplicate insert surfaces
	// as ErrAlreadyExists
	query := `
INSERT INTO commissions (
	id, invoice_id, distributor_id, customer_id, sales_rep_id, currency,
	partner_amount, sales_rep_amount, partner_payment_status,
	sales_rep_payment_status, status, created_at, updated_at
) VALUES (
	:id, :invoice_id, :distributor_id, :customer_id, :sales_rep_id, :currency,
	:partner_amount, :sales_rep_amount, :partner_payment_status,
	:sales_rep_payment_status, :status, :created_at, :updated_at
)`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, c); err != nil {
		return wrapDBError(err, "Failed to create commission record")
	}
	return nil
}

func (r *commissionRepository) GetByInvoiceID(ctx context.Context, invoiceID string) (*commission.Commission, error) {
	query := `
SELECT id, invoice_id, distributor_id, customer_id, sales_rep_id, currency,
	partner_amount, sales_rep_amount, partner_payment_status,
	sales_rep_payment_status, status, created_at, updated_at
FROM commissions
WHERE invoice_id = $1`

	var c commission.Commission
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &c, query, invoiceID); err != nil {
		return nil, wrapDBError(err, "Commission record not found")
	}
	return &c, nil
}

func (r *commissionRepository) ExistsForInvoice(ctx context.Context, invoiceID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM commissions WHERE invoice_id = $1)`

	var exists bool
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &exists, query, invoiceID); err != nil {
		return false, wrapDBError(err, "Failed to check for existing commission")
	}
	return exists, nil
}
