package postgres

import (
	"context"

	"github.com/finecut/platform/internal/domain/order"
	"github.com/finecut/platform/internal/logger"
	pgclient "github.com/finecut/platform/internal/postgres"
	"github.com/jmoiron/sqlx"
)

type orderRepository struct {
	db     pgclient.IClient
	logger *logger.Logger
}

// NewOrderRepository creates a new postgres legacy order repository
func NewOrderRepository(db pgclient.IClient, logger *logger.Logger) order.Repository {
	return &orderRepository{db: db, logger: logger}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	query := `
INSERT INTO orders (
	id, company_id, invoice_id, provider_ref, currency, total_amount,
	order_status, paid_at, status, created_at, updated_at
) VALUES (
	:id, :company_id, :invoice_id, :provider_ref, :currency, :total_amount,
	:order_status, :paid_at, :status, :created_at, :updated_at
)`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, o); err != nil {
		return wrapDBError(err, "Failed to create order")
	}
	return nil
}

func (r *orderRepository) GetByProviderRef(ctx context.Context, providerRef string) (*order.Order, error) {
	query := `
SELECT id, company_id, invoice_id, provider_ref, currency, total_amount,
	order_status, paid_at, status, created_at, updated_at
FROM orders
WHERE provider_ref = $1`

	var o order.Order
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &o, query, providerRef); err != nil {
		return nil, wrapDBError(err, "Order not found")
	}
	return &o, nil
}

func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	query := `
UPDATE orders SET
	total_amount = :total_amount,
	order_status = :order_status,
	paid_at = :paid_at,
	updated_at = :updated_at
WHERE id = :id`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, o); err != nil {
		return wrapDBError(err, "Failed to update order")
	}
	return nil
}
