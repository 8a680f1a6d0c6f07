package postgres

import (
	"context"

	"github.com/finecut/platform/internal/domain/engagement"
	"github.com/finecut/platform/internal/logger"
	pgclient "github.com/finecut/platform/internal/postgres"
	"github.com/jmoiron/sqlx"
)

type engagementRepository struct {
	db     pgclient.IClient
	logger *logger.Logger
}

// NewEngagementRepository creates a new postgres engagement event repository
func NewEngagementRepository(db pgclient.IClient, logger *logger.Logger) engagement.Repository {
	return &engagementRepository{db: db, logger: logger}
}

type engagementRow struct {
	engagement.Event
	PropertiesJSON []byte `db:"properties"`
}

func (r *engagementRepository) Insert(ctx context.Context, e *engagement.Event) error {
	// idempotency_key carries a unique constraint; a duplicate insert
	// surfaces as ErrAlreadyExists
	properties, err := marshalMetadata(e.Properties)
	if err != nil {
		return err
	}
	row := engagementRow{Event: *e, PropertiesJSON: properties}

	query := `
INSERT INTO engagement_events (
	id, event_name, company_id, invoice_id, idempotency_key,
	properties, created_at
) VALUES (
	:id, :event_name, :company_id, :invoice_id, :idempotency_key,
	:properties, :created_at
)`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, row); err != nil {
		return wrapDBError(err, "Failed to record engagement event")
	}
	return nil
}
