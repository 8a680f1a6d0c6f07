package postgres

import (
	"context"

	"github.com/finecut/platform/internal/domain/subscription"
	"github.com/finecut/platform/internal/logger"
	pgclient "github.com/finecut/platform/internal/postgres"
	"github.com/jmoiron/sqlx"
)

type subscriptionRepository struct {
	db     pgclient.IClient
	logger *logger.Logger
}

// NewSubscriptionRepository creates a new postgres subscription repository
func NewSubscriptionRepository(db pgclient.IClient, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: logger}
}

type subscriptionRow struct {
	subscription.Subscription
	MetadataJSON []byte `db:"metadata"`
}

const insertSubscriptionQuery = `
INSERT INTO subscriptions (
	id, company_id, contact_id, provider_subscription_id, currency,
	monthly_price, ratchet_max, subscription_status,
	current_period_start, current_period_end, trial_end_date, cancelled_at,
	metadata, status, created_at, updated_at
) VALUES (
	:id, :company_id, :contact_id, :provider_subscription_id, :currency,
	:monthly_price, :ratchet_max, :subscription_status,
	:current_period_start, :current_period_end, :trial_end_date, :cancelled_at,
	:metadata, :status, :created_at, :updated_at
)`

const selectSubscriptionQuery = `
SELECT id, company_id, contact_id, provider_subscription_id, currency,
	monthly_price, ratchet_max, subscription_status,
	current_period_start, current_period_end, trial_end_date, cancelled_at,
	metadata, status, created_at, updated_at
FROM subscriptions`

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	metadata, err := marshalMetadata(sub.Metadata)
	if err != nil {
		return err
	}
	row := subscriptionRow{Subscription: *sub, MetadataJSON: metadata}

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), insertSubscriptionQuery, row); err != nil {
		return wrapDBError(err, "Failed to create subscription")
	}
	return nil
}

func (r *subscriptionRepository) Get(ctx context.Context, id string) (*subscription.Subscription, error) {
	return r.getOne(ctx, selectSubscriptionQuery+" WHERE id = $1", id)
}

func (r *subscriptionRepository) GetByProviderSubscriptionID(ctx context.Context, providerSubscriptionID string) (*subscription.Subscription, error) {
	return r.getOne(ctx, selectSubscriptionQuery+" WHERE provider_subscription_id = $1", providerSubscriptionID)
}

func (r *subscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	metadata, err := marshalMetadata(sub.Metadata)
	if err != nil {
		return err
	}
	row := subscriptionRow{Subscription: *sub, MetadataJSON: metadata}

	query := `
UPDATE subscriptions SET
	monthly_price = :monthly_price,
	ratchet_max = :ratchet_max,
	subscription_status = :subscription_status,
	current_period_start = :current_period_start,
	current_period_end = :current_period_end,
	trial_end_date = :trial_end_date,
	cancelled_at = :cancelled_at,
	metadata = :metadata,
	updated_at = :updated_at
WHERE id = :id`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, row); err != nil {
		return wrapDBError(err, "Failed to update subscription")
	}
	return nil
}

func (r *subscriptionRepository) CreateEvent(ctx context.Context, event *subscription.Event) error {
	query := `
INSERT INTO subscription_events (
	id, subscription_id, event_type, old_price, new_price,
	old_status, new_status, note, created_at
) VALUES (
	:id, :subscription_id, :event_type, :old_price, :new_price,
	:old_status, :new_status, :note, :created_at
)`

	if _, err := sqlx.NamedExecContext(ctx, r.db.Querier(ctx), query, event); err != nil {
		return wrapDBError(err, "Failed to append subscription event")
	}
	return nil
}

func (r *subscriptionRepository) ListEvents(ctx context.Context, subscriptionID string) ([]*subscription.Event, error) {
	query := `
SELECT id, subscription_id, event_type, old_price, new_price,
	old_status, new_status, note, created_at
FROM subscription_events
WHERE subscription_id = $1
ORDER BY created_at, id`

	var events []*subscription.Event
	if err := sqlx.SelectContext(ctx, r.db.Querier(ctx), &events, query, subscriptionID); err != nil {
		return nil, wrapDBError(err, "Failed to load subscription events")
	}
	return events, nil
}

func (r *subscriptionRepository) getOne(ctx context.Context, query string, arg interface{}) (*subscription.Subscription, error) {
	var row subscriptionRow
	if err := sqlx.GetContext(ctx, r.db.Querier(ctx), &row, query, arg); err != nil {
		return nil, wrapDBError(err, "Subscription not found")
	}

	sub := row.Subscription
	metadata, err := unmarshalMetadata(row.MetadataJSON)
	if err != nil {
		return nil, err
	}
	sub.Metadata = metadata
	return &sub, nil
}
