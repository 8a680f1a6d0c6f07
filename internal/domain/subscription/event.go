package subscription

import (
	"time"

	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// Event is one entry in the append-only audit log of subscription status and
// price transitions.
type Event struct {
	ID             string                      `db:"id" json:"id"`
	SubscriptionID string                      `db:"subscription_id" json:"subscription_id"`
	EventType      types.SubscriptionEventType `db:"event_type" json:"event_type"`
	OldPrice       *decimal.Decimal            `db:"old_price" json:"old_price,omitempty"`
	NewPrice       *decimal.Decimal            `db:"new_price" json:"new_price,omitempty"`
	OldStatus      *types.SubscriptionStatus   `db:"old_status" json:"old_status,omitempty"`
	NewStatus      *types.SubscriptionStatus   `db:"new_status" json:"new_status,omitempty"`
	Note           string                      `db:"note" json:"note,omitempty"`
	CreatedAt      time.Time                   `db:"created_at" json:"created_at"`
}

// NewEvent builds an audit log entry for a subscription
func NewEvent(subscriptionID string, eventType types.SubscriptionEventType) *Event {
	return &Event{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION_EVENT),
		SubscriptionID: subscriptionID,
		EventType:      eventType,
		CreatedAt:      time.Now().UTC(),
	}
}
