package engagement

import (
	"time"

	"github.com/finecut/platform/internal/types"
)

// Event is an analytics/engagement event emitted from reconciliation side
// effects. Inserts are keyed by IdempotencyKey so a redelivered webhook
// cannot double-count.
type Event struct {
	ID             string         `db:"id" json:"id"`
	EventName      string         `db:"event_name" json:"event_name"`
	CompanyID      string         `db:"company_id" json:"company_id"`
	InvoiceID      *string        `db:"invoice_id" json:"invoice_id,omitempty"`
	IdempotencyKey string         `db:"idempotency_key" json:"idempotency_key"`
	Properties     types.Metadata `db:"-" json:"properties,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}

// NewEvent builds an engagement event with a fresh ID
func NewEvent(eventName, companyID, idempotencyKey string) *Event {
	return &Event{
		ID:             types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ENGAGEMENT_EVENT),
		EventName:      eventName,
		CompanyID:      companyID,
		IdempotencyKey: idempotencyKey,
		CreatedAt:      time.Now().UTC(),
	}
}
