package subscription

import (
	"time"

	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/types"
	"github.com/shopspring/decimal"
)

// Subscription represents a recurring subscription for a company.
//
// RatchetMax is the historical high-water mark of the monthly price. It is
// monotonically non-decreasing: once the price rises it can never be
// reported as having fallen. A provider-reported price below RatchetMax is
// an anomaly to be logged and alerted, not applied as a downgrade.
type Subscription struct {
	ID                     string                   `db:"id" json:"id"`
	CompanyID              string                   `db:"company_id" json:"company_id"`
	ContactID              string                   `db:"contact_id" json:"contact_id"`
	ProviderSubscriptionID string                   `db:"provider_subscription_id" json:"provider_subscription_id"`
	Currency               string                   `db:"currency" json:"currency"`
	MonthlyPrice           decimal.Decimal          `db:"monthly_price" json:"monthly_price"`
	RatchetMax             decimal.Decimal          `db:"ratchet_max" json:"ratchet_max"`
	SubscriptionStatus     types.SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	CurrentPeriodStart     *time.Time               `db:"current_period_start" json:"current_period_start,omitempty"`
	CurrentPeriodEnd       *time.Time               `db:"current_period_end" json:"current_period_end,omitempty"`
	TrialEndDate           *time.Time               `db:"trial_end_date" json:"trial_end_date,omitempty"`
	CancelledAt            *time.Time               `db:"cancelled_at" json:"cancelled_at,omitempty"`
	Metadata               types.Metadata           `db:"-" json:"metadata,omitempty"`
	types.BaseModel
}

func (s *Subscription) Validate() error {
	if s.CompanyID == "" {
		return ierr.NewError("company_id is required").
			WithHint("Subscription must belong to a company").
			Mark(ierr.ErrValidation)
	}
	if s.ProviderSubscriptionID == "" {
		return ierr.NewError("provider_subscription_id is required").
			WithHint("Subscription must reference a provider subscription").
			Mark(ierr.ErrValidation)
	}
	if s.MonthlyPrice.IsNegative() || s.RatchetMax.IsNegative() {
		return ierr.NewError("subscription prices must not be negative").
			WithHint("Subscription prices must be non negative").
			Mark(ierr.ErrValidation)
	}
	if s.RatchetMax.LessThan(s.MonthlyPrice) {
		return ierr.NewError("ratchet_max below monthly_price").
			WithHint("Ratchet max must cover the current monthly price").
			Mark(ierr.ErrValidation)
	}
	return s.SubscriptionStatus.Validate()
}
