package types

import (
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/samber/lo"
)

// SubscriptionStatus is the status of a recurring subscription
type SubscriptionStatus string

const (
	SubscriptionStatusTrial     SubscriptionStatus = "trial"
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPastDue   SubscriptionStatus = "past_due"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
)

func (s SubscriptionStatus) String() string {
	return string(s)
}

func (s SubscriptionStatus) Validate() error {
	allowed := []SubscriptionStatus{
		SubscriptionStatusTrial,
		SubscriptionStatusActive,
		SubscriptionStatusPastDue,
		SubscriptionStatusPaused,
		SubscriptionStatusCancelled,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid subscription status").
			WithHint("Invalid subscription status").
			WithReportableDetails(map[string]any{
				"status":  s,
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SubscriptionEventType is the type of an entry in the subscription audit log
type SubscriptionEventType string

const (
	SubscriptionEventCreated               SubscriptionEventType = "created"
	SubscriptionEventStatusChanged         SubscriptionEventType = "status_changed"
	SubscriptionEventPriceIncreased        SubscriptionEventType = "price_increased"
	SubscriptionEventDowngradeBelowRatchet SubscriptionEventType = "downgrade_below_ratchet"
	SubscriptionEventCancelled             SubscriptionEventType = "cancelled"
)

func (t SubscriptionEventType) String() string {
	return string(t)
}
