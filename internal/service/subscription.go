package service

import (
	"context"
	"time"

	"github.com/finecut/platform/internal/domain/subscription"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/sentry"
	"github.com/finecut/platform/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// SubscriptionUpdate carries the provider's current view of a subscription
// as parsed from a subscription-updated event.
type SubscriptionUpdate struct {
	ProviderSubscriptionID string
	MonthlyPrice           decimal.Decimal
	Status                 types.SubscriptionStatus
	CurrentPeriodStart     *time.Time
	CurrentPeriodEnd       *time.Time
}

// SubscriptionService owns subscription state transitions and the price
// ratchet rule.
type SubscriptionService interface {
	// CreateFromProvider creates a subscription record for a provider
	// subscription. Returns false when a record already exists.
	CreateFromProvider(ctx context.Context, sub *subscription.Subscription) (bool, error)

	// ApplyProviderUpdate reconciles a subscription-updated event against
	// the persisted record, applying the ratchet rule
	ApplyProviderUpdate(ctx context.Context, update SubscriptionUpdate) error

	// ApplyDeleted marks a subscription cancelled
	ApplyDeleted(ctx context.Context, providerSubscriptionID string) error
}

type subscriptionService struct {
	subRepo subscription.Repository
	alerts  *sentry.Service
	logger  *logger.Logger
}

// NewSubscriptionService creates a new subscription service
func NewSubscriptionService(subRepo subscription.Repository, alerts *sentry.Service, logger *logger.Logger) SubscriptionService {
	return &subscriptionService{
		subRepo: subRepo,
		alerts:  alerts,
		logger:  logger,
	}
}

func (s *subscriptionService) CreateFromProvider(ctx context.Context, sub *subscription.Subscription) (bool, error) {
	existing, err := s.subRepo.GetByProviderSubscriptionID(ctx, sub.ProviderSubscriptionID)
	if err != nil && !ierr.IsNotFound(err) {
		return false, err
	}
	if existing != nil {
		s.logger.Infow("subscription already exists, skipping creation",
			"provider_subscription_id", sub.ProviderSubscriptionID,
			"subscription_id", existing.ID)
		return false, nil
	}

	if sub.ID == "" {
		sub.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION)
	}
	// the ratchet starts at the opening price
	sub.RatchetMax = sub.MonthlyPrice
	if err := sub.Validate(); err != nil {
		return false, err
	}

	if err := s.subRepo.Create(ctx, sub); err != nil {
		if ierr.IsAlreadyExists(err) {
			s.logger.Infow("subscription insert raced a duplicate delivery, skipping",
				"provider_subscription_id", sub.ProviderSubscriptionID)
			return false, nil
		}
		return false, err
	}

	event := subscription.NewEvent(sub.ID, types.SubscriptionEventCreated)
	event.NewPrice = lo.ToPtr(sub.MonthlyPrice)
	event.NewStatus = lo.ToPtr(sub.SubscriptionStatus)
	s.appendEvent(ctx, event)

	s.logger.Infow("subscription created",
		"subscription_id", sub.ID,
		"provider_subscription_id", sub.ProviderSubscriptionID,
		"monthly_price", sub.MonthlyPrice.String(),
		"status", sub.SubscriptionStatus)
	return true, nil
}

func (s *subscriptionService) ApplyProviderUpdate(ctx context.Context, update SubscriptionUpdate) error {
	sub, err := s.subRepo.GetByProviderSubscriptionID(ctx, update.ProviderSubscriptionID)
	if err != nil {
		if ierr.IsNotFound(err) {
			// update raced ahead of creation; the provider will redeliver
			s.logger.Warnw("subscription update for unknown subscription, skipping",
				"provider_subscription_id", update.ProviderSubscriptionID)
			return nil
		}
		return err
	}

	oldPrice := sub.MonthlyPrice
	oldStatus := sub.SubscriptionStatus

	switch {
	case update.MonthlyPrice.GreaterThan(sub.RatchetMax):
		event := subscription.NewEvent(sub.ID, types.SubscriptionEventPriceIncreased)
		event.OldPrice = lo.ToPtr(sub.RatchetMax)
		event.NewPrice = lo.ToPtr(update.MonthlyPrice)
		s.appendEvent(ctx, event)
		sub.RatchetMax = update.MonthlyPrice

	case update.MonthlyPrice.LessThan(sub.RatchetMax):
		// The ratchet never moves down. Record the anomaly and alert; the
		// reported price is applied but the high-water mark stands.
		event := subscription.NewEvent(sub.ID, types.SubscriptionEventDowngradeBelowRatchet)
		event.OldPrice = lo.ToPtr(sub.RatchetMax)
		event.NewPrice = lo.ToPtr(update.MonthlyPrice)
		event.Note = "provider reported a price below the ratchet high-water mark"
		s.appendEvent(ctx, event)

		s.logger.Warnw("subscription price reported below ratchet max",
			"subscription_id", sub.ID,
			"ratchet_max", sub.RatchetMax.String(),
			"reported_price", update.MonthlyPrice.String())
		s.alerts.CaptureMessage("subscription downgrade below ratchet", map[string]interface{}{
			"subscription_id":          sub.ID,
			"provider_subscription_id": sub.ProviderSubscriptionID,
			"ratchet_max":              sub.RatchetMax.String(),
			"reported_price":           update.MonthlyPrice.String(),
		})
	}

	sub.MonthlyPrice = update.MonthlyPrice
	sub.SubscriptionStatus = update.Status
	if update.CurrentPeriodStart != nil {
		sub.CurrentPeriodStart = update.CurrentPeriodStart
	}
	if update.CurrentPeriodEnd != nil {
		sub.CurrentPeriodEnd = update.CurrentPeriodEnd
	}
	sub.UpdatedAt = time.Now().UTC()

	if err := s.subRepo.Update(ctx, sub); err != nil {
		return err
	}

	if oldStatus != sub.SubscriptionStatus {
		event := subscription.NewEvent(sub.ID, types.SubscriptionEventStatusChanged)
		event.OldStatus = lo.ToPtr(oldStatus)
		event.NewStatus = lo.ToPtr(sub.SubscriptionStatus)
		s.appendEvent(ctx, event)
	}

	s.logger.Infow("subscription updated",
		"subscription_id", sub.ID,
		"old_price", oldPrice.String(),
		"new_price", sub.MonthlyPrice.String(),
		"ratchet_max", sub.RatchetMax.String(),
		"old_status", oldStatus,
		"new_status", sub.SubscriptionStatus)
	return nil
}

func (s *subscriptionService) ApplyDeleted(ctx context.Context, providerSubscriptionID string) error {
	sub, err := s.subRepo.GetByProviderSubscriptionID(ctx, providerSubscriptionID)
	if err != nil {
		if ierr.IsNotFound(err) {
			s.logger.Warnw("subscription deletion for unknown subscription, skipping",
				"provider_subscription_id", providerSubscriptionID)
			return nil
		}
		return err
	}

	if sub.SubscriptionStatus == types.SubscriptionStatusCancelled {
		s.logger.Infow("subscription already cancelled, skipping",
			"subscription_id", sub.ID)
		return nil
	}

	oldStatus := sub.SubscriptionStatus
	now := time.Now().UTC()
	sub.SubscriptionStatus = types.SubscriptionStatusCancelled
	sub.CancelledAt = &now
	sub.UpdatedAt = now

	if err := s.subRepo.Update(ctx, sub); err != nil {
		return err
	}

	event := subscription.NewEvent(sub.ID, types.SubscriptionEventCancelled)
	event.OldStatus = lo.ToPtr(oldStatus)
	event.NewStatus = lo.ToPtr(types.SubscriptionStatusCancelled)
	s.appendEvent(ctx, event)

	s.logger.Infow("subscription cancelled", "subscription_id", sub.ID)
	return nil
}

// appendEvent writes to the audit log. Audit failures never block the
// subscription update itself.
func (s *subscriptionService) appendEvent(ctx context.Context, event *subscription.Event) {
	if err := s.subRepo.CreateEvent(ctx, event); err != nil {
		s.logger.Errorw("failed to append subscription event",
			"error", err,
			"subscription_id", event.SubscriptionID,
			"event_type", event.EventType)
	}
}
