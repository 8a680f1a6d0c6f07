package service

import (
	"context"

	"github.com/finecut/platform/internal/domain/engagement"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
)

// EngagementService records analytics events emitted from reconciliation
// side effects.
type EngagementService interface {
	// Record inserts an engagement event. Duplicate idempotency keys are
	// silently skipped.
	Record(ctx context.Context, event *engagement.Event) error
}

type engagementService struct {
	engagementRepo engagement.Repository
	logger         *logger.Logger
}

// NewEngagementService creates a new engagement service
func NewEngagementService(engagementRepo engagement.Repository, logger *logger.Logger) EngagementService {
	return &engagementService{
		engagementRepo: engagementRepo,
		logger:         logger,
	}
}

func (s *engagementService) Record(ctx context.Context, event *engagement.Event) error {
	if err := s.engagementRepo.Insert(ctx, event); err != nil {
		if ierr.IsAlreadyExists(err) {
			s.logger.Debugw("engagement event already recorded, skipping",
				"event_name", event.EventName,
				"idempotency_key", event.IdempotencyKey)
			return nil
		}
		return err
	}

	s.logger.Debugw("engagement event recorded",
		"event_name", event.EventName,
		"company_id", event.CompanyID)
	return nil
}
