package repository

import (
	"github.com/finecut/platform/internal/domain/commission"
	"github.com/finecut/platform/internal/domain/engagement"
	"github.com/finecut/platform/internal/domain/invoice"
	"github.com/finecut/platform/internal/domain/order"
	"github.com/finecut/platform/internal/domain/partner"
	"github.com/finecut/platform/internal/domain/pricing"
	"github.com/finecut/platform/internal/domain/quote"
	"github.com/finecut/platform/internal/domain/subscription"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/postgres"
	postgresRepo "github.com/finecut/platform/internal/repository/postgres"
)

func NewInvoiceRepository(db postgres.IClient, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewSubscriptionRepository(db postgres.IClient, logger *logger.Logger) subscription.Repository {
	return postgresRepo.NewSubscriptionRepository(db, logger)
}

func NewCommissionRepository(db postgres.IClient, logger *logger.Logger) commission.Repository {
	return postgresRepo.NewCommissionRepository(db, logger)
}

func NewOrderRepository(db postgres.IClient, logger *logger.Logger) order.Repository {
	return postgresRepo.NewOrderRepository(db, logger)
}

func NewPartnerRepository(db postgres.IClient, logger *logger.Logger) partner.Repository {
	return postgresRepo.NewPartnerRepository(db, logger)
}

func NewQuoteRepository(db postgres.IClient, logger *logger.Logger) quote.Repository {
	return postgresRepo.NewQuoteRepository(db, logger)
}

func NewEngagementRepository(db postgres.IClient, logger *logger.Logger) engagement.Repository {
	return postgresRepo.NewEngagementRepository(db, logger)
}

func NewPricingRepository(db postgres.IClient, logger *logger.Logger) pricing.Repository {
	return postgresRepo.NewPricingRepository(db, logger)
}
