package testutil

import (
	"context"
	"time"

	"github.com/finecut/platform/internal/cache"
	"github.com/finecut/platform/internal/config"
	"github.com/finecut/platform/internal/domain/commission"
	"github.com/finecut/platform/internal/domain/engagement"
	"github.com/finecut/platform/internal/domain/invoice"
	"github.com/finecut/platform/internal/domain/order"
	"github.com/finecut/platform/internal/domain/partner"
	"github.com/finecut/platform/internal/domain/pricing"
	"github.com/finecut/platform/internal/domain/quote"
	"github.com/finecut/platform/internal/domain/subscription"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	InvoiceRepo      *InMemoryInvoiceStore
	SubscriptionRepo *InMemorySubscriptionStore
	CommissionRepo   *InMemoryCommissionStore
	OrderRepo        *InMemoryOrderStore
	PartnerRepo      *InMemoryPartnerStore
	QuoteRepo        *InMemoryQuoteStore
	EngagementRepo   *InMemoryEngagementStore
	PricingRepo      *InMemoryPricingStore
}

// interface conformance
var (
	_ invoice.Repository      = (*InMemoryInvoiceStore)(nil)
	_ subscription.Repository = (*InMemorySubscriptionStore)(nil)
	_ commission.Repository   = (*InMemoryCommissionStore)(nil)
	_ order.Repository        = (*InMemoryOrderStore)(nil)
	_ partner.Repository      = (*InMemoryPartnerStore)(nil)
	_ quote.Repository        = (*InMemoryQuoteStore)(nil)
	_ engagement.Repository   = (*InMemoryEngagementStore)(nil)
	_ pricing.Repository      = (*InMemoryPricingStore)(nil)
)

// BaseServiceTestSuite provides common functionality for all service test
// suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx    context.Context
	stores Stores
	cache  cache.Cache
	logger *logger.Logger
	config *config.Configuration
	now    time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	validator.NewValidator()

	s.config = config.GetDefaultConfig()

	var err error
	s.logger, err = logger.NewLogger(s.config)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.stores = Stores{
		InvoiceRepo:      NewInMemoryInvoiceStore(),
		SubscriptionRepo: NewInMemorySubscriptionStore(),
		CommissionRepo:   NewInMemoryCommissionStore(),
		OrderRepo:        NewInMemoryOrderStore(),
		PartnerRepo:      NewInMemoryPartnerStore(),
		QuoteRepo:        NewInMemoryQuoteStore(),
		EngagementRepo:   NewInMemoryEngagementStore(),
		PricingRepo:      NewInMemoryPricingStore(),
	}
	s.cache = cache.NewInMemoryCache(s.config)
	s.now = time.Now().UTC()
}

func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now
}
