package main

import (
	"context"
	"time"

	"github.com/finecut/platform/internal/api"
	v1 "github.com/finecut/platform/internal/api/v1"
	"github.com/finecut/platform/internal/cache"
	"github.com/finecut/platform/internal/config"
	"github.com/finecut/platform/internal/domain/invoice"
	"github.com/finecut/platform/internal/email"
	"github.com/finecut/platform/internal/httpclient"
	"github.com/finecut/platform/internal/integration/stripe"
	stripewebhook "github.com/finecut/platform/internal/integration/stripe/webhook"
	"github.com/finecut/platform/internal/integration/vies"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/postgres"
	"github.com/finecut/platform/internal/repository"
	"github.com/finecut/platform/internal/sentry"
	"github.com/finecut/platform/internal/service"
	"github.com/finecut/platform/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Local development convenience; a missing .env is not an error
	_ = godotenv.Load()

	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewService,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,
			postgres.NewClient,

			// HTTP Client
			httpclient.NewDefaultClient,

			// Email
			email.NewClient,
			email.NewNotificationService,

			// Integrations
			stripe.NewClient,
			stripe.NewInvoiceSyncService,
			stripewebhook.NewHandler,
			vies.NewClient,

			// Repositories
			repository.NewInvoiceRepository,
			repository.NewSubscriptionRepository,
			repository.NewCommissionRepository,
			repository.NewOrderRepository,
			repository.NewPartnerRepository,
			repository.NewQuoteRepository,
			repository.NewEngagementRepository,
			repository.NewPricingRepository,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewTierLadderLoader,
			service.NewPricingService,
			service.NewInvoiceService,
			service.NewSubscriptionService,
			service.NewCommissionService,
			service.NewOrderService,
			service.NewQuoteService,
			service.NewEngagementService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			startAPIServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	pricingService service.PricingService,
	invoiceRepo invoice.Repository,
	invoiceSyncService *stripe.InvoiceSyncService,
	stripeClient *stripe.Client,
	webhookHandler *stripewebhook.Handler,
	viesClient *vies.Client,
) api.Handlers {
	return api.Handlers{
		Pricing: v1.NewPricingHandler(pricingService, logger),
		Invoice: v1.NewInvoiceHandler(invoiceRepo, invoiceSyncService, logger),
		Webhook: v1.NewWebhookHandler(stripeClient, webhookHandler, logger),
		VAT:     v1.NewVATHandler(viesClient, logger),
	}
}

func provideRouter(handlers api.Handlers) *gin.Engine {
	return api.NewRouter(handlers)
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting API server", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}
