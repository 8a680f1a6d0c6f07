package api

import (
	"net/http"

	v1 "github.com/finecut/platform/internal/api/v1"
	"github.com/gin-gonic/gin"
)

type Handlers struct {
	Pricing *v1.PricingHandler
	Invoice *v1.InvoiceHandler
	Webhook *v1.WebhookHandler
	VAT     *v1.VATHandler
}

func NewRouter(handlers Handlers) *gin.Engine {
	router := gin.Default()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// v1 routes
	v1Group := router.Group("/v1")
	registerV1Routes(v1Group, handlers)

	return router
}

func registerV1Routes(router *gin.RouterGroup, handlers Handlers) {
	// Pricing routes
	pricing := router.Group("/pricing")
	{
		pricing.POST("/preview", handlers.Pricing.PreviewPricing)
	}

	// Invoice routes
	invoices := router.Group("/invoices")
	{
		invoices.GET("/:id", handlers.Invoice.GetInvoice)
		invoices.POST("/:id/sync", handlers.Invoice.SyncInvoice)
	}

	// VAT validation routes
	vat := router.Group("/vat")
	{
		vat.GET("/:vat_number", handlers.VAT.ValidateVAT)
	}

	// Webhook routes
	webhooks := router.Group("/webhooks")
	{
		webhooks.POST("/stripe", handlers.Webhook.HandleStripeWebhook)
	}
}
