package v1

import (
	"io"
	"net/http"

	"github.com/finecut/platform/internal/integration/stripe"
	stripewebhook "github.com/finecut/platform/internal/integration/stripe/webhook"
	"github.com/finecut/platform/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82/webhook"
)

// WebhookHandler handles inbound payment provider webhooks
type WebhookHandler struct {
	stripeClient *stripe.Client
	eventHandler *stripewebhook.Handler
	logger       *logger.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(stripeClient *stripe.Client, eventHandler *stripewebhook.Handler, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		stripeClient: stripeClient,
		eventHandler: eventHandler,
		logger:       logger,
	}
}

// HandleStripeWebhook handles POST /v1/webhooks/stripe. A 400 is returned
// only for an unreadable payload or a bad signature; everything past
// verification is acknowledged with 200 so Stripe stops redelivering, with
// failures surfaced through logging and alerting instead.
func (h *WebhookHandler) HandleStripeWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Errorw("failed to read webhook request body", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		h.logger.Errorw("missing Stripe-Signature header")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing Stripe-Signature header",
		})
		return
	}

	secret := h.stripeClient.WebhookSecret()
	if secret == "" {
		h.logger.Errorw("Stripe webhook secret not configured")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Webhook secret not configured",
		})
		return
	}

	event, err := webhook.ConstructEventWithOptions(body, signature, secret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		h.logger.Errorw("Stripe webhook verification failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Failed to verify webhook signature or parse event",
		})
		return
	}

	if err := h.eventHandler.HandleWebhookEvent(c.Request.Context(), &event); err != nil {
		h.logger.Errorw("failed to handle webhook event",
			"error", err,
			"event_id", event.ID,
			"event_type", event.Type)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to process webhook event",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Webhook processed successfully",
	})
}
