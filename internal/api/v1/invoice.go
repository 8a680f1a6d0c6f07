package v1

import (
	"net/http"

	"github.com/finecut/platform/internal/domain/invoice"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/integration/stripe"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/validator"
	"github.com/gin-gonic/gin"
)

// InvoiceHandler handles invoice endpoints
type InvoiceHandler struct {
	invoiceRepo    invoice.Repository
	invoiceSyncSvc *stripe.InvoiceSyncService
	logger         *logger.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceRepo invoice.Repository, invoiceSyncSvc *stripe.InvoiceSyncService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceRepo:    invoiceRepo,
		invoiceSyncSvc: invoiceSyncSvc,
		logger:         logger,
	}
}

// GetInvoice handles GET /v1/invoices/:id
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	inv, err := h.invoiceRepo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inv)
}

type syncInvoiceRequest struct {
	StripeCustomerID string `json:"stripe_customer_id" validate:"required"`
}

// SyncInvoice handles POST /v1/invoices/:id/sync. It pushes an internal
// invoice to Stripe for collection; the admin quote flow calls it after a
// quote is accepted.
func (h *InvoiceHandler) SyncInvoice(c *gin.Context) {
	var req syncInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation))
		return
	}
	if err := validator.ValidateRequest(&req); err != nil {
		respondError(c, err)
		return
	}

	inv, err := h.invoiceRepo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.invoiceSyncSvc.SyncInvoice(c.Request.Context(), inv, req.StripeCustomerID)
	if err != nil {
		h.logger.Errorw("invoice sync failed",
			"error", err,
			"invoice_id", inv.ID)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
