package v1

import (
	"net/http"

	"github.com/finecut/platform/internal/api/dto"
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/logger"
	"github.com/finecut/platform/internal/service"
	"github.com/finecut/platform/internal/validator"
	"github.com/gin-gonic/gin"
)

// PricingHandler handles pricing preview endpoints
type PricingHandler struct {
	pricingSvc service.PricingService
	logger     *logger.Logger
}

// NewPricingHandler creates a new pricing handler
func NewPricingHandler(pricingSvc service.PricingService, logger *logger.Logger) *PricingHandler {
	return &PricingHandler{
		pricingSvc: pricingSvc,
		logger:     logger,
	}
}

// PreviewPricing handles POST /v1/pricing/preview. It prices a cart without
// persisting anything; the storefront calls it on every cart change.
func (h *PricingHandler) PreviewPricing(c *gin.Context) {
	var req dto.PricingPreviewRequest
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

	result, err := h.pricingSvc.Price(c.Request.Context(), req.ToCartItems())
	if err != nil {
		h.logger.Errorw("pricing preview failed", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PricingPreviewResponse{
		Items:            result.Items,
		Subtotal:         result.Subtotal,
		ValidationErrors: result.ValidationErrors,
	})
}
