package v1

import (
	"net/http"

	ierr "github.com/finecut/platform/internal/errors"
	"github.com/finecut/platform/internal/integration/vies"
	"github.com/finecut/platform/internal/logger"
	"github.com/gin-gonic/gin"
)

// VATHandler handles VAT number validation endpoints
type VATHandler struct {
	viesClient *vies.Client
	logger     *logger.Logger
}

// NewVATHandler creates a new VAT handler
func NewVATHandler(viesClient *vies.Client, logger *logger.Logger) *VATHandler {
	return &VATHandler{
		viesClient: viesClient,
		logger:     logger,
	}
}

// ValidateVAT handles GET /v1/vat/:vat_number
func (h *VATHandler) ValidateVAT(c *gin.Context) {
	vatNumber := c.Param("vat_number")
	if vatNumber == "" {
		respondError(c, ierr.NewError("vat_number is required").
			WithHint("Provide a VAT number to validate").
			Mark(ierr.ErrValidation))
		return
	}

	result, err := h.viesClient.ValidateVATNumber(c.Request.Context(), vatNumber)
	if err != nil {
		h.logger.Errorw("VAT validation failed",
			"error", err,
			"vat_number", vatNumber)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
