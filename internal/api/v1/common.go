package v1

import (
	ierr "github.com/finecut/platform/internal/errors"
	"github.com/gin-gonic/gin"
)

// respondError writes an error response with a status derived from the error
// mark.
func respondError(c *gin.Context, err error) {
	c.JSON(ierr.HTTPStatusFromErr(err), gin.H{
		"error": err.Error(),
	})
}
