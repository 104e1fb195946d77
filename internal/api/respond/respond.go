package respond

import (
	"fictionhub/internal/domain/apperr"

	"github.com/gin-gonic/gin"
)

// Err writes the JSON error body for any handler error using the apperr
// taxonomy; errors outside the taxonomy become opaque 500s.
func Err(c *gin.Context, err error) {
	c.JSON(apperr.HTTPCode(err), gin.H{"error": apperr.Message(err)})
}
