package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cerebra-app/cerebra-backend/internal/types"
)

// RespondError maps a service error onto its HTTP status. Unknown errors
// become a generic 500 so storage details never leak to clients.
func RespondError(c *gin.Context, err error) {
	var apiErr *types.APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Error(), "code": apiErr.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}
