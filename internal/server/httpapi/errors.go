package httpapi

import (
	"errors"
	"net/http"

	"github.com/avosk/threadhub/internal/common"
	"github.com/gin-gonic/gin"
)

// writeError maps an error kind to a status code and a short client-facing
// message. Internal cause details stay in the server log and are never
// echoed to the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrorConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "already exists"})
	case errors.Is(err, common.ErrorUnauthorized),
		errors.Is(err, common.ErrInvalidToken),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrRefreshTokenExpired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "operation failed"})
	case errors.Is(err, common.ErrorSubscription):
		c.JSON(http.StatusBadRequest, gin.H{"error": "subscription operation failed"})
	case errors.Is(err, common.ErrorLookup):
		c.JSON(http.StatusNotFound, gin.H{"error": "lookup failed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
