package handler

import (
	"net/http"

	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError is the single place service failure codes become HTTP
// statuses.
func respondError(c *gin.Context, err error) {
	var status int
	switch service.CodeOf(err) {
	case service.CodeInvalidArgument, service.CodeInUse:
		status = http.StatusBadRequest
	case service.CodeAuthRequired, service.CodeForbidden:
		// Authentication failures surface as 403, not 401.
		status = http.StatusForbidden
	case service.CodeNotFound:
		status = http.StatusNotFound
	case service.CodeConflict:
		status = http.StatusConflict
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
