package handlers

import (
	"errors"
	"log"
	"net/http"

	"nexustalent/internal/services"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors to HTTP responses.
func respondServiceError(c *gin.Context, operation string, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Pipeline view not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not authorized to use this pipeline view"})
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("%s: %v", operation, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + operation})
	}
}
