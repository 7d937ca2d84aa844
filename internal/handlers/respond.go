package handlers

import (
	"errors"
	"net/http"

	"sari-pos-agent/internal/models"

	"github.com/gin-gonic/gin"
)

// respondError maps core failures onto HTTP statuses. Precondition
// violations are the caller's problem (400/404); anything else is ours.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrMissingCustomer),
		errors.Is(err, models.ErrInsufficientStock),
		errors.Is(err, models.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
