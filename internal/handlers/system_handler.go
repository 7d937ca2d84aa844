package handlers

import (
	"log"
	"net/http"

	"sari-pos-agent/internal/database"
	"sari-pos-agent/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type SystemHandler struct {
	DB *gorm.DB
}

func NewSystemHandler(db *gorm.DB) *SystemHandler {
	return &SystemHandler{DB: db}
}

// --- GET: /api/system/status ---
// Collection counts, mostly for the settings screen and smoke checks.
func (h *SystemHandler) Status(c *gin.Context) {
	counts := gin.H{}
	for name, model := range map[string]interface{}{
		"products":          &models.Product{},
		"sales":             &models.Sale{},
		"customers":         &models.Customer{},
		"debt_transactions": &models.DebtTransaction{},
	} {
		var n int64
		if err := h.DB.Model(model).Count(&n).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count " + name})
			return
		}
		counts[name] = n
	}
	c.JSON(http.StatusOK, gin.H{"status": "online", "collections": counts})
}

// --- POST: /api/system/reset ---
// Clears all four collections unconditionally and re-seeds the sample
// catalog. User accounts survive.
func (h *SystemHandler) Reset(c *gin.Context) {
	if err := database.Reset(h.DB); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset store data"})
		return
	}
	log.Println("⚠️ Store data was reset to factory state")
	c.JSON(http.StatusOK, gin.H{"message": "All store data cleared"})
}
