package handlers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"sari-pos-agent/internal/ai"
	"sari-pos-agent/internal/catalog"
	"sari-pos-agent/internal/insights"
	"sari-pos-agent/internal/sales"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	Catalog  *catalog.Store
	Recorder *sales.Recorder
}

func NewAIHandler(cat *catalog.Store, rec *sales.Recorder) *AIHandler {
	return &AIHandler{Catalog: cat, Recorder: rec}
}

// --- GET: /api/insights ---
// Best-effort only: whatever goes wrong with the advisor, the answer is
// "insight unavailable", never an error that blocks store operations.
func (h *AIHandler) GetInsights(c *gin.Context) {
	products, err := h.Catalog.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}
	history, err := h.Recorder.ListSales()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	unavailable := func() {
		c.JSON(http.StatusOK, gin.H{"available": false, "insight": nil})
	}

	// Nothing useful to say about an empty till
	if len(history) == 0 {
		unavailable()
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("⚠️ GEMINI_API_KEY not set; Smart Advisor disabled")
		unavailable()
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()

	insight, err := ai.GetBusinessInsights(ctx, apiKey, insights.AdvisoryContext(products, history))
	if err != nil {
		log.Println("Smart Advisor error:", err)
		unavailable()
		return
	}

	c.JSON(http.StatusOK, gin.H{"available": true, "insight": insight})
}
