package handlers

import (
	"net/http"

	"sari-pos-agent/internal/sales"

	"github.com/gin-gonic/gin"
)

type SaleHandler struct {
	Recorder *sales.Recorder
}

func NewSaleHandler(rec *sales.Recorder) *SaleHandler {
	return &SaleHandler{Recorder: rec}
}

// SaleRequest defines what the frontend sends us at checkout
type SaleRequest struct {
	Items         []sales.CartItem `json:"items"`
	PaymentMethod string           `json:"payment_method" binding:"required,oneof=Cash G-Cash Utang"`
	CustomerID    string           `json:"customer_id"`
}

// --- POST: /api/checkout ---
func (h *SaleHandler) Checkout(c *gin.Context) {
	var req SaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sale, err := h.Recorder.RecordSale(req.Items, req.PaymentMethod, req.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale successful!",
		"sale":    sale,
	})
}

// --- GET: /api/sales ---
func (h *SaleHandler) List(c *gin.Context) {
	history, err := h.Recorder.ListSales()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, history)
}
