package handlers

import (
	"net/http"

	"sari-pos-agent/internal/catalog"
	"sari-pos-agent/internal/insights"
	"sari-pos-agent/internal/models"
	"sari-pos-agent/internal/sales"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	Catalog  *catalog.Store
	Recorder *sales.Recorder
}

func NewReportHandler(cat *catalog.Store, rec *sales.Recorder) *ReportHandler {
	return &ReportHandler{Catalog: cat, Recorder: rec}
}

// ReportData defines the shape of our analytics response
type ReportData struct {
	TotalRevenue    float64                 `json:"total_revenue"`
	TotalProfit     float64                 `json:"total_profit"`
	TotalOrders     int                     `json:"total_orders"`
	DailyRevenue    map[string]float64      `json:"daily_revenue"`
	TopProducts     []insights.ProductCount `json:"top_products"`
	CategoryRevenue map[string]float64      `json:"category_revenue"`
	RecentSales     []models.Sale           `json:"recent_sales"`
}

// --- GET: /api/reports ---
func (h *ReportHandler) GetSalesReport(c *gin.Context) {
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

	// Recent transactions: last 10, newest first
	recent := make([]models.Sale, 0, 10)
	for i := len(history) - 1; i >= 0 && len(recent) < 10; i-- {
		recent = append(recent, history[i])
	}

	c.JSON(http.StatusOK, ReportData{
		TotalRevenue:    insights.TotalRevenue(history),
		TotalProfit:     insights.TotalProfit(history),
		TotalOrders:     len(history),
		DailyRevenue:    insights.DailyRevenue(history),
		TopProducts:     insights.TopProductsByQuantity(history, 5),
		CategoryRevenue: insights.CategoryRevenue(history, products),
		RecentSales:     recent,
	})
}

// --- GET: /api/reports/valuation ---
// The total monetary value of physical inventory, grouped by category.
func (h *ReportHandler) GetStockValuation(c *gin.Context) {
	products, err := h.Catalog.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, insights.StockValuation(products))
}
