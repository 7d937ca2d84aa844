package handlers

import (
	"net/http"
	"time"

	"sari-pos-agent/internal/catalog"
	"sari-pos-agent/internal/models"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	Catalog *catalog.Store
}

func NewProductHandler(cat *catalog.Store) *ProductHandler {
	return &ProductHandler{Catalog: cat}
}

// --- GET: List all products ---
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.Catalog.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// --- GET: Resolve a scanned barcode ---
func (h *ProductHandler) Scan(c *gin.Context) {
	product, err := h.Catalog.GetByBarcode(c.Param("barcode"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// --- POST: Add a new product ---
func (h *ProductHandler) Add(c *gin.Context) {
	var product models.Product

	// 1. Parse JSON Input
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// 2. Stamp the restock time when it arrives with stock
	if product.StockQuantity > 0 && product.LastRestocked == nil {
		now := time.Now()
		product.LastRestocked = &now
	}

	// 3. Save to catalog
	if err := h.Catalog.Upsert(&product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// --- PUT: Replace a product (edit / restock) ---
func (h *ProductHandler) Update(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	// The URL decides which record we replace
	product.ID = c.Param("id")
	if _, err := h.Catalog.Get(product.ID); err != nil {
		respondError(c, err)
		return
	}

	if err := h.Catalog.Upsert(&product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE: Remove a product ---
// Idempotent; past sales keep their frozen copies of name and price.
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Catalog.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
