package handlers

import (
	"net/http"

	"sari-pos-agent/internal/ledger"
	"sari-pos-agent/internal/models"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	Ledger *ledger.Store
}

func NewCustomerHandler(led *ledger.Store) *CustomerHandler {
	return &CustomerHandler{Ledger: led}
}

type customerRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

type paymentRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Note   string  `json:"note"`
}

// --- GET: /api/customers ---
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.Ledger.ListCustomers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

// --- POST: /api/customers ---
func (h *CustomerHandler) Register(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required"})
		return
	}

	customer, err := h.Ledger.RegisterCustomer(req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// --- PUT: /api/customers/:id ---
// Contact details only; the balance moves through payments and sales.
func (h *CustomerHandler) Update(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Customer name is required"})
		return
	}

	customer, err := h.Ledger.UpdateCustomer(c.Param("id"), req.Name, req.Phone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// --- GET: /api/customers/:id/transactions ---
// The customer's utang history, most recent first.
func (h *CustomerHandler) Transactions(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.Ledger.GetCustomer(id); err != nil {
		respondError(c, err)
		return
	}

	txns, err := h.Ledger.ListTransactions(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, txns)
}

// --- POST: /api/customers/:id/payments ---
// "Bayad utang": records a payment and drops the balance in one step.
func (h *CustomerHandler) RecordPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment amount is required"})
		return
	}

	txn, err := h.Ledger.PostTransaction(c.Param("id"), req.Amount, models.TxnPayment, req.Note, "")
	if err != nil {
		respondError(c, err)
		return
	}

	customer, err := h.Ledger.GetCustomer(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Payment recorded",
		"transaction": txn,
		"customer":    customer,
	})
}
