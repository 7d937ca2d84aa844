package models

import (
	"time"
)

// Payment methods accepted at the counter.
const (
	PaymentCash  = "Cash"
	PaymentGCash = "G-Cash"
	PaymentUtang = "Utang"
)

// Debt transaction types. Amounts are always stored positive;
// the type decides which way the balance moves.
const (
	TxnDebt    = "Debt"
	TxnPayment = "Payment"
)

// User - The person logging into the system
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'staff'
	CreatedAt    time.Time `json:"created_at"`
}

// Product - The Inventory
type Product struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Position      int64      `gorm:"index" json:"-"` // insertion order, assigned by the catalog store
	Name          string     `json:"name"`
	Category      string     `json:"category"` // Snacks, Drinks, Rice, Canned Goods, Cigarettes, Toiletries, Others
	CostPrice     float64    `json:"cost_price"`
	SellingPrice  float64    `json:"selling_price"`
	StockQuantity int        `json:"stock_quantity"`
	MinStockLevel int        `json:"min_stock_level"`
	Supplier      string     `json:"supplier"`
	Barcode       string     `json:"barcode,omitempty"`
	Image         string     `gorm:"type:text" json:"image,omitempty"` // base64 payload
	LastRestocked *time.Time `json:"last_restocked,omitempty"`
}

// IsLowStock flags products at or below their restock threshold.
// Computed on read, never stored.
func (p Product) IsLowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}

// Sale - The Transaction Header. Immutable once created.
type Sale struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Timestamp     time.Time  `json:"timestamp"`
	Items         []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
	TotalAmount   float64    `json:"total_amount"`
	Profit        float64    `json:"profit"`
	PaymentMethod string     `json:"payment_method"` // Cash, G-Cash, Utang
	CustomerID    string     `gorm:"size:36" json:"customer_id,omitempty"` // set only for Utang
}

// SaleItem - The specific items in a cart. Name and price are frozen
// at sale time so history reads correctly even if the product is
// renamed or deleted later.
type SaleItem struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	SaleID      string  `gorm:"size:36;index" json:"-"`
	ProductID   string  `gorm:"size:36" json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// Customer - A suki with a running utang balance. TotalBalance is a
// cached aggregate over the customer's debt transactions; it may only
// change through the ledger store's posting operation.
type Customer struct {
	ID              string    `gorm:"primaryKey;size:36" json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	TotalBalance    float64   `json:"total_balance"` // may go negative if overpaid
	LastTransaction time.Time `json:"last_transaction"`
	CreatedAt       time.Time `json:"created_at"`
}

// DebtTransaction - Append-only audit trail behind every balance.
// Never edited or deleted.
type DebtTransaction struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	CustomerID string    `gorm:"size:36;index" json:"customer_id"`
	Type       string    `json:"type"` // Debt or Payment
	Amount     float64   `json:"amount"` // always positive
	Timestamp  time.Time `json:"timestamp"`
	Note       string    `json:"note,omitempty"`
	SaleID     string    `gorm:"size:36" json:"sale_id,omitempty"` // back-reference for sale-originated debt
}

// BusinessInsight - What the Smart Advisor returns. Field names mirror
// the JSON schema sent to Gemini.
type BusinessInsight struct {
	Summary              string              `json:"summary"`
	FastMovingItems      []string            `json:"fastMovingItems"`
	RestockSuggestions   []RestockSuggestion `json:"restockSuggestions"`
	EstimatedProfitTrend string              `json:"estimatedProfitTrend"`
}

type RestockSuggestion struct {
	ProductName string `json:"productName"`
	Reason      string `json:"reason"`
}
