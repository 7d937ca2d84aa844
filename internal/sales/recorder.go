// Package sales orchestrates checkout. A recorded sale and its side
// effects (stock decrements, utang posting) commit as one transaction
// with all-or-nothing visibility.
package sales

import (
	"errors"
	"fmt"
	"time"

	"sari-pos-agent/internal/catalog"
	"sari-pos-agent/internal/ledger"
	"sari-pos-agent/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartItem is one requested line of a checkout.
type CartItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type Recorder struct {
	db      *gorm.DB
	catalog *catalog.Store
	ledger  *ledger.Store
}

func NewRecorder(db *gorm.DB, cat *catalog.Store, led *ledger.Store) *Recorder {
	return &Recorder{db: db, catalog: cat, ledger: led}
}

// RecordSale validates the cart, freezes prices, and commits the sale,
// the stock decrements, and (for Utang) the ledger debt in one
// transaction. On any precondition failure nothing is written.
func (r *Recorder) RecordSale(items []CartItem, paymentMethod, customerID string) (models.Sale, error) {
	if len(items) == 0 {
		return models.Sale{}, models.ErrEmptyCart
	}

	switch paymentMethod {
	case models.PaymentCash, models.PaymentGCash, models.PaymentUtang:
	default:
		return models.Sale{}, fmt.Errorf("unknown payment method %q", paymentMethod)
	}

	merged, err := mergeCart(items)
	if err != nil {
		return models.Sale{}, err
	}

	if paymentMethod == models.PaymentUtang {
		if customerID == "" {
			return models.Sale{}, models.ErrMissingCustomer
		}
		if _, err := r.ledger.GetCustomer(customerID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.Sale{}, fmt.Errorf("customer %s: %w", customerID, models.ErrMissingCustomer)
			}
			return models.Sale{}, err
		}
	} else {
		customerID = ""
	}

	var sale models.Sale
	err = r.db.Transaction(func(tx *gorm.DB) error {
		// 1. Resolve and lock every line, and pre-validate the whole
		// cart before touching any stock. A half-applied cart would
		// break the match between sale items and inventory deductions.
		var totalAmount, profit float64
		var saleItems []models.SaleItem
		for _, line := range merged {
			var product models.Product
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&product, "id = ?", line.ProductID).Error
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("product %s: %w", line.ProductID, models.ErrNotFound)
				}
				return err
			}

			if !r.catalog.Permissive() && line.Quantity > product.StockQuantity {
				return fmt.Errorf("%w: %s has %d, need %d",
					models.ErrInsufficientStock, product.Name, product.StockQuantity, line.Quantity)
			}

			lineTotal := float64(line.Quantity) * product.SellingPrice
			totalAmount += lineTotal
			profit += float64(line.Quantity) * (product.SellingPrice - product.CostPrice)

			saleItems = append(saleItems, models.SaleItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   product.SellingPrice,
				TotalPrice:  lineTotal,
			})
		}

		// 2. Create the immutable sale header + items
		sale = models.Sale{
			ID:            uuid.NewString(),
			Timestamp:     time.Now(),
			Items:         saleItems,
			TotalAmount:   totalAmount,
			Profit:        profit,
			PaymentMethod: paymentMethod,
			CustomerID:    customerID,
		}
		if err := tx.Create(&sale).Error; err != nil {
			return err
		}

		// 3. Deduct stock per line
		for _, line := range merged {
			if err := r.catalog.DecrementStockTx(tx, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}

		// 4. Utang goes on the customer's tab
		if paymentMethod == models.PaymentUtang {
			_, err := r.ledger.PostTransactionTx(tx, customerID, totalAmount, models.TxnDebt, "", sale.ID)
			return err
		}
		return nil
	})
	if err != nil {
		return models.Sale{}, err
	}

	return sale, nil
}

// ListSales returns the full sale history with items, in append order.
func (r *Recorder) ListSales() ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.Preload("Items").Order("timestamp asc").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// mergeCart folds duplicate product lines so the availability check sees
// total demand per product. First-seen order is preserved.
func mergeCart(items []CartItem) ([]CartItem, error) {
	index := make(map[string]int)
	var merged []CartItem
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, fmt.Errorf("%w: quantity %d for product %s",
				models.ErrInvalidAmount, item.Quantity, item.ProductID)
		}
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged, nil
}
