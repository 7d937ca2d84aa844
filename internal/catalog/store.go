// Package catalog owns the product collection: stock quantities and
// pricing live here and nowhere else. Other components read snapshots
// and issue decrement commands.
package catalog

import (
	"errors"
	"fmt"

	"sari-pos-agent/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	db *gorm.DB

	// permissive restores the legacy behavior of letting stock go
	// negative when a sale oversells. Off by default.
	permissive bool
}

func NewStore(db *gorm.DB, permissive bool) *Store {
	return &Store{db: db, permissive: permissive}
}

// Permissive reports whether negative stock is tolerated.
func (s *Store) Permissive() bool {
	return s.permissive
}

// List returns the current catalog snapshot in insertion order.
func (s *Store) List() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("position asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Get looks a product up by id.
func (s *Store) Get(id string) (models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, fmt.Errorf("product %s: %w", id, models.ErrNotFound)
		}
		return models.Product{}, err
	}
	return product, nil
}

// GetByBarcode resolves a scanned barcode to its product.
func (s *Store) GetByBarcode(code string) (models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "barcode = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Product{}, fmt.Errorf("barcode %s: %w", code, models.ErrNotFound)
		}
		return models.Product{}, err
	}
	return product, nil
}

// Upsert inserts a product if its id is unseen, otherwise replaces the
// stored record in place, keeping its list position. The store performs
// no price/quantity validation; that policy lives in the callers.
func (s *Store) Upsert(p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.Product
		err := tx.First(&existing, "id = ?", p.ID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			var maxPos int64
			if err := tx.Model(&models.Product{}).
				Select("COALESCE(MAX(position), 0)").
				Scan(&maxPos).Error; err != nil {
				return err
			}
			p.Position = maxPos + 1
			return tx.Create(p).Error
		case err != nil:
			return err
		}

		p.Position = existing.Position
		// Full replacement, zero fields included
		return tx.Model(&models.Product{}).Where("id = ?", p.ID).
			Select("*").Omit("id").Updates(p).Error
	})
}

// Remove deletes a product. Idempotent: removing an absent id is a no-op.
// Past sales keep their frozen copies of the product's name and price.
func (s *Store) Remove(id string) error {
	return s.db.Delete(&models.Product{}, "id = ?", id).Error
}

// DecrementStock reduces a product's stock as its own unit of work.
func (s *Store) DecrementStock(id string, quantity int) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return s.DecrementStockTx(tx, id, quantity)
	})
}

// DecrementStockTx reduces stock inside a caller-owned transaction so
// the sale recorder can bundle it with the rest of a checkout. The row
// is locked for the duration of the transaction. In strict mode the
// decrement fails with ErrInsufficientStock rather than going negative.
func (s *Store) DecrementStockTx(tx *gorm.DB, id string, quantity int) error {
	var product models.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", id, models.ErrNotFound)
		}
		return err
	}

	if !s.permissive && quantity > product.StockQuantity {
		return fmt.Errorf("%w: %s has %d, need %d",
			models.ErrInsufficientStock, product.Name, product.StockQuantity, quantity)
	}

	product.StockQuantity -= quantity
	return tx.Save(&product).Error
}

// LowStock returns the products at or below their restock threshold.
func (s *Store) LowStock() ([]models.Product, error) {
	products, err := s.List()
	if err != nil {
		return nil, err
	}
	var low []models.Product
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}
	return low, nil
}
