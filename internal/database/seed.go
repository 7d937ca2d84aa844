package database

import (
	"log"

	"sari-pos-agent/internal/models"

	"gorm.io/gorm"
)

// DefaultProducts is the starter catalog a fresh store opens with.
func DefaultProducts() []models.Product {
	return []models.Product{
		{ID: "1", Position: 1, Name: "Lucky Me Noodles (Beef)", Category: "Snacks", CostPrice: 9, SellingPrice: 12, StockQuantity: 24, MinStockLevel: 5, Supplier: "Puregold"},
		{ID: "2", Position: 2, Name: "Kopiko Brown 3-in-1", Category: "Drinks", CostPrice: 6, SellingPrice: 9, StockQuantity: 48, MinStockLevel: 10, Supplier: "Puregold"},
		{ID: "3", Position: 3, Name: "Coke 295ml", Category: "Drinks", CostPrice: 15, SellingPrice: 18, StockQuantity: 12, MinStockLevel: 6, Supplier: "Coca-Cola Sales"},
		{ID: "4", Position: 4, Name: "Pancit Canton Extra Hot", Category: "Snacks", CostPrice: 11, SellingPrice: 15, StockQuantity: 3, MinStockLevel: 5, Supplier: "Puregold"},
	}
}

// SeedProducts loads the sample catalog on first use. Every other
// collection starts empty.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if err := db.Create(DefaultProducts()).Error; err != nil {
		return err
	}
	log.Println("✅ Seeded sample catalog (4 products)")
	return nil
}

// Reset wipes all four collections unconditionally, then re-seeds the
// catalog. User accounts survive a reset.
func Reset(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range []interface{}{
			&models.SaleItem{},
			&models.Sale{},
			&models.DebtTransaction{},
			&models.Customer{},
			&models.Product{},
		} {
			if err := tx.Where("1 = 1").Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Create(DefaultProducts()).Error
	})
}
