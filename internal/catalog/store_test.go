package catalog

import (
	"fmt"
	"strings"
	"testing"

	"sari-pos-agent/internal/database"
	"sari-pos-agent/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedProduct(t *testing.T, s *Store, id, name string, stock int) models.Product {
	t.Helper()
	p := models.Product{ID: id, Name: name, Category: "Snacks", CostPrice: 9, SellingPrice: 12, StockQuantity: stock, MinStockLevel: 5, Supplier: "Puregold"}
	require.NoError(t, s.Upsert(&p))
	return p
}

func TestListPreservesInsertionOrder(t *testing.T) {
	s := NewStore(newTestDB(t), false)

	seedProduct(t, s, "a", "Alpha", 10)
	seedProduct(t, s, "b", "Bravo", 10)
	seedProduct(t, s, "c", "Charlie", 10)

	// Replacing an existing record must not move it
	updated := models.Product{ID: "b", Name: "Bravo Renamed", Category: "Drinks", SellingPrice: 20, StockQuantity: 3}
	require.NoError(t, s.Upsert(&updated))

	products, err := s.List()
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{products[0].ID, products[1].ID, products[2].ID})
	assert.Equal(t, "Bravo Renamed", products[1].Name)
	assert.Equal(t, "Drinks", products[1].Category)
	assert.Equal(t, 3, products[1].StockQuantity)
}

func TestUpsertAssignsID(t *testing.T) {
	s := NewStore(newTestDB(t), false)

	p := models.Product{Name: "No ID Yet", SellingPrice: 5}
	require.NoError(t, s.Upsert(&p))
	assert.NotEmpty(t, p.ID)

	got, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "No ID Yet", got.Name)
}

func TestGetUnknown(t *testing.T) {
	s := NewStore(newTestDB(t), false)

	_, err := s.Get("ghost")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetByBarcode(t *testing.T) {
	s := NewStore(newTestDB(t), false)
	p := models.Product{ID: "x", Name: "Scanned", Barcode: "4800016644931", SellingPrice: 10}
	require.NoError(t, s.Upsert(&p))

	got, err := s.GetByBarcode("4800016644931")
	require.NoError(t, err)
	assert.Equal(t, "x", got.ID)

	_, err = s.GetByBarcode("0000000000000")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestDecrementStockStrict(t *testing.T) {
	s := NewStore(newTestDB(t), false)
	seedProduct(t, s, "1", "Noodles", 5)

	require.NoError(t, s.DecrementStock("1", 3))

	got, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.StockQuantity)

	// More than what's on the shelf
	err = s.DecrementStock("1", 3)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	got, err = s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.StockQuantity, "failed decrement must not change stock")
}

func TestDecrementStockUnknownProduct(t *testing.T) {
	s := NewStore(newTestDB(t), false)
	assert.ErrorIs(t, s.DecrementStock("ghost", 1), models.ErrNotFound)
}

func TestDecrementStockPermissive(t *testing.T) {
	s := NewStore(newTestDB(t), true)
	seedProduct(t, s, "1", "Noodles", 5)

	require.NoError(t, s.DecrementStock("1", 10))

	got, err := s.Get("1")
	require.NoError(t, err)
	assert.Equal(t, -5, got.StockQuantity)
}

func TestRemoveIsIdempotent(t *testing.T) {
	s := NewStore(newTestDB(t), false)
	seedProduct(t, s, "1", "Noodles", 5)

	require.NoError(t, s.Remove("1"))
	require.NoError(t, s.Remove("1"))
	require.NoError(t, s.Remove("never-existed"))

	products, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestLowStock(t *testing.T) {
	s := NewStore(newTestDB(t), false)

	ok := models.Product{ID: "ok", Name: "Plenty", StockQuantity: 48, MinStockLevel: 10}
	atThreshold := models.Product{ID: "edge", Name: "At Threshold", StockQuantity: 5, MinStockLevel: 5}
	below := models.Product{ID: "low", Name: "Nearly Out", StockQuantity: 3, MinStockLevel: 5}
	for _, p := range []models.Product{ok, atThreshold, below} {
		p := p
		require.NoError(t, s.Upsert(&p))
	}

	low, err := s.LowStock()
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "edge", low[0].ID)
	assert.Equal(t, "low", low[1].ID)
}
