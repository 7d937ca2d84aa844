package sales

import (
	"fmt"
	"strings"
	"testing"

	"sari-pos-agent/internal/catalog"
	"sari-pos-agent/internal/database"
	"sari-pos-agent/internal/ledger"
	"sari-pos-agent/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixture struct {
	db       *gorm.DB
	catalog  *catalog.Store
	ledger   *ledger.Store
	recorder *Recorder
}

func newFixture(t *testing.T, permissive bool) fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	cat := catalog.NewStore(db, permissive)
	led := ledger.NewStore(db)
	return fixture{db: db, catalog: cat, ledger: led, recorder: NewRecorder(db, cat, led)}
}

func (f fixture) seedProduct(t *testing.T, id, name string, selling, cost float64, stock int) {
	t.Helper()
	p := models.Product{ID: id, Name: name, Category: "Snacks", CostPrice: cost, SellingPrice: selling, StockQuantity: stock, MinStockLevel: 5}
	require.NoError(t, f.catalog.Upsert(&p))
}

func (f fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.catalog.Get(id)
	require.NoError(t, err)
	return p.StockQuantity
}

func (f fixture) saleCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&models.Sale{}).Count(&n).Error)
	return n
}

func TestRecordSaleCash(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "1", "Lucky Me Noodles (Beef)", 12, 9, 24)

	sale, err := f.recorder.RecordSale([]CartItem{{ProductID: "1", Quantity: 2}}, models.PaymentCash, "")
	require.NoError(t, err)

	assert.Equal(t, 24.0, sale.TotalAmount)
	assert.Equal(t, 6.0, sale.Profit)
	assert.Equal(t, models.PaymentCash, sale.PaymentMethod)
	assert.Empty(t, sale.CustomerID)
	require.Len(t, sale.Items, 1)
	assert.Equal(t, "Lucky Me Noodles (Beef)", sale.Items[0].ProductName)
	assert.Equal(t, 12.0, sale.Items[0].UnitPrice)
	assert.Equal(t, 24.0, sale.Items[0].TotalPrice)

	assert.Equal(t, 22, f.stock(t, "1"))
}

func TestRecordSaleUtang(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "1", "Noodles", 12, 9, 24)
	c, err := f.ledger.RegisterCustomer("Aling Nena", "")
	require.NoError(t, err)

	sale, err := f.recorder.RecordSale([]CartItem{{ProductID: "1", Quantity: 1}}, models.PaymentUtang, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, sale.TotalAmount)
	assert.Equal(t, c.ID, sale.CustomerID)

	// The debt hit the book atomically with the sale
	got, err := f.ledger.GetCustomer(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 12.0, got.TotalBalance)

	txns, err := f.ledger.ListTransactions(c.ID)
	require.NoError(t, err)
	require.Len(t, txns, 1)
	assert.Equal(t, models.TxnDebt, txns[0].Type)
	assert.Equal(t, 12.0, txns[0].Amount)
	assert.Equal(t, sale.ID, txns[0].SaleID)

	// A manual payment afterwards
	_, err = f.ledger.PostTransaction(c.ID, 5, models.TxnPayment, "", "")
	require.NoError(t, err)
	got, err = f.ledger.GetCustomer(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 7.0, got.TotalBalance)
}

func TestRecordSaleEmptyCart(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "1", "Noodles", 12, 9, 24)

	_, err := f.recorder.RecordSale(nil, models.PaymentCash, "")
	assert.ErrorIs(t, err, models.ErrEmptyCart)

	assert.Equal(t, int64(0), f.saleCount(t))
	assert.Equal(t, 24, f.stock(t, "1"))
}

func TestRecordSaleUtangWithoutCustomer(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "1", "Noodles", 12, 9, 24)

	// No customer id at all
	_, err := f.recorder.RecordSale([]CartItem{{ProductID: "1", Quantity: 1}}, models.PaymentUtang, "")
	assert.ErrorIs(t, err, models.ErrMissingCustomer)

	// An id that doesn't resolve
	_, err = f.recorder.RecordSale([]CartItem{{ProductID: "1", Quantity: 1}}, models.PaymentUtang, "ghost")
	assert.ErrorIs(t, err, models.ErrMissingCustomer)

	assert.Equal(t, int64(0), f.saleCount(t))
	assert.Equal(t, 24, f.stock(t, "1"))
}

func TestRecordSaleUnknownProduct(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "1", "Noodles", 12, 9, 24)

	_, err := f.recorder.RecordSale([]CartItem{
		{ProductID: "1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	}, models.PaymentCash, "")
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Equal(t, int64(0), f.saleCount(t))
	assert.Equal(t, 24, f.stock(t, "1"), "no partial decrement on failure")
}

func TestRecordSaleInsufficientStockNoPartialEffects(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "a", "Plenty", 10, 5, 100)
	f.seedProduct(t, "b", "Scarce", 10, 5, 2)

	_, err := f.recorder.RecordSale([]CartItem{
		{ProductID: "a", Quantity: 1},
		{ProductID: "b", Quantity: 3},
	}, models.PaymentCash, "")
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	assert.Equal(t, int64(0), f.saleCount(t))
	assert.Equal(t, 100, f.stock(t, "a"))
	assert.Equal(t, 2, f.stock(t, "b"))
}

func TestRecordSalePermissiveOversell(t *testing.T) {
	f := newFixture(t, true)
	f.seedProduct(t, "1", "Noodles", 12, 9, 2)

	sale, err := f.recorder.RecordSale([]CartItem{{ProductID: "1", Quantity: 5}}, models.PaymentCash, "")
	require.NoError(t, err)
	assert.Equal(t, 60.0, sale.TotalAmount)
	assert.Equal(t, -3, f.stock(t, "1"), "legacy mode lets stock go negative")
}

func TestRecordSaleMergesDuplicateLines(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "1", "Noodles", 12, 9, 24)

	sale, err := f.recorder.RecordSale([]CartItem{
		{ProductID: "1", Quantity: 2},
		{ProductID: "1", Quantity: 3},
	}, models.PaymentCash, "")
	require.NoError(t, err)

	require.Len(t, sale.Items, 1)
	assert.Equal(t, 5, sale.Items[0].Quantity)
	assert.Equal(t, 19, f.stock(t, "1"))
}

func TestRecordSaleRejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "1", "Noodles", 12, 9, 24)

	_, err := f.recorder.RecordSale([]CartItem{{ProductID: "1", Quantity: 0}}, models.PaymentCash, "")
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
	assert.Equal(t, int64(0), f.saleCount(t))
}

func TestRecordSaleRejectsUnknownPaymentMethod(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "1", "Noodles", 12, 9, 24)

	_, err := f.recorder.RecordSale([]CartItem{{ProductID: "1", Quantity: 1}}, "Barter", "")
	assert.Error(t, err)
	assert.Equal(t, int64(0), f.saleCount(t))
}

// Inventory deductions must exactly match recorded sale items across an
// arbitrary sequence of checkouts.
func TestDeductionsMatchRecordedSales(t *testing.T) {
	f := newFixture(t, false)
	f.seedProduct(t, "1", "Noodles", 12, 9, 100)
	f.seedProduct(t, "2", "Kopiko", 9, 6, 100)

	carts := [][]CartItem{
		{{ProductID: "1", Quantity: 3}},
		{{ProductID: "1", Quantity: 2}, {ProductID: "2", Quantity: 4}},
		{{ProductID: "2", Quantity: 1}},
	}
	for _, cart := range carts {
		_, err := f.recorder.RecordSale(cart, models.PaymentCash, "")
		require.NoError(t, err)
	}

	history, err := f.recorder.ListSales()
	require.NoError(t, err)

	soldPerProduct := map[string]int{}
	for _, s := range history {
		for _, item := range s.Items {
			soldPerProduct[item.ProductID] += item.Quantity
		}
	}

	assert.Equal(t, 100-soldPerProduct["1"], f.stock(t, "1"))
	assert.Equal(t, 100-soldPerProduct["2"], f.stock(t, "2"))
	assert.Equal(t, 5, soldPerProduct["1"])
	assert.Equal(t, 5, soldPerProduct["2"])
}
