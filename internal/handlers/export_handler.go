package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"sari-pos-agent/internal/catalog"
	"sari-pos-agent/internal/ledger"
	"sari-pos-agent/internal/models"
	"sari-pos-agent/internal/sales"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	Catalog  *catalog.Store
	Ledger   *ledger.Store
	Recorder *sales.Recorder
}

func NewExportHandler(cat *catalog.Store, led *ledger.Store, rec *sales.Recorder) *ExportHandler {
	return &ExportHandler{Catalog: cat, Ledger: led, Recorder: rec}
}

// ProductCSVHeader is the column layout of the inventory export. The
// export is lossless: ParseProductRows reads it back field-for-field.
var ProductCSVHeader = []string{
	"ID", "Name", "Category", "Cost Price", "Selling Price",
	"Stock Qty", "Min Stock", "Supplier", "Barcode", "Image", "Last Restocked",
}

// ProductRows flattens products to CSV rows (header excluded).
func ProductRows(products []models.Product) [][]string {
	rows := make([][]string, 0, len(products))
	for _, p := range products {
		restocked := ""
		if p.LastRestocked != nil {
			restocked = p.LastRestocked.Format(time.RFC3339Nano)
		}
		rows = append(rows, []string{
			p.ID, p.Name, p.Category,
			strconv.FormatFloat(p.CostPrice, 'f', -1, 64),
			strconv.FormatFloat(p.SellingPrice, 'f', -1, 64),
			strconv.Itoa(p.StockQuantity),
			strconv.Itoa(p.MinStockLevel),
			p.Supplier, p.Barcode, p.Image, restocked,
		})
	}
	return rows
}

// ParseProductRows is the inverse of ProductRows.
func ParseProductRows(rows [][]string) ([]models.Product, error) {
	products := make([]models.Product, 0, len(rows))
	for i, row := range rows {
		if len(row) != len(ProductCSVHeader) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i, len(ProductCSVHeader), len(row))
		}
		cost, err := strconv.ParseFloat(row[3], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: cost price: %w", i, err)
		}
		selling, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: selling price: %w", i, err)
		}
		stock, err := strconv.Atoi(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: stock qty: %w", i, err)
		}
		minStock, err := strconv.Atoi(row[6])
		if err != nil {
			return nil, fmt.Errorf("row %d: min stock: %w", i, err)
		}

		var restocked *time.Time
		if row[10] != "" {
			t, err := time.Parse(time.RFC3339Nano, row[10])
			if err != nil {
				return nil, fmt.Errorf("row %d: last restocked: %w", i, err)
			}
			restocked = &t
		}

		products = append(products, models.Product{
			ID:            row[0],
			Name:          row[1],
			Category:      row[2],
			CostPrice:     cost,
			SellingPrice:  selling,
			StockQuantity: stock,
			MinStockLevel: minStock,
			Supplier:      row[7],
			Barcode:       row[8],
			Image:         row[9],
			LastRestocked: restocked,
		})
	}
	return products, nil
}

func writeCSV(c *gin.Context, filename string, header []string, rows [][]string) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	w := csv.NewWriter(c.Writer)
	_ = w.Write(header)
	_ = w.WriteAll(rows)
	w.Flush()
}

func exportStamp() string {
	return time.Now().Format("2006-01-02")
}

// --- GET: /api/export/inventory ---
func (h *ExportHandler) Inventory(c *gin.Context) {
	products, err := h.Catalog.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}
	writeCSV(c, "inventory_"+exportStamp()+".csv", ProductCSVHeader, ProductRows(products))
}

// --- GET: /api/export/sales ---
func (h *ExportHandler) Sales(c *gin.Context) {
	history, err := h.Recorder.ListSales()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	header := []string{"Date", "ID", "Items Summary", "Total Amount", "Profit", "Payment Method", "Customer ID"}
	rows := make([][]string, 0, len(history))
	for _, s := range history {
		summary := ""
		for i, item := range s.Items {
			if i > 0 {
				summary += "; "
			}
			summary += fmt.Sprintf("%s (x%d)", item.ProductName, item.Quantity)
		}
		customer := s.CustomerID
		if customer == "" {
			customer = "N/A"
		}
		rows = append(rows, []string{
			s.Timestamp.Format(time.RFC3339),
			s.ID,
			summary,
			strconv.FormatFloat(s.TotalAmount, 'f', -1, 64),
			strconv.FormatFloat(s.Profit, 'f', -1, 64),
			s.PaymentMethod,
			customer,
		})
	}
	writeCSV(c, "sales_"+exportStamp()+".csv", header, rows)
}

// --- GET: /api/export/debtors ---
func (h *ExportHandler) Debtors(c *gin.Context) {
	customers, err := h.Ledger.ListCustomers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}

	header := []string{"Name", "Phone", "Total Balance", "Last Transaction"}
	rows := make([][]string, 0, len(customers))
	for _, cust := range customers {
		rows = append(rows, []string{
			cust.Name,
			cust.Phone,
			strconv.FormatFloat(cust.TotalBalance, 'f', -1, 64),
			cust.LastTransaction.Format(time.RFC3339),
		})
	}
	writeCSV(c, "debtors_"+exportStamp()+".csv", header, rows)
}
