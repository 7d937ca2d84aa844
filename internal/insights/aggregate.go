// Package insights derives analytics from catalog and sale snapshots.
// Everything here is a pure function: no mutation, no storage access,
// and empty input yields empty (never nil-panicking) results.
package insights

import (
	"sort"

	"sari-pos-agent/internal/models"
)

// TotalRevenue sums totalAmount over the whole sale history.
func TotalRevenue(sales []models.Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.TotalAmount
	}
	return total
}

// TotalProfit sums the profit frozen on each sale.
func TotalProfit(sales []models.Sale) float64 {
	var total float64
	for _, s := range sales {
		total += s.Profit
	}
	return total
}

// DailyRevenue buckets revenue by weekday name ("Mon", "Tue", ...).
// Sales from different weeks land in the same bucket; that coarse
// weekly view is what the chart has always shown, so it stays.
func DailyRevenue(sales []models.Sale) map[string]float64 {
	buckets := make(map[string]float64)
	for _, s := range sales {
		day := s.Timestamp.Weekday().String()[:3]
		buckets[day] += s.TotalAmount
	}
	return buckets
}

// ProductCount is one row of the top-sellers ranking.
type ProductCount struct {
	Name     string `json:"name"`
	Quantity int    `json:"qty"`
}

// TopProductsByQuantity ranks products by total quantity sold,
// descending, ties broken by first-encountered order, truncated to n.
func TopProductsByQuantity(sales []models.Sale, n int) []ProductCount {
	index := make(map[string]int)
	var ranking []ProductCount
	for _, s := range sales {
		for _, item := range s.Items {
			if i, ok := index[item.ProductName]; ok {
				ranking[i].Quantity += item.Quantity
				continue
			}
			index[item.ProductName] = len(ranking)
			ranking = append(ranking, ProductCount{Name: item.ProductName, Quantity: item.Quantity})
		}
	}
	// Stable sort keeps encounter order among equals
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Quantity > ranking[j].Quantity
	})
	if n >= 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// CategoryRevenue sums item revenue per category, resolving categories
// against the live catalog. Items whose product has since been deleted
// fall back to "Others" instead of failing the aggregation.
func CategoryRevenue(sales []models.Sale, products []models.Product) map[string]float64 {
	categoryByID := make(map[string]string, len(products))
	for _, p := range products {
		categoryByID[p.ID] = p.Category
	}

	revenue := make(map[string]float64)
	for _, s := range sales {
		for _, item := range s.Items {
			category, ok := categoryByID[item.ProductID]
			if !ok || category == "" {
				category = "Others"
			}
			revenue[category] += item.TotalPrice
		}
	}
	return revenue
}

// InventoryValue is the cost tied up on the shelves: Σ cost × quantity.
func InventoryValue(products []models.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.CostPrice * float64(p.StockQuantity)
	}
	return total
}

// Context is the read-only payload handed to the external advisor. It
// is assembled here so the advisor call itself stays free of any store
// access and its failures cannot touch ledger state.
type Context struct {
	TotalProducts  int              `json:"total_products"`
	LowStock       []models.Product `json:"low_stock"`
	RecentSales    []models.Sale    `json:"recent_sales"`
	InventoryValue float64          `json:"inventory_value"`
}

// recentSaleWindow matches what the advisor has always been shown.
const recentSaleWindow = 20

// AdvisoryContext builds the advisor payload from snapshots.
func AdvisoryContext(products []models.Product, sales []models.Sale) Context {
	var low []models.Product
	for _, p := range products {
		if p.IsLowStock() {
			low = append(low, p)
		}
	}

	recent := sales
	if len(recent) > recentSaleWindow {
		recent = recent[len(recent)-recentSaleWindow:]
	}

	return Context{
		TotalProducts:  len(products),
		LowStock:       low,
		RecentSales:    recent,
		InventoryValue: InventoryValue(products),
	}
}
