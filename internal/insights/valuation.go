package insights

import (
	"sort"

	"sari-pos-agent/internal/models"
)

// ValuationItem represents a single row in the valuation table.
type ValuationItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	CostPrice float64 `json:"cost_price"`
	TotalCost float64 `json:"total_cost"`
}

// CategoryGroup is one category's section of the valuation report.
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
}

// Valuation is the full stock-valuation report.
type Valuation struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal float64         `json:"grand_total"`
}

// StockValuation groups the monetary value of physical inventory by
// category. Uncategorized items are grouped under "Others".
func StockValuation(products []models.Product) Valuation {
	grouped := make(map[string]*CategoryGroup)

	var grandTotal float64
	for _, p := range products {
		catName := p.Category
		if catName == "" {
			catName = "Others"
		}

		group, exists := grouped[catName]
		if !exists {
			group = &CategoryGroup{CategoryName: catName}
			grouped[catName] = group
		}

		itemTotal := float64(p.StockQuantity) * p.CostPrice
		group.Items = append(group.Items, ValuationItem{
			Name:      p.Name,
			Quantity:  p.StockQuantity,
			CostPrice: p.CostPrice,
			TotalCost: itemTotal,
		})
		group.Subtotal += itemTotal
		grandTotal += itemTotal
	}

	valuation := Valuation{GrandTotal: grandTotal}
	for _, group := range grouped {
		valuation.Categories = append(valuation.Categories, *group)
	}
	// Map order is random; keep the report stable
	sort.Slice(valuation.Categories, func(i, j int) bool {
		return valuation.Categories[i].CategoryName < valuation.Categories[j].CategoryName
	})
	return valuation
}
