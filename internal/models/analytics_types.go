package models

import "github.com/shopspring/decimal"

func init() {
	// Money is rendered as a JSON number, not a quoted string.
	decimal.MarshalJSONWithoutQuotes = true
}

// TopProduct is one entry of GET /analytics/top-products
type TopProduct struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
	Sales int64   `json:"sales"`
}

// CategorySales is one entry of GET /analytics/category-sales
type CategorySales struct {
	Category   string `json:"category"`
	TotalSales int64  `json:"totalSales"`
}

// Revenue is the body of GET /analytics/total-revenue
type Revenue struct {
	Revenue decimal.Decimal `json:"revenue"`
}

// UserCount is the body of GET /analytics/total-users
type UserCount struct {
	Total int64 `json:"total"`
}

// OrderCount is the body of GET /analytics/total-orders
type OrderCount struct {
	TotalOrders int64 `json:"totalOrders"`
}

// TopProducts is the body of GET /analytics/top-products
type TopProducts struct {
	Products []TopProduct `json:"products"`
}

// CategorySalesReport is the body of GET /analytics/category-sales
type CategorySalesReport struct {
	Data []CategorySales `json:"data"`
}
