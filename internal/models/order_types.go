package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the model for the 'orders' table.
// ShippingAddress is always a string in responses; a NULL column becomes "{}".
type Order struct {
	OrderID         int64           `json:"order_id" db:"order_id"`
	UserID          int64           `json:"user_id" db:"user_id"`
	TotalPrice      decimal.Decimal `json:"total_price" db:"total_price"`
	Status          string          `json:"status" db:"status"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// OrderItemLine is one product line in an order detail
type OrderItemLine struct {
	Quantity int64           `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Name     string          `json:"name"`
}

// OrderDetail is the response of GET /orders/:id
type OrderDetail struct {
	Order
	Items []OrderItemLine `json:"items"`
}

// UpdateOrderStatusInput is the body of PUT /orders/:id
type UpdateOrderStatusInput struct {
	Status string `json:"status" binding:"required"`
}
