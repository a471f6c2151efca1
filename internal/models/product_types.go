package models

import "github.com/shopspring/decimal"

// Product is the model for the 'products' table.
// Nullable columns use pointers so they serialize as null.
type Product struct {
	ID            int64               `json:"id" db:"id"`
	CategoryID    *int64              `json:"category_id" db:"category_id"`
	SubcategoryID *int64              `json:"subcategory_id" db:"subcategory_id"`
	Name          string              `json:"name" db:"name"`
	Description   *string             `json:"description" db:"description"`
	Image         *string             `json:"image" db:"image"`
	Price         decimal.NullDecimal `json:"price" db:"price"`
	Stock         *int64              `json:"stock" db:"stock"`
}

// Column describes one column of a table as reported by INFORMATION_SCHEMA
type Column struct {
	Name       string  `json:"name"`
	DataType   string  `json:"type"`
	Nullable   bool    `json:"nullable"`
	Key        string  `json:"key"`
	Default    *string `json:"default"`
	Extra      string  `json:"extra"`
	ColumnType string  `json:"columnType"`
}
