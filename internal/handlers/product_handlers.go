package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/utensils-admin/internal/models"
	"github.com/01moynul/utensils-admin/internal/querybuilder"
	"github.com/gin-gonic/gin"
)

const productSelect = "SELECT id, category_id, subcategory_id, name, description, image, price, stock FROM products"

var productWrites = querybuilder.Entity{
	Table: "products",
	Insert: []querybuilder.Field{
		{Name: "category_id", Policy: querybuilder.IncludeTruthy},
		{Name: "subcategory_id", Policy: querybuilder.IncludeTruthy},
		{Name: "name", Policy: querybuilder.IncludeTruthy},
		{Name: "description", Policy: querybuilder.IncludeTruthy},
		{Name: "image", Policy: querybuilder.IncludeTruthy},
		{Name: "price", Policy: querybuilder.IncludeTruthy},
		{Name: "stock", Policy: querybuilder.IncludeTruthy},
	},
	Update: []querybuilder.Field{
		{Name: "category_id", Policy: querybuilder.IncludeProvided},
		{Name: "subcategory_id", Policy: querybuilder.IncludeProvided},
		{Name: "name", Policy: querybuilder.IncludeProvided},
		{Name: "description", Policy: querybuilder.IncludeProvided},
		{Name: "image", Policy: querybuilder.IncludeProvided},
		{Name: "price", Policy: querybuilder.IncludeProvided},
		{Name: "stock", Policy: querybuilder.IncludeProvided},
	},
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProduct(s rowScanner) (models.Product, error) {
	var p models.Product
	err := s.Scan(&p.ID, &p.CategoryID, &p.SubcategoryID, &p.Name, &p.Description, &p.Image, &p.Price, &p.Stock)
	return p, err
}

func (h *Handlers) queryProducts(c *gin.Context, query string, args ...interface{}) ([]models.Product, error) {
	rows, err := h.DB.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetProductColumns handles GET /api/products/columns.
// The admin table builds its headers from this list.
func (h *Handlers) GetProductColumns(c *gin.Context) {
	query := `
		SELECT COLUMN_NAME, DATA_TYPE, IS_NULLABLE, COLUMN_KEY, COLUMN_DEFAULT, EXTRA, COLUMN_TYPE
		FROM INFORMATION_SCHEMA.COLUMNS
		WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
		ORDER BY ORDINAL_POSITION`

	rows, err := h.DB.QueryContext(c.Request.Context(), query, "products")
	if err != nil {
		h.storeError(c, "Failed to fetch product columns", err)
		return
	}
	defer rows.Close()

	columns := []models.Column{}
	for rows.Next() {
		var col models.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.DataType, &nullable, &col.Key, &col.Default, &col.Extra, &col.ColumnType); err != nil {
			h.storeError(c, "Failed to read product columns", err)
			return
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		h.storeError(c, "Failed to read product columns", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

// ListProducts handles GET /api/products with optional ?subcategoryId= or ?categoryId=.
func (h *Handlers) ListProducts(c *gin.Context) {
	query := productSelect
	var args []interface{}

	// 1. --- Optional filters ---
	for _, f := range []struct{ param, column string }{
		{"subcategoryId", "subcategory_id"},
		{"categoryId", "category_id"},
	} {
		raw, present := c.GetQuery(f.param)
		if !present {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			badRequest(c, "Invalid "+f.param)
			return
		}
		if len(args) == 0 {
			query += " WHERE "
		} else {
			query += " AND "
		}
		query += f.column + " = ?"
		args = append(args, id)
	}

	// 2. --- Fetch ---
	products, err := h.queryProducts(c, query+" ORDER BY id", args...)
	if err != nil {
		h.storeError(c, "Failed to fetch products", err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct handles GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	p, err := scanProduct(h.DB.QueryRowContext(c.Request.Context(), productSelect+" WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		notFound(c, "Product not found")
		return
	}
	if err != nil {
		h.storeError(c, "Failed to fetch product", err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// CreateProduct handles POST /api/products.
// Every allow-listed column is written; absent or empty values become NULL.
func (h *Handlers) CreateProduct(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	if !querybuilder.Truthy(payload["name"]) {
		badRequest(c, "Product name is required")
		return
	}

	stmt, err := productWrites.BuildInsert(payload)
	if err != nil {
		h.buildFailed(c, err)
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(), stmt.SQL, stmt.Args...)
	if err != nil {
		h.storeError(c, "Failed to add product", err)
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		h.storeError(c, "Failed to add product", err)
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "id": id})
}

// UpdateProduct handles PUT /api/products/:id with a partial body.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	stmt, err := productWrites.BuildUpdate(id, payload)
	if err != nil {
		h.buildFailed(c, err)
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(), stmt.SQL, stmt.Args...)
	if err != nil {
		h.storeError(c, "Failed to update product", err)
		return
	}
	if !h.rowsChanged(c, res, "Failed to update product", "Product not found") {
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}

// DeleteProduct handles DELETE /api/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stmt := productWrites.BuildDelete(id)
	res, err := h.DB.ExecContext(c.Request.Context(), stmt.SQL, stmt.Args...)
	if err != nil {
		h.storeError(c, "Failed to delete product", err)
		return
	}
	if !h.rowsChanged(c, res, "Failed to delete product", "Product not found") {
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
