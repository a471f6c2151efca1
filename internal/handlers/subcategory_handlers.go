package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/01moynul/utensils-admin/internal/models"
	"github.com/01moynul/utensils-admin/internal/querybuilder"
	"github.com/gin-gonic/gin"
)

var subcategoryWrites = querybuilder.Entity{
	Table: "subcategories",
	Update: []querybuilder.Field{
		{Name: "category_id", Policy: querybuilder.IncludeProvided},
		{Name: "name", Policy: querybuilder.IncludeProvided},
	},
}

func (h *Handlers) querySubcategories(c *gin.Context, query string, args ...interface{}) ([]models.Subcategory, error) {
	rows, err := h.DB.QueryContext(c.Request.Context(), query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []models.Subcategory{}
	for rows.Next() {
		var s models.Subcategory
		if err := rows.Scan(&s.ID, &s.CategoryID, &s.Name); err != nil {
			return nil, err
		}
		subs = append(subs, s)
	}
	return subs, rows.Err()
}

// ListSubcategories handles GET /api/subcategories
func (h *Handlers) ListSubcategories(c *gin.Context) {
	subs, err := h.querySubcategories(c, "SELECT id, category_id, name FROM subcategories ORDER BY id")
	if err != nil {
		h.storeError(c, "Failed to fetch subcategories", err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

// GetSubcategory handles GET /api/subcategories/:id
func (h *Handlers) GetSubcategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var s models.Subcategory
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT id, category_id, name FROM subcategories WHERE id = ?", id).
		Scan(&s.ID, &s.CategoryID, &s.Name)
	if errors.Is(err, sql.ErrNoRows) {
		notFound(c, "Subcategory not found")
		return
	}
	if err != nil {
		h.storeError(c, "Failed to fetch subcategory", err)
		return
	}

	c.JSON(http.StatusOK, s)
}

// CreateSubcategory handles POST /api/subcategories
func (h *Handlers) CreateSubcategory(c *gin.Context) {
	var input models.CreateSubcategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "category_id and name are required")
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(),
		"INSERT INTO subcategories (category_id, name) VALUES (?, ?)", input.CategoryID, input.Name)
	if err != nil {
		h.storeError(c, "Failed to add subcategory", err)
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		h.storeError(c, "Failed to add subcategory", err)
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Subcategory added successfully", "id": id})
}

// UpdateSubcategory handles PUT /api/subcategories/:id with a partial body.
func (h *Handlers) UpdateSubcategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}

	stmt, err := subcategoryWrites.BuildUpdate(id, payload)
	if err != nil {
		h.buildFailed(c, err)
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(), stmt.SQL, stmt.Args...)
	if err != nil {
		h.storeError(c, "Failed to update subcategory", err)
		return
	}
	if !h.rowsChanged(c, res, "Failed to update subcategory", "Subcategory not found") {
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusOK, gin.H{"message": "Subcategory updated successfully"})
}

// DeleteSubcategory handles DELETE /api/subcategories/:id
func (h *Handlers) DeleteSubcategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stmt := subcategoryWrites.BuildDelete(id)
	res, err := h.DB.ExecContext(c.Request.Context(), stmt.SQL, stmt.Args...)
	if err != nil {
		h.storeError(c, "Failed to delete subcategory", err)
		return
	}
	if !h.rowsChanged(c, res, "Failed to delete subcategory", "Subcategory not found") {
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusOK, gin.H{"message": "Subcategory deleted successfully"})
}
