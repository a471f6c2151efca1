package handlers

import (
	"net/http"

	"github.com/01moynul/utensils-admin/internal/models"
	"github.com/gin-gonic/gin"
)

// --- Category Handlers ---

// ListCategories handles GET /api/categories
func (h *Handlers) ListCategories(c *gin.Context) {
	rows, err := h.DB.QueryContext(c.Request.Context(), "SELECT id, name FROM categories ORDER BY id")
	if err != nil {
		h.storeError(c, "Failed to fetch categories", err)
		return
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name); err != nil {
			h.storeError(c, "Failed to read categories", err)
			return
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		h.storeError(c, "Failed to read categories", err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// CreateCategory handles POST /api/categories
func (h *Handlers) CreateCategory(c *gin.Context) {
	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Category name is required")
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(), "INSERT INTO categories (name) VALUES (?)", input.Name)
	if err != nil {
		h.storeError(c, "Failed to add category", err)
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		h.storeError(c, "Failed to add category", err)
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusCreated, gin.H{"message": "Category added successfully", "id": id})
}

// UpdateCategory handles PUT /api/categories/:id
func (h *Handlers) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.CategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Category name is required")
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(), "UPDATE categories SET name = ? WHERE id = ?", input.Name, id)
	if err != nil {
		h.storeError(c, "Failed to update category", err)
		return
	}
	if !h.rowsChanged(c, res, "Failed to update category", "Category not found") {
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusOK, gin.H{"message": "Category updated successfully"})
}

// DeleteCategory handles DELETE /api/categories/:id
func (h *Handlers) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(), "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		h.storeError(c, "Failed to delete category", err)
		return
	}
	if !h.rowsChanged(c, res, "Failed to delete category", "Category not found") {
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

// ListSubcategoriesByCategory handles GET /api/categories/:id/subcategories.
// An unknown category yields an empty list.
func (h *Handlers) ListSubcategoriesByCategory(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	subs, err := h.querySubcategories(c, "SELECT id, category_id, name FROM subcategories WHERE category_id = ? ORDER BY id", id)
	if err != nil {
		h.storeError(c, "Failed to fetch subcategories", err)
		return
	}

	c.JSON(http.StatusOK, subs)
}

// ListProductsBySubcategory handles GET /api/categories/subcategories/:subcategoryId/products
func (h *Handlers) ListProductsBySubcategory(c *gin.Context) {
	id, ok := parseID(c, "subcategoryId")
	if !ok {
		return
	}

	products, err := h.queryProducts(c, productSelect+" WHERE subcategory_id = ?", id)
	if err != nil {
		h.storeError(c, "Failed to fetch products", err)
		return
	}

	c.JSON(http.StatusOK, products)
}
