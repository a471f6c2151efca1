package handlers

import (
	"context"
	"net/http"

	"github.com/01moynul/utensils-admin/internal/models"
	"github.com/gin-gonic/gin"
)

// Cache metric names, one per endpoint.
const (
	metricTotalUsers    = "total-users"
	metricTotalOrders   = "total-orders"
	metricTotalRevenue  = "total-revenue"
	metricTopProducts   = "top-products"
	metricCategorySales = "category-sales"
)

// topProductsLimit caps GET /analytics/top-products.
const topProductsLimit = 5

// cached fills dst from the analytics cache, or runs load and stores the result.
// Cache failures are logged and otherwise ignored.
func (h *Handlers) cached(c *gin.Context, metric string, dst interface{}, load func(ctx context.Context) error) error {
	ctx := c.Request.Context()
	log := h.logger(c)

	hit, err := h.cache().Get(ctx, metric, dst)
	if err != nil {
		log.Warn("analytics cache read failed", "metric", metric, "error", err)
	}
	if hit {
		return nil
	}

	if err := load(ctx); err != nil {
		return err
	}
	if err := h.cache().Set(ctx, metric, dst); err != nil {
		log.Warn("analytics cache write failed", "metric", metric, "error", err)
	}
	return nil
}

// TotalUsers handles GET /api/analytics/total-users
func (h *Handlers) TotalUsers(c *gin.Context) {
	var out models.UserCount
	err := h.cached(c, metricTotalUsers, &out, func(ctx context.Context) error {
		return h.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM register").Scan(&out.Total)
	})
	if err != nil {
		h.storeError(c, "Database error", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// TotalOrders handles GET /api/analytics/total-orders
func (h *Handlers) TotalOrders(c *gin.Context) {
	var out models.OrderCount
	err := h.cached(c, metricTotalOrders, &out, func(ctx context.Context) error {
		return h.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&out.TotalOrders)
	})
	if err != nil {
		h.storeError(c, "Internal Server Error", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// TotalRevenue handles GET /api/analytics/total-revenue; an empty orders table yields 0.
func (h *Handlers) TotalRevenue(c *gin.Context) {
	var out models.Revenue
	err := h.cached(c, metricTotalRevenue, &out, func(ctx context.Context) error {
		return h.DB.QueryRowContext(ctx, "SELECT COALESCE(SUM(total_price), 0) FROM orders").Scan(&out.Revenue)
	})
	if err != nil {
		h.storeError(c, "Failed to fetch revenue", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// TopProducts handles GET /api/analytics/top-products
func (h *Handlers) TopProducts(c *gin.Context) {
	out := models.TopProducts{Products: []models.TopProduct{}}
	err := h.cached(c, metricTopProducts, &out, func(ctx context.Context) error {
		query := `
			SELECT p.id, p.name, p.image, SUM(oi.quantity) AS sales
			FROM order_items oi
			JOIN products p ON oi.product_id = p.id
			GROUP BY p.id, p.name, p.image
			ORDER BY sales DESC, p.id ASC
			LIMIT ?`
		rows, err := h.DB.QueryContext(ctx, query, topProductsLimit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var p models.TopProduct
			if err := rows.Scan(&p.ID, &p.Name, &p.Image, &p.Sales); err != nil {
				return err
			}
			out.Products = append(out.Products, p)
		}
		return rows.Err()
	})
	if err != nil {
		h.storeError(c, "Internal Server Error", err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CategorySales handles GET /api/analytics/category-sales
func (h *Handlers) CategorySales(c *gin.Context) {
	out := models.CategorySalesReport{Data: []models.CategorySales{}}
	err := h.cached(c, metricCategorySales, &out, func(ctx context.Context) error {
		query := `
			SELECT c.name AS category, SUM(oi.quantity) AS totalSales
			FROM order_items oi
			JOIN products p ON oi.product_id = p.id
			JOIN categories c ON p.category_id = c.id
			GROUP BY c.name
			ORDER BY totalSales DESC, c.name ASC`
		rows, err := h.DB.QueryContext(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var cs models.CategorySales
			if err := rows.Scan(&cs.Category, &cs.TotalSales); err != nil {
				return err
			}
			out.Data = append(out.Data, cs)
		}
		return rows.Err()
	})
	if err != nil {
		h.storeError(c, "Failed to fetch category sales", err)
		return
	}
	c.JSON(http.StatusOK, out)
}
