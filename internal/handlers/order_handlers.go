package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/utensils-admin/internal/events"
	"github.com/01moynul/utensils-admin/internal/logger"
	"github.com/01moynul/utensils-admin/internal/models"
	"github.com/gin-gonic/gin"
)

const orderSelect = "SELECT order_id, user_id, total_price, status, shipping_address, created_at FROM orders"

func scanOrder(s rowScanner) (models.Order, error) {
	var o models.Order
	var address sql.NullString
	if err := s.Scan(&o.OrderID, &o.UserID, &o.TotalPrice, &o.Status, &address, &o.CreatedAt); err != nil {
		return o, err
	}
	o.ShippingAddress = shippingAddress(address)
	return o, nil
}

// shippingAddress keeps the address a string at the API boundary; NULL becomes "{}".
func shippingAddress(v sql.NullString) string {
	if !v.Valid {
		return "{}"
	}
	return v.String
}

// ListOrders handles GET /api/orders
func (h *Handlers) ListOrders(c *gin.Context) {
	rows, err := h.DB.QueryContext(c.Request.Context(), orderSelect+" ORDER BY order_id")
	if err != nil {
		h.storeError(c, "Failed to fetch orders", err)
		return
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			h.storeError(c, "Failed to read orders", err)
			return
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		h.storeError(c, "Failed to read orders", err)
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/:id and includes the order's items.
func (h *Handlers) GetOrder(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// 1. --- Order row ---
	order, err := scanOrder(h.DB.QueryRowContext(ctx, orderSelect+" WHERE order_id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		notFound(c, "Order not found")
		return
	}
	if err != nil {
		h.storeError(c, "Database error fetching order", err)
		return
	}

	// 2. --- Items ---
	query := `
		SELECT oi.quantity, oi.price, p.name
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = ?`
	rows, err := h.DB.QueryContext(ctx, query, id)
	if err != nil {
		h.storeError(c, "Database error fetching order items", err)
		return
	}
	defer rows.Close()

	detail := models.OrderDetail{Order: order, Items: []models.OrderItemLine{}}
	for rows.Next() {
		var item models.OrderItemLine
		if err := rows.Scan(&item.Quantity, &item.Price, &item.Name); err != nil {
			h.storeError(c, "Database error fetching order items", err)
			return
		}
		detail.Items = append(detail.Items, item)
	}
	if err := rows.Err(); err != nil {
		h.storeError(c, "Database error fetching order items", err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// UpdateOrderStatus handles PUT /api/orders/:id.
// A successful change drops cached analytics and emits OrderStatusChanged.
func (h *Handlers) UpdateOrderStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input models.UpdateOrderStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Status is required")
		return
	}
	ctx := c.Request.Context()

	res, err := h.DB.ExecContext(ctx, "UPDATE orders SET status = ? WHERE order_id = ?", input.Status, id)
	if err != nil {
		h.storeError(c, "Failed to update order status", err)
		return
	}
	if !h.rowsChanged(c, res, "Failed to update order status", "Order not found") {
		return
	}

	// Side effects never fail the request; the row is already updated.
	h.analyticsChanged(c)
	env, err := events.NewEnvelope(events.EventOrderStatusChanged, strconv.FormatInt(id, 10),
		events.OrderStatusChangedPayload{OrderID: id, Status: input.Status, RequestID: logger.RequestID(c)})
	if err == nil {
		err = h.events().Publish(ctx, env)
	}
	if err != nil {
		h.logger(c).Warn("order status event not published", "order_id", id, "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
}
