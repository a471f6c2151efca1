package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/01moynul/utensils-admin/internal/report"
	"github.com/gin-gonic/gin"
)

const (
	defaultRecentSignupWindow = 30 * 24 * time.Hour
	defaultUserReportLimit    = 50
)

// sendPDF answers with a finished document as a download.
func sendPDF(c *gin.Context, filename string, doc []byte) {
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", doc)
}

// UserReport handles GET /api/analytics/user-report
func (h *Handlers) UserReport(c *gin.Context) {
	ctx := c.Request.Context()

	window := h.Analytics.RecentSignupWindow
	if window <= 0 {
		window = defaultRecentSignupWindow
	}
	limit := h.Analytics.UserReportLimit
	if limit <= 0 {
		limit = defaultUserReportLimit
	}
	data := report.UserReport{RecentWindow: window}

	// 1. --- Summary counts ---
	if err := h.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM register").Scan(&data.TotalUsers); err != nil {
		h.storeError(c, "Failed to generate user report", err)
		return
	}
	// The cutoff is taken on the database clock, the same one that fills createdAt.
	if err := h.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM register WHERE createdAt >= DATE_SUB(NOW(), INTERVAL ? SECOND)",
		int64(window.Seconds())).Scan(&data.RecentSignups); err != nil {
		h.storeError(c, "Failed to generate user report", err)
		return
	}

	// 2. --- Latest users ---
	rows, err := h.DB.QueryContext(ctx, "SELECT firstName, email, phone FROM register ORDER BY createdAt DESC LIMIT ?", limit)
	if err != nil {
		h.storeError(c, "Failed to generate user report", err)
		return
	}
	defer rows.Close()

	for rows.Next() {
		var first, email, phone sql.NullString
		if err := rows.Scan(&first, &email, &phone); err != nil {
			h.storeError(c, "Failed to generate user report", err)
			return
		}
		data.Users = append(data.Users, report.UserRow{FirstName: first.String, Email: email.String, Phone: phone.String})
	}
	if err := rows.Err(); err != nil {
		h.storeError(c, "Failed to generate user report", err)
		return
	}

	// 3. --- Render ---
	doc, err := report.RenderUserReport(data)
	if err != nil {
		h.storeError(c, "Failed to generate user report", err)
		return
	}
	sendPDF(c, report.UserReportFilename, doc)
}

// OrdersReport handles GET /api/analytics/orders-report
func (h *Handlers) OrdersReport(c *gin.Context) {
	query := `
		SELECT o.order_id, r.firstName, o.total_price, o.status, o.created_at, p.name, oi.quantity
		FROM orders o
		JOIN register r ON o.user_id = r.id
		JOIN order_items oi ON o.order_id = oi.order_id
		JOIN products p ON oi.product_id = p.id
		ORDER BY o.created_at DESC, o.order_id, p.name`

	rows, err := h.DB.QueryContext(c.Request.Context(), query)
	if err != nil {
		h.storeError(c, "Failed to generate orders report", err)
		return
	}
	defer rows.Close()

	var lines []report.OrderRow
	for rows.Next() {
		var row report.OrderRow
		var customer sql.NullString
		if err := rows.Scan(&row.OrderID, &customer, &row.TotalPrice, &row.Status, &row.CreatedAt, &row.ProductName, &row.Quantity); err != nil {
			h.storeError(c, "Failed to generate orders report", err)
			return
		}
		row.CustomerName = customer.String
		lines = append(lines, row)
	}
	if err := rows.Err(); err != nil {
		h.storeError(c, "Failed to generate orders report", err)
		return
	}

	doc, err := report.RenderOrdersReport(report.GroupOrders(lines))
	if err != nil {
		h.storeError(c, "Failed to generate orders report", err)
		return
	}
	sendPDF(c, report.OrdersReportFilename, doc)
}
