package report

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// OrdersReportFilename is sent in the Content-Disposition header.
const OrdersReportFilename = "orders_report.pdf"

// OrderRow is one order/product pair from the joined report query.
type OrderRow struct {
	OrderID      int64
	CustomerName string
	TotalPrice   decimal.Decimal
	Status       string
	CreatedAt    time.Time
	ProductName  string
	Quantity     int
}

// OrderLine is a product inside an order group.
type OrderLine struct {
	ProductName string
	Quantity    int
}

// OrderGroup is an order with all of its product lines.
type OrderGroup struct {
	OrderID      int64
	CustomerName string
	TotalPrice   decimal.Decimal
	Status       string
	CreatedAt    time.Time
	Items        []OrderLine
}

// GroupOrders folds report rows into one group per order id. Groups keep the order in
// which their id was first seen, so a pre-sorted query stays sorted.
func GroupOrders(rows []OrderRow) []OrderGroup {
	groups := make([]OrderGroup, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		i, ok := index[row.OrderID]
		if !ok {
			groups = append(groups, OrderGroup{
				OrderID:      row.OrderID,
				CustomerName: row.CustomerName,
				TotalPrice:   row.TotalPrice,
				Status:       row.Status,
				CreatedAt:    row.CreatedAt,
			})
			i = len(groups) - 1
			index[row.OrderID] = i
		}
		groups[i].Items = append(groups[i].Items, OrderLine{
			ProductName: row.ProductName,
			Quantity:    row.Quantity,
		})
	}
	return groups
}

// RenderOrdersReport lays the grouped orders out and returns the PDF bytes.
func RenderOrdersReport(groups []OrderGroup) ([]byte, error) {
	pdf, _ := buildOrdersReport(groups, DefaultGroupLayout)
	return output(pdf)
}

func buildOrdersReport(groups []OrderGroup, l GroupLayout) (*fpdf.Fpdf, *Cursor) {
	pdf := newDocument(l.PageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := pdf.GetPageSize()
	left := l.PageMargin
	right := pageW - l.PageMargin

	// 1. --- Title ---
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 28, tr("Orders Report"), "", 1, "C", false, 0, "")
	pdf.Ln(20)

	cursor := NewCursor(l.PageMargin, pageH-l.PageMargin, pdf.GetY(), func() {
		pdf.AddPage()
	})

	if len(groups) == 0 {
		pdf.SetFont("Helvetica", "", 12)
		pdf.CellFormat(0, l.LineHeight, tr("No orders found."), "", 1, "L", false, 0, "")
		return pdf, cursor
	}

	for idx, order := range groups {
		// 2. --- Keep the whole group on one page when it fits ---
		if cursor.Reserve(l.GroupHeight(len(order.Items))) {
			pdf.SetXY(left, cursor.Y())
		}

		pdf.SetTextColor(0, 51, 102)
		labelled(pdf, l.LineHeight, "Order ID: ", fmt.Sprintf("%d", order.OrderID), true)
		labelled(pdf, l.LineHeight, "Customer: ", tr(orDash(order.CustomerName)), true)
		labelled(pdf, l.LineHeight, "Total Price: ", "$"+order.TotalPrice.StringFixed(2), false)
		labelled(pdf, l.LineHeight, "   Status: ", tr(order.Status), true)
		labelled(pdf, l.LineHeight, "Order Date: ", formatDate(order.CreatedAt), true)
		pdf.Ln(l.LineHeight / 2)

		// 3. --- Product lines ---
		pdf.SetTextColor(85, 85, 85)
		pdf.SetFont("Helvetica", "BU", 13)
		pdf.CellFormat(0, l.LineHeight, "Products:", "", 1, "L", false, 0, "")

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 12)
		cursor.Set(pdf.GetY())
		for _, item := range order.Items {
			if cursor.Reserve(l.ItemLineHeight) {
				pdf.SetY(cursor.Y())
			}
			pdf.SetX(left + l.ItemIndent)
			line := fmt.Sprintf("•  %s (Quantity: %d)", item.ProductName, item.Quantity)
			pdf.CellFormat(0, l.ItemLineHeight, tr(line), "", 1, "L", false, 0, "")
			cursor.Set(pdf.GetY())
		}

		pdf.Ln(l.GroupGap)
		cursor.Set(pdf.GetY())

		// 4. --- Separator between groups, not after the last one ---
		if idx < len(groups)-1 {
			pdf.SetDrawColor(204, 204, 204)
			pdf.SetLineWidth(1)
			pdf.Line(left, cursor.Y(), right, cursor.Y())
			pdf.Ln(l.SeparatorGap)
			cursor.Set(pdf.GetY())
		}
	}

	return pdf, cursor
}

// labelled writes "Label: value" with a bold label. When newline is false the next
// write continues on the same line.
func labelled(pdf *fpdf.Fpdf, h float64, label, value string, newline bool) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Write(h, label)
	pdf.SetFont("Helvetica", "", 14)
	pdf.Write(h, value)
	if newline {
		pdf.Ln(h)
	}
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Jan 2, 2006")
}
