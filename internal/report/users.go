package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
)

// UserReportFilename is sent in the Content-Disposition header.
const UserReportFilename = "user_analytics_report.pdf"

// UserRow is one line of the user table.
type UserRow struct {
	FirstName string
	Email     string
	Phone     string
}

// UserReport is the data behind the user analytics document.
type UserReport struct {
	TotalUsers    int
	RecentSignups int
	RecentWindow  time.Duration
	Users         []UserRow
}

// RenderUserReport lays the report out with the default table layout and returns the PDF bytes.
func RenderUserReport(r UserReport) ([]byte, error) {
	return renderUserReport(r, DefaultTableLayout)
}

func renderUserReport(r UserReport, l TableLayout) ([]byte, error) {
	pdf, _ := buildUserReport(r, l)
	return output(pdf)
}

func buildUserReport(r UserReport, l TableLayout) (*fpdf.Fpdf, *Cursor) {
	pdf := newDocument(l.PageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// 1. --- Header ---
	pdf.SetFont("Helvetica", "", 22)
	pdf.CellFormat(0, 28, tr("User Analytics Report"), "", 1, "C", false, 0, "")
	pdf.Ln(24)

	days := int(r.RecentWindow.Hours() / 24)
	if days <= 0 {
		days = 30
	}
	pdf.SetFont("Helvetica", "", 16)
	pdf.CellFormat(0, 20, fmt.Sprintf("Total Users: %d", r.TotalUsers), "", 1, "L", false, 0, "")
	pdf.Ln(10)
	pdf.CellFormat(0, 20, fmt.Sprintf("New Users (Last %d days): %d", days, r.RecentSignups), "", 1, "L", false, 0, "")
	pdf.Ln(24)

	pdf.SetFont("Helvetica", "U", 18)
	pdf.CellFormat(0, 22, tr("User Details"), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	cursor := NewCursor(l.PageTop, l.PageBottom, pdf.GetY(), func() { pdf.AddPage() })

	emailX := l.StartX + l.NameWidth + l.ColumnGap
	phoneX := emailX + l.EmailWidth + l.ColumnGap
	lineEnd := l.StartX - 5 + l.TotalWidth()

	// 2. --- Column titles on a grey band ---
	y := cursor.Y()
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(l.StartX-5, y-5, l.TotalWidth(), l.HeaderHeight, "F")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 14)
	cell(pdf, l.StartX, y, l.NameWidth, "Name")
	cell(pdf, emailX, y, l.EmailWidth, "Email")
	cell(pdf, phoneX, y, l.PhoneWidth, "Mobile Number")

	cursor.Advance(l.HeaderHeight)
	pdf.Line(l.StartX-5, cursor.Y(), lineEnd, cursor.Y())

	// 3. --- One row per user ---
	pdf.SetFont("Helvetica", "", 12)
	for _, u := range r.Users {
		y := cursor.Y()
		cell(pdf, l.StartX, y, l.NameWidth, tr(orDash(u.FirstName)))
		cell(pdf, emailX, y, l.EmailWidth, tr(orDash(u.Email)))
		cell(pdf, phoneX, y, l.PhoneWidth, tr(orDash(u.Phone)))

		cursor.Advance(l.RowHeight)
		pdf.Line(l.StartX-5, cursor.Y(), lineEnd, cursor.Y())

		cursor.BreakIfPast()
	}

	return pdf, cursor
}

func cell(pdf *fpdf.Fpdf, x, y, w float64, text string) {
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 14, text, "", 0, "L", false, 0, "")
}

func newDocument(margin float64) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	// Breaks are decided by Cursor, never by the library.
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()
	return pdf
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
