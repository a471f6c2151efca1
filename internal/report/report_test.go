package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func users(n int) []UserRow {
	rows := make([]UserRow, n)
	for i := range rows {
		rows[i] = UserRow{
			FirstName: fmt.Sprintf("User %d", i),
			Email:     fmt.Sprintf("user%d@example.com", i),
		}
	}
	return rows
}

func TestRenderUserReportProducesPDF(t *testing.T) {
	out, err := RenderUserReport(UserReport{
		TotalUsers:    3,
		RecentSignups: 1,
		RecentWindow:  30 * 24 * time.Hour,
		Users:         users(3),
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestUserReportFitsSmallTableOnOnePage(t *testing.T) {
	pdf, cursor := buildUserReport(UserReport{TotalUsers: 5, Users: users(5)}, DefaultTableLayout)
	require.NoError(t, pdf.Error())
	assert.Equal(t, 1, pdf.PageNo())
	assert.Equal(t, 1, cursor.Pages())
}

func TestUserReportBreaksPagesAtBottomThreshold(t *testing.T) {
	l := DefaultTableLayout
	pdf, cursor := buildUserReport(UserReport{TotalUsers: 50, Users: users(50)}, l)
	require.NoError(t, pdf.Error())

	assert.Equal(t, 2, pdf.PageNo())
	assert.Equal(t, pdf.PageNo(), cursor.Pages())
	assert.LessOrEqual(t, cursor.Y(), l.PageBottom)
}

func TestGroupOrdersKeepsFirstSeenOrder(t *testing.T) {
	day := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	rows := []OrderRow{
		{OrderID: 9, CustomerName: "Ada", TotalPrice: decimal.RequireFromString("25.5"), Status: "pending", CreatedAt: day, ProductName: "Pan", Quantity: 1},
		{OrderID: 9, CustomerName: "Ada", TotalPrice: decimal.RequireFromString("25.5"), Status: "pending", CreatedAt: day, ProductName: "Whisk", Quantity: 2},
		{OrderID: 3, CustomerName: "Lin", TotalPrice: decimal.RequireFromString("4"), Status: "shipped", CreatedAt: day, ProductName: "Spoon", Quantity: 4},
		{OrderID: 9, CustomerName: "Ada", TotalPrice: decimal.RequireFromString("25.5"), Status: "pending", CreatedAt: day, ProductName: "Zester", Quantity: 1},
	}

	groups := GroupOrders(rows)
	require.Len(t, groups, 2)
	assert.Equal(t, int64(9), groups[0].OrderID)
	assert.Equal(t, int64(3), groups[1].OrderID)
	assert.Equal(t, []OrderLine{{"Pan", 1}, {"Whisk", 2}, {"Zester", 1}}, groups[0].Items)
	assert.Equal(t, "25.50", groups[0].TotalPrice.StringFixed(2))
}

func TestGroupOrdersEmpty(t *testing.T) {
	assert.Empty(t, GroupOrders(nil))
}

func TestOrdersReportPaginatesGroups(t *testing.T) {
	groups := make([]OrderGroup, 12)
	for i := range groups {
		groups[i] = OrderGroup{
			OrderID:      int64(i + 1),
			CustomerName: "Customer",
			TotalPrice:   decimal.NewFromInt(10),
			Status:       "delivered",
			CreatedAt:    time.Now(),
			Items:        []OrderLine{{"Skillet", 1}, {"Ladle", 2}},
		}
	}

	pdf, cursor := buildOrdersReport(groups, DefaultGroupLayout)
	require.NoError(t, pdf.Error())
	assert.Greater(t, pdf.PageNo(), 1)
	assert.Equal(t, pdf.PageNo(), cursor.Pages())

	out, err := RenderOrdersReport(groups)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-", string(out[:5]))
}

func TestOrdersReportWithoutOrders(t *testing.T) {
	pdf, _ := buildOrdersReport(nil, DefaultGroupLayout)
	require.NoError(t, pdf.Error())
	assert.Equal(t, 1, pdf.PageNo())
}
