package handlers_test

import (
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/utensils-admin/internal/handlers"
)

func TestTotals(t *testing.T) {
	r, mock := newTestAPI(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM register")).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow(42))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"totalOrders"}).AddRow(9))

	w := doJSON(r, http.MethodGet, "/api/analytics/total-users", "")
	assert.JSONEq(t, `{"total":42}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/analytics/total-orders", "")
	assert.JSONEq(t, `{"totalOrders":9}`, w.Body.String())
}

func TestTotalRevenueOverNoOrdersIsZero(t *testing.T) {
	r, mock := newTestAPI(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(SUM(total_price), 0) FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"revenue"}).AddRow("0"))

	w := doJSON(r, http.MethodGet, "/api/analytics/total-revenue", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"revenue":0}`, w.Body.String())
}

func TestTopProductsLimitedAndDescending(t *testing.T) {
	r, mock := newTestAPI(t)

	rows := sqlmock.NewRows([]string{"id", "name", "image", "sales"})
	for i, sales := range []int64{50, 40, 40, 12, 3} {
		rows.AddRow(int64(i+1), "Product", nil, sales)
	}
	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY sales DESC, p.id ASC LIMIT ?")).
		WithArgs(5).
		WillReturnRows(rows)

	w := doJSON(r, http.MethodGet, "/api/analytics/top-products", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Products []struct {
			ID    int64 `json:"id"`
			Sales int64 `json:"sales"`
		} `json:"products"`
	}](t, w)
	require.LessOrEqual(t, len(body.Products), 5)
	for i := 1; i < len(body.Products); i++ {
		assert.GreaterOrEqual(t, body.Products[i-1].Sales, body.Products[i].Sales)
	}
	assert.Equal(t, int64(2), body.Products[1].ID)
}

func TestTopProductsWithoutSales(t *testing.T) {
	r, mock := newTestAPI(t)
	mock.ExpectQuery("FROM order_items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "image", "sales"}))

	w := doJSON(r, http.MethodGet, "/api/analytics/top-products", "")
	assert.JSONEq(t, `{"products":[]}`, w.Body.String())
}

func TestCategorySalesOrder(t *testing.T) {
	r, mock := newTestAPI(t)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY c.name ORDER BY totalSales DESC, c.name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"category", "totalSales"}).
			AddRow("B", int64(30)).
			AddRow("A", int64(10)))

	w := doJSON(r, http.MethodGet, "/api/analytics/category-sales", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[{"category":"B","totalSales":30},{"category":"A","totalSales":10}]}`, w.Body.String())
}

func TestAnalyticsServedFromCache(t *testing.T) {
	c := newMemoryCache()
	r, mock := newTestAPI(t, func(h *handlers.Handlers) { h.Cache = c })

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM orders")).
		WillReturnRows(sqlmock.NewRows([]string{"totalOrders"}).AddRow(3))

	first := doJSON(r, http.MethodGet, "/api/analytics/total-orders", "")
	second := doJSON(r, http.MethodGet, "/api/analytics/total-orders", "")

	assert.JSONEq(t, `{"totalOrders":3}`, first.Body.String())
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.Contains(t, c.data, "total-orders")
}

func TestAnalyticsStoreError(t *testing.T) {
	c := newMemoryCache()
	r, mock := newTestAPI(t, func(h *handlers.Handlers) { h.Cache = c })
	mock.ExpectQuery("FROM orders").WillReturnError(errors.New("lost connection"))

	w := doJSON(r, http.MethodGet, "/api/analytics/total-revenue", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch revenue"}`, w.Body.String())
	assert.Empty(t, c.data)
}
