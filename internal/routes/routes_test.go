package routes

import (
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/01moynul/utensils-admin/internal/auth"
	"github.com/01moynul/utensils-admin/internal/handlers"
	"github.com/01moynul/utensils-admin/internal/logger"
)

func TestAuthRequiredGuardsWrites(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	issuer := auth.NewIssuer("test-secret", time.Hour)
	h := &handlers.Handlers{DB: db, Log: logger.Discard(), Tokens: issuer}
	r := SetupRouter(h, Options{AuthRequired: true})

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories (name) VALUES (?)")).
		WithArgs("Bakeware").
		WillReturnResult(sqlmock.NewResult(1, 1))

	// Reads stay public.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// Writes, reports and the user list need a token.
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Bakeware"}`)),
		httptest.NewRequest(http.MethodGet, "/api/analytics/orders-report", nil),
		httptest.NewRequest(http.MethodDelete, "/api/register/1", nil),
		httptest.NewRequest(http.MethodGet, "/api/register", nil),
	} {
		w = httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, req.URL.Path)
	}

	token, err := issuer.GenerateToken(1)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"Bakeware"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCORSAndRequestIDOnEveryResponse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r := SetupRouter(&handlers.Handlers{DB: db}, Options{AllowedOrigin: "http://admin.local"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://admin.local", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
