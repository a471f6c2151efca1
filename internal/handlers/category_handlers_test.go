package handlers_test

import (
	"errors"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCreateCategoryThenList(t *testing.T) {
	r, mock := newTestAPI(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories (name) VALUES (?)")).
		WithArgs("Bakeware").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name FROM categories ORDER BY id")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "Cookware").
			AddRow(4, "Bakeware"))

	w := doJSON(r, http.MethodPost, "/api/categories", `{"name":"Bakeware"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"message":"Category added successfully","id":4}`, w.Body.String())

	w = doJSON(r, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Cookware"},{"id":4,"name":"Bakeware"}]`, w.Body.String())
}

func TestCreateCategoryRequiresName(t *testing.T) {
	r, _ := newTestAPI(t)

	for _, body := range []string{`{}`, `{"name":""}`, `not json`} {
		w := doJSON(r, http.MethodPost, "/api/categories", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}

func TestListCategoriesEmptyIsArray(t *testing.T) {
	r, mock := newTestAPI(t)
	mock.ExpectQuery("SELECT id, name FROM categories").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	w := doJSON(r, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestUpdateCategory(t *testing.T) {
	r, mock := newTestAPI(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE categories SET name = ? WHERE id = ?")).
		WithArgs("Knives", 2).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE categories SET name = ? WHERE id = ?")).
		WithArgs("Knives", 99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := doJSON(r, http.MethodPut, "/api/categories/2", `{"name":"Knives"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPut, "/api/categories/99", `{"name":"Knives"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Category not found"}`, w.Body.String())
}

func TestDeleteMissingCategoryIsNotFound(t *testing.T) {
	r, mock := newTestAPI(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM categories WHERE id = ?")).
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	w := doJSON(r, http.MethodDelete, "/api/categories/999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryRejectsBadIDs(t *testing.T) {
	r, _ := newTestAPI(t)

	for _, path := range []string{"/api/categories/abc", "/api/categories/0", "/api/categories/-3"} {
		w := doJSON(r, http.MethodDelete, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.JSONEq(t, `{"error":"Invalid id"}`, w.Body.String())
	}
}

func TestStoreErrorIsGeneric(t *testing.T) {
	r, mock := newTestAPI(t)
	mock.ExpectQuery("SELECT id, name FROM categories").
		WillReturnError(errors.New("dial tcp 10.0.0.1:3306: connection refused"))

	w := doJSON(r, http.MethodGet, "/api/categories", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch categories"}`, w.Body.String())
}

func TestSubcategoriesOfUnknownCategoryIsEmpty(t *testing.T) {
	r, mock := newTestAPI(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, category_id, name FROM subcategories WHERE category_id = ?")).
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "name"}))

	w := doJSON(r, http.MethodGet, "/api/categories/42/subcategories", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
}

func TestProductsBySubcategoryRoute(t *testing.T) {
	r, mock := newTestAPI(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM products WHERE subcategory_id = ?")).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"id", "category_id", "subcategory_id", "name", "description", "image", "price", "stock"}).
			AddRow(10, 1, 3, "Whisk", nil, nil, "4.50", 12))

	w := doJSON(r, http.MethodGet, "/api/categories/subcategories/3/products", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":10,"category_id":1,"subcategory_id":3,"name":"Whisk","description":null,"image":null,"price":4.5,"stock":12}]`, w.Body.String())
}
