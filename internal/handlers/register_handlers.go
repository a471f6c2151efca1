package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/01moynul/utensils-admin/internal/models"
	"github.com/01moynul/utensils-admin/internal/querybuilder"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var registerWrites = querybuilder.Entity{
	Table: "register",
	Insert: []querybuilder.Field{
		{Name: "firstName", Policy: querybuilder.IncludeTruthy},
		{Name: "lastName", Policy: querybuilder.IncludeTruthy},
		{Name: "email", Policy: querybuilder.IncludeTruthy},
		{Name: "phone", Policy: querybuilder.IncludeTruthy},
		{Name: "password", Policy: querybuilder.IncludeTruthy},
	},
	Update: []querybuilder.Field{
		{Name: "firstName", Policy: querybuilder.IncludeProvided},
		{Name: "lastName", Policy: querybuilder.IncludeProvided},
		{Name: "email", Policy: querybuilder.IncludeProvided},
		{Name: "phone", Policy: querybuilder.IncludeProvided},
		{Name: "password", Policy: querybuilder.IncludeProvided},
		{Name: "profileImage", Policy: querybuilder.IncludeProvided},
	},
}

var (
	errEmptyPassword = errors.New("password cannot be empty")
	errPasswordType  = errors.New("password must be a string")
)

// hashPasswordField replaces a plaintext "password" in payload with its bcrypt hash.
// With required set, an explicitly provided empty password is rejected; otherwise it
// is left for the insert policy to store as NULL.
func hashPasswordField(payload map[string]interface{}, required bool) error {
	raw, present := payload["password"]
	if !present {
		return nil
	}
	if !querybuilder.Truthy(raw) {
		if required {
			return errEmptyPassword
		}
		return nil
	}
	plaintext, isString := raw.(string)
	if !isString {
		return errPasswordType
	}

	var pw models.Password
	if err := pw.Set(plaintext); err != nil {
		return err
	}
	payload["password"] = pw.Hash
	return nil
}

// passwordRejected answers a hashPasswordField error.
func (h *Handlers) passwordRejected(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errEmptyPassword):
		badRequest(c, "Password cannot be empty")
	case errors.Is(err, errPasswordType):
		badRequest(c, "Password must be a string")
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		badRequest(c, "Password is too long")
	default:
		h.storeError(c, "Failed to hash password", err)
	}
}

// ListRegisters handles GET /api/register.
// The password column is never selected.
func (h *Handlers) ListRegisters(c *gin.Context) {
	rows, err := h.DB.QueryContext(c.Request.Context(),
		"SELECT id, firstName, lastName, email, phone, profileImage FROM register ORDER BY id")
	if err != nil {
		h.storeError(c, "Failed to fetch records", err)
		return
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		h.storeError(c, "Failed to fetch records", err)
		return
	}

	users := []models.Register{}
	for rows.Next() {
		var u models.Register
		if err := rows.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.ProfileImage); err != nil {
			h.storeError(c, "Failed to read records", err)
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		h.storeError(c, "Failed to read records", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "columns": columns})
}

// CreateRegister handles POST /api/register.
// Missing or empty fields are stored as NULL.
func (h *Handlers) CreateRegister(c *gin.Context) {
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	if err := hashPasswordField(payload, false); err != nil {
		h.passwordRejected(c, err)
		return
	}

	stmt, err := registerWrites.BuildInsert(payload)
	if err != nil {
		h.buildFailed(c, err)
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(), stmt.SQL, stmt.Args...)
	if err != nil {
		h.storeError(c, "Failed to add record", err)
		return
	}
	id, err := res.LastInsertId()
	if err != nil {
		h.storeError(c, "Failed to add record", err)
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusOK, gin.H{"message": "Record added", "insertId": id})
}

// UpdateRegister handles PUT /api/register/:id.
// Only the keys present in the body are written, empty strings included.
func (h *Handlers) UpdateRegister(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c)
	if !ok {
		return
	}
	if err := hashPasswordField(payload, true); err != nil {
		h.passwordRejected(c, err)
		return
	}

	stmt, err := registerWrites.BuildUpdate(id, payload)
	if err != nil {
		h.buildFailed(c, err)
		return
	}

	res, err := h.DB.ExecContext(c.Request.Context(), stmt.SQL, stmt.Args...)
	if err != nil {
		h.storeError(c, "Failed to update record", err)
		return
	}
	if !h.rowsChanged(c, res, "Failed to update record", "Record not found") {
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusOK, gin.H{"message": "Record updated"})
}

// DeleteRegister handles DELETE /api/register/:id
func (h *Handlers) DeleteRegister(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	stmt := registerWrites.BuildDelete(id)
	res, err := h.DB.ExecContext(c.Request.Context(), stmt.SQL, stmt.Args...)
	if err != nil {
		h.storeError(c, "Failed to delete record", err)
		return
	}
	if !h.rowsChanged(c, res, "Failed to delete record", "Record not found") {
		return
	}

	h.analyticsChanged(c)
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted"})
}

// Login handles POST /api/auth/login and returns a bearer token.
func (h *Handlers) Login(c *gin.Context) {
	if h.Tokens == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Login is not configured"})
		return
	}

	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, "Email and password are required")
		return
	}

	// 1. --- Find the account ---
	if !h.isAdmin(input.Email) {
		h.logger(c).Warn("login refused for non-admin account")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	var id int64
	var hash sql.NullString
	err := h.DB.QueryRowContext(c.Request.Context(),
		"SELECT id, password FROM register WHERE email = ?", input.Email).Scan(&id, &hash)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		h.storeError(c, "Failed to log in", err)
		return
	}

	// 2. --- Check the password ---
	matches := false
	if err == nil && hash.Valid {
		pw := models.Password{Hash: hash.String}
		if matches, err = pw.Matches(input.Password); err != nil {
			h.logger(c).Warn("stored password is not a bcrypt hash", "register_id", id)
			matches = false
		}
	}
	if !matches {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	// 3. --- Issue the token ---
	token, err := h.Tokens.GenerateToken(id)
	if err != nil {
		h.storeError(c, "Failed to log in", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
