package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/01moynul/utensils-admin/internal/logger"
	"github.com/01moynul/utensils-admin/internal/querybuilder"
	"github.com/gin-gonic/gin"
)

func (h *Handlers) logger(c *gin.Context) *logger.Logger {
	base := h.Log
	if base == nil {
		base = logger.Discard()
	}
	return logger.FromGin(c, base)
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

// storeError logs the underlying error and answers with a generic message.
func (h *Handlers) storeError(c *gin.Context, msg string, err error) {
	h.logger(c).Error(msg, "error", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// parseID reads a positive integer path parameter, answering 400 otherwise.
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

// bindPayload decodes the body into a loose map for the allow-list builders.
func bindPayload(c *gin.Context) (map[string]interface{}, bool) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, "Invalid JSON body")
		return nil, false
	}
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return payload, true
}

// buildFailed answers a builder error: no qualifying fields is the client's fault.
func (h *Handlers) buildFailed(c *gin.Context, err error) {
	if errors.Is(err, querybuilder.ErrNoFields) {
		badRequest(c, "No valid fields provided to update")
		return
	}
	h.storeError(c, "Failed to build statement", err)
}

// rowsChanged reports whether the write matched a row, answering 404 or 500 otherwise.
func (h *Handlers) rowsChanged(c *gin.Context, res sql.Result, failMsg, missingMsg string) bool {
	n, err := res.RowsAffected()
	if err != nil {
		h.storeError(c, failMsg, err)
		return false
	}
	if n == 0 {
		notFound(c, missingMsg)
		return false
	}
	return true
}

// analyticsChanged drops cached analytics after a write. Failures are only logged.
func (h *Handlers) analyticsChanged(c *gin.Context) {
	if err := h.cache().InvalidateAnalytics(c.Request.Context()); err != nil {
		h.logger(c).Warn("analytics cache invalidation failed", "error", err)
	}
}
