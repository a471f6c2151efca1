package handlers

import (
	"strings"

	"github.com/01moynul/utensils-admin/internal/auth"
	"github.com/01moynul/utensils-admin/internal/cache"
	"github.com/01moynul/utensils-admin/internal/config"
	"github.com/01moynul/utensils-admin/internal/database"
	"github.com/01moynul/utensils-admin/internal/events"
	"github.com/01moynul/utensils-admin/internal/logger"
)

// Handlers struct holds all dependencies for our handlers.
// Cache, Events and Tokens are optional.
type Handlers struct {
	DB        database.Querier
	Log       *logger.Logger
	Cache     cache.Cache
	Events    events.Publisher
	Tokens    *auth.Issuer
	Uploads   config.UploadConfig
	Analytics config.AnalyticsConfig

	// AdminEmails restricts login when non-empty.
	AdminEmails []string
}

func (h *Handlers) cache() cache.Cache {
	if h.Cache == nil {
		return cache.Noop{}
	}
	return h.Cache
}

func (h *Handlers) events() events.Publisher {
	if h.Events == nil {
		return events.Noop{}
	}
	return h.Events
}

func (h *Handlers) isAdmin(email string) bool {
	if len(h.AdminEmails) == 0 {
		return true
	}
	for _, allowed := range h.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(email), allowed) {
			return true
		}
	}
	return false
}
