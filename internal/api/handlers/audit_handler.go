package handlers

import (
	"net/http"
	"strconv"

	"github.com/jmorell/newsroom-be/internal/services"
	"github.com/rs/zerolog/log"
)

// AuditHandler handles HTTP requests for the audit trail.
type AuditHandler struct {
	service services.AuditServiceProvider
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(service services.AuditServiceProvider) *AuditHandler {
	return &AuditHandler{service: service}
}

// GetRecent handles the request to get recent audit events.
func (h *AuditHandler) GetRecent(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		limit = 20 // Default limit
	}

	events, err := h.service.GetRecentEvents(limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve audit events")
		respondMsg(w, http.StatusInternalServerError, "Error fetching events")
		return
	}

	respondJSON(w, http.StatusOK, events)
}
