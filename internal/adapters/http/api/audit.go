// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/mergington/activities/internal/adapters/repository"
)

// Page bounds for the audit trail.
const (
	defaultAuditLimit = 20
	maxAuditLimit     = 100
)

// AuditHandler handles audit trail requests.
type AuditHandler struct {
	deps Dependencies
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(deps Dependencies) *AuditHandler {
	return &AuditHandler{deps: deps}
}

// HandleRecentEvents handles GET /audit requests. The optional limit query
// parameter caps the number of events returned, newest first.
func (h *AuditHandler) HandleRecentEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}

	limit := defaultAuditLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, ErrInvalidLimit.Error())
			return
		}
		if n > maxAuditLimit {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("limit must not exceed %d", maxAuditLimit))
			return
		}
		limit = n
	}

	events, err := h.deps.RecentEvents(r.Context(), limit)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidLimit) {
			writeError(w, http.StatusBadRequest, ErrInvalidLimit.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "")
		return
	}
	if events == nil {
		// An empty trail still serializes as a JSON array.
		events = []Event{}
	}
	writeJSON(w, http.StatusOK, events)
}
