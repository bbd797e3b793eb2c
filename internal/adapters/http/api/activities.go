// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// ActivitiesHandler handles catalog listing requests.
type ActivitiesHandler struct {
	deps Dependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleListActivities handles GET /activities requests. The response is a
// JSON object keyed by activity name so clients can address an activity
// without scanning a list.
func (h *ActivitiesHandler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}
	writeJSON(w, http.StatusOK, h.deps.List(r.Context()))
}
