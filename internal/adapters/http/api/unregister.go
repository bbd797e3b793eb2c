// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"
)

// UnregisterHandler handles unregister requests.
type UnregisterHandler struct {
	deps Dependencies
}

// NewUnregisterHandler creates a new unregister handler.
func NewUnregisterHandler(deps Dependencies) *UnregisterHandler {
	return &UnregisterHandler{deps: deps}
}

// HandleUnregister handles POST /activities/{name}/unregister requests.
func (h *UnregisterHandler) HandleUnregister(w http.ResponseWriter, r *http.Request, activity string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, ErrMissingEmail.Error())
		return
	}

	if err := h.deps.Unregister(r.Context(), activity, email); err != nil {
		writeRegistrationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Unregistered %s from %s", email, activity),
	})
}
