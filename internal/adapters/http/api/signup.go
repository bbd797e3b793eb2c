// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"fmt"
	"net/http"
	"strings"
)

// SignupHandler handles signup requests.
type SignupHandler struct {
	deps Dependencies
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(deps Dependencies) *SignupHandler {
	return &SignupHandler{deps: deps}
}

// HandleSignup handles POST /activities/{name}/signup requests. The student
// email arrives as a query parameter so the site can submit a plain form
// action without a request body.
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request, activity string) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "")
		return
	}

	email := strings.TrimSpace(r.URL.Query().Get("email"))
	if email == "" {
		writeError(w, http.StatusBadRequest, ErrMissingEmail.Error())
		return
	}

	if err := h.deps.Signup(r.Context(), activity, email); err != nil {
		writeRegistrationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{
		Message: fmt.Sprintf("Signed up %s for %s", email, activity),
	})
}
