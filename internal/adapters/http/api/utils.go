// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mergington/activities/internal/adapters/repository"
)

// Registration actions accepted below /activities/.
const (
	actionSignup     = "signup"
	actionUnregister = "unregister"
)

// splitActivityPath breaks an /activities/{name}/{action} path into the
// activity name and the trailing action. Activity names may contain spaces,
// so everything up to the last separator belongs to the name.
func splitActivityPath(path string) (activity, action string, ok bool) {
	rest := strings.TrimPrefix(path, "/activities/")
	if rest == path || rest == "" {
		return "", "", false
	}
	idx := strings.LastIndex(rest, "/")
	if idx <= 0 || idx == len(rest)-1 {
		return "", "", false
	}
	return rest[:idx], rest[idx+1:], true
}

// writeRegistrationError translates registry errors into the HTTP error
// contract shared by the signup and unregister routes.
func writeRegistrationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrActivityNotFound):
		writeError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, repository.ErrAlreadySignedUp):
		writeError(w, http.StatusBadRequest, "Student is already signed up")
	case errors.Is(err, repository.ErrNotSignedUp):
		writeError(w, http.StatusBadRequest, "Student is not signed up for this activity")
	default:
		writeError(w, http.StatusInternalServerError, "")
	}
}
