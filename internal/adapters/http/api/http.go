// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// List returns a snapshot of the catalog keyed by activity name.
	List(ctx context.Context) map[string]Activity

	// Signup registers a student for the named activity.
	Signup(ctx context.Context, activity, email string) error

	// Unregister removes a student from the named activity.
	Unregister(ctx context.Context, activity, email string) error

	// RecentEvents returns up to n audit events, newest first.
	RecentEvents(ctx context.Context, n int) ([]Event, error)
}

// Activity mirrors the read shape returned by catalog queries.
type Activity = model.Activity

// Event mirrors the entries returned by the audit trail.
type Event = model.RegistrationEvent

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	activitiesHandler *ActivitiesHandler
	signupHandler     *SignupHandler
	unregisterHandler *UnregisterHandler
	auditHandler      *AuditHandler
	dashboardHandler  *dashboardHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		activitiesHandler: NewActivitiesHandler(deps),
		signupHandler:     NewSignupHandler(deps),
		unregisterHandler: NewUnregisterHandler(deps),
		auditHandler:      NewAuditHandler(deps),
		dashboardHandler:  newdashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux, deps Dependencies) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/audit", MetricsMiddleware(s.auditHandler.HandleRecentEvents, "audit"))
	mux.HandleFunc("/activities", MetricsMiddleware(s.activitiesHandler.HandleListActivities, "activities"))
	mux.HandleFunc("/activities/", MetricsMiddleware(s.routeRegistration, "registration"))
}

// routeRegistration dispatches /activities/{name}/{action} to the signup or
// unregister handler. The name segment arrives already percent-decoded.
func (s *Server) routeRegistration(w http.ResponseWriter, r *http.Request) {
	activity, action, ok := splitActivityPath(r.URL.Path)
	if !ok {
		http.NotFound(w, r)
		return
	}
	switch action {
	case actionSignup:
		s.signupHandler.HandleSignup(w, r, activity)
	case actionUnregister:
		s.unregisterHandler.HandleUnregister(w, r, activity)
	default:
		http.NotFound(w, r)
	}
}

// messageResponse acknowledges a successful registration change.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the error schema shared by every failing route.
type errorResponse struct {
	Detail string `json:"detail"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	if detail == "" {
		detail = http.StatusText(status)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}
