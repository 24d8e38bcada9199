package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/openfest/gatekeeper/internal/api/handler"
	"github.com/openfest/gatekeeper/internal/api/middleware"
	"github.com/openfest/gatekeeper/internal/events"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/auth"
	"github.com/openfest/gatekeeper/internal/services/checkpoint"
	"github.com/openfest/gatekeeper/internal/services/participant"
	"github.com/openfest/gatekeeper/internal/services/roster"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger                *slog.Logger
	AuthService           *auth.Service
	ParticipantController *participant.Controller
	CheckpointController  *checkpoint.Controller
	RosterImporter        *roster.Importer
	FeedHub               *events.Hub
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	staffHandler := handler.NewStaffHandler(cfg.AuthService)
	participantHandler := handler.NewParticipantHandler(cfg.ParticipantController)
	checkpointHandler := handler.NewCheckpointHandler(cfg.CheckpointController)
	rosterHandler := handler.NewRosterHandler(cfg.RosterImporter)
	feedHandler := handler.NewFeedHandler(cfg.FeedHub)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	adminOnly := middleware.RequireRole(model.RoleAdmin)
	operatorOnly := middleware.RequireRole(model.RoleOperator)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Staff login (no auth required)
	api.HandleFunc("/staff/login", staffHandler.Login).Methods(http.MethodPost)

	// Public participant lookup by identifier
	api.HandleFunc("/participants/{id}", participantHandler.Get).Methods(http.MethodGet)

	// Staff routes (session required)
	staff := api.PathPrefix("/staff").Subrouter()
	staff.Use(authMiddleware)
	staff.HandleFunc("/logout", staffHandler.Logout).Methods(http.MethodPost)
	staff.HandleFunc("/me", staffHandler.GetMe).Methods(http.MethodGet)

	// Admin-only staff management
	adminStaff := api.PathPrefix("/staff").Subrouter()
	adminStaff.Use(authMiddleware, adminOnly)
	adminStaff.HandleFunc("", staffHandler.Create).Methods(http.MethodPost)

	// Operator routes: registration, checkpoint actions, logs, stats, feed
	operator := api.NewRoute().Subrouter()
	operator.Use(authMiddleware, operatorOnly)
	operator.HandleFunc("/participants", participantHandler.RegisterWalkIn).Methods(http.MethodPost)
	operator.HandleFunc("/participants/{id}/logs", participantHandler.GetLog).Methods(http.MethodGet)
	operator.HandleFunc("/participants/{id}/gate-in", checkpointHandler.GateIn).Methods(http.MethodPost)
	operator.HandleFunc("/participants/{id}/payment", checkpointHandler.ConfirmPayment).Methods(http.MethodPost)
	operator.HandleFunc("/participants/{id}/check-in", checkpointHandler.CheckIn).Methods(http.MethodPost)
	operator.HandleFunc("/participants/{id}/check-out", checkpointHandler.CheckOut).Methods(http.MethodPost)
	operator.HandleFunc("/participants/{id}/gate-out", checkpointHandler.GateOut).Methods(http.MethodPost)
	operator.HandleFunc("/actions/recent", participantHandler.RecentActions).Methods(http.MethodGet)
	operator.HandleFunc("/stats", participantHandler.Stats).Methods(http.MethodGet)
	operator.HandleFunc("/feed", feedHandler.Stream).Methods(http.MethodGet)

	// Admin routes: listing, deletion, roster import
	admin := api.NewRoute().Subrouter()
	admin.Use(authMiddleware, adminOnly)
	admin.HandleFunc("/participants", participantHandler.List).Methods(http.MethodGet)
	admin.HandleFunc("/participants/{id}", participantHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/roster/import", rosterHandler.Import).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
