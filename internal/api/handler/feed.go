package handler

import (
	"net/http"

	"github.com/openfest/gatekeeper/internal/api/middleware"
	"github.com/openfest/gatekeeper/internal/events"
)

// FeedHandler streams the live activity feed
type FeedHandler struct {
	hub *events.Hub
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(hub *events.Hub) *FeedHandler {
	return &FeedHandler{
		hub: hub,
	}
}

// Stream handles GET /api/v1/feed (SSE)
func (h *FeedHandler) Stream(w http.ResponseWriter, r *http.Request) {
	staff := middleware.MustGetStaff(r.Context())
	events.ServeSSE(w, r, h.hub, staff.Username)
}
