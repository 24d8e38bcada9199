package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/openfest/gatekeeper/internal/api/middleware"
	"github.com/openfest/gatekeeper/internal/api/request"
	"github.com/openfest/gatekeeper/internal/api/response"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/participant"
)

// ParticipantHandler handles participant record endpoints
type ParticipantHandler struct {
	controller *participant.Controller
}

// NewParticipantHandler creates a new participant handler
func NewParticipantHandler(controller *participant.Controller) *ParticipantHandler {
	return &ParticipantHandler{
		controller: controller,
	}
}

// participantID extracts the identifier path variable
func participantID(r *http.Request) model.ParticipantID {
	return model.ParticipantID(strings.ToUpper(mux.Vars(r)["id"]))
}

// Get handles GET /api/v1/participants/{id}
// Lookup by identifier is public so participants can check their own state.
func (h *ParticipantHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.controller.Get(r.Context(), participantID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ParticipantFromModel(p))
}

// List handles GET /api/v1/participants
func (h *ParticipantHandler) List(w http.ResponseWriter, r *http.Request) {
	participants, err := h.controller.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ParticipantListFromModel(participants))
}

// RegisterWalkIn handles POST /api/v1/participants
func (h *ParticipantHandler) RegisterWalkIn(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterWalkInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		WriteError(w, NewInvalidRequestError("email is required"))
		return
	}

	staff := middleware.MustGetStaff(r.Context())

	p, err := h.controller.RegisterWalkIn(r.Context(), participant.WalkInInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		College: req.College,
		Events:  req.Events,
	}, staff.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ParticipantFromModel(p))
}

// Delete handles DELETE /api/v1/participants/{id}
func (h *ParticipantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.Delete(r.Context(), participantID(r)); err != nil {
		WriteError(w, err)
		return
	}
	response.NoContent(w)
}

// GetLog handles GET /api/v1/participants/{id}/logs
func (h *ParticipantHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	entries, err := h.controller.GetLog(r.Context(), participantID(r))
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ActionLog{
		Entries: response.ActionLogFromModel(entries),
		Count:   len(entries),
	})
}

// defaultRecentActionsLimit is used when no limit query parameter is given
const defaultRecentActionsLimit = 50

// RecentActions handles GET /api/v1/actions/recent
func (h *ParticipantHandler) RecentActions(w http.ResponseWriter, r *http.Request) {
	limit := defaultRecentActionsLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			WriteError(w, NewInvalidRequestError("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	entries, err := h.controller.RecentActions(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.ActionLog{
		Entries: response.ActionLogFromModel(entries),
		Count:   len(entries),
	})
}

// Stats handles GET /api/v1/stats
func (h *ParticipantHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.controller.ComputeStats(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, stats)
}
