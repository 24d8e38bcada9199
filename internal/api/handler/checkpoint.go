package handler

import (
	"context"
	"net/http"

	"github.com/openfest/gatekeeper/internal/api/middleware"
	"github.com/openfest/gatekeeper/internal/api/response"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/checkpoint"
)

// CheckpointHandler handles checkpoint advance endpoints
type CheckpointHandler struct {
	controller *checkpoint.Controller
}

// NewCheckpointHandler creates a new checkpoint handler
func NewCheckpointHandler(controller *checkpoint.Controller) *CheckpointHandler {
	return &CheckpointHandler{
		controller: controller,
	}
}

type advanceFunc func(ctx context.Context, id model.ParticipantID, actor string) (*model.Participant, error)

// advance runs one checkpoint action and writes the updated participant
func (h *CheckpointHandler) advance(w http.ResponseWriter, r *http.Request, fn advanceFunc) {
	staff := middleware.MustGetStaff(r.Context())

	p, err := fn(r.Context(), participantID(r), staff.Username)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ParticipantFromModel(p))
}

// GateIn handles POST /api/v1/participants/{id}/gate-in
func (h *CheckpointHandler) GateIn(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.controller.GateIn)
}

// ConfirmPayment handles POST /api/v1/participants/{id}/payment
func (h *CheckpointHandler) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.controller.ConfirmPayment)
}

// CheckIn handles POST /api/v1/participants/{id}/check-in
func (h *CheckpointHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.controller.CheckIn)
}

// CheckOut handles POST /api/v1/participants/{id}/check-out
func (h *CheckpointHandler) CheckOut(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.controller.CheckOut)
}

// GateOut handles POST /api/v1/participants/{id}/gate-out
func (h *CheckpointHandler) GateOut(w http.ResponseWriter, r *http.Request) {
	h.advance(w, r, h.controller.GateOut)
}
