package handler

import (
	"encoding/json"
	"net/http"

	"github.com/openfest/gatekeeper/internal/api/middleware"
	"github.com/openfest/gatekeeper/internal/api/request"
	"github.com/openfest/gatekeeper/internal/api/response"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/auth"
)

// StaffHandler handles staff account endpoints
type StaffHandler struct {
	authService *auth.Service
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(authService *auth.Service) *StaffHandler {
	return &StaffHandler{
		authService: authService,
	}
}

// Login handles POST /api/v1/staff/login
func (h *StaffHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// Logout handles POST /api/v1/staff/logout
func (h *StaffHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.GetSession(r.Context())
	if session != nil {
		h.authService.InvalidateSession(session.Token)
	}
	response.NoContent(w)
}

// GetMe handles GET /api/v1/staff/me
func (h *StaffHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	staff := middleware.MustGetStaff(r.Context())
	response.JSON(w, http.StatusOK, response.StaffFromModel(staff))
}

// Create handles POST /api/v1/staff (admin only)
func (h *StaffHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateStaffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		WriteError(w, NewInvalidRequestError("username is required"))
		return
	}
	if len(req.Password) < 8 {
		WriteError(w, NewInvalidRequestError("password must be at least 8 characters"))
		return
	}
	if req.DisplayName == "" {
		WriteError(w, NewInvalidRequestError("display_name is required"))
		return
	}

	role := model.Role(req.Role)
	if role != model.RoleAdmin && role != model.RoleOperator {
		WriteError(w, NewInvalidRequestError("role must be admin or operator"))
		return
	}

	staff, err := h.authService.CreateStaff(r.Context(), req.Username, req.Password, req.DisplayName, role)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.StaffFromModel(staff))
}
