package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/auth"
	"github.com/openfest/gatekeeper/internal/services/roster"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest       = "INVALID_REQUEST"
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeForbidden            = "FORBIDDEN"
	CodeParticipantNotFound  = "PARTICIPANT_NOT_FOUND"
	CodeAlreadyInside        = "ALREADY_INSIDE"
	CodeNotInside            = "NOT_INSIDE"
	CodeAlreadyPaid          = "ALREADY_PAID"
	CodePaymentRequired      = "PAYMENT_REQUIRED"
	CodeAlreadyCheckedIn     = "ALREADY_CHECKED_IN"
	CodeNotCheckedIn         = "NOT_CHECKED_IN"
	CodeAlreadyCheckedOut    = "ALREADY_CHECKED_OUT"
	CodeIdentifierTaken      = "IDENTIFIER_TAKEN"
	CodeIdentifierExhausted  = "IDENTIFIER_EXHAUSTED"
	CodeUsernameExists       = "USERNAME_EXISTS"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeUnsupportedFormat    = "UNSUPPORTED_FORMAT"
	CodeInvalidRoster        = "INVALID_ROSTER"
	CodeInternalError        = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrParticipantNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeParticipantNotFound, "Participant not found"}}
	case errors.Is(err, model.ErrAlreadyInside):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyInside, "Participant is already inside campus"}}
	case errors.Is(err, model.ErrNotInside):
		return &httpError{http.StatusConflict, APIError{CodeNotInside, "Participant has not gated in"}}
	case errors.Is(err, model.ErrAlreadyPaid):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyPaid, "Payment is already confirmed"}}
	case errors.Is(err, model.ErrPaymentRequired):
		return &httpError{http.StatusConflict, APIError{CodePaymentRequired, "Payment must be confirmed before check-in"}}
	case errors.Is(err, model.ErrAlreadyCheckedIn):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyCheckedIn, "Participant is already checked in"}}
	case errors.Is(err, model.ErrNotCheckedIn):
		return &httpError{http.StatusConflict, APIError{CodeNotCheckedIn, "Participant has not checked in"}}
	case errors.Is(err, model.ErrAlreadyCheckedOut):
		return &httpError{http.StatusConflict, APIError{CodeAlreadyCheckedOut, "Participant is already checked out"}}
	case errors.Is(err, model.ErrIdentifierTaken):
		return &httpError{http.StatusConflict, APIError{CodeIdentifierTaken, "Identifier is already allocated"}}
	case errors.Is(err, model.ErrIdentifierExhausted):
		return &httpError{http.StatusConflict, APIError{CodeIdentifierExhausted, "Could not allocate a unique identifier"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}

	// Map roster errors
	case errors.Is(err, roster.ErrUnsupportedFormat):
		return &httpError{http.StatusBadRequest, APIError{CodeUnsupportedFormat, "Roster must be a .csv or .xlsx file"}}
	case errors.Is(err, roster.ErrNoHeader):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRoster, "Roster has no usable header row"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates a forbidden error
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Insufficient role for this action"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
