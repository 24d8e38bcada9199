package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/openfest/gatekeeper/internal/api/apierr"
	"github.com/openfest/gatekeeper/internal/model"
	"github.com/openfest/gatekeeper/internal/services/auth"
)

type contextKey string

const (
	staffContextKey   contextKey = "staff"
	sessionContextKey contextKey = "session"
)

// Auth creates authentication middleware requiring a valid staff session
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			session, err := authService.ValidateSession(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			// Add session and staff to context
			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, staffContextKey, &session.Staff)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole gates a route on the staff role. Admins pass every gate.
func RequireRole(role model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			staff := GetStaff(r.Context())
			if staff == nil {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}
			if staff.Role != role && staff.Role != model.RoleAdmin {
				apierr.WriteError(w, apierr.NewForbiddenError())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie("session")
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetStaff returns the authenticated staff member from the request context
func GetStaff(ctx context.Context) *model.Staff {
	staff, _ := ctx.Value(staffContextKey).(*model.Staff)
	return staff
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// MustGetStaff returns the authenticated staff member or panics
func MustGetStaff(ctx context.Context) *model.Staff {
	staff := GetStaff(ctx)
	if staff == nil {
		panic("no staff in context - auth middleware not applied?")
	}
	return staff
}
