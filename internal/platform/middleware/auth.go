package middleware

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	id "comply/pkg/domain"
	"comply/pkg/requestcontext"
)

// JWTValidator defines the interface for validating JWT tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	EmployeeID string
	TenantID   string
}

// RequireAuth validates the Bearer token and stores the authenticated
// employee in the request context. The token's tenant claim also sets the
// tenant scope; an X-Tenant-ID header must agree with it when present.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token", "request_id", requestID)
				writeAuthError(w, http.StatusUnauthorized, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"request_id", requestID, "error", err)
				writeAuthError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			tenantID, err := id.ParseTenantID(claims.TenantID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - token missing tenant claim",
					"request_id", requestID, "error", err)
				writeAuthError(w, http.StatusUnauthorized, "Invalid token claims")
				return
			}
			if header := r.Header.Get("X-Tenant-ID"); header != "" && header != tenantID.String() {
				logger.WarnContext(ctx, "forbidden - tenant header does not match token",
					"request_id", requestID, "tenant_id", tenantID)
				writeAuthError(w, http.StatusForbidden, "Tenant mismatch")
				return
			}

			actorID, err := id.ParseEmployeeID(claims.EmployeeID)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - token missing subject claim",
					"request_id", requestID, "error", err)
				writeAuthError(w, http.StatusUnauthorized, "Invalid token claims")
				return
			}

			ctx = requestcontext.WithTenantID(ctx, tenantID)
			ctx = requestcontext.WithActorID(ctx, actorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdminToken gates management endpoints behind a shared X-Admin-Token.
func RequireAdminToken(token string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get("X-Admin-Token")
			if token == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
				logger.WarnContext(r.Context(), "forbidden - admin token missing or wrong",
					"request_id", GetRequestID(r.Context()))
				writeAuthError(w, http.StatusForbidden, "Admin token required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	code := "unauthorized"
	if status == http.StatusForbidden {
		code = "forbidden"
	}
	_, _ = w.Write([]byte(`{"error":"` + code + `","error_description":"` + description + `"}`))
}
