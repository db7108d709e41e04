// Package httptransport composes the HTTP surface: the middleware chain,
// the tenant-scoped API behind JWT auth, and the admin surface behind the
// admin token.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	ackhandler "comply/internal/ack/handler"
	employeehandler "comply/internal/employee/handler"
	"comply/internal/platform/middleware"
	policyhandler "comply/internal/policy/handler"
	templatehandler "comply/internal/template/handler"
	tenanthandler "comply/internal/tenant/handler"
)

// Handlers carries the per-module handlers the router mounts.
type Handlers struct {
	Policy   *policyhandler.Handler
	Ack      *ackhandler.Handler
	Employee *employeehandler.Handler
	Template *templatehandler.Handler
	Tenant   *tenanthandler.Handler
}

// NewRouter wires all endpoints.
func NewRouter(h Handlers, validator middleware.JWTValidator, adminToken string, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(api chi.Router) {
		api.Group(func(tenantAPI chi.Router) {
			tenantAPI.Use(middleware.RequireAuth(validator, logger))
			h.Policy.Register(tenantAPI)
			h.Ack.Register(tenantAPI)
			h.Employee.Register(tenantAPI)
		})

		// Template management is global, so it takes the admin token even
		// though it lives under /api.
		api.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireAdminToken(adminToken, logger))
			h.Template.Register(admin)
		})
	})

	r.Route("/admin", func(admin chi.Router) {
		admin.Use(middleware.RequireAdminToken(adminToken, logger))
		h.Tenant.Register(admin)
	})

	return r
}
