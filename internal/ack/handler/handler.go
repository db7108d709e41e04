// Package handler wires the acknowledgment endpoints to the acknowledgment
// engine.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"comply/internal/ack/models"
	"comply/internal/ack/service"
	"comply/internal/escalation"
	"comply/internal/platform/middleware"
	id "comply/pkg/domain"
	"comply/pkg/platform/httputil"
	"comply/pkg/requestcontext"
)

// Service defines the interface for acknowledgment operations.
type Service interface {
	GenerateNewHire(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) ([]*models.Acknowledgment, error)
	GenerateManual(ctx context.Context, tenantID id.TenantID, employeeIDs []id.EmployeeID, dueDate time.Time) ([]*models.Acknowledgment, error)
	Complete(ctx context.Context, ackID id.AcknowledgmentID) (*models.Acknowledgment, error)
	SweepOverdue(ctx context.Context) (int, error)
	Query(ctx context.Context, tenantID id.TenantID, q service.QueryFilters) ([]*models.Acknowledgment, error)
	EscalateOverdue(ctx context.Context, tenantID id.TenantID) ([]escalation.Record, error)
}

// Handler handles acknowledgment endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new acknowledgment Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the acknowledgment routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/acknowledgments", func(r chi.Router) {
		r.Get("/", h.handleQuery)
		r.Post("/", h.handleGenerateNewHire)
		r.Post("/manual", h.handleGenerateManual)
		r.Patch("/{ackID}/complete", h.handleComplete)
		r.Patch("/update-overdue", h.handleSweepOverdue)
		r.Post("/escalate-overdue", h.handleEscalateOverdue)
	})
}

func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := requestcontext.TenantID(ctx)
	query := r.URL.Query()

	var filters service.QueryFilters
	if raw := query.Get("employee_id"); raw != "" {
		employeeID, err := id.ParseEmployeeID(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filters.EmployeeID = &employeeID
	}
	if raw := query.Get("type"); raw != "" {
		ackType, err := models.ParseType(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filters.Type = &ackType
	}
	if raw := query.Get("status"); raw != "" {
		status, err := models.ParseStatus(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filters.Status = &status
	}
	filters.Overdue = query.Get("overdue") == "true"

	acks, err := h.service.Query(ctx, tenantID, filters)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, acks)
}

func (h *Handler) handleGenerateNewHire(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	tenantID := requestcontext.TenantID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateNewHireRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	employeeID, _ := id.ParseEmployeeID(req.EmployeeID)

	acks, err := h.service.GenerateNewHire(ctx, tenantID, employeeID)
	if err != nil {
		h.logger.WarnContext(ctx, "new-hire acknowledgment generation failed",
			"request_id", requestID, "tenant_id", tenantID, "employee_id", employeeID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	if acks == nil {
		acks = []*models.Acknowledgment{}
	}
	httputil.WriteJSON(w, http.StatusCreated, acks)
}

func (h *Handler) handleGenerateManual(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	tenantID := requestcontext.TenantID(ctx)

	req, ok := httputil.DecodeAndPrepare[GenerateManualRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	acks, err := h.service.GenerateManual(ctx, tenantID, req.ParsedEmployeeIDs(), req.ParsedDueDate())
	if err != nil {
		h.logger.WarnContext(ctx, "manual acknowledgment generation failed",
			"request_id", requestID, "tenant_id", tenantID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	if acks == nil {
		acks = []*models.Acknowledgment{}
	}
	httputil.WriteJSON(w, http.StatusCreated, acks)
}

func (h *Handler) handleComplete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ackID, err := id.ParseAcknowledgmentID(chi.URLParam(r, "ackID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	ack, err := h.service.Complete(ctx, ackID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ack)
}

func (h *Handler) handleSweepOverdue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	count, err := h.service.SweepOverdue(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]int{"updated": count})
}

func (h *Handler) handleEscalateOverdue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	tenantID := requestcontext.TenantID(ctx)

	records, err := h.service.EscalateOverdue(ctx, tenantID)
	if err != nil {
		h.logger.WarnContext(ctx, "overdue escalation failed",
			"request_id", requestID, "tenant_id", tenantID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	if records == nil {
		records = []escalation.Record{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"escalated": len(records),
		"records":   records,
	})
}
