// Package handler wires the employee endpoints to the employee service.
// Creating an employee also generates their new-hire acknowledgment set.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	ackmodels "comply/internal/ack/models"
	"comply/internal/employee/models"
	"comply/internal/employee/service"
	"comply/internal/platform/middleware"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/platform/httputil"
	"comply/pkg/requestcontext"
)

// Service defines the interface for employee operations.
type Service interface {
	Create(ctx context.Context, tenantID id.TenantID, in service.CreateInput) (*models.Employee, error)
	Get(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) (*models.Employee, error)
	List(ctx context.Context, tenantID id.TenantID) ([]*models.Employee, error)
}

// Onboarder generates the new-hire acknowledgment set after creation.
type Onboarder interface {
	GenerateNewHire(ctx context.Context, tenantID id.TenantID, employeeID id.EmployeeID) ([]*ackmodels.Acknowledgment, error)
}

// Handler handles employee endpoints.
type Handler struct {
	service   Service
	onboarder Onboarder
	logger    *slog.Logger
}

// New creates a new employee Handler. onboarder may be nil to disable
// automatic new-hire generation.
func New(service Service, onboarder Onboarder, logger *slog.Logger) *Handler {
	return &Handler{service: service, onboarder: onboarder, logger: logger}
}

// Register mounts the employee routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{employeeID}", h.handleGet)
	})
}

// CreateEmployeeRequest is the wire shape for POST /employees.
type CreateEmployeeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (r CreateEmployeeRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return dErrors.New(dErrors.CodeBadRequest, "email is required")
	}
	if _, err := models.ParseRole(r.Role); err != nil {
		return err
	}
	return nil
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	tenantID := requestcontext.TenantID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateEmployeeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	employee, err := h.service.Create(ctx, tenantID, service.CreateInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  models.Role(req.Role),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "employee creation failed",
			"request_id", requestID, "tenant_id", tenantID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	var acks []*ackmodels.Acknowledgment
	if h.onboarder != nil {
		// The employee row is committed; a generation failure is reported
		// but does not undo the creation.
		acks, err = h.onboarder.GenerateNewHire(ctx, tenantID, employee.ID)
		if err != nil {
			h.logger.ErrorContext(ctx, "new-hire acknowledgment generation failed after employee creation",
				"request_id", requestID, "tenant_id", tenantID, "employee_id", employee.ID, "error", err)
		}
	}
	if acks == nil {
		acks = []*ackmodels.Acknowledgment{}
	}

	h.logger.InfoContext(ctx, "employee created",
		"request_id", requestID, "tenant_id", tenantID,
		"employee_id", employee.ID, "role", employee.Role, "acknowledgments", len(acks))
	httputil.WriteJSON(w, http.StatusCreated, map[string]any{
		"employee":        employee,
		"acknowledgments": acks,
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employees, err := h.service.List(ctx, requestcontext.TenantID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, employees)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	employeeID, err := id.ParseEmployeeID(chi.URLParam(r, "employeeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	employee, err := h.service.Get(ctx, requestcontext.TenantID(ctx), employeeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, employee)
}
