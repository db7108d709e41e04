// Package handler wires the policy lifecycle endpoints to the policy service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"comply/internal/platform/middleware"
	"comply/internal/policy/models"
	"comply/internal/policy/service"
	"comply/internal/policy/store"
	id "comply/pkg/domain"
	dErrors "comply/pkg/domain-errors"
	"comply/pkg/platform/httputil"
	"comply/pkg/requestcontext"
)

// Service defines the interface for policy lifecycle operations.
type Service interface {
	Create(ctx context.Context, tenantID id.TenantID, in service.CreateInput) (*models.Policy, error)
	Update(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID, in service.UpdateInput) (*models.UpdateResult, error)
	Approve(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID, approvedBy id.EmployeeID) (*models.ApprovalResult, error)
	Delete(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) error
	Get(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) (*models.AnnotatedPolicy, error)
	List(ctx context.Context, tenantID id.TenantID, filters store.Filters) ([]*models.AnnotatedPolicy, error)
	UpgradeToLatestTemplate(ctx context.Context, tenantID id.TenantID, policyID id.PolicyID) (*models.TemplateUpgradeResult, error)
}

// Handler handles policy endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new policy Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the policy routes. The router is expected to carry the
// authentication middleware already.
func (h *Handler) Register(r chi.Router) {
	r.Route("/policies", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/{policyID}", h.handleGet)
		r.Put("/{policyID}", h.handleUpdate)
		r.Delete("/{policyID}", h.handleDelete)
		r.Patch("/{policyID}/approve", h.handleApprove)
		r.Post("/{policyID}/upgrade", h.handleUpgrade)
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	tenantID := requestcontext.TenantID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreatePolicyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	policy, err := h.service.Create(ctx, tenantID, req.ToInput())
	if err != nil {
		h.logger.WarnContext(ctx, "policy creation failed",
			"request_id", requestID, "tenant_id", tenantID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "policy created",
		"request_id", requestID, "tenant_id", tenantID,
		"policy_id", policy.ID, "name", policy.Name, "type", policy.Type)
	httputil.WriteJSON(w, http.StatusCreated, policy)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tenantID := requestcontext.TenantID(ctx)

	var filters store.Filters
	if raw := r.URL.Query().Get("status"); raw != "" {
		status, err := models.ParsePolicyStatus(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filters.Status = &status
	}
	if raw := r.URL.Query().Get("type"); raw != "" {
		policyType, err := models.ParsePolicyType(raw)
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
		filters.Type = &policyType
	}

	policies, err := h.service.List(ctx, tenantID, filters)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, policies)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID, err := id.ParsePolicyID(chi.URLParam(r, "policyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	policy, err := h.service.Get(ctx, requestcontext.TenantID(ctx), policyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, policy)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	tenantID := requestcontext.TenantID(ctx)

	policyID, err := id.ParsePolicyID(chi.URLParam(r, "policyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdatePolicyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Update(ctx, tenantID, policyID, req.ToInput())
	if err != nil {
		h.logger.WarnContext(ctx, "policy update failed",
			"request_id", requestID, "tenant_id", tenantID, "policy_id", policyID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	status := http.StatusOK
	if result.ConfigurationChanged {
		// A new version row was created; signal that like a creation.
		status = http.StatusCreated
	}
	httputil.WriteJSON(w, status, result)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID, err := id.ParsePolicyID(chi.URLParam(r, "policyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	if err := h.service.Delete(ctx, requestcontext.TenantID(ctx), policyID); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)
	tenantID := requestcontext.TenantID(ctx)

	policyID, err := id.ParsePolicyID(chi.URLParam(r, "policyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	// The body is optional; an empty PATCH approves as the authenticated
	// employee.
	var req ApprovePolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "malformed JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	approvedBy := requestcontext.ActorID(ctx)
	if req.ApprovedBy != "" {
		approvedBy, _ = id.ParseEmployeeID(req.ApprovedBy)
	}
	if approvedBy.IsZero() {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "approved_by is required"))
		return
	}

	result, err := h.service.Approve(ctx, tenantID, policyID, approvedBy)
	if err != nil {
		h.logger.WarnContext(ctx, "policy approval failed",
			"request_id", requestID, "tenant_id", tenantID, "policy_id", policyID, "error", err)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "policy approved",
		"request_id", requestID, "tenant_id", tenantID, "policy_id", policyID,
		"superseded", result.PreviousVersionDeactivated)
	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	policyID, err := id.ParsePolicyID(chi.URLParam(r, "policyID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	result, err := h.service.UpgradeToLatestTemplate(ctx, requestcontext.TenantID(ctx), policyID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, result)
}
